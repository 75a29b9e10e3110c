// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pager walks a user's repositories connection to completion.
//
// FetchAll is fail-fast: the first error from any page aborts the whole
// listing and no partial result is returned.
package pager

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
	"github.com/sirseerhq/repovis/internal/github"
)

// DefaultMaxPages bounds a listing when no limit is configured.
const DefaultMaxPages = 2000

// Options configures a Pager.
type Options struct {
	// PageSize is the number of repositories requested per page.
	PageSize int

	// MaxPages is the hard ceiling on the number of pages fetched.
	MaxPages int

	Logger logrus.FieldLogger
}

// Pager aggregates repository pages from a PageFetcher.
type Pager struct {
	fetcher  github.PageFetcher
	pageSize int
	maxPages int
	log      logrus.FieldLogger
}

// New creates a Pager. Zero options fall back to github.DefaultPageSize and
// DefaultMaxPages.
func New(fetcher github.PageFetcher, opts Options) *Pager {
	p := &Pager{
		fetcher:  fetcher,
		pageSize: opts.PageSize,
		maxPages: opts.MaxPages,
		log:      opts.Logger,
	}
	if p.pageSize <= 0 {
		p.pageSize = github.DefaultPageSize
	}
	if p.maxPages <= 0 {
		p.maxPages = DefaultMaxPages
	}
	if p.log == nil {
		p.log = logrus.StandardLogger()
	}
	return p
}

// FetchAll returns every repository of login in server page order.
// Each request after the first carries the end cursor of the page before it.
func (p *Pager) FetchAll(ctx context.Context, login string) ([]github.Repository, error) {
	var (
		accumulated []github.Repository
		cursor      string
	)

	for pageNum := 1; ; pageNum++ {
		if pageNum > p.maxPages {
			return nil, fmt.Errorf("listing %s stopped after %d pages: %w", login, p.maxPages, relaierrors.ErrPageLimit)
		}

		// Check for cancellation between pages
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := p.fetcher.FetchRepositories(ctx, login, github.FetchOptions{
			PageSize: p.pageSize,
			After:    cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}

		accumulated = append(accumulated, page.Repositories...)

		p.log.WithFields(logrus.Fields{
			"login":  login,
			"page":   pageNum,
			"nodes":  len(page.Repositories),
			"total":  len(accumulated),
			"cursor": cursor,
		}).Debug("fetched repository page")

		if !page.HasNextPage {
			break
		}

		if page.EndCursor == "" {
			return nil, fmt.Errorf("page %d of %s has a next page but no end cursor: %w", pageNum, login, relaierrors.ErrInvalidPage)
		}
		if page.EndCursor == cursor {
			return nil, fmt.Errorf("page %d of %s repeated cursor %q: %w", pageNum, login, cursor, relaierrors.ErrInvalidPage)
		}
		cursor = page.EndCursor
	}

	if accumulated == nil {
		accumulated = []github.Repository{}
	}
	return accumulated, nil
}
