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

package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/shurcooL/graphql"
	"github.com/sirupsen/logrus"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
	"github.com/sirseerhq/repovis/internal/giterror"
)

// GraphQLClient implements PageFetcher using GitHub's GraphQL API.
// It provides efficient access to GitHub's data with support for pagination,
// error classification, and safety features like timeouts and response size
// limits.
type GraphQLClient struct {
	client    *graphql.Client
	inspector giterror.Inspector
	log       logrus.FieldLogger
}

// NewGraphQLClient creates a new GitHub GraphQL client.
// The client is configured with:
//   - Authentication via the provided credentials and opts.AuthScheme
//   - Custom GraphQL endpoint URL (e.g., for GitHub Enterprise)
//   - Per-request timeout from opts.Timeout
//   - Response size limiting to prevent memory issues
//   - User-Agent header for API compliance
//   - Non-2xx responses surfaced as *errors.StatusError
func NewGraphQLClient(creds Credentials, opts Options) *GraphQLClient {
	opts = opts.withDefaults()
	httpClient := newHTTPClient(creds, opts, true)

	return &GraphQLClient{
		client:    graphql.NewClient(opts.GraphQLEndpoint, httpClient),
		inspector: giterror.NewInspector(),
		log:       opts.Logger,
	}
}

// FetchRepositories fetches a page of repositories owned by login.
// It supports cursor-based pagination via the opts.After parameter and
// configurable page sizes through opts.PageSize. The returned page carries
// the repositories in server order and the information needed to fetch the
// next page.
func (c *GraphQLClient) FetchRepositories(ctx context.Context, login string, opts FetchOptions) (*RepositoryPage, error) {
	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	query, err := BuildListQuery(login, pageSize, opts.After)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{
		"login":  login,
		"first":  pageSize,
		"cursor": opts.After,
	}).Debug("querying repositories")

	if err := c.client.Query(ctx, &query.result, query.variables); err != nil {
		return nil, c.mapError(err, login)
	}

	return query.page()
}

// mapError maps transport and GraphQL errors to our domain errors.
// Each error maps to exactly one of ErrUnexpectedStatus, ErrDecode,
// ErrNetworkFailure or ErrQuery; the original error stays in the chain.
// Errors that fit no other category are decode errors.
func (c *GraphQLClient) mapError(err error, login string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	if c.inspector.IsStatusError(err) {
		var statusErr *relaierrors.StatusError
		if errors.As(err, &statusErr) {
			return fmt.Errorf("fetching repositories for %s: %w", login, statusErr)
		}
		return fmt.Errorf("fetching repositories for %s: %w: %w", login, relaierrors.ErrUnexpectedStatus, err)
	}

	if c.inspector.IsQueryError(err) {
		if c.inspector.IsNotFoundError(err) {
			return fmt.Errorf("user %q not found: %w: %w: %w", login, relaierrors.ErrUserNotFound, relaierrors.ErrQuery, err)
		}
		return fmt.Errorf("fetching repositories for %s: %w: %w", login, relaierrors.ErrQuery, err)
	}

	if c.inspector.IsDecodeError(err) {
		return fmt.Errorf("fetching repositories for %s: %w: %w", login, relaierrors.ErrDecode, err)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API: %w: %w", relaierrors.ErrNetworkFailure, err)
	}

	// Anything else failed while reading the response body.
	return fmt.Errorf("fetching repositories for %s: %w: %w", login, relaierrors.ErrDecode, err)
}
