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

// Package visibility applies batches of repository visibility changes.
//
// Unlike listing, a batch is fail-soft: every request gets its own Result
// and one failure never stops the requests after it.
package visibility

import (
	"fmt"
	"strings"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
	"github.com/sirseerhq/repovis/internal/github"
)

// Request is one desired change, parsed from a "name:visibility" token.
// A request that failed to parse keeps the raw token and carries the error.
type Request struct {
	Token      string
	Repository string
	Visibility github.Visibility
	Err        error
}

// ParseRequest parses a "name:visibility" token. Invalid tokens yield a
// Request whose Err wraps ErrValidation.
func ParseRequest(token string) Request {
	req := Request{Token: token}

	name, vis, found := strings.Cut(token, ":")
	name = strings.TrimSpace(name)
	switch {
	case !found:
		req.Err = fmt.Errorf("%q: expected <repo>:<public|private>: %w", token, relaierrors.ErrValidation)
		return req
	case name == "":
		req.Err = fmt.Errorf("%q: repository name is empty: %w", token, relaierrors.ErrValidation)
		return req
	case strings.Contains(vis, ":"):
		req.Err = fmt.Errorf("%q: too many ':' separators: %w", token, relaierrors.ErrValidation)
		return req
	}
	req.Repository = name

	v, err := github.ParseVisibility(vis)
	if err != nil {
		req.Err = fmt.Errorf("%q: %w", token, err)
		return req
	}
	if !v.Settable() {
		req.Err = fmt.Errorf("%q: visibility must be public or private: %w", token, relaierrors.ErrValidation)
		return req
	}
	req.Visibility = v

	return req
}

// ParseRequests parses every token, in order.
func ParseRequests(tokens []string) []Request {
	reqs := make([]Request, 0, len(tokens))
	for _, token := range tokens {
		reqs = append(reqs, ParseRequest(token))
	}
	return reqs
}

// Label names the request in messages: the repository when known, the raw
// token otherwise.
func (r Request) Label() string {
	if r.Repository != "" {
		return r.Repository
	}
	return r.Token
}
