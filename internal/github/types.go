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
	"fmt"
	"strings"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
)

// Visibility is a repository access level.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityInternal Visibility = "internal"
)

// ParseVisibility parses a visibility name case-insensitively.
func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(strings.ToLower(strings.TrimSpace(s))); v {
	case VisibilityPublic, VisibilityPrivate, VisibilityInternal:
		return v, nil
	}
	return "", fmt.Errorf("unknown visibility %q: %w", s, relaierrors.ErrValidation)
}

// Settable reports whether v can be requested through a visibility change.
// Internal visibility is reported by the API but only exists on enterprise
// organizations, so it is not accepted for user repositories.
func (v Visibility) Settable() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Repository is one repository as listed by the API.
// This is the record written to table and NDJSON output.
type Repository struct {
	Name        string     `json:"name"`
	Visibility  Visibility `json:"visibility"`
	Description *string    `json:"description,omitempty"`
}

// RepositoryPage represents one page of the repositories connection.
// EndCursor is only meaningful when HasNextPage is true.
type RepositoryPage struct {
	Repositories []Repository
	HasNextPage  bool
	EndCursor    string
}

// FetchOptions configures how a page of repositories is fetched.
type FetchOptions struct {
	// PageSize controls how many repositories to fetch per page.
	// Defaults to 100 if not specified, which is also GitHub's maximum.
	PageSize int

	// After is the cursor for pagination.
	// Empty string fetches from the beginning.
	// Use RepositoryPage.EndCursor from previous response for next page.
	After string
}

// Default values for fetch operations
const (
	DefaultPageSize = 100
	MaxPageSize     = 100
)

// Credentials identify the caller to the API. Login doubles as the basic
// auth identity.
type Credentials struct {
	Login string
	Token string
}

// VisibilityUpdate is the server's answer to a visibility change.
type VisibilityUpdate struct {
	Name    string `json:"name"`
	Private bool   `json:"private"`
}
