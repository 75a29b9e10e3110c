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
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
)

// MockClient is an in-memory implementation of the Client interface for
// testing. It pages through Repositories with opaque cursors, so repeated
// listings of the same data return the same pages.
type MockClient struct {
	// Repositories is the full, ordered listing served for every login.
	Repositories []Repository

	// FetchErrors fails the Nth FetchRepositories call (1-based).
	FetchErrors map[int]error

	// UpdateErrors fails UpdateVisibility for the named repository.
	UpdateErrors map[string]error

	// Track calls for verification
	FetchCalls  []FetchOptions
	UpdateCalls []VisibilityChange
}

// VisibilityChange records one UpdateVisibility call on a MockClient.
type VisibilityChange struct {
	Owner      string
	Repo       string
	Visibility Visibility
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a mock client serving repos.
func NewMockClient(repos []Repository, opts ...MockClientOption) *MockClient {
	m := &MockClient{Repositories: repos}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FetchRepositories implements the PageFetcher interface
func (m *MockClient) FetchRepositories(ctx context.Context, login string, opts FetchOptions) (*RepositoryPage, error) {
	m.FetchCalls = append(m.FetchCalls, opts)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.FetchErrors[len(m.FetchCalls)]; ok {
		return nil, err
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	start := 0
	if opts.After != "" {
		offset, err := decodeMockCursor(opts.After)
		if err != nil {
			return nil, fmt.Errorf("bad cursor %q: %w", opts.After, relaierrors.ErrQuery)
		}
		start = offset
	}
	if start > len(m.Repositories) {
		start = len(m.Repositories)
	}

	end := start + pageSize
	if end > len(m.Repositories) {
		end = len(m.Repositories)
	}

	page := &RepositoryPage{
		Repositories: append([]Repository(nil), m.Repositories[start:end]...),
		HasNextPage:  end < len(m.Repositories),
	}
	if page.HasNextPage {
		page.EndCursor = MockCursor(end)
	}
	return page, nil
}

// UpdateVisibility implements the VisibilityUpdater interface
func (m *MockClient) UpdateVisibility(ctx context.Context, owner, repo string, visibility Visibility) (*VisibilityUpdate, error) {
	m.UpdateCalls = append(m.UpdateCalls, VisibilityChange{Owner: owner, Repo: repo, Visibility: visibility})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.UpdateErrors[repo]; ok {
		return nil, err
	}

	for i := range m.Repositories {
		if m.Repositories[i].Name == repo {
			m.Repositories[i].Visibility = visibility
		}
	}
	return &VisibilityUpdate{Name: repo, Private: visibility == VisibilityPrivate}, nil
}

// MockCursor returns the cursor a MockClient issues for the page starting
// at offset.
func MockCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte("cursor:v2:" + strconv.Itoa(offset)))
}

func decodeMockCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, err
	}
	n, ok := strings.CutPrefix(string(raw), "cursor:v2:")
	if !ok {
		return 0, fmt.Errorf("unexpected cursor prefix")
	}
	return strconv.Atoi(n)
}

// GenerateRepositories creates n repositories named repo-0001, repo-0002, ...
// alternating between public and private. Every third one has no
// description.
func GenerateRepositories(n int) []Repository {
	repos := make([]Repository, 0, n)
	for i := 1; i <= n; i++ {
		repo := Repository{
			Name:       fmt.Sprintf("repo-%04d", i),
			Visibility: VisibilityPublic,
		}
		if i%2 == 0 {
			repo.Visibility = VisibilityPrivate
		}
		if i%3 != 0 {
			desc := fmt.Sprintf("Repository number %d", i)
			repo.Description = &desc
		}
		repos = append(repos, repo)
	}
	return repos
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithFetchError makes the call-th FetchRepositories call fail with err.
func WithFetchError(call int, err error) MockClientOption {
	return func(m *MockClient) {
		if m.FetchErrors == nil {
			m.FetchErrors = make(map[int]error)
		}
		m.FetchErrors[call] = err
	}
}

// WithUpdateError makes UpdateVisibility fail for repo with err.
func WithUpdateError(repo string, err error) MockClientOption {
	return func(m *MockClient) {
		if m.UpdateErrors == nil {
			m.UpdateErrors = make(map[string]error)
		}
		m.UpdateErrors[repo] = err
	}
}
