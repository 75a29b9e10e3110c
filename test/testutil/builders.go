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

package testutil

import (
	"fmt"

	"github.com/sirseerhq/repovis/internal/github"
)

// RepositoryBuilder provides a fluent API for creating test repositories
type RepositoryBuilder struct {
	repo github.Repository
}

// NewRepositoryBuilder starts a public repository without a description.
func NewRepositoryBuilder(name string) *RepositoryBuilder {
	return &RepositoryBuilder{repo: github.Repository{Name: name, Visibility: github.VisibilityPublic}}
}

// Private marks the repository private.
func (b *RepositoryBuilder) Private() *RepositoryBuilder {
	b.repo.Visibility = github.VisibilityPrivate
	return b
}

// WithVisibility sets the visibility.
func (b *RepositoryBuilder) WithVisibility(v github.Visibility) *RepositoryBuilder {
	b.repo.Visibility = v
	return b
}

// WithDescription sets the description.
func (b *RepositoryBuilder) WithDescription(desc string) *RepositoryBuilder {
	b.repo.Description = &desc
	return b
}

// Build returns the repository.
func (b *RepositoryBuilder) Build() github.Repository {
	return b.repo
}

// RepositoryResponseBuilder builds GraphQL responses for the repositories
// connection.
type RepositoryResponseBuilder struct {
	nodes       []map[string]interface{}
	hasNextPage bool
	endCursor   string
	errors      []map[string]interface{}
}

// NewRepositoryResponseBuilder creates a new response builder
func NewRepositoryResponseBuilder() *RepositoryResponseBuilder {
	return &RepositoryResponseBuilder{
		nodes: []map[string]interface{}{},
	}
}

// WithRepositories adds nodes to the response, with visibility in the
// upper-case GraphQL enum form.
func (b *RepositoryResponseBuilder) WithRepositories(repos ...github.Repository) *RepositoryResponseBuilder {
	for _, repo := range repos {
		var desc interface{}
		if repo.Description != nil {
			desc = *repo.Description
		}
		b.nodes = append(b.nodes, map[string]interface{}{
			"name":        repo.Name,
			"visibility":  graphQLVisibility(repo.Visibility),
			"description": desc,
		})
	}
	return b
}

// WithPagination sets pagination info
func (b *RepositoryResponseBuilder) WithPagination(hasNext bool, cursor string) *RepositoryResponseBuilder {
	b.hasNextPage = hasNext
	b.endCursor = cursor
	return b
}

// WithError adds an error to the response
func (b *RepositoryResponseBuilder) WithError(message string) *RepositoryResponseBuilder {
	b.errors = append(b.errors, map[string]interface{}{
		"message": message,
	})
	return b
}

// WithNotFound adds the error GitHub returns for an unknown login.
func (b *RepositoryResponseBuilder) WithNotFound(login string) *RepositoryResponseBuilder {
	b.errors = append(b.errors, map[string]interface{}{
		"type":    "NOT_FOUND",
		"path":    []string{"user"},
		"message": fmt.Sprintf("Could not resolve to a User with the login of '%s'.", login),
	})
	return b
}

// Build creates the GraphQL response
func (b *RepositoryResponseBuilder) Build() map[string]interface{} {
	if len(b.errors) > 0 {
		return map[string]interface{}{
			"data":   map[string]interface{}{"user": nil},
			"errors": b.errors,
		}
	}

	var cursor *string
	if b.endCursor != "" {
		cursor = &b.endCursor
	}

	return map[string]interface{}{
		"data": map[string]interface{}{
			"user": map[string]interface{}{
				"repositories": map[string]interface{}{
					"nodes": b.nodes,
					"pageInfo": map[string]interface{}{
						"hasNextPage": b.hasNextPage,
						"endCursor":   cursor,
					},
				},
			},
		},
	}
}

func graphQLVisibility(v github.Visibility) string {
	switch v {
	case github.VisibilityPrivate:
		return "PRIVATE"
	case github.VisibilityInternal:
		return "INTERNAL"
	}
	return "PUBLIC"
}
