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

	"github.com/shurcooL/githubv4"
	"github.com/shurcooL/graphql"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
)

// repositoriesQuery is rendered by shurcooL/graphql into
//
//	query($after:String$first:Int!$login:String!){user(login: $login){repositories(...){nodes{...},pageInfo{...}}}}
//
// The login and cursor only ever travel as variables.
type repositoriesQuery struct {
	User struct {
		Repositories struct {
			Nodes    []repositoryNode
			PageInfo struct {
				HasNextPage graphql.Boolean
				EndCursor   *graphql.String
			}
		} `graphql:"repositories(first: $first, after: $after, ownerAffiliations: OWNER, orderBy: {field: NAME, direction: ASC})"`
	} `graphql:"user(login: $login)"`
}

type repositoryNode struct {
	Name        graphql.String
	Visibility  githubv4.RepositoryVisibility
	Description *graphql.String
}

// ListQuery is one repositories page request: the typed query document and
// the variables sent with it.
type ListQuery struct {
	result    repositoriesQuery
	variables map[string]interface{}
}

// BuildListQuery builds the query for one page of login's repositories.
// An empty cursor requests the first page.
func BuildListQuery(login string, pageSize int, cursor string) (*ListQuery, error) {
	if strings.TrimSpace(login) == "" {
		return nil, fmt.Errorf("login must not be empty: %w", relaierrors.ErrValidation)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, fmt.Errorf("page size must be between 1 and %d, got %d: %w", MaxPageSize, pageSize, relaierrors.ErrValidation)
	}

	// after is always declared; a nil pointer is sent as null.
	after := (*graphql.String)(nil)
	if cursor != "" {
		after = graphql.NewString(graphql.String(cursor))
	}

	return &ListQuery{
		variables: map[string]interface{}{
			"login": graphql.String(login),
			"first": graphql.Int(int32(pageSize)), // #nosec G115 - pageSize is capped at 100
			"after": after,
		},
	}, nil
}

// Variables returns the GraphQL variables of the query.
func (q *ListQuery) Variables() map[string]interface{} {
	return q.variables
}

// page converts the decoded response into a RepositoryPage. Nodes without a
// name or with an unknown visibility are rejected as decode errors.
func (q *ListQuery) page() (*RepositoryPage, error) {
	conn := q.result.User.Repositories

	page := &RepositoryPage{
		HasNextPage:  bool(conn.PageInfo.HasNextPage),
		Repositories: make([]Repository, 0, len(conn.Nodes)),
	}
	if conn.PageInfo.EndCursor != nil {
		page.EndCursor = string(*conn.PageInfo.EndCursor)
	}

	for i, node := range conn.Nodes {
		repo, err := convertNode(node)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: %w", relaierrors.ErrDecode, i, err)
		}
		page.Repositories = append(page.Repositories, repo)
	}

	return page, nil
}

func convertNode(node repositoryNode) (Repository, error) {
	if node.Name == "" {
		return Repository{}, fmt.Errorf("repository without a name")
	}

	var visibility Visibility
	switch node.Visibility {
	case githubv4.RepositoryVisibilityPublic:
		visibility = VisibilityPublic
	case githubv4.RepositoryVisibilityPrivate:
		visibility = VisibilityPrivate
	case githubv4.RepositoryVisibilityInternal:
		visibility = VisibilityInternal
	default:
		return Repository{}, fmt.Errorf("repository %s has unknown visibility %q", node.Name, node.Visibility)
	}

	repo := Repository{
		Name:       string(node.Name),
		Visibility: visibility,
	}
	if node.Description != nil {
		desc := string(*node.Description)
		repo.Description = &desc
	}
	return repo, nil
}
