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
	"time"

	"github.com/sirupsen/logrus"
)

// PageFetcher retrieves one page of a user's repositories.
type PageFetcher interface {
	// FetchRepositories retrieves a page of repositories owned by login.
	// It supports cursor-based pagination through the opts.After parameter to
	// fetch subsequent pages. The page size can be configured via opts.PageSize.
	FetchRepositories(ctx context.Context, login string, opts FetchOptions) (*RepositoryPage, error)
}

// VisibilityUpdater changes the visibility of a single repository.
type VisibilityUpdater interface {
	UpdateVisibility(ctx context.Context, owner, repo string, visibility Visibility) (*VisibilityUpdate, error)
}

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests.
type Client interface {
	PageFetcher
	VisibilityUpdater
}

// PageFetcherFunc adapts a function to the PageFetcher interface.
type PageFetcherFunc func(ctx context.Context, login string, opts FetchOptions) (*RepositoryPage, error)

// FetchRepositories calls f(ctx, login, opts).
func (f PageFetcherFunc) FetchRepositories(ctx context.Context, login string, opts FetchOptions) (*RepositoryPage, error) {
	return f(ctx, login, opts)
}

// AuthScheme selects how credentials are attached to requests.
type AuthScheme string

const (
	// AuthBasic sends login:token as HTTP basic auth.
	AuthBasic AuthScheme = "basic"

	// AuthToken sends the token as an OAuth2 bearer token.
	AuthToken AuthScheme = "token"
)

// Options configures the API clients.
type Options struct {
	// GraphQLEndpoint is the URL queries are posted to.
	GraphQLEndpoint string

	// APIEndpoint is the REST API root, e.g. https://api.github.com.
	APIEndpoint string

	// AuthScheme defaults to AuthBasic.
	AuthScheme AuthScheme

	// Timeout bounds every single request. Zero means no timeout.
	Timeout time.Duration

	// Version is reported in the User-Agent header.
	Version string

	// Logger receives debug output. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Default endpoints for github.com.
const (
	DefaultGraphQLEndpoint = "https://api.github.com/graphql"
	DefaultAPIEndpoint     = "https://api.github.com"
)

func (o Options) withDefaults() Options {
	if o.GraphQLEndpoint == "" {
		o.GraphQLEndpoint = DefaultGraphQLEndpoint
	}
	if o.APIEndpoint == "" {
		o.APIEndpoint = DefaultAPIEndpoint
	}
	if o.AuthScheme == "" {
		o.AuthScheme = AuthBasic
	}
	if o.Version == "" {
		o.Version = "dev"
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// APIClient combines the GraphQL read path and the REST write path.
type APIClient struct {
	*GraphQLClient
	*RESTClient
}

var _ Client = (*APIClient)(nil)

// NewClient creates a client for both the read and the write path. The
// credentials are bound to the client for its whole lifetime.
func NewClient(creds Credentials, opts Options) (*APIClient, error) {
	rest, err := NewRESTClient(creds, opts)
	if err != nil {
		return nil, err
	}
	return &APIClient{
		GraphQLClient: NewGraphQLClient(creds, opts),
		RESTClient:    rest,
	}, nil
}
