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

// Package github provides clients for the two GitHub API surfaces repovis
// uses: the GraphQL API to list a user's repositories page by page, and the
// REST API to change a repository's visibility.
//
// The package includes:
//   - PageFetcher, VisibilityUpdater and the combined Client interface
//   - A GraphQL implementation using the shurcooL/graphql library
//   - A REST implementation using google/go-github
//   - Mock client for testing
//   - Type definitions for repositories and pages
//
// Every failure is classified as exactly one of errors.ErrNetworkFailure,
// errors.ErrUnexpectedStatus, errors.ErrDecode or errors.ErrQuery.
//
// Basic usage:
//
//	client, err := github.NewClient(github.Credentials{Login: "octocat", Token: token}, github.Options{})
//	if err != nil {
//	    // Handle error
//	}
//	page, err := client.FetchRepositories(ctx, "octocat", github.FetchOptions{
//	    PageSize: 100,
//	})
//	if err != nil {
//	    // Handle error
//	}
//	for _, repo := range page.Repositories {
//	    // Process repository
//	}
package github
