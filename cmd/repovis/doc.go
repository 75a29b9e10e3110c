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

// Package main implements the repovis command-line interface.
// This tool lists a GitHub user's repositories with their visibility and
// changes the visibility of several repositories in one call.
//
// The CLI supports:
//   - Listing every repository of a user, across as many pages as needed
//   - Changing visibility with repo:public or repo:private arguments
//   - Table output for people and NDJSON output for scripts
//   - Token lookup from a flag, the environment or a .env file
//   - A YAML configuration file for endpoints and defaults
//
// Usage:
//
//	repovis repos <login> [flags]
//	repovis change <login> <repo:visibility>... [flags]
//
// Example:
//
//	export GITHUB_AUTH_TOKEN=your_token
//	repovis repos octocat
//	repovis change octocat Hello-World:private dotfiles:public
//
// Exit codes:
//   - 0: Success, including batches with failed changes unless --strict
//   - 1: Usage, configuration or API error, including a missing command
//
// An unknown command word prints help and exits 0.
package main
