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

// Package output renders repository listings and visibility change results.
//
// Two formats are supported:
//   - Table, a fixed-width text table with repo_name, visibility and
//     description columns, for people
//   - Writer, NDJSON (one JSON object per line), for scripts
//
// Example usage:
//
//	if err := output.NewTable(50).WriteRepositories(os.Stdout, repos); err != nil {
//	    return err
//	}
//
//	w := output.NewWriter(os.Stdout)
//	if err := output.WriteRepositories(w, repos); err != nil {
//	    return err
//	}
package output
