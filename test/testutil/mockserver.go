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

// Package testutil provides common test helpers for repovis
package testutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/sirseerhq/repovis/internal/github"
)

// GraphQLRequest represents a parsed GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// After returns the cursor the request was made with, or "" for null.
func (r GraphQLRequest) After() string {
	s, _ := r.Variables["after"].(string)
	return s
}

// PatchRequest records one REST repository edit.
type PatchRequest struct {
	Owner      string
	Repo       string
	Visibility string
}

// Failure is an injected bad response. A zero Status sends Body with 200.
type Failure struct {
	Status int
	Body   string
}

// GitHubServer is a fake of the two GitHub endpoints repovis talks to:
// POST /graphql for the repositories connection and
// PATCH /repos/{owner}/{repo} for visibility changes.
type GitHubServer struct {
	*httptest.Server

	// Token is the accepted credential, as a basic auth password or a
	// bearer token. Empty accepts any request.
	Token string

	mu              sync.Mutex
	repos           map[string][]github.Repository
	graphqlRequests []GraphQLRequest
	patchRequests   []PatchRequest
	graphqlFailures map[int]Failure
	patchFailures   map[string]Failure
}

// NewGitHubServer starts a fake serving repos for login.
func NewGitHubServer(t *testing.T, login string, repos []github.Repository) *GitHubServer {
	t.Helper()

	s := &GitHubServer{
		repos:           map[string][]github.Repository{login: append([]github.Repository(nil), repos...)},
		graphqlFailures: make(map[int]Failure),
		patchFailures:   make(map[string]Failure),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /graphql", s.handleGraphQL)
	mux.HandleFunc("PATCH /repos/{owner}/{repo}", s.handlePatch)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// GraphQLURL is the endpoint for GraphQL queries.
func (s *GitHubServer) GraphQLURL() string {
	return s.URL + "/graphql"
}

// FailGraphQLRequest makes the nth (1-based) GraphQL request fail.
func (s *GitHubServer) FailGraphQLRequest(n int, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphqlFailures[n] = f
}

// FailRepository makes every PATCH of repo fail.
func (s *GitHubServer) FailRepository(repo string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patchFailures[repo] = f
}

// GraphQLRequests returns every GraphQL request received so far.
func (s *GitHubServer) GraphQLRequests() []GraphQLRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]GraphQLRequest(nil), s.graphqlRequests...)
}

// PatchRequests returns every REST edit received so far.
func (s *GitHubServer) PatchRequests() []PatchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PatchRequest(nil), s.patchRequests...)
}

// Repositories returns the current state of login's repositories.
func (s *GitHubServer) Repositories(login string) []github.Repository {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]github.Repository(nil), s.repos[login]...)
}

func (s *GitHubServer) authorized(r *http.Request) bool {
	if s.Token == "" {
		return true
	}
	if _, pass, ok := r.BasicAuth(); ok {
		return pass == s.Token
	}
	return r.Header.Get("Authorization") == "Bearer "+s.Token
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, f Failure) {
	status := f.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(f.Body))
}

func badCredentials(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{
		"message":           "Bad credentials",
		"documentation_url": "https://docs.github.com/rest",
	})
}

func (s *GitHubServer) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		badCredentials(w)
		return
	}

	var req GraphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Problems parsing JSON"})
		return
	}

	s.mu.Lock()
	s.graphqlRequests = append(s.graphqlRequests, req)
	n := len(s.graphqlRequests)
	failure, failed := s.graphqlFailures[n]
	login, _ := req.Variables["login"].(string)
	repos, known := s.repos[login]
	repos = append([]github.Repository(nil), repos...)
	s.mu.Unlock()

	if failed {
		writeFailure(w, failure)
		return
	}
	if !known {
		writeJSON(w, http.StatusOK, NewRepositoryResponseBuilder().
			WithNotFound(login).
			Build())
		return
	}

	first := github.DefaultPageSize
	if f, ok := req.Variables["first"].(float64); ok {
		first = int(f)
	}
	start := 0
	if after := req.After(); after != "" {
		offset, err := ParseCursor(after)
		if err != nil {
			writeJSON(w, http.StatusOK, NewRepositoryResponseBuilder().
				WithError(fmt.Sprintf("`%s` does not appear to be a valid cursor.", after)).
				Build())
			return
		}
		start = offset
	}
	if start > len(repos) {
		start = len(repos)
	}
	end := start + first
	if end > len(repos) {
		end = len(repos)
	}

	builder := NewRepositoryResponseBuilder().WithRepositories(repos[start:end]...)
	if end < len(repos) {
		builder.WithPagination(true, Cursor(end))
	}
	writeJSON(w, http.StatusOK, builder.Build())
}

func (s *GitHubServer) handlePatch(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		badCredentials(w)
		return
	}

	owner, repo := r.PathValue("owner"), r.PathValue("repo")

	var body struct {
		Visibility string `json:"visibility"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Problems parsing JSON"})
		return
	}

	valid := body.Visibility == "public" || body.Visibility == "private"

	s.mu.Lock()
	s.patchRequests = append(s.patchRequests, PatchRequest{Owner: owner, Repo: repo, Visibility: body.Visibility})
	failure, failed := s.patchFailures[repo]
	index := -1
	for i, candidate := range s.repos[owner] {
		if candidate.Name == repo {
			index = i
		}
	}
	if !failed && valid && index >= 0 {
		s.repos[owner][index].Visibility = github.Visibility(body.Visibility)
	}
	s.mu.Unlock()

	switch {
	case failed:
		writeFailure(w, failure)
	case index < 0:
		writeJSON(w, http.StatusNotFound, map[string]string{
			"message":           "Not Found",
			"documentation_url": "https://docs.github.com/rest/repos/repos#update-a-repository",
		})
	case !valid:
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Validation Failed"})
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"name":       repo,
			"full_name":  owner + "/" + repo,
			"private":    body.Visibility == "private",
			"visibility": body.Visibility,
		})
	}
}

// Cursor returns the opaque cursor the fake issues for offset.
func Cursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte("cursor:" + strconv.Itoa(offset)))
}

// ParseCursor reverses Cursor.
func ParseCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, err
	}
	n, ok := strings.CutPrefix(string(raw), "cursor:")
	if !ok {
		return 0, fmt.Errorf("not a cursor: %q", cursor)
	}
	return strconv.Atoi(n)
}
