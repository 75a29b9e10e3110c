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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
)

// graphqlRequest is the JSON envelope shurcooL/graphql posts.
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func newTestGraphQLClient(t *testing.T, url string, opts Options) *GraphQLClient {
	t.Helper()
	logger, _ := test.NewNullLogger()
	opts.GraphQLEndpoint = url
	opts.Logger = logger
	return NewGraphQLClient(Credentials{Login: "octocat", Token: "test-token"}, opts)
}

func TestGraphQLClient_FetchRepositories(t *testing.T) {
	var got graphqlRequest
	var gotUser, gotPass, gotAgent string
	var gotBasic bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotBasic = r.BasicAuth()
		gotAgent = r.Header.Get("User-Agent")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		fmt.Fprint(w, `{"data":{"user":{"repositories":{
			"nodes":[
				{"name":"Hello-World","visibility":"PUBLIC","description":"My first repository"},
				{"name":"secret-plans","visibility":"PRIVATE","description":null}
			],
			"pageInfo":{"hasNextPage":true,"endCursor":"Y3Vyc29yOjI="}}}}}`)
	}))
	defer server.Close()

	client := newTestGraphQLClient(t, server.URL, Options{Version: "1.2.3"})
	page, err := client.FetchRepositories(context.Background(), "octocat", FetchOptions{PageSize: 2, After: "Y3Vyc29yOjA="})
	if err != nil {
		t.Fatalf("FetchRepositories() unexpected error: %v", err)
	}

	if !gotBasic || gotUser != "octocat" || gotPass != "test-token" {
		t.Errorf("basic auth = %q:%q (%v), want octocat:test-token", gotUser, gotPass, gotBasic)
	}
	if gotAgent != "repovis/1.2.3" {
		t.Errorf("User-Agent = %q, want repovis/1.2.3", gotAgent)
	}

	for _, want := range []string{"user(login: $login)", "repositories(first: $first, after: $after", "$after:String", "$login:String!"} {
		if !strings.Contains(got.Query, want) {
			t.Errorf("query %q does not contain %q", got.Query, want)
		}
	}
	if strings.Contains(got.Query, "octocat") || strings.Contains(got.Query, "Y3Vyc29yOjA=") {
		t.Errorf("query text %q must not embed login or cursor", got.Query)
	}
	if got.Variables["login"] != "octocat" || got.Variables["after"] != "Y3Vyc29yOjA=" || got.Variables["first"] != float64(2) {
		t.Errorf("variables = %v", got.Variables)
	}

	if len(page.Repositories) != 2 {
		t.Fatalf("got %d repositories, want 2", len(page.Repositories))
	}
	if page.Repositories[0].Name != "Hello-World" || page.Repositories[0].Visibility != VisibilityPublic {
		t.Errorf("first repository = %+v", page.Repositories[0])
	}
	if page.Repositories[1].Description != nil {
		t.Errorf("null description decoded as %q", *page.Repositories[1].Description)
	}
	if !page.HasNextPage || page.EndCursor != "Y3Vyc29yOjI=" {
		t.Errorf("page info = %v/%q", page.HasNextPage, page.EndCursor)
	}
}

func TestGraphQLClient_FirstPageSendsNullCursor(t *testing.T) {
	var raw map[string]json.RawMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables map[string]json.RawMessage `json:"variables"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		raw = req.Variables
		fmt.Fprint(w, `{"data":{"user":{"repositories":{"nodes":[],"pageInfo":{"hasNextPage":false,"endCursor":null}}}}}`)
	}))
	defer server.Close()

	client := newTestGraphQLClient(t, server.URL, Options{})
	page, err := client.FetchRepositories(context.Background(), "octocat", FetchOptions{})
	if err != nil {
		t.Fatalf("FetchRepositories() unexpected error: %v", err)
	}
	if string(raw["after"]) != "null" {
		t.Errorf("after = %s, want null", raw["after"])
	}
	if string(raw["first"]) != "100" {
		t.Errorf("first = %s, want default 100", raw["first"])
	}
	if len(page.Repositories) != 0 || page.HasNextPage {
		t.Errorf("page = %+v, want empty last page", page)
	}
}

func TestGraphQLClient_TokenScheme(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"data":{"user":{"repositories":{"nodes":[],"pageInfo":{"hasNextPage":false}}}}}`)
	}))
	defer server.Close()

	client := newTestGraphQLClient(t, server.URL, Options{AuthScheme: AuthToken})
	if _, err := client.FetchRepositories(context.Background(), "octocat", FetchOptions{}); err != nil {
		t.Fatalf("FetchRepositories() unexpected error: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want Bearer test-token", gotAuth)
	}
}

func TestGraphQLClient_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErrs   []error
		rejectErrs []error
	}{
		{
			name:       "bad credentials",
			status:     http.StatusUnauthorized,
			body:       `{"message":"Bad credentials"}`,
			wantErrs:   []error{relaierrors.ErrUnexpectedStatus, relaierrors.ErrInvalidToken},
			rejectErrs: []error{relaierrors.ErrDecode, relaierrors.ErrNetworkFailure},
		},
		{
			name:       "server error with html body",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantErrs:   []error{relaierrors.ErrUnexpectedStatus},
			rejectErrs: []error{relaierrors.ErrDecode, relaierrors.ErrInvalidToken},
		},
		{
			name:       "html body with 200",
			status:     http.StatusOK,
			body:       `<html>captive portal</html>`,
			wantErrs:   []error{relaierrors.ErrDecode},
			rejectErrs: []error{relaierrors.ErrUnexpectedStatus, relaierrors.ErrNetworkFailure},
		},
		{
			name:       "empty body with 200",
			status:     http.StatusOK,
			body:       ``,
			wantErrs:   []error{relaierrors.ErrDecode},
			rejectErrs: []error{relaierrors.ErrQuery, relaierrors.ErrUnexpectedStatus},
		},
		{
			name:       "success status other than 200",
			status:     http.StatusNoContent,
			body:       ``,
			wantErrs:   []error{relaierrors.ErrUnexpectedStatus},
			rejectErrs: []error{relaierrors.ErrDecode, relaierrors.ErrQuery},
		},
		{
			name:       "graphql error mentioning a timeout",
			status:     http.StatusOK,
			body:       `{"errors":[{"message":"Timeout on validation of query"}]}`,
			wantErrs:   []error{relaierrors.ErrQuery},
			rejectErrs: []error{relaierrors.ErrNetworkFailure, relaierrors.ErrDecode},
		},
		{
			name:       "shape mismatch",
			status:     http.StatusOK,
			body:       `{"data":{"user":{"repositories":{"nodes":[{"name":42}]}}}}`,
			wantErrs:   []error{relaierrors.ErrDecode},
			rejectErrs: []error{relaierrors.ErrQuery},
		},
		{
			name:       "unknown user",
			status:     http.StatusOK,
			body:       `{"data":{"user":null},"errors":[{"type":"NOT_FOUND","path":["user"],"message":"Could not resolve to a User with the login of 'ghost'."}]}`,
			wantErrs:   []error{relaierrors.ErrQuery, relaierrors.ErrUserNotFound},
			rejectErrs: []error{relaierrors.ErrDecode, relaierrors.ErrUnexpectedStatus},
		},
		{
			name:       "other graphql error",
			status:     http.StatusOK,
			body:       `{"errors":[{"message":"Something went wrong while executing your query."}]}`,
			wantErrs:   []error{relaierrors.ErrQuery},
			rejectErrs: []error{relaierrors.ErrUserNotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := newTestGraphQLClient(t, server.URL, Options{})
			page, err := client.FetchRepositories(context.Background(), "ghost", FetchOptions{})
			if err == nil {
				t.Fatalf("expected error, got page %+v", page)
			}
			for _, want := range tt.wantErrs {
				if !errors.Is(err, want) {
					t.Errorf("error %v does not match %v", err, want)
				}
			}
			for _, reject := range tt.rejectErrs {
				if errors.Is(err, reject) {
					t.Errorf("error %v must not match %v", err, reject)
				}
			}
		})
	}
}

func TestGraphQLClient_StatusErrorKeepsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"Resource not accessible by integration"}`)
	}))
	defer server.Close()

	client := newTestGraphQLClient(t, server.URL, Options{})
	_, err := client.FetchRepositories(context.Background(), "octocat", FetchOptions{})

	var statusErr *relaierrors.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error %v is not a StatusError", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", statusErr.StatusCode)
	}
	if !strings.Contains(statusErr.Body, "Resource not accessible") {
		t.Errorf("Body = %q", statusErr.Body)
	}
}

func TestGraphQLClient_NetworkErrors(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		client := newTestGraphQLClient(t, url, Options{})
		_, err := client.FetchRepositories(context.Background(), "octocat", FetchOptions{})
		if !errors.Is(err, relaierrors.ErrNetworkFailure) {
			t.Errorf("error = %v, want ErrNetworkFailure", err)
		}
		if errors.Is(err, relaierrors.ErrDecode) || errors.Is(err, relaierrors.ErrUnexpectedStatus) {
			t.Errorf("error %v classified more than once", err)
		}
	})

	t.Run("request timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		client := newTestGraphQLClient(t, server.URL, Options{Timeout: 50 * time.Millisecond})
		_, err := client.FetchRepositories(context.Background(), "octocat", FetchOptions{})
		if !errors.Is(err, relaierrors.ErrNetworkFailure) {
			t.Errorf("error = %v, want ErrNetworkFailure", err)
		}
	})
}

func TestGraphQLClient_InvalidInputMakesNoRequest(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := newTestGraphQLClient(t, server.URL, Options{})
	_, err := client.FetchRepositories(context.Background(), "octocat", FetchOptions{PageSize: 500})
	if !errors.Is(err, relaierrors.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if calls != 0 {
		t.Errorf("server received %d requests, want 0", calls)
	}
}

func TestLimitedReader(t *testing.T) {
	lr := &limitedReader{
		ReadCloser: nopCloser{strings.NewReader(strings.Repeat("x", 32))},
		limit:      16,
	}

	buf := make([]byte, 64)
	n, err := lr.Read(buf)
	if err != nil || n != 16 {
		t.Fatalf("first Read = %d, %v; want 16, nil", n, err)
	}
	if _, err := lr.Read(buf); err == nil || !strings.Contains(err.Error(), "response size exceeded") {
		t.Errorf("second Read error = %v, want size limit error", err)
	}
}

type nopCloser struct{ *strings.Reader }

func (nopCloser) Close() error { return nil }
