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

package visibility

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus/hooks/test"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
	"github.com/sirseerhq/repovis/internal/github"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		token    string
		wantRepo string
		wantVis  github.Visibility
		wantErr  bool
	}{
		{token: "Hello-World:private", wantRepo: "Hello-World", wantVis: github.VisibilityPrivate},
		{token: "dotfiles:PUBLIC", wantRepo: "dotfiles", wantVis: github.VisibilityPublic},
		{token: " spaced : public ", wantRepo: "spaced", wantVis: github.VisibilityPublic},
		{token: "reponame", wantErr: true},
		{token: ":private", wantErr: true},
		{token: "repo:", wantErr: true},
		{token: "repo:secret", wantErr: true},
		{token: "repo:internal", wantErr: true},
		{token: "repo:private:extra", wantErr: true},
		{token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			req := ParseRequest(tt.token)
			if tt.wantErr {
				if !errors.Is(req.Err, relaierrors.ErrValidation) {
					t.Errorf("ParseRequest(%q).Err = %v, want ErrValidation", tt.token, req.Err)
				}
				return
			}
			if req.Err != nil {
				t.Fatalf("ParseRequest(%q) unexpected error: %v", tt.token, req.Err)
			}
			if req.Repository != tt.wantRepo || req.Visibility != tt.wantVis {
				t.Errorf("ParseRequest(%q) = %s:%s, want %s:%s", tt.token, req.Repository, req.Visibility, tt.wantRepo, tt.wantVis)
			}
		})
	}
}

func newTestExecutor(updater github.VisibilityUpdater) *Executor {
	logger, _ := test.NewNullLogger()
	return NewExecutor(updater, logger)
}

func TestApplyAll_Independence(t *testing.T) {
	decodeErr := fmt.Errorf("%w: response is missing name or private", relaierrors.ErrDecode)
	mock := github.NewMockClient(github.GenerateRepositories(3), github.WithUpdateError("repo-0002", decodeErr))

	reqs := ParseRequests([]string{"repo-0001:private", "repo-0002:public", "repo-0003:private"})
	results := newTestExecutor(mock).ApplyAll(context.Background(), "octocat", reqs)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	gotOutcome := []bool{results[0].Succeeded, results[1].Succeeded, results[2].Succeeded}
	if diff := cmp.Diff([]bool{true, false, true}, gotOutcome); diff != "" {
		t.Errorf("outcomes mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(results[1].Err, relaierrors.ErrDecode) {
		t.Errorf("results[1].Err = %v, want ErrDecode", results[1].Err)
	}
	if results[2].Private == nil || !*results[2].Private {
		t.Errorf("results[2].Private = %v, want true", results[2].Private)
	}
	if len(mock.UpdateCalls) != 3 {
		t.Errorf("made %d update calls, want 3", len(mock.UpdateCalls))
	}

	wantOrder := []string{"repo-0001", "repo-0002", "repo-0003"}
	for i, r := range results {
		if r.Repository != wantOrder[i] {
			t.Errorf("results[%d].Repository = %s, want %s", i, r.Repository, wantOrder[i])
		}
	}
}

func TestApplyAll_MalformedTokenSkipsNetwork(t *testing.T) {
	mock := github.NewMockClient(github.GenerateRepositories(2))

	reqs := ParseRequests([]string{"repo-0001:private", "reponame", "repo-0002:public"})
	results := newTestExecutor(mock).ApplyAll(context.Background(), "octocat", reqs)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if !results[0].Succeeded || !results[2].Succeeded {
		t.Errorf("well-formed requests should succeed: %+v", results)
	}
	if results[1].Succeeded || !errors.Is(results[1].Err, relaierrors.ErrValidation) {
		t.Errorf("results[1] = %+v, want ErrValidation failure", results[1])
	}
	if results[1].Repository != "reponame" {
		t.Errorf("results[1].Repository = %q, want raw token", results[1].Repository)
	}

	want := []github.VisibilityChange{
		{Owner: "octocat", Repo: "repo-0001", Visibility: github.VisibilityPrivate},
		{Owner: "octocat", Repo: "repo-0002", Visibility: github.VisibilityPublic},
	}
	if diff := cmp.Diff(want, mock.UpdateCalls); diff != "" {
		t.Errorf("update calls mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := github.NewMockClient(github.GenerateRepositories(2))
	results := newTestExecutor(mock).ApplyAll(ctx, "octocat", ParseRequests([]string{"repo-0001:private", "repo-0002:private"}))

	for i, r := range results {
		if r.Succeeded || !errors.Is(r.Err, context.Canceled) {
			t.Errorf("results[%d] = %+v, want context.Canceled", i, r)
		}
	}
	if len(mock.UpdateCalls) != 0 {
		t.Errorf("made %d update calls, want 0", len(mock.UpdateCalls))
	}
}

func TestApplyAll_Empty(t *testing.T) {
	results := newTestExecutor(github.NewMockClient(nil)).ApplyAll(context.Background(), "octocat", nil)
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Repository: "a", Succeeded: true},
		{Repository: "b", Err: relaierrors.ErrDecode},
		{Repository: "c", Succeeded: true},
	}

	got := Summarize(results)
	if got != (Summary{Succeeded: 2, Failed: 1}) {
		t.Errorf("Summarize() = %+v, want 2 succeeded, 1 failed", got)
	}
	if got.Total() != 3 {
		t.Errorf("Total() = %d, want 3", got.Total())
	}
}
