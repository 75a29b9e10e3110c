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
	"encoding/json"
	"errors"
	"testing"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
)

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		input   string
		want    Visibility
		wantErr bool
	}{
		{"public", VisibilityPublic, false},
		{"PRIVATE", VisibilityPrivate, false},
		{" Internal ", VisibilityInternal, false},
		{"secret", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVisibility(tt.input)
			if tt.wantErr {
				if !errors.Is(err, relaierrors.ErrValidation) {
					t.Errorf("ParseVisibility(%q) error = %v, want ErrValidation", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVisibility(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVisibility(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibilitySettable(t *testing.T) {
	if !VisibilityPublic.Settable() || !VisibilityPrivate.Settable() {
		t.Error("public and private must be settable")
	}
	if VisibilityInternal.Settable() {
		t.Error("internal must not be settable")
	}
}

func TestRepositoryJSON(t *testing.T) {
	desc := "Tools for the gopher"
	tests := []struct {
		name string
		repo Repository
		want string
	}{
		{
			name: "with description",
			repo: Repository{Name: "tools", Visibility: VisibilityPublic, Description: &desc},
			want: `{"name":"tools","visibility":"public","description":"Tools for the gopher"}`,
		},
		{
			name: "without description",
			repo: Repository{Name: "dotfiles", Visibility: VisibilityPrivate},
			want: `{"name":"dotfiles","visibility":"private"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.repo)
			if err != nil {
				t.Fatalf("Failed to marshal Repository: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("json = %s, want %s", data, tt.want)
			}
		})
	}
}
