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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{
			name:     "direct invalid token error",
			err:      ErrInvalidToken,
			sentinel: ErrInvalidToken,
			want:     true,
		},
		{
			name:     "wrapped decode error",
			err:      fmt.Errorf("fetching page 2: %w", ErrDecode),
			sentinel: ErrDecode,
			want:     true,
		},
		{
			name:     "different error type",
			err:      ErrUserNotFound,
			sentinel: ErrNetworkFailure,
			want:     false,
		},
		{
			name:     "sentinel and cause both wrapped",
			err:      fmt.Errorf("%w: %w", ErrNetworkFailure, errors.New("dial tcp: connection refused")),
			sentinel: ErrNetworkFailure,
			want:     true,
		},
		{
			name:     "nil error",
			err:      nil,
			sentinel: ErrInvalidToken,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.sentinel)
			if got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.sentinel, got, tt.want)
			}
		})
	}
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StatusError
		wantStatus  bool
		wantToken   bool
		wantMessage string
	}{
		{
			name:        "unauthorized",
			err:         &StatusError{StatusCode: 401, Status: "401 Unauthorized", Body: "Bad credentials"},
			wantStatus:  true,
			wantToken:   true,
			wantMessage: "server returned 401 Unauthorized: Bad credentials",
		},
		{
			name:        "server error without body",
			err:         &StatusError{StatusCode: 502, Status: "502 Bad Gateway"},
			wantStatus:  true,
			wantToken:   false,
			wantMessage: "server returned 502 Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("fetching repositories: %w", tt.err)
			if got := errors.Is(wrapped, ErrUnexpectedStatus); got != tt.wantStatus {
				t.Errorf("errors.Is(ErrUnexpectedStatus) = %v, want %v", got, tt.wantStatus)
			}
			if got := errors.Is(wrapped, ErrInvalidToken); got != tt.wantToken {
				t.Errorf("errors.Is(ErrInvalidToken) = %v, want %v", got, tt.wantToken)
			}
			if errors.Is(wrapped, ErrDecode) {
				t.Error("StatusError must not match ErrDecode")
			}
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}

			var statusErr *StatusError
			if !errors.As(wrapped, &statusErr) || statusErr.StatusCode != tt.err.StatusCode {
				t.Errorf("errors.As did not recover status code %d", tt.err.StatusCode)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidToken, "invalid github token"},
		{ErrMissingToken, "github token not found"},
		{ErrNetworkFailure, "network connection failed"},
		{ErrDecode, "malformed response body"},
		{ErrPageLimit, "page limit exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
