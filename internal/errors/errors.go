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

// Package errors defines sentinel errors for consistent error handling across the application.
// Callers wrap them with fmt.Errorf and %w so that errors.Is keeps working
// through the whole cause chain.
package errors

import (
	"errors"
	"fmt"
)

// Invocation and configuration errors.
var (
	// ErrUsage indicates a bad command-line invocation.
	ErrUsage = errors.New("invalid usage")

	// ErrMissingToken indicates no access token could be resolved from
	// flags, the environment or a .env file.
	ErrMissingToken = errors.New("github token not found")

	// ErrInvalidConfig indicates the loaded configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrValidation indicates caller input that was rejected before any
	// network call was made, such as a malformed repo:visibility token.
	ErrValidation = errors.New("validation failed")
)

// Transport errors. Every failure of a request maps to exactly one of
// ErrNetworkFailure, ErrUnexpectedStatus, ErrDecode or ErrQuery.
var (
	// ErrNetworkFailure indicates a network connection problem.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrUnexpectedStatus indicates the server answered with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrInvalidToken indicates GitHub authentication failed.
	// Always reported together with ErrUnexpectedStatus.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrDecode indicates the response body did not have the expected shape.
	ErrDecode = errors.New("malformed response body")

	// ErrQuery indicates the GraphQL endpoint answered with an errors array.
	ErrQuery = errors.New("graphql query failed")

	// ErrUserNotFound indicates the requested login does not exist.
	// Always reported together with ErrQuery.
	ErrUserNotFound = errors.New("user not found")
)

// Pagination and batch errors.
var (
	// ErrPageLimit indicates the paginator hit its configured page ceiling
	// before the server reported the last page.
	ErrPageLimit = errors.New("page limit exceeded")

	// ErrInvalidPage indicates page info that cannot be followed, such as
	// hasNextPage without an endCursor.
	ErrInvalidPage = errors.New("inconsistent page info")

	// ErrPartialFailure indicates at least one item of a batch failed.
	ErrPartialFailure = errors.New("one or more changes failed")
)

// StatusError describes a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned %s", e.Status)
	}
	return fmt.Sprintf("server returned %s: %s", e.Status, e.Body)
}

// Is reports ErrUnexpectedStatus for every StatusError, and ErrInvalidToken
// for 401 responses.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnexpectedStatus:
		return true
	case ErrInvalidToken:
		return e.StatusCode == 401
	}
	return false
}
