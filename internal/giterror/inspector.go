package giterror

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/url"
	"reflect"
	"strings"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
)

// Inspector provides methods for analyzing GitHub API errors.
type Inspector interface {
	// IsStatusError returns true if the error represents a non-2xx HTTP response.
	IsStatusError(err error) bool

	// IsDecodeError returns true if the response body could not be decoded
	// into the expected shape.
	IsDecodeError(err error) bool

	// IsNotFoundError returns true if the error represents a resource not found error.
	IsNotFoundError(err error) bool

	// IsNetworkError returns true if the error represents a network connectivity error.
	IsNetworkError(err error) bool

	// IsQueryError returns true if the error is the errors array of a
	// GraphQL response.
	IsQueryError(err error) bool
}

// graphqlPackage is the package declaring the errors array type that
// shurcooL/graphql returns as an error.
const graphqlPackage = "github.com/shurcooL/graphql"

// GitHubErrorInspector implements the Inspector interface by looking at
// error messages. It is the fallback for libraries that only return
// formatted errors.
type GitHubErrorInspector struct{}

// NewInspector creates the default inspector: error chain checks first,
// message checks second.
func NewInspector() Inspector {
	return NewErrorChainInspector(&GitHubErrorInspector{})
}

// IsStatusError checks for the message shurcooL/graphql produces on non-200 responses.
func (i *GitHubErrorInspector) IsStatusError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "non-200 ok status code")
}

// IsDecodeError checks for decoder messages.
func (i *GitHubErrorInspector) IsDecodeError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "cannot unmarshal") ||
		strings.Contains(errStr, "invalid character") ||
		strings.Contains(errStr, "unexpected end of json") ||
		strings.Contains(errStr, "places to unmarshal") ||
		strings.Contains(errStr, "invalid token") ||
		strings.Contains(errStr, "response size exceeded")
}

// IsNotFoundError checks if the error is a not found error.
func (i *GitHubErrorInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "404") ||
		strings.Contains(errStr, "not found") ||
		strings.Contains(errStr, "could not resolve to a user")
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *GitHubErrorInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}

// IsQueryError always reports false: a GraphQL error message carries no
// marker that tells it apart from any other text.
func (i *GitHubErrorInspector) IsQueryError(err error) bool {
	return false
}

// ErrorChainInspector wraps a base inspector and adds support for checking errors
// in the error chain using errors.Is and errors.As.
type ErrorChainInspector struct {
	base Inspector
}

// NewErrorChainInspector creates a new ErrorChainInspector that checks both
// the error chain and falls back to string-based inspection.
func NewErrorChainInspector(base Inspector) Inspector {
	return &ErrorChainInspector{base: base}
}

// IsStatusError checks for a *StatusError in the chain.
func (e *ErrorChainInspector) IsStatusError(err error) bool {
	var statusErr *relaierrors.StatusError
	if errors.As(err, &statusErr) {
		return true
	}
	return e.base.IsStatusError(err)
}

// IsDecodeError checks for encoding/json error types, then falls back to base inspector.
// Errors raised by the HTTP round trip itself are never decode errors.
func (e *ErrorChainInspector) IsDecodeError(err error) bool {
	if err == nil || e.IsStatusError(err) {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return false
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	return e.base.IsDecodeError(err)
}

// IsNotFoundError checks the status code first, then falls back to base inspector.
func (e *ErrorChainInspector) IsNotFoundError(err error) bool {
	var statusErr *relaierrors.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == 404
	}
	return e.base.IsNotFoundError(err)
}

// IsNetworkError checks for net.Error in the chain. A *url.Error is itself a
// net.Error, so status errors raised inside a RoundTripper are excluded first.
func (e *ErrorChainInspector) IsNetworkError(err error) bool {
	if err == nil || e.IsStatusError(err) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return e.base.IsNetworkError(err)
}

// IsQueryError looks for the errors array type of shurcooL/graphql in the
// chain. The type is unexported, so it is matched by kind and package.
func (e *ErrorChainInspector) IsQueryError(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		t := reflect.TypeOf(err)
		if t.Kind() == reflect.Slice && t.PkgPath() == graphqlPackage {
			return true
		}
	}
	return e.base.IsQueryError(err)
}
