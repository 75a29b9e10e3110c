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
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
)

const (
	// maxResponseSize caps every response body.
	maxResponseSize = 10 * 1024 * 1024

	// maxErrorBody caps how much of a non-2xx body is kept in a StatusError.
	maxErrorBody = 64 * 1024
)

// newHTTPClient builds the HTTP client shared by every request of one API
// client. When checkStatus is set, non-2xx responses are turned into
// *StatusError before the caller sees them.
func newHTTPClient(creds Credentials, opts Options, checkStatus bool) *http.Client {
	// Create optimized transport with connection pooling
	base := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	userAgent := fmt.Sprintf("repovis/%s", opts.Version)

	var rt http.RoundTripper
	switch opts.AuthScheme {
	case AuthToken:
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token}),
			Base:   &authTransport{userAgent: userAgent, base: base},
		}
	default:
		rt = &authTransport{
			login:     creds.Login,
			token:     creds.Token,
			basic:     true,
			userAgent: userAgent,
			base:      base,
		}
	}

	if checkStatus {
		rt = &statusTransport{base: rt}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   opts.Timeout,
	}
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	// Calculate how much we can read
	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// authTransport adds credentials, the user agent and the body size limit to
// HTTP requests. With basic unset it only sets the user agent and leaves
// authorization to a wrapping transport.
type authTransport struct {
	login     string
	token     string
	basic     bool
	userAgent string
	base      http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	if t.basic {
		req.SetBasicAuth(t.login, t.token)
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      maxResponseSize,
		}
	}

	return resp, nil
}

// statusTransport rejects non-2xx responses with a *StatusError, so callers
// can tell a failed request from a body that does not decode.
type statusTransport struct {
	base http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, &relaierrors.StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}
