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
	"errors"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
	"github.com/sirseerhq/repovis/internal/giterror"
)

// RESTClient implements VisibilityUpdater using GitHub's REST API.
type RESTClient struct {
	client    *gh.Client
	inspector giterror.Inspector
	log       logrus.FieldLogger
}

// NewRESTClient creates a REST client rooted at opts.APIEndpoint.
func NewRESTClient(creds Credentials, opts Options) (*RESTClient, error) {
	opts = opts.withDefaults()

	baseURL, err := url.Parse(strings.TrimSuffix(opts.APIEndpoint, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid API endpoint %q: %w", opts.APIEndpoint, err)
	}

	// go-github checks status codes itself and reports them as typed errors.
	client := gh.NewClient(newHTTPClient(creds, opts, false))
	client.BaseURL = baseURL
	client.UserAgent = fmt.Sprintf("repovis/%s", opts.Version)

	return &RESTClient{
		client:    client,
		inspector: giterror.NewInspector(),
		log:       opts.Logger,
	}, nil
}

// UpdateVisibility sets the visibility of owner/repo. The change only counts
// as applied when the response carries both the repository name and its
// private flag.
func (c *RESTClient) UpdateVisibility(ctx context.Context, owner, repo string, visibility Visibility) (*VisibilityUpdate, error) {
	if !visibility.Settable() {
		return nil, fmt.Errorf("visibility %q cannot be set: %w", visibility, relaierrors.ErrValidation)
	}

	c.log.WithFields(logrus.Fields{
		"owner":      owner,
		"repository": repo,
		"visibility": visibility,
	}).Debug("updating repository visibility")

	v := string(visibility)
	updated, _, err := c.client.Repositories.Edit(ctx, owner, repo, &gh.Repository{Visibility: &v})
	if err != nil {
		return nil, c.mapError(err, owner, repo)
	}

	if updated == nil || updated.Name == nil || updated.Private == nil {
		return nil, fmt.Errorf("updating %s/%s: %w: response is missing name or private", owner, repo, relaierrors.ErrDecode)
	}

	return &VisibilityUpdate{
		Name:    updated.GetName(),
		Private: updated.GetPrivate(),
	}, nil
}

// mapError maps go-github errors to our domain errors, keeping the cause.
func (c *RESTClient) mapError(err error, owner, repo string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	if statusErr := statusFromREST(err); statusErr != nil {
		return fmt.Errorf("updating %s/%s: %w", owner, repo, statusErr)
	}

	if c.inspector.IsDecodeError(err) {
		return fmt.Errorf("updating %s/%s: %w: %w", owner, repo, relaierrors.ErrDecode, err)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("updating %s/%s: %w: %w", owner, repo, relaierrors.ErrNetworkFailure, err)
	}

	return fmt.Errorf("updating %s/%s: %w", owner, repo, err)
}

// statusFromREST extracts the HTTP status from go-github's typed errors.
func statusFromREST(err error) *relaierrors.StatusError {
	var (
		errResp  *gh.ErrorResponse
		rateErr  *gh.RateLimitError
		abuseErr *gh.AbuseRateLimitError
		status   *relaierrors.StatusError
	)

	switch {
	case errors.As(err, &rateErr) && rateErr.Response != nil:
		status = &relaierrors.StatusError{StatusCode: rateErr.Response.StatusCode, Status: rateErr.Response.Status, Body: rateErr.Message}
	case errors.As(err, &abuseErr) && abuseErr.Response != nil:
		status = &relaierrors.StatusError{StatusCode: abuseErr.Response.StatusCode, Status: abuseErr.Response.Status, Body: abuseErr.Message}
	case errors.As(err, &errResp) && errResp.Response != nil:
		status = &relaierrors.StatusError{StatusCode: errResp.Response.StatusCode, Status: errResp.Response.Status, Body: errResp.Message}
	}

	return status
}
