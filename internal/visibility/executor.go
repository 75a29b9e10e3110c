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

	"github.com/sirupsen/logrus"

	"github.com/sirseerhq/repovis/internal/github"
)

// Result is the outcome of one Request.
type Result struct {
	Repository string            `json:"repository"`
	Requested  github.Visibility `json:"requested,omitempty"`
	Succeeded  bool              `json:"succeeded"`
	Private    *bool             `json:"private,omitempty"`
	Err        error             `json:"-"`
}

// Executor applies visibility changes one at a time.
type Executor struct {
	updater github.VisibilityUpdater
	log     logrus.FieldLogger
}

// NewExecutor creates an Executor. A nil logger uses the logrus standard
// logger.
func NewExecutor(updater github.VisibilityUpdater, logger logrus.FieldLogger) *Executor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Executor{updater: updater, log: logger}
}

// ApplyAll applies every request to login's repositories, in order, and
// returns one Result per request. Requests that failed to parse are never
// sent. A cancelled context fails the remaining requests with ctx.Err().
func (e *Executor) ApplyAll(ctx context.Context, login string, reqs []Request) []Result {
	results := make([]Result, 0, len(reqs))

	for _, req := range reqs {
		result := Result{
			Repository: req.Label(),
			Requested:  req.Visibility,
		}

		switch {
		case req.Err != nil:
			result.Err = req.Err
		case ctx.Err() != nil:
			result.Err = ctx.Err()
		default:
			update, err := e.updater.UpdateVisibility(ctx, login, req.Repository, req.Visibility)
			if err != nil {
				result.Err = err
			} else {
				private := update.Private
				result.Succeeded = true
				result.Private = &private
			}
		}

		entry := e.log.WithFields(logrus.Fields{
			"login":      login,
			"repository": result.Repository,
			"visibility": req.Visibility,
		})
		if result.Err != nil {
			entry.WithError(result.Err).Debug("visibility change failed")
		} else {
			entry.Debug("visibility changed")
		}

		results = append(results, result)
	}

	return results
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Summarize counts successes and failures in results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Succeeded {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// Total is the number of requests in the batch.
func (s Summary) Total() int {
	return s.Succeeded + s.Failed
}
