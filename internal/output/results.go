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

package output

import (
	"fmt"
	"io"

	"github.com/sirseerhq/repovis/internal/visibility"
)

// ResultRecord is the NDJSON form of a visibility change outcome.
type ResultRecord struct {
	Repository string `json:"repository"`
	Requested  string `json:"requested,omitempty"`
	Succeeded  bool   `json:"succeeded"`
	Private    *bool  `json:"private,omitempty"`
	Error      string `json:"error,omitempty"`
}

// NewResultRecord converts a Result for NDJSON output.
func NewResultRecord(r visibility.Result) ResultRecord {
	rec := ResultRecord{
		Repository: r.Repository,
		Requested:  string(r.Requested),
		Succeeded:  r.Succeeded,
		Private:    r.Private,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}

// WriteResults writes one record per result, stopping at the first failed
// write.
func WriteResults(w OutputWriter, results []visibility.Result) error {
	for _, r := range results {
		if err := w.Write(NewResultRecord(r)); err != nil {
			return err
		}
	}
	return nil
}

// WriteResultLines writes a human-readable report of a batch: one line per
// applied change to out, then one line per failure and the summary to
// errOut.
func WriteResultLines(out, errOut io.Writer, results []visibility.Result) error {
	for _, r := range results {
		if !r.Succeeded {
			continue
		}
		state := "public"
		if r.Private != nil && *r.Private {
			state = "private"
		}
		if _, err := fmt.Fprintf(out, "ok %s -> %s\n", r.Repository, state); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	for _, r := range results {
		if r.Succeeded {
			continue
		}
		if _, err := fmt.Fprintf(errOut, "failed %s: %v\n", r.Repository, r.Err); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	summary := visibility.Summarize(results)
	if _, err := fmt.Fprintf(errOut, "%d of %d changes applied, %d failed\n", summary.Succeeded, summary.Total(), summary.Failed); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
