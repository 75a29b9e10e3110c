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
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/sirseerhq/repovis/internal/github"
)

const (
	nameHeader        = "repo_name"
	visibilityHeader  = "visibility"
	descriptionHeader = "description"

	visibilityWidth = 10

	// DefaultDescriptionWidth is the description column width when none is
	// configured.
	DefaultDescriptionWidth = 50

	ellipsis = "..."
)

// Table renders repositories as a fixed-width text table. Widths are
// measured in terminal cells, so wide runes keep the columns aligned.
type Table struct {
	DescriptionWidth int
}

// NewTable creates a Table. A width below the header length falls back to
// DefaultDescriptionWidth.
func NewTable(descriptionWidth int) *Table {
	if descriptionWidth < runewidth.StringWidth(descriptionHeader) {
		descriptionWidth = DefaultDescriptionWidth
	}
	return &Table{DescriptionWidth: descriptionWidth}
}

// WriteRepositories writes the header, the separator row and one row per
// repository. An empty listing produces the header and separator only.
func (t *Table) WriteRepositories(w io.Writer, repos []github.Repository) error {
	nameWidth := runewidth.StringWidth(nameHeader)
	for _, repo := range repos {
		if width := runewidth.StringWidth(repo.Name); width > nameWidth {
			nameWidth = width
		}
	}
	descWidth := t.DescriptionWidth

	var b strings.Builder
	fmt.Fprintf(&b, " %s %s %s\n",
		cell(nameHeader, nameWidth),
		cell(visibilityHeader, visibilityWidth),
		cell(descriptionHeader, descWidth))
	fmt.Fprintf(&b, "-%s-%s-%s-\n",
		strings.Repeat("=", nameWidth),
		strings.Repeat("=", visibilityWidth),
		strings.Repeat("=", descWidth))

	for _, repo := range repos {
		desc := ""
		if repo.Description != nil {
			desc = singleLine(*repo.Description)
		}
		fmt.Fprintf(&b, "|%s|%s|%s\n",
			cell(repo.Name, nameWidth),
			cell(string(repo.Visibility), visibilityWidth),
			cell(desc, descWidth))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// cell truncates s to width cells, marking the cut with an ellipsis, and
// pads it on the right.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ellipsis), width)
}

// singleLine keeps multi-line descriptions from breaking the row layout.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
