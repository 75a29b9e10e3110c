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

package testutil

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// AssertNDJSONLines validates that output holds exactly n lines of valid
// JSON and returns them decoded.
func AssertNDJSONLines(t *testing.T, output string, n int) []map[string]interface{} {
	t.Helper()

	trimmed := strings.TrimSpace(output)
	var lines []string
	if trimmed != "" {
		lines = strings.Split(trimmed, "\n")
	}
	if len(lines) != n {
		t.Fatalf("Expected %d NDJSON lines, got %d:\n%s", n, len(lines), output)
	}

	records := make([]map[string]interface{}, 0, n)
	for i, line := range lines {
		var record map[string]interface{}
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("Line %d is not valid JSON: %v\n%s", i+1, err, line)
		}
		records = append(records, record)
	}
	return records
}

// AssertContainsString checks if a string contains a substring
func AssertContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected string to contain %q, got: %s", needle, haystack)
	}
}

// AssertNotContainsString checks if a string does not contain a substring
func AssertNotContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("Expected string to NOT contain %q, got: %s", needle, haystack)
	}
}

// AssertErrorIs checks that err matches every target with errors.Is
func AssertErrorIs(t *testing.T, err error, targets ...error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	for _, target := range targets {
		if !errors.Is(err, target) {
			t.Errorf("Expected error to match %v, got: %v", target, err)
		}
	}
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertEqual compares two values and fails if they're not equal
func AssertEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	if got != want {
		t.Errorf("Got %v, want %v", got, want)
	}
}
