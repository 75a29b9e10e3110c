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

// Package config provides configuration management for repovis with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags (applied by the CLI)
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The environment is never read directly. Callers pass a LookupFunc, which
// lets the CLI merge the process environment with a .env file and lets
// tests supply a fixed map.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	relaierrors "github.com/sirseerhq/repovis/internal/errors"
)

// LookupFunc resolves an environment variable, reporting whether it was set.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a LookupFunc backed by the process environment, falling
// back to the values of the given dotenv files. Files that do not exist are
// skipped; files that cannot be parsed are an error.
func EnvLookup(dotenvFiles ...string) (LookupFunc, error) {
	fileValues := make(map[string]string)
	for _, path := range dotenvFiles {
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for k, v := range values {
			if _, seen := fileValues[k]; !seen {
				fileValues[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	}, nil
}

// MapLookup returns a LookupFunc over a fixed set of values.
func MapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// LoadConfig loads configuration from its sources. If configPath is
// provided, it loads from that specific file. Otherwise, it searches:
//   - .repovis.yaml (current directory)
//   - .repovis.yml (current directory)
//   - ~/.repovis/config.yaml
//
// Environment overrides are applied afterwards. LoadConfig does not
// validate; call Validate once command-line overrides are in place.
func LoadConfig(configPath string, lookup LookupFunc) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(expandPath(configPath, lookup), cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		for _, path := range defaultPaths(lookup) {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg, lookup)

	return cfg, nil
}

func defaultPaths(lookup LookupFunc) []string {
	paths := []string{".repovis.yaml", ".repovis.yml"}
	if home, ok := lookup("HOME"); ok && home != "" {
		paths = append(paths, filepath.Join(home, ".repovis", "config.yaml"))
	}
	return paths
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
// Unparseable values are ignored and the previous value is kept.
func applyEnvOverrides(cfg *Config, lookup LookupFunc) {
	if endpoint, ok := lookup("GITHUB_API_ENDPOINT"); ok && endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint, ok := lookup("GITHUB_GRAPHQL_ENDPOINT"); ok && endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}
	if scheme, ok := lookup("REPOVIS_AUTH_SCHEME"); ok && scheme != "" {
		cfg.GitHub.AuthScheme = strings.ToLower(strings.TrimSpace(scheme))
	}

	if pageSize, ok := lookup("REPOVIS_PAGE_SIZE"); ok {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
	if maxPages, ok := lookup("REPOVIS_MAX_PAGES"); ok {
		if n, err := parsePositiveInt(maxPages); err == nil {
			cfg.Defaults.MaxPages = n
		}
	}
	if timeout, ok := lookup("REPOVIS_REQUEST_TIMEOUT"); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(timeout)); err == nil {
			cfg.Defaults.RequestTimeout = d
		}
	}
	if format, ok := lookup("REPOVIS_OUTPUT"); ok && format != "" {
		cfg.Defaults.OutputFormat = strings.ToLower(strings.TrimSpace(format))
	}
}

// ResolveToken returns the access token: the flag value if set, otherwise
// the variable named by GitHub.TokenEnv.
func ResolveToken(flagToken string, cfg *Config, lookup LookupFunc) (string, error) {
	if flagToken != "" {
		return flagToken, nil
	}
	if token, ok := lookup(cfg.GitHub.TokenEnv); ok && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token), nil
	}
	return "", fmt.Errorf("%w: set %s or use --token flag", relaierrors.ErrMissingToken, cfg.GitHub.TokenEnv)
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string, lookup LookupFunc) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := lookup("HOME")
		if home == "" {
			home, _ = lookup("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.Expand(path, func(key string) string {
		v, _ := lookup(key)
		return v
	})
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their YAML names so messages match the config file.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration against the constraints declared on
// its fields. All violations are reported in a single error wrapping
// ErrInvalidConfig.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", relaierrors.ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", relaierrors.ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s cannot be empty", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL, got %q", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", field, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", field, fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
