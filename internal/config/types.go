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

// Package config types define the configuration structures used throughout
// repovis. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

import "time"

// Auth schemes understood by the GitHub transport.
const (
	AuthSchemeBasic = "basic"
	AuthSchemeToken = "token"
)

// Output formats understood by the CLI.
const (
	OutputTable  = "table"
	OutputNDJSON = "ndjson"
)

// Config represents the complete configuration for repovis.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// GitHubConfig contains GitHub-specific settings including API endpoints
// and authentication configuration. Custom endpoints allow GitHub
// Enterprise deployments.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint" validate:"required,url"`
	GraphQLEndpoint string `yaml:"graphql_endpoint" validate:"required,url"`
	TokenEnv        string `yaml:"token_env" validate:"required"`
	AuthScheme      string `yaml:"auth_scheme" validate:"oneof=basic token"`
}

// DefaultsConfig controls listing and output behavior unless overridden by
// command-line flags.
type DefaultsConfig struct {
	// PageSize is the number of repositories requested per page.
	// GitHub caps connections at 100 nodes.
	PageSize int `yaml:"page_size" validate:"min=1,max=100"`

	// MaxPages bounds the number of round trips a single listing may make.
	MaxPages int `yaml:"max_pages" validate:"min=1"`

	// RequestTimeout applies to each HTTP request individually.
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0s"`

	OutputFormat string `yaml:"output_format" validate:"oneof=table ndjson"`

	// DescriptionWidth is at least as wide as the "description" header.
	DescriptionWidth int `yaml:"description_width" validate:"min=11,max=500"`
}

// DefaultConfig returns a Config with defaults suitable for github.com.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com",
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_AUTH_TOKEN",
			AuthScheme:      AuthSchemeBasic,
		},
		Defaults: DefaultsConfig{
			PageSize:         100,
			MaxPages:         2000,
			RequestTimeout:   30 * time.Second,
			OutputFormat:     OutputTable,
			DescriptionWidth: 50,
		},
	}
}
