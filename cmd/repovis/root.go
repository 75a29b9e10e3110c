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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/repovis/internal/config"
	relaierrors "github.com/sirseerhq/repovis/internal/errors"
	"github.com/sirseerhq/repovis/internal/github"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	token      string
	output     string
	outputFile string
	pageSize   int
	maxPages   int
	timeout    time.Duration
	verbose    bool
}

// app carries the state shared by the commands of one invocation.
type app struct {
	flags  globalFlags
	lookup config.LookupFunc
	log    *logrus.Logger
}

func newApp(logOut io.Writer, lookup config.LookupFunc) *app {
	log := logrus.New()
	log.SetOutput(logOut)
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &app{lookup: lookup, log: log}
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repovis",
		Short: "List and change the visibility of GitHub repositories",
		Long: `repovis lists the repositories owned by a GitHub user together with
their visibility, and switches repositories between public and private
in a single batch.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_AUTH_TOKEN, in the environment or in a .env file`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.flags.verbose {
				a.log.SetLevel(logrus.DebugLevel)
			}
		},
		// Unknown commands fall through to here and only print help.
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: a command is required", relaierrors.ErrUsage)
			}
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Path to config file (default: .repovis.yaml or ~/.repovis/config.yaml)")
	pf.StringVar(&a.flags.token, "token", "", "GitHub access token (overrides GITHUB_AUTH_TOKEN)")
	pf.StringVarP(&a.flags.output, "output", "o", config.OutputTable, "Output format: table or ndjson")
	pf.StringVar(&a.flags.outputFile, "output-file", "", "Write output to this file instead of stdout")
	pf.IntVar(&a.flags.pageSize, "page-size", github.DefaultPageSize, "Repositories requested per page (1-100)")
	pf.IntVar(&a.flags.maxPages, "max-pages", 2000, "Maximum number of pages fetched for one listing")
	pf.DurationVar(&a.flags.timeout, "timeout", 30*time.Second, "Timeout for each HTTP request")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Log requests and pages to stderr")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", relaierrors.ErrUsage, err)
	})

	rootCmd.AddCommand(newReposCommand(a))
	rootCmd.AddCommand(newChangeCommand(a))

	return rootCmd
}

// usageArgs wraps a positional argument validator so its failures are
// reported as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", relaierrors.ErrUsage, err)
		}
		return nil
	}
}

// loadConfig resolves the configuration for cmd: file and environment
// first, then any flag the user set explicitly.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(a.flags.configPath, a.lookup)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", relaierrors.ErrInvalidConfig, err)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Defaults.OutputFormat = strings.ToLower(a.flags.output)
	}
	if flags.Changed("page-size") {
		cfg.Defaults.PageSize = a.flags.pageSize
	}
	if flags.Changed("max-pages") {
		cfg.Defaults.MaxPages = a.flags.maxPages
	}
	if flags.Changed("timeout") {
		cfg.Defaults.RequestTimeout = a.flags.timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"graphql_endpoint": cfg.GitHub.GraphQLEndpoint,
		"api_endpoint":     cfg.GitHub.APIEndpoint,
		"auth_scheme":      cfg.GitHub.AuthScheme,
		"page_size":        cfg.Defaults.PageSize,
	}).Debug("configuration loaded")

	return cfg, nil
}

// newClient builds the GitHub client for login. A missing token is fatal
// before any request is made.
func (a *app) newClient(cfg *config.Config, login string) (*github.APIClient, error) {
	token, err := config.ResolveToken(a.flags.token, cfg, a.lookup)
	if err != nil {
		return nil, err
	}

	return github.NewClient(github.Credentials{Login: login, Token: token}, github.Options{
		GraphQLEndpoint: cfg.GitHub.GraphQLEndpoint,
		APIEndpoint:     cfg.GitHub.APIEndpoint,
		AuthScheme:      github.AuthScheme(cfg.GitHub.AuthScheme),
		Timeout:         cfg.Defaults.RequestTimeout,
		Version:         version,
		Logger:          a.log,
	})
}

// openOutput returns the destination for command output and a function
// that releases it.
func (a *app) openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if a.flags.outputFile == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(a.flags.outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// validateLogin rejects logins that cannot name a GitHub account.
func validateLogin(login string) error {
	if strings.TrimSpace(login) == "" {
		return fmt.Errorf("%w: login cannot be empty", relaierrors.ErrUsage)
	}
	if strings.ContainsAny(login, " /\t\n") {
		return fmt.Errorf("%w: invalid login %q", relaierrors.ErrUsage, login)
	}
	return nil
}
