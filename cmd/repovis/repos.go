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
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/repovis/internal/config"
	"github.com/sirseerhq/repovis/internal/github"
	"github.com/sirseerhq/repovis/internal/output"
	"github.com/sirseerhq/repovis/internal/pager"
)

func newReposCommand(a *app) *cobra.Command {
	var descWidth int

	cmd := &cobra.Command{
		Use:     "repos <login>",
		Aliases: []string{"list"},
		Short:   "List a user's repositories with their visibility",
		Long: `List every repository owned by a GitHub user, with its visibility and
description, sorted by name.

Table output fits descriptions into a fixed-width column. NDJSON output
(--output ndjson) writes one JSON object per repository.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLogin(args[0]); err != nil {
				return err
			}
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("desc-width") {
				cfg.Defaults.DescriptionWidth = descWidth
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			client, err := a.newClient(cfg, args[0])
			if err != nil {
				return err
			}
			return a.runRepos(cmd, cfg, client, args[0])
		},
	}

	cmd.Flags().IntVar(&descWidth, "desc-width", output.DefaultDescriptionWidth, "Width of the description column in table output")

	return cmd
}

func (a *app) runRepos(cmd *cobra.Command, cfg *config.Config, fetcher github.PageFetcher, login string) error {
	repos, err := listRepositories(cmd.Context(), fetcher, login, cfg, a.log)
	if err != nil {
		return err
	}

	if cfg.Defaults.OutputFormat == config.OutputNDJSON {
		return a.writeRepositoriesNDJSON(cmd, repos)
	}

	out, closeOut, err := a.openOutput(cmd)
	if err != nil {
		return err
	}
	if err := output.NewTable(cfg.Defaults.DescriptionWidth).WriteRepositories(out, repos); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func listRepositories(ctx context.Context, fetcher github.PageFetcher, login string, cfg *config.Config, log logrus.FieldLogger) ([]github.Repository, error) {
	p := pager.New(fetcher, pager.Options{
		PageSize: cfg.Defaults.PageSize,
		MaxPages: cfg.Defaults.MaxPages,
		Logger:   log,
	})
	repos, err := p.FetchAll(ctx, login)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"login": login, "total": len(repos)}).Debug("listing complete")
	return repos, nil
}

func (a *app) writeRepositoriesNDJSON(cmd *cobra.Command, repos []github.Repository) error {
	w, err := a.ndjsonWriter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := output.WriteRepositories(w, repos); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// ndjsonWriter returns a writer over --output-file when set, otherwise
// over stdout.
func (a *app) ndjsonWriter(stdout io.Writer) (output.OutputWriter, error) {
	if a.flags.outputFile != "" {
		return output.NewFileWriter(a.flags.outputFile)
	}
	return output.NewWriter(stdout), nil
}
