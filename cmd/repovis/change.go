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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/repovis/internal/config"
	relaierrors "github.com/sirseerhq/repovis/internal/errors"
	"github.com/sirseerhq/repovis/internal/github"
	"github.com/sirseerhq/repovis/internal/output"
	"github.com/sirseerhq/repovis/internal/visibility"
)

func newChangeCommand(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "change <login> <repo:visibility>...",
		Short: "Change the visibility of one or more repositories",
		Long: `Change the visibility of repositories owned by a GitHub user.

Each change is written as <repo>:<visibility>, where visibility is public
or private. Changes are applied in order and independently: a failed or
malformed change does not stop the others.

Applied changes are reported on stdout, failures and a summary on stderr.
The command exits 0 even when some changes fail, unless --strict is set.`,
		Example: "  repovis change octocat Hello-World:private dotfiles:public",
		Args:    usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLogin(args[0]); err != nil {
				return err
			}
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			client, err := a.newClient(cfg, args[0])
			if err != nil {
				return err
			}
			return a.runChange(cmd, cfg, client, args[0], args[1:], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error if any change fails")

	return cmd
}

func (a *app) runChange(cmd *cobra.Command, cfg *config.Config, updater github.VisibilityUpdater, login string, tokens []string, strict bool) error {
	reqs := visibility.ParseRequests(tokens)
	results := visibility.NewExecutor(updater, a.log).ApplyAll(cmd.Context(), login, reqs)
	summary := visibility.Summarize(results)

	a.log.WithFields(logrus.Fields{
		"login":     login,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	}).Debug("batch complete")

	if err := a.writeResults(cmd, cfg, results); err != nil {
		return err
	}

	if strict && summary.Failed > 0 {
		return fmt.Errorf("%d of %d changes failed: %w", summary.Failed, summary.Total(), relaierrors.ErrPartialFailure)
	}
	return nil
}

func (a *app) writeResults(cmd *cobra.Command, cfg *config.Config, results []visibility.Result) error {
	if cfg.Defaults.OutputFormat == config.OutputNDJSON {
		w, err := a.ndjsonWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := output.WriteResults(w, results); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	}

	out, closeOut, err := a.openOutput(cmd)
	if err != nil {
		return err
	}
	if err := output.WriteResultLines(out, cmd.ErrOrStderr(), results); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}
