package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zenith-platform/readygate/internal/adapters/outbound/config"
	"github.com/zenith-platform/readygate/internal/adapters/outbound/gitinfo"
	"github.com/zenith-platform/readygate/internal/adapters/outbound/history"
	"github.com/zenith-platform/readygate/internal/adapters/outbound/report"
	"github.com/zenith-platform/readygate/internal/adapters/outbound/toolrunner"
	"github.com/zenith-platform/readygate/internal/adapters/outbound/tui"
	"github.com/zenith-platform/readygate/internal/application"
	"github.com/zenith-platform/readygate/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		fix        bool
		strict     bool
		htmlReport bool
		ciMode     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Run the deployment readiness check",
		Long:  "Run the six readiness checkers (cleanup, build, tests, security, performance, code quality) against a project and print the GO / CONDITIONAL / NO-GO decision. Exits 1 for NO-GO, or for CONDITIONAL under --strict.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if ciMode {
				tui.DisableColor()
			}

			svc := application.NewCheckService(
				toolrunner.New(),
				config.New(),
				gitinfo.New(),
				history.New(),
			)

			res, err := svc.Run(cmd.Context(), absPath, application.RunOptions{
				Fix:    fix,
				Strict: strict,
			})
			if err != nil {
				return fmt.Errorf("readiness check failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(res, ciMode))
			}

			if htmlReport {
				// Report failures are logged, never fatal.
				if path, repErr := report.Write(absPath, res); repErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", repErr)
				} else if !ciMode {
					fmt.Fprintf(cmd.OutOrStdout(), "\n  report written to %s\n", path)
				}
			}

			if res.Status == domain.StatusNoGo {
				return fmt.Errorf("deployment not ready: %s (score %.1f)", res.Status, res.Score)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Allow checkers to mutate the working tree (delete temp files, apply safe dependency patches)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat CONDITIONAL as a failing exit code")
	cmd.Flags().BoolVar(&htmlReport, "report", false, "Write a date-stamped HTML report into the project")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "Suppress informational console lines")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the full result as JSON")

	return cmd
}
