package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jrjsmrtn/macports-scripts/config"
	"github.com/jrjsmrtn/macports-scripts/internal/checks"
	"github.com/jrjsmrtn/macports-scripts/internal/ghclient"
	"github.com/jrjsmrtn/macports-scripts/internal/log"
	"github.com/jrjsmrtn/macports-scripts/internal/macports"
	"github.com/jrjsmrtn/macports-scripts/internal/render"
	"github.com/jrjsmrtn/macports-scripts/internal/trac"
)

// addCheckFlags adds the check-selection and output flags to a command.
func addCheckFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().BoolVar(&opts.Livecheck, "livecheck", false, "Run the upstream version check")
	cmd.Flags().BoolVar(&opts.Tickets, "tickets", false, "Run the open Trac tickets check")
	cmd.Flags().BoolVar(&opts.PullRequests, "pull-requests", false, "Run the open pull requests check")
	cmd.Flags().BoolVar(&opts.Lint, "lint", false, "Run the port lint check")

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show informational output")
	cmd.Flags().BoolVarP(&opts.Debug, "debug", "d", false, "Show debug output (external commands, query URLs)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "debug")

	cmd.Flags().StringVar(&opts.PortCommand, "port-command", macports.DefaultBinary, "Path to the port binary")
	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "Also write a Markdown report to this file")
}

func runChecks(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	// Log to stdout so warnings land in the same stream as the report.
	log.Initialize(opts.Verbosity(), os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return fmt.Errorf("%w; run 'checkports config init' to create one", err)
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	selected := buildChecks(ctx, cfg, opts)

	driver := checks.NewDriver(selected...)
	report, runErr := driver.Run(ctx)

	if err := writeReports(report, opts.ReportPath); err != nil {
		return err
	}

	// Findings are informational; only failed checks make the run fail.
	return runErr
}

// buildChecks wires the selected check runners with their collaborators.
func buildChecks(ctx context.Context, cfg *config.Config, opts *Options) []checks.Check {
	pm := macports.NewClient(opts.PortCommand)

	var selected []checks.Check
	for _, name := range opts.SelectedChecks() {
		checkOpts := cfg.Check(name)
		switch name {
		case config.SectionLivecheck:
			selected = append(selected, checks.NewLivecheck(pm, checkOpts))
		case config.SectionTickets:
			selected = append(selected, checks.NewTickets(trac.NewClient(trac.DefaultBaseURL), checkOpts))
		case config.SectionPullRequests:
			gh := ghclient.NewClient(ctx, cfg.GetGitHubToken())
			selected = append(selected, checks.NewPullRequests(gh, pm, checkOpts))
		case config.SectionLint:
			selected = append(selected, checks.NewLint(pm, checkOpts))
		}
	}
	return selected
}

// writeReports prints the terminal report and optionally writes a Markdown file.
func writeReports(report *checks.Report, reportPath string) error {
	if err := (&render.TableRenderer{}).Render(*report, os.Stdout); err != nil {
		return err
	}

	if reportPath == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := (&render.MarkdownRenderer{}).Render(*report, &buf); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	if err := os.WriteFile(reportPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Info("wrote report", "path", reportPath)

	return nil
}
