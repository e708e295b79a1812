// Command cltupdate reinstalls the macOS Command Line Tools after a system
// update removes them. It creates the marker file that makes softwareupdate
// offer the tools, installs the newest matching label, and removes the
// marker again.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrjsmrtn/macports-scripts/internal/log"
)

// markerPath makes softwareupdate list the Command Line Tools.
const markerPath = "/tmp/.com.apple.dt.CommandLineTools.installondemand.in-progress"

const cltName = "Command Line Tools"

// defaultTimeout bounds the whole run; the install step downloads
// several hundred megabytes.
const defaultTimeout = 30 * time.Minute

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var dryRun, verbose bool

	cmd := &cobra.Command{
		Use:   "cltupdate",
		Short: "Reinstall the macOS Command Line Tools",
		Long: `Reinstalls the Command Line Tools after a macOS update removes them.

Creates the softwareupdate on-demand marker, installs the newest
"Command Line Tools" label, and removes the marker again.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := log.LevelQuiet
			if verbose {
				level = log.LevelVerbose
			}
			log.Initialize(level, os.Stdout)
			return run(cmd.Context(), dryRun)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the label that would be installed without installing it")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show informational output")

	return cmd
}

func run(ctx context.Context, dryRun bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := os.WriteFile(markerPath, nil, 0o644); err != nil {
		return fmt.Errorf("creating on-demand marker: %w", err)
	}
	defer os.Remove(markerPath)

	out, err := runSoftwareUpdate(ctx, "--list")
	if err != nil {
		return fmt.Errorf("listing available updates: %w", err)
	}

	label := newestLabel(parseLabels(out))
	if label == "" {
		return fmt.Errorf("no %q update found", cltName)
	}

	if dryRun {
		fmt.Printf("would install: %s\n", label)
		return nil
	}

	log.Info("installing", "label", label)
	if _, err := runSoftwareUpdate(ctx, "--install", label); err != nil {
		return fmt.Errorf("installing %q: %w", label, err)
	}

	fmt.Printf("Installed: %s\n", label)
	return nil
}

// runSoftwareUpdate invokes softwareupdate and returns its stdout.
func runSoftwareUpdate(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "softwareupdate", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("running softwareupdate", "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("softwareupdate %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("softwareupdate %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

// parseLabels extracts the update labels naming the Command Line Tools from
// softwareupdate --list output. Newer releases print "* Label: <name>",
// older ones "* <name>".
func parseLabels(output string) []string {
	var labels []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)

		var label string
		switch {
		case strings.HasPrefix(line, "* Label: "):
			label = strings.TrimPrefix(line, "* Label: ")
		case strings.HasPrefix(line, "* "):
			label = strings.TrimPrefix(line, "* ")
		}

		label = strings.TrimSpace(label)
		if label != "" && strings.Contains(label, cltName) {
			labels = append(labels, label)
		}
	}
	return labels
}

// newestLabel picks the last matching label; softwareupdate lists the most
// recent release last.
func newestLabel(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return labels[len(labels)-1]
}
