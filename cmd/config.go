package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jrjsmrtn/macports-scripts/config"
)

// NewCmdConfig creates the config command with subcommands.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Long: `Show or manage configuration.

When run without arguments, shows the config file locations and the
effective per-check options after merging global and local files.

Subcommands:
  init  Create a minimal config file
  path  Show config file locations`,
		RunE: runConfigShow,
	}

	cmd.AddCommand(NewCmdConfigInit())
	cmd.AddCommand(NewCmdConfigPath())

	return cmd
}

// NewCmdConfigInit creates the config init subcommand.
func NewCmdConfigInit() *cobra.Command {
	var global, local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a minimal config file",
		Long: `Create a minimal config file with starter settings.

Use --global to create it in the user config directory (applies everywhere)
Use --local to create ./.checkports.ini (applies only in this directory)
Without flags, you'll be prompted to choose.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(global, local)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Create the global config file")
	cmd.Flags().BoolVar(&local, "local", false, "Create the local config file (./.checkports.ini)")

	return cmd
}

// NewCmdConfigPath creates the config path subcommand.
func NewCmdConfigPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file locations",
		Long:  `Show the paths to the global and local config files and indicate which exist.`,
		RunE:  runConfigPath,
	}
}

func runConfigInit(global, local bool) error {
	if global && local {
		return fmt.Errorf("cannot specify both --global and --local")
	}

	paths := config.GetConfigPaths()
	var targetPath string
	var location string

	if global {
		targetPath = paths.GlobalPath
		location = "global"
	} else if local {
		targetPath = paths.LocalPath
		location = "local"
	} else {
		// Prompt user to choose
		fmt.Println("Where would you like to create the config file?")
		fmt.Printf("  [1] Global (%s) - applies everywhere\n", paths.GlobalPath)
		fmt.Printf("  [2] Local (%s) - applies only in this directory\n", paths.LocalPath)
		fmt.Print("Choose [1/2]: ")

		reader := bufio.NewReader(os.Stdin)
		choice, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		choice = strings.TrimSpace(choice)
		switch choice {
		case "1":
			targetPath = paths.GlobalPath
			location = "global"
		case "2":
			targetPath = paths.LocalPath
			location = "local"
		default:
			return fmt.Errorf("invalid choice: %s (must be 1 or 2)", choice)
		}
		fmt.Println()
	}

	// Refuse to clobber an existing file
	if _, err := os.Stat(targetPath); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'checkports config' to view the current config", targetPath)
	}

	if err := config.SaveTo(targetPath, config.MinimalConfig()); err != nil {
		return err
	}

	fmt.Printf("Created %s config file: %s\n\n", location, targetPath)
	fmt.Println("Edit this file to set your maintainer name and port lists.")

	return nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	printConfigPaths()
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	printConfigPaths()
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			fmt.Println("No configuration file found. Run 'checkports config init' to create one.")
			return nil
		}
		return err
	}

	fmt.Println("Effective options:")
	for _, name := range config.Sections {
		opts := cfg.Check(name)
		fmt.Printf("\n  [%s]\n", name)
		fmt.Printf("    maintainer:       %s\n", orNone(opts.Maintainer))
		fmt.Printf("    include_ports:    %s\n", orNone(strings.Join(opts.IncludePorts, ", ")))
		fmt.Printf("    exclude_ports:    %s\n", orNone(strings.Join(opts.ExcludePorts, ", ")))
		fmt.Printf("    exclude_subports: %t\n", opts.ExcludeSubports)
	}

	return nil
}

func printConfigPaths() {
	paths := config.GetConfigPaths()

	fmt.Println("Configuration file locations:")
	fmt.Println()

	globalStatus := "not found"
	if paths.GlobalExists {
		globalStatus = "exists"
	}
	fmt.Printf("  Global: %s (%s)\n", paths.GlobalPath, globalStatus)

	localStatus := "not found"
	if paths.LocalExists {
		localStatus = "exists"
	}
	fmt.Printf("  Local:  %s (%s)\n", paths.LocalPath, localStatus)

	fmt.Println()
	fmt.Println("Load order: global -> local (local overrides global per key)")

	if os.Getenv("GITHUB_TOKEN") != "" {
		fmt.Println("GitHub token: (set via GITHUB_TOKEN env)")
	} else {
		fmt.Println("GitHub token: (not set - anonymous API limits apply)")
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
