// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"stacked-cli/internal/config"
	"stacked-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "stg",
		Short: "Manage stacks of patches on a Git branch",
		Long: TitleStyle.Render("stg") + SubtitleStyle.Render(" - Manage stacks of patches on a Git branch") + `

stg keeps your in-progress changes as a stack of named patches that you
can push, pop, reorder, and refresh while the underlying branch history
stays clean.

The patch operations themselves live in stg-<module> executables that
are described by CUE manifests and picked up from the commands
directory; aliases defined in your config file appear alongside them.

` + SubtitleStyle.Render("Examples:") + `
  stg cmdlist show          List all available commands by section
  stg cmdlist cache         Regenerate the cached command list
  stg info clone            Show one command's documentation
  stg serve                 Serve the command list over SSH`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stacked/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(cmdlistCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(serveCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	registerStartupCommands(rootCmd, os.Args[1:])

	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// registerStartupCommands loads the configuration and registers the
// discovered commands on root. Both must happen before fang.Execute:
// cobra resolves the command name while parsing, and OnInitialize
// callbacks only fire after that, so a command registered from defaults
// instead of the config file would never see the user's aliases or
// plugins directory. Config errors warn and continue, matching
// initRootConfig.
func registerStartupCommands(root *cobra.Command, args []string) {
	applyEarlyConfigFlag(args)
	if _, err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if err := registerDiscoveredCommands(root); err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
}

// applyEarlyConfigFlag honors --config before cobra has parsed anything.
// cobra only binds the flag once Execute runs, which is too late for
// command discovery.
func applyEarlyConfigFlag(args []string) {
	for i, arg := range args {
		switch {
		case arg == "--config" && i+1 < len(args):
			config.SetConfigFilePathOverride(args[i+1])
			return
		case strings.HasPrefix(arg, "--config="):
			config.SetConfigFilePathOverride(strings.TrimPrefix(arg, "--config="))
			return
		}
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		// Config errors never abort the run; defaults still work.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their own Format method; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
