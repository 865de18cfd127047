package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mainbong/tidyup/internal/config"
	"github.com/mainbong/tidyup/internal/logger"
	"github.com/mainbong/tidyup/internal/terminal"
	"github.com/mainbong/tidyup/internal/tidy"
)

const version = "tidyup v0.2.0"

func newRootCommand() *cobra.Command {
	opts := config.Defaults()

	rootCmd := &cobra.Command{
		Use:   "tidyup [path]",
		Short: "Tidy up your unorganized folders",
		Long: `Tidy up your unorganized folders.
Arrange all scattered files of a path into folders named after their extensions.
If no path is given, the current working directory is used.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// --path wins over the positional argument
			if !cmd.Flags().Changed("path") && len(args) > 0 {
				opts.Root = args[0]
			}
			return runTidy(cmd, opts)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.Root, "path", "p", opts.Root, "folder to organize (default: current working directory)")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "show the planned moves without changing anything")
	flags.StringVar(&opts.ReportPath, "report", "", "write a run report (.json, .yaml, .yml or .toml)")
	flags.StringVar(&opts.LogDir, "log-dir", "", "also write diagnostics to a log file in this directory")
	flags.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level: debug, info, warn, error")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable coloured output")

	return rootCmd
}

func runTidy(cmd *cobra.Command, opts *config.Options) error {
	if err := opts.Normalize(); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	if err := logger.Init(opts.LogDir, opts.Level()); err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer logger.Close()

	out := cmd.OutOrStdout()
	colorize := !opts.NoColor && terminal.ShouldColorize(out)
	if !colorize {
		color.NoColor = true
	}

	logger.Debug("options: root=%s dry-run=%v report=%s", opts.Root, opts.DryRun, opts.ReportPath)

	runner := tidy.NewRunner(terminal.NewPrinter(out, colorize))
	_, err := runner.Run(opts)
	return err
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
