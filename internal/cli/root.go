// Package cli wires the kojicron command line: flag handling, the run
// workflow, and the mapping of structured errors to process exit codes.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/osg-htc/kojicron/internal/config"
	"github.com/osg-htc/kojicron/internal/errors"
)

var (
	configFlag  string
	logfileFlag string
	dryRunFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "kojicron",
	Short: "Regenerate Koji repositories for tags matching configured patterns",
	Long: `kojicron queries a Koji hub for its tag list, filters the tags against
the glob patterns configured in included_tags, and runs regen-repo for
each match. It is meant to run unattended from cron; the exit code
reflects what went wrong so monitoring can react.

Boolean flags override the config file value when given explicitly;
omitted flags fall back to the config file (default false).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		return Run(RunOptions{
			ConfigPath:        configFlag,
			LogFile:           logfileFlag,
			DryRun:            dryRunFlag,
			Debug:             explicitBool(f, "debug", ""),
			Wait:              explicitBool(f, "wait", "no-wait"),
			ContinueOnFailure: explicitBool(f, "continue-on-failure", "no-continue-on-failure"),
			Stdout:            cmd.OutOrStdout(),
		})
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configFlag, "config", config.DefaultPath, "location of config file")
	flags.Bool("debug", false, "output debug messages")
	flags.StringVar(&logfileFlag, "logfile", "", "logfile to write output to (no default)")
	flags.BoolVar(&dryRunFlag, "dry-run", false, "don't run, just print the repos that would be regenerated")
	flags.Bool("wait", false, "wait for each regen to complete before starting the next")
	flags.Bool("no-wait", false, "don't wait for each regen to complete")
	flags.Bool("continue-on-failure", false, "on regen failure, keep going with remaining tags instead of exiting")
	flags.Bool("no-continue-on-failure", false, "on regen failure, exit immediately")
}

// explicitBool returns the resolved value of a --name/--no-name flag pair,
// or nil when neither was given on the command line. The negative flag
// wins when both appear.
func explicitBool(f *pflag.FlagSet, name, negName string) *bool {
	var value *bool
	if f.Changed(name) {
		v, _ := f.GetBool(name)
		value = &v
	}
	if negName != "" && f.Changed(negName) {
		v, _ := f.GetBool(negName)
		neg := !v
		value = &neg
	}
	return value
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var kcErr *errors.Error
	if !stderrors.As(err, &kcErr) {
		// Flag-parsing and similar errors never reach the run workflow's
		// logger, so report them directly.
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return errors.ExitCode(err)
}
