package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/osg-htc/kojicron/internal/config"
	"github.com/osg-htc/kojicron/internal/errors"
	"github.com/osg-htc/kojicron/internal/koji"
	"github.com/osg-htc/kojicron/internal/logger"
	"github.com/osg-htc/kojicron/internal/regen"
	"github.com/osg-htc/kojicron/internal/tags"
)

// RunOptions carries the command-line inputs for one run. The *bool
// fields are nil when the flag was not given, deferring to the config file.
type RunOptions struct {
	ConfigPath        string
	LogFile           string
	DryRun            bool
	Debug             *bool
	Wait              *bool
	ContinueOnFailure *bool
	Stdout            io.Writer
}

// Hub is the view of the koji client the run workflow needs.
type Hub interface {
	tags.Lister
	Hello() error
	RegenRepo(tag string, wait bool) (bool, error)
}

// Run executes the whole maintenance workflow: validate config, verify
// auth, resolve the tag set, regenerate. Errors are logged here and
// returned for the entry point to turn into an exit code.
func Run(opts RunOptions) error {
	// Bootstrap logger until the config says where logs go.
	log := logger.New(logger.Options{Debug: opts.Debug != nil && *opts.Debug})

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		log.Error("%s", err)
		return err
	}
	if err := config.Validate(cfg); err != nil {
		log.Error("%s", err)
		return err
	}

	debug, wait, cont, err := resolveBools(cfg, opts)
	if err != nil {
		log.Error("%s", err)
		return err
	}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = cfg.LogFile
	}
	log = logger.New(logger.Options{Debug: debug, LogFile: logFile})

	client := koji.NewClient(opts.ConfigPath, config.Section, log)

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	if err := run(client, log, stdout, cfg, opts.DryRun, wait, cont); err != nil {
		log.Error("%s", err)
		return err
	}
	return nil
}

func resolveBools(cfg *config.Config, opts RunOptions) (debug, wait, cont bool, err error) {
	if debug, err = cfg.Bool("debug", opts.Debug); err != nil {
		return
	}
	if wait, err = cfg.Bool("wait", opts.Wait); err != nil {
		return
	}
	cont, err = cfg.Bool("continue_on_failure", opts.ContinueOnFailure)
	return
}

// run is the workflow proper, separated from the wiring so tests can
// drive it with a fake hub.
func run(hub Hub, log logger.Logger, stdout io.Writer, cfg *config.Config, dryRun, wait, cont bool) error {
	log.Info("kojicron starting")

	// A dry run only previews the tag selection; no auth needed for that.
	if !dryRun {
		if err := hub.Hello(); err != nil {
			return err
		}
	}

	matched, err := tags.Resolve(hub, cfg.IncludedTags)
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		return errors.Newf(errors.KindNoTags,
			"no tags in Koji match the given patterns, patterns are: %s",
			strings.Join(cfg.IncludedTags, " "))
	}

	if dryRun {
		fmt.Fprintf(stdout, "Would regen the following tags:\n%s\n",
			strings.Join(matched.Sorted(), "\n"))
		return nil
	}

	failed, err := regen.Run(hub, log, matched, regen.Options{
		Wait:              wait,
		ContinueOnFailure: cont,
	})
	if err != nil {
		return err
	}
	if len(failed) > 0 {
		return errors.RegenFailed(failed.Sorted())
	}

	log.Info("kojicron successful")
	return nil
}
