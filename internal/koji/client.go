// Package koji wraps invocation of the koji command-line client. The
// client owns all transport and authentication against the hub; this
// package only runs it and interprets exit codes.
package koji

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/osg-htc/kojicron/internal/errors"
	"github.com/osg-htc/kojicron/internal/logger"
)

// Result captures one invocation of the koji client. Stdout and stderr
// are always captured together; the strings hold the raw client bytes,
// which may not be valid UTF-8.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Client runs koji commands against a fixed (config path, profile)
// binding. Every call is exactly one synchronous invocation; there is no
// retry and no timeout beyond what the koji client itself applies.
type Client struct {
	executable string
	configPath string
	profile    string
	log        logger.Logger
}

// NewClient creates a client bound to a config file and profile section.
func NewClient(configPath, profile string, log logger.Logger) *Client {
	return &Client{
		executable: "koji",
		configPath: configPath,
		profile:    profile,
		log:        log,
	}
}

// Run invokes the koji client with the fixed base arguments plus args,
// blocking until it exits. A non-zero exit code is returned in the Result,
// not as an error; an error means the client could not be run at all.
func (c *Client) Run(args ...string) (Result, error) {
	argv := []string{
		"-q",
		"--config=" + c.configPath,
		"--profile=" + c.profile,
	}
	argv = append(argv, args...)

	c.log.Debug("running %s %s", c.executable, strings.Join(argv, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(c.executable, argv...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, errors.Wrap(runErr, errors.KindExec,
			"cannot run "+c.executable)
	}

	return res, nil
}

// ListTags fetches the full tag list from the hub. No authentication is
// needed for this query.
func (c *Client) ListTags() ([]string, error) {
	res, err := c.Run("--noauth", "list-tags")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, errors.Newf(errors.KindQuery,
			"return code %d getting tag list from server.\nStdout:\n%s\nStderr:\n%s",
			res.ExitCode, res.Stdout, res.Stderr)
	}

	var tags []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		if line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}

// Hello verifies that the configured credentials work, via the
// authenticated no-op command.
func (c *Client) Hello() error {
	res, err := c.Run("hello")
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return errors.Newf(errors.KindAuth,
			"return code %d authenticating to Koji.\nStdout:\n%s\nStderr:\n%s",
			res.ExitCode, res.Stdout, res.Stderr)
	}
	return nil
}

// RegenRepo runs regen-repo on a single tag and reports success or
// failure. When wait is true the call blocks until the regen completes and
// the exit code reflects the regen itself; otherwise the regen is only
// queued and the exit code reflects queuing success.
func (c *Client) RegenRepo(tag string, wait bool) (bool, error) {
	var res Result
	var err error
	if wait {
		c.log.Info("Launching regen-repo for tag %s", tag)
		res, err = c.Run("regen-repo", tag)
	} else {
		c.log.Info("Queueing regen-repo for tag %s", tag)
		res, err = c.Run("regen-repo", "--nowait", tag)
	}
	if err != nil {
		return false, err
	}

	if res.ExitCode != 0 {
		c.log.Error("Return code %d doing regen-repo %s.\nStdout:\n%s\nStderr:\n%s",
			res.ExitCode, tag, res.Stdout, res.Stderr)
		return false, nil
	}
	c.log.Debug("regen-repo %s succeeded.\nStdout:\n%s\nStderr:\n%s",
		tag, res.Stdout, res.Stderr)
	return true, nil
}
