package koji

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osg-htc/kojicron/internal/errors"
	"github.com/osg-htc/kojicron/internal/logger"
)

// fakeKoji writes a shell script standing in for the koji executable and
// returns a client bound to it.
func fakeKoji(t *testing.T, script string) *Client {
	t.Helper()
	path := filepath.Join(t.TempDir(), "koji")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))

	c := NewClient("/etc/kojicron/kojicron.conf", "kojicron", logger.Noop())
	c.executable = path
	return c
}

func TestRun_BaseArguments(t *testing.T) {
	c := fakeKoji(t, `echo "$@"`)

	res, err := c.Run("--noauth", "list-tags")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t,
		"-q --config=/etc/kojicron/kojicron.conf --profile=kojicron --noauth list-tags\n",
		res.Stdout)
}

func TestRun_CapturesBothStreamsAndExitCode(t *testing.T) {
	c := fakeKoji(t, `echo out; echo err >&2; exit 3`)

	res, err := c.Run("hello")
	require.NoError(t, err) // non-zero exit is data, not an error
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestRun_NonUTF8Output(t *testing.T) {
	// latin-1 bytes from the client must survive capture untouched
	c := fakeKoji(t, `printf 'caf\351\n'`)

	res, err := c.Run("hello")
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9\n", res.Stdout)
}

func TestRun_MissingExecutable(t *testing.T) {
	c := NewClient("/etc/kojicron/kojicron.conf", "kojicron", logger.Noop())
	c.executable = filepath.Join(t.TempDir(), "no-such-koji")

	_, err := c.Run("hello")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindExec))
}

func TestRun_LogsInvocationAtDebug(t *testing.T) {
	log := logger.NewBufferLogger()
	c := fakeKoji(t, `exit 0`)
	c.log = log

	_, err := c.Run("hello")
	require.NoError(t, err)
	require.True(t, log.HasLevel("debug"))
	assert.Contains(t, log.Messages[0].Message, "--profile=kojicron hello")
}

func TestListTags(t *testing.T) {
	c := fakeKoji(t, `printf 'build-1.0\nbuild-2.0\ntest-1.0\n'`)

	tags, err := c.ListTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"build-1.0", "build-2.0", "test-1.0"}, tags)
}

func TestListTags_Failure(t *testing.T) {
	c := fakeKoji(t, `echo 'GenericError: not now' >&2; exit 1`)

	_, err := c.ListTags()
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindQuery))
	assert.Equal(t, errors.ExitQuery, errors.ExitCode(err))
	assert.Contains(t, err.Error(), "return code 1 getting tag list")
	assert.Contains(t, err.Error(), "GenericError: not now")
}

func TestHello(t *testing.T) {
	c := fakeKoji(t, `exit 0`)
	assert.NoError(t, c.Hello())
}

func TestHello_Failure(t *testing.T) {
	c := fakeKoji(t, `echo 'AuthError: bad ticket' >&2; exit 1`)

	err := c.Hello()
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuth))
	assert.Equal(t, errors.ExitAuth, errors.ExitCode(err))
	assert.Contains(t, err.Error(), "authenticating to Koji")
}

func TestRegenRepo_WaitControlsArguments(t *testing.T) {
	// record the argv for inspection
	dir := t.TempDir()
	argvFile := filepath.Join(dir, "argv")
	script := `echo "$@" > ` + argvFile
	path := filepath.Join(dir, "koji")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755))

	c := NewClient("/tmp/k.conf", "kojicron", logger.Noop())
	c.executable = path

	ok, err := c.RegenRepo("osg-3.6-el9", true)
	require.NoError(t, err)
	assert.True(t, ok)
	argv, err := os.ReadFile(argvFile)
	require.NoError(t, err)
	assert.Contains(t, string(argv), "regen-repo osg-3.6-el9")
	assert.NotContains(t, string(argv), "--nowait")

	ok, err = c.RegenRepo("osg-3.6-el9", false)
	require.NoError(t, err)
	assert.True(t, ok)
	argv, err = os.ReadFile(argvFile)
	require.NoError(t, err)
	assert.Contains(t, string(argv), "regen-repo --nowait osg-3.6-el9")
}

func TestRegenRepo_SuccessLogging(t *testing.T) {
	log := logger.NewBufferLogger()
	c := fakeKoji(t, `exit 0`)
	c.log = log

	ok, err := c.RegenRepo("osg-3.6-el9", false)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NotEmpty(t, log.Messages)
	assert.Equal(t, "info", log.Messages[0].Level)
	assert.Contains(t, log.Messages[0].Message, "Queueing regen-repo for tag osg-3.6-el9")
	assert.False(t, log.HasLevel("error"))

	log.Clear()
	ok, err = c.RegenRepo("osg-3.6-el9", true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, log.Messages[0].Message, "Launching regen-repo for tag osg-3.6-el9")
}

func TestRegenRepo_FailureLogging(t *testing.T) {
	log := logger.NewBufferLogger()
	c := fakeKoji(t, `echo 'GenericError: newRepo task failed' >&2; exit 1`)
	c.log = log

	ok, err := c.RegenRepo("osg-3.6-el9", true)
	require.NoError(t, err)
	assert.False(t, ok)

	require.True(t, log.HasLevel("error"))
	last := log.Messages[len(log.Messages)-1]
	assert.Contains(t, last.Message, "Return code 1 doing regen-repo osg-3.6-el9")
	assert.Contains(t, last.Message, "GenericError: newRepo task failed")
}
