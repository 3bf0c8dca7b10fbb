package environment

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ErrToolNotFound is returned by a CommandRunner when the executable does not exist.
var ErrToolNotFound = errors.New("tool not found")

// CommandRunner runs a command and returns its combined output.
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// CommandRunnerFunc adapts a function to CommandRunner.
type CommandRunnerFunc func(ctx context.Context, name string, args ...string) (string, error)

func (f CommandRunnerFunc) Output(ctx context.Context, name string, args ...string) (string, error) {
	return f(ctx, name, args...)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", ErrToolNotFound
	}
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// Options are the inputs to Discover that can't be found by running tools.
type Options struct {
	S2NProviderVersion   string
	FIPSMode             bool
	OpenSSL102InstallDir ldvalue.OptionalString

	// OpenSSLCommand is the command used to query the installed OpenSSL. Defaults to "openssl".
	OpenSSLCommand string

	// Runner defaults to ExecRunner.
	Runner CommandRunner
}

// Discover builds the Snapshot for this run. The version queries run concurrently.
//
// A tool that isn't installed leaves its ToolVersion unset; providers that need it report that
// when they are resolved. A tool that runs but prints something we can't parse is a
// DiscoveryError.
func Discover(ctx context.Context, opts Options) (Snapshot, error) {
	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	opensslCmd := opts.OpenSSLCommand
	if opensslCmd == "" {
		opensslCmd = "openssl"
	}

	snapshot := Snapshot{
		S2NProviderVersion:   opts.S2NProviderVersion,
		FIPSMode:             opts.FIPSMode,
		OpenSSL102InstallDir: opts.OpenSSL102InstallDir,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := queryVersion(gctx, runner, opensslCmd)
		snapshot.OpenSSL = v
		return err
	})
	if opts.OpenSSL102InstallDir.IsDefined() {
		// Only checked for existence; the snapshot keeps the directory, not the version.
		legacyCmd := filepath.Join(opts.OpenSSL102InstallDir.StringValue(), "bin", "openssl")
		g.Go(func() error {
			v, err := queryVersion(gctx, runner, legacyCmd)
			if err == nil && v.IsDefined() && !v.HasPrefix(1, 0) {
				return DiscoveryError{Tool: legacyCmd, Err: errors.New("expected OpenSSL 1.0.x, found " + v.String())}
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

func queryVersion(ctx context.Context, runner CommandRunner, tool string) (ToolVersion, error) {
	out, err := runner.Output(ctx, tool, "version")
	if errors.Is(err, ErrToolNotFound) {
		return ToolVersion{}, nil
	}
	if err != nil {
		return ToolVersion{}, DiscoveryError{Tool: tool, Err: err}
	}
	v, err := ParseToolVersion(out)
	if err != nil {
		return ToolVersion{}, DiscoveryError{Tool: tool, Err: err}
	}
	return v, nil
}
