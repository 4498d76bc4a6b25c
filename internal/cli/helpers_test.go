package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/oidkit/internal/config"
	"github.com/roach88/oidkit/internal/store"
)

// result captures one CLI invocation.
type result struct {
	stdout string
	stderr string
	err    error
}

func (r result) exitCode() int {
	return GetExitCode(r.err)
}

// execute runs the root command with args. Config discovery through the
// environment is disabled so the developer's setup cannot leak in.
func execute(t *testing.T, ids store.IDGenerator, args ...string) result {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&RootOptions{IDGenerator: ids})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// goldenDir is resolved at init, before any test changes directory.
var goldenDir = func() string {
	dir, err := filepath.Abs(filepath.Join("testdata", "golden"))
	if err != nil {
		panic(err)
	}
	return dir
}()

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir(goldenDir),
		goldie.WithNameSuffix(".golden"),
	)
}
