package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"license-audit/internal/adapters"
	"license-audit/internal/types"
)

// SampleTreePath is the npm ls fixture shared by integration and e2e tests.
func SampleTreePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(RepoRoot(t), "fixtures", "npm-ls-sample.json")
}

// FixturePackageManager serves a dependency tree decoded from a JSON file.
type FixturePackageManager struct {
	Path string
}

func (f FixturePackageManager) DependencyTree(_ context.Context, _ string) (*types.DependencyTree, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	return adapters.ParseDependencyTree(data)
}

// FakePackageManager writes a shell script into dir that prints the file
// at outputPath and exits with exitCode. The test is skipped on Windows.
func FakePackageManager(t *testing.T, dir string, outputPath string, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake package manager needs a POSIX shell")
	}
	script := "#!/bin/sh\n"
	if outputPath != "" {
		script += "cat '" + outputPath + "'\n"
	}
	script += "echo 'npm warn fake' >&2\n"
	script += "exit " + strconv.Itoa(exitCode) + "\n"
	path := filepath.Join(dir, "fake-npm")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

