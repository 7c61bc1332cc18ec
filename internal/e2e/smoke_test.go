package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runDW(t, binaryPath, home, "version")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "dev")

	stdout, stderr, err = runDW(t, binaryPath, home, "session", "show")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "no saved session")

	stdout, stderr, err = runDW(t, binaryPath, home, "session", "clear")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "session cleared")

	// no TTY here, so a watch without an inline password must refuse early
	_, stderr, err = runDW(t, binaryPath, home, "watch", "dr-test", "user")
	require.Error(t, err)
	assert.Contains(t, stderr, "password must be typed in")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "dw-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/dw")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build dw binary: %s", string(output))
	return binaryPath
}

func runDW(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"XDG_DATA_HOME="+filepath.Join(home, "data"),
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
