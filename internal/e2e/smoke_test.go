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
	require.NoError(t, writeConfigFixture(home))

	stdout, stderr, err := runTarot(t, binaryPath, home, "spin")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Uma carta de tarot grátis!")

	_, stderr, err = runTarot(t, binaryPath, home, "plan", "set", "standard")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runTarot(t, binaryPath, home, "draw")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runTarot(t, binaryPath, home, "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Plan: Standard")
	assert.Contains(t, stdout, "2/3 left")
	assert.Contains(t, stdout, "wheel: spun today")

	_, err = os.Stat(filepath.Join(home, ".mystic-tarot", "state", "state.toml"))
	assert.NoError(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "tarot-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tarot")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build tarot binary: %s", string(output))
	return binaryPath
}

func runTarot(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

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

func writeConfigFixture(home string) error {
	configDir := filepath.Join(home, ".mystic-tarot")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	config := `[state]
backend = "toml"

[log]
level = "error"
`

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}
