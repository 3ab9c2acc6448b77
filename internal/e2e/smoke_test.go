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
	require.NoError(t, writeProfilesFixture(home))

	_, stderr, err := runWW(t, binaryPath, home,
		"auth", "set",
		"--profile", "personal",
		"--token", "tok-123",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runWW(t, binaryPath, home, "profile", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "personal")

	stdout, stderr, err = runWW(t, binaryPath, home, "rates", "--profile", "personal")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "source: static")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "ww-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ww")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build ww binary: %s", string(output))
	return binaryPath
}

func runWW(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
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

func writeProfilesFixture(home string) error {
	configDir := filepath.Join(home, ".walletwise")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	profiles := `version = 1

[[profiles]]
id = "personal"
name = "Personal"

[profiles.metadata]
secret_ref = ""

[profiles.auth]
method = ""
secret_ref = ""
`

	return os.WriteFile(filepath.Join(configDir, "profiles.toml"), []byte(profiles), 0o600)
}
