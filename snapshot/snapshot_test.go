package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-insights/utils"
)

func TestFindChromeBinaryPrefersEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")
	assert.Equal(t, "/opt/custom/chrome", findChromeBinary())
}

func TestNewUsesExplicitBinary(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")
	s := New("/usr/local/bin/headless-shell", utils.NewNopLogger())
	assert.Equal(t, "/usr/local/bin/headless-shell", s.chromeBin)
	assert.Equal(t, DefaultTimeout, s.timeout)

	s = New("", utils.NewNopLogger())
	assert.Equal(t, "/opt/custom/chrome", s.chromeBin)
}

func TestCaptureRejectsEmptyArguments(t *testing.T) {
	s := New("/nonexistent/chrome", utils.NewNopLogger())

	assert.EqualError(t, s.Capture(context.Background(), "", "out.png"), "snapshot: empty url")
	assert.EqualError(t, s.Capture(context.Background(), "http://localhost:8501", ""), "snapshot: empty output path")
}

func TestCaptureFailsWithoutBrowser(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "no-such-chrome"), utils.NewNopLogger())
	s.timeout = 10 * time.Second

	out := filepath.Join(t.TempDir(), "dashboard.png")
	err := s.Capture(context.Background(), "http://127.0.0.1:1", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot: capture")
	assert.NoFileExists(t, out)
}
