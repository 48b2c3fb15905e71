//go:build unix

package oauth

import (
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAndReap_ReapsExitedLauncher(t *testing.T) {
	path, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true(1) not available")
	}

	cmd := exec.Command(path)
	require.NoError(t, startAndReap(cmd))
	pid := cmd.Process.Pid

	// A zombie still answers signal 0; a reaped process does not.
	assert.Eventually(t, func() bool {
		return syscall.Kill(pid, 0) == syscall.ESRCH
	}, 5*time.Second, 10*time.Millisecond)
}

func TestStartAndReap_StartFailure(t *testing.T) {
	cmd := exec.Command("/nonexistent/spotlogin-browser-opener")
	assert.Error(t, startAndReap(cmd))
}
