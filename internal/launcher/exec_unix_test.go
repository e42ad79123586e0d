//go:build unix

package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execHelperEnv switches the test binary into helper mode for TestExec.
const execHelperEnv = "WEATHERDASH_EXEC_HELPER"

// TestExecHelper is not a real test. When re-run by TestExec it prints its
// PID and then execs a shell that prints the shell's PID.
func TestExecHelper(t *testing.T) {
	if os.Getenv(execHelperEnv) != "1" {
		t.Skip("helper process only")
	}
	fmt.Printf("before %d\n", os.Getpid())
	err := Exec("/bin/sh", []string{"sh", "-c", `echo "after $$"`}, os.Environ())
	fmt.Printf("exec failed: %v\n", err)
	os.Exit(2)
}

// TestExec verifies that Exec replaces the process image: the shell runs
// under the same PID as the Go process and nothing after Exec executes.
func TestExec(t *testing.T) {
	cmd := exec.Command(os.Args[0], "-test.run=^TestExecHelper$")
	cmd.Env = append(os.Environ(), execHelperEnv+"=1")
	out, err := cmd.Output()
	require.NoError(t, err, "output: %s", out)

	lines := strings.Fields(strings.TrimSpace(string(out)))
	require.Len(t, lines, 4, "output: %s", out)
	assert.Equal(t, "before", lines[0])
	assert.Equal(t, "after", lines[2])
	assert.Equal(t, lines[1], lines[3], "exec must keep the PID")
}
