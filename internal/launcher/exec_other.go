//go:build !unix

package launcher

import (
	"os"
	"os/exec"
)

// Exec emulates execve on platforms that lack it: the child runs attached
// to the launcher's standard streams and Exec returns the child's failure,
// which the CLI turns into the same exit code.
func Exec(argv0 string, argv []string, envv []string) error {
	cmd := exec.Command(argv0, argv[1:]...)
	cmd.Env = envv
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
