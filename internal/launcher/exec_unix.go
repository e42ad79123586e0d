//go:build unix

package launcher

import "golang.org/x/sys/unix"

// Exec replaces the current process with argv0 via execve(2). The PID and
// open standard streams carry over to the new image.
func Exec(argv0 string, argv []string, envv []string) error {
	return unix.Exec(argv0, argv, envv)
}
