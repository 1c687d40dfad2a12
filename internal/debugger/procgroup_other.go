//go:build !unix

package debugger

import "os/exec"

// setProcessGroup is a no-op on non-Unix platforms: process groups are
// a POSIX concept, and golang.org/x/sys/unix is unavailable here.
func setProcessGroup(cmd *exec.Cmd) {}

// killProcessGroup falls back to killing just the direct child.
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}
