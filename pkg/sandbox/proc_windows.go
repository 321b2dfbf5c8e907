//go:build windows

package sandbox

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}

// terminateProcessTree kills the child process. Windows has no process
// groups in the POSIX sense; descendants of the interpreter are reaped
// when the console job ends.
func terminateProcessTree(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
