//go:build unix

package serialecho

import (
	"os/exec"
	"syscall"
)

// detach puts the helper in its own process group so a terminal Ctrl+C
// reaches only serialecho, which then tears the helper down itself.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
