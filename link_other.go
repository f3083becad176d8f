//go:build !unix

package serialecho

import "os/exec"

func detach(cmd *exec.Cmd) {}
