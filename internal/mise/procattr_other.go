//go:build !unix

package mise

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}
