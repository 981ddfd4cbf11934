//go:build !unix

package conversion

import "os/exec"

// killProcessGroupOnCancel keeps the default cancellation, which kills the
// direct child; WaitDelay still bounds the wait for its descendants.
func killProcessGroupOnCancel(_ *exec.Cmd) {}
