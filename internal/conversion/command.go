package conversion

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// waitDelay bounds how long a finished or killed process may keep its output
// pipes open through leftover descendants.
const waitDelay = 2 * time.Second

// runCommand runs an external process bounded by timeout. Expiry of the
// timeout maps to ErrTimeout; cancellation of ctx itself returns ctx's error.
// On timeout the whole process group is killed, so launchers such as soffice
// cannot outlive the bound through their children.
func runCommand(ctx context.Context, timeout time.Duration, name string, args ...string) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	killProcessGroupOnCancel(cmd)
	cmd.WaitDelay = waitDelay

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil || (errors.Is(err, exec.ErrWaitDelay) && runCtx.Err() == nil) {
		// A clean exit whose descendants held the pipes still counts.
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s exceeded %s", ErrTimeout, filepath.Base(name), timeout)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrExecutableNotFound, name)
	}

	output := strings.TrimSpace(stderr.String())
	if output == "" {
		output = strings.TrimSpace(stdout.String())
	}
	return &CommandError{Command: filepath.Base(name), Stderr: output, Cause: err}
}

// absPaths resolves both paths so external programs do not depend on our
// working directory.
func absPaths(docxPath, pdfPath string) (string, string, error) {
	docxAbs, err := filepath.Abs(docxPath)
	if err != nil {
		return "", "", err
	}
	pdfAbs, err := filepath.Abs(pdfPath)
	if err != nil {
		return "", "", err
	}
	return docxAbs, pdfAbs, nil
}
