package process

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// StartOptions configures how a Spec is spawned
type StartOptions struct {
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// Handle is a spawned process. The launcher does not wait on it; callers
// own its lifetime.
type Handle struct {
	Cmd *exec.Cmd
}

// PID returns the OS process id
func (h *Handle) PID() int {
	if h == nil || h.Cmd == nil || h.Cmd.Process == nil {
		return 0
	}
	return h.Cmd.Process.Pid
}

// Wait blocks until the process exits
func (h *Handle) Wait() error {
	return h.Cmd.Wait()
}

// Start spawns the command described by spec in opts.Dir
func Start(spec *Spec, opts StartOptions) (*Handle, error) {
	argv := spec.Command()
	if len(argv) == 0 || argv[0] == "" {
		return nil, fmt.Errorf("no runtime binary configured")
	}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create working directory: %w", err)
		}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	if opts.Env != nil {
		cmd.Env = opts.Env
	}
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}

	return &Handle{Cmd: cmd}, nil
}
