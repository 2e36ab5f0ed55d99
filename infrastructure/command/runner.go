package command

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner defines the interface for running external commands
// This allows mocking exec.Command in tests
type Runner interface {
	// Run executes a command and returns what it wrote to stderr
	Run(ctx context.Context, name string, args ...string) (stderr []byte, err error)
	// Output executes a command and returns its stdout and stderr
	Output(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner is the production implementation using os/exec
type ExecRunner struct{}

// Run executes a command, capturing stderr
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// Output executes a command, capturing stdout and stderr
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// LookPath reports whether an executable can be found
func LookPath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	return path, err == nil
}

var _ Runner = (*ExecRunner)(nil)
