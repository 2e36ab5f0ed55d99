package clipboard

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"
	"time"

	"clipfit/domain/claim"
)

type mockRunner struct {
	calls  [][]string
	errs   []error
	stderr []byte
	block  bool
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if i := len(m.calls) - 1; i < len(m.errs) {
		return m.stderr, m.errs[i]
	}
	return nil, nil
}

func (m *mockRunner) Output(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	stderr, err := m.Run(ctx, name, args...)
	return nil, stderr, err
}

func TestWLCopy_PublishFile(t *testing.T) {
	runner := &mockRunner{}
	cb := New(WithCommandRunner(runner))

	if err := cb.PublishFile(context.Background(), "/tmp/clip one.mp4"); err != nil {
		t.Fatalf("PublishFile() error = %v", err)
	}

	want := [][]string{
		{"wl-copy", "-t", "text/uri-list", "file:///tmp/clip%20one.mp4"},
		{"wl-copy", "-p", "/tmp/clip one.mp4"},
	}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Errorf("calls = %v, want %v", runner.calls, want)
	}
}

func TestWLCopy_Unavailable(t *testing.T) {
	runner := &mockRunner{errs: []error{&exec.Error{Name: "wl-copy", Err: exec.ErrNotFound}}}
	err := New(WithCommandRunner(runner)).PublishFile(context.Background(), "/tmp/a.mp4")

	if !errors.Is(err, claim.ErrClipboardUnavailable) {
		t.Errorf("error = %v, want ErrClipboardUnavailable", err)
	}
}

func TestWLCopy_Timeout(t *testing.T) {
	runner := &mockRunner{block: true}
	err := New(WithCommandRunner(runner), WithTimeout(10*time.Millisecond)).PublishFile(context.Background(), "/tmp/a.mp4")

	if !errors.Is(err, claim.ErrClipboardUnavailable) {
		t.Errorf("error = %v, want ErrClipboardUnavailable", err)
	}
}

func TestWLCopy_ToolFailure(t *testing.T) {
	runner := &mockRunner{errs: []error{errors.New("exit status 1")}, stderr: []byte("Failed to connect to a Wayland server\n")}
	err := New(WithCommandRunner(runner)).PublishFile(context.Background(), "/tmp/a.mp4")

	if err == nil || !strings.Contains(err.Error(), "Wayland") {
		t.Errorf("error = %v, want stderr text", err)
	}
	if errors.Is(err, claim.ErrClipboardUnavailable) {
		t.Error("a failing tool is not the same as a missing one")
	}
}

func TestWLCopy_PrimarySelectionFailureIsNotFatal(t *testing.T) {
	runner := &mockRunner{errs: []error{nil, errors.New("exit status 1")}}
	if err := New(WithCommandRunner(runner)).PublishFile(context.Background(), "/tmp/a.mp4"); err != nil {
		t.Errorf("PublishFile() error = %v, want nil", err)
	}
}
