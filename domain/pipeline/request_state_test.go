package pipeline

import (
	"errors"
	"testing"
)

func TestRequestState_AcceptFlow(t *testing.T) {
	start := NewRequestState("req-1", "/videos/in.mp4")
	if start.HasTrim() {
		t.Fatal("new state should not have a trim")
	}
	if start.Claimable() != "" {
		t.Fatalf("new state Claimable() = %q, want empty", start.Claimable())
	}

	trimmed := start.WithTrim("/tmp/trimmed_req-1.mp4", 10*1024*1024)
	if start.TrimmedPath != "" {
		t.Error("WithTrim mutated the previous value")
	}
	if trimmed.Claimable() != "" {
		t.Error("trim alone must not designate a claimable output")
	}

	accepted := trimmed.Accept()
	if accepted.Claimable() != "/tmp/trimmed_req-1.mp4" {
		t.Errorf("Claimable() = %q, want trimmed path", accepted.Claimable())
	}
	if accepted.FinalSize != 10*1024*1024 || accepted.WasCompressed {
		t.Errorf("accepted = %+v, want trimmed size and WasCompressed=false", accepted)
	}
}

func TestRequestState_CompressAndFallback(t *testing.T) {
	trimmed := NewRequestState("req-2", "/videos/in.mp4").WithTrim("/tmp/t.mp4", 80)

	compressed := trimmed.WithCompressed("/tmp/c.mp4", 40)
	if compressed.Claimable() != "/tmp/c.mp4" || !compressed.WasCompressed {
		t.Errorf("compressed = %+v, want compressed output", compressed)
	}
	if compressed.TrimmedPath != "/tmp/t.mp4" {
		t.Error("compressed state lost the trimmed path")
	}

	cause := errors.New("boom")
	fallback := trimmed.Fallback(cause)
	if fallback.Claimable() != "/tmp/t.mp4" || fallback.WasCompressed {
		t.Errorf("fallback = %+v, want uncompressed trim", fallback)
	}
	if !errors.Is(fallback.Warning, cause) {
		t.Errorf("Warning = %v, want %v", fallback.Warning, cause)
	}
}

func TestRequestState_WithTrimResetsOutput(t *testing.T) {
	done := NewRequestState("req-3", "/in.mp4").WithTrim("/tmp/a.mp4", 1).WithCompressed("/tmp/b.mp4", 1)
	again := done.WithTrim("/tmp/a2.mp4", 2)

	if again.Claimable() != "" || again.WasCompressed {
		t.Errorf("WithTrim should clear the previous final output, got %+v", again)
	}
}

func TestState_Busy(t *testing.T) {
	tests := []struct {
		state State
		busy  bool
	}{
		{StateIdle, false},
		{StateTrimming, true},
		{StateSizeChecking, true},
		{StateAccepting, true},
		{StateCompressing, true},
		{StateComplete, false},
		{StateFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.Busy(); got != tt.busy {
				t.Errorf("Busy() = %v, want %v", got, tt.busy)
			}
		})
	}
}
