package pipeline

// State represents where a trim request is in the pipeline.
type State string

// Pipeline states.
const (
	StateIdle         State = "idle"          // No source, or source loaded with no trim requested
	StateTrimming     State = "trimming"      // Stream-copy trim running
	StateSizeChecking State = "size_checking" // Comparing trim size to the ceiling
	StateAccepting    State = "accepting"     // Trim accepted as-is
	StateCompressing  State = "compressing"   // Bitrate-targeted re-encode running
	StateComplete     State = "complete"      // A claimable output exists
	StateFailed       State = "failed"        // Trim failed; nothing claimable
)

// Busy reports whether a request is in flight in this state.
func (s State) Busy() bool {
	switch s {
	case StateTrimming, StateSizeChecking, StateAccepting, StateCompressing:
		return true
	}
	return false
}

// Terminal reports whether the state ends a request.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateFailed
}
