package pipeline

// RequestState carries the files owned by one trim request through the pipeline steps.
// Each step returns a new value instead of mutating the previous one.
type RequestState struct {
	RequestID     string
	SourcePath    string
	TrimmedPath   string // owned temp file, set once the trim succeeded
	TrimmedSize   int64
	FinalPath     string // TrimmedPath or a separately owned compressed temp file
	FinalSize     int64
	WasCompressed bool
	Warning       error // non-fatal compression failure, if any
}

// NewRequestState starts the state for a request.
func NewRequestState(requestID, sourcePath string) RequestState {
	return RequestState{RequestID: requestID, SourcePath: sourcePath}
}

// WithTrim records a successful trim.
func (r RequestState) WithTrim(path string, size int64) RequestState {
	r.TrimmedPath = path
	r.TrimmedSize = size
	r.FinalPath = ""
	r.FinalSize = 0
	r.WasCompressed = false
	r.Warning = nil
	return r
}

// Accept designates the trimmed file as the final output.
func (r RequestState) Accept() RequestState {
	r.FinalPath = r.TrimmedPath
	r.FinalSize = r.TrimmedSize
	r.WasCompressed = false
	return r
}

// WithCompressed designates a compressed file as the final output.
func (r RequestState) WithCompressed(path string, size int64) RequestState {
	r.FinalPath = path
	r.FinalSize = size
	r.WasCompressed = true
	r.Warning = nil
	return r
}

// Fallback keeps the uncompressed trim after a failed compression.
func (r RequestState) Fallback(cause error) RequestState {
	r = r.Accept()
	r.Warning = cause
	return r
}

// HasTrim reports whether a trimmed file exists for this request.
func (r RequestState) HasTrim() bool {
	return r.TrimmedPath != ""
}

// Claimable returns the path a caller may claim, or "" if none is designated.
func (r RequestState) Claimable() string {
	return r.FinalPath
}
