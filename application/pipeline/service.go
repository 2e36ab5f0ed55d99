package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clipfit/domain/claim"
	"clipfit/domain/gallery"
	"clipfit/domain/pipeline"
	"clipfit/domain/video"
)

// Errors returned by the orchestrator
var (
	ErrBusy         = errors.New("another operation is in progress")
	ErrNoTrim       = errors.New("no completed trim")
	ErrNoSource     = errors.New("no source loaded")
	ErrInvalidRange = errors.New("invalid trim range")
	ErrNotAvailable = errors.New("not configured")
)

// Trimmer produces the stream-copy trim for a request
type Trimmer interface {
	Trim(ctx context.Context, req *video.TrimRequest, requestID string) (*video.TrimResult, error)
}

// SizeFitter checks and re-encodes trimmed files against a ceiling
type SizeFitter interface {
	CheckSize(path string, maxSizeBytes int64) (int64, bool, error)
	Compress(ctx context.Context, inputPath string, maxSizeBytes int64, requestID string) (*video.FitOutcome, error)
}

// StatusBus carries status events to subscribers
type StatusBus interface {
	pipeline.Publisher
	Subscribe(handler func(pipeline.StatusEvent)) func()
}

// Dependencies are the collaborators of a Service
// Claim adapters are optional; a nil adapter makes its claim return ErrNotAvailable
type Dependencies struct {
	Trimmer    Trimmer
	SizeFitter SizeFitter
	Prober     video.DurationProber
	Checker    video.FileChecker
	Bus        StatusBus

	Clipboard claim.Clipboard
	Picker    claim.SavePicker
	Copier    claim.FileCopier
	Uploader  claim.Uploader
}

// Completion is delivered once per trim or compress request
type Completion struct {
	Request pipeline.RequestState
	Err     error
}

// Snapshot is a consistent view of the orchestrator
type Snapshot struct {
	State        pipeline.State
	Request      pipeline.RequestState
	SourcePath   string
	DurationMs   int64
	StartMs      int64
	EndMs        int64
	MaxSizeBytes int64
}

// Service drives one trim-and-fit request at a time
type Service struct {
	deps    Dependencies
	saveDir string
	newID   func() string
	now     func() time.Time
	logger  zerolog.Logger

	mu         sync.Mutex
	state      pipeline.State
	request    pipeline.RequestState
	held       bool // a load or claim is running outside the state machine
	sourcePath string
	durationMs int64
	startMs    int64
	endMs      int64
	maxSize    int64
}

// Option is a functional option for configuring Service
type Option func(*Service)

// WithMaxSizeBytes sets the session ceiling; zero disables size fitting
func WithMaxSizeBytes(n int64) Option {
	return func(s *Service) {
		s.maxSize = n
	}
}

// WithSaveDirectory sets the directory suggested by the save picker
func WithSaveDirectory(dir string) Option {
	return func(s *Service) {
		s.saveDir = dir
	}
}

// WithIDGenerator sets the request id source (for testing)
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// WithClock sets the event time source (for testing)
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		s.now = fn
	}
}

// WithLogger sets the service logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new orchestrator in the idle state
func NewService(deps Dependencies, opts ...Option) *Service {
	s := &Service{
		deps:   deps,
		newID:  uuid.NewString,
		now:    time.Now,
		logger: zerolog.Nop(),
		state:  pipeline.StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a status handler and returns an unsubscribe function
func (s *Service) Subscribe(handler func(pipeline.StatusEvent)) func() {
	if s.deps.Bus == nil {
		return func() {}
	}
	return s.deps.Bus.Subscribe(handler)
}

// Snapshot returns the current state
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:        s.state,
		Request:      s.request,
		SourcePath:   s.sourcePath,
		DurationMs:   s.durationMs,
		StartMs:      s.startMs,
		EndMs:        s.endMs,
		MaxSizeBytes: s.maxSize,
	}
}

// SetMaxSizeBytes changes the session ceiling used by later trims
func (s *Service) SetMaxSizeBytes(n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busyLocked() {
		return ErrBusy
	}
	s.maxSize = n
	return nil
}

// busyLocked reports whether a mutating request must be rejected; s.mu must be held
func (s *Service) busyLocked() bool {
	return s.held || s.state.Busy()
}

func (s *Service) publish(requestID string, state pipeline.State, level pipeline.Level, format string, args ...any) {
	ev := pipeline.StatusEvent{
		RequestID: requestID,
		State:     state,
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
		Time:      s.now(),
	}

	logEvent := s.logger.Info()
	switch level {
	case pipeline.LevelWarning:
		logEvent = s.logger.Warn()
	case pipeline.LevelError:
		logEvent = s.logger.Error()
	}
	logEvent.Str("request", requestID).Str("state", string(state)).Msg(ev.Message)

	if s.deps.Bus != nil {
		s.deps.Bus.Publish(ev)
	}
}

// transition moves to state and announces it
func (s *Service) transition(requestID string, state pipeline.State, format string, args ...any) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.publish(requestID, state, pipeline.LevelInfo, format, args...)
}

// LoadSource probes path and resets the range to the whole clip
func (s *Service) LoadSource(ctx context.Context, path string) (int64, error) {
	s.mu.Lock()
	if s.busyLocked() {
		s.mu.Unlock()
		return 0, ErrBusy
	}
	s.held = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.held = false
		s.mu.Unlock()
	}()

	if !s.deps.Checker.Exists(path) {
		err := fmt.Errorf("%w: %s", video.ErrSourceNotFound, path)
		s.publish("", s.Snapshot().State, pipeline.LevelError, "Cannot load source: %v", err)
		return 0, err
	}

	seconds, err := s.deps.Prober.ProbeDuration(ctx, path)
	if err != nil {
		s.publish("", s.Snapshot().State, pipeline.LevelError, "Cannot read duration: %v", err)
		return 0, err
	}
	durationMs := video.FromSeconds(seconds).Millis()

	s.mu.Lock()
	s.sourcePath = path
	s.durationMs = durationMs
	s.startMs = 0
	s.endMs = durationMs
	s.request = pipeline.RequestState{}
	s.state = pipeline.StateIdle
	s.mu.Unlock()

	s.publish("", pipeline.StateIdle, pipeline.LevelInfo, "Loaded %s (%s)", filepath.Base(path), video.Timestamp(durationMs))
	return durationMs, nil
}

// SetRange selects [startMs, endMs) and invalidates any completed trim
func (s *Service) SetRange(startMs, endMs int64) error {
	s.mu.Lock()
	if s.busyLocked() {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.sourcePath == "" {
		s.mu.Unlock()
		return ErrNoSource
	}
	if startMs < 0 || endMs <= startMs || endMs > s.durationMs {
		duration := s.durationMs
		s.mu.Unlock()
		return fmt.Errorf("%w: need 0 <= start < end <= %d ms, got [%d, %d)", ErrInvalidRange, duration, startMs, endMs)
	}
	s.startMs = startMs
	s.endMs = endMs
	s.request = pipeline.RequestState{}
	s.state = pipeline.StateIdle
	s.mu.Unlock()

	s.publish("", pipeline.StateIdle, pipeline.LevelInfo, "Range %s - %s", video.Timestamp(startMs), video.Timestamp(endMs))
	return nil
}

// beginTrim claims the pipeline for a new trim request
func (s *Service) beginTrim() (*video.TrimRequest, string, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busyLocked() {
		return nil, "", 0, ErrBusy
	}
	if s.sourcePath == "" {
		return nil, "", 0, ErrNoSource
	}
	req, err := video.NewTrimRequest(s.sourcePath, video.Timestamp(s.startMs), video.Timestamp(s.endMs))
	if err != nil {
		return nil, "", 0, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	id := s.newID()
	s.request = pipeline.NewRequestState(id, s.sourcePath)
	s.state = pipeline.StateTrimming
	return req, id, s.maxSize, nil
}

// CreateTrim trims the selected range and fits it under the session ceiling
func (s *Service) CreateTrim(ctx context.Context) (*Completion, error) {
	req, id, maxSize, err := s.beginTrim()
	if err != nil {
		return nil, err
	}
	c := s.runTrim(ctx, req, id, maxSize)
	return &c, c.Err
}

// CreateTrimAsync starts CreateTrim on a goroutine and delivers exactly one Completion
func (s *Service) CreateTrimAsync(ctx context.Context) (<-chan Completion, error) {
	req, id, maxSize, err := s.beginTrim()
	if err != nil {
		return nil, err
	}
	done := make(chan Completion, 1)
	go func() {
		defer close(done)
		done <- s.runTrim(ctx, req, id, maxSize)
	}()
	return done, nil
}

func (s *Service) runTrim(ctx context.Context, req *video.TrimRequest, id string, maxSize int64) Completion {
	s.publish(id, pipeline.StateTrimming, pipeline.LevelInfo, "Trimming %s to %s...", req.Start, req.End)

	result, err := s.deps.Trimmer.Trim(ctx, req, id)
	if err != nil {
		return s.fail(pipeline.NewRequestState(id, req.SourcePath), "Trim failed", err)
	}

	st := pipeline.NewRequestState(id, req.SourcePath).WithTrim(result.OutputPath, result.SizeBytes)
	s.mu.Lock()
	s.request = st
	s.mu.Unlock()

	return s.fit(ctx, st, maxSize)
}

// beginCompress claims the pipeline to re-fit the existing trim
func (s *Service) beginCompress(maxSizeBytes int64) (pipeline.RequestState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busyLocked() {
		return pipeline.RequestState{}, ErrBusy
	}
	if !s.request.HasTrim() {
		return pipeline.RequestState{}, ErrNoTrim
	}
	if maxSizeBytes <= 0 {
		return pipeline.RequestState{}, fmt.Errorf("target size must be positive, got %d bytes", maxSizeBytes)
	}

	s.maxSize = maxSizeBytes
	st := s.request.WithTrim(s.request.TrimmedPath, s.request.TrimmedSize)
	s.request = st
	s.state = pipeline.StateSizeChecking
	return st, nil
}

// RequestCompress re-fits the completed trim under targetSizeMB
func (s *Service) RequestCompress(ctx context.Context, targetSizeMB float64) (*Completion, error) {
	maxSize := video.MegabytesToBytes(targetSizeMB)
	st, err := s.beginCompress(maxSize)
	if err != nil {
		return nil, err
	}
	c := s.fit(ctx, st, maxSize)
	return &c, c.Err
}

// RequestCompressAsync starts RequestCompress on a goroutine and delivers exactly one Completion
func (s *Service) RequestCompressAsync(ctx context.Context, targetSizeMB float64) (<-chan Completion, error) {
	maxSize := video.MegabytesToBytes(targetSizeMB)
	st, err := s.beginCompress(maxSize)
	if err != nil {
		return nil, err
	}
	done := make(chan Completion, 1)
	go func() {
		defer close(done)
		done <- s.fit(ctx, st, maxSize)
	}()
	return done, nil
}

// fit checks st's trim against maxSize and compresses when needed
// Size check and compression failures fall back to the trimmed file
func (s *Service) fit(ctx context.Context, st pipeline.RequestState, maxSize int64) Completion {
	s.transition(st.RequestID, pipeline.StateSizeChecking, "Checking file size...")

	size, fits, err := s.deps.SizeFitter.CheckSize(st.TrimmedPath, maxSize)
	if err != nil {
		st = st.Fallback(err)
		s.publish(st.RequestID, pipeline.StateSizeChecking, pipeline.LevelWarning,
			"Size check failed, keeping trimmed file: %s", firstLine(err))
		return s.complete(st)
	}

	if fits {
		s.transition(st.RequestID, pipeline.StateAccepting, "File size OK (%s)", gallery.FormatSize(size))
		return s.complete(st.Accept())
	}

	s.transition(st.RequestID, pipeline.StateCompressing, "Compressing %s to fit under %s...",
		gallery.FormatSize(size), gallery.FormatSize(maxSize))

	out, err := s.deps.SizeFitter.Compress(ctx, st.TrimmedPath, maxSize, st.RequestID)
	if err != nil {
		st = st.Fallback(err)
		s.publish(st.RequestID, pipeline.StateCompressing, pipeline.LevelWarning,
			"Compression failed, using uncompressed file: %s", firstLine(err))
		return s.complete(st)
	}

	return s.complete(st.WithCompressed(out.Path, out.SizeBytes))
}

func (s *Service) complete(st pipeline.RequestState) Completion {
	s.mu.Lock()
	s.request = st
	s.state = pipeline.StateComplete
	s.mu.Unlock()

	s.publish(st.RequestID, pipeline.StateComplete, pipeline.LevelInfo, "Ready: %s (%s)",
		filepath.Base(st.FinalPath), gallery.FormatSize(st.FinalSize))
	return Completion{Request: st}
}

func (s *Service) fail(st pipeline.RequestState, what string, err error) Completion {
	s.mu.Lock()
	s.request = pipeline.NewRequestState(st.RequestID, st.SourcePath)
	s.state = pipeline.StateFailed
	s.mu.Unlock()

	s.publish(st.RequestID, pipeline.StateFailed, pipeline.LevelError, "%s: %v", what, err)
	return Completion{Request: st, Err: err}
}

// firstLine returns the first line of an error message
func firstLine(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}
