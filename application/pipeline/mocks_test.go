package pipeline

import (
	"context"
	"sync"

	"clipfit/domain/pipeline"
	"clipfit/domain/video"
)

// --- Mock implementations for testing ---

type mockTrimmer struct {
	size  int64
	err   error
	gate  chan struct{} // when set, Trim blocks until closed
	calls []*video.TrimRequest
}

func (m *mockTrimmer) Trim(ctx context.Context, req *video.TrimRequest, requestID string) (*video.TrimResult, error) {
	m.calls = append(m.calls, req)
	if m.gate != nil {
		<-m.gate
	}
	if m.err != nil {
		return nil, m.err
	}
	return &video.TrimResult{OutputPath: "/tmp/trimmed_" + requestID + ".mp4", SizeBytes: m.size}, nil
}

type mockSizeFitter struct {
	compressedSize int64
	compressErr    error
	checkErr       error
	compressCalls  []int64
}

func (m *mockSizeFitter) Compress(ctx context.Context, inputPath string, maxSizeBytes int64, requestID string) (*video.FitOutcome, error) {
	m.compressCalls = append(m.compressCalls, maxSizeBytes)
	if m.compressErr != nil {
		return nil, m.compressErr
	}
	return &video.FitOutcome{Path: "/tmp/compressed_" + requestID + ".mp4", SizeBytes: m.compressedSize, WasCompressed: true}, nil
}

// sizedFitter answers CheckSize from the trimmer's output size
type sizedFitter struct {
	*mockSizeFitter
	trimmer *mockTrimmer
}

func (f sizedFitter) CheckSize(path string, maxSizeBytes int64) (int64, bool, error) {
	if f.checkErr != nil {
		return 0, false, f.checkErr
	}
	size := f.trimmer.size
	return size, maxSizeBytes <= 0 || size <= maxSizeBytes, nil
}

type mockProber struct {
	seconds float64
	err     error
}

func (m *mockProber) ProbeDuration(ctx context.Context, path string) (float64, error) {
	return m.seconds, m.err
}

type mockChecker struct {
	existing map[string]bool
}

func (m *mockChecker) Exists(path string) bool {
	return m.existing[path]
}

// recordingBus delivers events synchronously and keeps a copy of each
type recordingBus struct {
	mu       sync.Mutex
	events   []pipeline.StatusEvent
	handlers []func(pipeline.StatusEvent)
}

func (b *recordingBus) Publish(ev pipeline.StatusEvent) {
	b.mu.Lock()
	b.events = append(b.events, ev)
	handlers := append([]func(pipeline.StatusEvent){}, b.handlers...)
	b.mu.Unlock()
	for _, h := range handlers {
		h(ev)
	}
}

func (b *recordingBus) Subscribe(handler func(pipeline.StatusEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
	return func() {}
}

func (b *recordingBus) states() []pipeline.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []pipeline.State
	for _, e := range b.events {
		out = append(out, e.State)
	}
	return out
}

func (b *recordingBus) last() pipeline.StatusEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.events[len(b.events)-1]
}

type mockClipboard struct {
	err   error
	paths []string
}

func (m *mockClipboard) PublishFile(ctx context.Context, path string) error {
	m.paths = append(m.paths, path)
	return m.err
}

type mockPicker struct {
	answer    string
	err       error
	suggested string
	ext       string
}

func (m *mockPicker) PickSavePath(ctx context.Context, suggested, extension string) (string, error) {
	m.suggested = suggested
	m.ext = extension
	return m.answer, m.err
}

type mockCopier struct {
	err    error
	copies [][2]string
}

func (m *mockCopier) Copy(src, dst string) error {
	m.copies = append(m.copies, [2]string{src, dst})
	return m.err
}

type mockUploader struct {
	url   string
	err   error
	names []string
}

func (m *mockUploader) Share(ctx context.Context, path, name string) (string, error) {
	m.names = append(m.names, name)
	return m.url, m.err
}
