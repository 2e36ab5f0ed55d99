package cmd

import (
	"context"
	"errors"
	"sync"
	"time"

	apppipeline "clipfit/application/pipeline"
	"clipfit/domain/gallery"
	"clipfit/domain/pipeline"
	"clipfit/domain/video"
)

// --- Mock implementations for testing ---

// syncBus delivers events on the publishing goroutine
type syncBus struct {
	mu       sync.Mutex
	handlers map[int]func(pipeline.StatusEvent)
	next     int
}

func newSyncBus() *syncBus {
	return &syncBus{handlers: make(map[int]func(pipeline.StatusEvent))}
}

func (b *syncBus) Publish(ev pipeline.StatusEvent) {
	b.mu.Lock()
	hs := make([]func(pipeline.StatusEvent), 0, len(b.handlers))
	for _, h := range b.handlers {
		hs = append(hs, h)
	}
	b.mu.Unlock()
	for _, h := range hs {
		h(ev)
	}
}

func (b *syncBus) Subscribe(h func(pipeline.StatusEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.handlers[id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

type mockTrimmer struct {
	size  int64
	err   error
	calls []*video.TrimRequest
}

func (m *mockTrimmer) Trim(ctx context.Context, req *video.TrimRequest, requestID string) (*video.TrimResult, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return &video.TrimResult{OutputPath: "/tmp/trimmed_" + requestID + ".mp4", SizeBytes: m.size}, nil
}

// mockFitter answers size checks from a fixed size and records compressions
type mockFitter struct {
	size           int64
	compressedSize int64
	compressErr    error
	compressCalls  []int64
}

func (m *mockFitter) CheckSize(path string, maxSizeBytes int64) (int64, bool, error) {
	return m.size, maxSizeBytes <= 0 || m.size <= maxSizeBytes, nil
}

func (m *mockFitter) Compress(ctx context.Context, inputPath string, maxSizeBytes int64, requestID string) (*video.FitOutcome, error) {
	m.compressCalls = append(m.compressCalls, maxSizeBytes)
	if m.compressErr != nil {
		return nil, m.compressErr
	}
	return &video.FitOutcome{Path: "/tmp/compressed_" + requestID + ".mp4", SizeBytes: m.compressedSize, WasCompressed: true}, nil
}

func (m *mockFitter) FitToSize(ctx context.Context, inputPath string, maxSizeBytes int64, requestID string) (*video.FitOutcome, error) {
	if m.size <= maxSizeBytes {
		return &video.FitOutcome{Path: inputPath, SizeBytes: m.size}, nil
	}
	return m.Compress(ctx, inputPath, maxSizeBytes, requestID)
}

type mockProber struct {
	seconds float64
	err     error
}

func (m *mockProber) ProbeDuration(ctx context.Context, path string) (float64, error) {
	return m.seconds, m.err
}

type mockFiles struct {
	sizes map[string]int64
}

func (m *mockFiles) Exists(path string) bool {
	_, ok := m.sizes[path]
	return ok
}

func (m *mockFiles) Size(path string) (int64, error) {
	size, ok := m.sizes[path]
	if !ok {
		return 0, errors.New("no such file")
	}
	return size, nil
}

type mockCopier struct {
	err   error
	calls [][2]string
}

func (m *mockCopier) Copy(src, dst string) error {
	m.calls = append(m.calls, [2]string{src, dst})
	return m.err
}

type mockClipboard struct {
	err   error
	paths []string
}

func (m *mockClipboard) PublishFile(ctx context.Context, path string) error {
	m.paths = append(m.paths, path)
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

// mockPrompter answers Input and Select from queues
type mockPrompter struct {
	inputs   []string
	selects  []int
	confirms []bool
	err      error
	asked    []string
}

func (m *mockPrompter) Input(message, defaultValue string) (string, error) {
	m.asked = append(m.asked, message)
	if m.err != nil {
		return "", m.err
	}
	if len(m.inputs) == 0 {
		return "", nil
	}
	v := m.inputs[0]
	m.inputs = m.inputs[1:]
	return v, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	m.asked = append(m.asked, message)
	if m.err != nil {
		return false, m.err
	}
	if len(m.confirms) == 0 {
		return defaultValue, nil
	}
	v := m.confirms[0]
	m.confirms = m.confirms[1:]
	return v, nil
}

func (m *mockPrompter) Select(message string, options []string) (int, error) {
	m.asked = append(m.asked, message)
	if m.err != nil {
		return 0, m.err
	}
	if len(m.selects) == 0 {
		return 0, nil
	}
	v := m.selects[0]
	m.selects = m.selects[1:]
	return v, nil
}

type mockLister struct {
	videos []gallery.VideoInfo
	err    error
}

func (m *mockLister) List(ctx context.Context, dir string) ([]gallery.VideoInfo, error) {
	return m.videos, m.err
}

// trimFixture is an orchestrator over mocks with /videos/match.mkv loaded-ready
type trimFixture struct {
	trimmer   *mockTrimmer
	fitter    *mockFitter
	files     *mockFiles
	copier    *mockCopier
	clipboard *mockClipboard
	uploader  *mockUploader
	bus       *syncBus
	svc       *apppipeline.Service
}

func newTrimFixture(trimSize int64) *trimFixture {
	f := &trimFixture{
		trimmer:   &mockTrimmer{size: trimSize},
		fitter:    &mockFitter{size: trimSize, compressedSize: 40 * 1024 * 1024},
		files:     &mockFiles{sizes: map[string]int64{"/videos/match.mkv": 500 * 1024 * 1024}},
		copier:    &mockCopier{},
		clipboard: &mockClipboard{},
		uploader:  &mockUploader{url: "https://drive.google.com/file/d/abc/view"},
		bus:       newSyncBus(),
	}
	f.svc = apppipeline.NewService(apppipeline.Dependencies{
		Trimmer:    f.trimmer,
		SizeFitter: f.fitter,
		Prober:     &mockProber{seconds: 120},
		Checker:    f.files,
		Bus:        f.bus,
		Clipboard:  f.clipboard,
		Copier:     f.copier,
		Uploader:   f.uploader,
	},
		apppipeline.WithMaxSizeBytes(50*1024*1024),
		apppipeline.WithIDGenerator(func() string { return "req" }),
		apppipeline.WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }),
	)
	return f
}
