package video

import (
	"context"
	"errors"
	"path/filepath"

	"clipfit/domain/video"
)

// mockTrimmer implements video.Trimmer for testing
type mockTrimmer struct {
	checker   *mockFiles
	writeSize int64
	failError error
	calls     []string
}

func (m *mockTrimmer) Trim(ctx context.Context, req *video.TrimRequest, outputPath string) error {
	m.calls = append(m.calls, outputPath)
	if m.failError != nil {
		return m.failError
	}
	if m.checker != nil {
		m.checker.sizes[outputPath] = m.writeSize
	}
	return nil
}

// mockFiles implements video.FileChecker and video.FileSizer for testing
type mockFiles struct {
	sizes map[string]int64
}

func newMockFiles(sizes map[string]int64) *mockFiles {
	if sizes == nil {
		sizes = map[string]int64{}
	}
	return &mockFiles{sizes: sizes}
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

// mockProber implements video.DurationProber for testing
type mockProber struct {
	duration float64
	err      error
	calls    int
}

func (m *mockProber) ProbeDuration(ctx context.Context, path string) (float64, error) {
	m.calls++
	return m.duration, m.err
}

// mockCompressor implements video.Compressor for testing
type mockCompressor struct {
	files     *mockFiles
	writeSize int64
	err       error
	plans     []*video.CompressionPlan
}

func (m *mockCompressor) Compress(ctx context.Context, inputPath, outputPath string, plan *video.CompressionPlan) error {
	m.plans = append(m.plans, plan)
	if m.err != nil {
		return m.err
	}
	m.files.sizes[outputPath] = m.writeSize
	return nil
}

// tempNamer implements video.TempNamer for testing
type tempNamer struct{}

func (tempNamer) TempPath(prefix, requestID, ext string) string {
	return filepath.Join("/tmp", prefix+"_"+requestID+ext)
}
