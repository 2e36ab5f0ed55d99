//go:build integration

package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// fakeEncoder stands in for the ffmpeg and ffprobe executables
// Trims and compressions "write" their last argument into files
type fakeEncoder struct {
	mu                sync.Mutex
	files             map[string]int64
	durations         map[string]string // seconds as ffprobe prints them
	produced          map[string]bool
	trimSize          int64
	compressedSize    int64
	trimStderr        string
	compressStderr    string
	unreadableOutputs bool
	calls             [][]string
}

func newFakeEncoder() *fakeEncoder {
	return &fakeEncoder{
		files:     make(map[string]int64),
		durations: make(map[string]string),
		produced:  make(map[string]bool),
	}
}

// addSource registers an input file
func (f *fakeEncoder) addSource(path string, size int64, seconds string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = size
	f.durations[path] = seconds
}

func (f *fakeEncoder) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string{name}, args...))
	if len(args) == 1 && args[0] == "-version" {
		return nil, nil
	}

	out := args[len(args)-1]
	switch {
	case contains(args, "copy"):
		if f.trimStderr != "" {
			return []byte(f.trimStderr), errors.New("exit status 1")
		}
		f.files[out] = f.trimSize
		f.durations[out] = argAfter(args, "-t")
		f.produced[out] = true
	case contains(args, "-b:v"):
		if f.compressStderr != "" {
			return []byte(f.compressStderr), errors.New("exit status 1")
		}
		f.files[out] = f.compressedSize
		f.durations[out] = f.durations[argAfter(args, "-i")]
		f.produced[out] = true
	}
	return nil, nil
}

func (f *fakeEncoder) Output(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string{name}, args...))
	path := args[len(args)-1]
	seconds, ok := f.durations[path]
	if !ok || (f.unreadableOutputs && f.produced[path]) {
		return nil, []byte(path + ": Invalid data found when processing input"), errors.New("exit status 1")
	}
	return []byte(fmt.Sprintf(`{"format":{"duration":"%s"}}`, seconds)), nil, nil
}

// Exists reports whether a source or produced file is present
func (f *fakeEncoder) Exists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]
	return ok
}

// Size returns the size of a present file
func (f *fakeEncoder) Size(path string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	size, ok := f.files[path]
	if !ok {
		return 0, fmt.Errorf("stat %s: no such file or directory", path)
	}
	return size, nil
}

// callsTo returns the argument lists of every call whose args contain marker
func (f *fakeEncoder) callsTo(marker string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][]string
	for _, c := range f.calls {
		if contains(c, marker) {
			out = append(out, c)
		}
	}
	return out
}

func contains(args []string, s string) bool {
	for _, a := range args {
		if a == s {
			return true
		}
	}
	return false
}

func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
