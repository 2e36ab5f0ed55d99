package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"clipfit/domain/gallery"
)

func galleryVideos() []gallery.VideoInfo {
	mod := time.Date(2026, 3, 4, 20, 15, 0, 0, time.UTC)
	return []gallery.VideoInfo{
		{Path: "/rec/a.mkv", Name: "a.mkv", Size: 2 * 1024 * 1024, ModTime: mod, Thumbnail: "/tmp/clipfit_thumbnails/x.jpg"},
		{Path: "/rec/b.mp4", Name: "b.mp4", Size: 900 * 1024 * 1024, ModTime: mod},
	}
}

func TestRunGallery_SelectsAndTrims(t *testing.T) {
	prompter := &mockPrompter{
		selects: []int{1, 2},
		inputs:  []string{"00:00:05", "00:00:35"},
	}
	var got TrimOptions
	var out bytes.Buffer

	err := RunGalleryWithDependencies(context.Background(), &mockLister{videos: galleryVideos()}, prompter, "/rec", 25, false,
		func(opts TrimOptions) error { got = opts; return nil }, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := TrimOptions{SourcePath: "/rec/b.mp4", StartTime: "00:00:05", EndTime: "00:00:35", MaxSizeMB: 25, Claim: ClaimClipboard}
	if got != want {
		t.Errorf("trim options = %+v, want %+v", got, want)
	}

	text := out.String()
	for _, want := range []string{"a.mkv", "2.0 MB", "900.0 MB", "2026-03-04 20:15", "/tmp/clipfit_thumbnails/x.jpg"} {
		if !strings.Contains(text, want) {
			t.Errorf("listing missing %q:\n%s", want, text)
		}
	}
}

func TestRunGallery_ShareChoiceOnlyWhenEnabled(t *testing.T) {
	labels, modes := claimChoices(false)
	if len(labels) != 3 || len(modes) != 3 {
		t.Fatalf("without Drive got %d choices, want 3", len(labels))
	}

	labels, modes = claimChoices(true)
	if len(labels) != 4 || modes[3] != ClaimShare {
		t.Errorf("with Drive got %v, want share as the last choice", modes)
	}
}

func TestRunGallery_Empty(t *testing.T) {
	var out bytes.Buffer
	called := false

	err := RunGalleryWithDependencies(context.Background(), &mockLister{}, &mockPrompter{}, "/rec", 0, false,
		func(TrimOptions) error { called = true; return nil }, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("trim should not run for an empty folder")
	}
	if !strings.Contains(out.String(), "No videos found in /rec") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRunGallery_Errors(t *testing.T) {
	tests := []struct {
		name     string
		lister   *mockLister
		prompter *mockPrompter
		wantMsg  string
	}{
		{
			name:     "scan failure",
			lister:   &mockLister{err: errors.New("permission denied")},
			prompter: &mockPrompter{},
			wantMsg:  "failed to list /rec",
		},
		{
			name:     "prompt cancelled",
			lister:   &mockLister{videos: galleryVideos()},
			prompter: &mockPrompter{err: errors.New("interrupt")},
			wantMsg:  "prompt cancelled",
		},
		{
			name:     "missing end time",
			lister:   &mockLister{videos: galleryVideos()},
			prompter: &mockPrompter{inputs: []string{"00:00:05", ""}},
			wantMsg:  "end time is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunGalleryWithDependencies(context.Background(), tt.lister, tt.prompter, "/rec", 0, false,
				func(TrimOptions) error { return nil }, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %v, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}
