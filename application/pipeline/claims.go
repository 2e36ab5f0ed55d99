package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"clipfit/domain/claim"
	"clipfit/domain/pipeline"
)

// claimTarget is what a claim hands to its adapter
type claimTarget struct {
	requestID string
	path      string
	suggested string // trimmed_<source name><output ext>
}

// beginClaim holds the pipeline for a claim on the completed output
func (s *Service) beginClaim() (claimTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busyLocked() {
		return claimTarget{}, ErrBusy
	}
	path := s.request.Claimable()
	if s.state != pipeline.StateComplete || path == "" {
		return claimTarget{}, ErrNoTrim
	}

	s.held = true
	base := filepath.Base(s.request.SourcePath)
	return claimTarget{
		requestID: s.request.RequestID,
		path:      path,
		suggested: "trimmed_" + strings.TrimSuffix(base, filepath.Ext(base)) + filepath.Ext(path),
	}, nil
}

func (s *Service) endClaim() {
	s.mu.Lock()
	s.held = false
	s.mu.Unlock()
}

// claimed publishes the result of a claim
func (s *Service) claimed(t claimTarget, out claim.Outcome, err error) (claim.Outcome, error) {
	switch {
	case err != nil:
		s.publish(t.requestID, pipeline.StateComplete, pipeline.LevelError, "%s: %v", out.Status, err)
	case !out.Claimed:
		s.publish(t.requestID, pipeline.StateComplete, pipeline.LevelWarning, "%s", out.Status)
	default:
		s.publish(t.requestID, pipeline.StateComplete, pipeline.LevelInfo, "%s", out.Status)
	}
	return out, err
}

// ClaimToClipboard places the completed output on the desktop clipboard
func (s *Service) ClaimToClipboard(ctx context.Context) (claim.Outcome, error) {
	if s.deps.Clipboard == nil {
		return claim.Outcome{}, fmt.Errorf("clipboard: %w", ErrNotAvailable)
	}
	t, err := s.beginClaim()
	if err != nil {
		return claim.Outcome{}, err
	}
	defer s.endClaim()

	if err := s.deps.Clipboard.PublishFile(ctx, t.path); err != nil {
		return s.claimed(t, claim.Outcome{Status: "Clipboard copy failed"}, err)
	}
	return s.claimed(t, claim.Outcome{Claimed: true, Status: "Copied to clipboard", Path: t.path}, nil)
}

// ClaimToPath copies the completed output to dest
func (s *Service) ClaimToPath(ctx context.Context, dest string) (claim.Outcome, error) {
	if s.deps.Copier == nil {
		return claim.Outcome{}, fmt.Errorf("copier: %w", ErrNotAvailable)
	}
	t, err := s.beginClaim()
	if err != nil {
		return claim.Outcome{}, err
	}
	defer s.endClaim()

	return s.saveTo(t, dest)
}

func (s *Service) saveTo(t claimTarget, dest string) (claim.Outcome, error) {
	if err := s.deps.Copier.Copy(t.path, dest); err != nil {
		return s.claimed(t, claim.Outcome{Status: "Save failed"}, err)
	}
	return s.claimed(t, claim.Outcome{Claimed: true, Status: "Saved to " + dest, Path: dest}, nil)
}

// ClaimWithPicker asks the user for a destination and copies the output there
// Cancelling the picker is not an error
func (s *Service) ClaimWithPicker(ctx context.Context) (claim.Outcome, error) {
	if s.deps.Picker == nil || s.deps.Copier == nil {
		return claim.Outcome{}, fmt.Errorf("save picker: %w", ErrNotAvailable)
	}
	t, err := s.beginClaim()
	if err != nil {
		return claim.Outcome{}, err
	}
	defer s.endClaim()

	suggested := t.suggested
	if s.saveDir != "" {
		suggested = filepath.Join(s.saveDir, suggested)
	}

	dest, err := s.deps.Picker.PickSavePath(ctx, suggested, filepath.Ext(t.path))
	if errors.Is(err, claim.ErrUserCancelled) {
		return s.claimed(t, claim.Outcome{Status: "Save cancelled"}, nil)
	}
	if err != nil {
		return s.claimed(t, claim.Outcome{Status: "Save dialog failed"}, err)
	}

	return s.saveTo(t, dest)
}

// ClaimToDrive uploads the output and returns its shareable link
func (s *Service) ClaimToDrive(ctx context.Context) (claim.Outcome, error) {
	if s.deps.Uploader == nil {
		return claim.Outcome{}, fmt.Errorf("drive upload: %w", ErrNotAvailable)
	}
	t, err := s.beginClaim()
	if err != nil {
		return claim.Outcome{}, err
	}
	defer s.endClaim()

	url, err := s.deps.Uploader.Share(ctx, t.path, t.suggested)
	if err != nil {
		return s.claimed(t, claim.Outcome{Status: "Upload failed"}, err)
	}
	return s.claimed(t, claim.Outcome{Claimed: true, Status: "Shared: " + url, Path: url}, nil)
}
