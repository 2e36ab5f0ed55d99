//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/cucumber/godog"

	apppipeline "clipfit/application/pipeline"
	appvideo "clipfit/application/video"
	"clipfit/cmd"
	"clipfit/domain/claim"
	"clipfit/domain/video"
	"clipfit/infrastructure/clipboard"
	"clipfit/infrastructure/events"
	"clipfit/infrastructure/ffmpeg"
	"clipfit/infrastructure/filesystem"
)

const tempDir = "/tmp/clipfit"

// clipboardRunner records wl-copy invocations
type clipboardRunner struct {
	mu      sync.Mutex
	missing bool
	calls   [][]string
}

func (r *clipboardRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.missing {
		return nil, exec.ErrNotFound
	}
	r.calls = append(r.calls, args)
	return nil, nil
}

func (r *clipboardRunner) Output(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	_, err := r.Run(ctx, name, args...)
	return nil, nil, err
}

// recordingCopier records copies instead of touching the filesystem
type recordingCopier struct {
	copies [][2]string
}

func (c *recordingCopier) Copy(src, dst string) error {
	c.copies = append(c.copies, [2]string{src, dst})
	return nil
}

// scriptedPicker answers the save dialog
type scriptedPicker struct {
	answer    string
	suggested string
}

func (p *scriptedPicker) PickSavePath(ctx context.Context, suggested, ext string) (string, error) {
	p.suggested = suggested
	if p.answer == "" {
		return "", claim.ErrUserCancelled
	}
	return p.answer, nil
}

// trimContext holds test state for trim scenarios
type trimContext struct {
	encoder   *fakeEncoder
	clipboard *clipboardRunner
	copier    *recordingCopier
	picker    *scriptedPicker
	maxSizeMB float64
	output    *bytes.Buffer
	err       error
	svc       *apppipeline.Service
}

// SharedTrimContext is reset before each scenario via Before hook
var SharedTrimContext *trimContext

func getTrimContext() *trimContext {
	return SharedTrimContext
}

func InitializeTrimScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedTrimContext = &trimContext{
			encoder:   newFakeEncoder(),
			clipboard: &clipboardRunner{},
			copier:    &recordingCopier{},
			picker:    &scriptedPicker{},
			output:    &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedTrimContext = nil
		return c, nil
	})

	ctx.Step(`^a (\d+) second source video at "([^"]*)"$`, aSecondSourceVideoAt)
	ctx.Step(`^the size limit is (\d+(?:\.\d+)?) MB$`, theSizeLimitIs)
	ctx.Step(`^trimming produces a (\d+) MB file$`, trimmingProducesAFile)
	ctx.Step(`^compression produces a (\d+) MB file$`, compressionProducesAFile)
	ctx.Step(`^ffmpeg fails to trim with "([^"]*)"$`, ffmpegFailsToTrimWith)
	ctx.Step(`^ffmpeg fails to compress with "([^"]*)"$`, ffmpegFailsToCompressWith)
	ctx.Step(`^ffprobe cannot read the trimmed file$`, ffprobeCannotReadTheTrimmedFile)
	ctx.Step(`^the clipboard tool is not installed$`, theClipboardToolIsNotInstalled)
	ctx.Step(`^the save dialog answers "([^"]*)"$`, theSaveDialogAnswers)
	ctx.Step(`^the save dialog is cancelled$`, theSaveDialogIsCancelled)

	ctx.Step(`^I trim "([^"]*)" from "([^"]*)" to "([^"]*)"$`, iTrimFromTo)
	ctx.Step(`^I trim "([^"]*)" from "([^"]*)" to "([^"]*)" and copy it to the clipboard$`, iTrimAndCopyToClipboard)
	ctx.Step(`^I trim "([^"]*)" from "([^"]*)" to "([^"]*)" and save it$`, iTrimAndSave)
	ctx.Step(`^I trim "([^"]*)" from "([^"]*)" to "([^"]*)" and save it to "([^"]*)"$`, iTrimAndSaveTo)

	ctx.Step(`^the trim should succeed$`, theTrimShouldSucceed)
	ctx.Step(`^the trim should fail with "([^"]*)"$`, theTrimShouldFailWith)
	ctx.Step(`^ffmpeg should have trimmed with "([^"]*)"$`, ffmpegShouldHaveTrimmedWith)
	ctx.Step(`^ffmpeg should have compressed at (\d+) bits per second$`, ffmpegShouldHaveCompressedAt)
	ctx.Step(`^no compression should have run$`, noCompressionShouldHaveRun)
	ctx.Step(`^the claimable output should be "([^"]*)"$`, theClaimableOutputShouldBe)
	ctx.Step(`^the pipeline state should be "([^"]*)"$`, thePipelineStateShouldBe)
	ctx.Step(`^the trim output should contain "([^"]*)"$`, theTrimOutputShouldContain)
	ctx.Step(`^the clipboard should hold "([^"]*)"$`, theClipboardShouldHold)
	ctx.Step(`^"([^"]*)" should have been copied to "([^"]*)"$`, shouldHaveBeenCopiedTo)
	ctx.Step(`^the save dialog should have suggested "([^"]*)"$`, theSaveDialogShouldHaveSuggested)
	ctx.Step(`^nothing should have been copied$`, nothingShouldHaveBeenCopied)
}

func aSecondSourceVideoAt(seconds int, path string) error {
	getTrimContext().encoder.addSource(path, 500*1024*1024, fmt.Sprintf("%d.000000", seconds))
	return nil
}

func theSizeLimitIs(mb float64) error {
	getTrimContext().maxSizeMB = mb
	return nil
}

func trimmingProducesAFile(mb int) error {
	getTrimContext().encoder.trimSize = int64(mb) * 1024 * 1024
	return nil
}

func compressionProducesAFile(mb int) error {
	getTrimContext().encoder.compressedSize = int64(mb) * 1024 * 1024
	return nil
}

func ffmpegFailsToTrimWith(stderr string) error {
	getTrimContext().encoder.trimStderr = stderr
	return nil
}

func ffmpegFailsToCompressWith(stderr string) error {
	getTrimContext().encoder.compressStderr = stderr
	return nil
}

func ffprobeCannotReadTheTrimmedFile() error {
	getTrimContext().encoder.unreadableOutputs = true
	return nil
}

func theClipboardToolIsNotInstalled() error {
	getTrimContext().clipboard.missing = true
	return nil
}

func theSaveDialogAnswers(path string) error {
	getTrimContext().picker.answer = path
	return nil
}

func theSaveDialogIsCancelled() error {
	getTrimContext().picker.answer = ""
	return nil
}

// newService wires the real services and adapters over the fake executables
func (t *trimContext) newService() (*apppipeline.Service, *events.Bus) {
	runner := ffmpeg.WithCommandRunner(t.encoder)
	namer := filesystem.NewTempNamer(tempDir)
	prober := ffmpeg.NewProber(runner)

	trim := appvideo.NewTrimService(ffmpeg.NewTrimmer(runner), t.encoder, t.encoder, namer, appvideo.WithExtension(".mp4"))
	fit := appvideo.NewSizeFitService(prober, ffmpeg.NewCompressor(runner), t.encoder, namer)
	bus := events.New()

	svc := apppipeline.NewService(apppipeline.Dependencies{
		Trimmer:    trim,
		SizeFitter: fit,
		Prober:     prober,
		Checker:    t.encoder,
		Bus:        bus,
		Clipboard:  clipboard.New(clipboard.WithCommandRunner(t.clipboard)),
		Picker:     t.picker,
		Copier:     t.copier,
	},
		apppipeline.WithMaxSizeBytes(video.MegabytesToBytes(t.maxSizeMB)),
		apppipeline.WithSaveDirectory("/home/user/Videos"),
		apppipeline.WithIDGenerator(func() string { return "req1" }),
	)
	return svc, bus
}

func (t *trimContext) run(opts cmd.TrimOptions) {
	svc, bus := t.newService()
	t.svc = svc
	t.err = cmd.RunTrimWithDependencies(context.Background(), svc, bus, opts, t.output)
}

func iTrimFromTo(source, start, end string) error {
	getTrimContext().run(cmd.TrimOptions{SourcePath: source, StartTime: start, EndTime: end})
	return nil
}

func iTrimAndCopyToClipboard(source, start, end string) error {
	getTrimContext().run(cmd.TrimOptions{SourcePath: source, StartTime: start, EndTime: end, Claim: cmd.ClaimClipboard})
	return nil
}

func iTrimAndSave(source, start, end string) error {
	getTrimContext().run(cmd.TrimOptions{SourcePath: source, StartTime: start, EndTime: end, Claim: cmd.ClaimSave})
	return nil
}

func iTrimAndSaveTo(source, start, end, dest string) error {
	getTrimContext().run(cmd.TrimOptions{SourcePath: source, StartTime: start, EndTime: end, Claim: cmd.ClaimOutput, OutputPath: dest})
	return nil
}

func theTrimShouldSucceed() error {
	t := getTrimContext()
	if t.err != nil {
		return fmt.Errorf("unexpected error: %v\noutput:\n%s", t.err, t.output.String())
	}
	return nil
}

func theTrimShouldFailWith(text string) error {
	t := getTrimContext()
	if t.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(t.err.Error(), text) {
		return fmt.Errorf("expected error containing %q, got: %v", text, t.err)
	}
	return nil
}

func ffmpegShouldHaveTrimmedWith(fragment string) error {
	t := getTrimContext()
	calls := t.encoder.callsTo("copy")
	if len(calls) != 1 {
		return fmt.Errorf("expected 1 trim call, got %d", len(calls))
	}
	if !strings.Contains(joinArgs(calls[0]), fragment) {
		return fmt.Errorf("expected %q in trim call: %s", fragment, joinArgs(calls[0]))
	}
	return nil
}

func ffmpegShouldHaveCompressedAt(bitrate int) error {
	t := getTrimContext()
	calls := t.encoder.callsTo("-b:v")
	if len(calls) != 1 {
		return fmt.Errorf("expected 1 compress call, got %d", len(calls))
	}
	if got := argAfter(calls[0], "-b:v"); got != fmt.Sprint(bitrate) {
		return fmt.Errorf("expected -b:v %d, got %s", bitrate, got)
	}
	return nil
}

func noCompressionShouldHaveRun() error {
	if calls := getTrimContext().encoder.callsTo("-b:v"); len(calls) != 0 {
		return fmt.Errorf("expected no compression, got %v", calls)
	}
	return nil
}

func theClaimableOutputShouldBe(path string) error {
	t := getTrimContext()
	if got := t.svc.Snapshot().Request.Claimable(); got != path {
		return fmt.Errorf("expected claimable output %q, got %q", path, got)
	}
	return nil
}

func thePipelineStateShouldBe(state string) error {
	t := getTrimContext()
	if got := string(t.svc.Snapshot().State); got != state {
		return fmt.Errorf("expected state %q, got %q", state, got)
	}
	return nil
}

func theTrimOutputShouldContain(text string) error {
	t := getTrimContext()
	if !strings.Contains(t.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, t.output.String())
	}
	return nil
}

func theClipboardShouldHold(path string) error {
	t := getTrimContext()
	if len(t.clipboard.calls) != 2 {
		return fmt.Errorf("expected 2 wl-copy calls, got %d", len(t.clipboard.calls))
	}
	uri := t.clipboard.calls[0]
	if !contains(uri, "text/uri-list") || !contains(uri, clipboard.FileURI(path)) {
		return fmt.Errorf("unexpected uri-list call: %v", uri)
	}
	if !contains(t.clipboard.calls[1], path) {
		return fmt.Errorf("unexpected primary selection call: %v", t.clipboard.calls[1])
	}
	return nil
}

func shouldHaveBeenCopiedTo(src, dst string) error {
	t := getTrimContext()
	for _, c := range t.copier.copies {
		if c == [2]string{src, dst} {
			return nil
		}
	}
	return fmt.Errorf("expected copy %s -> %s, got %v", src, dst, t.copier.copies)
}

func theSaveDialogShouldHaveSuggested(path string) error {
	if got := getTrimContext().picker.suggested; got != path {
		return fmt.Errorf("expected suggestion %q, got %q", path, got)
	}
	return nil
}

func nothingShouldHaveBeenCopied() error {
	if copies := getTrimContext().copier.copies; len(copies) != 0 {
		return fmt.Errorf("expected no copies, got %v", copies)
	}
	return nil
}
