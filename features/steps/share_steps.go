//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
	googledrive "google.golang.org/api/drive/v3"

	appdist "clipfit/application/distribution"
	"clipfit/cmd"
	"clipfit/infrastructure/drive"
)

// shareMockDriveService is an in-memory Drive folder
type shareMockDriveService struct {
	files       []*googledrive.File
	deleted     []string
	uploaded    []*googledrive.File
	permissions map[string]*googledrive.Permission
	uploadErr   error
	nextID      int
}

func (m *shareMockDriveService) ListFiles(ctx context.Context, query string, fields string) ([]*googledrive.File, error) {
	var out []*googledrive.File
	for _, f := range m.files {
		if strings.Contains(query, fmt.Sprintf("name = '%s'", f.Name)) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *shareMockDriveService) DeleteFile(ctx context.Context, fileID string) error {
	m.deleted = append(m.deleted, fileID)
	kept := m.files[:0]
	for _, f := range m.files {
		if f.Id != fileID {
			kept = append(kept, f)
		}
	}
	m.files = kept
	return nil
}

func (m *shareMockDriveService) UploadFile(ctx context.Context, fileName, mimeType, folderID, localPath string) (*googledrive.File, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	m.nextID++
	f := &googledrive.File{
		Id:       fmt.Sprintf("file%d", m.nextID),
		Name:     fileName,
		MimeType: mimeType,
		Parents:  []string{folderID},
	}
	m.uploaded = append(m.uploaded, f)
	m.files = append(m.files, f)
	return f, nil
}

func (m *shareMockDriveService) CreatePermission(ctx context.Context, fileID string, permission *googledrive.Permission) error {
	m.permissions[fileID] = permission
	return nil
}

type shareContext struct {
	tempDir   string
	localPath string
	folderID  string
	service   *shareMockDriveService
	output    *bytes.Buffer
	err       error
}

var SharedShareContext = &shareContext{}

func InitializeShareScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "share-test-*")
		if err != nil {
			return c, err
		}
		SharedShareContext = &shareContext{
			tempDir: tempDir,
			service: &shareMockDriveService{permissions: make(map[string]*googledrive.Permission)},
			output:  &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedShareContext.tempDir != "" {
			os.RemoveAll(SharedShareContext.tempDir)
		}
		SharedShareContext = &shareContext{}
		return c, nil
	})

	ctx.Step(`^the Drive folder ID is "([^"]*)"$`, theDriveFolderIDIs)
	ctx.Step(`^a local clip named "([^"]*)"$`, aLocalClipNamed)
	ctx.Step(`^the Drive folder already contains "([^"]*)" with ID "([^"]*)"$`, theDriveFolderAlreadyContains)
	ctx.Step(`^Drive rejects uploads with "([^"]*)"$`, driveRejectsUploadsWith)
	ctx.Step(`^I share the clip$`, iShareTheClip)
	ctx.Step(`^I share a clip that does not exist$`, iShareAClipThatDoesNotExist)
	ctx.Step(`^the share should succeed$`, theShareShouldSucceed)
	ctx.Step(`^the share should fail with "([^"]*)"$`, theShareShouldFailWith)
	ctx.Step(`^"([^"]*)" should have been uploaded to the folder$`, shouldHaveBeenUploadedToTheFolder)
	ctx.Step(`^the upload should be readable by anyone with the link$`, theUploadShouldBeReadableByAnyone)
	ctx.Step(`^the file with ID "([^"]*)" should have been deleted$`, theFileWithIDShouldHaveBeenDeleted)
	ctx.Step(`^the share output should contain "([^"]*)"$`, theShareOutputShouldContain)
}

func theDriveFolderIDIs(id string) error {
	SharedShareContext.folderID = id
	return nil
}

func aLocalClipNamed(name string) error {
	s := SharedShareContext
	s.localPath = filepath.Join(s.tempDir, name)
	return os.WriteFile(s.localPath, []byte("fake video content"), 0644)
}

func theDriveFolderAlreadyContains(name, id string) error {
	s := SharedShareContext
	s.service.files = append(s.service.files, &googledrive.File{Id: id, Name: name, Size: 5 * 1024 * 1024})
	return nil
}

func driveRejectsUploadsWith(msg string) error {
	SharedShareContext.service.uploadErr = fmt.Errorf("%s", msg)
	return nil
}

func (s *shareContext) share(path string) {
	client, err := drive.NewClient(context.Background(), "", drive.WithDriveService(s.service))
	if err != nil {
		s.err = err
		return
	}
	uploader := appdist.NewUploadService(client, s.folderID, s.output)
	s.err = cmd.RunShareWithDependencies(context.Background(), uploader, path, s.output)
}

func iShareTheClip() error {
	s := SharedShareContext
	s.share(s.localPath)
	return nil
}

func iShareAClipThatDoesNotExist() error {
	s := SharedShareContext
	s.share(filepath.Join(s.tempDir, "missing.mp4"))
	return nil
}

func theShareShouldSucceed() error {
	if err := SharedShareContext.err; err != nil {
		return fmt.Errorf("unexpected error: %v", err)
	}
	return nil
}

func theShareShouldFailWith(text string) error {
	err := SharedShareContext.err
	if err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(err.Error(), text) {
		return fmt.Errorf("expected error containing %q, got: %v", text, err)
	}
	return nil
}

func shouldHaveBeenUploadedToTheFolder(name string) error {
	s := SharedShareContext
	for _, f := range s.service.uploaded {
		if f.Name == name && len(f.Parents) == 1 && f.Parents[0] == s.folderID {
			return nil
		}
	}
	return fmt.Errorf("%s was not uploaded to folder %s", name, s.folderID)
}

func theUploadShouldBeReadableByAnyone() error {
	s := SharedShareContext
	if len(s.service.uploaded) == 0 {
		return fmt.Errorf("nothing was uploaded")
	}
	p := s.service.permissions[s.service.uploaded[0].Id]
	if p == nil || p.Type != "anyone" || p.Role != "reader" {
		return fmt.Errorf("expected anyone/reader permission, got %+v", p)
	}
	return nil
}

func theFileWithIDShouldHaveBeenDeleted(id string) error {
	for _, d := range SharedShareContext.service.deleted {
		if d == id {
			return nil
		}
	}
	return fmt.Errorf("file %s was not deleted", id)
}

func theShareOutputShouldContain(text string) error {
	out := SharedShareContext.output.String()
	if !strings.Contains(out, text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, out)
	}
	return nil
}
