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

	"clipfit/cmd"
	"clipfit/infrastructure/config"
)

type setupContext struct {
	tempDir         string
	configPath      string
	originalContent string
	output          *bytes.Buffer
	err             error
}

var SharedSetupContext = &setupContext{}

// MockPrompter implements cmd.Prompter for testing
type MockPrompter struct {
	inputResponses   []string
	confirmResponses []bool
	inputIndex       int
	confirmIndex     int
}

func NewMockPrompter(inputs []string, confirms []bool) *MockPrompter {
	return &MockPrompter{
		inputResponses:   inputs,
		confirmResponses: confirms,
	}
}

func (m *MockPrompter) Input(message string, defaultValue string) (string, error) {
	if m.inputIndex >= len(m.inputResponses) {
		return defaultValue, nil
	}
	response := m.inputResponses[m.inputIndex]
	m.inputIndex++
	return response, nil
}

func (m *MockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if m.confirmIndex >= len(m.confirmResponses) {
		return defaultValue, nil
	}
	response := m.confirmResponses[m.confirmIndex]
	m.confirmIndex++
	return response, nil
}

func (m *MockPrompter) Select(message string, options []string) (int, error) {
	return 0, nil
}

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "setup-test-*")
		if err != nil {
			return c, err
		}
		SharedSetupContext = &setupContext{
			tempDir:    tempDir,
			configPath: filepath.Join(tempDir, "config", "config.yaml"),
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedSetupContext.tempDir != "" {
			os.RemoveAll(SharedSetupContext.tempDir)
		}
		SharedSetupContext = &setupContext{}
		return c, nil
	})

	ctx.Step(`^no config file exists for setup$`, noConfigFileExistsForSetup)
	ctx.Step(`^a config file already exists for setup$`, aConfigFileAlreadyExistsForSetup)
	ctx.Step(`^I run the setup command with inputs:$`, iRunTheSetupCommandWithInputs)
	ctx.Step(`^I run the setup command enabling Drive with inputs:$`, iRunTheSetupCommandEnablingDriveWithInputs)
	ctx.Step(`^I run the setup command with confirmation "([^"]*)"$`, iRunTheSetupCommandWithConfirmation)
	ctx.Step(`^a config file should exist$`, aConfigFileShouldExist)
	ctx.Step(`^the config should have "([^"]*)" set to "([^"]*)"$`, theConfigShouldHaveSetTo)
	ctx.Step(`^the setup should fail with "([^"]*)"$`, theSetupShouldFailWith)
	ctx.Step(`^the setup should be cancelled$`, theSetupShouldBeCancelled)
	ctx.Step(`^the existing config should be unchanged$`, theExistingConfigShouldBeUnchanged)
}

func noConfigFileExistsForSetup() error {
	return nil
}

func aConfigFileAlreadyExistsForSetup() error {
	s := SharedSetupContext
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return err
	}
	s.originalContent = "compression:\n  max_size_mb: 10\n"
	return os.WriteFile(s.configPath, []byte(s.originalContent), 0644)
}

// tableAnswers reads the "answer" column, skipping the header row
func tableAnswers(table *godog.Table) []string {
	var answers []string
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		answers = append(answers, row.Cells[len(row.Cells)-1].Value)
	}
	return answers
}

func iRunTheSetupCommandWithInputs(table *godog.Table) error {
	s := SharedSetupContext
	s.err = cmd.RunSetupWithPrompter(NewMockPrompter(tableAnswers(table), nil), s.configPath, s.output)
	return nil
}

func iRunTheSetupCommandEnablingDriveWithInputs(table *godog.Table) error {
	s := SharedSetupContext
	s.err = cmd.RunSetupWithPrompter(NewMockPrompter(tableAnswers(table), []bool{true}), s.configPath, s.output)
	return nil
}

func iRunTheSetupCommandWithConfirmation(answer string) error {
	s := SharedSetupContext
	s.err = cmd.RunSetupWithPrompter(NewMockPrompter(nil, []bool{answer == "yes"}), s.configPath, s.output)
	return nil
}

func aConfigFileShouldExist() error {
	s := SharedSetupContext
	if s.err != nil {
		return fmt.Errorf("setup failed: %v", s.err)
	}
	if _, err := os.Stat(s.configPath); err != nil {
		return fmt.Errorf("config file not found at %s", s.configPath)
	}
	return nil
}

func theConfigShouldHaveSetTo(key, expected string) error {
	s := SharedSetupContext
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	got, err := config.NewConfigManager(cfg, s.configPath).Get(key)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected %s = %q, got %q", key, expected, got)
	}
	return nil
}

func theSetupShouldFailWith(text string) error {
	s := SharedSetupContext
	if s.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(s.err.Error(), text) {
		return fmt.Errorf("expected error containing %q, got: %v", text, s.err)
	}
	return nil
}

func theSetupShouldBeCancelled() error {
	s := SharedSetupContext
	if s.err != nil {
		return fmt.Errorf("unexpected error: %v", s.err)
	}
	if !strings.Contains(s.output.String(), "Setup cancelled.") {
		return fmt.Errorf("expected setup to be cancelled, got:\n%s", s.output.String())
	}
	return nil
}

func theExistingConfigShouldBeUnchanged() error {
	s := SharedSetupContext
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return err
	}
	if string(data) != s.originalContent {
		return fmt.Errorf("config was modified: %q", data)
	}
	return nil
}
