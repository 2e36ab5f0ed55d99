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

type configContext struct {
	tempDir    string
	configPath string
	cfg        *config.Config
	loadErr    error
	cmdErr     error
	output     *bytes.Buffer
}

// SharedConfigContext is reset before each scenario via Before hook
var SharedConfigContext = &configContext{}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return c, err
		}
		SharedConfigContext = &configContext{
			tempDir:    tempDir,
			configPath: filepath.Join(tempDir, "config", "config.yaml"),
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedConfigContext.tempDir != "" {
			os.RemoveAll(SharedConfigContext.tempDir)
		}
		SharedConfigContext = &configContext{}
		return c, nil
	})

	ctx.Step(`^a configuration file containing:$`, aConfigurationFileContaining)
	ctx.Step(`^no configuration file exists$`, noConfigurationFileExists)
	ctx.Step(`^I load the configuration$`, iLoadTheConfiguration)
	ctx.Step(`^I attempt to load the configuration$`, iAttemptToLoadTheConfiguration)
	ctx.Step(`^the setting "([^"]*)" should be "([^"]*)"$`, theSettingShouldBe)
	ctx.Step(`^loading should fail with "([^"]*)"$`, loadingShouldFailWith)
	ctx.Step(`^I run config set "([^"]*)" to "([^"]*)"$`, iRunConfigSetTo)
	ctx.Step(`^I run config get "([^"]*)"$`, iRunConfigGet)
	ctx.Step(`^I run config show$`, iRunConfigShow)
	ctx.Step(`^the config command should succeed$`, theConfigCommandShouldSucceed)
	ctx.Step(`^the config command should fail with "([^"]*)"$`, theConfigCommandShouldFailWith)
	ctx.Step(`^the config output should contain "([^"]*)"$`, theConfigOutputShouldContain)
	ctx.Step(`^the saved file should have "([^"]*)" set to "([^"]*)"$`, theSavedFileShouldHaveSetTo)
}

func aConfigurationFileContaining(doc *godog.DocString) error {
	c := SharedConfigContext
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(c.configPath, []byte(doc.Content), 0644)
}

func noConfigurationFileExists() error {
	return nil
}

func iLoadTheConfiguration() error {
	c := SharedConfigContext
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return fmt.Errorf("unexpected error loading config: %w", err)
	}
	c.cfg = cfg
	return nil
}

func iAttemptToLoadTheConfiguration() error {
	c := SharedConfigContext
	c.cfg, c.loadErr = config.LoadOrDefault(c.configPath)
	return nil
}

func theSettingShouldBe(key, expected string) error {
	c := SharedConfigContext
	if c.cfg == nil {
		return fmt.Errorf("config was not loaded")
	}
	got, err := config.NewConfigManager(c.cfg, c.configPath).Get(key)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected %s = %q, got %q", key, expected, got)
	}
	return nil
}

func loadingShouldFailWith(text string) error {
	c := SharedConfigContext
	if c.loadErr == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(c.loadErr.Error(), text) {
		return fmt.Errorf("expected error containing %q, got: %v", text, c.loadErr)
	}
	return nil
}

// current returns the loaded config, loading it on first use
func (c *configContext) current() (*config.Config, error) {
	if c.cfg == nil {
		cfg, err := config.LoadOrDefault(c.configPath)
		if err != nil {
			return nil, err
		}
		c.cfg = cfg
	}
	return c.cfg, nil
}

func iRunConfigSetTo(key, value string) error {
	c := SharedConfigContext
	cfg, err := c.current()
	if err != nil {
		return err
	}
	c.cmdErr = cmd.RunConfigSetWithDependencies(cfg, c.configPath, key, value, c.output)
	return nil
}

func iRunConfigGet(key string) error {
	c := SharedConfigContext
	cfg, err := c.current()
	if err != nil {
		return err
	}
	c.cmdErr = cmd.RunConfigGetWithDependencies(cfg, c.configPath, key, c.output)
	return nil
}

func iRunConfigShow() error {
	c := SharedConfigContext
	cfg, err := c.current()
	if err != nil {
		return err
	}
	c.cmdErr = cmd.RunConfigShowWithDependencies(cfg, c.configPath, c.output)
	return nil
}

func theConfigCommandShouldSucceed() error {
	if err := SharedConfigContext.cmdErr; err != nil {
		return fmt.Errorf("unexpected error: %v", err)
	}
	return nil
}

func theConfigCommandShouldFailWith(text string) error {
	err := SharedConfigContext.cmdErr
	if err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(err.Error(), text) {
		return fmt.Errorf("expected error containing %q, got: %v", text, err)
	}
	return nil
}

func theConfigOutputShouldContain(text string) error {
	out := SharedConfigContext.output.String()
	if !strings.Contains(out, text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, out)
	}
	return nil
}

func theSavedFileShouldHaveSetTo(key, expected string) error {
	c := SharedConfigContext
	saved, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	got, err := config.NewConfigManager(saved, c.configPath).Get(key)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected saved %s = %q, got %q", key, expected, got)
	}
	return nil
}
