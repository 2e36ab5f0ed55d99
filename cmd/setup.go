package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"clipfit/infrastructure/config"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string) (int, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string) (int, error) {
	result := 0
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return 0, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through the encoder, size limit, directories,
clipboard tool and Google Drive settings. Press enter to keep a default.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, cfgFile, os.Stdout)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, out io.Writer) error {
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(out, "Welcome to clipfit setup!")
	fmt.Fprintln(out)

	cfg := config.Default()

	if err := promptEncoder(prompter, cfg); err != nil {
		return err
	}
	if err := promptCompression(prompter, cfg); err != nil {
		return err
	}
	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}
	if err := promptGoogle(prompter, cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Configuration saved to %s\n", configPath)
	return nil
}

// ask prompts with def as the default and keeps def when the answer is empty
func ask(prompter Prompter, message, def string) (string, error) {
	v, err := prompter.Input(message, def)
	if err != nil {
		return "", fmt.Errorf("prompt cancelled")
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

func promptEncoder(prompter Prompter, cfg *config.Config) error {
	var err error
	if cfg.Encoder.FFmpegPath, err = ask(prompter, "Path to ffmpeg?", cfg.Encoder.FFmpegPath); err != nil {
		return err
	}
	if cfg.Encoder.FFprobePath, err = ask(prompter, "Path to ffprobe?", cfg.Encoder.FFprobePath); err != nil {
		return err
	}
	return nil
}

func promptCompression(prompter Prompter, cfg *config.Config) error {
	def := strconv.FormatFloat(cfg.Compression.MaxSizeMB, 'f', -1, 64)
	v, err := ask(prompter, "Size limit in MB (0 disables compression)?", def)
	if err != nil {
		return err
	}
	mb, err := strconv.ParseFloat(v, 64)
	if err != nil || mb < 0 {
		return fmt.Errorf("size limit must be a non-negative number, got %q", v)
	}
	cfg.Compression.MaxSizeMB = mb

	if cfg.Compression.Preset, err = ask(prompter, "x264 preset?", cfg.Compression.Preset); err != nil {
		return err
	}
	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	var err error
	if cfg.Paths.SaveDirectory, err = ask(prompter, "Default folder for saved clips? (empty for home)", ""); err != nil {
		return err
	}
	if cfg.Paths.GalleryDirectory, err = ask(prompter, "Folder to browse for recordings? (empty for current)", ""); err != nil {
		return err
	}
	if cfg.Clipboard.Tool, err = ask(prompter, "Clipboard tool?", cfg.Clipboard.Tool); err != nil {
		return err
	}
	return nil
}

func promptGoogle(prompter Prompter, cfg *config.Config) error {
	useDrive, err := prompter.Confirm("Share clips through Google Drive?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if !useDrive {
		return nil
	}

	if cfg.Google.CredentialsFile, err = ask(prompter, "Path to Google OAuth credentials file?", cfg.Google.CredentialsFile); err != nil {
		return err
	}

	folder, err := prompter.Input("Google Drive folder ID for shared clips?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if folder == "" {
		return fmt.Errorf("folder ID is required")
	}
	cfg.Google.FolderID = folder
	return nil
}
