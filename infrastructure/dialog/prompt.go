package dialog

import (
	"context"
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"clipfit/domain/claim"
)

// AskFunc matches survey.AskOne (allows mocking in tests)
type AskFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// PromptPicker implements claim.SavePicker with a terminal prompt
type PromptPicker struct {
	ask AskFunc
}

// NewPromptPicker creates a terminal save picker; a nil ask uses survey.AskOne
func NewPromptPicker(ask AskFunc) *PromptPicker {
	if ask == nil {
		ask = survey.AskOne
	}
	return &PromptPicker{ask: ask}
}

// PickSavePath implements claim.SavePicker
func (p *PromptPicker) PickSavePath(ctx context.Context, suggested, extension string) (string, error) {
	answer := ""
	prompt := &survey.Input{
		Message: "Save trimmed video as (" + FilterFor(extension) + "):",
		Default: suggested,
	}
	if err := p.ask(prompt, &answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", claim.ErrUserCancelled
		}
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", claim.ErrUserCancelled
	}
	return answer, nil
}

// Ensure PromptPicker implements claim.SavePicker
var _ claim.SavePicker = (*PromptPicker)(nil)

// NewSavePicker returns kdialog when it is installed, otherwise a terminal prompt
func NewSavePicker() claim.SavePicker {
	if k := NewKDialog(); k.Available() {
		return k
	}
	return NewPromptPicker(nil)
}
