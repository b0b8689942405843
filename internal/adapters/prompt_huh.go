package adapters

import (
	"context"
	"errors"
	"io"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/charmbracelet/huh"

	"license-audit/internal/ports"
	"license-audit/internal/types"
)

// HuhPromptAdapter renders each question as a single-select form. Input
// and Output default to the terminal when nil.
type HuhPromptAdapter struct {
	Accessible bool
	Input      io.Reader
	Output     io.Writer
}

func NewHuhPromptAdapter(accessible bool) HuhPromptAdapter {
	return HuhPromptAdapter{Accessible: accessible}
}

func (a HuhPromptAdapter) Ask(ctx context.Context, question string, answers []types.Answer) (types.Answer, error) {
	options := make([]huh.Option[string], 0, len(answers))
	for _, answer := range answers {
		options = append(options, huh.NewOption(string(answer), string(answer)))
	}
	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(question).
				Options(options...).
				Value(&selected),
		),
	).WithAccessible(a.Accessible)
	if a.Input != nil {
		form = form.WithInput(a.Input)
	}
	if a.Output != nil {
		form = form.WithOutput(a.Output)
	}

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("prompt aborted").
				WithCause(err)
		}
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("prompt failed").
			WithCause(err)
	}
	answer, ok := types.ParseAnswer(selected)
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("prompt returned an unknown answer: " + selected)
	}
	return answer, nil
}

var _ ports.PromptPort = HuhPromptAdapter{}
