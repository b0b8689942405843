package ports

import (
	"context"

	"license-audit/internal/types"
)

// PromptPort asks the operator a question and returns exactly one of the
// offered answers. It never returns free text.
type PromptPort interface {
	Ask(ctx context.Context, question string, answers []types.Answer) (types.Answer, error)
}
