// Package llm wraps the text-completion providers used to resolve subjects.
package llm

import "context"

// Completer turns a prompt into raw model text
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
