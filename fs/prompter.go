package fs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Ensure LinePrompter implements Prompter at compile time.
var _ Prompter = (*LinePrompter)(nil)

// LinePrompter asks for a path on one writer and reads a line of answer
// from a reader.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter creates a LinePrompter reading answers from r and
// writing prompts to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// PromptPath prints the suggested path and reads one line.
// End of input counts as accepting the suggestion.
func (p *LinePrompter) PromptPath(ctx context.Context, suggested string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintf(p.w, "Save as [%s]: ", suggested)
	line, err := p.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
