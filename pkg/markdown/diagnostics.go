package markdown

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Problem is one positioned issue found while converting a document.
type Problem struct {
	Line    int
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("line %d: %s", p.Line, p.Message)
}

// Diagnostics collects the problems found while parsing one document, along
// with the original text, so callers can log the full context. A document
// with problems still yields usable ops (unsupported constructs are kept as
// literal text); diagnostics are reported, never fatal.
type Diagnostics struct {
	Source   string
	Problems []Problem
}

// HasProblems reports whether any problems were recorded.
func (d *Diagnostics) HasProblems() bool {
	return d != nil && len(d.Problems) > 0
}

// Err returns the diagnostics as an error when problems exist, nil otherwise.
func (d *Diagnostics) Err() error {
	if !d.HasProblems() {
		return nil
	}
	return d
}

// Error implements the error interface.
func (d *Diagnostics) Error() string {
	msgs := make([]string, len(d.Problems))
	for i, p := range d.Problems {
		msgs[i] = p.String()
	}
	return fmt.Sprintf("markdown: %d problem(s): %s", len(d.Problems), strings.Join(msgs, "; "))
}

// Fields renders the diagnostics as structured log fields for the logging
// sink. The original text rides along so problems are reproducible.
func (d *Diagnostics) Fields() []zap.Field {
	problems := make([]string, len(d.Problems))
	for i, p := range d.Problems {
		problems[i] = p.String()
	}
	return []zap.Field{
		zap.String("source", d.Source),
		zap.Strings("problems", problems),
	}
}
