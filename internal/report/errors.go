package report

import "fmt"

// RenderError wraps any template or filesystem failure during document
// generation. The renderer never panics past its caller; the deploy
// orchestrator decides whether the failure is fatal.
type RenderError struct {
	Op  string // "ensure template", "parse template", "execute template"
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render: %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
