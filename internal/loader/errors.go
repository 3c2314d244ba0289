package loader

import (
	"errors"
	"fmt"
	"strings"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// LoadError reports a failure while executing an input file. Err is the
// underlying error; compiler taxonomy errors remain reachable with errors.As.
type LoadError struct {
	File string
	Line int // 1-based; zero when unknown
	Col  int
	Msg  string

	// Excerpt shows the lines around Line, the failing one marked with '>'.
	Excerpt string

	Err error
}

func (e *LoadError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.File, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Msg)
}

func (e *LoadError) Unwrap() error { return e.Err }

func newLoadError(file string, src []byte, err error) *LoadError {
	le := &LoadError{File: file, Msg: err.Error(), Err: err}

	var (
		synErr  syntax.Error
		resErrs resolve.ErrorList
		evalErr *starlark.EvalError
	)
	switch {
	case errors.As(err, &synErr):
		le.setPos(synErr.Pos)
		le.Msg = synErr.Msg
	case errors.As(err, &resErrs) && len(resErrs) > 0:
		le.setPos(resErrs[0].Pos)
		le.Msg = resErrs[0].Msg
	case errors.As(err, &evalErr):
		le.Msg = evalErr.Msg
		stack := evalErr.CallStack
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].Pos.Filename() == file {
				le.setPos(stack[i].Pos)
				break
			}
		}
	}

	if le.Line > 0 {
		le.Excerpt = excerpt(string(src), le.Line)
	}
	return le
}

func (e *LoadError) setPos(pos syntax.Position) {
	e.Line = int(pos.Line)
	e.Col = int(pos.Col)
}

// excerpt renders up to five lines before and three after line.
func excerpt(src string, line int) string {
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	var b strings.Builder
	for i := max(line-6, 0); i < min(line+3, len(lines)); i++ {
		mark := "|"
		if i == line-1 {
			mark = ">"
		}
		fmt.Fprintf(&b, "%s %4d %s %s\n", mark, i+1, mark, lines[i])
	}
	return b.String()
}
