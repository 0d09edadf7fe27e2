// Package backend walks an analysed program and emits it as a single
// self-contained C99 translation unit. It runs only on programs that
// passed semantic analysis with no errors; anything unexpected it finds in
// the typed tree (an invalid expression, a native entity with no mapping,
// a cyclic type layout) is an internal compiler error, reported as a plain
// Go error for the driver to print and exit 2 on.
package backend

import "github.com/psenchanka/colang/internal/semantic"

// Option configures a Backend at construction time.
type Option func(*Backend)

// WithBuildID stamps the generated translation unit with a build
// identifier comment, so two builds of the same source can be told apart
// when diffing generated C.
func WithBuildID(id string) Option {
	return func(b *Backend) { b.buildID = id }
}

// Backend translates typed programs to C.
type Backend struct {
	buildID string
}

// New creates a Backend.
func New(opts ...Option) *Backend {
	b := &Backend{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Emit produces the C translation unit for prog.
func (b *Backend) Emit(prog *semantic.Program) ([]byte, error) {
	reach, err := newWalker(prog).walk()
	if err != nil {
		return nil, err
	}
	e := &emitter{gen: newNameGen(), reach: reach, buildID: b.buildID}
	return e.emit(prog)
}
