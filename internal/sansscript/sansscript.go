// Package sansscript wires the transliteration, lexer, parser, and
// interpreter packages together behind the single public entry point
// spec.md §6 describes: `Run(source, filename) -> (value, error)`.
package sansscript

import (
	"sync"

	"github.com/omthedev001/sansscript/internal/ast"
	"github.com/omthedev001/sansscript/internal/builtins"
	"github.com/omthedev001/sansscript/internal/host"
	"github.com/omthedev001/sansscript/internal/interp"
	"github.com/omthedev001/sansscript/internal/lexer"
	"github.com/omthedev001/sansscript/internal/parser"
	"github.com/omthedev001/sansscript/internal/serr"
	"github.com/omthedev001/sansscript/internal/translit"
)

var wireParserOnce sync.Once

func wireParser() {
	wireParserOnce.Do(func() {
		interp.SetParser(func(tokens []lexer.Token) (*ast.Program, *serr.Error) {
			return parser.New(tokens).Parse()
		})
	})
}

// Runtime owns the single shared Interpreter that every Run call
// evaluates against, per spec.md §9's "Global state" design note: one
// process, one global symbol table, persisted across calls.
type Runtime struct {
	interp *interp.Interpreter
}

// New builds a Runtime with a freshly seeded global environment and all
// built-ins registered, backed by the given Host for blocking I/O.
func New(h interp.Host) *Runtime {
	wireParser()
	it := interp.New(h)
	builtins.Register(it)
	builtins.RegisterJSON(it)
	return &Runtime{interp: it}
}

// NewNative builds a Runtime wired to the real terminal and filesystem.
func NewNative() *Runtime {
	return New(host.NewStdio())
}

// NewNativeWithSearchPaths builds a Runtime wired to the real terminal and
// filesystem, with `dhavayati`/`run` falling back to searchPaths when a
// loaded script's path does not resolve directly (.sansscript.yaml's
// include_paths).
func NewNativeWithSearchPaths(searchPaths []string) *Runtime {
	h := host.NewStdio()
	h.SetSearchPaths(searchPaths)
	return New(h)
}

// Run transliterates, lexes, parses, and evaluates source, returning the
// value of its last top-level statement, against the Runtime's shared
// global environment.
func (r *Runtime) Run(filename, source string) (interp.Value, *serr.Error) {
	normalized := translit.Normalize(source)
	return r.interp.Run(filename, normalized)
}

// Interpreter exposes the underlying interpreter, e.g. for a REPL that
// wants direct access to the global environment between calls.
func (r *Runtime) Interpreter() *interp.Interpreter { return r.interp }
