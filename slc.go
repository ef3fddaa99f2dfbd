// Package slc is the straight-line language compiler: a tiny imperative
// language with integer expressions, assignment, sequencing and read/write
// primitives is lowered to a stack-machine program, which compiles to 32-bit
// x86 assembly (AT&T syntax) linking against a runtime providing Lread and
// Lwrite. Reference interpreters exist for both the AST and the
// stack-machine form, so every stage of the pipeline can be executed and
// cross-checked.
package slc

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/valentinnodan/compilers-supplementary/internal/engine/compiler"
	"github.com/valentinnodan/compilers-supplementary/internal/engine/interpreter"
	"github.com/valentinnodan/compilers-supplementary/internal/lang"
	"github.com/valentinnodan/compilers-supplementary/internal/slcir"
)

// Compile translates source text into the full text of an x86 assembly file.
func Compile(source []byte) ([]byte, error) {
	program, err := lower(source)
	if err != nil {
		return nil, err
	}
	out, err := compiler.Compile(program)
	if err != nil {
		return nil, errors.Wrap(err, "codegen")
	}
	return out, nil
}

// Run parses source text and executes it with the AST evaluator.
func Run(source []byte, stdin io.Reader, stdout io.Writer) error {
	stmt, err := lang.Parse(source)
	if err != nil {
		return errors.Wrap(err, "parse")
	}
	return lang.EvalStmt(stmt, lang.State{}, stdin, stdout)
}

// RunStackMachine parses and lowers source text, then executes the
// stack-machine program with the reference interpreter.
func RunStackMachine(source []byte, stdin io.Reader, stdout io.Writer) error {
	program, err := lower(source)
	if err != nil {
		return err
	}
	return interpreter.Run(program, stdin, stdout)
}

// DumpStackMachine parses and lowers source text and returns the
// stack-machine listing, one operation per line.
func DumpStackMachine(source []byte) ([]byte, error) {
	program, err := lower(source)
	if err != nil {
		return nil, err
	}
	var out strings.Builder
	for _, op := range program {
		out.WriteString(op.String())
		out.WriteByte('\n')
	}
	return []byte(out.String()), nil
}

func lower(source []byte) ([]slcir.Operation, error) {
	stmt, err := lang.Parse(source)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	program, err := slcir.Compile(stmt)
	if err != nil {
		return nil, errors.Wrap(err, "lower")
	}
	return program, nil
}
