// Package interpreter executes stack-machine programs directly, against an
// explicit value stack and a globals map. It is the reference for what the
// generated x86 must compute: one value semantics (lang.ApplyBinOp) is
// shared by this engine and the AST evaluator. The code generator emits the
// matching instructions, except that a compiled comparison only sets the low
// byte of its result word; the upper bytes are left as they were.
package interpreter

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/valentinnodan/compilers-supplementary/internal/lang"
	"github.com/valentinnodan/compilers-supplementary/internal/slcir"
)

// machine is the run-time state of one program execution.
type machine struct {
	stack   []int32
	globals map[string]int32
	in      io.Reader
	out     io.Writer
}

func (m *machine) push(v int32) {
	m.stack = append(m.stack, v)
}

func (m *machine) pop() (int32, error) {
	if len(m.stack) == 0 {
		return 0, errors.New("stack underflow")
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

// Run executes a stack-machine program. read operations consume
// whitespace-separated integers from in; write operations print one value
// per line to out. Execution stops at the first trap: stack underflow, an
// unknown operation or operator, division by zero, or a load of a global
// never stored to.
func Run(program []slcir.Operation, in io.Reader, out io.Writer) error {
	m := &machine{globals: map[string]int32{}, in: in, out: out}
	for pc, op := range program {
		if err := m.step(op); err != nil {
			return errors.Wrapf(err, "operation %d", pc)
		}
	}
	return nil
}

func (m *machine) step(op slcir.Operation) error {
	switch op.Kind {
	case slcir.OperationKindRead:
		var v int32
		if _, err := fmt.Fscan(m.in, &v); err != nil {
			return err
		}
		m.push(v)
	case slcir.OperationKindWrite:
		v, err := m.pop()
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintf(m.out, "%d\n", v); err != nil {
			return err
		}
	case slcir.OperationKindBinOp:
		y, err := m.pop()
		if err != nil {
			return err
		}
		x, err := m.pop()
		if err != nil {
			return err
		}
		v, err := lang.ApplyBinOp(op.Op, x, y)
		if err != nil {
			return err
		}
		m.push(v)
	case slcir.OperationKindLoad:
		v, ok := m.globals[op.Name]
		if !ok {
			return errors.Errorf("undefined global: %q", op.Name)
		}
		m.push(v)
	case slcir.OperationKindStore:
		v, err := m.pop()
		if err != nil {
			return err
		}
		m.globals[op.Name] = v
	case slcir.OperationKindConst:
		m.push(op.Const)
	default:
		return errors.Errorf("unknown operation kind: %d", op.Kind)
	}
	return nil
}
