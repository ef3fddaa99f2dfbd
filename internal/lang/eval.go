package lang

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// State is the variable store of a running program.
type State map[string]int32

// ApplyBinOp defines the value semantics of the binary operators, shared by
// the AST evaluator and the stack-machine interpreter: comparisons yield 0 or 1, "&&" and "!!" are the word-wise
// and/or (matching the andl/orl the code generator emits for them), and
// division truncates toward zero like the hardware's idiv.
func ApplyBinOp(op string, x, y int32) (int32, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		if y == 0 {
			return 0, errors.New("integer division by zero")
		}
		return x / y, nil
	case "%":
		if y == 0 {
			return 0, errors.New("integer division by zero")
		}
		return x % y, nil
	case "&&":
		return x & y, nil
	case "!!":
		return x | y, nil
	case "<":
		return boolToWord(x < y), nil
	case "<=":
		return boolToWord(x <= y), nil
	case ">":
		return boolToWord(x > y), nil
	case ">=":
		return boolToWord(x >= y), nil
	case "==":
		return boolToWord(x == y), nil
	case "!=":
		return boolToWord(x != y), nil
	default:
		return 0, errors.Errorf("unknown binary operator: %q", op)
	}
}

func boolToWord(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// EvalExpr evaluates an expression against a state.
func EvalExpr(e Expr, state State) (int32, error) {
	switch e := e.(type) {
	case *Const:
		return e.Value, nil
	case *Var:
		v, ok := state[e.Name]
		if !ok {
			return 0, errors.Errorf("undefined variable: %q", e.Name)
		}
		return v, nil
	case *BinOp:
		x, err := EvalExpr(e.X, state)
		if err != nil {
			return 0, err
		}
		y, err := EvalExpr(e.Y, state)
		if err != nil {
			return 0, err
		}
		return ApplyBinOp(e.Op, x, y)
	default:
		return 0, errors.Errorf("unknown expression node: %T", e)
	}
}

// EvalStmt executes a statement, mutating state and performing I/O on the
// given streams. read consumes one whitespace-separated integer; write
// prints the value followed by a newline.
func EvalStmt(s Stmt, state State, in io.Reader, out io.Writer) error {
	switch s := s.(type) {
	case *Skip:
		return nil
	case *Read:
		var v int32
		if _, err := fmt.Fscan(in, &v); err != nil {
			return errors.Wrapf(err, "read(%s)", s.Name)
		}
		state[s.Name] = v
		return nil
	case *Write:
		v, err := EvalExpr(s.X, state)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%d\n", v)
		return err
	case *Assign:
		v, err := EvalExpr(s.X, state)
		if err != nil {
			return err
		}
		state[s.Name] = v
		return nil
	case *Seq:
		if err := EvalStmt(s.First, state, in, out); err != nil {
			return err
		}
		return EvalStmt(s.Rest, state, in, out)
	default:
		return errors.Errorf("unknown statement node: %T", s)
	}
}
