package slcir

import (
	"github.com/pkg/errors"

	"github.com/valentinnodan/compilers-supplementary/internal/lang"
)

// Compile lowers a source program to a stack-machine program.
//
// Expressions compile post-order, so an operator's operands are on the stack
// with the right operand on top when its BINOP executes. Statements compile
// to: read(x) -> READ, ST x; write(e) -> code(e), WRITE; x := e -> code(e),
// ST x; sequencing concatenates; skip compiles to nothing.
func Compile(stmt lang.Stmt) ([]Operation, error) {
	return compileStmt(stmt, nil)
}

func compileStmt(stmt lang.Stmt, out []Operation) ([]Operation, error) {
	switch s := stmt.(type) {
	case *lang.Skip:
		return out, nil
	case *lang.Read:
		return append(out, NewOperationRead(), NewOperationStore(s.Name)), nil
	case *lang.Write:
		out, err := compileExpr(s.X, out)
		if err != nil {
			return nil, err
		}
		return append(out, NewOperationWrite()), nil
	case *lang.Assign:
		out, err := compileExpr(s.X, out)
		if err != nil {
			return nil, err
		}
		return append(out, NewOperationStore(s.Name)), nil
	case *lang.Seq:
		out, err := compileStmt(s.First, out)
		if err != nil {
			return nil, err
		}
		return compileStmt(s.Rest, out)
	default:
		return nil, errors.Errorf("unknown statement node: %T", stmt)
	}
}

func compileExpr(e lang.Expr, out []Operation) ([]Operation, error) {
	switch e := e.(type) {
	case *lang.Const:
		return append(out, NewOperationConst(e.Value)), nil
	case *lang.Var:
		return append(out, NewOperationLoad(e.Name)), nil
	case *lang.BinOp:
		out, err := compileExpr(e.X, out)
		if err != nil {
			return nil, err
		}
		out, err = compileExpr(e.Y, out)
		if err != nil {
			return nil, err
		}
		return append(out, NewOperationBinOp(e.Op)), nil
	default:
		return nil, errors.Errorf("unknown expression node: %T", e)
	}
}
