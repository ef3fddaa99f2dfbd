package slcir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valentinnodan/compilers-supplementary/internal/lang"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name string
		stmt lang.Stmt
		exp  []Operation
	}{
		{
			name: "skip",
			stmt: &lang.Skip{},
			exp:  nil,
		},
		{
			name: "read",
			stmt: &lang.Read{Name: "x"},
			exp:  []Operation{NewOperationRead(), NewOperationStore("x")},
		},
		{
			name: "write constant",
			stmt: &lang.Write{X: &lang.Const{Value: 42}},
			exp:  []Operation{NewOperationConst(42), NewOperationWrite()},
		},
		{
			name: "assign variable",
			stmt: &lang.Assign{Name: "y", X: &lang.Var{Name: "x"}},
			exp:  []Operation{NewOperationLoad("x"), NewOperationStore("y")},
		},
		{
			name: "expression compiles post-order, right operand last",
			stmt: &lang.Write{X: &lang.BinOp{
				Op: "-",
				X:  &lang.Var{Name: "a"},
				Y:  &lang.BinOp{Op: "*", X: &lang.Const{Value: 2}, Y: &lang.Var{Name: "b"}},
			}},
			exp: []Operation{
				NewOperationLoad("a"),
				NewOperationConst(2),
				NewOperationLoad("b"),
				NewOperationBinOp("*"),
				NewOperationBinOp("-"),
				NewOperationWrite(),
			},
		},
		{
			name: "sequence concatenates",
			stmt: &lang.Seq{
				First: &lang.Read{Name: "x"},
				Rest: &lang.Seq{
					First: &lang.Skip{},
					Rest:  &lang.Write{X: &lang.Var{Name: "x"}},
				},
			},
			exp: []Operation{
				NewOperationRead(),
				NewOperationStore("x"),
				NewOperationLoad("x"),
				NewOperationWrite(),
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ops, err := Compile(tc.stmt)
			require.NoError(t, err)
			require.Equal(t, tc.exp, ops)
		})
	}
}

func TestCompile_unknownNode(t *testing.T) {
	_, err := Compile(nil)
	require.Error(t, err)
}
