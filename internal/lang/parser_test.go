package lang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		source string
		exp    Stmt
	}{
		{
			name:   "skip",
			source: "skip",
			exp:    &Skip{},
		},
		{
			name:   "read",
			source: "read(x)",
			exp:    &Read{Name: "x"},
		},
		{
			name:   "write literal",
			source: "write(42)",
			exp:    &Write{X: &Const{Value: 42}},
		},
		{
			name:   "assignment",
			source: "x := 1",
			exp:    &Assign{Name: "x", X: &Const{Value: 1}},
		},
		{
			name:   "sequence",
			source: "read(x); write(x)",
			exp: &Seq{
				First: &Read{Name: "x"},
				Rest:  &Write{X: &Var{Name: "x"}},
			},
		},
		{
			name:   "multiplication binds tighter than addition",
			source: "r := a + b * c",
			exp: &Assign{Name: "r", X: &BinOp{
				Op: "+",
				X:  &Var{Name: "a"},
				Y:  &BinOp{Op: "*", X: &Var{Name: "b"}, Y: &Var{Name: "c"}},
			}},
		},
		{
			name:   "subtraction is left-associative",
			source: "r := a - b - c",
			exp: &Assign{Name: "r", X: &BinOp{
				Op: "-",
				X:  &BinOp{Op: "-", X: &Var{Name: "a"}, Y: &Var{Name: "b"}},
				Y:  &Var{Name: "c"},
			}},
		},
		{
			name:   "parentheses override precedence",
			source: "r := (a + b) * c",
			exp: &Assign{Name: "r", X: &BinOp{
				Op: "*",
				X:  &BinOp{Op: "+", X: &Var{Name: "a"}, Y: &Var{Name: "b"}},
				Y:  &Var{Name: "c"},
			}},
		},
		{
			name:   "comparison binds looser than arithmetic",
			source: "r := a + 1 < b * 2",
			exp: &Assign{Name: "r", X: &BinOp{
				Op: "<",
				X:  &BinOp{Op: "+", X: &Var{Name: "a"}, Y: &Const{Value: 1}},
				Y:  &BinOp{Op: "*", X: &Var{Name: "b"}, Y: &Const{Value: 2}},
			}},
		},
		{
			name:   "logical or binds loosest",
			source: "r := a == 1 !! b == 2 && c",
			exp: &Assign{Name: "r", X: &BinOp{
				Op: "!!",
				X:  &BinOp{Op: "==", X: &Var{Name: "a"}, Y: &Const{Value: 1}},
				Y: &BinOp{
					Op: "&&",
					X:  &BinOp{Op: "==", X: &Var{Name: "b"}, Y: &Const{Value: 2}},
					Y:  &Var{Name: "c"},
				},
			}},
		},
		{
			name:   "comments and whitespace",
			source: "-- doubles the input\nread(x);\nwrite(x * 2) -- trailing\n",
			exp: &Seq{
				First: &Read{Name: "x"},
				Rest: &Write{X: &BinOp{
					Op: "*",
					X:  &Var{Name: "x"},
					Y:  &Const{Value: 2},
				}},
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			stmt, err := Parse([]byte(tc.source))
			require.NoError(t, err)
			require.Equal(t, tc.exp, stmt)
		})
	}
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "empty input", source: ""},
		{name: "missing assignment operator", source: "x 5"},
		{name: "unterminated parenthesis", source: "write((1 + 2)"},
		{name: "read of expression", source: "read(1+2)"},
		{name: "dangling operator", source: "x := 1 +"},
		{name: "unexpected character", source: "x := 1 ? 2"},
		{name: "trailing tokens", source: "skip skip"},
		{name: "literal overflow", source: "x := 99999999999"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.source))
			require.Error(t, err)
		})
	}
}

func TestParse_errorHasPosition(t *testing.T) {
	_, err := Parse([]byte("read(x);\nwrite()"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "2:")
}
