package slcir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestOperation_String ensures the listing syntax is well-defined for every
// operation kind.
func TestOperation_String(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		exp  string
	}{
		{name: "read", op: NewOperationRead(), exp: "READ"},
		{name: "write", op: NewOperationWrite(), exp: "WRITE"},
		{name: "binop", op: NewOperationBinOp("+"), exp: "BINOP +"},
		{name: "binop or", op: NewOperationBinOp("!!"), exp: "BINOP !!"},
		{name: "load", op: NewOperationLoad("x"), exp: "LD x"},
		{name: "store", op: NewOperationStore("acc"), exp: "ST acc"},
		{name: "const", op: NewOperationConst(42), exp: "CONST 42"},
		{name: "negative const", op: NewOperationConst(-1), exp: "CONST -1"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.exp, tc.op.String())
		})
	}
}

// TestOperationKind_covered ensures every kind below operationKindEnd has a
// stringer.
func TestOperationKind_covered(t *testing.T) {
	samples := map[OperationKind]Operation{
		OperationKindRead:  NewOperationRead(),
		OperationKindWrite: NewOperationWrite(),
		OperationKindBinOp: NewOperationBinOp("+"),
		OperationKindLoad:  NewOperationLoad("x"),
		OperationKindStore: NewOperationStore("x"),
		OperationKindConst: NewOperationConst(0),
	}
	for k := OperationKind(0); k < operationKindEnd; k++ {
		op, ok := samples[k]
		require.True(t, ok, "no sample for kind %d", k)
		require.NotEqual(t, "", op.String())
	}
}
