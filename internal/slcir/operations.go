// Package slcir defines the stack-machine intermediate representation: a flat
// sequence of operations over an implicit evaluation stack, produced from the
// source AST and consumed by both the interpreter and the x86 code generator.
package slcir

import "fmt"

// OperationKind tags Operation.
type OperationKind byte

const (
	// OperationKindRead reads one integer from the input and pushes it.
	OperationKindRead OperationKind = iota
	// OperationKindWrite pops one value and writes it to the output.
	OperationKindWrite
	// OperationKindBinOp pops the right then the left operand and pushes the
	// result of Operation.Op applied to them.
	OperationKindBinOp
	// OperationKindLoad pushes the value of the global named Operation.Name.
	OperationKindLoad
	// OperationKindStore pops one value into the global named Operation.Name.
	OperationKindStore
	// OperationKindConst pushes the literal Operation.Const.
	OperationKindConst

	// operationKindEnd is the upper bound of kinds, for tests.
	operationKindEnd
)

// Operation is one stack-machine instruction. Only the fields relevant to
// Kind are set.
type Operation struct {
	Kind OperationKind
	// Op is the operator for OperationKindBinOp.
	Op string
	// Name is the global variable for OperationKindLoad and OperationKindStore.
	Name string
	// Const is the literal for OperationKindConst.
	Const int32
}

// NewOperationRead returns a READ operation.
func NewOperationRead() Operation {
	return Operation{Kind: OperationKindRead}
}

// NewOperationWrite returns a WRITE operation.
func NewOperationWrite() Operation {
	return Operation{Kind: OperationKindWrite}
}

// NewOperationBinOp returns a BINOP operation for the given operator.
func NewOperationBinOp(op string) Operation {
	return Operation{Kind: OperationKindBinOp, Op: op}
}

// NewOperationLoad returns an LD operation for the given variable.
func NewOperationLoad(name string) Operation {
	return Operation{Kind: OperationKindLoad, Name: name}
}

// NewOperationStore returns an ST operation for the given variable.
func NewOperationStore(name string) Operation {
	return Operation{Kind: OperationKindStore, Name: name}
}

// NewOperationConst returns a CONST operation for the given literal.
func NewOperationConst(v int32) Operation {
	return Operation{Kind: OperationKindConst, Const: v}
}

// String renders the operation in the listing syntax, with no trailing
// newline: READ, WRITE, BINOP <op>, LD <name>, ST <name>, CONST <n>.
func (o Operation) String() string {
	switch o.Kind {
	case OperationKindRead:
		return "READ"
	case OperationKindWrite:
		return "WRITE"
	case OperationKindBinOp:
		return "BINOP " + o.Op
	case OperationKindLoad:
		return "LD " + o.Name
	case OperationKindStore:
		return "ST " + o.Name
	case OperationKindConst:
		return fmt.Sprintf("CONST %d", o.Const)
	default:
		panic(fmt.Sprintf("BUG: invalid operation kind: %d", o.Kind))
	}
}
