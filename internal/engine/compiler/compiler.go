// Package compiler translates stack-machine programs into 32-bit x86
// assembly, AT&T syntax. Each stack-machine operation lowers to a short
// instruction sequence; a value-location stack decides, per operation, which
// register or spill slot holds each operand. The result is a complete
// translation unit assembling against the external runtime symbols Lread and
// Lwrite.
package compiler

import (
	"strings"

	"github.com/pkg/errors"

	asm_ia32 "github.com/valentinnodan/compilers-supplementary/internal/asm/ia32"
	"github.com/valentinnodan/compilers-supplementary/internal/slcir"
)

// Operand shorthands for the scratch and frame registers. These never enter
// the value-location stack.
var (
	eax = asm_ia32.RegisterOperand(asm_ia32.RegAX)
	edx = asm_ia32.RegisterOperand(asm_ia32.RegDX)
	ebp = asm_ia32.RegisterOperand(asm_ia32.RegBP)
	esp = asm_ia32.RegisterOperand(asm_ia32.RegSP)
)

// comparisonSuffixes maps comparison operators to x86 condition-code
// suffixes for set<cc>.
var comparisonSuffixes = map[string]string{
	"<":  "l",
	"<=": "le",
	"==": "e",
	"!=": "ne",
	">=": "ge",
	">":  "g",
}

// compiler accumulates the instruction sequence for one program while
// threading the value-location stack through the operations.
type compiler struct {
	locationStack valueLocationStack
	instructions  []asm_ia32.Instruction
}

func newCompiler() *compiler {
	return &compiler{locationStack: newValueLocationStack()}
}

func (c *compiler) emit(instructions ...asm_ia32.Instruction) {
	c.instructions = append(c.instructions, instructions...)
}

// compile adds the instructions for one stack-machine operation, preceded by
// a comment line naming it in the listing syntax.
func (c *compiler) compile(op slcir.Operation) error {
	var lower func() error
	switch op.Kind {
	case slcir.OperationKindRead:
		lower = c.compileRead
	case slcir.OperationKindWrite:
		lower = c.compileWrite
	case slcir.OperationKindConst:
		lower = func() error { return c.compileConst(op.Const) }
	case slcir.OperationKindLoad:
		lower = func() error { return c.compileLoad(op.Name) }
	case slcir.OperationKindStore:
		lower = func() error { return c.compileStore(op.Name) }
	case slcir.OperationKindBinOp:
		lower = func() error { return c.compileBinOp(op.Op) }
	default:
		return errors.Errorf("unknown operation kind: %d", op.Kind)
	}
	c.emit(asm_ia32.Meta("# " + op.String() + "\n"))
	return lower()
}

// compileRead adds instructions to call Lread and move its result, returned
// in %eax per the runtime convention, into a freshly allocated location.
func (c *compiler) compileRead() error {
	loc, stack := c.locationStack.allocate()
	c.locationStack = stack
	c.emit(
		asm_ia32.Call("Lread"),
		asm_ia32.Mov(eax, loc),
	)
	return nil
}

// compileWrite adds instructions to pass the stack top to Lwrite as a cdecl
// argument. The popl afterwards only restores %esp; the popped value is
// discarded.
func (c *compiler) compileWrite() error {
	if c.locationStack.depth() < 1 {
		return errors.New("stack underflow on WRITE")
	}
	loc, stack := c.locationStack.pop()
	c.locationStack = stack
	c.emit(
		asm_ia32.Push(loc),
		asm_ia32.Call("Lwrite"),
		asm_ia32.Pop(eax),
	)
	return nil
}

// compileConst adds instructions to materialize a literal into a freshly
// allocated location.
func (c *compiler) compileConst(v int32) error {
	loc, stack := c.locationStack.allocate()
	c.locationStack = stack
	c.compileMove(asm_ia32.ImmOperand(v), loc)
	return nil
}

// compileLoad adds instructions to push the value of a global variable.
func (c *compiler) compileLoad(name string) error {
	stack := c.locationStack.addGlobal(name)
	loc, stack := stack.allocate()
	c.locationStack = stack
	c.compileMove(stack.globalLoc(name), loc)
	return nil
}

// compileStore adds instructions to pop the stack top into a global
// variable's cell.
func (c *compiler) compileStore(name string) error {
	stack := c.locationStack.addGlobal(name)
	if stack.depth() < 1 {
		return errors.Errorf("stack underflow on ST %s", name)
	}
	loc, stack := stack.pop()
	c.locationStack = stack
	c.compileMove(loc, stack.globalLoc(name))
	return nil
}

// compileBinOp adds instructions applying a binary operator to the two
// topmost stack values. The right operand is the old top; the result lands
// in the left operand's location, which stays on the stack.
func (c *compiler) compileBinOp(op string) error {
	if c.locationStack.depth() < 2 {
		return errors.Errorf("stack underflow on BINOP %s", op)
	}
	x, y, stack := c.locationStack.pop2()
	switch op {
	case "+", "-", "*", "&&", "!!":
		c.compileArithmeticOp(op, x, y)
	case "/":
		if err := c.compileDivisionOp(eax, x, y); err != nil {
			return err
		}
	case "%":
		if err := c.compileDivisionOp(edx, x, y); err != nil {
			return err
		}
	case "<", "<=", "==", "!=", ">=", ">":
		c.compileComparisonOp(op, x, y)
	default:
		return errors.Errorf("unknown binary operator: %q", op)
	}
	c.locationStack = stack.push(y)
	return nil
}

// compileMove adds a move from one location to another. x86 has no
// memory-to-memory mov, so such moves go through %eax. A same-to-same move
// is emitted as-is; there is no peephole stage.
func (c *compiler) compileMove(from, to asm_ia32.Operand) {
	if from.InMemory() && to.InMemory() {
		c.emit(
			asm_ia32.Mov(from, eax),
			asm_ia32.Mov(eax, to),
		)
	} else {
		c.emit(asm_ia32.Mov(from, to))
	}
}

// compileArithmeticOp adds a two-operand instruction computing y <- y op x.
// The destination of a two-operand op must be a register, so a spilled or
// global destination is cycled through %eax.
func (c *compiler) compileArithmeticOp(op string, x, y asm_ia32.Operand) {
	if y.OnRegister() {
		c.emit(asm_ia32.Binop(op, x, y))
		return
	}
	c.compileMove(y, eax)
	c.emit(asm_ia32.Binop(op, x, eax))
	c.compileMove(eax, y)
}

// compileDivisionOp adds the idiv sequence for y <- y op x: the dividend is
// sign-extended into %edx:%eax by cltd, idivl leaves the quotient in %eax
// and the remainder in %edx, and result selects which of the two lands in y.
//
// idivl rejects an immediate divisor. Values reach the stack only through
// allocated locations, never as immediates, so this cannot trigger for
// programs produced by the lowering; it is checked all the same.
func (c *compiler) compileDivisionOp(result, x, y asm_ia32.Operand) error {
	if x.Kind == asm_ia32.OperandKindImm {
		return errors.New("immediate divisor")
	}
	c.compileMove(y, eax)
	c.emit(
		asm_ia32.Cltd(),
		asm_ia32.IDiv(x),
	)
	c.compileMove(result, y)
	return nil
}

// compileComparisonOp adds a flags-register comparison for y <- y op x: cmpl
// sets the flags, set<cc> writes 0 or 1 into %al, and the full %eax word is
// then moved into y. The upper bytes of %eax are left as they were, so only
// %al is meaningful; consumers treat any non-zero word as true.
func (c *compiler) compileComparisonOp(op string, x, y asm_ia32.Operand) {
	c.compileArithmeticOp("cmp", x, y)
	c.emit(asm_ia32.Set(comparisonSuffixes[op], "%al"))
	c.compileMove(eax, y)
}

// Compile translates a whole stack-machine program into the text of an
// assembly translation unit: a .data section with one zero-initialized word
// per referenced global, and a main function in .text whose prologue
// reserves one word per spill slot the body ever needs. main returns 0.
func Compile(program []slcir.Operation) ([]byte, error) {
	c := newCompiler()
	for pc, op := range program {
		if err := c.compile(op); err != nil {
			return nil, errors.Wrapf(err, "operation %d", pc)
		}
	}

	unit := []asm_ia32.Instruction{
		asm_ia32.Meta("\t.global\tmain\n"),
		asm_ia32.Meta("\t.data\n"),
	}
	for _, sym := range c.locationStack.globalSymbols() {
		unit = append(unit, asm_ia32.Meta(sym+":\t.int\t0\n"))
	}
	unit = append(unit,
		asm_ia32.Meta("\t.text\n"),
		asm_ia32.Meta("main:\n"),
		asm_ia32.Push(ebp),
		asm_ia32.Mov(esp, ebp),
		asm_ia32.Binop("-", asm_ia32.ImmOperand(int32(4*c.locationStack.stackPointerCeil)), esp),
	)
	unit = append(unit, c.instructions...)
	unit = append(unit,
		asm_ia32.Mov(ebp, esp),
		asm_ia32.Pop(ebp),
		asm_ia32.Binop("^", eax, eax),
		asm_ia32.Ret(),
	)

	var out strings.Builder
	for _, instruction := range unit {
		out.WriteString(instruction.String())
	}
	return []byte(out.String()), nil
}
