package compiler

import (
	"fmt"
	"strings"

	asm_ia32 "github.com/valentinnodan/compilers-supplementary/internal/asm/ia32"
)

// globalSymbolPrefix namespaces source variables in the emitted data section,
// keeping them clear of the runtime's own symbols.
const globalSymbolPrefix = "global_"

// valueLocationStack models the stack machine's evaluation stack at compile
// time: each entry records where that stack value lives at runtime, either
// one of the allocatable registers or a spill slot relative to %ebp. The code
// generator consults it to see where an operation's operands are and where
// its result goes.
//
// The zero value is the empty stack. All methods are persistent: mutators
// return a new stack and leave the receiver untouched, so the code generator
// threads it through the fold over the program by reassignment.
//
// Invariants: entries are only allocatable registers or spill slots (never
// immediates, named cells or the scratch/frame registers), register entries
// are allocated in increasing index order, and stackPointerCeil covers the
// deepest slot ever pushed.
type valueLocationStack struct {
	// stack holds the locations; the top is the last element.
	stack []asm_ia32.Operand
	// stackPointerCeil is the maximum number of spill slots simultaneously
	// live so far, i.e. the frame size to reserve in the prologue.
	stackPointerCeil int
	// globals holds the prefixed data-section symbols referenced so far, in
	// first-reference order.
	globals []string
}

func newValueLocationStack() valueLocationStack {
	return valueLocationStack{}
}

// String implements fmt.Stringer for debugging.
func (v valueLocationStack) String() string {
	locations := make([]string, len(v.stack))
	for i, loc := range v.stack {
		locations[i] = loc.String()
	}
	return fmt.Sprintf("stack=[%s], ceil=%d, globals=[%s]",
		strings.Join(locations, ","), v.stackPointerCeil, strings.Join(v.globals, ","))
}

// depth returns the number of values on the stack.
func (v valueLocationStack) depth() int {
	return len(v.stack)
}

// allocate chooses the location for a new value pushed on top of the stack
// and pushes it: registers are handed out in index order until
// NumAllocatableRegisters are live, then spill slots from the current depth
// onward. The high-water mark is raised when a new slot comes into use.
func (v valueLocationStack) allocate() (asm_ia32.Operand, valueLocationStack) {
	loc := asm_ia32.RegisterOperand(asm_ia32.RegBX)
	ceil := v.stackPointerCeil
	if n := len(v.stack); n > 0 {
		switch top := v.stack[n-1]; top.Kind {
		case asm_ia32.OperandKindRegister:
			if int(top.Reg)+1 < asm_ia32.NumAllocatableRegisters {
				loc = asm_ia32.RegisterOperand(top.Reg + 1)
			} else {
				loc = asm_ia32.StackSlotOperand(0)
				if ceil < 1 {
					ceil = 1
				}
			}
		case asm_ia32.OperandKindStackSlot:
			loc = asm_ia32.StackSlotOperand(top.Slot + 1)
			if top.Slot+2 > ceil {
				ceil = top.Slot + 2
			}
		default:
			// Unreachable given the invariants; keep allocating sanely anyway.
			loc = asm_ia32.StackSlotOperand(0)
			if ceil < 1 {
				ceil = 1
			}
		}
	}
	next := v.push(loc)
	next.stackPointerCeil = ceil
	return loc, next
}

// push returns a stack with loc on top. Used directly (without allocate) to
// put a binop's result back where its left operand lived.
func (v valueLocationStack) push(loc asm_ia32.Operand) valueLocationStack {
	stack := make([]asm_ia32.Operand, len(v.stack)+1)
	copy(stack, v.stack)
	stack[len(v.stack)] = loc
	return valueLocationStack{stack: stack, stackPointerCeil: v.stackPointerCeil, globals: v.globals}
}

// pop takes the top of the stack. The caller must have checked depth.
func (v valueLocationStack) pop() (asm_ia32.Operand, valueLocationStack) {
	top := v.stack[len(v.stack)-1]
	return top, valueLocationStack{
		stack:            v.stack[:len(v.stack)-1],
		stackPointerCeil: v.stackPointerCeil,
		globals:          v.globals,
	}
}

// pop2 takes the two topmost values: x is the old top (an operation's right
// operand), y the one below it (the left operand).
func (v valueLocationStack) pop2() (x, y asm_ia32.Operand, next valueLocationStack) {
	x, next = v.pop()
	y, next = next.pop()
	return
}

// addGlobal records a referenced source variable. Idempotent.
func (v valueLocationStack) addGlobal(name string) valueLocationStack {
	sym := globalSymbolPrefix + name
	for _, g := range v.globals {
		if g == sym {
			return v
		}
	}
	globals := make([]string, len(v.globals)+1)
	copy(globals, v.globals)
	globals[len(v.globals)] = sym
	return valueLocationStack{stack: v.stack, stackPointerCeil: v.stackPointerCeil, globals: globals}
}

// globalLoc returns the memory operand addressing a source variable's cell.
func (v valueLocationStack) globalLoc(name string) asm_ia32.Operand {
	return asm_ia32.MemOperand(globalSymbolPrefix + name)
}

// globalSymbols returns the referenced data-section symbols in
// first-reference order.
func (v valueLocationStack) globalSymbols() []string {
	return v.globals
}
