package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	asm_ia32 "github.com/valentinnodan/compilers-supplementary/internal/asm/ia32"
)

func TestValueLocationStack_allocate(t *testing.T) {
	s := newValueLocationStack()

	// Registers are handed out in index order.
	exp := []asm_ia32.Operand{
		asm_ia32.RegisterOperand(asm_ia32.RegBX),
		asm_ia32.RegisterOperand(asm_ia32.RegCX),
		asm_ia32.RegisterOperand(asm_ia32.RegSI),
		asm_ia32.StackSlotOperand(0),
		asm_ia32.StackSlotOperand(1),
	}
	for i, expLoc := range exp {
		var loc asm_ia32.Operand
		loc, s = s.allocate()
		require.Equal(t, expLoc, loc, "allocation %d", i)
	}
	require.Equal(t, 2, s.stackPointerCeil)
	require.Equal(t, 5, s.depth())
}

func TestValueLocationStack_allocateAfterPop(t *testing.T) {
	s := newValueLocationStack()
	for i := 0; i < 4; i++ {
		_, s = s.allocate()
	}
	// Down to one register, back up: the ceil keeps its high-water value
	// even though no slot is live anymore.
	_, s = s.pop()
	_, s = s.pop()
	_, s = s.pop()
	loc, s := s.allocate()
	require.Equal(t, asm_ia32.RegisterOperand(asm_ia32.RegCX), loc)
	require.Equal(t, 1, s.stackPointerCeil)
}

func TestValueLocationStack_pop2(t *testing.T) {
	s := newValueLocationStack()
	_, s = s.allocate()
	_, s = s.allocate()
	x, y, s := s.pop2()
	// x is the old top (the right operand), y the one below.
	require.Equal(t, asm_ia32.RegisterOperand(asm_ia32.RegCX), x)
	require.Equal(t, asm_ia32.RegisterOperand(asm_ia32.RegBX), y)
	require.Equal(t, 0, s.depth())
}

func TestValueLocationStack_persistent(t *testing.T) {
	s := newValueLocationStack()
	_, s = s.allocate()
	before := s

	_, popped := s.pop()
	_, _ = popped.allocate()
	withGlobal := s.addGlobal("x")

	// The original is untouched by descendants' operations.
	require.Equal(t, 1, before.depth())
	require.Equal(t, asm_ia32.RegisterOperand(asm_ia32.RegBX), before.stack[0])
	require.Empty(t, before.globalSymbols())
	require.Equal(t, []string{"global_x"}, withGlobal.globalSymbols())
}

func TestValueLocationStack_addGlobal(t *testing.T) {
	s := newValueLocationStack()
	s = s.addGlobal("x")
	s = s.addGlobal("y")
	s = s.addGlobal("x")
	require.Equal(t, []string{"global_x", "global_y"}, s.globalSymbols())
	require.Equal(t, asm_ia32.MemOperand("global_x"), s.globalLoc("x"))
}

func TestValueLocationStack_String(t *testing.T) {
	s := newValueLocationStack()
	_, s = s.allocate()
	s = s.addGlobal("n")
	require.Equal(t, "stack=[%ebx], ceil=0, globals=[global_n]", s.String())
}
