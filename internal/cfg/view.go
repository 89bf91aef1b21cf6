package cfg

import "sentra/internal/rewriter"

// Instr is one decoded logical operation of a rewritten instruction
// stream, annotated with its index in the view and the classification
// predicates the CFG builder (and, later, the optimizer) needs.
type Instr struct {
	Op rewriter.OpCode
	Arg    uint32
	Cache  uint16
	// StartOffset is the byte offset of the first unit of this
	// logical instruction, i.e. its leading EXTENDED_ARG prefix if it
	// has one, else the same as Offset. Jump targets land here: a
	// branch can only ever target the start of a full instruction,
	// prefixes included.
	StartOffset int
	Offset      int // byte offset of this instruction's terminal unit
	Index       int // position in the owning View
}

func (i Instr) NextOffset() int        { return i.Offset + rewriter.RewrittenUnitSize }
func (i Instr) IsBranch() bool         { return rewriter.IsBranch(i.Op) }
func (i Instr) IsReturn() bool         { return rewriter.IsReturn(i.Op) }
func (i Instr) IsTerminator() bool     { return rewriter.IsTerminator(i.Op) }
func (i Instr) IsRelativeBranch() bool { return rewriter.IsRelativeBranch(i.Op) }

// JumpTarget returns the byte offset a branch instruction jumps to:
// next-offset-plus-arg for relative branches, arg itself for absolute
// ones. Calling this on a non-branch instruction is a programmer
// error.
func (i Instr) JumpTarget() int {
	assertf(i.IsBranch(), "JumpTarget called on non-branch %s", i.Op)
	if i.IsRelativeBranch() {
		return i.NextOffset() + int(i.Arg)
	}
	return int(i.Arg)
}

// View decodes an entire rewritten bytecode buffer once into an
// indexable sequence of instructions. It never mutates the underlying
// buffer.
type View struct {
	instrs []Instr
}

// NewView decodes rewritten, a 4-byte-unit instruction stream
// produced by internal/rewriter.Rewrite.
func NewView(rewrittenBytecode []byte) *View {
	var instrs []Instr
	i := 0
	idx := 0
	for i < len(rewrittenBytecode) {
		start := i
		op := rewriter.NextRewrittenOp(rewrittenBytecode, &i)
		instrs = append(instrs, Instr{
			Op:          op.Op,
			Arg:         op.Arg,
			Cache:       op.Cache,
			StartOffset: start,
			Offset:      op.Offset,
			Index:       idx,
		})
		idx++
	}
	return &View{instrs: instrs}
}

func (v *View) Len() int        { return len(v.instrs) }
func (v *View) At(i int) Instr  { return v.instrs[i] }
func (v *View) All() []Instr    { return v.instrs }
