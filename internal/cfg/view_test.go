package cfg

import (
	"testing"

	"sentra/internal/rewriter"
)

func TestNewViewDecodesExtendedArgPrefixIntoStartOffset(t *testing.T) {
	code := concat(
		unit(rewriter.EXTENDED_ARG, 1),
		unit(rewriter.EXTENDED_ARG, 2),
		unit(rewriter.LOAD_CONST, 3),
		unit(rewriter.RETURN_VALUE, 0),
	)
	view := NewView(code)
	if view.Len() != 2 {
		t.Fatalf("got %d logical instructions, want 2", view.Len())
	}

	loadConst := view.At(0)
	if loadConst.Op != rewriter.LOAD_CONST {
		t.Fatalf("got op %s, want LOAD_CONST", loadConst.Op)
	}
	if loadConst.StartOffset != 0 {
		t.Fatalf("got StartOffset %d, want 0 (the leading EXTENDED_ARG)", loadConst.StartOffset)
	}
	if loadConst.Offset != 8 {
		t.Fatalf("got terminal Offset %d, want 8", loadConst.Offset)
	}
	if loadConst.Arg != 0x0102_03 {
		t.Fatalf("got assembled arg %#x, want %#x", loadConst.Arg, 0x010203)
	}

	ret := view.At(1)
	if ret.StartOffset != ret.Offset {
		t.Fatalf("a no-prefix instruction's StartOffset must equal its Offset")
	}
}

func TestInstrJumpTargetRelativeVsAbsolute(t *testing.T) {
	code := concat(
		unit(rewriter.JUMP_FORWARD, 8),
		unit(rewriter.NOP, 0),
		unit(rewriter.NOP, 0),
		unit(rewriter.JUMP_ABSOLUTE, 4),
	)
	view := NewView(code)

	relative := view.At(0)
	if !relative.IsRelativeBranch() {
		t.Fatalf("JUMP_FORWARD must be a relative branch")
	}
	if got := relative.JumpTarget(); got != 12 {
		t.Fatalf("got relative jump target %d, want 12", got)
	}

	absolute := view.At(3)
	if absolute.IsRelativeBranch() {
		t.Fatalf("JUMP_ABSOLUTE must not be a relative branch")
	}
	if got := absolute.JumpTarget(); got != 4 {
		t.Fatalf("got absolute jump target %d, want 4", got)
	}
}
