// Package rewriter implements the bytecode rewriter and inline-cache
// layout of the interpreter's front end: it takes the bytecode a
// source compiler produced and widens it into a cache-annotated,
// specialization-ready instruction stream.
//
// The opcode set below is a CPython-shaped instruction set with an
// adaptive-specialization extension: a wire format distinct from any
// register- or stack-machine opcode set elsewhere in this module.
// Numeric values are part of that wire format and must not be
// renumbered once published.
package rewriter

// OpCode is a single byte opcode identity, shared by the source
// (2-byte unit) and rewritten (4-byte unit) instruction streams.
type OpCode byte

const (
	// Structural / prefix opcodes.
	NOP OpCode = iota
	EXTENDED_ARG

	// Constants.
	LOAD_CONST

	// Attribute access.
	LOAD_ATTR
	STORE_ATTR
	LOAD_METHOD

	// Global / module-level names.
	LOAD_GLOBAL
	STORE_GLOBAL
	DELETE_GLOBAL

	// Unqualified names (module scope outside function bodies; never
	// cache-bearing — only *global* access reserves cache slots, not
	// NAME access).
	LOAD_NAME
	STORE_NAME
	DELETE_NAME

	// Local (fast) variable access.
	LOAD_FAST
	STORE_FAST
	DELETE_FAST

	// Binary / in-place arithmetic (13 operators, one opcode + tag).
	BINARY_MATRIX_MULTIPLY
	BINARY_POWER
	BINARY_MULTIPLY
	BINARY_MODULO
	BINARY_ADD
	BINARY_SUBTRACT
	BINARY_FLOOR_DIVIDE
	BINARY_TRUE_DIVIDE
	BINARY_LSHIFT
	BINARY_RSHIFT
	BINARY_AND
	BINARY_XOR
	BINARY_OR

	// Comparison (11 comparators, one opcode + tag, except is/is-not
	// which get dedicated non-caching opcodes after rewrite).
	COMPARE_OP

	// Control flow.
	FOR_ITER
	JUMP_ABSOLUTE
	JUMP_FORWARD
	JUMP_IF_FALSE_OR_POP
	JUMP_IF_TRUE_OR_POP
	POP_JUMP_IF_FALSE
	POP_JUMP_IF_TRUE
	RETURN_VALUE

	// --- Rewritten-stream-only opcodes (never appear in source). ---

	LOAD_ATTR_ANAMORPHIC
	STORE_ATTR_ANAMORPHIC
	LOAD_METHOD_ANAMORPHIC
	BINARY_OP_ANAMORPHIC
	COMPARE_OP_ANAMORPHIC
	COMPARE_IN_ANAMORPHIC
	COMPARE_IS
	COMPARE_IS_NOT
	LOAD_IMMEDIATE
	LOAD_BOOL
	LOAD_FAST_REVERSE
	STORE_FAST_REVERSE
)

var opcodeNames = map[OpCode]string{
	NOP:                     "NOP",
	EXTENDED_ARG:            "EXTENDED_ARG",
	LOAD_CONST:              "LOAD_CONST",
	LOAD_ATTR:               "LOAD_ATTR",
	STORE_ATTR:              "STORE_ATTR",
	LOAD_METHOD:             "LOAD_METHOD",
	LOAD_GLOBAL:             "LOAD_GLOBAL",
	STORE_GLOBAL:            "STORE_GLOBAL",
	DELETE_GLOBAL:           "DELETE_GLOBAL",
	LOAD_NAME:               "LOAD_NAME",
	STORE_NAME:              "STORE_NAME",
	DELETE_NAME:             "DELETE_NAME",
	LOAD_FAST:               "LOAD_FAST",
	STORE_FAST:              "STORE_FAST",
	DELETE_FAST:             "DELETE_FAST",
	BINARY_MATRIX_MULTIPLY:  "BINARY_MATRIX_MULTIPLY",
	BINARY_POWER:            "BINARY_POWER",
	BINARY_MULTIPLY:         "BINARY_MULTIPLY",
	BINARY_MODULO:           "BINARY_MODULO",
	BINARY_ADD:              "BINARY_ADD",
	BINARY_SUBTRACT:         "BINARY_SUBTRACT",
	BINARY_FLOOR_DIVIDE:     "BINARY_FLOOR_DIVIDE",
	BINARY_TRUE_DIVIDE:      "BINARY_TRUE_DIVIDE",
	BINARY_LSHIFT:           "BINARY_LSHIFT",
	BINARY_RSHIFT:           "BINARY_RSHIFT",
	BINARY_AND:              "BINARY_AND",
	BINARY_XOR:              "BINARY_XOR",
	BINARY_OR:               "BINARY_OR",
	COMPARE_OP:              "COMPARE_OP",
	FOR_ITER:                "FOR_ITER",
	JUMP_ABSOLUTE:           "JUMP_ABSOLUTE",
	JUMP_FORWARD:            "JUMP_FORWARD",
	JUMP_IF_FALSE_OR_POP:    "JUMP_IF_FALSE_OR_POP",
	JUMP_IF_TRUE_OR_POP:     "JUMP_IF_TRUE_OR_POP",
	POP_JUMP_IF_FALSE:       "POP_JUMP_IF_FALSE",
	POP_JUMP_IF_TRUE:        "POP_JUMP_IF_TRUE",
	RETURN_VALUE:            "RETURN_VALUE",
	LOAD_ATTR_ANAMORPHIC:    "LOAD_ATTR_ANAMORPHIC",
	STORE_ATTR_ANAMORPHIC:   "STORE_ATTR_ANAMORPHIC",
	LOAD_METHOD_ANAMORPHIC:  "LOAD_METHOD_ANAMORPHIC",
	BINARY_OP_ANAMORPHIC:    "BINARY_OP_ANAMORPHIC",
	COMPARE_OP_ANAMORPHIC:   "COMPARE_OP_ANAMORPHIC",
	COMPARE_IN_ANAMORPHIC:   "COMPARE_IN_ANAMORPHIC",
	COMPARE_IS:              "COMPARE_IS",
	COMPARE_IS_NOT:          "COMPARE_IS_NOT",
	LOAD_IMMEDIATE:          "LOAD_IMMEDIATE",
	LOAD_BOOL:               "LOAD_BOOL",
	LOAD_FAST_REVERSE:       "LOAD_FAST_REVERSE",
	STORE_FAST_REVERSE:      "STORE_FAST_REVERSE",
}

func (op OpCode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// BinaryOp is the stable operator tag encoded in the arg byte of a
// BINARY_OP_ANAMORPHIC instruction. Order is part of the wire format.
type BinaryOp byte

const (
	BinMatMul BinaryOp = iota
	BinPow
	BinMul
	BinMod
	BinAdd
	BinSub
	BinFloorDiv
	BinTrueDiv
	BinLShift
	BinRShift
	BinAnd
	BinXor
	BinOr
)

var binOpBySourceOpcode = map[OpCode]BinaryOp{
	BINARY_MATRIX_MULTIPLY: BinMatMul,
	BINARY_POWER:           BinPow,
	BINARY_MULTIPLY:        BinMul,
	BINARY_MODULO:          BinMod,
	BINARY_ADD:             BinAdd,
	BINARY_SUBTRACT:        BinSub,
	BINARY_FLOOR_DIVIDE:    BinFloorDiv,
	BINARY_TRUE_DIVIDE:     BinTrueDiv,
	BINARY_LSHIFT:          BinLShift,
	BINARY_RSHIFT:          BinRShift,
	BINARY_AND:             BinAnd,
	BINARY_XOR:             BinXor,
	BINARY_OR:              BinOr,
}

// CompareOp is the stable comparator tag carried in the arg byte of a
// COMPARE_OP/COMPARE_OP_ANAMORPHIC instruction. Order is part of the
// wire format.
type CompareOp byte

const (
	CmpLT CompareOp = iota
	CmpLE
	CmpEQ
	CmpNE
	CmpGT
	CmpGE
	CmpIN
	CmpNotIN
	CmpIS
	CmpIsNot
	CmpExcMatch
)

// isBranch reports whether op is a branch: for-iter, unconditional
// jumps, and conditional pop-and-jump / short-circuit jumps.
func isBranch(op OpCode) bool {
	switch op {
	case FOR_ITER, JUMP_ABSOLUTE, JUMP_FORWARD,
		JUMP_IF_FALSE_OR_POP, JUMP_IF_TRUE_OR_POP,
		POP_JUMP_IF_FALSE, POP_JUMP_IF_TRUE:
		return true
	default:
		return false
	}
}

// isRelativeBranch reports whether op's operand is a relative
// displacement (added to the offset just past the branch) rather
// than an absolute instruction offset.
func isRelativeBranch(op OpCode) bool {
	switch op {
	case FOR_ITER, JUMP_FORWARD:
		return true
	default:
		return false
	}
}

func isReturn(op OpCode) bool {
	return op == RETURN_VALUE
}

// IsBranch, IsReturn, IsTerminator, IsRelativeBranch are exported for
// the CFG builder, which classifies each decoded instruction to find
// block boundaries.
func IsBranch(op OpCode) bool         { return isBranch(op) }
func IsReturn(op OpCode) bool         { return isReturn(op) }
func IsTerminator(op OpCode) bool     { return isBranch(op) || isReturn(op) }
func IsRelativeBranch(op OpCode) bool { return isRelativeBranch(op) }
