package rewriter

// Rewrite performs a single linear pass over a function's source
// bytecode: it widens every source code unit into a 4-byte rewritten
// unit, reclassifies opcodes into specialization-ready ("anamorphic")
// variants where eligible, folds oparg-encodable constants into
// immediate loads, reverses local-variable indices when safe, and
// allocates inline-cache slots subject to the hard cap.
//
// Rewrite never fails: every degradation (cache cap reached, a
// constant not oparg-encodable, local-reversal ineligibility) is a
// silent shape change in the output, never an error return.
func Rewrite(code *CodeObject) *RewrittenFunction {
	if !code.isOptimizedAndNewLocals() {
		return &RewrittenFunction{
			RewrittenBytecode: widen(code.Bytecode),
			Caches:            nil,
			OriginalBytecode:  code.Bytecode,
		}
	}

	reservedGlobals := ceilDiv(len(code.Names), PointersPerEntry)
	cacheIndex := reservedGlobals
	totalLocals := code.TotalLocals()
	canReverseLocals := totalLocals <= 255

	out := make([]byte, 0, len(code.Bytecode)*2)
	var extAcc uint32
	inPrefix := false
	src := code.Bytecode

	// allocCache returns the next free cache slot index and advances
	// the cursor, or reports false once the hard cap is reached.
	// Per-site cache indices are assigned strictly in source order.
	allocCache := func() (uint16, bool) {
		if cacheIndex >= CacheLimit {
			return 0, false
		}
		idx := cacheIndex
		cacheIndex++
		return uint16(idx), true
	}

	emit := func(op OpCode, arg byte, cache uint16) {
		out = append(out, byte(op), arg, byte(cache), byte(cache>>8))
	}

	for i := 0; i < len(src); {
		opcode := OpCode(src[i])
		argByte := src[i+1]

		if opcode == EXTENDED_ARG {
			out = append(out, byte(opcode), argByte, 0, 0)
			extAcc = (extAcc << 8) | uint32(argByte)
			inPrefix = true
			i += SourceUnitSize
			continue
		}
		fullArg := (extAcc << 8) | uint32(argByte)
		extAcc = 0
		inPrefix = false
		i += SourceUnitSize

		switch opcode {
		case LOAD_ATTR, STORE_ATTR, LOAD_METHOD:
			if cache, ok := allocCache(); ok {
				emit(anamorphicAttrVariant(opcode), argByte, cache)
			} else {
				emit(opcode, argByte, 0)
			}

		case BINARY_MATRIX_MULTIPLY, BINARY_POWER, BINARY_MULTIPLY,
			BINARY_MODULO, BINARY_ADD, BINARY_SUBTRACT,
			BINARY_FLOOR_DIVIDE, BINARY_TRUE_DIVIDE, BINARY_LSHIFT,
			BINARY_RSHIFT, BINARY_AND, BINARY_XOR, BINARY_OR:
			tag := binOpBySourceOpcode[opcode]
			if cache, ok := allocCache(); ok {
				emit(BINARY_OP_ANAMORPHIC, byte(tag), cache)
			} else {
				emit(opcode, argByte, 0)
			}

		case COMPARE_OP:
			switch CompareOp(argByte) {
			case CmpLT, CmpLE, CmpEQ, CmpNE, CmpGT, CmpGE:
				if cache, ok := allocCache(); ok {
					emit(COMPARE_OP_ANAMORPHIC, argByte, cache)
				} else {
					emit(COMPARE_OP, argByte, 0)
				}
			case CmpIN:
				if cache, ok := allocCache(); ok {
					emit(COMPARE_IN_ANAMORPHIC, 0, cache)
				} else {
					emit(COMPARE_OP, argByte, 0)
				}
			case CmpIS:
				emit(COMPARE_IS, 0, 0)
			case CmpIsNot:
				emit(COMPARE_IS_NOT, 0, 0)
			default: // NOT_IN, EXC_MATCH: unchanged.
				emit(COMPARE_OP, argByte, 0)
			}

		case LOAD_CONST:
			c := code.Consts[fullArg]
			if b, ok := c.Bool(); ok {
				var tag byte
				if b {
					tag = 0x80
				}
				emit(LOAD_BOOL, tag, 0)
			} else if tag, ok := opargFromObject(c); ok {
				emit(LOAD_IMMEDIATE, tag, 0)
			} else {
				emit(LOAD_CONST, argByte, 0)
			}

		case LOAD_FAST, STORE_FAST:
			if canReverseLocals {
				reverse := totalLocals - 1 - int(fullArg)
				emit(reverseVariant(opcode), byte(reverse), 0)
			} else {
				emit(opcode, argByte, 0)
			}

		case DELETE_FAST:
			// The delete-fast site itself is never retagged, even
			// when every other local access in this function is
			// reversed.
			emit(opcode, argByte, 0)

		case LOAD_GLOBAL, STORE_GLOBAL, DELETE_GLOBAL:
			// Global access keeps its opcode and arg; its cache
			// location is the name index itself, derived by the
			// interpreter from arg against the reserved-globals
			// region, not carried in the instruction's cache field.
			emit(opcode, argByte, 0)

		default:
			emit(opcode, argByte, 0)
		}
	}
	assertf(!inPrefix, "source bytecode ends with an EXTENDED_ARG prefix and no terminal opcode")

	var caches []CacheSlot
	if cacheIndex > 0 {
		caches = make([]CacheSlot, cacheIndex*PointersPerEntry)
	}
	return &RewrittenFunction{
		RewrittenBytecode: out,
		Caches:            caches,
		OriginalBytecode:  code.Bytecode,
	}
}

func anamorphicAttrVariant(op OpCode) OpCode {
	switch op {
	case LOAD_ATTR:
		return LOAD_ATTR_ANAMORPHIC
	case STORE_ATTR:
		return STORE_ATTR_ANAMORPHIC
	case LOAD_METHOD:
		return LOAD_METHOD_ANAMORPHIC
	default:
		assertf(false, "not an attribute-access opcode: %s", op)
		return op
	}
}

func reverseVariant(op OpCode) OpCode {
	switch op {
	case LOAD_FAST:
		return LOAD_FAST_REVERSE
	case STORE_FAST:
		return STORE_FAST_REVERSE
	default:
		assertf(false, "not a fast-local opcode: %s", op)
		return op
	}
}

// widen implements the gate's fallback path: every 2-byte source unit
// becomes a 4-byte rewritten unit with a zeroed cache field, with no
// further classification.
func widen(src []byte) []byte {
	assertf(len(src)%SourceUnitSize == 0, "source bytecode length %d not a multiple of %d", len(src), SourceUnitSize)
	out := make([]byte, 0, len(src)*2)
	for i := 0; i < len(src); i += SourceUnitSize {
		out = append(out, src[i], src[i+1], 0, 0)
	}
	return out
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
