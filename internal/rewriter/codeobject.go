package rewriter

// CodeFlags are the subset of a code object's flags the rewriter
// inspects before retagging. The rest of the object system's flag
// bits are out of scope for this package.
type CodeFlags uint32

const (
	FlagOptimized CodeFlags = 1 << iota
	FlagNewLocals
)

// CodeObject is the input capability the rewriter needs from the
// object system. It is a plain data record, not a live object: the
// object model, GC, and handle-scoping machinery that actually owns
// constants/names live elsewhere and are out of scope here.
type CodeObject struct {
	// Bytecode is the source, 2-byte-unit instruction stream produced
	// by the compiler. Never mutated by this package: the original
	// stream is retained and handed back unmodified in
	// RewrittenFunction.OriginalBytecode.
	Bytecode []byte

	// Consts is the constants tuple; LOAD_CONST's arg indexes it.
	Consts []Const
	// Names is the names tuple; LOAD_GLOBAL/STORE_GLOBAL/
	// DELETE_GLOBAL and LOAD_ATTR/STORE_ATTR/LOAD_METHOD's arg
	// indexes it.
	Names []string
	// Varnames, Freevars, Cellvars are the three components of the
	// local-variable namespace. TotalLocals is their combined count:
	// the frame-slot count the reverse-indexing scheme measures from
	// (see DESIGN.md — this is *not* just len(Varnames)).
	Varnames []string
	Freevars []string
	Cellvars []string

	Flags CodeFlags
}

// TotalLocals is the frame-slot count used by the local-reversal
// rewrite: reverse_index = TotalLocals - 1 - original.
func (c *CodeObject) TotalLocals() int {
	return len(c.Varnames) + len(c.Freevars) + len(c.Cellvars)
}

func (c *CodeObject) isOptimizedAndNewLocals() bool {
	return c.Flags&FlagOptimized != 0 && c.Flags&FlagNewLocals != 0
}

// PointersPerEntry is the number of object slots a single cache entry
// occupies. It is a fixed layout constant, not a runtime tunable:
// changing it changes the cache array's addressing scheme, so it is a
// package const rather than a Rewriter field.
const PointersPerEntry = 2

// CacheLimit is the hard cap on total reserved cache entries.
const CacheLimit = 65536

// CacheSlot is one object-sized slot of the cache array. The rewriter
// never stores anything but the empty sentinel into it; the
// interpreter is the sole later writer.
type CacheSlot = any

// RewrittenFunction owns the artifacts a rewrite pass produces.
type RewrittenFunction struct {
	// RewrittenBytecode is the widened, cache-annotated 4-byte-unit
	// stream.
	RewrittenBytecode []byte
	// Caches is nil when the gate skipped retagging entirely or when
	// no cache entries were reserved; otherwise it has exactly
	// (reserved entries)*PointersPerEntry slots, all set to the empty
	// sentinel (Go's nil, for CacheSlot = any).
	Caches []CacheSlot
	// OriginalBytecode is the code object's untouched source stream,
	// retained for introspection by callers outside this package's
	// scope (debugging, pretty-printing).
	OriginalBytecode []byte
}

// HasCaches reports whether the rewrite allocated a cache array at
// all: false both when the gate fired and widen took over, and when
// the gate passed but the function reserved zero cache entries (no
// names, no cache-eligible sites).
func (f *RewrittenFunction) HasCaches() bool { return f.Caches != nil }
