// Command-free library module implementing a bytecode rewriter and
// control-flow graph builder for a CPython-shaped instruction set.
//
// internal/rewriter takes a function's source (2-byte-unit) bytecode
// and produces a widened, cache-annotated (4-byte-unit) rewritten
// form: attribute access, binary operators, and ordered comparisons
// are retagged into specialization-ready ("anamorphic") variants with
// allocated inline-cache slots, oparg-encodable constants are folded
// into immediate loads, and local-variable indices are reversed when
// the function's frame layout allows it.
//
// internal/cfg consumes that rewritten bytecode and partitions it
// into basic blocks: every branch target and every fall-through
// becomes a block boundary, and an entry block is chosen that is
// never itself the target of an in-function branch, inserting a
// trampoline block when the function loops back to its first
// instruction.
package sentra
