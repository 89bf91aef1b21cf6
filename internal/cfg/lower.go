package cfg

import "errors"

// ErrUnimplemented is returned by Lower: translating a basic-block
// view into full IR (register allocation, phi insertion, instruction
// selection per opcode class) is not built yet. The CFG's shape
// (blocks, block map, entry block) is usable on its own; only the
// block-body lowering step is missing.
var ErrUnimplemented = errors.New("cfg: block-body lowering not implemented")

// Lower would translate c's basic blocks into fully-formed IR
// instructions reading and writing Registers. It always fails today;
// callers that only need block boundaries and the entry point should
// use Build directly and ignore Lower.
func Lower(c *CFG, view *View) error {
	return ErrUnimplemented
}
