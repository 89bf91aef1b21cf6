package cfg

import "golang.org/x/exp/slices"

// Build partitions a rewritten function's instruction stream into
// basic blocks and selects an entry block.
//
// view must have been decoded from the *rewritten* bytecode produced
// by internal/rewriter.Rewrite; Build never looks at the source
// stream or the cache array.
func Build(view *View) *CFG {
	c := newCFG()
	blockStarts := discoverBlockStarts(view)
	buildBlocks(c, view, blockStarts)
	entry := selectEntryBlock(c, view)
	c.setEntryBlock(entry)
	return c
}

// discoverBlockStarts returns the sorted, deduplicated set of
// instruction indices that begin a basic block: index 0 (the function
// always starts a block), the fall-through successor of every branch
// or return instruction, and the target instruction of every branch.
// A jump can only ever land on the start of a logical instruction, so
// every branch target is resolved through offsetToIndex rather than
// assumed to equal some index arithmetically.
func discoverBlockStarts(view *View) []int {
	n := view.Len()
	offsetToIndex := make(map[int]int, n)
	for idx := 0; idx < n; idx++ {
		offsetToIndex[view.At(idx).StartOffset] = idx
	}

	starts := map[int]struct{}{0: {}}
	addNext := func(idx int) {
		next := idx + 1
		if next < n {
			starts[next] = struct{}{}
		}
	}
	for idx := 0; idx < n; idx++ {
		instr := view.At(idx)
		switch {
		case instr.IsBranch():
			target := instr.JumpTarget()
			targetIdx, ok := offsetToIndex[target]
			assertf(ok, "branch at instruction %d targets offset %d, which is not the start of any instruction", idx, target)
			starts[targetIdx] = struct{}{}
			addNext(idx)
		case instr.IsReturn():
			addNext(idx)
		default:
			assertf(!instr.IsTerminator(), "instruction %d (%s) is a terminator but neither branch nor return", idx, instr.Op)
		}
	}

	ordered := make([]int, 0, len(starts))
	for idx := range starts {
		ordered = append(ordered, idx)
	}
	slices.Sort(ordered)
	return ordered
}

// buildBlocks allocates one block per adjacent pair of block-start
// indices and registers it in c's block map, keyed by the real
// (prefix-inclusive) byte offset each block starts at.
func buildBlocks(c *CFG, view *View, starts []int) {
	for i, startIdx := range starts {
		endIdx := view.Len()
		if i+1 < len(starts) {
			endIdx = starts[i+1]
		}
		block := c.AllocateBlock()
		startOffset := view.At(startIdx).StartOffset
		c.blockMap.add(startOffset, block, InstructionRange{Start: startIdx, End: endIdx})
	}
}

// selectEntryBlock guarantees the CFG's entry block is never a branch
// target: if any branch in the function targets instruction 0 (a loop
// back to the top), a fresh trampoline block is allocated, wired with
// a single unconditional branch into the block at offset 0, and
// returned as the entry; otherwise the block at offset 0 already
// satisfies the property and is the entry as-is.
func selectEntryBlock(c *CFG, view *View) *BasicBlock {
	for idx := 0; idx < view.Len(); idx++ {
		instr := view.At(idx)
		if instr.IsBranch() && instr.JumpTarget() == 0 {
			trampoline := c.AllocateBlock()
			first := c.blockMap.BlockAtOffset(0)
			trampoline.Emit(NewBranch(first))
			return trampoline
		}
	}
	return c.blockMap.BlockAtOffset(0)
}
