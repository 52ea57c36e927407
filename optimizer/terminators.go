package optimizer

import (
	"github.com/gogpu/uberspec/analyzer"
	"github.com/gogpu/uberspec/uerrors"
)

// tryFoldTerminator rewrites a block terminator whose controlling value
// resolved to a constant, per spec.md §4.7. termIdx names the
// OpBranchConditional or OpSwitch instruction. It returns the label id
// of the single surviving successor plus every other label the
// terminator originally targeted, so the caller can reduceIn each of
// those; folded is false if the selector is not yet constant.
func (r *run) tryFoldTerminator(termIdx uint32) (survivor uint32, others []uint32, folded bool, err error) {
	instr := r.shader.Instrs[termIdx]
	words := r.slotWords(termIdx)

	switch instr.Opcode {
	case analyzer.OpBranchConditional:
		condID := words[1]
		cond, cerr := r.operand(condID)
		if cerr != nil || !cond.isConstant() {
			return 0, nil, false, cerr
		}
		trueLabel, falseLabel := words[2], words[3]
		keep, drop := falseLabel, trueLabel
		if boolOf(cond) {
			keep, drop = trueLabel, falseLabel
		}
		r.rewriteToBranch(termIdx, keep)
		if producer, ok := r.idProducer(condID); ok {
			r.reduceOut(producer)
		}
		return keep, []uint32{drop}, true, nil

	case analyzer.OpSwitch:
		selID := words[1]
		sel, serr := r.operand(selID)
		if serr != nil || !sel.isConstant() {
			return 0, nil, false, serr
		}
		defaultLabel := words[2]
		target := defaultLabel
		var drop []uint32
		matched := false
		for w := 3; w+1 < len(words); w += 2 {
			if !matched && words[w] == sel.u32() {
				target = words[w+1]
				matched = true
				continue
			}
			drop = append(drop, words[w+1])
		}
		if !matched {
			// Default label wins; every case label is dropped, the
			// default label was never in the case list so nothing
			// else to add.
		} else {
			drop = append(drop, defaultLabel)
		}
		if err := r.rewriteSwitchMinimal(termIdx, target); err != nil {
			return 0, nil, false, err
		}
		if producer, ok := r.idProducer(selID); ok {
			r.reduceOut(producer)
		}
		return target, drop, true, nil
	}
	return 0, nil, false, nil
}

// rewriteToBranch replaces termIdx's OpBranchConditional (and an
// immediately preceding OpSelectionMerge, if present) with a minimal
// two-word OpBranch to keepLabel. If an OpSelectionMerge precedes the
// branch, the rewrite lands at the merge's own slot so the single
// surviving instruction keeps the earlier position; otherwise it lands
// at the branch's own slot.
func (r *run) rewriteToBranch(termIdx uint32, keepLabel uint32) {
	target := termIdx
	if termIdx > 0 {
		prevIdx := termIdx - 1
		if r.shader.Instrs[prevIdx].Opcode == analyzer.OpSelectionMerge && !r.isDeleted(prevIdx) {
			r.markDeleted(termIdx)
			target = prevIdx
			if label := r.blockLabel[termIdx]; label != analyzer.NoIndex {
				r.terminatorOf[label] = prevIdx
			}
		}
	}

	words := r.slotWords(target)
	words[1] = keepLabel
	setOpcode(words, analyzer.OpBranch)
	setWordCount(words, 2)
	for i := 2; i < len(words); i++ {
		words[i] = deletionSentinel
	}
}

// rewriteSwitchMinimal replaces termIdx's OpSwitch with a minimal
// three-word OpSwitch(defaultConstantInt, winner), per spec.md §4.7:
// SPIR-V's structured control-flow rules require a switch terminator
// keep that form, so the module's memorized default 32-bit integer
// constant is reused as a dummy selector and its producer's out-degree
// is bumped so dead-code sweeping does not reclaim it.
func (r *run) rewriteSwitchMinimal(termIdx uint32, winner uint32) error {
	if r.shader.DefaultIntConst == analyzer.NoIndex {
		return uerrors.AtInstruction(uerrors.ErrSwitchRewriteImpossible, termIdx, "no 32-bit integer constant available to rewrite switch selector")
	}

	words := r.slotWords(termIdx)
	dummySelector := r.constantResultID(r.shader.DefaultIntConst)
	words[1] = dummySelector
	words[2] = winner
	setOpcode(words, analyzer.OpSwitch)
	setWordCount(words, 3)
	for i := 3; i < len(words); i++ {
		words[i] = deletionSentinel
	}

	r.outDegree[r.shader.DefaultIntConst]++
	return nil
}
