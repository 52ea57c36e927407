package optimizer

import "github.com/gogpu/uberspec/analyzer"

// evaluate walks the shader's precomputed topological order once,
// compacting phis, folding constants, and folding terminators, per
// spec.md §4.5–§4.7. Instructions deleted by an earlier step in the
// same walk (patching, or an earlier terminator fold's reduceIn/
// reduceOut cascade) are skipped.
func (r *run) evaluate() error {
	for _, idx := range r.shader.TopoOrder {
		if r.isDeleted(idx) {
			continue
		}
		// Classify by the working copy's opcode: patching may have turned
		// an OpSpecConstant* into the matching OpConstant*.
		op := analyzer.OpCode(r.currentWords(idx)[0] & 0xFFFF)

		switch op {
		case analyzer.OpBranchConditional, analyzer.OpSwitch:
			_, others, folded, err := r.tryFoldTerminator(idx)
			if err != nil {
				return err
			}
			if folded {
				for _, label := range others {
					if labelIdx, ok := r.idProducer(label); ok {
						r.reduceIn(labelIdx)
					}
				}
			}
			continue
		}

		if op == analyzer.OpPhi {
			r.compactPhi(idx)
			if r.isDeleted(idx) {
				continue
			}
		}

		if !foldableOpcodes[op] {
			if has, resultWord := analyzer.HasResult(op); has {
				resultID := r.currentWords(idx)[resultWord]
				r.resolved[resultID] = variableResolution
			}
			continue
		}

		res, err := r.fold(idx)
		if err != nil {
			return err
		}
		if has, resultWord := analyzer.HasResult(op); has {
			resultID := r.currentWords(idx)[resultWord]
			r.resolved[resultID] = res
		}
	}
	return nil
}
