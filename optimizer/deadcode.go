package optimizer

import "github.com/gogpu/uberspec/analyzer"

// reduceOut cascades a data-edge deletion: idx has just lost a consumer
// (or is itself being deleted), so its out-degree drops by one; once it
// reaches zero the instruction is dead and its own operands are pushed
// onto the same cascade (spec.md §4.7 "reduceOut").
//
// isDeleted is checked before any decrement so a second cascade path
// reaching an already-torn-down instruction is a no-op, not a double
// decrement.
func (r *run) reduceOut(idx uint32) {
	stack := []uint32{idx}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		if r.isDeleted(cur) {
			continue
		}
		if r.outDegree[cur] > 0 {
			r.outDegree[cur]--
		}
		if r.outDegree[cur] != 0 {
			continue
		}
		if r.shader.Instrs[cur].Opcode == analyzer.OpLabel {
			// A block's entry label never dies from data-edge
			// starvation; only tearDownBlock retires it.
			continue
		}

		r.markDeleted(cur)
		for _, id := range analyzer.IDOperandWords(r.shader.Instrs[cur].Opcode, r.slotWords(cur)) {
			operandID := r.slotWords(cur)[id]
			producer, ok := r.idProducer(operandID)
			if ok {
				stack = append(stack, producer)
			}
		}
	}
}

// reduceIn cascades a control-edge deletion: a branch into label no
// longer exists, so label's in-degree drops by one; once it reaches
// zero the block is unreachable and is torn down entirely (spec.md
// §4.7 "reduceIn").
func (r *run) reduceIn(labelIdx uint32) {
	if r.inDegree[labelIdx] > 0 {
		r.inDegree[labelIdx]--
	}
	if r.inDegree[labelIdx] != 0 {
		return
	}
	r.tearDownBlock(labelIdx)
}

// tearDownBlock deletes every instruction in the block headed by
// labelIdx, nulls this block's entry out of any phi in a successor
// block that lists it as a predecessor, and recurses into reduceIn for
// any label this block's terminator branched to (since those successor
// blocks just lost an incoming edge).
func (r *run) tearDownBlock(labelIdx uint32) {
	if r.isDeleted(labelIdx) {
		return
	}
	labelID := r.slotWords(labelIdx)[1]

	term, hasTerm := r.terminatorOf[labelIdx]

	var successors []uint32
	if hasTerm && !r.isDeleted(term) {
		successors = r.terminatorTargets(term)
	}

	for i := labelIdx; !hasTerm || i <= term; i++ {
		if i >= uint32(len(r.shader.Instrs)) {
			break
		}
		if r.shader.Instrs[i].Opcode == analyzer.OpLabel && i != labelIdx {
			break
		}
		if !r.isDeleted(i) {
			r.markDeleted(i)
			for _, w := range analyzer.IDOperandWords(r.shader.Instrs[i].Opcode, r.slotWords(i)) {
				operandID := r.slotWords(i)[w]
				if producer, ok := r.idProducer(operandID); ok {
					r.reduceOut(producer)
				}
			}
		}
		if hasTerm && i == term {
			break
		}
	}

	r.nullPhiPairsFrom(labelIdx, labelID)

	for _, succLabelID := range successors {
		if succIdx, ok := r.idProducer(succLabelID); ok {
			r.reduceIn(succIdx)
		}
	}
}

// nullPhiPairsFrom nulls (sets to deletionSentinel) the label half of
// any OpPhi pair whose predecessor is deadLabelID, so compactPhi later
// drops that pair without reading a dangling predecessor. It walks the
// EdgePhiParent arm of deadLabelIdx's arena list — built once at graph
// time (graph.go's addEdge(shader, parent, index, EdgePhiParent)) — to
// reach exactly the phis that ever named this label as a predecessor,
// instead of scanning every instruction in the module.
func (r *run) nullPhiPairsFrom(deadLabelIdx, deadLabelID uint32) {
	r.shader.ForEachAdjacent(deadLabelIdx, []analyzer.EdgeKind{analyzer.EdgePhiParent}, func(phiIdx uint32, _ analyzer.EdgeKind) {
		if r.isDeleted(phiIdx) {
			return
		}
		words := r.currentWords(phiIdx)
		for w := 4; w < len(words); w += 2 {
			if words[w] == deadLabelID {
				words[w] = deletionSentinel
			}
		}
	})
}
