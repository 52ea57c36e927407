package optimizer

import "github.com/gogpu/uberspec/analyzer"

// compactPhi packs idx's surviving (value, label) pairs to the front of
// its operand list, per spec.md §4.6: a pair survives only if its label
// half has not been nulled to the deletion sentinel (by reduceIn's
// predecessor-teardown) AND the predecessor block named by that label
// still actually terminates into idx's own enclosing block (a stale
// pair can otherwise linger if the predecessor was rewritten to target
// a different successor without ever losing the edge to this label).
//
// Dropped value operands are pushed through reduceOut, since the phi no
// longer consumes them. The freed tail is sentinel-filled and the word
// count shrunk. If zero pairs survive and the phi itself has no
// remaining consumers, it is deleted outright.
func (r *run) compactPhi(idx uint32) {
	words := r.currentWords(idx)
	ownLabelID := r.enclosingLabelID(idx)

	write := 3
	for read := 3; read+1 < len(words); read += 2 {
		valueID, labelID := words[read], words[read+1]
		if !r.phiPairSurvives(labelID, ownLabelID) {
			if producer, ok := r.idProducer(valueID); ok {
				r.reduceOut(producer)
			}
			continue
		}
		words[write], words[write+1] = valueID, labelID
		write += 2
	}

	for w := write; w < len(words); w++ {
		words[w] = deletionSentinel
	}
	setWordCount(words, uint16(write))

	if write == 3 && r.outDegree[idx] == 0 {
		r.markDeleted(idx)
	}
}

// phiPairSurvives reports whether a phi pair naming predecessor
// labelID is still live: labelID must not be the sentinel, its
// producing OpLabel must not be deleted, and that block's terminator
// must still target ownLabelID.
func (r *run) phiPairSurvives(labelID, ownLabelID uint32) bool {
	if labelID == deletionSentinel {
		return false
	}
	predIdx, ok := r.idProducer(labelID)
	if !ok || r.isDeleted(predIdx) {
		return false
	}
	termIdx, ok := r.terminatorOf[predIdx]
	if !ok || r.isDeleted(termIdx) {
		return false
	}
	for _, t := range r.terminatorTargets(termIdx) {
		if t == ownLabelID {
			return true
		}
	}
	return false
}

// terminatorTargets returns the current label-id operands of
// termIdx's terminator instruction, reading the possibly-shrunk,
// possibly-rewritten current word view.
func (r *run) terminatorTargets(termIdx uint32) []uint32 {
	words := r.currentWords(termIdx)
	var out []uint32
	for _, w := range analyzer.LabelOperandWords(analyzer.OpCode(words[0]&0xFFFF), words) {
		out = append(out, words[w])
	}
	return out
}
