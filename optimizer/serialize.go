package optimizer

import (
	"encoding/binary"

	"github.com/gogpu/uberspec/analyzer"
)

// cleanupDecorations marks dead every decoration the Analyzer recorded
// whose target instruction is no longer alive, per spec.md §4.9 step 1.
func (r *run) cleanupDecorations() {
	for _, dec := range r.shader.Decorations {
		if r.isDeleted(dec.InstrIndex) {
			continue
		}
		targetIdx, ok := r.idProducer(dec.TargetID)
		if !ok || r.isDeleted(targetIdx) {
			r.markDeleted(dec.InstrIndex)
		}
	}
}

// recompactAllPhis re-runs compactPhi over every surviving OpPhi, as a
// final safety net: a predecessor block town down after evaluate's
// single topological walk already passed its phi may have left pairs
// nulled but not yet packed (spec.md §4.9 "the phi is fully compacted
// later... or by the serializer").
func (r *run) recompactAllPhis() {
	for i := range r.shader.Instrs {
		idx := uint32(i)
		if r.shader.Instrs[i].Opcode == analyzer.OpPhi && !r.isDeleted(idx) {
			r.compactPhi(idx)
		}
	}
}

// serialize compacts the working word buffer into the final module
// bytes, skipping deleted instructions and, if requested, debug
// instructions, per spec.md §4.9 step 2.
func (r *run) serialize(opts Options) []byte {
	out := make([]uint32, 5, len(r.words))
	out[0] = r.shader.Header.Magic
	out[1] = r.shader.Header.Version
	out[2] = r.shader.Header.Generator
	out[3] = r.shader.Header.IDBound
	out[4] = r.shader.Header.Schema

	for i := range r.shader.Instrs {
		idx := uint32(i)
		if r.isDeleted(idx) {
			continue
		}
		if opts.StripDebugInstructions && analyzer.IsDebugInstruction(r.shader.Instrs[i].Opcode) {
			continue
		}
		out = append(out, r.currentWords(idx)...)
	}

	bytes := make([]byte, len(out)*4)
	for i, w := range out {
		binary.LittleEndian.PutUint32(bytes[i*4:], w)
	}
	return bytes
}
