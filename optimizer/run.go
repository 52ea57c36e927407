package optimizer

import (
	"github.com/gogpu/uberspec/analyzer"
)

// deletionSentinel overwrites an instruction's leading word to mark it
// logically deleted (spec.md §3 lifecycle).
const deletionSentinel = ^uint32(0)

// SpecValue is one caller-provided specialization assignment: the
// SpecId and its replacement payload words.
type SpecValue struct {
	SpecID uint32
	Values []uint32
}

// Options configures a single Run.
type Options struct {
	// StripDebugInstructions removes OpSource/OpName/OpMemberName from
	// the serialized output.
	StripDebugInstructions bool
}

// run is the per-specialization mutable working state spec.md §4.4
// describes: a clone of the word buffer and degree vectors, plus a
// resolution vector sized to the id-bound. It is never shared across
// concurrent Optimize calls.
type run struct {
	shader *analyzer.ParsedShader

	words     []uint32
	inDegree  []uint32
	outDegree []uint32
	resolved  []resolution

	// blockLabel maps an instruction index to the instruction index of
	// the OpLabel that starts its enclosing block, or analyzer.NoIndex
	// for instructions outside any block (types, constants, globals,
	// function/parameter scaffolding).
	blockLabel []uint32

	// terminatorOf maps an OpLabel instruction index to its block's
	// terminator instruction index.
	terminatorOf map[uint32]uint32
}

// Run specializes shader against values and serializes the patched,
// folded, and dead-code-swept module, per spec.md §4.4–§4.9.
func Run(shader *analyzer.ParsedShader, values []SpecValue, opts Options) ([]byte, error) {
	r := newRun(shader)

	if err := r.patchSpecConstants(values); err != nil {
		return nil, err
	}
	if err := r.evaluate(); err != nil {
		return nil, err
	}
	r.cleanupDecorations()
	r.recompactAllPhis()

	return r.serialize(opts), nil
}

func newRun(shader *analyzer.ParsedShader) *run {
	words := make([]uint32, len(shader.Words))
	copy(words, shader.Words)

	inDegree := make([]uint32, len(shader.InDegree))
	copy(inDegree, shader.InDegree)
	outDegree := make([]uint32, len(shader.OutDegree))
	copy(outDegree, shader.OutDegree)

	resolved := make([]resolution, len(shader.ResultInstr))

	r := &run{
		shader:    shader,
		words:     words,
		inDegree:  inDegree,
		outDegree: outDegree,
		resolved:  resolved,
	}
	r.buildBlockLabels()
	return r
}

func (r *run) buildBlockLabels() {
	r.blockLabel = make([]uint32, len(r.shader.Instrs))
	r.terminatorOf = make(map[uint32]uint32)
	current := analyzer.NoIndex
	for i := range r.shader.Instrs {
		if r.shader.Instrs[i].Opcode == analyzer.OpLabel {
			current = uint32(i)
		}
		r.blockLabel[i] = current
		if analyzer.IsTerminator(r.shader.Instrs[i].Opcode) {
			if current != analyzer.NoIndex {
				r.terminatorOf[current] = uint32(i)
			}
			current = analyzer.NoIndex
		}
	}
}

// idProducer resolves id to the instruction index that produces it.
func (r *run) idProducer(id uint32) (uint32, bool) {
	if int(id) >= len(r.shader.ResultInstr) {
		return 0, false
	}
	idx := r.shader.ResultInstr[id]
	if idx == analyzer.NoIndex {
		return 0, false
	}
	return idx, true
}

// enclosingLabelID returns the SPIR-V id of the OpLabel that starts
// idx's enclosing block.
func (r *run) enclosingLabelID(idx uint32) uint32 {
	return r.slotWords(r.blockLabel[idx])[1]
}

// constantResultID returns the result id an OpConstant instruction produces.
func (r *run) constantResultID(instrIdx uint32) uint32 {
	return r.slotWords(instrIdx)[2]
}

// isDeleted reports whether idx's leading word is the deletion sentinel.
func (r *run) isDeleted(idx uint32) bool {
	return r.words[r.shader.Instrs[idx].WordOffset] == deletionSentinel
}

func (r *run) markDeleted(idx uint32) {
	r.words[r.shader.Instrs[idx].WordOffset] = deletionSentinel
}

// slotWords returns the full reserved word range for idx (the original
// decode-time word count), regardless of any later in-place rewrite
// that shrank its logical word count.
func (r *run) slotWords(idx uint32) []uint32 {
	return r.shader.Instrs[idx].Words(r.words)
}

// currentWordCount returns the word count currently encoded in idx's
// leading word, which may be smaller than its original slot after a
// phi compaction or terminator rewrite.
func (r *run) currentWordCount(idx uint32) uint16 {
	return uint16(r.words[r.shader.Instrs[idx].WordOffset] >> 16)
}

// currentWords returns the logical (possibly shrunk) word range for idx.
func (r *run) currentWords(idx uint32) []uint32 {
	full := r.slotWords(idx)
	return full[:r.currentWordCount(idx)]
}

func setWordCount(words []uint32, count uint16) {
	opcode := uint16(words[0])
	words[0] = uint32(count)<<16 | uint32(opcode)
}

func setOpcode(words []uint32, op analyzer.OpCode) {
	count := uint16(words[0] >> 16)
	words[0] = uint32(count)<<16 | uint32(op)
}
