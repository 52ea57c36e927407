package analyzer

// NoIndex marks an instruction-, result-, or list-node index field
// that does not apply (absent result, end of an adjacency list, no
// recorded default integer constant, and so on).
const NoIndex = ^uint32(0)

// EdgeKind discriminates the payload of an adjacency-list node,
// matching spec.md §9's "two views of the graph sharing one reducer
// infrastructure" note.
type EdgeKind uint8

const (
	// EdgeData marks a producer → consumer value edge (operand or
	// result-type reference).
	EdgeData EdgeKind = iota
	// EdgeLabel marks a terminator → successor-label edge.
	EdgeLabel
	// EdgePhiParent marks a predecessor-label → OpPhi edge (spec.md
	// §4.2 rule 4).
	EdgePhiParent
)

// ListNode is one cell of the shared adjacency-list arena: "Instruction
// A is adjacent to instruction B" is recorded as a node attached to
// A's list with Target == B.
type ListNode struct {
	Target uint32
	Kind   EdgeKind
	Next   uint32
}

// Instruction is one decode-order record: its opcode, the word offset
// of its leading word within Words, its word count, and the head of
// its forward adjacency list.
type Instruction struct {
	Opcode     OpCode
	WordOffset uint32
	WordCount  uint16
	AdjHead    uint32
}

// Words returns the instruction's own word slice view into words,
// which must be the ParsedShader's (or a working copy's) Words slice.
func (in Instruction) Words(words []uint32) []uint32 {
	return words[in.WordOffset : in.WordOffset+uint32(in.WordCount)]
}

// Decoration is one OpDecorate/OpMemberDecorate record.
type Decoration struct {
	InstrIndex uint32 // the decoration instruction itself
	TargetID   uint32 // the id it decorates
	IsSpecID   bool
	SpecID     uint32
}

// SpecEntry is one row of the specialization table, indexed by SpecId.
type SpecEntry struct {
	SpecID      uint32
	TargetInstr uint32 // instruction index of the SpecConstant* target
	DecorInstr  uint32 // instruction index of the OpDecorate SpecId
}

// Header holds the 5-word SPIR-V module header.
type Header struct {
	Magic     uint32
	Version   uint32
	Generator uint32
	IDBound   uint32
	Schema    uint32
}

// ParsedShader is the reusable product of a single decode: the word
// stream, instruction/result/decoration/specialization tables, the
// adjacency arena, degree vectors, and topological order. It is built
// once and is read-only and safe to share across concurrent Optimizer
// runs (spec.md §5); every run clones Words/InDegree/OutDegree into a
// private working copy before mutating anything.
type ParsedShader struct {
	Header Header
	Words  []uint32

	Instrs      []Instruction
	ResultInstr []uint32 // indexed by result id; NoIndex if unproduced

	Decorations []Decoration
	SpecByID    map[uint32]SpecEntry

	// DefaultIntConst is the instruction index of the first OpConstant
	// of 32-bit OpTypeInt observed during decoding, or NoIndex.
	DefaultIntConst uint32

	Arena []ListNode

	InDegree  []uint32
	OutDegree []uint32

	// TopoOrder lists instruction indices in the order the Optimizer
	// walks them: dependency-respecting, ties broken by decode index.
	TopoOrder []uint32
}

// Parse decodes a SPIR-V module and builds its graph, degrees, and
// topological order. The returned ParsedShader is immutable; a failed
// parse discards all partial state (spec.md §7).
func Parse(data []byte) (*ParsedShader, error) {
	shader, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := buildGraph(shader); err != nil {
		return nil, err
	}
	computeDegreesAndOrder(shader)
	return shader, nil
}

// SpecConstantInfo describes one enumerated specialization constant:
// its SpecId and default payload words, for caller inspection
// (spec.md §6 "parsed.spec_constants()").
type SpecConstantInfo struct {
	SpecID  uint32
	Default []uint32
}

// SpecConstants enumerates every specialization constant this shader
// declares, in ascending SpecId order.
func (p *ParsedShader) SpecConstants() []SpecConstantInfo {
	out := make([]SpecConstantInfo, 0, len(p.SpecByID))
	for _, entry := range p.SpecByID {
		instr := p.Instrs[entry.TargetInstr]
		words := instr.Words(p.Words)
		var def []uint32
		switch instr.Opcode {
		case OpSpecConstantTrue:
			def = []uint32{1}
		case OpSpecConstantFalse:
			def = []uint32{0}
		case OpSpecConstant:
			def = append([]uint32(nil), words[3:]...)
		}
		out = append(out, SpecConstantInfo{SpecID: entry.SpecID, Default: def})
	}
	sortSpecConstants(out)
	return out
}

func sortSpecConstants(s []SpecConstantInfo) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1].SpecID > s[j].SpecID; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
