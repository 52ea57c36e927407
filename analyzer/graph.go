package analyzer

import "github.com/gogpu/uberspec/uerrors"

// buildGraph implements spec.md §4.2: for every instruction, add a
// result-type edge, generic id-operand edges, label edges, and (for
// OpPhi) parent-label edges. Edges are appended to the shared
// adjacency arena; each producer's Instrs[i].AdjHead threads its own
// forward list.
func buildGraph(shader *ParsedShader) error {
	for i := range shader.Instrs {
		instr := shader.Instrs[i]
		words := instr.Words(shader.Words)
		index := uint32(i)

		if HasResultType(instr.Opcode) {
			typeID := words[1]
			producer, err := lookupProducer(shader, typeID)
			if err != nil {
				return err
			}
			addEdge(shader, producer, index, EdgeData)
		}

		for _, w := range IDOperandWords(instr.Opcode, words) {
			id := words[w]
			producer, err := lookupProducer(shader, id)
			if err != nil {
				return err
			}
			addEdge(shader, producer, index, EdgeData)
		}

		for _, w := range LabelOperandWords(instr.Opcode, words) {
			labelID := words[w]
			target, err := lookupProducer(shader, labelID)
			if err != nil {
				return err
			}
			addEdge(shader, index, target, EdgeLabel)
		}

		if instr.Opcode == OpPhi {
			for _, w := range PhiParentWords(words) {
				labelID := words[w]
				parent, err := lookupProducer(shader, labelID)
				if err != nil {
					return err
				}
				addEdge(shader, parent, index, EdgePhiParent)
			}
		}
	}
	return nil
}

func lookupProducer(shader *ParsedShader, id uint32) (uint32, error) {
	if int(id) >= len(shader.ResultInstr) {
		return 0, uerrors.WithID(uerrors.ErrUndefinedID, id, "operand id exceeds the header's id-bound")
	}
	producer := shader.ResultInstr[id]
	if producer == NoIndex {
		return 0, uerrors.WithID(uerrors.ErrUndefinedID, id, "operand references an id with no producing instruction")
	}
	return producer, nil
}

func addEdge(shader *ParsedShader, from, to uint32, kind EdgeKind) {
	node := ListNode{Target: to, Kind: kind, Next: shader.Instrs[from].AdjHead}
	newIdx := uint32(len(shader.Arena))
	shader.Arena = append(shader.Arena, node)
	shader.Instrs[from].AdjHead = newIdx
}
