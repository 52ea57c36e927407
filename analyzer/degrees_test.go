package analyzer

import "testing"

func TestComputeDegreesAndOrderSimpleChain(t *testing.T) {
	// id1 = i32 type, id2 = const 3, id3 = OpNot id2. A pure chain:
	// type -> const -> not, so degrees and topo order are unambiguous.
	data := buildModule(4,
		ins(OpTypeInt, 1, 32, 1),
		ins(OpConstant, 1, 2, 3),
		ins(OpNot, 1, 3, 2),
	)
	shader, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	typeIdx := shader.ResultInstr[1]
	constIdx := shader.ResultInstr[2]
	notIdx := shader.ResultInstr[3]

	if shader.OutDegree[typeIdx] == 0 {
		t.Error("type instruction should have nonzero out-degree (feeds the constant's result-type edge)")
	}
	if shader.InDegree[constIdx] == 0 {
		t.Error("constant instruction should have nonzero in-degree from its type")
	}
	if shader.OutDegree[constIdx] == 0 {
		t.Error("constant instruction should have nonzero out-degree (feeds OpNot's operand edge)")
	}
	if shader.InDegree[notIdx] == 0 {
		t.Error("OpNot instruction should have nonzero in-degree from its operand")
	}

	pos := make(map[uint32]int, len(shader.TopoOrder))
	for i, idx := range shader.TopoOrder {
		pos[idx] = i
	}
	if pos[typeIdx] >= pos[constIdx] {
		t.Errorf("topo order places type (pos %d) after constant (pos %d)", pos[typeIdx], pos[constIdx])
	}
	if pos[constIdx] >= pos[notIdx] {
		t.Errorf("topo order places constant (pos %d) after OpNot (pos %d)", pos[constIdx], pos[notIdx])
	}
}

func TestComputeDegreesAndOrderHandlesCycle(t *testing.T) {
	// A phi whose back-edge value depends on an add that (transitively)
	// consumes the phi's own result: a genuine cycle. The pass must
	// still terminate and place every instruction somewhere in TopoOrder.
	data := buildModule(10,
		ins(OpTypeVoid, 1),
		ins(OpTypeInt, 2, 32, 1),
		ins(OpTypeFunction, 3, 1),
		ins(OpConstant, 2, 4, 1),
		ins(OpFunction, 1, 5, 0, 3),
		ins(OpLabel, 6),
		ins(OpBranch, 7),
		ins(OpLabel, 7),
		ins(OpPhi, 2, 8, 4, 6, 9, 7),
		ins(OpIAdd, 2, 9, 8, 4),
		ins(OpBranch, 7),
		ins(OpReturn),
		ins(OpFunctionEnd),
	)
	shader, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(shader.TopoOrder) != len(shader.Instrs) {
		t.Fatalf("TopoOrder has %d entries, want %d", len(shader.TopoOrder), len(shader.Instrs))
	}
	seen := make(map[uint32]bool, len(shader.TopoOrder))
	for _, idx := range shader.TopoOrder {
		if seen[idx] {
			t.Fatalf("instruction %d appears twice in TopoOrder", idx)
		}
		seen[idx] = true
	}
}
