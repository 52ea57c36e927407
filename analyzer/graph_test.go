package analyzer

import "testing"

// adjacentTargets collects every target ForEachAdjacent would report
// for idx, restricted to kinds, via the low-level arena fields so graph
// tests stay independent of the ForEachAdjacent helper under test
// elsewhere.
func adjacentTargets(shader *ParsedShader, idx uint32, kind EdgeKind) []uint32 {
	var out []uint32
	for node := shader.Instrs[idx].AdjHead; node != NoIndex; node = shader.Arena[node].Next {
		n := shader.Arena[node]
		if n.Kind == kind {
			out = append(out, n.Target)
		}
	}
	return out
}

func TestBuildGraphDataEdges(t *testing.T) {
	// id1 = i32 type, id2 = constant 7 of that type, id3 = OpNot id2.
	data := buildModule(4,
		ins(OpTypeInt, 1, 32, 1),
		ins(OpConstant, 1, 2, 7),
		ins(OpNot, 1, 3, 2),
	)
	shader, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	typeInstr := shader.ResultInstr[1]
	constInstr := shader.ResultInstr[2]
	notInstr := shader.ResultInstr[3]

	// OpConstant's result-type edge: type -> constant.
	targets := adjacentTargets(shader, typeInstr, EdgeData)
	if !containsU32(targets, constInstr) {
		t.Errorf("type instr %d has no EdgeData to constant instr %d; got %v", typeInstr, constInstr, targets)
	}

	// OpNot's id-operand edge: constant -> not.
	targets = adjacentTargets(shader, constInstr, EdgeData)
	if !containsU32(targets, notInstr) {
		t.Errorf("constant instr %d has no EdgeData to OpNot instr %d; got %v", constInstr, notInstr, targets)
	}
}

func TestBuildGraphLabelEdges(t *testing.T) {
	// A function with an unconditional branch entry -> merge.
	data := buildModule(6,
		ins(OpTypeVoid, 1),
		ins(OpTypeFunction, 2, 1),
		ins(OpFunction, 1, 3, 0, 2),
		ins(OpLabel, 4),
		ins(OpBranch, 5),
		ins(OpLabel, 5),
		ins(OpReturn),
		ins(OpFunctionEnd),
	)
	shader, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var branchIdx, mergeLabelIdx uint32 = NoIndex, NoIndex
	for i, instr := range shader.Instrs {
		if instr.Opcode == OpBranch {
			branchIdx = uint32(i)
		}
	}
	mergeLabelIdx = shader.ResultInstr[5]

	targets := adjacentTargets(shader, branchIdx, EdgeLabel)
	if !containsU32(targets, mergeLabelIdx) {
		t.Errorf("OpBranch instr %d has no EdgeLabel to label instr %d; got %v", branchIdx, mergeLabelIdx, targets)
	}
}

func TestBuildGraphPhiParentEdge(t *testing.T) {
	// entry -> a (label 10), a -> merge (label 11) carrying a phi whose
	// sole predecessor is a (label 10).
	data := buildModule(12,
		ins(OpTypeVoid, 1),
		ins(OpTypeBool, 2),
		ins(OpTypeFunction, 3, 1),
		ins(OpConstantTrue, 2, 4),
		ins(OpFunction, 1, 5, 0, 3),
		ins(OpLabel, 10),
		ins(OpBranch, 11),
		ins(OpLabel, 11),
		ins(OpPhi, 2, 6, 4, 10),
		ins(OpReturn),
		ins(OpFunctionEnd),
	)
	shader, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	labelAIdx := shader.ResultInstr[10]
	var phiIdx uint32 = NoIndex
	for i, instr := range shader.Instrs {
		if instr.Opcode == OpPhi {
			phiIdx = uint32(i)
		}
	}
	if phiIdx == NoIndex {
		t.Fatal("OpPhi not found")
	}

	targets := adjacentTargets(shader, labelAIdx, EdgePhiParent)
	if !containsU32(targets, phiIdx) {
		t.Errorf("label instr %d has no EdgePhiParent to phi instr %d; got %v", labelAIdx, phiIdx, targets)
	}
}

func containsU32(s []uint32, v uint32) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
