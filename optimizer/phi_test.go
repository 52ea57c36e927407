package optimizer

import (
	"testing"

	"github.com/gogpu/uberspec/analyzer"
)

// buildPhiModule builds: entry branches to a (20) and b (21), both of
// which branch to merge (22); merge has a phi with pairs (value from a
// =100, label a=20) and (value from b=101, label b=21).
func buildPhiModule() []byte {
	return buildModule(110,
		ins(analyzer.OpTypeVoid, 1),
		ins(analyzer.OpTypeBool, 2),
		ins(analyzer.OpTypeInt, 3, 32, 0),
		ins(analyzer.OpTypeFunction, 4, 1),
		ins(analyzer.OpConstantTrue, 2, 5),
		ins(analyzer.OpConstant, 3, 100, 10),
		ins(analyzer.OpConstant, 3, 101, 20),
		ins(analyzer.OpFunction, 1, 6, 0, 4),
		ins(analyzer.OpLabel, 7),
		ins(analyzer.OpBranchConditional, 5, 20, 21),
		ins(analyzer.OpLabel, 20),
		ins(analyzer.OpBranch, 22),
		ins(analyzer.OpLabel, 21),
		ins(analyzer.OpBranch, 22),
		ins(analyzer.OpLabel, 22),
		ins(analyzer.OpPhi, 3, 23, 100, 20, 101, 21),
		ins(analyzer.OpReturnValue, 23),
		ins(analyzer.OpFunctionEnd),
	)
}

func TestCompactPhiDropsDeadPredecessor(t *testing.T) {
	shader := mustParse(t, buildPhiModule())
	r := newRun(shader)

	var phiIdx, labelAIdx uint32
	for i, instr := range shader.Instrs {
		if instr.Opcode == analyzer.OpPhi {
			phiIdx = uint32(i)
		}
	}
	labelAIdx = shader.ResultInstr[20]

	// Simulate branch-a having been torn down: null out its phi pair
	// the way reduceIn/tearDownBlock would.
	r.nullPhiPairsFrom(labelAIdx, 20)
	r.compactPhi(phiIdx)

	words := r.currentWords(phiIdx)
	if len(words) != 5 {
		t.Fatalf("compacted phi has %d words, want 5 (one surviving pair)", len(words))
	}
	if words[3] != 101 || words[4] != 21 {
		t.Errorf("surviving pair = (%d, %d), want (101, 21)", words[3], words[4])
	}
}

func TestCompactPhiDeletesWhenEmptyAndUnused(t *testing.T) {
	shader := mustParse(t, buildPhiModule())
	r := newRun(shader)

	var phiIdx uint32
	for i, instr := range shader.Instrs {
		if instr.Opcode == analyzer.OpPhi {
			phiIdx = uint32(i)
		}
	}
	r.outDegree[phiIdx] = 0
	r.nullPhiPairsFrom(shader.ResultInstr[20], 20)
	r.nullPhiPairsFrom(shader.ResultInstr[21], 21)
	r.compactPhi(phiIdx)

	if !r.isDeleted(phiIdx) {
		t.Error("phi with zero surviving pairs and zero out-degree should be deleted")
	}
}

func TestCompactPhiSurvivesWithOutDegree(t *testing.T) {
	shader := mustParse(t, buildPhiModule())
	r := newRun(shader)

	var phiIdx uint32
	for i, instr := range shader.Instrs {
		if instr.Opcode == analyzer.OpPhi {
			phiIdx = uint32(i)
		}
	}
	r.outDegree[phiIdx] = 1 // OpReturnValue still consumes it
	r.nullPhiPairsFrom(shader.ResultInstr[20], 20)
	r.nullPhiPairsFrom(shader.ResultInstr[21], 21)
	r.compactPhi(phiIdx)

	if r.isDeleted(phiIdx) {
		t.Error("phi with a live consumer should survive even with zero pairs")
	}
	if r.currentWordCount(phiIdx) != 3 {
		t.Errorf("empty phi word count = %d, want 3 (type+result only)", r.currentWordCount(phiIdx))
	}
}
