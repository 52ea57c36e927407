package analyzer

// idRef describes one id-operand word within an instruction, relative
// to the instruction's own leading word (index 0).
type idRef struct {
	start  int // word index of the first id in this group
	count  int // number of ids, or -1 for "until word count"
	stride int // words between successive ids in this group
}

// IDOperandWords returns the word indices (relative to the
// instruction's own leading word) of every id-reference operand, per
// spec.md §4.2 rule 2. Label and result-type operands are excluded;
// see LabelOperandWords and HasResultType.
func IDOperandWords(op OpCode, words []uint32) []int {
	n := len(words)
	refs := idOperandLayout(op, words)
	var out []int
	for _, r := range refs {
		count := r.count
		if count < 0 {
			for w := r.start; w < n; w += r.stride {
				out = append(out, w)
			}
			continue
		}
		for i := 0; i < count; i++ {
			w := r.start + i*r.stride
			if w >= n {
				break
			}
			out = append(out, w)
		}
	}
	return out
}

// LabelOperandWords returns the word indices (relative to the
// instruction's own leading word) of every label-reference operand,
// per spec.md §4.2 rule 3.
func LabelOperandWords(op OpCode, words []uint32) []int {
	n := len(words)
	switch op {
	case OpBranch:
		return clampIndices([]int{1}, n)
	case OpBranchConditional:
		return clampIndices([]int{2, 3}, n)
	case OpSwitch:
		// word1=selector(id), word2=default label, then (literal, label) pairs.
		out := []int{2}
		for w := 4; w < n; w += 2 {
			out = append(out, w)
		}
		return out
	case OpSelectionMerge:
		return clampIndices([]int{1}, n)
	case OpLoopMerge:
		return clampIndices([]int{1, 2}, n)
	default:
		return nil
	}
}

// PhiParentWords returns the word indices of an OpPhi's label operands
// (the predecessor-block half of each (value, label) pair), used by
// the graph builder's rule 4 to add a parent-label edge distinct from
// the value edge rule 2 already covers.
func PhiParentWords(words []uint32) []int {
	n := len(words)
	var out []int
	for w := 4; w < n; w += 2 {
		out = append(out, w)
	}
	return out
}

func clampIndices(idx []int, n int) []int {
	out := idx[:0:0]
	for _, w := range idx {
		if w < n {
			out = append(out, w)
		}
	}
	return out
}

// idOperandLayout gives the per-opcode id-operand groups, excluding
// the result-type operand (handled separately via HasResultType) and
// excluding label operands (handled via LabelOperandWords). Opcodes
// not listed carry no id operands beyond their own result.
func idOperandLayout(op OpCode, words []uint32) []idRef {
	switch op {
	case OpExtInstImport:
		return nil // result id only, then a literal string
	case OpExtInst:
		// word1=result type, word2=result, word3=set id, word4=instruction literal, word5..=operand ids
		return []idRef{{start: 3, count: 1, stride: 1}, {start: 5, count: -1, stride: 1}}
	case OpName:
		return []idRef{{start: 1, count: 1, stride: 1}}
	case OpMemberName:
		return []idRef{{start: 1, count: 1, stride: 1}}
	case OpEntryPoint:
		// word1=exec model literal, word2=function id, word3..=name string, then interface ids.
		nameStart := 3
		strWords := stringWordLen(words, nameStart)
		return []idRef{{start: 2, count: 1, stride: 1}, {start: nameStart + strWords, count: -1, stride: 1}}
	case OpExecutionMode:
		return []idRef{{start: 1, count: 1, stride: 1}}
	case OpTypeVector, OpTypeSampledImage:
		return []idRef{{start: 2, count: 1, stride: 1}}
	case OpTypeMatrix:
		return []idRef{{start: 2, count: 1, stride: 1}}
	case OpTypeArray:
		return []idRef{{start: 2, count: 2, stride: 1}}
	case OpTypeRuntimeArray:
		return []idRef{{start: 2, count: 1, stride: 1}}
	case OpTypePointer:
		return []idRef{{start: 3, count: 1, stride: 1}}
	case OpTypeFunction:
		return []idRef{{start: 2, count: -1, stride: 1}}
	case OpTypeStruct:
		return []idRef{{start: 2, count: -1, stride: 1}}
	case OpTypeImage:
		return []idRef{{start: 2, count: 1, stride: 1}}
	case OpConstantComposite, OpSpecConstantComposite:
		return []idRef{{start: 3, count: -1, stride: 1}}
	case OpFunction:
		// word1=return type (handled as result type), word3=function control literal, word4=function type id.
		return []idRef{{start: 4, count: 1, stride: 1}}
	case OpFunctionCall:
		return []idRef{{start: 3, count: -1, stride: 1}}
	case OpVariable:
		if len(words) > 4 {
			return []idRef{{start: 4, count: 1, stride: 1}}
		}
		return nil
	case OpLoad:
		return []idRef{{start: 3, count: 1, stride: 1}}
	case OpStore:
		return []idRef{{start: 1, count: 2, stride: 1}}
	case OpAccessChain, OpInBoundsAccessChain:
		return []idRef{{start: 3, count: 1, stride: 1}, {start: 4, count: -1, stride: 1}}
	case OpDecorate:
		return []idRef{{start: 1, count: 1, stride: 1}}
	case OpMemberDecorate:
		return []idRef{{start: 1, count: 1, stride: 1}}
	case OpVectorShuffle:
		return []idRef{{start: 3, count: 2, stride: 1}}
	case OpCompositeConstruct:
		return []idRef{{start: 3, count: -1, stride: 1}}
	case OpCompositeExtract:
		return []idRef{{start: 3, count: 1, stride: 1}}
	case OpCompositeInsert:
		return []idRef{{start: 3, count: 2, stride: 1}}
	case OpSampledImage:
		return []idRef{{start: 3, count: 2, stride: 1}}
	case OpImageSampleImplicitLod, OpImageSampleExplicitLod, OpImageFetch, OpImageRead:
		return []idRef{{start: 3, count: 2, stride: 1}, {start: 6, count: -1, stride: 1}}
	case OpImageWrite:
		return []idRef{{start: 1, count: 3, stride: 1}, {start: 5, count: -1, stride: 1}}
	case OpBitcast, OpLogicalNot, OpNot:
		return []idRef{{start: 3, count: 1, stride: 1}}
	case OpIAdd, OpISub, OpIMul, OpUDiv, OpSDiv,
		OpLogicalEqual, OpLogicalNotEqual, OpLogicalOr, OpLogicalAnd,
		OpIEqual, OpINotEqual,
		OpUGreaterThan, OpSGreaterThan, OpUGreaterThanEqual, OpSGreaterThanEqual,
		OpULessThan, OpSLessThan, OpULessThanEqual, OpSLessThanEqual,
		OpShiftRightLogical, OpShiftRightArithmetic, OpShiftLeftLogical,
		OpBitwiseOr, OpBitwiseXor, OpBitwiseAnd:
		return []idRef{{start: 3, count: 2, stride: 1}}
	case OpSelect:
		return []idRef{{start: 3, count: 3, stride: 1}}
	case OpPhi:
		// (value, label) pairs starting at word 3; only the value half
		// is a plain id operand. The label half is rule 4, PhiParentWords.
		return []idRef{{start: 3, count: -1, stride: 2}}
	case OpBranchConditional:
		return []idRef{{start: 1, count: 1, stride: 1}}
	case OpSwitch:
		return []idRef{{start: 1, count: 1, stride: 1}}
	case OpReturnValue:
		return []idRef{{start: 1, count: 1, stride: 1}}
	default:
		return nil
	}
}

// stringWordLen returns the number of words a null-terminated string
// occupies starting at word index start within words.
func stringWordLen(words []uint32, start int) int {
	for w := start; w < len(words); w++ {
		word := words[w]
		for shift := 0; shift < 32; shift += 8 {
			if byte(word>>shift) == 0 {
				return w - start + 1
			}
		}
	}
	return len(words) - start
}
