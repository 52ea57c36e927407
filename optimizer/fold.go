package optimizer

import (
	"github.com/gogpu/uberspec/analyzer"
	"github.com/gogpu/uberspec/uerrors"
)

// foldableOpcodes is the closed set spec.md §4.5 evaluates directly.
// Every other result-producing opcode is marked Variable.
var foldableOpcodes = map[analyzer.OpCode]bool{
	analyzer.OpConstant: true, analyzer.OpConstantTrue: true, analyzer.OpConstantFalse: true,
	analyzer.OpBitcast: true,
	analyzer.OpIAdd:    true, analyzer.OpISub: true, analyzer.OpIMul: true, analyzer.OpUDiv: true, analyzer.OpSDiv: true,
	analyzer.OpIEqual:  true, analyzer.OpINotEqual: true,
	analyzer.OpUGreaterThan: true, analyzer.OpUGreaterThanEqual: true,
	analyzer.OpULessThan:    true, analyzer.OpULessThanEqual: true,
	analyzer.OpSGreaterThan: true, analyzer.OpSGreaterThanEqual: true,
	analyzer.OpSLessThan:    true, analyzer.OpSLessThanEqual: true,
	analyzer.OpLogicalEqual: true, analyzer.OpLogicalNotEqual: true,
	analyzer.OpLogicalOr: true, analyzer.OpLogicalAnd: true, analyzer.OpLogicalNot: true,
	analyzer.OpSelect: true,
	analyzer.OpShiftLeftLogical: true, analyzer.OpShiftRightLogical: true, analyzer.OpShiftRightArithmetic: true,
	analyzer.OpBitwiseOr: true, analyzer.OpBitwiseAnd: true, analyzer.OpBitwiseXor: true, analyzer.OpNot: true,
	analyzer.OpPhi: true,
}

// fold computes idx's resolution per spec.md §4.5's foldable-opcode
// semantics table. An OpPhi's pairs must already be compacted (§4.6)
// by the caller before this runs.
func (r *run) fold(idx uint32) (resolution, error) {
	words := r.currentWords(idx)
	op := analyzer.OpCode(words[0] & 0xFFFF)

	switch op {
	case analyzer.OpConstant:
		typeID := words[1]
		if !r.shader.IsThirtyTwoBitIntType(typeID) {
			return variableResolution, nil
		}
		if r.shader.IntSignedness(typeID) {
			return constI32(int32(words[3])), nil
		}
		return constU32(words[3]), nil

	case analyzer.OpConstantTrue:
		return constBool(true), nil
	case analyzer.OpConstantFalse:
		return constBool(false), nil

	case analyzer.OpBitcast:
		return r.passThrough(words[3])

	case analyzer.OpNot:
		a, err := r.operand(words[3])
		if err != nil || a.isVariable() {
			return a, err
		}
		return constU32(^a.u32()), nil

	case analyzer.OpLogicalNot:
		a, err := r.operand(words[3])
		if err != nil || a.isVariable() {
			return a, err
		}
		return constBool(!boolOf(a)), nil

	case analyzer.OpIAdd, analyzer.OpISub, analyzer.OpIMul, analyzer.OpUDiv, analyzer.OpSDiv,
		analyzer.OpIEqual, analyzer.OpINotEqual,
		analyzer.OpUGreaterThan, analyzer.OpUGreaterThanEqual, analyzer.OpULessThan, analyzer.OpULessThanEqual,
		analyzer.OpSGreaterThan, analyzer.OpSGreaterThanEqual, analyzer.OpSLessThan, analyzer.OpSLessThanEqual,
		analyzer.OpLogicalEqual, analyzer.OpLogicalNotEqual, analyzer.OpLogicalOr, analyzer.OpLogicalAnd,
		analyzer.OpShiftLeftLogical, analyzer.OpShiftRightLogical, analyzer.OpShiftRightArithmetic,
		analyzer.OpBitwiseOr, analyzer.OpBitwiseAnd, analyzer.OpBitwiseXor:
		a, err := r.operand(words[3])
		if err != nil {
			return resolution{}, err
		}
		b, err := r.operand(words[4])
		if err != nil {
			return resolution{}, err
		}
		if a.isVariable() || b.isVariable() {
			return variableResolution, nil
		}
		return foldBinary(op, a, b), nil

	case analyzer.OpSelect:
		cond, err := r.operand(words[3])
		if err != nil {
			return resolution{}, err
		}
		if cond.isVariable() {
			return variableResolution, nil
		}
		if boolOf(cond) {
			return r.operand(words[4])
		}
		return r.operand(words[5])

	case analyzer.OpPhi:
		if r.currentWordCount(idx) != 5 {
			return variableResolution, nil
		}
		return r.operand(words[3])
	}
	return variableResolution, nil
}

func (r *run) operand(id uint32) (resolution, error) {
	res := r.resolved[id]
	if res.isUnknown() {
		return resolution{}, uerrors.WithID(uerrors.ErrResolutionOrder, id, "operand not yet resolved during evaluation")
	}
	return res, nil
}

func (r *run) passThrough(id uint32) (resolution, error) {
	res, err := r.operand(id)
	if err != nil || res.isVariable() {
		return res, err
	}
	return constU32(res.u32()), nil
}

func boolOf(r resolution) bool {
	if r.kind == resConstBool {
		return r.boolean()
	}
	return r.u32() != 0
}

func foldBinary(op analyzer.OpCode, a, b resolution) resolution {
	switch op {
	case analyzer.OpIAdd:
		return constU32(a.u32() + b.u32())
	case analyzer.OpISub:
		return constU32(a.u32() - b.u32())
	case analyzer.OpIMul:
		return constU32(a.u32() * b.u32())
	case analyzer.OpUDiv:
		if b.u32() == 0 {
			return constU32(0)
		}
		return constU32(a.u32() / b.u32())
	case analyzer.OpSDiv:
		if b.i32() == 0 {
			return constI32(0)
		}
		return constI32(a.i32() / b.i32())
	case analyzer.OpIEqual:
		return constBool(a.u32() == b.u32())
	case analyzer.OpINotEqual:
		return constBool(a.u32() != b.u32())
	case analyzer.OpUGreaterThan:
		return constBool(a.u32() > b.u32())
	case analyzer.OpUGreaterThanEqual:
		return constBool(a.u32() >= b.u32())
	case analyzer.OpULessThan:
		return constBool(a.u32() < b.u32())
	case analyzer.OpULessThanEqual:
		return constBool(a.u32() <= b.u32())
	case analyzer.OpSGreaterThan:
		return constBool(a.i32() > b.i32())
	case analyzer.OpSGreaterThanEqual:
		return constBool(a.i32() >= b.i32())
	case analyzer.OpSLessThan:
		return constBool(a.i32() < b.i32())
	case analyzer.OpSLessThanEqual:
		return constBool(a.i32() <= b.i32())
	case analyzer.OpLogicalEqual:
		return constBool(boolOf(a) == boolOf(b))
	case analyzer.OpLogicalNotEqual:
		return constBool(boolOf(a) != boolOf(b))
	case analyzer.OpLogicalOr:
		return constBool(boolOf(a) || boolOf(b))
	case analyzer.OpLogicalAnd:
		return constBool(boolOf(a) && boolOf(b))
	case analyzer.OpShiftLeftLogical:
		return constU32(a.u32() << (b.u32() & 31))
	case analyzer.OpShiftRightLogical:
		return constU32(a.u32() >> (b.u32() & 31))
	case analyzer.OpShiftRightArithmetic:
		return constI32(a.i32() >> (b.u32() & 31))
	case analyzer.OpBitwiseOr:
		return constU32(a.u32() | b.u32())
	case analyzer.OpBitwiseAnd:
		return constU32(a.u32() & b.u32())
	case analyzer.OpBitwiseXor:
		return constU32(a.u32() ^ b.u32())
	}
	return variableResolution
}
