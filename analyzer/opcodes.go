// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package analyzer decodes a SPIR-V module once: it parses the word
// stream, builds the instruction dependency graph, computes in/out
// degrees, and produces a topological order. The result is a
// ParsedShader that the optimizer package specializes repeatedly.
package analyzer

import "strconv"

// OpCode identifies a SPIR-V instruction's operation.
type OpCode uint16

// The closed set of opcodes this package understands. Values match the
// SPIR-V specification's fixed opcode numbering.
const (
	OpNop               OpCode = 0
	OpSource            OpCode = 3
	OpSourceExtension   OpCode = 4
	OpName              OpCode = 5
	OpMemberName        OpCode = 6
	OpExtension         OpCode = 10
	OpExtInstImport     OpCode = 11
	OpExtInst           OpCode = 12
	OpMemoryModel       OpCode = 14
	OpEntryPoint        OpCode = 15
	OpExecutionMode     OpCode = 16
	OpCapability        OpCode = 17
	OpTypeVoid          OpCode = 19
	OpTypeBool          OpCode = 20
	OpTypeInt           OpCode = 21
	OpTypeFloat         OpCode = 22
	OpTypeVector        OpCode = 23
	OpTypeMatrix        OpCode = 24
	OpTypeImage         OpCode = 25
	OpTypeSampler       OpCode = 26
	OpTypeSampledImage  OpCode = 27
	OpTypeArray         OpCode = 28
	OpTypeRuntimeArray  OpCode = 29
	OpTypeStruct        OpCode = 30
	OpTypePointer       OpCode = 32
	OpTypeFunction      OpCode = 33
	OpConstantTrue      OpCode = 41
	OpConstantFalse     OpCode = 42
	OpConstant          OpCode = 43
	OpConstantComposite OpCode = 44
	OpSpecConstantTrue  OpCode = 48
	OpSpecConstantFalse OpCode = 49
	OpSpecConstant      OpCode = 50
	// OpSpecConstantComposite and OpSpecConstantOp are recognized but
	// always rejected as an unsupported spec form (ErrInvalidSpecTarget):
	// see decode.go.
	OpSpecConstantComposite OpCode = 51
	OpSpecConstantOp        OpCode = 52
	OpFunction              OpCode = 54
	OpFunctionParameter     OpCode = 55
	OpFunctionEnd           OpCode = 56
	OpFunctionCall          OpCode = 57
	OpVariable              OpCode = 59
	OpLoad                  OpCode = 61
	OpStore                 OpCode = 62
	OpAccessChain           OpCode = 65
	OpInBoundsAccessChain   OpCode = 66
	OpDecorate              OpCode = 71
	OpMemberDecorate        OpCode = 72
	OpVectorShuffle         OpCode = 79
	OpCompositeConstruct    OpCode = 80
	OpCompositeExtract      OpCode = 81
	OpCompositeInsert       OpCode = 82
	OpSampledImage          OpCode = 86
	OpImageSampleImplicitLod OpCode = 87
	OpImageSampleExplicitLod OpCode = 88
	OpImageFetch             OpCode = 95
	OpImageRead              OpCode = 98
	OpImageWrite             OpCode = 99
	OpBitcast                OpCode = 124
	OpIAdd                   OpCode = 128
	OpISub                   OpCode = 130
	OpIMul                   OpCode = 132
	OpUDiv                   OpCode = 134
	OpSDiv                   OpCode = 135
	OpLogicalEqual           OpCode = 174
	OpLogicalNotEqual        OpCode = 175
	OpLogicalOr              OpCode = 176
	OpLogicalAnd             OpCode = 177
	OpLogicalNot             OpCode = 178
	OpSelect                 OpCode = 179
	OpIEqual                 OpCode = 180
	OpINotEqual              OpCode = 181
	OpUGreaterThan           OpCode = 182
	OpSGreaterThan           OpCode = 183
	OpUGreaterThanEqual      OpCode = 184
	OpSGreaterThanEqual      OpCode = 185
	OpULessThan              OpCode = 186
	OpSLessThan              OpCode = 187
	OpULessThanEqual         OpCode = 188
	OpSLessThanEqual         OpCode = 189
	OpShiftRightLogical      OpCode = 194
	OpShiftRightArithmetic   OpCode = 195
	OpShiftLeftLogical       OpCode = 196
	OpBitwiseOr              OpCode = 197
	OpBitwiseXor             OpCode = 198
	OpBitwiseAnd             OpCode = 199
	OpNot                    OpCode = 200
	OpPhi                    OpCode = 245
	OpLoopMerge              OpCode = 246
	OpSelectionMerge         OpCode = 247
	OpLabel                  OpCode = 248
	OpBranch                 OpCode = 249
	OpBranchConditional      OpCode = 250
	OpSwitch                 OpCode = 251
	OpKill                   OpCode = 252
	OpReturn                 OpCode = 253
	OpReturnValue            OpCode = 254
	OpUnreachable            OpCode = 255
)

// Name returns a human-readable mnemonic for op, or "OpUnknown<n>" if op
// is outside the supported set.
func (op OpCode) Name() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "OpUnknown" + strconv.Itoa(int(op))
}

var opcodeNames = map[OpCode]string{
	OpNop:                    "OpNop",
	OpSource:                 "OpSource",
	OpSourceExtension:        "OpSourceExtension",
	OpName:                   "OpName",
	OpMemberName:             "OpMemberName",
	OpExtension:              "OpExtension",
	OpExtInstImport:          "OpExtInstImport",
	OpExtInst:                "OpExtInst",
	OpMemoryModel:            "OpMemoryModel",
	OpEntryPoint:             "OpEntryPoint",
	OpExecutionMode:          "OpExecutionMode",
	OpCapability:             "OpCapability",
	OpTypeVoid:               "OpTypeVoid",
	OpTypeBool:               "OpTypeBool",
	OpTypeInt:                "OpTypeInt",
	OpTypeFloat:              "OpTypeFloat",
	OpTypeVector:             "OpTypeVector",
	OpTypeMatrix:             "OpTypeMatrix",
	OpTypeImage:              "OpTypeImage",
	OpTypeSampler:            "OpTypeSampler",
	OpTypeSampledImage:       "OpTypeSampledImage",
	OpTypeArray:              "OpTypeArray",
	OpTypeRuntimeArray:       "OpTypeRuntimeArray",
	OpTypeStruct:             "OpTypeStruct",
	OpTypePointer:            "OpTypePointer",
	OpTypeFunction:           "OpTypeFunction",
	OpConstantTrue:           "OpConstantTrue",
	OpConstantFalse:          "OpConstantFalse",
	OpConstant:               "OpConstant",
	OpConstantComposite:      "OpConstantComposite",
	OpSpecConstantTrue:       "OpSpecConstantTrue",
	OpSpecConstantFalse:      "OpSpecConstantFalse",
	OpSpecConstant:           "OpSpecConstant",
	OpSpecConstantComposite:  "OpSpecConstantComposite",
	OpSpecConstantOp:         "OpSpecConstantOp",
	OpFunction:               "OpFunction",
	OpFunctionParameter:      "OpFunctionParameter",
	OpFunctionEnd:            "OpFunctionEnd",
	OpFunctionCall:           "OpFunctionCall",
	OpVariable:               "OpVariable",
	OpLoad:                   "OpLoad",
	OpStore:                  "OpStore",
	OpAccessChain:            "OpAccessChain",
	OpInBoundsAccessChain:    "OpInBoundsAccessChain",
	OpDecorate:               "OpDecorate",
	OpMemberDecorate:         "OpMemberDecorate",
	OpVectorShuffle:          "OpVectorShuffle",
	OpCompositeConstruct:     "OpCompositeConstruct",
	OpCompositeExtract:       "OpCompositeExtract",
	OpCompositeInsert:        "OpCompositeInsert",
	OpSampledImage:           "OpSampledImage",
	OpImageSampleImplicitLod: "OpImageSampleImplicitLod",
	OpImageSampleExplicitLod: "OpImageSampleExplicitLod",
	OpImageFetch:             "OpImageFetch",
	OpImageRead:              "OpImageRead",
	OpImageWrite:             "OpImageWrite",
	OpBitcast:                "OpBitcast",
	OpIAdd:                   "OpIAdd",
	OpISub:                   "OpISub",
	OpIMul:                   "OpIMul",
	OpUDiv:                   "OpUDiv",
	OpSDiv:                   "OpSDiv",
	OpLogicalEqual:           "OpLogicalEqual",
	OpLogicalNotEqual:        "OpLogicalNotEqual",
	OpLogicalOr:              "OpLogicalOr",
	OpLogicalAnd:             "OpLogicalAnd",
	OpLogicalNot:             "OpLogicalNot",
	OpSelect:                 "OpSelect",
	OpIEqual:                 "OpIEqual",
	OpINotEqual:              "OpINotEqual",
	OpUGreaterThan:           "OpUGreaterThan",
	OpSGreaterThan:           "OpSGreaterThan",
	OpUGreaterThanEqual:      "OpUGreaterThanEqual",
	OpSGreaterThanEqual:      "OpSGreaterThanEqual",
	OpULessThan:              "OpULessThan",
	OpSLessThan:              "OpSLessThan",
	OpULessThanEqual:         "OpULessThanEqual",
	OpSLessThanEqual:         "OpSLessThanEqual",
	OpShiftRightLogical:      "OpShiftRightLogical",
	OpShiftRightArithmetic:   "OpShiftRightArithmetic",
	OpShiftLeftLogical:       "OpShiftLeftLogical",
	OpBitwiseOr:              "OpBitwiseOr",
	OpBitwiseXor:             "OpBitwiseXor",
	OpBitwiseAnd:             "OpBitwiseAnd",
	OpNot:                    "OpNot",
	OpPhi:                    "OpPhi",
	OpLoopMerge:              "OpLoopMerge",
	OpSelectionMerge:         "OpSelectionMerge",
	OpLabel:                  "OpLabel",
	OpBranch:                 "OpBranch",
	OpBranchConditional:      "OpBranchConditional",
	OpSwitch:                 "OpSwitch",
	OpKill:                   "OpKill",
	OpReturn:                 "OpReturn",
	OpReturnValue:            "OpReturnValue",
	OpUnreachable:            "OpUnreachable",
}

// supportedOpcodes is the closed set accepted by decode; anything
// outside it is ErrUnsupportedOpcode.
var supportedOpcodes = func() map[OpCode]bool {
	m := make(map[OpCode]bool, len(opcodeNames))
	for op := range opcodeNames {
		m[op] = true
	}
	return m
}()

// Supported reports whether op is in the closed opcode set this
// package decodes.
func Supported(op OpCode) bool { return supportedOpcodes[op] }

// terminatorOpcodes end a basic block, per spec.md's block definition.
var terminatorOpcodes = map[OpCode]bool{
	OpBranch:            true,
	OpBranchConditional: true,
	OpSwitch:            true,
	OpReturn:            true,
	OpReturnValue:       true,
	OpKill:              true,
	OpUnreachable:       true,
}

// IsTerminator reports whether op ends a basic block.
func IsTerminator(op OpCode) bool { return terminatorOpcodes[op] }

// debugStripOpcodes names instructions dropped when Options.StripDebugInstructions
// is set, per spec.md §4.9.
var debugStripOpcodes = map[OpCode]bool{
	OpSource:     true,
	OpName:       true,
	OpMemberName: true,
}

// IsDebugInstruction reports whether op belongs to the debug-strip set.
func IsDebugInstruction(op OpCode) bool { return debugStripOpcodes[op] }

// hasResultType and hasResult classify where an opcode's result-type
// and result-id operands live (word index 1 and/or 2, after the
// leading word). Opcodes absent from both maps carry neither.
var hasResultType = map[OpCode]bool{
	OpConstantTrue: true, OpConstantFalse: true, OpConstant: true, OpConstantComposite: true,
	OpSpecConstantTrue: true, OpSpecConstantFalse: true, OpSpecConstant: true,
	OpSpecConstantComposite: true, OpSpecConstantOp: true,
	OpFunction: true, OpFunctionParameter: true, OpFunctionCall: true,
	OpVariable: true, OpLoad: true, OpAccessChain: true, OpInBoundsAccessChain: true,
	OpVectorShuffle: true, OpCompositeConstruct: true, OpCompositeExtract: true, OpCompositeInsert: true,
	OpSampledImage: true, OpImageSampleImplicitLod: true, OpImageSampleExplicitLod: true,
	OpImageFetch: true, OpImageRead: true, OpExtInst: true,
	OpBitcast: true, OpIAdd: true, OpISub: true, OpIMul: true, OpUDiv: true, OpSDiv: true,
	OpLogicalEqual: true, OpLogicalNotEqual: true, OpLogicalOr: true, OpLogicalAnd: true, OpLogicalNot: true,
	OpSelect: true, OpIEqual: true, OpINotEqual: true,
	OpUGreaterThan: true, OpSGreaterThan: true, OpUGreaterThanEqual: true, OpSGreaterThanEqual: true,
	OpULessThan: true, OpSLessThan: true, OpULessThanEqual: true, OpSLessThanEqual: true,
	OpShiftRightLogical: true, OpShiftRightArithmetic: true, OpShiftLeftLogical: true,
	OpBitwiseOr: true, OpBitwiseXor: true, OpBitwiseAnd: true, OpNot: true,
	OpPhi: true,
}

// hasResultOnly opcodes carry a result id but no result type (they
// define a type, or a label, or an import).
var hasResultOnly = map[OpCode]bool{
	OpTypeVoid: true, OpTypeBool: true, OpTypeInt: true, OpTypeFloat: true,
	OpTypeVector: true, OpTypeMatrix: true, OpTypeImage: true, OpTypeSampler: true,
	OpTypeSampledImage: true, OpTypeArray: true, OpTypeRuntimeArray: true,
	OpTypeStruct: true, OpTypePointer: true, OpTypeFunction: true,
	OpExtInstImport: true, OpLabel: true,
}

// HasResultType reports whether op's leading operand (word index 1) is
// a result-type id.
func HasResultType(op OpCode) bool { return hasResultType[op] }

// HasResult reports whether op produces a result id, and at which word
// index (1 if no result type, 2 if it has one).
func HasResult(op OpCode) (has bool, wordIndex int) {
	if hasResultType[op] {
		return true, 2
	}
	if hasResultOnly[op] {
		return true, 1
	}
	return false, 0
}
