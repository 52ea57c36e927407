package analyzer

import "encoding/binary"

// ins builds one instruction's word slice: a leading word-count|opcode
// word followed by operands, exactly as decode() expects to find it in
// the module word stream.
func ins(op OpCode, operands ...uint32) []uint32 {
	w := make([]uint32, 1+len(operands))
	w[0] = uint32(uint16(len(w)))<<16 | uint32(op)
	copy(w[1:], operands)
	return w
}

// buildModule assembles a full SPIR-V module byte stream: the 5-word
// header (bound supplied by the caller, since test modules assign ids
// by hand) followed by the concatenated instruction words.
func buildModule(bound uint32, instrs ...[]uint32) []byte {
	words := []uint32{magicNumber, 0x00010000, 0, bound, 0}
	for _, in := range instrs {
		words = append(words, in...)
	}
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}

// minimalIntModule builds a module with a 32-bit signed int type (id 1)
// and one OpConstant of that type (id 2, value 7), enough to exercise
// DefaultIntConst capture and constant folding across packages' tests.
func minimalIntModule() []byte {
	return buildModule(3,
		ins(OpCapability, 1),
		ins(OpMemoryModel, 0, 1),
		ins(OpTypeInt, 1, 32, 1),
		ins(OpConstant, 1, 2, 7),
	)
}
