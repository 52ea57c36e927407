package optimizer

import (
	"encoding/binary"

	"github.com/gogpu/uberspec/analyzer"
)

// ins builds one instruction's word slice: a leading word-count|opcode
// word followed by operands, mirroring analyzer's own decode grammar.
func ins(op analyzer.OpCode, operands ...uint32) []uint32 {
	w := make([]uint32, 1+len(operands))
	w[0] = uint32(uint16(len(w)))<<16 | uint32(op)
	copy(w[1:], operands)
	return w
}

// buildModule assembles a full SPIR-V module byte stream: the 5-word
// header (bound supplied by the caller, since test modules assign ids
// by hand) followed by the concatenated instruction words.
func buildModule(bound uint32, instrs ...[]uint32) []byte {
	words := []uint32{0x07230203, 0x00010000, 0, bound, 0}
	for _, in := range instrs {
		words = append(words, in...)
	}
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}

// mustParse parses data or fails the calling test/benchmark immediately.
func mustParse(tb interface {
	Helper()
	Fatalf(string, ...any)
}, data []byte) *analyzer.ParsedShader {
	tb.Helper()
	shader, err := analyzer.Parse(data)
	if err != nil {
		tb.Fatalf("analyzer.Parse: %v", err)
	}
	return shader
}
