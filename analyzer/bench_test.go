package analyzer

import "testing"

// buildChainModule constructs a module with n sequential OpIAdd
// instructions chained off a single i32 constant, exercising decode,
// graph construction, and degree/topo-order computation at scale.
func buildChainModule(n int) []byte {
	instrs := [][]uint32{
		ins(OpTypeInt, 1, 32, 1),
		ins(OpConstant, 1, 2, 1),
	}
	prev := uint32(2)
	next := uint32(3)
	for i := 0; i < n; i++ {
		instrs = append(instrs, ins(OpIAdd, 1, next, prev, 2))
		prev = next
		next++
	}
	return buildModule(next, instrs...)
}

func BenchmarkParseSmall(b *testing.B) {
	data := buildChainModule(16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(data); err != nil {
			b.Fatalf("Parse: %v", err)
		}
	}
}

func BenchmarkParseLarge(b *testing.B) {
	data := buildChainModule(4096)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(data); err != nil {
			b.Fatalf("Parse: %v", err)
		}
	}
}
