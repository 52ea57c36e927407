package analyzer

// IsThirtyTwoBitIntType reports whether typeID names a decoded
// OpTypeInt of width 32, the only integer width the constant folder
// understands (spec.md §4.5 "32-bit integer / boolean lanes only").
func (p *ParsedShader) IsThirtyTwoBitIntType(typeID uint32) bool {
	instr, ok := p.typeInstr(typeID, OpTypeInt)
	if !ok {
		return false
	}
	words := instr.Words(p.Words)
	return len(words) > 2 && words[2] == 32
}

// IntSignedness reports whether the OpTypeInt named by typeID is
// signed (word index 3, nonzero means signed).
func (p *ParsedShader) IntSignedness(typeID uint32) bool {
	instr, ok := p.typeInstr(typeID, OpTypeInt)
	if !ok {
		return false
	}
	words := instr.Words(p.Words)
	return len(words) > 3 && words[3] != 0
}

func (p *ParsedShader) typeInstr(typeID uint32, want OpCode) (Instruction, bool) {
	if int(typeID) >= len(p.ResultInstr) {
		return Instruction{}, false
	}
	idx := p.ResultInstr[typeID]
	if idx == NoIndex {
		return Instruction{}, false
	}
	instr := p.Instrs[idx]
	if instr.Opcode != want {
		return Instruction{}, false
	}
	return instr, true
}
