package analyzer

import (
	"encoding/binary"

	"github.com/gogpu/uberspec/uerrors"
)

// magicNumber is the SPIR-V module magic number, little-endian as the
// first word of every valid module.
const magicNumber = 0x07230203

// maxSupportedVersion is the highest SPIR-V version word this package
// decodes; newer modules are rejected per spec.md §4.1.
const maxSupportedVersion = 0x00010600 // 1.6

// decorationSpecID is the numeric value of the SPIR-V "SpecId" decoration.
const decorationSpecID = 1

func decode(data []byte) (*ParsedShader, error) {
	if len(data) < 20 || len(data)%4 != 0 {
		return nil, uerrors.New(uerrors.ErrTooSmall, "input shorter than a SPIR-V header or not word-aligned")
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}

	header := Header{
		Magic:     words[0],
		Version:   words[1],
		Generator: words[2],
		IDBound:   words[3],
		Schema:    words[4],
	}
	if header.Magic != magicNumber {
		return nil, uerrors.New(uerrors.ErrBadMagic, "first word is not the SPIR-V magic number")
	}
	if header.Version > maxSupportedVersion {
		return nil, uerrors.New(uerrors.ErrUnsupportedVersion, "module targets a newer SPIR-V version than this package supports")
	}

	shader := &ParsedShader{
		Header:          header,
		Words:           words,
		ResultInstr:     make([]uint32, header.IDBound),
		SpecByID:        make(map[uint32]SpecEntry),
		DefaultIntConst: NoIndex,
	}
	for i := range shader.ResultInstr {
		shader.ResultInstr[i] = NoIndex
	}

	idx := 5
	for idx < len(words) {
		leading := words[idx]
		wordCount := uint16(leading >> 16)
		opcode := OpCode(leading & 0xFFFF)
		instrIndex := uint32(len(shader.Instrs))

		if wordCount == 0 || idx+int(wordCount) > len(words) {
			return nil, uerrors.AtInstruction(uerrors.ErrMalformedWordCount, instrIndex, "instruction word count is zero or runs past end of module")
		}
		if !Supported(opcode) {
			return nil, uerrors.WithOpcode(instrIndex, uint16(opcode), "opcode outside the supported set")
		}

		instrWords := words[idx : idx+int(wordCount)]

		if has, wordIdx := HasResult(opcode); has {
			resultID := instrWords[wordIdx]
			if resultID >= header.IDBound {
				return nil, uerrors.WithID(uerrors.ErrUndefinedID, resultID, "result id exceeds the header's id-bound")
			}
			if shader.ResultInstr[resultID] != NoIndex {
				return nil, uerrors.WithID(uerrors.ErrDuplicateResultID, resultID, "result id written by more than one instruction")
			}
			shader.ResultInstr[resultID] = instrIndex
		}

		switch opcode {
		case OpSpecConstantComposite, OpSpecConstantOp:
			return nil, uerrors.AtInstruction(uerrors.ErrInvalidSpecTarget, instrIndex, "unsupported spec constant form "+opcode.Name())
		case OpDecorate:
			dec := Decoration{InstrIndex: instrIndex, TargetID: instrWords[1]}
			if instrWords[2] == decorationSpecID {
				dec.IsSpecID = true
				dec.SpecID = instrWords[3]
			}
			shader.Decorations = append(shader.Decorations, dec)
		case OpMemberDecorate:
			shader.Decorations = append(shader.Decorations, Decoration{InstrIndex: instrIndex, TargetID: instrWords[1]})
		case OpConstant:
			if shader.DefaultIntConst == NoIndex && isThirtyTwoBitInt(shader, instrWords[1]) {
				shader.DefaultIntConst = instrIndex
			}
		}

		shader.Instrs = append(shader.Instrs, Instruction{
			Opcode:     opcode,
			WordOffset: uint32(idx),
			WordCount:  wordCount,
			AdjHead:    NoIndex,
		})

		idx += int(wordCount)
	}

	if err := resolveSpecTable(shader); err != nil {
		return nil, err
	}
	return shader, nil
}

// isThirtyTwoBitInt reports whether typeID names an already-decoded
// OpTypeInt of width 32. Types always precede the constants that
// reference them in well-formed modules, so the type's instruction is
// already recorded.
func isThirtyTwoBitInt(shader *ParsedShader, typeID uint32) bool {
	if int(typeID) >= len(shader.ResultInstr) {
		return false
	}
	typeInstrIdx := shader.ResultInstr[typeID]
	if typeInstrIdx == NoIndex {
		return false
	}
	typeInstr := shader.Instrs[typeInstrIdx]
	if typeInstr.Opcode != OpTypeInt {
		return false
	}
	words := typeInstr.Words(shader.Words)
	return len(words) > 2 && words[2] == 32
}

// resolveSpecTable builds SpecByID from the recorded SpecId decorations,
// now that every result id in the module has a known producing
// instruction. A decoration whose target is not a supported
// SpecConstant* instruction is ErrInvalidSpecTarget.
func resolveSpecTable(shader *ParsedShader) error {
	for _, dec := range shader.Decorations {
		if !dec.IsSpecID {
			continue
		}
		if int(dec.TargetID) >= len(shader.ResultInstr) {
			return uerrors.WithSpecID(uerrors.ErrInvalidSpecTarget, dec.SpecID, "SpecId decoration targets an id outside the id-bound")
		}
		targetInstrIdx := shader.ResultInstr[dec.TargetID]
		if targetInstrIdx == NoIndex {
			return uerrors.WithSpecID(uerrors.ErrInvalidSpecTarget, dec.SpecID, "SpecId decoration targets an id with no producing instruction")
		}
		targetInstr := shader.Instrs[targetInstrIdx]
		switch targetInstr.Opcode {
		case OpSpecConstantTrue, OpSpecConstantFalse, OpSpecConstant:
			shader.SpecByID[dec.SpecID] = SpecEntry{
				SpecID:      dec.SpecID,
				TargetInstr: targetInstrIdx,
				DecorInstr:  dec.InstrIndex,
			}
		case OpSpecConstantComposite, OpSpecConstantOp:
			return uerrors.WithSpecID(uerrors.ErrInvalidSpecTarget, dec.SpecID, "SpecId decoration targets an unsupported spec form")
		default:
			return uerrors.WithSpecID(uerrors.ErrInvalidSpecTarget, dec.SpecID, "SpecId decoration targets a non-spec-constant instruction")
		}
	}
	return nil
}
