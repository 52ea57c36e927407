package analyzer

import (
	"testing"

	"github.com/gogpu/uberspec/uerrors"
)

func TestParseMinimalModule(t *testing.T) {
	shader, err := Parse(minimalIntModule())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if shader.Header.Magic != magicNumber {
		t.Errorf("Magic = 0x%08x, want 0x%08x", shader.Header.Magic, magicNumber)
	}
	if shader.Header.IDBound != 3 {
		t.Errorf("IDBound = %d, want 3", shader.Header.IDBound)
	}
	if len(shader.Instrs) != 4 {
		t.Fatalf("len(Instrs) = %d, want 4", len(shader.Instrs))
	}
	if shader.DefaultIntConst == NoIndex {
		t.Error("DefaultIntConst not captured for a 32-bit OpConstant")
	}
	if got := shader.Instrs[shader.DefaultIntConst].Opcode; got != OpConstant {
		t.Errorf("DefaultIntConst opcode = %v, want OpConstant", got)
	}
}

func TestParseRejectsShortInput(t *testing.T) {
	_, err := Parse([]byte{1, 2, 3})
	assertErrorKind(t, err, uerrors.ErrTooSmall)
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := minimalIntModule()
	data[0] = 0xFF
	_, err := Parse(data)
	assertErrorKind(t, err, uerrors.ErrBadMagic)
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	data := buildModule(1, ins(OpCapability, 1))
	data[7] = 0xFF // most significant byte of the little-endian version word
	_, err := Parse(data)
	assertErrorKind(t, err, uerrors.ErrUnsupportedVersion)
}

func TestParseRejectsMalformedWordCount(t *testing.T) {
	data := buildModule(1, []uint32{0})
	_, err := Parse(data)
	assertErrorKind(t, err, uerrors.ErrMalformedWordCount)
}

func TestParseRejectsDuplicateResultID(t *testing.T) {
	data := buildModule(2,
		ins(OpTypeVoid, 1),
		ins(OpTypeBool, 1),
	)
	_, err := Parse(data)
	assertErrorKind(t, err, uerrors.ErrDuplicateResultID)
}

func TestParseRejectsUndefinedID(t *testing.T) {
	data := buildModule(4,
		ins(OpTypeInt, 1, 32, 1),
		ins(OpConstant, 1, 2, 99),
		ins(OpLoad, 1, 3, 55), // pointer operand 55 is never produced
	)
	_, err := Parse(data)
	assertErrorKind(t, err, uerrors.ErrUndefinedID)
}

func TestParseResolvesSpecIDDecoration(t *testing.T) {
	data := buildModule(3,
		ins(OpTypeInt, 1, 32, 1),
		ins(OpSpecConstant, 1, 2, 42),
		ins(OpDecorate, 2, 1, 7), // decoration 1 == SpecId, value 7
	)
	shader, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	entry, ok := shader.SpecByID[7]
	if !ok {
		t.Fatal("SpecByID[7] missing")
	}
	if shader.Instrs[entry.TargetInstr].Opcode != OpSpecConstant {
		t.Errorf("spec entry target opcode = %v, want OpSpecConstant", shader.Instrs[entry.TargetInstr].Opcode)
	}

	consts := shader.SpecConstants()
	if len(consts) != 1 || consts[0].SpecID != 7 || len(consts[0].Default) != 1 || consts[0].Default[0] != 42 {
		t.Errorf("SpecConstants() = %+v, want one entry {SpecID:7, Default:[42]}", consts)
	}
}

func TestParseRejectsSpecIDOnNonSpecTarget(t *testing.T) {
	data := buildModule(3,
		ins(OpTypeInt, 1, 32, 1),
		ins(OpConstant, 1, 2, 42),
		ins(OpDecorate, 2, 1, 7),
	)
	_, err := Parse(data)
	assertErrorKind(t, err, uerrors.ErrInvalidSpecTarget)
}

func assertErrorKind(t *testing.T, err error, kind uerrors.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("got nil error, want kind %v", kind)
	}
	e, ok := err.(*uerrors.Error)
	if !ok {
		t.Fatalf("error %v is not *uerrors.Error", err)
	}
	if e.Kind != kind {
		t.Errorf("error kind = %v, want %v", e.Kind, kind)
	}
}
