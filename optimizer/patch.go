package optimizer

import (
	"github.com/gogpu/uberspec/analyzer"
	"github.com/gogpu/uberspec/uerrors"
)

// patchSpecConstants implements spec.md §4.4's specialization
// patching: resolve each provided value through the specialization
// table, rewrite the target in place, and delete its SpecId
// decoration. A SpecId absent from the module is silently ignored.
func (r *run) patchSpecConstants(values []SpecValue) error {
	for _, v := range values {
		entry, ok := r.shader.SpecByID[v.SpecID]
		if !ok {
			continue
		}
		target := r.shader.Instrs[entry.TargetInstr]
		words := r.slotWords(entry.TargetInstr)

		switch target.Opcode {
		case analyzer.OpSpecConstantTrue, analyzer.OpSpecConstantFalse:
			if len(v.Values) != 1 {
				return uerrors.WithSpecID(uerrors.ErrSpecValueArity, v.SpecID, "boolean spec constant expects exactly one value word")
			}
			newOpcode := analyzer.OpConstantFalse
			if v.Values[0] != 0 {
				newOpcode = analyzer.OpConstantTrue
			}
			setOpcode(words, newOpcode)

		case analyzer.OpSpecConstant:
			expected := int(target.WordCount) - 3
			if len(v.Values) != expected {
				return uerrors.WithSpecID(uerrors.ErrSpecValueArity, v.SpecID, "value count does not match spec constant payload width")
			}
			setOpcode(words, analyzer.OpConstant)
			copy(words[3:], v.Values)
		}

		r.markDeleted(entry.DecorInstr)
	}
	return nil
}
