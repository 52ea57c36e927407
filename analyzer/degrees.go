package analyzer

import (
	"math"
	"sort"
)

// computeDegreesAndOrder implements spec.md §4.3: a single traversal
// of every adjacency list to fill in/out degree, then a Kahn's-
// algorithm pass to assign a level to every instruction, then a final
// sort by (level, decode index).
//
// Real SPIR-V modules with loops carry genuine cycles in this graph —
// an OpPhi's back-edge value operand can depend on an instruction that
// itself (transitively) depends on the phi. Those instructions never
// reach in-degree zero during the Kahn pass; they are given the
// largest level so they sort after everything reachable by pure
// dependency order, and relative order among them falls back to
// decode index. This does not affect correctness: a phi with more
// than one surviving predecessor pair is always Variable regardless
// of operand resolution order (spec.md §4.5), so the only instructions
// that must see a resolved operand before evaluating are acyclic ones.
func computeDegreesAndOrder(shader *ParsedShader) {
	n := len(shader.Instrs)
	inDegree := make([]uint32, n)
	outDegree := make([]uint32, n)

	for i := range shader.Instrs {
		for node := shader.Instrs[i].AdjHead; node != NoIndex; node = shader.Arena[node].Next {
			outDegree[i]++
			inDegree[shader.Arena[node].Target]++
		}
	}
	shader.InDegree = inDegree
	shader.OutDegree = outDegree

	work := make([]uint32, n)
	copy(work, inDegree)

	level := make([]uint32, n)
	maxPredLevel := make([]uint32, n)

	var stack []uint32
	for i := 0; i < n; i++ {
		if work[i] == 0 {
			level[i] = 1
			stack = append(stack, uint32(i))
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for node := shader.Instrs[i].AdjHead; node != NoIndex; node = shader.Arena[node].Next {
			c := shader.Arena[node].Target
			if level[i] > maxPredLevel[c] {
				maxPredLevel[c] = level[i]
			}
			work[c]--
			if work[c] == 0 {
				level[c] = maxPredLevel[c] + 1
				stack = append(stack, c)
			}
		}
	}

	for i := 0; i < n; i++ {
		if level[i] == 0 {
			level[i] = math.MaxUint32
		}
	}

	order := make([]uint32, n)
	for i := range order {
		order[i] = uint32(i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if level[ia] != level[ib] {
			return level[ia] < level[ib]
		}
		return ia < ib
	})
	shader.TopoOrder = order
}
