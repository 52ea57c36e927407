package analyzer

// ForEachAdjacent walks instruction idx's forward adjacency list,
// invoking fn for every node whose Kind is one of kinds. This is the
// read side of the arena graph.go builds: each producer, terminator,
// or phi-predecessor label threads its own consumers, successors, or
// phi uses through Instrs[idx].AdjHead (spec.md §9 "two views of the
// graph sharing one reducer infrastructure").
func (p *ParsedShader) ForEachAdjacent(idx uint32, kinds []EdgeKind, fn func(target uint32, kind EdgeKind)) {
	matches := func(k EdgeKind) bool {
		for _, want := range kinds {
			if want == k {
				return true
			}
		}
		return false
	}
	for node := p.Instrs[idx].AdjHead; node != NoIndex; node = p.Arena[node].Next {
		n := p.Arena[node]
		if matches(n.Kind) {
			fn(n.Target, n.Kind)
		}
	}
}
