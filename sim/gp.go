// GPEngine implements tree initialization, mutation, and crossover (spec
// §4.2, §4.3): full/grow/ramped-half-and-half generation, sub-tree
// mutation, and depth-bounded sub-tree crossover. Every draw comes from
// the RNG threaded in — no hidden global state, no implicit ordering bias
// (spec §4.2 "Tie-break policy").

package sim

import "math/rand"

// GPEngine holds the RNG and depth/rate configuration shared by every GP
// operation. Stateless beyond that — callers thread the same *GPEngine
// through initialization, mutation, and crossover for one evolutionary run.
type GPEngine struct {
	RNG       *rand.Rand
	MaxDepth  int
	ConstRate float64
}

// GenTerminalAt writes either a random coarse constant (probability
// ConstRate, 9 buckets from -4 to +4 in steps of 1) or a random terminal,
// uniform over ctx.NumTerminals(), at i. No children.
func (g *GPEngine) GenTerminalAt(p *Program, i int, ctx ProgramContext) {
	if g.RNG.Float64() < g.ConstRate {
		bucket := g.RNG.Intn(9) - 4
		p.set(i, encodeConstBucket(bucket))
		return
	}
	p.set(i, encodeTerminal(g.RNG.Intn(ctx.NumTerminals())))
}

// GenInternalAt picks an internal uniformly over ctx.NumInternals(), sets
// it at i, and recurses genChild over each child slot.
func (g *GPEngine) GenInternalAt(p *Program, i int, ctx ProgramContext, genChild func(childIndex int)) {
	idx := g.RNG.Intn(ctx.NumInternals())
	p.NewAt(i, encodeInternal(idx), ctx, genChild)
}

// GenGenericAt picks uniformly over the combined terminal+internal
// vocabulary and acts accordingly.
func (g *GPEngine) GenGenericAt(p *Program, i int, ctx ProgramContext, genChild func(childIndex int)) {
	numInternals := ctx.NumInternals()
	pick := g.RNG.Intn(numInternals + ctx.NumTerminals())
	if pick < numInternals {
		p.NewAt(i, encodeInternal(pick), ctx, genChild)
		return
	}
	p.set(i, encodeTerminal(pick-numInternals))
}

// GenFull grows a full tree of exact depth d rooted at i: terminal at
// d == 0, else an internal with recursive GenFull children at d-1.
func (g *GPEngine) GenFull(p *Program, i int, d int, ctx ProgramContext) {
	if d == 0 {
		g.GenTerminalAt(p, i, ctx)
		return
	}
	g.GenInternalAt(p, i, ctx, func(childIndex int) {
		g.GenFull(p, childIndex, d-1, ctx)
	})
}

// GenGrow grows a tree of depth at most d rooted at i, mixing terminals
// and internals at every level except d == 0 (forced terminal).
func (g *GPEngine) GenGrow(p *Program, i int, d int, ctx ProgramContext) {
	if d == 0 {
		g.GenTerminalAt(p, i, ctx)
		return
	}
	g.GenGenericAt(p, i, ctx, func(childIndex int) {
		g.GenGrow(p, childIndex, d-1, ctx)
	})
}

// Mutation clones p, clears a uniformly-chosen active sub-tree, and grows
// a fresh one into the remaining depth budget (spec §4.2).
func (g *GPEngine) Mutation(p *Program, ctx ProgramContext) *Program {
	child := p.Clone()
	active := child.ActiveIndices(ctx)
	target := active[g.RNG.Intn(len(active))]

	child.ClearSubtree(target, ctx)
	remaining := g.MaxDepth - DepthFromTop(target)
	g.GenGrow(child, target, remaining, ctx)

	if err := child.Verify(ctx); err != nil {
		mustf(false, "mutation produced an invalid program: %v", err)
	}
	return child
}

// Crossover swaps depth-matched sub-trees between p1 and p2 (spec §4.2).
// The depth range for the second parent's cut is chosen so both children
// are guaranteed to respect MaxDepth.
func (g *GPEngine) Crossover(p1, p2 *Program, ctx ProgramContext) (*Program, *Program) {
	depth1 := p1.DepthToBottom(0, ctx)
	depth2 := p2.DepthToBottom(0, ctx)

	d1 := g.RNG.Intn(depth1 + 1)
	lo := maxInt(0, d1+depth2-g.MaxDepth)
	hi := minInt(depth2, g.MaxDepth-depth1+d1)
	mustf(lo <= hi, "crossover: empty valid range for d2 (lo=%d hi=%d, d1=%d)", lo, hi, d1)
	d2 := lo + g.RNG.Intn(hi-lo+1)

	idx1 := g.pickActiveAtLayer(p1, d1, ctx)
	idx2 := g.pickActiveAtLayer(p2, d2, ctx)

	child1 := p1.Clone()
	child2 := p2.Clone()
	child1.ClearSubtree(idx1, ctx)
	child2.ClearSubtree(idx2, ctx)
	copySubtree(child1, idx1, p2, idx2, ctx)
	copySubtree(child2, idx2, p1, idx1, ctx)

	mustf(child1.DepthToBottom(0, ctx) <= g.MaxDepth, "crossover: child1 exceeds MAX_DEPTH")
	mustf(child2.DepthToBottom(0, ctx) <= g.MaxDepth, "crossover: child2 exceeds MAX_DEPTH")

	return child1, child2
}

// pickActiveAtLayer returns a uniformly-chosen active index of p within
// layer ℓ (spec §4.2's "at exactly that depth layer").
func (g *GPEngine) pickActiveAtLayer(p *Program, layer int, ctx ProgramContext) int {
	lo, hi := LayerIndices(layer)
	var candidates []int
	for _, idx := range p.ActiveIndices(ctx) {
		if idx >= lo && idx < hi {
			candidates = append(candidates, idx)
		}
	}
	mustf(len(candidates) > 0, "crossover: no active index in layer %d", layer)
	return candidates[g.RNG.Intn(len(candidates))]
}

// RampedHalfAndHalf produces n programs: for each depth in [1, MaxDepth),
// ⌊n / (2·MaxDepth)⌋ via GenFull and equally many via GenGrow, topped up
// to n with GenGrow(MaxDepth) (spec §4.2).
func (g *GPEngine) RampedHalfAndHalf(n int, ctx ProgramContext) []*Program {
	out := make([]*Program, 0, n)
	perDepth := n / (2 * g.MaxDepth)

	for d := 1; d < g.MaxDepth; d++ {
		for k := 0; k < perDepth; k++ {
			p := NewProgram()
			g.GenFull(p, 0, d, ctx)
			out = append(out, p)
		}
		for k := 0; k < perDepth; k++ {
			p := NewProgram()
			g.GenGrow(p, 0, d, ctx)
			out = append(out, p)
		}
	}
	for len(out) < n {
		p := NewProgram()
		g.GenGrow(p, 0, g.MaxDepth, ctx)
		out = append(out, p)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
