package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestEngine(seed int64, maxDepth int) *GPEngine {
	return &GPEngine{RNG: rand.New(rand.NewSource(seed)), MaxDepth: maxDepth, ConstRate: 0.2}
}

func TestGenFull_ProducesExactDepth(t *testing.T) {
	ctx := &RoutingContext{}
	engine := newTestEngine(10, 6)
	for d := 1; d < 6; d++ {
		p := NewProgram()
		engine.GenFull(p, 0, d, ctx)
		assert.Equal(t, d, p.DepthToBottom(0, ctx), "GenFull(%d)", d)
	}
}

func TestGenGrow_RespectsMaxDepth(t *testing.T) {
	ctx := &SequencingContext{}
	engine := newTestEngine(11, 6)
	for trial := 0; trial < 100; trial++ {
		p := NewProgram()
		engine.GenGrow(p, 0, 6, ctx)
		assert.LessOrEqual(t, p.DepthToBottom(0, ctx), 6)
		assert.NoError(t, p.Verify(ctx))
	}
}

func TestRampedHalfAndHalf_RespectsMaxDepthAndCount(t *testing.T) {
	ctx := &RoutingContext{}
	engine := newTestEngine(12, 6)
	progs := engine.RampedHalfAndHalf(100, ctx)
	assert.Len(t, progs, 100)
	for _, p := range progs {
		assert.LessOrEqual(t, p.DepthToBottom(0, ctx), 6)
		assert.NoError(t, p.Verify(ctx))
	}
}

func TestMutation_PreservesDepthBoundAndValidity(t *testing.T) {
	ctx := &RoutingContext{}
	engine := newTestEngine(13, 5)
	p := NewProgram()
	engine.GenGrow(p, 0, 5, ctx)

	for trial := 0; trial < 50; trial++ {
		child := engine.Mutation(p, ctx)
		assert.LessOrEqual(t, child.DepthToBottom(0, ctx), 5)
		assert.NoError(t, child.Verify(ctx))
	}
}

func TestCrossover_BothChildrenRespectMaxDepth(t *testing.T) {
	ctx := &SequencingContext{}
	engine := newTestEngine(14, 6)

	for trial := 0; trial < 100; trial++ {
		p1 := NewProgram()
		p2 := NewProgram()
		engine.GenGrow(p1, 0, 6, ctx)
		engine.GenGrow(p2, 0, 6, ctx)

		c1, c2 := engine.Crossover(p1, p2, ctx)
		assert.LessOrEqual(t, c1.DepthToBottom(0, ctx), 6)
		assert.LessOrEqual(t, c2.DepthToBottom(0, ctx), 6)
		assert.NoError(t, c1.Verify(ctx))
		assert.NoError(t, c2.Verify(ctx))
	}
}

func TestCrossover_DoesNotMutateParents(t *testing.T) {
	ctx := &RoutingContext{}
	engine := newTestEngine(15, 5)
	p1 := NewProgram()
	p2 := NewProgram()
	engine.GenGrow(p1, 0, 5, ctx)
	engine.GenGrow(p2, 0, 5, ctx)

	p1Before := p1.Clone()
	p2Before := p2.Clone()
	engine.Crossover(p1, p2, ctx)

	assert.True(t, p1.Equal(p1Before))
	assert.True(t, p2.Equal(p2Before))
}
