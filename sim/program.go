// Program is a byte-encoded implicit-heap expression tree (spec §3, §4.1).
// Children of index i live at 2i+1 and 2i+2; a node's meaning is decoded
// from its byte value. Mutation and crossover reduce to splices over this
// flat array — no balancing, no pointer chasing.

package sim

import (
	"encoding/base64"
	"fmt"
	"math"
)

// nodeKind classifies a decoded byte.
type nodeKind int

const (
	nodeConst nodeKind = iota
	nodeTerminal
	nodeInternal
	nodeNull
)

// nodeNullByte is the empty/transient-slot encoding (spec §3).
const nodeNullByte byte = 255

// nodePayload carries the decoded value for const/terminal/internal nodes.
type nodePayload struct {
	constVal float32
	index    int
}

// decodeNode maps a raw byte to its node kind and payload per the splits
// in spec §3: 0..=128 constant, 129..=192 terminal, 193..=254 internal,
// 255 null.
func decodeNode(b byte) (nodeKind, nodePayload) {
	switch {
	case b <= 128:
		return nodeConst, nodePayload{constVal: float32(int(b)-64) / 16.0}
	case b <= 192:
		return nodeTerminal, nodePayload{index: int(b) - 129}
	case b <= 254:
		return nodeInternal, nodePayload{index: int(b) - 193}
	default:
		return nodeNull, nodePayload{}
	}
}

// encodeTerminal returns the byte encoding terminal index idx.
func encodeTerminal(idx int) byte { return byte(129 + idx) }

// encodeInternal returns the byte encoding internal index idx.
func encodeInternal(idx int) byte { return byte(193 + idx) }

// encodeConstBucket returns the byte encoding the coarse constant bucket
// bucket ∈ [-4, 4] (step 1), used by the GP engine's terminal generation.
func encodeConstBucket(bucket int) byte { return byte(64 + bucket*16) }

// Program is a compact byte-array expression tree.
type Program struct {
	bytes []byte
}

// NewProgram returns an empty Program (root unset / null).
func NewProgram() *Program {
	return &Program{bytes: []byte{nodeNullByte}}
}

// Len returns the size of the backing byte array.
func (p *Program) Len() int { return len(p.bytes) }

// Get returns the byte at index i, or the null encoding if i is beyond the
// current backing array (an absent slot is equivalent to an explicit null).
func (p *Program) Get(i int) byte {
	if i < 0 || i >= len(p.bytes) {
		return nodeNullByte
	}
	return p.bytes[i]
}

// ensureLen grows the backing array to at least n bytes, padding new slots
// with the null encoding.
func (p *Program) ensureLen(n int) {
	if len(p.bytes) >= n {
		return
	}
	grown := make([]byte, n)
	copy(grown, p.bytes)
	for i := len(p.bytes); i < n; i++ {
		grown[i] = nodeNullByte
	}
	p.bytes = grown
}

// set writes b at index i, growing the backing array as needed.
func (p *Program) set(i int, b byte) {
	p.ensureLen(i + 1)
	p.bytes[i] = b
}

// NewAt writes value at index (growing the backing array to admit it),
// then invokes genChild once per child slot of an internal node's arity
// (per ctx), passing the child's full heap index. genChild is free to
// recurse — this is the primitive the GP engine's gen_full/gen_grow build on.
func (p *Program) NewAt(index int, value byte, ctx ProgramContext, genChild func(childIndex int)) {
	p.set(index, value)
	kind, payload := decodeNode(value)
	if kind == nodeInternal {
		arity := ctx.ArityOf(payload.index)
		for c := 0; c < arity; c++ {
			genChild(2*index + 1 + c)
		}
	}
}

// Clone returns an independent copy of p.
func (p *Program) Clone() *Program {
	cp := make([]byte, len(p.bytes))
	copy(cp, p.bytes)
	return &Program{bytes: cp}
}

// Equal reports byte-for-byte equality, ignoring any length difference in
// trailing null padding (an absent slot and an explicit null slot are the
// same tree).
func (p *Program) Equal(other *Program) bool {
	n := len(p.bytes)
	if len(other.bytes) > n {
		n = len(other.bytes)
	}
	for i := 0; i < n; i++ {
		if p.Get(i) != other.Get(i) {
			return false
		}
	}
	return true
}

// ActiveIndices returns, in pre-order, exactly the indices participating
// in the tree rooted at 0 — descending only via the correct arity of each
// internal node.
func (p *Program) ActiveIndices(ctx ProgramContext) []int {
	var out []int
	var walk func(i int)
	walk = func(i int) {
		kind, payload := decodeNode(p.Get(i))
		mustf(kind != nodeNull, "active traversal hit a null node at index %d", i)
		out = append(out, i)
		if kind == nodeInternal {
			arity := ctx.ArityOf(payload.index)
			for c := 0; c < arity; c++ {
				walk(2*i + 1 + c)
			}
		}
	}
	walk(0)
	return out
}

// DepthToBottom returns 1 + max(children's DepthToBottom) for an internal
// node at index i, or 0 for a terminal/constant.
func (p *Program) DepthToBottom(i int, ctx ProgramContext) int {
	kind, payload := decodeNode(p.Get(i))
	if kind != nodeInternal {
		return 0
	}
	arity := ctx.ArityOf(payload.index)
	best := 0
	for c := 0; c < arity; c++ {
		d := p.DepthToBottom(2*i+1+c, ctx)
		if d > best {
			best = d
		}
	}
	return 1 + best
}

// ClearSubtree sets the byte at index and every descendant (per the heap
// scheme) to null.
func (p *Program) ClearSubtree(index int, ctx ProgramContext) {
	if index < 0 || index >= len(p.bytes) {
		return
	}
	kind, payload := decodeNode(p.bytes[index])
	p.bytes[index] = nodeNullByte
	if kind == nodeInternal {
		arity := ctx.ArityOf(payload.index)
		for c := 0; c < arity; c++ {
			p.ClearSubtree(2*index+1+c, ctx)
		}
	}
}

// Verify checks the Program invariants (spec §8): the root is non-null,
// every active index holds a non-null byte, and every non-active index
// (within the backing array) holds null.
func (p *Program) Verify(ctx ProgramContext) error {
	if p.Get(0) == nodeNullByte {
		return fmt.Errorf("program: root is null")
	}
	active := make(map[int]bool)
	for _, idx := range p.ActiveIndices(ctx) {
		active[idx] = true
	}
	for i, b := range p.bytes {
		if active[i] {
			if b == nodeNullByte {
				return fmt.Errorf("program: active index %d is null", i)
			}
		} else if b != nodeNullByte {
			return fmt.Errorf("program: non-active index %d holds non-null byte %d", i, b)
		}
	}
	return nil
}

// Evaluate computes the value of the tree rooted at index 0 against ctx.
// Terminal values are memoized per evaluation since they don't depend on
// tree position. Panics (invariantViolation) if the result is non-finite
// or if evaluation reaches a null node.
func (p *Program) Evaluate(ctx ProgramContext) float32 {
	cache := make(map[int]float32)
	v := p.evalAt(0, ctx, cache)
	mustf(isFiniteF32(v), "program evaluated to non-finite value %v", v)
	return v
}

func (p *Program) evalAt(i int, ctx ProgramContext, cache map[int]float32) float32 {
	kind, payload := decodeNode(p.Get(i))
	switch kind {
	case nodeConst:
		return payload.constVal
	case nodeTerminal:
		if v, ok := cache[payload.index]; ok {
			return v
		}
		v := ctx.TerminalValue(payload.index)
		cache[payload.index] = v
		return v
	case nodeInternal:
		arity := ctx.ArityOf(payload.index)
		children := make([]float32, arity)
		for c := 0; c < arity; c++ {
			children[c] = p.evalAt(2*i+1+c, ctx, cache)
		}
		return ctx.InternalApply(payload.index, children)
	default:
		mustf(false, "evaluate hit a null node at index %d", i)
		return 0
	}
}

// Pretty renders the tree as a parenthesized expression using ctx's
// terminal/internal names. Used as the evolution driver's fitness-cache
// key (spec §4.7): two programs with identical printed forms are
// considered the same individual for caching purposes.
func (p *Program) Pretty(ctx ProgramContext) string {
	return p.prettyAt(0, ctx)
}

func (p *Program) prettyAt(i int, ctx ProgramContext) string {
	kind, payload := decodeNode(p.Get(i))
	switch kind {
	case nodeConst:
		return fmt.Sprintf("%.4f", payload.constVal)
	case nodeTerminal:
		return ctx.TerminalName(payload.index)
	case nodeInternal:
		arity := ctx.ArityOf(payload.index)
		args := make([]string, arity)
		for c := 0; c < arity; c++ {
			args[c] = p.prettyAt(2*i+1+c, ctx)
		}
		name := ctx.InternalName(payload.index)
		switch arity {
		case 2:
			return fmt.Sprintf("(%s %s %s)", args[0], name, args[1])
		default:
			return fmt.Sprintf("%s(%s)", name, joinStrings(args, ", "))
		}
	default:
		return "null"
	}
}

func joinStrings(parts []string, sep string) string {
	out := ""
	for i, s := range parts {
		if i > 0 {
			out += sep
		}
		out += s
	}
	return out
}

// Serialize run-length encodes the byte array then base64-encodes the
// result (spec §4.1, §6).
func (p *Program) Serialize() string {
	rle := RunLengthEncode(p.bytes)
	return base64.StdEncoding.EncodeToString(rle)
}

// DeserializeProgram inverts Serialize.
func DeserializeProgram(s string) (*Program, error) {
	rle, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("program: invalid base64: %w", err)
	}
	bytes, err := RunLengthDecode(rle)
	if err != nil {
		return nil, fmt.Errorf("program: invalid run-length encoding: %w", err)
	}
	if len(bytes) == 0 {
		bytes = []byte{nodeNullByte}
	}
	return &Program{bytes: bytes}, nil
}

// RunLengthEncode encodes data as repeat-count pairs (byte, extraRepeats)
// with extraRepeats ∈ [0, 255], so a run's total length is capped at 256
// per pair — longer runs simply emit consecutive pairs.
func RunLengthEncode(data []byte) []byte {
	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		v := data[i]
		j := i + 1
		for j < len(data) && data[j] == v && j-i < 256 {
			j++
		}
		out = append(out, v, byte(j-i-1))
		i = j
	}
	return out
}

// RunLengthDecode inverts RunLengthEncode.
func RunLengthDecode(data []byte) ([]byte, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("run-length data has odd length %d", len(data))
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i += 2 {
		v := data[i]
		extra := int(data[i+1])
		for k := 0; k <= extra; k++ {
			out = append(out, v)
		}
	}
	return out, nil
}

// DepthFromTop returns ⌊log2(index+1)⌋, the depth of a heap index from
// the root (root is depth 0).
func DepthFromTop(index int) int {
	n := index + 1
	depth := -1
	for n > 0 {
		depth++
		n >>= 1
	}
	return depth
}

// LayerIndices returns the half-open index range [lo, hi) of layer l —
// all nodes at depth l in the heap indexing.
func LayerIndices(l int) (lo, hi int) {
	lo = (1 << uint(l)) - 1
	hi = (1 << uint(l+1)) - 1
	return lo, hi
}

// copySubtree writes src's subtree rooted at srcIndex into dest at
// destIndex (spec §4.3), growing dest's backing array as needed.
func copySubtree(dest *Program, destIndex int, src *Program, srcIndex int, ctx ProgramContext) {
	kind, payload := decodeNode(src.Get(srcIndex))
	dest.set(destIndex, src.Get(srcIndex))
	if kind == nodeInternal {
		arity := ctx.ArityOf(payload.index)
		for c := 0; c < arity; c++ {
			copySubtree(dest, 2*destIndex+1+c, src, 2*srcIndex+1+c, ctx)
		}
	}
}

func isFiniteF32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
