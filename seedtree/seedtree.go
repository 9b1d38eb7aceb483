// Package seedtree implements the GGM-style seed tree the rest of the
// module treats through a narrow interface (GetLeaf/GetLeaves plus the
// reveal/reconstruct size functions): a complete binary tree of seeds
// where each child is pseudorandomly derived from its parent, supporting
// "reveal every leaf except a hidden subset" without exposing the hidden
// leaves' seeds or anything derivable from them.
//
// The derivation step follows the general GGM-tree construction: child
// seed = H(parent seed, node index), using kdf for the hash the same way
// commit and params derive their own pseudorandom material.
package seedtree

import (
	"encoding/binary"

	"Picnic2-Signature/kdf"
	"Picnic2-Signature/pcerr"
)

const prefixNode byte = 0x10

// Tree is a complete binary tree of seeds, 1-indexed (root at index 1,
// node i's children at 2i and 2i+1), padded up to the next power of two
// above the requested leaf count. Unused trailing leaves (beyond
// numLeaves) are still derived and stored but never read by callers.
type Tree struct {
	nodes     [][]byte
	size      int // next power of two >= numLeaves
	numLeaves int
	seedSize  int
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

func deriveChild(parent []byte, salt []byte, t, nodeIndex int) []byte {
	h := kdf.NewWithPrefix(prefixNode)
	h.Update(parent)
	h.Update(salt)
	h.Update(u32le(t))
	h.Update(u32le(nodeIndex))
	h.Final()
	return h.Squeeze(len(parent))
}

func u32le(v int) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	return b[:]
}

// GenerateSeeds expands rootSeed into a full tree of numLeaves leaves
// (padded internally to a power of two), deterministically keyed on
// salt and round index t so that two calls with identical inputs
// produce identical trees.
func GenerateSeeds(numLeaves int, rootSeed, salt []byte, t int) *Tree {
	size := nextPow2(numLeaves)
	nodes := make([][]byte, 2*size)
	nodes[1] = rootSeed
	for i := 1; i < size; i++ {
		nodes[2*i] = deriveChild(nodes[i], salt, t, 2*i)
		nodes[2*i+1] = deriveChild(nodes[i], salt, t, 2*i+1)
	}
	return &Tree{nodes: nodes, size: size, numLeaves: numLeaves, seedSize: len(rootSeed)}
}

// GetLeaf returns leaf j's seed (nil if the tree does not have that leaf
// populated, i.e. it fell under a hidden subtree during reconstruction).
func (tr *Tree) GetLeaf(j int) []byte { return tr.nodes[tr.size+j] }

// GetLeaves returns every leaf's seed, in order.
func (tr *Tree) GetLeaves() [][]byte {
	out := make([][]byte, tr.numLeaves)
	for j := 0; j < tr.numLeaves; j++ {
		out[j] = tr.GetLeaf(j)
	}
	return out
}

// revealEntry is one node whose seed is disclosed during a reveal: the
// node index together with its seed bytes.
type revealEntry struct {
	index int
	seed  []byte
}

// coveredByHidden reports whether the subtree rooted at node covers any
// leaf in hidden, using the half-open leaf range [lo, hi) the subtree
// spans within the padded leaf numbering.
func coveredByHidden(lo, hi int, hidden map[int]bool) bool {
	for leaf := range hidden {
		if leaf >= lo && leaf < hi {
			return true
		}
	}
	return false
}

func collectReveal(tr *Tree, node, lo, hi int, hidden map[int]bool, out *[]revealEntry) {
	if !coveredByHidden(lo, hi, hidden) {
		*out = append(*out, revealEntry{index: node, seed: tr.nodes[node]})
		return
	}
	if hi-lo == 1 {
		// A hidden leaf: nothing to reveal here.
		return
	}
	mid := (lo + hi) / 2
	collectReveal(tr, 2*node, lo, mid, hidden, out)
	collectReveal(tr, 2*node+1, mid, hi, hidden, out)
}

// RevealSeeds returns the minimal set of subtree-root seeds whose union
// of derivable leaves is exactly the complement of hide: every node
// whose entire leaf span avoids every hidden index is revealed as one
// unit, and nodes straddling a hidden leaf are split until the hidden
// leaf itself is isolated and excluded. The encoding is a flat byte
// sequence of (u32 node index, seed) pairs in tree order.
func RevealSeeds(tr *Tree, hide []int) []byte {
	hidden := make(map[int]bool, len(hide))
	for _, h := range hide {
		hidden[h] = true
	}
	var entries []revealEntry
	collectReveal(tr, 1, 0, tr.size, hidden, &entries)

	buf := make([]byte, 0, len(entries)*(4+tr.seedSize))
	for _, e := range entries {
		buf = append(buf, u32le(e.index)...)
		buf = append(buf, e.seed...)
	}
	return buf
}

// RevealSeedsSize returns len(RevealSeeds(tr, hide)) without building the
// tree, given only the shape (numLeaves, seedSize) and the hide list;
// used by the deserializer to size a reveal field of the wire buffer
// before any tree exists.
func RevealSeedsSize(numLeaves, seedSize int, hide []int) int {
	size := nextPow2(numLeaves)
	hidden := make(map[int]bool, len(hide))
	for _, h := range hide {
		hidden[h] = true
	}
	count := 0
	var walk func(node, lo, hi int)
	walk = func(node, lo, hi int) {
		if !coveredByHidden(lo, hi, hidden) {
			count++
			return
		}
		if hi-lo == 1 {
			return
		}
		mid := (lo + hi) / 2
		walk(2*node, lo, mid)
		walk(2*node+1, mid, hi)
	}
	walk(1, 0, size)
	return count * (4 + seedSize)
}

// ReconstructSeeds rebuilds a tree from a RevealSeeds encoding: every
// revealed subtree root is re-expanded down to its leaves; any leaf
// falling entirely within a hidden subtree stays nil. Returns an error
// if the encoding's length is not a multiple of the per-entry record
// size, or if it contains more entries than the tree can have revealed
// nodes for, either of which indicates a corrupted or tampered proof.
func ReconstructSeeds(numLeaves, seedSize int, data, salt []byte, t int, hide []int) (*Tree, error) {
	size := nextPow2(numLeaves)
	recordLen := 4 + seedSize
	if len(data)%recordLen != 0 {
		return nil, pcerr.Wrap(pcerr.ErrSeedReconstructionFailed, "reveal data is not a multiple of the record size")
	}
	if len(data) > RevealSeedsSize(numLeaves, seedSize, hide) {
		return nil, pcerr.Wrap(pcerr.ErrSeedReconstructionFailed, "reveal data has more entries than the hidden set leaves revealable")
	}
	tr := &Tree{nodes: make([][]byte, 2*size), size: size, numLeaves: numLeaves, seedSize: seedSize}

	for off := 0; off+recordLen <= len(data); off += recordLen {
		idx := int(binary.LittleEndian.Uint32(data[off : off+4]))
		if idx < 1 || idx >= 2*size {
			return nil, pcerr.Wrap(pcerr.ErrSeedReconstructionFailed, "revealed node index out of range")
		}
		seed := make([]byte, seedSize)
		copy(seed, data[off+4:off+recordLen])
		expand(tr, idx, seed, salt, t)
	}
	return tr, nil
}

// expand fills node's own seed and derives every descendant down to the
// leaves, without overwriting nodes a prior call already populated
// (reconstruction only ever visits disjoint subtrees, but the guard
// keeps the function safe to reuse for a single combined walk too).
func expand(tr *Tree, node int, seed, salt []byte, t int) {
	if tr.nodes[node] != nil {
		return
	}
	tr.nodes[node] = seed
	if node >= tr.size {
		return
	}
	left := deriveChild(seed, salt, t, 2*node)
	right := deriveChild(seed, salt, t, 2*node+1)
	expand(tr, 2*node, left, salt, t)
	expand(tr, 2*node+1, right, salt, t)
}
