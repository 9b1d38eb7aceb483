// Package merkletree implements the balanced binary Merkle tree used to
// commit to a round's "Cv" leaves (one leaf per round, see commit.V) and
// to open a subset of those leaves to the verifier without revealing the
// rest.
//
// Grounded on DECS/merkle.go's BuildMerkleTree/Path/VerifyPath (a
// balanced tree over SHAKE-256-truncated node hashes with leaf/node
// domain-separation prefixes); generalized here from single-leaf paths
// to a batched multiproof, since the protocol opens τ leaves out of
// num_rounds at once rather than one at a time.
package merkletree

import (
	"encoding/binary"

	"Picnic2-Signature/kdf"
	"Picnic2-Signature/pcerr"
)

const (
	prefixLeaf byte = 0x20
	prefixNode byte = 0x21
)

func hashLeaf(data []byte, digestSize int) []byte {
	h := kdf.NewWithPrefix(prefixLeaf)
	h.Update(data)
	h.Final()
	return h.Squeeze(digestSize)
}

func hashNode(left, right []byte, digestSize int) []byte {
	h := kdf.NewWithPrefix(prefixNode)
	h.Update(left)
	h.Update(right)
	h.Final()
	return h.Squeeze(digestSize)
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// Tree is a balanced Merkle tree over n leaves, padded to the next power
// of two with hashes of an empty marker leaf.
type Tree struct {
	layers     [][][]byte // layers[0] = leaf hashes, layers[last] = {root}
	numLeaves  int
	digestSize int
}

// BuildMerkleTree hashes every leaf and folds the tree bottom-up.
func BuildMerkleTree(leaves [][]byte, digestSize int) *Tree {
	n := len(leaves)
	size := nextPow2(n)
	layer := make([][]byte, size)
	for i := 0; i < n; i++ {
		layer[i] = hashLeaf(leaves[i], digestSize)
	}
	empty := hashLeaf(nil, digestSize)
	for i := n; i < size; i++ {
		layer[i] = empty
	}
	layers := [][][]byte{layer}
	for sz := size; sz > 1; sz >>= 1 {
		prev := layers[len(layers)-1]
		next := make([][]byte, sz/2)
		for i := 0; i < sz; i += 2 {
			next[i/2] = hashNode(prev[i], prev[i+1], digestSize)
		}
		layers = append(layers, next)
	}
	return &Tree{layers: layers, numLeaves: n, digestSize: digestSize}
}

// Root returns the tree's root hash.
func (t *Tree) Root() []byte { return t.layers[len(t.layers)-1][0] }

func coveredByOpen(lo, hi int, open map[int]bool) bool {
	for idx := range open {
		if idx >= lo && idx < hi {
			return true
		}
	}
	return false
}

type nodeRecord struct {
	layer int
	index int
	hash  []byte
}

func collectProofNodes(t *Tree, layer, index, lo, hi int, open map[int]bool, out *[]nodeRecord) {
	if !coveredByOpen(lo, hi, open) {
		*out = append(*out, nodeRecord{layer: layer, index: index, hash: t.layers[layer][index]})
		return
	}
	if hi-lo == 1 {
		return
	}
	mid := (lo + hi) / 2
	collectProofNodes(t, layer-1, 2*index, lo, mid, open, out)
	collectProofNodes(t, layer-1, 2*index+1, mid, hi, open, out)
}

// OpenMerkleTree returns the minimal set of extra node hashes a verifier
// needs, beyond the opened leaves themselves, to recompute the root: one
// record per maximal subtree whose leaf span is entirely outside open,
// encoded as (layer u8, index u32, hash) tuples in tree order.
func OpenMerkleTree(t *Tree, open []int) []byte {
	openSet := make(map[int]bool, len(open))
	for _, idx := range open {
		openSet[idx] = true
	}
	size := len(t.layers[0])
	var records []nodeRecord
	collectProofNodes(t, len(t.layers)-1, 0, 0, size, openSet, &records)

	buf := make([]byte, 0, len(records)*(1+4+t.digestSize))
	for _, r := range records {
		buf = append(buf, byte(r.layer))
		var idx [4]byte
		binary.LittleEndian.PutUint32(idx[:], uint32(r.index))
		buf = append(buf, idx[:]...)
		buf = append(buf, r.hash...)
	}
	return buf
}

// OpenMerkleTreeSize returns len(OpenMerkleTree(t, open)) given only the
// tree's shape (numLeaves, digestSize) and the open list, the Merkle
// counterpart to seedtree.RevealSeedsSize: a deserializer needs this to
// size cvInfo's slice of the wire buffer before any tree exists.
func OpenMerkleTreeSize(numLeaves, digestSize int, open []int) int {
	size := nextPow2(numLeaves)
	openSet := make(map[int]bool, len(open))
	for _, idx := range open {
		openSet[idx] = true
	}
	count := 0
	var walk func(lo, hi int)
	walk = func(lo, hi int) {
		if !coveredByOpen(lo, hi, openSet) {
			count++
			return
		}
		if hi-lo == 1 {
			return
		}
		mid := (lo + hi) / 2
		walk(lo, mid)
		walk(mid, hi)
	}
	walk(0, size)
	return count * (1 + 4 + digestSize)
}

// AddMerkleNodes parses an OpenMerkleTree encoding into layer->index->hash
// entries, for VerifyMerkleTree to consume.
func AddMerkleNodes(data []byte, digestSize int) (map[int]map[int][]byte, error) {
	recordLen := 1 + 4 + digestSize
	if len(data)%recordLen != 0 {
		return nil, pcerr.Wrap(pcerr.ErrMerkleVerificationFailed, "node data is not a multiple of the record size")
	}
	out := make(map[int]map[int][]byte)
	for off := 0; off+recordLen <= len(data); off += recordLen {
		layer := int(data[off])
		index := int(binary.LittleEndian.Uint32(data[off+1 : off+5]))
		hash := make([]byte, digestSize)
		copy(hash, data[off+5:off+recordLen])
		if out[layer] == nil {
			out[layer] = make(map[int][]byte)
		}
		out[layer][index] = hash
	}
	return out, nil
}

// RecoverRoot recomputes a tree's root from a subset of known leaves plus
// the node hashes OpenMerkleTree disclosed for everything else. numLeaves
// is the tree's original (unpadded) leaf count, needed to reproduce the
// same padding BuildMerkleTree used. Returns an error if openedLeaves and
// nodes together do not cover enough of the tree to reach the root, which
// happens only if the proof is malformed or was built for a different
// open set.
func RecoverRoot(numLeaves, digestSize int, openedLeaves map[int][]byte, nodes map[int]map[int][]byte) ([]byte, error) {
	size := nextPow2(numLeaves)
	numLayers := 0
	for s := size; s > 1; s >>= 1 {
		numLayers++
	}

	memo := make([]map[int][]byte, numLayers+1)
	for i := range memo {
		memo[i] = make(map[int][]byte)
	}
	empty := hashLeaf(nil, digestSize)
	for idx, leaf := range openedLeaves {
		memo[0][idx] = hashLeaf(leaf, digestSize)
	}
	for idx, h := range nodes[0] {
		memo[0][idx] = h
	}

	var get func(layer, index, lo, hi int) ([]byte, bool)
	get = func(layer, index, lo, hi int) ([]byte, bool) {
		if h, ok := memo[layer][index]; ok {
			return h, true
		}
		if h, ok := nodes[layer][index]; ok {
			memo[layer][index] = h
			return h, true
		}
		if layer == 0 {
			if lo >= numLeaves {
				memo[layer][index] = empty
				return empty, true
			}
			return nil, false
		}
		mid := (lo + hi) / 2
		left, okL := get(layer-1, 2*index, lo, mid)
		right, okR := get(layer-1, 2*index+1, mid, hi)
		if !okL || !okR {
			return nil, false
		}
		h := hashNode(left, right, digestSize)
		memo[layer][index] = h
		return h, true
	}

	got, ok := get(numLayers, 0, 0, size)
	if !ok {
		return nil, pcerr.Wrap(pcerr.ErrMerkleVerificationFailed, "insufficient opened leaves and nodes to recompute root")
	}
	return got, nil
}

// VerifyMerkleTree recomputes the root from the opened leaves plus the
// externally supplied nodes and compares it against root.
func VerifyMerkleTree(root []byte, numLeaves, digestSize int, openedLeaves map[int][]byte, nodes map[int]map[int][]byte) (bool, error) {
	got, err := RecoverRoot(numLeaves, digestSize, openedLeaves, nodes)
	if err != nil {
		return false, err
	}
	if len(got) != len(root) {
		return false, pcerr.Wrap(pcerr.ErrMerkleVerificationFailed, "root length mismatch")
	}
	for i := range got {
		if got[i] != root[i] {
			return false, nil
		}
	}
	return true, nil
}
