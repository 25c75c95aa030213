package optimize

import (
	"math/big"

	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

// NodePath is an environment path. The binary representation is a
// leading 1 (stop), followed by the navigation bits read from least
// significant upward, 0 for first and 1 for rest.
type NodePath struct {
	index *big.Int
}

// NewNodePath returns the path for the given index; nil means the
// whole environment.
func NewNodePath(index *big.Int) NodePath {
	if index == nil {
		return NodePath{index: big.NewInt(1)}
	}
	return NodePath{index: new(big.Int).Set(index)}
}

// First is the path taking first, then following p.
func (p NodePath) First() NodePath {
	return NodePath{index: new(big.Int).Lsh(p.index, 1)}
}

// Rest is the path taking rest, then following p.
func (p NodePath) Rest() NodePath {
	i := new(big.Int).Lsh(p.index, 1)
	return NodePath{index: i.Or(i, big.NewInt(1))}
}

// Add composes paths: the result follows p, then other.
func (p NodePath) Add(other NodePath) NodePath {
	n := p.index.BitLen() - 1
	if n < 0 {
		n = 0
	}
	mask := new(big.Int).Lsh(big.NewInt(1), uint(n))
	mask.Sub(mask, big.NewInt(1))

	combined := new(big.Int).Lsh(other.index, uint(n))
	low := new(big.Int).And(p.index, mask)
	return NodePath{index: combined.Or(combined, low)}
}

// AsPath returns the unsigned atom encoding of the path.
func (p NodePath) AsPath() []byte {
	return sexp.EncodePath(p.index)
}
