package sexp

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sha256Tree computes the CLVM tree hash: atoms hash as
// sha256(1 || bytes), pairs as sha256(2 || hash(first) || hash(rest)).
func Sha256Tree(s SExp) []byte {
	h := sha256.New()
	switch v := s.(type) {
	case *Atom:
		h.Write([]byte{1})
		h.Write(v.Value)
	case *Pair:
		h.Write([]byte{2})
		h.Write(Sha256Tree(v.First))
		h.Write(Sha256Tree(v.Rest))
	}
	return h.Sum(nil)
}

// Sha256TreeHex returns the tree hash as lowercase hex, the form used
// to key symbol tables.
func Sha256TreeHex(s SExp) string {
	return hex.EncodeToString(Sha256Tree(s))
}
