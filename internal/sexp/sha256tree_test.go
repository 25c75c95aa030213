package sexp

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSha256Tree_Atom(t *testing.T) {
	// An atom hashes as sha256(0x01 || bytes).
	expected := sha256.Sum256([]byte{0x01, 0x68, 0x69})
	atom := NewAtom(Start("test"), []byte("hi"))
	assert.Equal(t, expected[:], Sha256Tree(atom))
}

func TestSha256Tree_Nil(t *testing.T) {
	expected := sha256.Sum256([]byte{0x01})
	assert.Equal(t, expected[:], Sha256Tree(Nil(Start("test"))))
}

func TestSha256Tree_Pair(t *testing.T) {
	// A pair hashes as sha256(0x02 || h(first) || h(rest)).
	first := NewAtom(Start("test"), []byte{0x01})
	rest := Nil(Start("test"))
	pair := Cons(Start("test"), first, rest)

	preimage := append([]byte{0x02}, Sha256Tree(first)...)
	preimage = append(preimage, Sha256Tree(rest)...)
	expected := sha256.Sum256(preimage)
	assert.Equal(t, expected[:], Sha256Tree(pair))
}

func TestSha256Tree_IgnoresLocations(t *testing.T) {
	a := mustParse(t, "(+ 1 2)")
	b := mustParse(t, "(+ 1\n   2)")
	assert.Equal(t, Sha256TreeHex(a), Sha256TreeHex(b))
}

func TestSha256Tree_DistinguishesShape(t *testing.T) {
	assert.NotEqual(t,
		Sha256TreeHex(mustParse(t, "(1 2)")),
		Sha256TreeHex(mustParse(t, "(100 . 200)")))
	assert.NotEqual(t,
		Sha256TreeHex(mustParse(t, "1")),
		Sha256TreeHex(mustParse(t, "(q . 1)")))
}

func TestSha256TreeHex_Format(t *testing.T) {
	h := Sha256TreeHex(mustParse(t, "()"))
	assert.Len(t, h, 64)
	_, err := hex.DecodeString(h)
	assert.NoError(t, err)
}
