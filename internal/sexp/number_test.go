package sexp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeInt(t *testing.T) {
	cases := []struct {
		value    int64
		expected []byte
	}{
		{0, []byte{}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x00, 0x80}},
		{255, []byte{0x00, 0xff}},
		{256, []byte{0x01, 0x00}},
		{-1, []byte{0xff}},
		{-128, []byte{0x80}},
		{-129, []byte{0xff, 0x7f}},
		{32767, []byte{0x7f, 0xff}},
		{32768, []byte{0x00, 0x80, 0x00}},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, EncodeInt(big.NewInt(c.value)), "encoding %d", c.value)
	}
}

func TestDecodeInt(t *testing.T) {
	cases := []struct {
		bytes    []byte
		expected int64
	}{
		{[]byte{}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, 127},
		{[]byte{0x00, 0x80}, 128},
		{[]byte{0xff}, -1},
		{[]byte{0x80}, -128},
		{[]byte{0xff, 0x7f}, -129},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, DecodeInt(c.bytes).Int64())
	}
}

func TestEncodeInt_RoundtripLarge(t *testing.T) {
	v, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Zero(t, DecodeInt(EncodeInt(v)).Cmp(v))

	neg := new(big.Int).Neg(v)
	assert.Zero(t, DecodeInt(EncodeInt(neg)).Cmp(neg))
}

func TestEncodePath(t *testing.T) {
	// Paths are unsigned, so no sign padding.
	assert.Equal(t, []byte{}, EncodePath(big.NewInt(0)))
	assert.Equal(t, []byte{0x01}, EncodePath(big.NewInt(1)))
	assert.Equal(t, []byte{0x02}, EncodePath(big.NewInt(2)))
	assert.Equal(t, []byte{0xff}, EncodePath(big.NewInt(255)))
	assert.Equal(t, []byte{0x01, 0x00}, EncodePath(big.NewInt(256)))
}

func TestDecodePath(t *testing.T) {
	assert.Equal(t, int64(255), DecodePath([]byte{0xff}).Int64())
	assert.Equal(t, int64(0), DecodePath([]byte{}).Int64())
	assert.Equal(t, int64(5), DecodePath([]byte{0x05}).Int64())
}
