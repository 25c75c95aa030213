package sexp

import "math/big"

// EncodeInt returns the minimal two's-complement big-endian encoding
// of v. Zero encodes as the empty atom.
func EncodeInt(v *big.Int) []byte {
	switch v.Sign() {
	case 0:
		return []byte{}
	case 1:
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}

	n := (v.BitLen() + 7) / 8
	if n == 0 {
		n = 1
	}
	min := new(big.Int).Lsh(big.NewInt(-1), uint(8*n-1))
	if v.Cmp(min) < 0 {
		n++
	}
	// two's complement: v + 2^(8n)
	t := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	t.Add(t, v)
	b := t.Bytes()
	for len(b) < n {
		b = append([]byte{0xff}, b...)
	}
	return b
}

// DecodeInt interprets the bytes as a signed two's-complement
// big-endian integer.
func DecodeInt(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		t := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		v.Sub(v, t)
	}
	return v
}

// EncodePath returns the minimal unsigned big-endian encoding of v,
// used for environment path atoms.
func EncodePath(v *big.Int) []byte {
	if v.Sign() <= 0 {
		return []byte{}
	}
	return v.Bytes()
}

// DecodePath interprets the bytes as an unsigned big-endian integer.
func DecodePath(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
