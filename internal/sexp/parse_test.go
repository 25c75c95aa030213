package sexp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) SExp {
	t.Helper()
	parsed, err := Parse("test", src)
	require.NoError(t, err)
	return parsed
}

func TestParse_Roundtrip(t *testing.T) {
	// Each of these prints back exactly as written.
	sources := []string{
		"()",
		"1",
		"-1",
		"100",
		`"hello"`,
		"0x00",
		"0x010203",
		"(+ 1 2)",
		"(q . 1)",
		"(a 2 3)",
		"(100 200)",
		"(100 . 200)",
		"(c (q . 1) (q . 2))",
		"(i 3 (q . 100) (q . 200))",
		`(q . "opt")`,
		"(sha256 2 5)",
		"(+ () ())",
	}
	for _, src := range sources {
		parsed := mustParse(t, src)
		assert.Equal(t, src, parsed.String(), "roundtrip of %q", src)
	}
}

func TestParse_Keywords(t *testing.T) {
	parsed := mustParse(t, "(sha256 1)")
	p, ok := parsed.(*Pair)
	require.True(t, ok)
	op, ok := p.First.(*Atom)
	require.True(t, ok)
	assert.Equal(t, []byte{OpSha256}, op.Value)
}

func TestParse_RawKeyword(t *testing.T) {
	// #+ names the operator atom directly.
	assert.True(t, Equal(mustParse(t, "(#+ 2 5)"), mustParse(t, "(+ 2 5)")))
}

func TestParse_HexOddDigits(t *testing.T) {
	// Odd-length hex is left-padded.
	parsed := mustParse(t, "0x102")
	atom, ok := parsed.(*Atom)
	require.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x02}, atom.Value)
}

func TestParse_Strings(t *testing.T) {
	parsed := mustParse(t, `"hi there"`)
	atom, ok := parsed.(*Atom)
	require.True(t, ok)
	assert.Equal(t, "hi there", string(atom.Value))

	single := mustParse(t, "'also fine'")
	atom, ok = single.(*Atom)
	require.True(t, ok)
	assert.Equal(t, "also fine", string(atom.Value))
}

func TestParse_Symbol(t *testing.T) {
	parsed := mustParse(t, "banana")
	atom, ok := parsed.(*Atom)
	require.True(t, ok)
	assert.Equal(t, "banana", string(atom.Value))
}

func TestParse_Comments(t *testing.T) {
	parsed := mustParse(t, "(+ 1 ; add one\n 2)")
	assert.True(t, Equal(parsed, mustParse(t, "(+ 1 2)")))
}

func TestParse_DottedPair(t *testing.T) {
	parsed := mustParse(t, "(100 . 200)")
	p, ok := parsed.(*Pair)
	require.True(t, ok)
	rest, ok := p.Rest.(*Atom)
	require.True(t, ok)
	assert.Equal(t, int64(200), rest.Number().Int64())
}

func TestParse_Errors(t *testing.T) {
	bad := []string{
		"",
		"(",
		")",
		"(1 2",
		"1 2",
		`"unterminated`,
		"(1 . 2 3)",
		"#frobnicate",
	}
	for _, src := range bad {
		_, err := Parse("test", src)
		assert.Error(t, err, "parsing %q", src)
	}
}

func TestParse_ErrorLocation(t *testing.T) {
	_, err := Parse("test", "(1 2")
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, "test", perr.Loc.File)
}

func TestParse_Locations(t *testing.T) {
	parsed := mustParse(t, "(+ 1\n 2)")
	p, ok := parsed.(*Pair)
	require.True(t, ok)
	assert.Equal(t, 1, p.First.Loc().Line)
	assert.Equal(t, 2, p.First.Loc().Col)

	second := p.Rest.(*Pair).Rest.(*Pair).First
	assert.Equal(t, 2, second.Loc().Line)
}

func TestProperList(t *testing.T) {
	elems, ok := ProperList(mustParse(t, "(1 2 3)"))
	require.True(t, ok)
	assert.Len(t, elems, 3)

	elems, ok = ProperList(mustParse(t, "()"))
	require.True(t, ok)
	assert.Empty(t, elems)

	_, ok = ProperList(mustParse(t, "(100 . 200)"))
	assert.False(t, ok)

	_, ok = ProperList(mustParse(t, "5"))
	assert.False(t, ok)
}
