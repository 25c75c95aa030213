package optimize

import (
	"testing"

	"github.com/kilupskalvis/clvm-tools/internal/sexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_Literal(t *testing.T) {
	assert.NotNil(t, Match(mustParse(t, "(100 200)"), mustParse(t, "(100 200)")))
	assert.Nil(t, Match(mustParse(t, "(100 200)"), mustParse(t, "(100 300)")))
	assert.Nil(t, Match(mustParse(t, "(100 200)"), mustParse(t, "100")))
}

func TestMatch_SexpCapture(t *testing.T) {
	bindings := Match(mustParse(t, "(: . body)"), mustParse(t, "(+ 2 5)"))
	require.NotNil(t, bindings)
	assert.True(t, sexp.Equal(mustParse(t, "(+ 2 5)"), bindings["body"]))

	// (: . name) also captures atoms.
	bindings = Match(mustParse(t, "(: . body)"), mustParse(t, "5"))
	require.NotNil(t, bindings)
	assert.True(t, sexp.Equal(mustParse(t, "5"), bindings["body"]))
}

func TestMatch_AtomCapture(t *testing.T) {
	bindings := Match(mustParse(t, "($ . n)"), mustParse(t, "5"))
	require.NotNil(t, bindings)
	assert.True(t, sexp.Equal(mustParse(t, "5"), bindings["n"]))

	// ($ . name) refuses pairs.
	assert.Nil(t, Match(mustParse(t, "($ . n)"), mustParse(t, "(100 200)")))
}

func TestMatch_Nested(t *testing.T) {
	pattern := mustParse(t, "(f (c (: . first) (: . rest)))")
	bindings := Match(pattern, mustParse(t, "(f (c 2 (+ 5 11)))"))
	require.NotNil(t, bindings)
	assert.True(t, sexp.Equal(mustParse(t, "2"), bindings["first"]))
	assert.True(t, sexp.Equal(mustParse(t, "(+ 5 11)"), bindings["rest"]))
}

func TestMatch_RepeatedNamesUnify(t *testing.T) {
	pattern := mustParse(t, "((: . x) (: . x))")
	assert.NotNil(t, Match(pattern, mustParse(t, "(100 100)")))
	assert.Nil(t, Match(pattern, mustParse(t, "(100 200)")))
}

func TestMatch_MarkerEscape(t *testing.T) {
	// ($ . $) matches the literal $ atom.
	pattern := mustParse(t, `($ . $)`)
	assert.NotNil(t, Match(pattern, mustParse(t, `"$"`)))
	assert.Nil(t, Match(pattern, mustParse(t, "100")))
}

func TestNodePath_FirstRest(t *testing.T) {
	root := NewNodePath(nil)
	assert.Equal(t, []byte{0x02}, root.First().AsPath())
	assert.Equal(t, []byte{0x03}, root.Rest().AsPath())
	assert.Equal(t, []byte{0x04}, root.First().First().AsPath())
	// Rest prepends: take rest, then follow the receiver.
	assert.Equal(t, []byte{0x05}, root.First().Rest().AsPath())
}

func TestNodePath_Add(t *testing.T) {
	root := NewNodePath(nil)
	first := root.First()
	rest := root.Rest()

	// Composition follows the receiver, then the argument.
	assert.Equal(t, []byte{0x04}, first.Add(first).AsPath())
	assert.Equal(t, []byte{0x06}, first.Add(rest).AsPath())
	assert.Equal(t, []byte{0x05}, rest.Add(first).AsPath())
	assert.Equal(t, []byte{0x07}, rest.Add(rest).AsPath())

	// The whole environment is the identity.
	assert.Equal(t, []byte{0x02}, root.Add(first).AsPath())
	assert.Equal(t, []byte{0x02}, first.Add(root).AsPath())
}
