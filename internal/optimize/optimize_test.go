package optimize

import (
	"context"
	"testing"

	"github.com/kilupskalvis/clvm-tools/internal/runtime"
	"github.com/kilupskalvis/clvm-tools/internal/sexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) sexp.SExp {
	t.Helper()
	parsed, err := sexp.Parse("test", src)
	require.NoError(t, err)
	return parsed
}

func assertOptimizes(t *testing.T, src, expected string) {
	t.Helper()
	result, err := Optimize(context.Background(), mustParse(t, src), &runtime.Runner{})
	require.NoError(t, err)
	want := mustParse(t, expected)
	assert.True(t, sexp.Equal(want, result),
		"optimizing %s: expected %s, got %s", src, want, result)
}

func TestOptimize_ConsQA(t *testing.T) {
	assertOptimizes(t, `(a (q 1 . "opt") 1)`, `(q . "opt")`)
}

func TestOptimize_Children(t *testing.T) {
	assertOptimizes(t,
		"(c (a (q 1 . 1) 1) (a (q . 2) 1))",
		"(c (q . 1) 2)")
}

func TestOptimize_ConstantFolding(t *testing.T) {
	assertOptimizes(t,
		`(c (q . 29041) (c (c (q . "unquote") (c (c (a (q 1 . "macros") (q . 1)) (a (q 1) (q . 1))) (q))) (q)))`,
		`(q 29041 ("unquote" ("macros")))`)
}

func TestOptimize_Cons(t *testing.T) {
	assertOptimizes(t, "(f (c 2 5))", "2")
	assertOptimizes(t, "(r (c 2 5))", "5")
}

func TestOptimize_Path(t *testing.T) {
	assertOptimizes(t, "(f 1)", "2")
	assertOptimizes(t, "(r 1)", "3")
	assertOptimizes(t, "(f 2)", "4")
	assertOptimizes(t, "(r 2)", "6")
}

func TestOptimize_Nulls(t *testing.T) {
	assertOptimizes(t, "(a (q . 0) 1)", "()")
	assertOptimizes(t, "(c (q . 0) 1)", "(c () 1)")
}

func TestOptimize_AtomPassthrough(t *testing.T) {
	assertOptimizes(t, "1", "1")
	assertOptimizes(t, "()", "()")
}

func TestOptimize_ImproperListPassthrough(t *testing.T) {
	assertOptimizes(t, "(100 . 200)", "(100 . 200)")
}

func TestSeemsConstant(t *testing.T) {
	assert.True(t, seemsConstant(mustParse(t, "(q . 1)")))
	assert.True(t, seemsConstant(mustParse(t, "()")))
	assert.True(t, seemsConstant(mustParse(t, "(+ (q . 1) (q . 2))")))
	assert.False(t, seemsConstant(mustParse(t, "1")))
	assert.False(t, seemsConstant(mustParse(t, "(+ 1 (q . 2))")))
	assert.False(t, seemsConstant(mustParse(t, "(x (q . 1))")))
}
