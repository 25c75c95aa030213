package runtime

import (
	"context"
	"testing"

	"github.com/kilupskalvis/clvm-tools/internal/sexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalSrc(t *testing.T, progSrc, envSrc string) (sexp.SExp, error) {
	t.Helper()
	prog, err := sexp.Parse("test", progSrc)
	require.NoError(t, err)
	env := sexp.SExp(sexp.Nil(sexp.Start("test")))
	if envSrc != "" {
		env, err = sexp.Parse("test", envSrc)
		require.NoError(t, err)
	}
	return (&Runner{}).Run(context.Background(), prog, env)
}

func assertEval(t *testing.T, progSrc, envSrc, expectedSrc string) {
	t.Helper()
	result, err := evalSrc(t, progSrc, envSrc)
	require.NoError(t, err)
	expected, err := sexp.Parse("test", expectedSrc)
	require.NoError(t, err)
	assert.True(t, sexp.Equal(expected, result),
		"running %s with env %q: expected %s, got %s", progSrc, envSrc, expected, result)
}

func TestRun_Quote(t *testing.T) {
	assertEval(t, "(q . 1)", "", "1")
	assertEval(t, `(q . "hello")`, "", `"hello"`)
	assertEval(t, "(q 1 2 3)", "", "(1 2 3)")
}

func TestRun_EnvPaths(t *testing.T) {
	// 1 is the whole environment, 2 its first, 3 its rest.
	assertEval(t, "1", "(100 200)", "(100 200)")
	assertEval(t, "2", "(100 200)", "100")
	assertEval(t, "3", "(100 200)", "(200)")
	assertEval(t, "5", "(100 200)", "200")
	assertEval(t, "0", "(100 200)", "()")
}

func TestRun_EnvPathIntoAtom(t *testing.T) {
	_, err := evalSrc(t, "4", "(100 200)")
	assert.Error(t, err)
}

func TestRun_Arithmetic(t *testing.T) {
	assertEval(t, "(+ (q . 1) (q . 2))", "", "3")
	assertEval(t, "(+)", "", "()")
	assertEval(t, "(- (q . 7) (q . 3) (q . 1))", "", "3")
	assertEval(t, "(* (q . 3) (q . 4))", "", "12")
	assertEval(t, "(+ (q . -1) (q . 1))", "", "()")
}

func TestRun_Division(t *testing.T) {
	assertEval(t, "(/ (q . 7) (q . 2))", "", "3")
	// Floor semantics for negative operands.
	assertEval(t, "(/ (q . -7) (q . 2))", "", "-4")
	assertEval(t, "(divmod (q . -7) (q . 2))", "", "(-4 . 1)")
	assertEval(t, "(divmod (q . 7) (q . 2))", "", "(3 . 1)")

	_, err := evalSrc(t, "(/ (q . 1) (q . 0))", "")
	assert.Error(t, err)
}

func TestRun_ListOps(t *testing.T) {
	assertEval(t, "(c (q . 100) (q . 200))", "", "(100 . 200)")
	assertEval(t, "(f (q 100 200))", "", "100")
	assertEval(t, "(r (q 100 200))", "", "(200)")
	assertEval(t, "(l (q 1 2))", "", "1")
	assertEval(t, "(l (q . 1))", "", "()")

	_, err := evalSrc(t, "(f (q . 1))", "")
	assert.Error(t, err)
}

func TestRun_Comparisons(t *testing.T) {
	assertEval(t, "(= (q . 1) (q . 1))", "", "1")
	assertEval(t, "(= (q . 1) (q . 2))", "", "()")
	assertEval(t, "(> (q . 2) (q . 1))", "", "1")
	assertEval(t, "(> (q . -1) (q . 1))", "", "()")
	assertEval(t, `(>s (q . "b") (q . "a"))`, "", "1")
}

func TestRun_If(t *testing.T) {
	assertEval(t, "(i (q . 1) (q . 100) (q . 200))", "", "100")
	assertEval(t, "(i (q . ()) (q . 100) (q . 200))", "", "200")
}

func TestRun_Strings(t *testing.T) {
	assertEval(t, `(strlen (q . "hello"))`, "", "5")
	assertEval(t, `(concat (q . "door") (q . "stop"))`, "", `"doorstop"`)
	assertEval(t, `(substr (q . "doorstop") (q . 4))`, "", `"stop"`)
	assertEval(t, `(substr (q . "doorstop") (q . 1) (q . 4))`, "", `"oor"`)

	_, err := evalSrc(t, `(substr (q . "abc") (q . 5))`, "")
	assert.Error(t, err)
}

func TestRun_Logic(t *testing.T) {
	assertEval(t, "(not (q . ()))", "", "1")
	assertEval(t, "(not (q . 1))", "", "()")
	assertEval(t, "(any (q . ()) (q . 1))", "", "1")
	assertEval(t, "(all (q . 1) (q . ()))", "", "()")
	assertEval(t, "(logand (q . 12) (q . 10))", "", "8")
	assertEval(t, "(logior (q . 12) (q . 10))", "", "14")
	assertEval(t, "(logxor (q . 12) (q . 10))", "", "6")
	assertEval(t, "(lognot (q . 0))", "", "-1")
}

func TestRun_Shifts(t *testing.T) {
	assertEval(t, "(ash (q . 1) (q . 3))", "", "8")
	assertEval(t, "(ash (q . -8) (q . -2))", "", "-2")
	assertEval(t, "(lsh (q . 1) (q . 3))", "", "8")

	_, err := evalSrc(t, "(ash (q . 1) (q . 70000))", "")
	assert.Error(t, err)
}

func TestRun_Apply(t *testing.T) {
	// Apply a program that adds the first two environment values.
	assertEval(t, "(a (q + 2 5) (q 3 4))", "", "7")
	// Tail position: apply of a quoted constant.
	assertEval(t, "(a (q 1 . 99) ())", "", "99")
}

func TestRun_ApplyInOperatorPosition(t *testing.T) {
	// ((X) . args) applies X to the unevaluated arguments.
	assertEval(t, "((c) (q . 1) (q . 2))", "", "((q . 1) . (q . 2))")
}

func TestRun_Raise(t *testing.T) {
	_, err := evalSrc(t, "(x (q . 5))", "")
	require.Error(t, err)
	exn, ok := err.(*Exn)
	require.True(t, ok)
	expected, perr := sexp.Parse("test", "(5)")
	require.NoError(t, perr)
	assert.True(t, sexp.Equal(expected, exn.Value))
}

func TestRun_Sha256(t *testing.T) {
	result, err := evalSrc(t, `(sha256 (q . "foo"))`, "")
	require.NoError(t, err)
	atom, ok := result.(*sexp.Atom)
	require.True(t, ok)
	assert.Len(t, atom.Value, 32)
}

func TestRun_Softfork(t *testing.T) {
	assertEval(t, "(softfork (q . 100))", "", "()")
}

func TestRun_UnsupportedOperators(t *testing.T) {
	_, err := evalSrc(t, "(point_add (q . 1))", "")
	assert.Error(t, err)
}

func TestRun_StepLimit(t *testing.T) {
	prog, err := sexp.Parse("test", "(+ (q . 1) (q . 2))")
	require.NoError(t, err)
	runner := &Runner{StepLimit: 2}
	_, err = runner.Run(context.Background(), prog, sexp.Nil(sexp.Start("test")))
	assert.Error(t, err)
}

func TestRun_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A self-applying loop never terminates on its own.
	prog, err := sexp.Parse("test", "(a 1 1)")
	require.NoError(t, err)
	env, err := sexp.Parse("test", "(a 1 1)")
	require.NoError(t, err)
	_, err = (&Runner{}).Run(ctx, prog, env)
	assert.Error(t, err)
}

func TestRun_BadArgumentList(t *testing.T) {
	_, err := evalSrc(t, "(+ (q . 1) . 2)", "")
	assert.Error(t, err)
}

func TestRun_FailureLocations(t *testing.T) {
	_, err := evalSrc(t, "(f (q . 1))", "")
	require.Error(t, err)
	fail, ok := err.(Failure)
	require.True(t, ok)
	assert.Equal(t, "test", fail.FailLoc().File)
}
