package runtime

import (
	"bytes"
	"crypto/sha256"
	"math/big"

	"github.com/kilupskalvis/clvm-tools/internal/sexp"
)

// ApplyOp applies a primitive operator to fully evaluated arguments.
// Quote, apply and raise are machine transitions and never reach here.
func ApplyOp(op *sexp.Atom, values []sexp.SExp) (sexp.SExp, Failure) {
	loc := op.L
	switch op.Value[0] {
	case sexp.OpIf:
		if len(values) != 3 {
			return nil, errf(loc, "i requires 3 arguments, got %d", len(values))
		}
		if values[0].Nullp() {
			return values[2], nil
		}
		return values[1], nil

	case sexp.OpCons:
		if len(values) != 2 {
			return nil, errf(loc, "c requires 2 arguments, got %d", len(values))
		}
		return sexp.Cons(loc, values[0], values[1]), nil

	case sexp.OpFirst:
		p, fail := onePair(loc, "f", values)
		if fail != nil {
			return nil, fail
		}
		return p.First, nil

	case sexp.OpRest:
		p, fail := onePair(loc, "r", values)
		if fail != nil {
			return nil, fail
		}
		return p.Rest, nil

	case sexp.OpListp:
		if len(values) != 1 {
			return nil, errf(loc, "l requires 1 argument, got %d", len(values))
		}
		if _, ok := values[0].(*sexp.Pair); ok {
			return one(loc), nil
		}
		return sexp.Nil(loc), nil

	case sexp.OpEq:
		a, b, fail := twoAtoms(loc, "=", values)
		if fail != nil {
			return nil, fail
		}
		return boolAtom(loc, bytes.Equal(a.Value, b.Value)), nil

	case sexp.OpGrBytes:
		a, b, fail := twoAtoms(loc, ">s", values)
		if fail != nil {
			return nil, fail
		}
		return boolAtom(loc, bytes.Compare(a.Value, b.Value) > 0), nil

	case sexp.OpGr:
		a, b, fail := twoAtoms(loc, ">", values)
		if fail != nil {
			return nil, fail
		}
		return boolAtom(loc, a.Number().Cmp(b.Number()) > 0), nil

	case sexp.OpSha256:
		h := sha256.New()
		for _, v := range values {
			a, fail := wantAtom(loc, "sha256", v)
			if fail != nil {
				return nil, fail
			}
			h.Write(a.Value)
		}
		return sexp.NewAtom(loc, h.Sum(nil)), nil

	case sexp.OpStrlen:
		if len(values) != 1 {
			return nil, errf(loc, "strlen requires 1 argument, got %d", len(values))
		}
		a, fail := wantAtom(loc, "strlen", values[0])
		if fail != nil {
			return nil, fail
		}
		return sexp.IntAtom(loc, big.NewInt(int64(len(a.Value)))), nil

	case sexp.OpSubstr:
		return opSubstr(loc, values)

	case sexp.OpConcat:
		var out []byte
		for _, v := range values {
			a, fail := wantAtom(loc, "concat", v)
			if fail != nil {
				return nil, fail
			}
			out = append(out, a.Value...)
		}
		return sexp.NewAtom(loc, out), nil

	case sexp.OpAdd:
		return foldInts(loc, "+", values, big.NewInt(0), func(acc, v *big.Int) { acc.Add(acc, v) })

	case sexp.OpSub:
		return opSub(loc, values)

	case sexp.OpMul:
		return foldInts(loc, "*", values, big.NewInt(1), func(acc, v *big.Int) { acc.Mul(acc, v) })

	case sexp.OpDiv:
		q, _, fail := opDivmod(loc, "/", values)
		if fail != nil {
			return nil, fail
		}
		return sexp.IntAtom(loc, q), nil

	case sexp.OpDivmod:
		q, r, fail := opDivmod(loc, "divmod", values)
		if fail != nil {
			return nil, fail
		}
		return sexp.Cons(loc, sexp.IntAtom(loc, q), sexp.IntAtom(loc, r)), nil

	case sexp.OpAsh:
		return opShift(loc, "ash", values, false)

	case sexp.OpLsh:
		return opShift(loc, "lsh", values, true)

	case sexp.OpLogand:
		return foldInts(loc, "logand", values, big.NewInt(-1), func(acc, v *big.Int) { acc.And(acc, v) })

	case sexp.OpLogior:
		return foldInts(loc, "logior", values, big.NewInt(0), func(acc, v *big.Int) { acc.Or(acc, v) })

	case sexp.OpLogxor:
		return foldInts(loc, "logxor", values, big.NewInt(0), func(acc, v *big.Int) { acc.Xor(acc, v) })

	case sexp.OpLognot:
		if len(values) != 1 {
			return nil, errf(loc, "lognot requires 1 argument, got %d", len(values))
		}
		a, fail := wantAtom(loc, "lognot", values[0])
		if fail != nil {
			return nil, fail
		}
		return sexp.IntAtom(loc, new(big.Int).Not(a.Number())), nil

	case sexp.OpNot:
		if len(values) != 1 {
			return nil, errf(loc, "not requires 1 argument, got %d", len(values))
		}
		return boolAtom(loc, values[0].Nullp()), nil

	case sexp.OpAny:
		for _, v := range values {
			if !v.Nullp() {
				return one(loc), nil
			}
		}
		return sexp.Nil(loc), nil

	case sexp.OpAll:
		for _, v := range values {
			if v.Nullp() {
				return sexp.Nil(loc), nil
			}
		}
		return one(loc), nil

	case sexp.OpSoftfork:
		if len(values) < 1 {
			return nil, errf(loc, "softfork requires at least 1 argument")
		}
		return sexp.Nil(loc), nil

	case sexp.OpPointAdd, sexp.OpPubkeyForExp:
		return nil, errf(loc, "unsupported operator %s", op)
	}

	return nil, errf(loc, "unknown operator %s", op)
}

func one(loc sexp.Srcloc) *sexp.Atom {
	return sexp.NewAtom(loc, []byte{1})
}

func boolAtom(loc sexp.Srcloc, b bool) *sexp.Atom {
	if b {
		return one(loc)
	}
	return sexp.Nil(loc)
}

func wantAtom(loc sexp.Srcloc, name string, v sexp.SExp) (*sexp.Atom, Failure) {
	a, ok := v.(*sexp.Atom)
	if !ok {
		return nil, errf(loc, "%s requires atom arguments, got %s", name, v)
	}
	return a, nil
}

func onePair(loc sexp.Srcloc, name string, values []sexp.SExp) (*sexp.Pair, Failure) {
	if len(values) != 1 {
		return nil, errf(loc, "%s requires 1 argument, got %d", name, len(values))
	}
	p, ok := values[0].(*sexp.Pair)
	if !ok {
		return nil, errf(loc, "%s of non-cons %s", name, values[0])
	}
	return p, nil
}

func twoAtoms(loc sexp.Srcloc, name string, values []sexp.SExp) (*sexp.Atom, *sexp.Atom, Failure) {
	if len(values) != 2 {
		return nil, nil, errf(loc, "%s requires 2 arguments, got %d", name, len(values))
	}
	a, fail := wantAtom(loc, name, values[0])
	if fail != nil {
		return nil, nil, fail
	}
	b, fail := wantAtom(loc, name, values[1])
	if fail != nil {
		return nil, nil, fail
	}
	return a, b, nil
}

func foldInts(loc sexp.Srcloc, name string, values []sexp.SExp, acc *big.Int, combine func(acc, v *big.Int)) (sexp.SExp, Failure) {
	acc = new(big.Int).Set(acc)
	for _, v := range values {
		a, fail := wantAtom(loc, name, v)
		if fail != nil {
			return nil, fail
		}
		combine(acc, a.Number())
	}
	return sexp.IntAtom(loc, acc), nil
}

func opSub(loc sexp.Srcloc, values []sexp.SExp) (sexp.SExp, Failure) {
	if len(values) == 0 {
		return sexp.Nil(loc), nil
	}
	first, fail := wantAtom(loc, "-", values[0])
	if fail != nil {
		return nil, fail
	}
	acc := first.Number()
	for _, v := range values[1:] {
		a, fail := wantAtom(loc, "-", v)
		if fail != nil {
			return nil, fail
		}
		acc.Sub(acc, a.Number())
	}
	return sexp.IntAtom(loc, acc), nil
}

// opDivmod implements floor division: the quotient rounds toward
// negative infinity and the remainder takes the divisor's sign.
func opDivmod(loc sexp.Srcloc, name string, values []sexp.SExp) (*big.Int, *big.Int, Failure) {
	a, b, fail := twoAtoms(loc, name, values)
	if fail != nil {
		return nil, nil, fail
	}
	num, den := a.Number(), b.Number()
	if den.Sign() == 0 {
		return nil, nil, errf(loc, "%s: division by zero", name)
	}
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() != 0 && r.Sign() != den.Sign() {
		q.Sub(q, big.NewInt(1))
		r.Add(r, den)
	}
	return q, r, nil
}

func opSubstr(loc sexp.Srcloc, values []sexp.SExp) (sexp.SExp, Failure) {
	if len(values) != 2 && len(values) != 3 {
		return nil, errf(loc, "substr requires 2 or 3 arguments, got %d", len(values))
	}
	s, fail := wantAtom(loc, "substr", values[0])
	if fail != nil {
		return nil, fail
	}
	startAtom, fail := wantAtom(loc, "substr", values[1])
	if fail != nil {
		return nil, fail
	}
	start := startAtom.Number()
	end := big.NewInt(int64(len(s.Value)))
	if len(values) == 3 {
		endAtom, fail := wantAtom(loc, "substr", values[2])
		if fail != nil {
			return nil, fail
		}
		end = endAtom.Number()
	}
	if !start.IsInt64() || !end.IsInt64() {
		return nil, errf(loc, "substr: index out of range")
	}
	i, j := start.Int64(), end.Int64()
	if i < 0 || j < i || j > int64(len(s.Value)) {
		return nil, errf(loc, "substr: index out of range")
	}
	out := make([]byte, j-i)
	copy(out, s.Value[i:j])
	return sexp.NewAtom(loc, out), nil
}

func opShift(loc sexp.Srcloc, name string, values []sexp.SExp, logical bool) (sexp.SExp, Failure) {
	a, b, fail := twoAtoms(loc, name, values)
	if fail != nil {
		return nil, fail
	}
	count := b.Number()
	if !count.IsInt64() || count.Int64() > 65535 || count.Int64() < -65535 {
		return nil, errf(loc, "%s: shift count out of range", name)
	}
	var v *big.Int
	if logical {
		v = sexp.DecodePath(a.Value)
	} else {
		v = a.Number()
	}
	n := count.Int64()
	if n >= 0 {
		v = new(big.Int).Lsh(v, uint(n))
	} else {
		v = new(big.Int).Rsh(v, uint(-n))
	}
	return sexp.IntAtom(loc, v), nil
}
