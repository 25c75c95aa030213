package sexp

// CLVM operator codes.
const (
	OpQuote        = 1
	OpApply        = 2
	OpIf           = 3
	OpCons         = 4
	OpFirst        = 5
	OpRest         = 6
	OpListp        = 7
	OpRaise        = 8
	OpEq           = 9
	OpGrBytes      = 10
	OpSha256       = 11
	OpSubstr       = 12
	OpStrlen       = 13
	OpConcat       = 14
	OpAdd          = 16
	OpSub          = 17
	OpMul          = 18
	OpDiv          = 19
	OpDivmod       = 20
	OpGr           = 21
	OpAsh          = 22
	OpLsh          = 23
	OpLogand       = 24
	OpLogior       = 25
	OpLogxor       = 26
	OpLognot       = 27
	OpPointAdd     = 29
	OpPubkeyForExp = 30
	OpNot          = 32
	OpAny          = 33
	OpAll          = 34
	OpSoftfork     = 36
)

// keywordNames maps opcode to assembler symbol. Gaps in the opcode
// space have no name.
var keywordNames = map[byte]string{
	OpQuote:        "q",
	OpApply:        "a",
	OpIf:           "i",
	OpCons:         "c",
	OpFirst:        "f",
	OpRest:         "r",
	OpListp:        "l",
	OpRaise:        "x",
	OpEq:           "=",
	OpGrBytes:      ">s",
	OpSha256:       "sha256",
	OpSubstr:       "substr",
	OpStrlen:       "strlen",
	OpConcat:       "concat",
	OpAdd:          "+",
	OpSub:          "-",
	OpMul:          "*",
	OpDiv:          "/",
	OpDivmod:       "divmod",
	OpGr:           ">",
	OpAsh:          "ash",
	OpLsh:          "lsh",
	OpLogand:       "logand",
	OpLogior:       "logior",
	OpLogxor:       "logxor",
	OpLognot:       "lognot",
	OpPointAdd:     "point_add",
	OpPubkeyForExp: "pubkey_for_exp",
	OpNot:          "not",
	OpAny:          "any",
	OpAll:          "all",
	OpSoftfork:     "softfork",
}

var keywordCodes = func() map[string]byte {
	m := make(map[string]byte, len(keywordNames))
	for code, name := range keywordNames {
		m[name] = code
	}
	return m
}()

// KeywordCode returns the opcode for an assembler symbol.
func KeywordCode(name string) (byte, bool) {
	code, ok := keywordCodes[name]
	return code, ok
}

// KeywordName returns the assembler symbol for a single-byte opcode
// atom.
func KeywordName(atom []byte) (string, bool) {
	if len(atom) != 1 {
		return "", false
	}
	name, ok := keywordNames[atom[0]]
	return name, ok
}
