package token

import (
	"slices"
	"strconv"
	"strings"
)

type KeywordKind int

const (
	KwAddrspace KeywordKind = iota
	KwAlign
	KwAllowzero
	KwAnd
	KwAnyframe
	KwAnytype
	KwAsm
	KwAsync
	KwAwait
	KwBreak
	KwCallconv
	KwCatch
	KwComptime
	KwConst
	KwContinue
	KwDefer
	KwElse
	KwEnum
	KwErrdefer
	KwError
	KwExport
	KwExtern
	KwFn
	KwFor
	KwIf
	KwInline
	KwLinksection
	KwNoalias
	KwNoinline
	KwNosuspend
	KwOpaque
	KwOr
	KwOrelse
	KwPacked
	KwPub
	KwResume
	KwReturn
	KwStruct
	KwSuspend
	KwSwitch
	KwTest
	KwThreadlocal
	KwTry
	KwUnion
	KwUnreachable
	KwUsingnamespace
	KwVar
	KwVolatile
	KwWhile
	keywordCount
)

var keywordText = [keywordCount]string{
	KwAddrspace:      "addrspace",
	KwAlign:          "align",
	KwAllowzero:      "allowzero",
	KwAnd:            "and",
	KwAnyframe:       "anyframe",
	KwAnytype:        "anytype",
	KwAsm:            "asm",
	KwAsync:          "async",
	KwAwait:          "await",
	KwBreak:          "break",
	KwCallconv:       "callconv",
	KwCatch:          "catch",
	KwComptime:       "comptime",
	KwConst:          "const",
	KwContinue:       "continue",
	KwDefer:          "defer",
	KwElse:           "else",
	KwEnum:           "enum",
	KwErrdefer:       "errdefer",
	KwError:          "error",
	KwExport:         "export",
	KwExtern:         "extern",
	KwFn:             "fn",
	KwFor:            "for",
	KwIf:             "if",
	KwInline:         "inline",
	KwLinksection:    "linksection",
	KwNoalias:        "noalias",
	KwNoinline:       "noinline",
	KwNosuspend:      "nosuspend",
	KwOpaque:         "opaque",
	KwOr:             "or",
	KwOrelse:         "orelse",
	KwPacked:         "packed",
	KwPub:            "pub",
	KwResume:         "resume",
	KwReturn:         "return",
	KwStruct:         "struct",
	KwSuspend:        "suspend",
	KwSwitch:         "switch",
	KwTest:           "test",
	KwThreadlocal:    "threadlocal",
	KwTry:            "try",
	KwUnion:          "union",
	KwUnreachable:    "unreachable",
	KwUsingnamespace: "usingnamespace",
	KwVar:            "var",
	KwVolatile:       "volatile",
	KwWhile:          "while",
}

func (k KeywordKind) String() string {
	if k < 0 || k >= keywordCount {
		return "keyword(" + strconv.Itoa(int(k)) + ")"
	}
	return keywordText[k]
}

type PrimitiveKind int

const (
	PrimI8 PrimitiveKind = iota
	PrimU8
	PrimI16
	PrimU16
	PrimI32
	PrimU32
	PrimI64
	PrimU64
	PrimI128
	PrimU128
	PrimIsize
	PrimUsize
	PrimCChar
	PrimCShort
	PrimCUshort
	PrimCInt
	PrimCUint
	PrimCLong
	PrimCUlong
	PrimCLonglong
	PrimCUlonglong
	PrimCLongdouble
	PrimF16
	PrimF32
	PrimF64
	PrimF80
	PrimF128
	PrimBool
	PrimVoid
	PrimNoreturn
	PrimType
	PrimAnyerror
	PrimAnyopaque
	PrimComptimeInt
	PrimComptimeFloat
	primitiveCount
)

var primitiveText = [primitiveCount]string{
	PrimI8:            "i8",
	PrimU8:            "u8",
	PrimI16:           "i16",
	PrimU16:           "u16",
	PrimI32:           "i32",
	PrimU32:           "u32",
	PrimI64:           "i64",
	PrimU64:           "u64",
	PrimI128:          "i128",
	PrimU128:          "u128",
	PrimIsize:         "isize",
	PrimUsize:         "usize",
	PrimCChar:         "c_char",
	PrimCShort:        "c_short",
	PrimCUshort:       "c_ushort",
	PrimCInt:          "c_int",
	PrimCUint:         "c_uint",
	PrimCLong:         "c_long",
	PrimCUlong:        "c_ulong",
	PrimCLonglong:     "c_longlong",
	PrimCUlonglong:    "c_ulonglong",
	PrimCLongdouble:   "c_longdouble",
	PrimF16:           "f16",
	PrimF32:           "f32",
	PrimF64:           "f64",
	PrimF80:           "f80",
	PrimF128:          "f128",
	PrimBool:          "bool",
	PrimVoid:          "void",
	PrimNoreturn:      "noreturn",
	PrimType:          "type",
	PrimAnyerror:      "anyerror",
	PrimAnyopaque:     "anyopaque",
	PrimComptimeInt:   "comptime_int",
	PrimComptimeFloat: "comptime_float",
}

func (p PrimitiveKind) String() string {
	if p < 0 || p >= primitiveCount {
		return "primitive(" + strconv.Itoa(int(p)) + ")"
	}
	return primitiveText[p]
}

type entry[K any] struct {
	text string
	kind K
}

// table is a name lookup sorted by text. It is built once at package
// initialisation and only read afterwards, so any number of lexers may share it.
type table[K any] []entry[K]

func newTable[K any](texts []string, kind func(int) K) table[K] {
	t := make(table[K], len(texts))
	for i, s := range texts {
		t[i] = entry[K]{s, kind(i)}
	}
	slices.SortFunc(t, func(a, b entry[K]) int { return strings.Compare(a.text, b.text) })
	return t
}

func (t table[K]) lookup(s string) (K, bool) {
	i, found := slices.BinarySearchFunc(t, s, func(e entry[K], s string) int { return strings.Compare(e.text, s) })
	if !found {
		var zero K
		return zero, false
	}
	return t[i].kind, true
}

var (
	keywords   = newTable(keywordText[:], func(i int) KeywordKind { return KeywordKind(i) })
	primitives = newTable(primitiveText[:], func(i int) PrimitiveKind { return PrimitiveKind(i) })
)

// LookupKeyword maps identifier text to its keyword kind.
func LookupKeyword(s string) (KeywordKind, bool) { return keywords.lookup(s) }

// LookupPrimitive maps identifier text to its primitive type kind.
func LookupPrimitive(s string) (PrimitiveKind, bool) { return primitives.lookup(s) }

// Keywords returns the keyword spellings in kind order.
func Keywords() []string { return slices.Clone(keywordText[:]) }

// PrimitiveTypes returns the primitive type spellings in kind order.
func PrimitiveTypes() []string { return slices.Clone(primitiveText[:]) }
