// Package token defines the lexical vocabulary produced by the lexer: token
// types, keyword and primitive-type kinds, spans and the Token value itself.
package token

import (
	"fmt"
	"strconv"
)

type Type int

const (
	EOF Type = iota
	Unknown

	// Literals and names
	Ident
	Builtin
	Integer
	Float
	Char
	String
	DocComment
	ContainerDocComment
	Keyword
	Primitive

	// Delimiters
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Colon
	QuestionMark
	Tilde

	// Dots
	Dot
	Dot2
	Dot3
	DotAsterisk
	DotQuestionMark

	// Operators
	Bang
	BangEqual
	Equal
	EqualEqual
	EqualAngleBracketRight
	Pipe
	PipePipe
	PipeEqual
	Percent
	PercentEqual
	Caret
	CaretEqual
	Ampersand
	AmpersandEqual
	Slash
	SlashEqual
	Plus
	PlusPlus
	PlusEqual
	PlusPercent
	PlusPercentEqual
	PlusPipe
	PlusPipeEqual
	Minus
	MinusEqual
	MinusPercent
	MinusPercentEqual
	MinusPipe
	MinusPipeEqual
	Arrow
	Asterisk
	AsteriskAsterisk
	AsteriskEqual
	AsteriskPercent
	AsteriskPercentEqual
	AsteriskPipe
	AsteriskPipeEqual
	AngleBracketLeft
	AngleBracketLeftEqual
	AngleBracketAngleBracketLeft
	AngleBracketAngleBracketLeftEqual
	AngleBracketAngleBracketLeftPipe
	AngleBracketAngleBracketLeftPipeEqual
	AngleBracketRight
	AngleBracketRightEqual
	AngleBracketAngleBracketRight
	AngleBracketAngleBracketRightEqual

	typeCount
)

type typeInfo struct {
	name   string
	lexeme string
}

var types = [typeCount]typeInfo{
	EOF:                 {"EOF", ""},
	Unknown:             {"Unknown", ""},
	Ident:               {"Identifier", ""},
	Builtin:             {"Builtin", ""},
	Integer:             {"Integer", ""},
	Float:               {"Float", ""},
	Char:                {"Char", ""},
	String:              {"String", ""},
	DocComment:          {"DocComment", ""},
	ContainerDocComment: {"ContainerDocComment", ""},
	Keyword:             {"Keyword", ""},
	Primitive:           {"PrimitiveType", ""},

	LParen:       {"LParen", "("},
	RParen:       {"RParen", ")"},
	LBrace:       {"LBrace", "{"},
	RBrace:       {"RBrace", "}"},
	LBracket:     {"LBracket", "["},
	RBracket:     {"RBracket", "]"},
	Semicolon:    {"Semicolon", ";"},
	Comma:        {"Comma", ","},
	Colon:        {"Colon", ":"},
	QuestionMark: {"QuestionMark", "?"},
	Tilde:        {"Tilde", "~"},

	Dot:             {"Dot", "."},
	Dot2:            {"Dot2", ".."},
	Dot3:            {"Dot3", "..."},
	DotAsterisk:     {"DotAsterisk", ".*"},
	DotQuestionMark: {"DotQuestionMark", ".?"},

	Bang:                                  {"Bang", "!"},
	BangEqual:                             {"BangEqual", "!="},
	Equal:                                 {"Equal", "="},
	EqualEqual:                            {"EqualEqual", "=="},
	EqualAngleBracketRight:                {"EqualAngleBracketRight", "=>"},
	Pipe:                                  {"Pipe", "|"},
	PipePipe:                              {"PipePipe", "||"},
	PipeEqual:                             {"PipeEqual", "|="},
	Percent:                               {"Percent", "%"},
	PercentEqual:                          {"PercentEqual", "%="},
	Caret:                                 {"Caret", "^"},
	CaretEqual:                            {"CaretEqual", "^="},
	Ampersand:                             {"Ampersand", "&"},
	AmpersandEqual:                        {"AmpersandEqual", "&="},
	Slash:                                 {"Slash", "/"},
	SlashEqual:                            {"SlashEqual", "/="},
	Plus:                                  {"Plus", "+"},
	PlusPlus:                              {"PlusPlus", "++"},
	PlusEqual:                             {"PlusEqual", "+="},
	PlusPercent:                           {"PlusPercent", "+%"},
	PlusPercentEqual:                      {"PlusPercentEqual", "+%="},
	PlusPipe:                              {"PlusPipe", "+|"},
	PlusPipeEqual:                         {"PlusPipeEqual", "+|="},
	Minus:                                 {"Minus", "-"},
	MinusEqual:                            {"MinusEqual", "-="},
	MinusPercent:                          {"MinusPercent", "-%"},
	MinusPercentEqual:                     {"MinusPercentEqual", "-%="},
	MinusPipe:                             {"MinusPipe", "-|"},
	MinusPipeEqual:                        {"MinusPipeEqual", "-|="},
	Arrow:                                 {"Arrow", "->"},
	Asterisk:                              {"Asterisk", "*"},
	AsteriskAsterisk:                      {"AsteriskAsterisk", "**"},
	AsteriskEqual:                         {"AsteriskEqual", "*="},
	AsteriskPercent:                       {"AsteriskPercent", "*%"},
	AsteriskPercentEqual:                  {"AsteriskPercentEqual", "*%="},
	AsteriskPipe:                          {"AsteriskPipe", "*|"},
	AsteriskPipeEqual:                     {"AsteriskPipeEqual", "*|="},
	AngleBracketLeft:                      {"AngleBracketLeft", "<"},
	AngleBracketLeftEqual:                 {"AngleBracketLeftEqual", "<="},
	AngleBracketAngleBracketLeft:          {"AngleBracketAngleBracketLeft", "<<"},
	AngleBracketAngleBracketLeftEqual:     {"AngleBracketAngleBracketLeftEqual", "<<="},
	AngleBracketAngleBracketLeftPipe:      {"AngleBracketAngleBracketLeftPipe", "<<|"},
	AngleBracketAngleBracketLeftPipeEqual: {"AngleBracketAngleBracketLeftPipeEqual", "<<|="},
	AngleBracketRight:                     {"AngleBracketRight", ">"},
	AngleBracketRightEqual:                {"AngleBracketRightEqual", ">="},
	AngleBracketAngleBracketRight:         {"AngleBracketAngleBracketRight", ">>"},
	AngleBracketAngleBracketRightEqual:    {"AngleBracketAngleBracketRightEqual", ">>="},
}

func (t Type) String() string {
	if t < 0 || t >= typeCount {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return types[t].name
}

// Lexeme returns the fixed source text of a punctuation or operator type, or
// "" for types whose text varies.
func (t Type) Lexeme() string {
	if t < 0 || t >= typeCount {
		return ""
	}
	return types[t].lexeme
}

// IsOperator reports whether t is a delimiter, dot form or operator.
func (t Type) IsOperator() bool { return t >= LParen && t < typeCount }

// Types returns every defined token type in declaration order.
func Types() []Type {
	all := make([]Type, typeCount)
	for i := range all {
		all[i] = Type(i)
	}
	return all
}

// Problem explains why the lexer produced an Unknown token.
type Problem int

const (
	NoProblem Problem = iota
	UnknownByte
	MalformedNumber
	IntegerOverflow
	UnterminatedString
	MalformedChar
	UnterminatedChar
	InvalidEscape
	problemCount
)

var problems = [problemCount]struct{ name, message string }{
	NoProblem:          {"", ""},
	UnknownByte:        {"unknown-byte", "unexpected byte"},
	MalformedNumber:    {"malformed-number", "malformed number literal"},
	IntegerOverflow:    {"int-overflow", "integer literal does not fit in 64 bits"},
	UnterminatedString: {"unterminated-string", "unterminated string literal"},
	MalformedChar:      {"malformed-char", "malformed character literal"},
	UnterminatedChar:   {"unterminated-char", "unterminated character literal"},
	InvalidEscape:      {"invalid-escape", "invalid escape sequence"},
}

func (p Problem) String() string {
	if p < 0 || p >= problemCount {
		return "problem(" + strconv.Itoa(int(p)) + ")"
	}
	return problems[p].name
}

// Message is the human readable description used in diagnostics.
func (p Problem) Message() string {
	if p < 0 || p >= problemCount {
		return ""
	}
	return problems[p].message
}

// Problems returns every problem code except NoProblem.
func Problems() []Problem {
	all := make([]Problem, 0, problemCount-1)
	for p := UnknownByte; p < problemCount; p++ {
		all = append(all, p)
	}
	return all
}

// Span locates a token. Line and Column are zero-based, Column and Width
// count bytes.
type Span struct {
	Line   uint
	Column uint
	Width  uint
}

func (s Span) String() string { return fmt.Sprintf("%d:%d+%d", s.Line, s.Column, s.Width) }

// Token is a classified lexeme. Value owns its text; it never aliases the
// source buffer.
type Token struct {
	Type      Type
	Keyword   KeywordKind
	Primitive PrimitiveKind
	Int       uint64
	Float     float64
	Char      rune
	// Value is the name for Ident and Builtin, the body for String and doc
	// comments, and the raw lexeme for Unknown.
	Value     string
	Problem   Problem
	Offset    int
	FileIndex int
	Span
}

func (t Token) String() string {
	var payload string
	switch t.Type {
	case Ident, Builtin, String, DocComment, ContainerDocComment:
		payload = "(" + strconv.Quote(t.Value) + ")"
	case Keyword:
		payload = "(" + t.Keyword.String() + ")"
	case Primitive:
		payload = "(" + t.Primitive.String() + ")"
	case Integer:
		payload = "(" + strconv.FormatUint(t.Int, 10) + ")"
	case Float:
		payload = "(" + strconv.FormatFloat(t.Float, 'g', -1, 64) + ")"
	case Char:
		payload = fmt.Sprintf("(%U)", t.Char)
	case Unknown:
		payload = "(" + t.Problem.String() + " " + strconv.Quote(t.Value) + ")"
	}
	return t.Type.String() + payload + " " + t.Span.String()
}
