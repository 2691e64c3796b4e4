// Package dump renders token streams for people and for golden files.
package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/xplshn/zlex/pkg/config"
	"github.com/xplshn/zlex/pkg/token"
	"gopkg.in/yaml.v3"
)

// Record is the serialized form of a token. Value holds the payload in a
// canonical textual form so that every format round-trips the same way.
// Text that is not valid UTF-8 is stored Go-quoted.
type Record struct {
	Type    string `json:"type" yaml:"type"`
	Value   string `json:"value,omitempty" yaml:"value,omitempty"`
	Problem string `json:"problem,omitempty" yaml:"problem,omitempty"`
	Line    uint   `json:"line" yaml:"line"`
	Column  uint   `json:"column" yaml:"column"`
	Width   uint   `json:"width" yaml:"width"`
}

func NewRecord(tok token.Token) Record {
	rec := Record{
		Type: tok.Type.String(), Line: tok.Line, Column: tok.Column, Width: tok.Width,
	}
	switch tok.Type {
	case token.Ident, token.Builtin, token.String, token.DocComment, token.ContainerDocComment:
		rec.Value = text(tok.Value)
	case token.Keyword:
		rec.Value = tok.Keyword.String()
	case token.Primitive:
		rec.Value = tok.Primitive.String()
	case token.Integer:
		rec.Value = strconv.FormatUint(tok.Int, 10)
	case token.Float:
		rec.Value = strconv.FormatFloat(tok.Float, 'g', -1, 64)
	case token.Char:
		rec.Value = fmt.Sprintf("%U", tok.Char)
	case token.Unknown:
		rec.Value = text(tok.Value)
		rec.Problem = tok.Problem.String()
	}
	return rec
}

func text(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strconv.Quote(s)
}

func Records(toks []token.Token) []Record {
	recs := make([]Record, len(toks))
	for i, tok := range toks {
		recs[i] = NewRecord(tok)
	}
	return recs
}

// Write renders toks to w in the given format.
func Write(w io.Writer, toks []token.Token, format config.Format) error {
	switch format {
	case config.FormatText, "":
		for _, tok := range toks {
			if _, err := fmt.Fprintln(w, tok); err != nil {
				return err
			}
		}
		return nil
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Records(toks))
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Records(toks)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format '%s'", format)
}

// Fingerprint hashes the textual form of a stream. Equal streams, spans
// included, have equal fingerprints.
func Fingerprint(toks []token.Token) uint64 {
	h := xxhash.New()
	for _, tok := range toks {
		h.WriteString(tok.String())
		h.WriteString("\n")
	}
	return h.Sum64()
}
