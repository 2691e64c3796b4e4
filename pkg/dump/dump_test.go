package dump

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xplshn/zlex/pkg/config"
	"github.com/xplshn/zlex/pkg/lexer"
	"gopkg.in/yaml.v3"
)

const sample = "const x: u8 = 0x1F; // note\n@import(\"std\") 'a' 1.5 $"

func TestRecords(t *testing.T) {
	want := []Record{
		{Type: "Keyword", Value: "const", Width: 5},
		{Type: "Identifier", Value: "x", Column: 6, Width: 1},
		{Type: "Colon", Column: 7, Width: 1},
		{Type: "PrimitiveType", Value: "u8", Column: 9, Width: 2},
		{Type: "Equal", Column: 12, Width: 1},
		{Type: "Integer", Value: "31", Column: 14, Width: 4},
		{Type: "Semicolon", Column: 18, Width: 1},
		{Type: "Builtin", Value: "import", Line: 1, Width: 7},
		{Type: "LParen", Line: 1, Column: 7, Width: 1},
		{Type: "String", Value: "std", Line: 1, Column: 8, Width: 5},
		{Type: "RParen", Line: 1, Column: 13, Width: 1},
		{Type: "Char", Value: "U+0061", Line: 1, Column: 15, Width: 3},
		{Type: "Float", Value: "1.5", Line: 1, Column: 19, Width: 3},
		{Type: "Unknown", Value: "$", Problem: "unknown-byte", Line: 1, Column: 23, Width: 1},
		{Type: "EOF", Line: 1, Column: 24},
	}
	got := Records(lexer.Tokenize([]byte(sample), nil))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lexer.Tokenize([]byte("a += 1"), nil), config.FormatText))
	assert.Equal(t, "Identifier(\"a\") 0:0+1\nPlusEqual 0:2+2\nInteger(1) 0:5+1\nEOF 0:6+0\n", buf.String())
}

func TestWriteJSONAndYAMLAgree(t *testing.T) {
	toks := lexer.Tokenize([]byte(sample), nil)

	var jsonOut, yamlOut bytes.Buffer
	require.NoError(t, Write(&jsonOut, toks, config.FormatJSON))
	require.NoError(t, Write(&yamlOut, toks, config.FormatYAML))

	var fromJSON, fromYAML []Record
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &fromJSON))
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &fromYAML))
	assert.Empty(t, cmp.Diff(Records(toks), fromJSON))
	assert.Empty(t, cmp.Diff(fromJSON, fromYAML))

	assert.NotContains(t, jsonOut.String(), `"problem": ""`)
	assert.True(t, strings.HasPrefix(yamlOut.String(), "- type: Keyword\n"))
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, nil, config.Format("xml"))
	assert.ErrorContains(t, err, "unsupported format 'xml'")
}

func TestFingerprint(t *testing.T) {
	a := lexer.Tokenize([]byte(sample), nil)
	b := lexer.Tokenize([]byte(sample), nil)
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	moved := lexer.Tokenize([]byte(" "+sample), nil)
	assert.NotEqual(t, Fingerprint(a), Fingerprint(moved))
}

func TestInvalidUTF8SurvivesEncoding(t *testing.T) {
	toks := lexer.Tokenize([]byte("é\xff \"a\xffb\""), nil)
	recs := Records(toks)
	assert.Equal(t, "é"[:1], toks[0].Value)
	assert.Equal(t, `"\xc3"`, recs[0].Value)
	assert.Equal(t, `"\xa9"`, recs[1].Value)
	assert.Equal(t, `"\xff"`, recs[2].Value)
	assert.Equal(t, `"a\xffb"`, recs[3].Value)

	var jsonOut, yamlOut bytes.Buffer
	require.NoError(t, Write(&jsonOut, toks, config.FormatJSON))
	require.NoError(t, Write(&yamlOut, toks, config.FormatYAML))
	var fromJSON, fromYAML []Record
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &fromJSON))
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &fromYAML))
	assert.Empty(t, cmp.Diff(recs, fromJSON))
	assert.Empty(t, cmp.Diff(recs, fromYAML))
}
