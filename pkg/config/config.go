package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xplshn/zlex/pkg/token"
)

type Feature int

const (
	FeatDocComments Feature = iota
	FeatBuiltins
	FeatDigitSeparators
	FeatCount
)

type Warning int

const (
	WarnUnknownByte Warning = iota
	WarnMalformedNumber
	WarnIntOverflow
	WarnUnterminatedString
	WarnMalformedChar
	WarnUnterminatedChar
	WarnInvalidEscape
	WarnCount
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	Features   map[Feature]Info
	Warnings   map[Warning]Info
	FeatureMap map[string]Feature
	WarningMap map[string]Warning
	Format     Format
}

func NewConfig() *Config {
	cfg := &Config{
		FeatureMap: make(map[string]Feature),
		WarningMap: make(map[string]Warning),
		Format:     FormatText,
	}

	features := map[Feature]Info{
		FeatDocComments:     {"doc-comments", true, "Emit `///` and `//!` comments as tokens instead of skipping them."},
		FeatBuiltins:        {"builtins", true, "Recognize `@name` builtins and `@\"...\"` identifiers."},
		FeatDigitSeparators: {"digit-separators", true, "Accept `_` between digits of a number literal."},
	}

	warnings := map[Warning]Info{
		WarnUnknownByte:        {token.UnknownByte.String(), true, "Report bytes that start no token."},
		WarnMalformedNumber:    {token.MalformedNumber.String(), true, "Report radix prefixes without digits."},
		WarnIntOverflow:        {token.IntegerOverflow.String(), true, "Report integer literals that do not fit in 64 bits."},
		WarnUnterminatedString: {token.UnterminatedString.String(), true, "Report string literals missing a closing quote."},
		WarnMalformedChar:      {token.MalformedChar.String(), true, "Report empty or overlong character literals."},
		WarnUnterminatedChar:   {token.UnterminatedChar.String(), true, "Report character literals missing a closing quote."},
		WarnInvalidEscape:      {token.InvalidEscape.String(), true, "Report unrecognized escape sequences."},
	}

	cfg.Features, cfg.Warnings = features, warnings
	for ft, info := range features {
		cfg.FeatureMap[info.Name] = ft
	}
	for wt, info := range warnings {
		cfg.WarningMap[info.Name] = wt
	}
	return cfg
}

func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

func (c *Config) IsFeatureEnabled(ft Feature) bool { return c.Features[ft].Enabled }

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }

// WarningFor maps a lexer problem to the warning that controls its reporting.
func WarningFor(p token.Problem) (Warning, bool) {
	switch p {
	case token.UnknownByte:
		return WarnUnknownByte, true
	case token.MalformedNumber:
		return WarnMalformedNumber, true
	case token.IntegerOverflow:
		return WarnIntOverflow, true
	case token.UnterminatedString:
		return WarnUnterminatedString, true
	case token.MalformedChar:
		return WarnMalformedChar, true
	case token.UnterminatedChar:
		return WarnUnterminatedChar, true
	case token.InvalidEscape:
		return WarnInvalidEscape, true
	}
	return 0, false
}

// Reports tells whether diagnostics for p are enabled.
func (c *Config) Reports(p token.Problem) bool {
	wt, ok := WarningFor(p)
	return ok && c.IsWarningEnabled(wt)
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format '%s'. Supported: 'text', 'json', 'yaml'", s)
}

// ApplyFlag applies one -F/-W style flag such as "-Fno-builtins" or "-Wall".
func (c *Config) ApplyFlag(flag string) error {
	trimmed := strings.TrimPrefix(flag, "-")
	isWarning := strings.HasPrefix(trimmed, "W")
	if !isWarning && !strings.HasPrefix(trimmed, "F") {
		return fmt.Errorf("unrecognized flag '%s'", flag)
	}
	name := trimmed[1:]
	enable := !strings.HasPrefix(name, "no-")
	name = strings.TrimPrefix(name, "no-")

	if isWarning && name == "all" {
		for i := Warning(0); i < WarnCount; i++ {
			c.SetWarning(i, enable)
		}
		return nil
	}
	if isWarning {
		w, ok := c.WarningMap[name]
		if !ok {
			return fmt.Errorf("unknown warning '%s'", name)
		}
		c.SetWarning(w, enable)
		return nil
	}
	f, ok := c.FeatureMap[name]
	if !ok {
		return fmt.Errorf("unknown feature '%s'", name)
	}
	c.SetFeature(f, enable)
	return nil
}

// ProcessFlags applies -Wall and -Wno-all before any specific flag so the
// specific ones win regardless of order.
func (c *Config) ProcessFlags(flags []string) error {
	isAll := func(f string) bool { return f == "-Wall" || f == "-Wno-all" }
	for _, f := range flags {
		if isAll(f) {
			if err := c.ApplyFlag(f); err != nil {
				return err
			}
		}
	}
	for _, f := range flags {
		if !isAll(f) {
			if err := c.ApplyFlag(f); err != nil {
				return err
			}
		}
	}
	return nil
}

type fileConfig struct {
	Format   string          `toml:"format"`
	Features map[string]bool `toml:"features"`
	Warnings map[string]bool `toml:"warnings"`
}

// LoadFile overlays the settings of a TOML file onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config '%s': %w", path, err)
	}
	return c.decode(path, string(data))
}

// Decode overlays TOML settings given as text.
func (c *Config) Decode(data string) error { return c.decode("config", data) }

func (c *Config) decode(source, data string) error {
	var fc fileConfig
	md, err := toml.Decode(data, &fc)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown key '%s'", source, undecoded[0])
	}
	return c.apply(source, fc)
}

func (c *Config) apply(source string, fc fileConfig) error {
	if fc.Format != "" {
		f, err := ParseFormat(fc.Format)
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		c.Format = f
	}
	for name, enabled := range fc.Features {
		f, ok := c.FeatureMap[name]
		if !ok {
			return fmt.Errorf("%s: unknown feature '%s'", source, name)
		}
		c.SetFeature(f, enabled)
	}
	for name, enabled := range fc.Warnings {
		w, ok := c.WarningMap[name]
		if !ok {
			return fmt.Errorf("%s: unknown warning '%s'", source, name)
		}
		c.SetWarning(w, enabled)
	}
	return nil
}
