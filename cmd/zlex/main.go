package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xplshn/zlex/pkg/cli"
	"github.com/xplshn/zlex/pkg/config"
	"github.com/xplshn/zlex/pkg/dump"
	"github.com/xplshn/zlex/pkg/lexer"
	"github.com/xplshn/zlex/pkg/token"
	"github.com/xplshn/zlex/pkg/util"
)

func main() {
	app := cli.NewApp("zlex")
	app.Synopsis = "[options] [input.zig] ..."
	app.Description = "Tokenizes Zig source and prints the token stream. Reads standard input when no file is given or the file is '-'."
	app.Authors = []string{"xplshn"}
	app.Repository = "<https://github.com/xplshn/zlex>"

	var (
		format       string
		configPath   string
		warningFlags []string
		featureFlags []string
		fingerprint  bool
		verbose      bool
		veryVerbose  bool
		quiet        bool
	)

	fs := app.FlagSet
	fs.String(&format, "format", "f", "", "Output format: text, json or yaml.", "format")
	fs.String(&configPath, "config", "c", "", "Read settings from a TOML file.", "file")
	fs.Special(&warningFlags, "W", "Enable or disable a diagnostic (-Wall, -Wno-<name>, -Werror).", "warning")
	fs.Special(&featureFlags, "F", "Enable or disable a lexer feature (-F<name>, -Fno-<name>).", "feature")
	fs.Bool(&fingerprint, "fingerprint", "", false, "Print a hash of each token stream instead of the tokens.")
	fs.Bool(&verbose, "verbose", "v", false, "Log progress.")
	fs.Bool(&veryVerbose, "vv", "", false, "Log debugging detail.")
	fs.Bool(&quiet, "quiet", "q", false, "Only log errors.")

	app.Action = func(inputFiles []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelFromFlags(veryVerbose, verbose, quiet)}))

		cfg := config.NewConfig()
		if configPath != "" {
			if err := cfg.LoadFile(configPath); err != nil {
				logger.Error("loading config", "err", err)
				return err
			}
			logger.Debug("loaded config", "path", configPath)
		}

		werror, toggles := splitWerror(warningFlags)
		if err := cfg.ProcessFlags(append(toggles, featureFlags...)); err != nil {
			logger.Error("applying flags", "err", err)
			return err
		}
		if format != "" {
			f, err := config.ParseFormat(format)
			if err != nil {
				logger.Error("applying flags", "err", err)
				return err
			}
			cfg.Format = f
		}

		if len(inputFiles) == 0 {
			inputFiles = []string{"-"}
		}
		records, err := readFiles(inputFiles)
		if err != nil {
			logger.Error("reading input", "err", err)
			return err
		}

		reporter := util.NewReporter(os.Stderr, cfg, records)
		for i, rec := range records {
			logger.Info("tokenizing", "file", rec.Name, "bytes", len(rec.Content))
			toks := tokenize(rec.Content, i, cfg, reporter)
			logger.Debug("tokenized", "file", rec.Name, "tokens", len(toks))

			if fingerprint {
				fmt.Printf("%016x  %s\n", dump.Fingerprint(toks), rec.Name)
				continue
			}
			if len(records) > 1 && cfg.Format == config.FormatText {
				fmt.Printf("== %s\n", rec.Name)
			}
			if err := dump.Write(os.Stdout, toks, cfg.Format); err != nil {
				logger.Error("writing tokens", "file", rec.Name, "err", err)
				return err
			}
		}

		if n := reporter.Count(); n > 0 {
			logger.Info("diagnostics reported", "count", n)
			if werror {
				return fmt.Errorf("%d diagnostic(s) reported with -Werror", n)
			}
		}
		return nil
	}

	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func tokenize(content []byte, fileIndex int, cfg *config.Config, reporter *util.Reporter) []token.Token {
	var toks []token.Token
	for tok := range lexer.NewLexer(content, fileIndex, cfg).All() {
		reporter.Report(tok)
		toks = append(toks, tok)
	}
	return toks
}

func readFiles(paths []string) ([]util.SourceFileRecord, error) {
	var records []util.SourceFileRecord
	for _, path := range paths {
		var content []byte
		var err error
		if path == "-" {
			content, err = io.ReadAll(os.Stdin)
			path = "<stdin>"
		} else {
			content, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("could not read file '%s': %w", path, err)
		}
		records = append(records, util.SourceFileRecord{Name: path, Content: content})
	}
	return records, nil
}

// splitWerror removes -Werror and -Wno-error from flags. The last of them
// decides whether diagnostics fail the run.
func splitWerror(flags []string) (bool, []string) {
	werror := false
	rest := make([]string, 0, len(flags))
	for _, f := range flags {
		switch f {
		case "-Werror":
			werror = true
		case "-Wno-error":
			werror = false
		default:
			rest = append(rest, f)
		}
	}
	return werror, rest
}

// levelFromFlags picks the log level: vv is debug, v is info, q is error,
// and warn otherwise. Earlier flags win.
func levelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	}
	return slog.LevelWarn
}
