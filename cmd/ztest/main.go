// ztest checks the lexer against golden token dumps. Every fixture has a
// golden file named .<fixture>.json beside it (or in -dir).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/xplshn/zlex/pkg/dump"
	"github.com/xplshn/zlex/pkg/lexer"
)

type Golden struct {
	File        string        `json:"file"`
	SourceHash  string        `json:"source_hash"`
	Fingerprint string        `json:"fingerprint"`
	Tokens      []dump.Record `json:"tokens"`
}

type FileTestResult struct {
	File    string `json:"file"`
	Status  string `json:"status"` // PASS, FAIL, SKIP, ERROR
	Message string `json:"message,omitempty"`
	Diff    string `json:"diff,omitempty"`
}

var (
	generateGolden = flag.String("generate-golden", "", "Generate golden files for the given fixtures (space-separated globs).")
	testFiles      = flag.String("test-files", "tests/*.zig", "Glob pattern(s) for fixtures to test (space-separated).")
	skipFiles      = flag.String("skip-files", "", "Files to skip (space-separated).")
	outputJSON     = flag.String("output", ".test_results.json", "Output file for the JSON test report.")
	jsonDir        = flag.String("dir", "", "Directory to store/read golden files (defaults to the fixture's dir).")
	jobs           = flag.Int("j", 4, "Number of parallel test jobs.")
	verbose        = flag.Bool("v", false, "Enable verbose logging.")
)

const (
	cRed    = "\x1b[91m"
	cYellow = "\x1b[93m"
	cGreen  = "\x1b[92m"
	cNone   = "\x1b[0m"
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	if *generateGolden != "" {
		files, err := expandGlobPatterns(*generateGolden)
		if err != nil {
			log.Fatalf("%s[ERROR]%s Invalid glob pattern(s): %v\n", cRed, cNone, err)
		}
		for _, file := range files {
			if err := writeGolden(file); err != nil {
				log.Fatalf("%s[ERROR]%s %v\n", cRed, cNone, err)
			}
			log.Printf("%s[SUCCESS]%s Golden file created at %s\n", cGreen, cNone, goldenPath(file))
		}
		return
	}

	results := runSuite()
	printSummary(results)
	if err := writeJSONReport(results); err != nil {
		log.Printf("%s[WARN]%s %v\n", cYellow, cNone, err)
	}
	if failed(results) {
		os.Exit(1)
	}
}

// failed reports whether the run should exit non-zero: any failure or error,
// or no fixture passing at all.
func failed(results []*FileTestResult) bool {
	passed := 0
	for _, r := range results {
		switch r.Status {
		case "FAIL", "ERROR":
			return true
		case "PASS":
			passed++
		}
	}
	return passed == 0
}

func goldenPath(sourceFile string) string {
	name := "." + filepath.Base(sourceFile) + ".json"
	if *jsonDir != "" {
		return filepath.Join(*jsonDir, name)
	}
	return filepath.Join(filepath.Dir(sourceFile), name)
}

func hashBytes(data []byte) string { return fmt.Sprintf("%016x", xxhash.Sum64(data)) }

func lex(file string) (*Golden, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", file, err)
	}
	toks := lexer.Tokenize(src, nil)
	return &Golden{
		File:        filepath.Base(file),
		SourceHash:  hashBytes(src),
		Fingerprint: fmt.Sprintf("%016x", dump.Fingerprint(toks)),
		Tokens:      dump.Records(toks),
	}, nil
}

func writeGolden(file string) error {
	golden, err := lex(file)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(golden, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal golden data for %s: %w", file, err)
	}
	if *jsonDir != "" {
		if err := os.MkdirAll(*jsonDir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", *jsonDir, err)
		}
	}
	return os.WriteFile(goldenPath(file), data, 0o644)
}

func testFile(file string) *FileTestResult {
	data, err := os.ReadFile(goldenPath(file))
	if err != nil {
		return &FileTestResult{File: file, Status: "ERROR", Message: "No golden file; run with --generate-golden"}
	}
	var want Golden
	if err := json.Unmarshal(data, &want); err != nil {
		return &FileTestResult{File: file, Status: "ERROR", Message: fmt.Sprintf("Could not parse golden file: %v", err)}
	}
	got, err := lex(file)
	if err != nil {
		return &FileTestResult{File: file, Status: "ERROR", Message: err.Error()}
	}
	if want.SourceHash != got.SourceHash && *verbose {
		log.Printf("[%s] source changed since the golden file was generated", file)
	}
	if diff := cmp.Diff(want.Tokens, got.Tokens); diff != "" {
		return &FileTestResult{File: file, Status: "FAIL", Message: "Token stream differs from golden file", Diff: diff}
	}
	return &FileTestResult{File: file, Status: "PASS", Message: "fingerprint " + got.Fingerprint}
}

func runSuite() []*FileTestResult {
	files, err := expandGlobPatterns(*testFiles)
	if err != nil {
		log.Fatalf("%s[ERROR]%s Invalid glob pattern(s): %v\n", cRed, cNone, err)
	}
	if len(files) == 0 {
		log.Println("No test files found matching the pattern(s).")
		return nil
	}

	skipList := make(map[string]bool)
	for _, f := range strings.Fields(*skipFiles) {
		skipList[f] = true
	}

	tasks := make(chan string, len(files))
	resultsChan := make(chan *FileTestResult, len(files))
	var wg sync.WaitGroup
	for i := 0; i < max(*jobs, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range tasks {
				resultsChan <- testFile(file)
			}
		}()
	}

	// Feed the tasks channel, skipping fixtures with identical content
	seenHashes := make(map[string]string)
	for _, file := range files {
		if skipList[file] {
			resultsChan <- &FileTestResult{File: file, Status: "SKIP", Message: "Explicitly skipped"}
			continue
		}
		src, err := os.ReadFile(file)
		if err != nil {
			resultsChan <- &FileTestResult{File: file, Status: "ERROR", Message: fmt.Sprintf("Failed to read file for hashing: %v", err)}
			continue
		}
		hash := hashBytes(src)
		if original, seen := seenHashes[hash]; seen {
			resultsChan <- &FileTestResult{File: file, Status: "SKIP", Message: fmt.Sprintf("Content is identical to %s", original)}
			continue
		}
		seenHashes[hash] = file
		tasks <- file
	}
	close(tasks)
	wg.Wait()
	close(resultsChan)

	var results []*FileTestResult
	for r := range resultsChan {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })
	return results
}

func expandGlobPatterns(patterns string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range strings.Fields(patterns) {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func printSummary(results []*FileTestResult) {
	counts := make(map[string]int)
	for _, r := range results {
		counts[r.Status]++
		color := cGreen
		switch r.Status {
		case "FAIL", "ERROR":
			color = cRed
		case "SKIP":
			color = cYellow
		}
		fmt.Printf("%s[%s]%s %s: %s\n", color, r.Status, cNone, r.File, r.Message)
		if r.Diff != "" {
			fmt.Println(r.Diff)
		}
	}
	fmt.Printf("\n%d passed, %d failed, %d errors, %d skipped\n", counts["PASS"], counts["FAIL"], counts["ERROR"], counts["SKIP"])
}

func writeJSONReport(results []*FileTestResult) error {
	report := make(map[string]*FileTestResult, len(results))
	for _, r := range results {
		report[r.File] = r
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal test report: %w", err)
	}
	path := *outputJSON
	if *jsonDir != "" {
		path = filepath.Join(*jsonDir, *outputJSON)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write test report %s: %w", path, err)
	}
	return nil
}
