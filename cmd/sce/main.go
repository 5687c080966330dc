package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/orthogram/sce"
	"github.com/pterm/pterm"
)

func main() {
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))

	args := flag.Args()
	if len(args) != 5 || args[0] != "apply" {
		pterm.Error.Println("usage: sce apply <graphs-file> <cats-file> <rules-file> <words-file>")
		os.Exit(2)
	}
	graphsFile, catsFile, rulesFile, wordsFile := args[1], args[2], args[3], args[4]

	polygraphs, err := readLines(graphsFile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	catsSrc, err := readFile(catsFile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	rulesSrc, err := readFile(rulesFile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	words, err := readLines(wordsFile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}

	cfg := sce.NewConfig(sce.WithPolygraphs(polygraphs...))
	rs, diags := sce.ParseRuleset(catsSrc+"\n"+rulesSrc, cfg)
	if len(diags) != 0 {
		for _, d := range diags {
			pterm.Error.Println(d.String())
		}
		os.Exit(2)
	}

	out, err := sce.ApplyRuleset(words, rs, cfg)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	for _, w := range out {
		fmt.Println(w)
	}
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

// readLines reads path as one trimmed, non-empty entry per line —
// used for both the polygraph list and the word list, which share the
// same "one item per line" shape.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()
	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return out, nil
}
