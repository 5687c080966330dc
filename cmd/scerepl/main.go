package main

import (
	"flag"
	"strings"

	"github.com/chzyer/readline"
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
	initDisplay()

	pterm.Info.Println("Welcome to scerepl")
	pterm.Info.Println(`type a category edit ("V = a,e,i,o,u") or a rule ("a > b / _ i"); ":words a, b" sets the working set`)

	cfg := sce.NewConfig()
	rs, _ := sce.ParseRuleset("", cfg)
	var words []string

	rl, err := readline.New("sce> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	defer rl.Close()

	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on <ctrl>D
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, ":words"); ok {
			words = splitWords(rest)
			pterm.Info.Printfln("working set: %v", words)
			continue
		}
		if diags := sce.ExtendRuleset(rs, line, cfg); len(diags) != 0 {
			for _, d := range diags {
				pterm.Error.Println(d.String())
			}
			continue
		}
		if len(words) == 0 {
			continue
		}
		out, err := sce.ApplyRuleset(words, rs, cfg)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		pterm.Info.Println(strings.Join(out, " "))
	}
	pterm.Info.Println("Good bye!")
}

func splitWords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	return fields
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
