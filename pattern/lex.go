package pattern

import (
	"fmt"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexTokKind enumerates the flat token stream fed to the structuring
// pass in parse.go. Bracket nesting and grammar structure are not
// lexmachine's concern — it only classifies runs of characters, the
// same separation of duties the teacher uses between terexlang/scan.go
// (lexing) and terexlang/parse.go (structuring).
type lexTokKind int

const (
	lexText lexTokKind = iota
	lexSpace
	lexLParen
	lexRParen
	lexLBracket
	lexRBracket
	lexLBrace
	lexRBrace
	lexComma
	lexPipe
	lexTilde
	lexAt
	lexPlus
	lexMinus
	lexHash
	lexStar
	lexPercent
	lexLt
	lexUnderscore
	lexEOF
)

type lexTok struct {
	kind lexTokKind
	text string
}

// literalKinds maps each single-rune structural token kind to its
// surface text, used both to build the lexmachine lexer and to render
// a token slice back to source text (renderTokens).
var literalKinds = []struct {
	kind lexTokKind
	lit  string
}{
	{lexLParen, "("},
	{lexRParen, ")"},
	{lexLBracket, "["},
	{lexRBracket, "]"},
	{lexLBrace, "{"},
	{lexRBrace, "}"},
	{lexComma, ","},
	{lexPipe, "|"},
	{lexTilde, "~"},
	{lexAt, "@"},
	{lexPlus, "+"},
	{lexMinus, "-"},
	{lexHash, "#"},
	{lexStar, "*"},
	{lexPercent, "%"},
	{lexLt, "<"},
	{lexUnderscore, "_"},
}

var (
	lexLexer    *lexmachine.Lexer
	lexInitOnce sync.Once
	lexInitErr  error
)

func initLexer() {
	lexInitOnce.Do(func() {
		lx := lexmachine.NewLexer()
		for _, lk := range literalKinds {
			kind := lk.kind
			lx.Add([]byte(regexpEscape(lk.lit)), makeLexAction(kind))
		}
		lx.Add([]byte(`[ \t]+`), makeLexAction(lexSpace))
		// Anything else is a run of literal grapheme material, handed
		// to graph.Tokenize by the structuring pass.
		lx.Add([]byte(`[^()\[\]{},|~@+\-#*%<_ \t]+`), makeLexAction(lexText))
		if err := lx.Compile(); err != nil {
			lexInitErr = fmt.Errorf("compiling pattern lexer: %w", err)
			return
		}
		lexLexer = lx
	})
}

// regexpEscape backslash-escapes a single literal rune's UTF-8 bytes so
// it can be used verbatim as a lexmachine regex alternative.
func regexpEscape(lit string) string {
	out := make([]byte, 0, 2*len(lit))
	for i := 0; i < len(lit); i++ {
		out = append(out, '\\', lit[i])
	}
	return string(out)
}

func makeLexAction(kind lexTokKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return lexTok{kind: kind, text: string(m.Bytes)}, nil
	}
}

// lexField tokenizes a single pattern-field string into a flat token
// stream, terminated by a lexEOF token.
func lexField(field string) ([]lexTok, error) {
	initLexer()
	if lexInitErr != nil {
		return nil, lexInitErr
	}
	scan, err := lexLexer.Scanner([]byte(field))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	var toks []lexTok
	for {
		tok, err, eof := scan.Next()
		if eof {
			break
		}
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				scan.TC = ui.FailTC
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		lt := tok.(lexTok)
		tracer().Debugf("pattern lexer: kind=%d %q", lt.kind, lt.text)
		toks = append(toks, lt)
	}
	toks = append(toks, lexTok{kind: lexEOF})
	return toks, nil
}
