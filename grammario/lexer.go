package grammario

import (
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token kinds for the bar-format lexer, mirroring the teacher's
// lr/scanner/lexmach adapter's use of lexmachine.Token.Type as a plain int
// (lr/scanner/lexmach/lexmachine.go), but kept local to this package since
// grammar files have nothing to do with the teacher's GoTo-language tokens.
const (
	tokLBRACK = iota
	tokRBRACK
	tokBar
	tokString
	tokNumber
	tokWord
)

var (
	lexerOnce sync.Once
	barLexer  *lexmachine.Lexer
	lexerErr  error
)

func makeToken(kind int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(kind, string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// barLexerInstance builds (once) and returns the lexmachine.Lexer for the
// bar grammar format, grounded on the teacher's own pattern of a package-
// level lazily-compiled lexer (lr/scanner/lexmach.NewLMAdapter).
func barLexerInstance() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lx := lexmachine.NewLexer()
		lx.Add([]byte(`\[`), makeToken(tokLBRACK))
		lx.Add([]byte(`\]`), makeToken(tokRBRACK))
		lx.Add([]byte(`\|\|\|`), makeToken(tokBar))
		lx.Add([]byte(`\"[^"]*\"`), makeToken(tokString))
		lx.Add([]byte(`[\+\-]?[0-9]+(\.[0-9]+)?([eE][\+\-]?[0-9]+)?`), makeToken(tokNumber))
		lx.Add([]byte(`[^ \t\r\n\[\]\"]+`), makeToken(tokWord))
		lx.Add([]byte(`( |\t|\r)+`), skip)
		if err := lx.Compile(); err != nil {
			lexerErr = err
			return
		}
		barLexer = lx
	})
	return barLexer, lexerErr
}

// barToken is one lexed unit of a bar-format line.
type barToken struct {
	kind int
	text string
}

// tokenizeLine lexes a single non-empty bar-format line into its tokens.
func tokenizeLine(line string) ([]barToken, error) {
	lx, err := barLexerInstance()
	if err != nil {
		return nil, err
	}
	scan, err := lx.Scanner([]byte(line))
	if err != nil {
		return nil, err
	}
	var out []barToken
	for {
		tok, err, eof := scan.Next()
		if eof {
			break
		}
		if err != nil {
			return nil, err
		}
		t := tok.(*lexmachine.Token)
		out = append(out, barToken{kind: t.Type, text: string(t.Lexeme)})
	}
	return out, nil
}
