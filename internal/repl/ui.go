package repl

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v3"

	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/internal/highlight"
	"github.com/tribhasha/tribhasha/internal/lexer"
	"github.com/tribhasha/tribhasha/pkg/token"
)

const prompt = "tribhasha> "

// run is one styled run of text within a logLine.
type run struct {
	text  string
	style tcell.Style
}

// logLine is one line of scrollback, rendered as a sequence of styled
// runs so keywords, literals, and errors can each carry their own
// color within the same line.
type logLine []run

func plain(text string, style tcell.Style) logLine {
	return logLine{{text: text, style: style}}
}

// Run drives the interactive shell against a real terminal screen.
// Line editing is intentionally minimal — printable runes, backspace,
// enter — matching the scope of the original's own readLine helper
// (original_source/src/repl/REPL.cpp).
func Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	interp := New()
	var history []logLine
	var input []rune

	history = append(history,
		plain("त्रिभाषा (Tribhasha) — interactive shell", tcell.StyleDefault.Bold(true)),
		plain("Enter an expression, a statement, or a function declaration. Ctrl+C to quit.", tcell.StyleDefault.Dim(true)),
	)

	redraw := func() {
		screen.Clear()
		_, rows := screen.Size()
		lines := make([]logLine, len(history))
		copy(lines, history)
		lines = append(lines, inputLine(input))

		start := 0
		if len(lines) > rows {
			start = len(lines) - rows
		}
		for y, l := range lines[start:] {
			drawLine(screen, y, l)
		}
		screen.Show()
	}

	redraw()
	for {
		ev := screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
			redraw()
		case *tcell.EventKey:
			switch e.Key() {
			case tcell.KeyCtrlC, tcell.KeyEscape:
				return nil
			case tcell.KeyEnter:
				line := string(input)
				input = nil
				history = append(history, plain(prompt+line, tcell.StyleDefault.Bold(true)))
				result := interp.Eval(line)
				history = append(history, resultLines(result)...)
				redraw()
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(input) > 0 {
					input = input[:len(input)-1]
				}
				redraw()
			case tcell.KeyRune:
				input = append(input, e.Rune())
				redraw()
			}
		}
	}
}

// inputLine renders the in-progress input, colored token by token as
// it would be accepted by the lexer, with a plain prompt prefix.
func inputLine(input []rune) logLine {
	line := logLine{{text: prompt, style: tcell.StyleDefault}}
	text := string(input)
	if text == "" {
		return line
	}

	sink := diag.NewSink(nil)
	toks := lexer.New(text, sink).Tokens()
	pos := 0
	for _, t := range toks {
		if t.Kind == token.EOF {
			break
		}
		idx := indexFrom(text, t.Lexeme, pos)
		if idx < 0 {
			continue
		}
		if idx > pos {
			line = append(line, run{text: text[pos:idx], style: tcell.StyleDefault})
		}
		line = append(line, run{text: t.Lexeme, style: tokenStyle(t.Kind)})
		pos = idx + len(t.Lexeme)
	}
	if pos < len(text) {
		line = append(line, run{text: text[pos:], style: tcell.StyleDefault})
	}
	return line
}

// indexFrom finds lexeme in text at or after byte offset from,
// avoiding a rescan of already-colored text for repeated lexemes.
func indexFrom(text, lexeme string, from int) int {
	if lexeme == "" || from > len(text) {
		return -1
	}
	for i := from; i+len(lexeme) <= len(text); i++ {
		if text[i:i+len(lexeme)] == lexeme {
			return i
		}
	}
	return -1
}

func resultLines(r Result) []logLine {
	var out []logLine
	if r.Defined != "" {
		out = append(out, plain(fmt.Sprintf("  defined %s", r.Defined), tcell.StyleDefault.Foreground(tcell.ColorGreen)))
		return out
	}
	if !r.Ran {
		return out
	}
	for _, d := range r.Diagnostics {
		out = append(out, plain("  "+d, tcell.StyleDefault.Foreground(tcell.ColorRed)))
	}
	if len(r.Diagnostics) == 0 {
		out = append(out, plain(fmt.Sprintf("  => %d", r.ExitCode), tcell.StyleDefault.Foreground(tcell.ColorTeal)))
	}
	return out
}

func drawLine(screen tcell.Screen, y int, l logLine) {
	x := 0
	for _, r := range l {
		for _, ch := range r.text {
			screen.SetContent(x, y, ch, nil, r.style)
			x++
		}
	}
}

// tokenStyle maps a chroma token category (via highlight.Classify) to
// a tcell display style for live input coloring.
func tokenStyle(kind token.Kind) tcell.Style {
	switch highlight.Classify(kind) {
	case chroma.Keyword, chroma.KeywordConstant:
		return tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	case chroma.LiteralNumberInteger, chroma.LiteralNumberFloat:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case chroma.LiteralString:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	case chroma.Error:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	default:
		return tcell.StyleDefault
	}
}
