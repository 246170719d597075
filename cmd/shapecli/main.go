/*
Command shapecli is a small interactive shell for exercising the shaping
pipeline against a built-in demonstration font, printing the resulting
glyph stream as a table.

Grounded on the teacher's otcli/main.go (readline-driven REPL loop) and
otcli/table.go/print.go (pterm table rendering of per-glyph data), with
the real-font loading and ot-table browsing commands dropped since they
depended on the out-of-core-scope binary OpenType parser; this CLI
demonstrates the shaping pipeline itself against otfont/testfont's
in-memory demo font instead.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/corvid-type/shaping/gbuffer"
	"github.com/corvid-type/shaping/otfont"
	"github.com/corvid-type/shaping/otshape"
)

func main() {
	font := demoFont()
	shaper := otshape.NewShaper()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "shape> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	pterm.DefaultHeader.Println("shapecli — type text to shape it, or :q to quit")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":q" || line == ":quit" {
			return
		}
		shapeAndPrint(shaper, font, line)
	}
}

func shapeAndPrint(shaper *otshape.Shaper, font otfont.Adapter, text string) {
	runs, err := shaper.Shape(text, []otfont.Adapter{font}, otshape.Params{})
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}

	rows := [][]string{{"run", "source", "glyph", "x-adv", "y-adv", "x-off", "y-off", "flags"}}
	for ri, run := range runs {
		for _, s := range run.Stream.Slots() {
			rows = append(rows, []string{
				fmt.Sprintf("%d", ri),
				fmt.Sprintf("%d", s.SourceOffset),
				fmt.Sprintf("%d", s.GlyphID),
				fmt.Sprintf("%d", s.XAdvance),
				fmt.Sprintf("%d", s.YAdvance),
				fmt.Sprintf("%d", s.XOffset),
				fmt.Sprintf("%d", s.YOffset),
				flagString(s.Flags),
			})
		}
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		pterm.Error.Println(err.Error())
	}
}

func flagString(f gbuffer.SlotFlags) string {
	var parts []string
	if f&gbuffer.IsSubstituted != 0 {
		parts = append(parts, "subst")
	}
	if f&gbuffer.IsLigated != 0 {
		parts = append(parts, "ligated")
	}
	if f&gbuffer.IsDecomposed != 0 {
		parts = append(parts, "decomposed")
	}
	if f&gbuffer.IsMultiplied != 0 {
		parts = append(parts, "multiplied")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
