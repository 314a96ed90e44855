package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rawbytedev/stackie/internal/sized"
)

// cell says what a byte of the raw buffer currently is.
type cell int

const (
	cellContent    cell = iota // before the first terminator
	cellTerminator             // the first 0 byte
	cellStale                  // non-zero bytes past the terminator
	cellZero                   // 0 bytes past the terminator
)

// classify labels every byte of raw.
func classify(raw []byte) []cell {
	cells := make([]cell, len(raw))
	end := -1
	for i, b := range raw {
		switch {
		case end < 0 && b == 0:
			end = i
			cells[i] = cellTerminator
		case end < 0:
			cells[i] = cellContent
		case b == 0:
			cells[i] = cellZero
		default:
			cells[i] = cellStale
		}
	}
	return cells
}

const bytesPerRow = 16

type palette struct {
	header  lipgloss.Style
	content lipgloss.Style
	term    lipgloss.Style
	stale   lipgloss.Style
	zero    lipgloss.Style
	muted   lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		header:  r.NewStyle().Bold(true),
		content: r.NewStyle().Foreground(lipgloss.Color("#10B981")),
		term:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
		stale:   r.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		zero:    r.NewStyle().Foreground(lipgloss.Color("240")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true),
	}
}

func (p palette) style(c cell) lipgloss.Style {
	switch c {
	case cellContent:
		return p.content
	case cellTerminator:
		return p.term
	case cellStale:
		return p.stale
	}
	return p.zero
}

// renderBuffer draws buf as a hex dump. Unless all is set, rows made only of
// zero padding after the last interesting byte are folded into one line.
func renderBuffer(p palette, label string, buf sized.Buffer, all bool) string {
	raw := buf.Raw()
	cells := classify(raw)

	last := len(raw) - 1
	if !all {
		for last > 0 && cells[last] == cellZero {
			last--
		}
	}
	shown := min(len(raw), (last/bytesPerRow+1)*bytesPerRow)

	stale := 0
	for _, c := range cells {
		if c == cellStale {
			stale++
		}
	}

	lines := []string{p.header.Render(fmt.Sprintf("%s  capacity=%d length=%d stale=%d", label, buf.Cap(), buf.Len(), stale))}
	for off := 0; off < shown; off += bytesPerRow {
		end := min(off+bytesPerRow, shown)
		var hexCol, textCol strings.Builder
		for i := off; i < end; i++ {
			st := p.style(cells[i])
			hexCol.WriteString(st.Render(fmt.Sprintf("%02x", raw[i])))
			hexCol.WriteByte(' ')
			textCol.WriteString(st.Render(printable(raw[i])))
		}
		pad := strings.Repeat("   ", bytesPerRow-(end-off))
		lines = append(lines, fmt.Sprintf("%04x  %s%s |%s|", off, hexCol.String(), pad, textCol.String()))
	}
	if shown < len(raw) {
		lines = append(lines, p.muted.Render(fmt.Sprintf("... %d zero bytes", len(raw)-shown)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func printable(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return "."
}

func runInspect(e *env, args []string) error {
	var (
		via     int
		prefill string
		all     bool
	)

	flagSet := newFlagSet("inspect")
	opts := bindBufferFlags(flagSet, e.cfg)
	flagSet.IntVar(&via, "via", -1, "assign into a string of this capacity first, then copy it across")
	flagSet.StringVar(&prefill, "prefill", "", "assign this first so leftover bytes show up")
	flagSet.BoolVarP(&all, "all", "a", false, "print every byte, including trailing zero padding")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("%w: stackie inspect [flags] TEXT", errUsage)
	}

	dst, mode, err := opts.buffer()
	if err != nil {
		return err
	}
	text, err := opts.text(flagSet.Arg(0))
	if err != nil {
		return err
	}

	p := newPalette(e.stdout)
	if via < 0 {
		if prefill != "" {
			if err := dst.Assign(sized.ModeString, prefill); err != nil {
				return err
			}
		}
		if err := dst.Assign(mode, text); err != nil {
			return err
		}
		logTruncation(dst, mode, text)
		_, err = fmt.Fprintln(e.stdout, renderBuffer(p, "string", dst, all))
		return err
	}

	src, err := sized.New(via)
	if err != nil {
		return err
	}
	if prefill != "" {
		if err := src.Assign(sized.ModeString, prefill); err != nil {
			return err
		}
	}
	if err := src.Assign(mode, text); err != nil {
		return err
	}
	if err := dst.AssignFrom(src); err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "%s\n\n%s\n",
		renderBuffer(p, "source", src, all),
		renderBuffer(p, "copy", dst, all))
	return err
}
