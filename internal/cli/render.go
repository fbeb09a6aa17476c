package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/charmbracelet/lipgloss"
)

// printer renders workouts for humans. Colors are only used when the
// writer is a terminal.
type printer struct {
	w      io.Writer
	title  lipgloss.Style
	date   lipgloss.Style
	dim    lipgloss.Style
	accent lipgloss.Style
	ok     lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:      w,
		title:  r.NewStyle().Bold(true),
		date:   r.NewStyle().Foreground(lipgloss.Color("12")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
		accent: r.NewStyle().Foreground(lipgloss.Color("14")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

func (p *printer) workout(w workouts.Workout) {
	fmt.Fprintf(p.w, "%s  %s\n", p.date.Render(w.Date.String()), p.title.Render(w.Name))
	if len(w.Exercises) == 0 {
		fmt.Fprintln(p.w, p.dim.Render("  (no exercises)"))
		return
	}
	for i, ex := range w.Exercises {
		fmt.Fprintf(p.w, "  %s %s\n", p.accent.Render(strconv.Itoa(i+1)+"."), exerciseLine(ex))
	}
}

func (p *printer) recent(ws []workouts.Workout) {
	if len(ws) == 0 {
		fmt.Fprintln(p.w, "No workouts yet")
		return
	}
	for _, w := range ws {
		fmt.Fprintf(p.w, "%s  %s %s\n",
			p.date.Render(w.Date.String()),
			w.Name,
			p.dim.Render(fmt.Sprintf("(%d exercises)", len(w.Exercises))),
		)
	}
}

func (p *printer) success(msg string) {
	fmt.Fprintln(p.w, p.ok.Render(msg))
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func exerciseLine(ex workouts.Exercise) string {
	name := ex.Name
	if name == "" {
		name = "(unnamed)"
	}
	b := strings.Builder{}
	b.WriteString(name)
	fmt.Fprintf(&b, " %dx%d", ex.Sets, ex.Reps)
	if ex.Weight > 0 {
		b.WriteString(" @ ")
		b.WriteString(strconv.FormatFloat(ex.Weight, 'f', -1, 64))
		b.WriteString(" kg")
	}
	if ex.Notes != "" {
		b.WriteString(" - ")
		b.WriteString(ex.Notes)
	}
	return b.String()
}
