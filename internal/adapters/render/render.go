// Package render implements a synchronous, line-buffered renderer in
// the teacher's linear-CI style: each task gets a stable colour and a
// "[name]" prefix on every line it emits, one flat chronological
// stream suited to piping through a log file or a CI console.
package render

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"

	"tasktree/internal/core/domain"
)

var colorPalette = []termenv.Color{
	termenv.ANSICyan,
	termenv.ANSIMagenta,
	termenv.ANSIYellow,
	termenv.ANSIBlue,
	termenv.ANSIBrightCyan,
	termenv.ANSIBrightMagenta,
	termenv.ANSIBrightYellow,
	termenv.ANSIBrightBlue,
}

const (
	symbolCheck = "✓"
	symbolCross = "✗"
	symbolTilde = "~"
)

// Renderer implements ports.Renderer by printing to its writer (stderr
// by default), with each line prefixed by a coloured "[name]" tag.
type Renderer struct {
	out    io.Writer
	output *termenv.Output

	mu sync.Mutex
}

// NewRenderer creates a Renderer writing to out, or os.Stderr if out
// is nil.
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stderr
	}
	return &Renderer{
		out:    out,
		output: termenv.NewOutput(out, termenv.WithProfile(termenv.ANSI)),
	}
}

func (r *Renderer) colorFor(name string) termenv.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	idx := h.Sum32() % uint32(len(colorPalette)) //nolint:gosec // palette size is small and constant
	return colorPalette[idx]
}

func (r *Renderer) prefix(name string) string {
	return r.output.String(fmt.Sprintf("[%s]", name)).Foreground(r.colorFor(name)).String()
}

// Plan prints the set of tasks selected for this run, with their
// staleness reason, before any of them starts.
func (r *Renderer) Plan(statuses []domain.TaskStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stale := 0
	for _, s := range statuses {
		if s.Stale {
			stale++
		}
	}
	_, _ = fmt.Fprintf(r.out, "Plan: %d task(s), %d to run\n", len(statuses), stale)
	for _, s := range statuses {
		name := s.Task.QualifiedName.String()
		if s.Stale {
			_, _ = fmt.Fprintf(r.out, "  %s will run (%s)\n", r.prefix(name), s.Reason)
		} else {
			_, _ = fmt.Fprintf(r.out, "  %s fresh\n", r.prefix(name))
		}
	}
}

// TaskStart announces that a task is about to execute.
func (r *Renderer) TaskStart(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.out, "%s starting\n", r.prefix(name))
}

// TaskSkipped announces that a task was left untouched because it is
// fresh.
func (r *Renderer) TaskSkipped(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	symbol := r.output.String(symbolTilde).Foreground(termenv.ANSIYellow).String()
	_, _ = fmt.Fprintf(r.out, "%s %s skipped (fresh)\n", r.prefix(name), symbol)
}

// TaskDone announces that a task finished, successfully or not.
func (r *Renderer) TaskDone(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		symbol := r.output.String(symbolCross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.out, "%s %s failed: %v\n", r.prefix(name), symbol, err)
		return
	}
	symbol := r.output.String(symbolCheck).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.out, "%s %s done\n", r.prefix(name), symbol)
}
