package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/UncatchableAlex/Coding-Projects/pkg/solver"
)

// PuzzleReport summarizes one solved puzzle.
type PuzzleReport struct {
	Name       string        `json:"name"`
	Numbers    []int64       `json:"numbers"`
	Target     int64         `json:"target"`
	Found      bool          `json:"found"`
	Exact      bool          `json:"exact"`
	Expression string        `json:"expression,omitempty"`
	LaTeX      string        `json:"latex,omitempty"`
	Value      int64         `json:"value"`
	Distance   int64         `json:"distance"`
	Operations int           `json:"operations"`
	Verified   bool          `json:"verified"`
	Stats      solver.Stats  `json:"stats"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// Report summarizes the entire run.
type Report struct {
	Config  Config         `json:"config"`
	Puzzles []PuzzleReport `json:"puzzles"`
	Elapsed time.Duration  `json:"elapsed_ns"`
}

func formatNumbers(nums []int64) string {
	parts := make([]string, len(nums))
	for i, v := range nums {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// WritePuzzleText writes one puzzle result in human-readable format.
func WritePuzzleText(w io.Writer, r PuzzleReport) {
	fmt.Fprintf(w, "%s  %s  result: %d\n", r.Name, formatNumbers(r.Numbers), r.Target)
	switch {
	case r.Exact:
		fmt.Fprintln(w, "POSSIBLE")
		fmt.Fprintln(w, r.Expression)
	case r.Found:
		fmt.Fprintln(w, "IMPOSSIBLE")
		fmt.Fprintln(w, r.Expression)
		fmt.Fprintf(w, "No exact solution found. Try %d as a target instead (off by %d).\n", r.Value, r.Distance)
	default:
		fmt.Fprintln(w, "IMPOSSIBLE")
		fmt.Fprintln(w, "Fewer than two operands, nothing to combine.")
	}
}

// WriteText writes the report in human-readable format.
func WriteText(w io.Writer, r Report) {
	for i, p := range r.Puzzles {
		if i > 0 {
			fmt.Fprintln(w)
		}
		WritePuzzleText(w, p)
	}
}

// WriteJSON writes the report as JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// latexEscape escapes underscores and other special chars for LaTeX text mode.
func latexEscape(s string) string {
	return strings.NewReplacer(`_`, `\_`, `{`, `\{`, `}`, `\}`).Replace(s)
}

// WriteLatex writes a compilable LaTeX document with one section per puzzle.
func WriteLatex(w io.Writer, r Report) {
	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	fmt.Fprintln(w, `\title{Target expressions}`)
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w)

	for _, p := range r.Puzzles {
		fmt.Fprintf(w, "\\subsection*{%s}\n", latexEscape(p.Name))
		fmt.Fprintf(w, "\\noindent Operands: $%s$, target: $%d$\\\\\n", latexEscape(formatNumbers(p.Numbers)), p.Target)
		if !p.Found {
			fmt.Fprintln(w, "Nothing to combine.")
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintln(w, `\[`)
		if p.Exact {
			fmt.Fprintf(w, "  %s = %d\n", p.LaTeX, p.Value)
		} else {
			fmt.Fprintf(w, "  %s = %d \\approx %d\n", p.LaTeX, p.Value, p.Target)
		}
		fmt.Fprintln(w, `\]`)
	}

	fmt.Fprintln(w, `\end{document}`)
}

// Write dispatches on format ("text", "json" or "latex").
func Write(w io.Writer, format string, r Report) error {
	switch format {
	case "json":
		return WriteJSON(w, r)
	case "latex":
		WriteLatex(w, r)
		return nil
	case "text":
		WriteText(w, r)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
