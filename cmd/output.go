package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/illarion/locksim/internal/attack"
	"github.com/illarion/locksim/internal/storage"
	"github.com/illarion/locksim/internal/wordlist"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	addStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// printResult prints the attack outcome as "Found: <bool>, guess: <cand>, time: <s>"
func printResult(w io.Writer, res *attack.Result) {
	guess := "none"
	if matched, ok := res.MatchedCandidate(); ok {
		guess = matched
	}

	status := failureStyle.Render("false")
	if res.Succeeded {
		status = successStyle.Render("true")
	}

	fmt.Fprintf(w, "Found: %s, guess: %s, time: %.2fs\n", status, guess, res.ElapsedSeconds())
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d attempt(s)", res.Attempts)))
}

// printRuns prints the journal as one line per run
func printRuns(w io.Writer, runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return
	}

	for _, r := range runs {
		outcome := failureStyle.Render("exhausted")
		if r.Succeeded {
			outcome = successStyle.Render(fmt.Sprintf("found at #%d", r.MatchIndex))
		}
		fmt.Fprintf(w, "%s  %s  %-8s %7d iters  %d/%d tried  %s  %.1f/s  %s\n",
			shortID(r.ID),
			r.Started.Format(time.DateTime),
			r.LockType,
			r.Iterations,
			r.Attempts,
			r.Candidates,
			r.Elapsed.Round(time.Millisecond),
			r.Rate(),
			outcome,
		)
	}
}

// printDelta prints a wordlist diff with +/- markers
func printDelta(w io.Writer, delta wordlist.Delta) {
	for _, c := range delta.Changes {
		switch c.Op {
		case wordlist.OpAdd:
			fmt.Fprintln(w, addStyle.Render("+ "+c.Word))
		case wordlist.OpRemove:
			fmt.Fprintln(w, removeStyle.Render("- "+c.Word))
		}
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d added, %d removed, %d common",
		len(delta.Added), len(delta.Removed), delta.Common)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
