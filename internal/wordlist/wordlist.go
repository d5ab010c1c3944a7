package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const maxLineSize = 1 << 20

// Read returns one candidate per line in file order. Duplicates are kept,
// empty lines are skipped and CRLF endings are accepted.
func Read(r io.Reader) ([]string, error) {
	var words []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wordlist: %w", err)
	}

	return words, nil
}

// Load reads a wordlist file
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Op is the kind of a Change
type Op int

const (
	OpEqual Op = iota
	OpAdd
	OpRemove
)

// Change is one candidate line in a Delta
type Change struct {
	Op   Op
	Word string
}

// Delta describes how wordlist b differs from wordlist a
type Delta struct {
	Added   []string
	Removed []string
	Common  int
	Changes []Change
}

// Diff compares two wordlists line by line. Order matters: moving a
// candidate shows up as a removal plus an addition.
func Diff(a, b []string) Delta {
	dmp := diffmatchpatch.New()

	// Line-mode diff
	x, y, lineArray := dmp.DiffLinesToChars(joinLines(a), joinLines(b))
	diffs := dmp.DiffMain(x, y, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var delta Delta
	for _, d := range diffs {
		for _, word := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				delta.Common++
				delta.Changes = append(delta.Changes, Change{Op: OpEqual, Word: word})
			case diffmatchpatch.DiffInsert:
				delta.Added = append(delta.Added, word)
				delta.Changes = append(delta.Changes, Change{Op: OpAdd, Word: word})
			case diffmatchpatch.DiffDelete:
				delta.Removed = append(delta.Removed, word)
				delta.Changes = append(delta.Changes, Change{Op: OpRemove, Word: word})
			}
		}
	}

	return delta
}

func joinLines(words []string) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(w)
		b.WriteByte('\n')
	}
	return b.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
