// Package candidate assembles the ordered command sequence to submit to a
// device, either from explicit lines under an optional parent context or
// from a source file, with before/after blocks spliced around it.
package candidate

import (
	"bufio"
	"os"
	"strings"

	"github.com/configsmith/device-reconciler/internal/errors"
	"github.com/configsmith/device-reconciler/pkg/lineseq"
)

// Input describes an explicit candidate. Lines are configured under the
// single-level Parents context; Before and After are spliced verbatim and
// never reordered.
type Input struct {
	Lines   []string
	Parents []string
	Before  []string
	After   []string
}

// Build produces the flat ordered command sequence, exactly
// before ++ parents ++ lines ++ after. Pure; no side effects.
func Build(in Input) lineseq.Sequence {
	body := lineseq.FromLines(in.Lines)
	parents := lineseq.FromLines(in.Parents)

	out := make(lineseq.Sequence, 0, len(in.Before)+len(parents)+len(body)+len(in.After))
	out = append(out, in.Before...)
	out = append(out, parents...)
	out = append(out, body...)
	out = append(out, in.After...)
	return out
}

// FromFile reads a candidate configuration file line by line, dropping
// comment and blank lines and trimming the rest, preserving file order.
// A missing or unreadable file is fatal to the run before any device
// mutation.
func FromFile(path string) (lineseq.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeResourceNotFound,
			"configuration source file not found: "+path)
	}
	defer f.Close()

	seq := make(lineseq.Sequence, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || lineseq.IsComment(line) {
			continue
		}
		seq = append(seq, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeResourceNotFound,
			"failed reading configuration source file: "+path)
	}
	return seq, nil
}
