package extract

import "strings"

const (
	// lookaheadWindow is how many lines past a matched label are inspected
	// for its value inside a section.
	lookaheadWindow = 4

	// anywhereLookahead is the shorter window used by the whole-document
	// fallback search.
	anywhereLookahead = 2

	// maxValueLength rejects reflowed instruction paragraphs masquerading
	// as values.
	maxValueLength = 80

	// maxLabelLength bounds the label-stem check: a long or parenthesised
	// candidate line that merely contains a label word is still a value.
	maxLabelLength = 50
)

// glyphOnlyLines are lines consisting of a single checkbox or bullet artifact
var glyphOnlyLines = map[string]bool{
	"•": true,
	"●": true,
	"○": true,
	"☐": true,
	"☑": true,
	"✓": true,
	"": true,
}

// Resolver finds labelled values in the text line sequence of one document.
// It is built once per parse and holds no state beyond the lines and the
// located section marks.
type Resolver struct {
	lines []string
	marks []SectionMark
}

// NewResolver locates the sections of lines and returns a resolver over them
func NewResolver(lines []string) *Resolver {
	return &Resolver{
		lines: lines,
		marks: LocateSections(lines),
	}
}

// Marks exposes the located section marks, in document order
func (r *Resolver) Marks() []SectionMark {
	return r.marks
}

// sectionRange returns the half-open line range of the first section of the
// given kind. The section ends at the next mark of any kind, or at the end of
// the document.
func (r *Resolver) sectionRange(kind SectionKind) (start, end int, ok bool) {
	for _, m := range r.marks {
		if m.Kind != kind {
			continue
		}
		start = m.Start
		end = len(r.lines)
		for _, n := range r.marks {
			if n.Start > m.Start {
				end = n.Start
				break
			}
		}
		return start, end, true
	}
	return 0, 0, false
}

// ValueInSection returns the first value matching any of the label variants
// inside the section of the given kind, or "" when the section is absent or
// no label matches.
func (r *Resolver) ValueInSection(labels []string, kind SectionKind) string {
	start, end, ok := r.sectionRange(kind)
	if !ok {
		return ""
	}

	for i := start; i < end; i++ {
		lower := normalize(r.lines[i])

		for _, label := range labels {
			if !labelMatches(lower, normalize(label)) {
				continue
			}

			// Same-line extraction: "Home phone: 0400 000 000"
			if v := valueAfterColon(r.lines[i]); v != "" {
				return v
			}

			// Lookahead: the answer often lands on its own line after
			// reflow, possibly separated by checkbox artifacts or a
			// stray label.
			limit := i + 1 + lookaheadWindow
			if limit > end {
				limit = end
			}
			for j := i + 1; j < limit; j++ {
				if v := r.lines[j]; isValueLine(v) {
					return v
				}
			}
			// No survivor in the window: treat as a non-match and keep
			// scanning the section.
		}
	}

	return ""
}

// ValueAfterLabel searches the whole document forward from the given line
// index for the first line containing any label variant, and returns the
// adjacent value. It is the fallback for fields that have no enclosing
// section.
func (r *Resolver) ValueAfterLabel(labels []string, from int) string {
	for i := from; i < len(r.lines); i++ {
		lower := normalize(r.lines[i])

		for _, label := range labels {
			labelLower := normalize(label)
			if !strings.Contains(lower, labelLower) {
				continue
			}

			if v := valueAfterColon(r.lines[i]); v != "" {
				return v
			}

			limit := i + 1 + anywhereLookahead
			if limit > len(r.lines) {
				limit = len(r.lines)
			}
			for j := i + 1; j < limit; j++ {
				next := r.lines[j]
				if glyphOnlyLines[next] {
					continue
				}
				// Not the label echoed again
				if normalize(next) == labelLower {
					continue
				}
				return next
			}
		}
	}

	return ""
}

// labelMatches applies the three acceptance rules for a section-scoped label:
// exact equality, equality after stripping section parentheticals from both
// sides, or the line starting with the label.
func labelMatches(lineLower, labelLower string) bool {
	if lineLower == labelLower {
		return true
	}
	if stripSectionSuffixes(lineLower) == stripSectionSuffixes(labelLower) {
		return true
	}
	return strings.HasPrefix(lineLower, labelLower)
}

// stripSectionSuffixes removes the known "(... of the client)" echoes
func stripSectionSuffixes(s string) string {
	for _, suffix := range sectionSuffixes {
		s = strings.ReplaceAll(s, suffix, "")
	}
	return strings.TrimSpace(s)
}

// valueAfterColon returns the trimmed text after the first colon, or ""
func valueAfterColon(line string) string {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}

// isValueLine filters lookahead candidates: checkbox artifacts, other field
// labels, overlong reflow fragments and instruction text are all skipped.
func isValueLine(line string) bool {
	if line == "" || glyphOnlyLines[line] {
		return false
	}

	lower := normalize(line)

	if len(line) > maxValueLength {
		return false
	}
	for _, phrase := range instructionPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}

	short := len(line) < maxLabelLength && !strings.Contains(line, "(")
	for _, stem := range fieldLabelStems {
		if stem == lower {
			return false
		}
		if short && strings.Contains(lower, stem) {
			return false
		}
	}

	return true
}
