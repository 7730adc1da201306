// Package extract implements the field-extraction engine for the intake form
// family: locating section boundaries in the unstructured text of a filled
// form, resolving labelled values inside those sections, and deriving the
// composite values the document renderers consume.
package extract

import "strings"

// SectionKind identifies one of the recognized regions of the intake form
type SectionKind string

const (
	SectionDetails      SectionKind = "details"
	SectionContact      SectionKind = "contact"
	SectionPrimaryCarer SectionKind = "primary_carer"
	SectionEmergency    SectionKind = "emergency"
)

// SectionMark records where a recognized section heading starts. A section
// ends where the next mark (of any kind) starts, or at end of document.
type SectionMark struct {
	Kind  SectionKind
	Start int
}

// maxHeadingLength is the longest line still considered a candidate section
// heading. Value lines rendered as "Label (Section Name)" or "Label: value"
// are longer or carry parentheses/colons and are excluded separately.
const maxHeadingLength = 50

// closingTopics are headings that follow the sections we care about. Seeing
// one ends the scan, but only once both the primary carer and emergency
// sections have been found; the form places them before these topics.
var closingTopics = []string{
	"needs of the client",
	"ndis information",
	"support items",
	"formal supports",
	"important people",
	"home life",
	"health information",
	"care requirements",
	"behaviour requirements",
	"other information",
	"consents",
}

// LocateSections scans the line sequence once and returns the recognized
// section headings in document order. Only the first occurrence of each kind
// is recorded; marks are strictly increasing by start index.
func LocateSections(lines []string) []SectionMark {
	var marks []SectionMark
	seen := make(map[SectionKind]bool)

	record := func(kind SectionKind, i int) {
		if seen[kind] {
			return
		}
		seen[kind] = true
		marks = append(marks, SectionMark{Kind: kind, Start: i})
	}

scan:
	for i, line := range lines {
		if !isCandidateHeading(line) {
			continue
		}
		lower := normalize(line)

		switch {
		case strings.Contains(lower, "details of the client") && !strings.Contains(lower, "contact"):
			record(SectionDetails, i)
		case strings.Contains(lower, "contact details of the client"):
			record(SectionContact, i)
		case strings.Contains(lower, "primary carer") && !strings.Contains(lower, "emergency"):
			record(SectionPrimaryCarer, i)
		case strings.Contains(lower, "emergency contact"):
			record(SectionEmergency, i)
		default:
			for _, topic := range closingTopics {
				if strings.Contains(lower, topic) {
					if seen[SectionPrimaryCarer] && seen[SectionEmergency] {
						break scan
					}
					break
				}
			}
		}
	}

	return marks
}

// isCandidateHeading reports whether a line could be a bare section title: it
// must be short and carry neither a parenthesis (value lines echo the section
// name in parentheses) nor a colon (label/value lines).
func isCandidateHeading(line string) bool {
	return len(line) < maxHeadingLength &&
		!strings.Contains(line, "(") &&
		!strings.Contains(line, ":")
}

// normalize trims and lowercases a line or label for comparison
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
