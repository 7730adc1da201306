package extract

import (
	"log"
	"strings"

	"github.com/carefoundry/intake-server/internal/pdfsource"
)

// Fields is the flat extraction result: long-form field name → value.
// Values may be empty; absent and empty are treated the same by consumers.
type Fields map[string]string

// Get returns the value for a key, "" when absent
func (f Fields) Get(key string) string {
	return f[key]
}

// NonEmptyCount reports how many fields carry a value
func (f Fields) NonEmptyCount() int {
	n := 0
	for _, v := range f {
		if v != "" {
			n++
		}
	}
	return n
}

// Parser drives the two extraction sources across the full field schema.
// Structured form fields are preferred; the text scan always runs afterwards
// to fill whatever is still missing, because deployed forms are seen with
// genuinely empty AcroForm fields and inconsistent internal field naming.
type Parser struct {
	forms     *pdfsource.FormReader
	text      *pdfsource.TextReader
	debugMode bool
}

// NewParser creates a parser with both sources attached
func NewParser(debugMode bool) *Parser {
	return &Parser{
		forms:     pdfsource.NewFormReader(debugMode),
		text:      pdfsource.NewTextReader(debugMode),
		debugMode: debugMode,
	}
}

// ParseFile extracts the full field set from one intake PDF. It never fails:
// a source that cannot be read contributes nothing and the other source
// carries the document.
func (p *Parser) ParseFile(path string) Fields {
	data := make(Fields)

	formFields := p.forms.Fields(path)
	if len(formFields) > 0 {
		p.structuredPass(data, formFields)
	}

	lines := p.text.Lines(path)
	if len(lines) > 0 {
		p.textPass(data, lines)
	}

	if p.debugMode {
		log.Printf("extract: %s yielded %d non-empty fields", path, data.NonEmptyCount())
		for key, value := range data {
			if value != "" {
				log.Printf("extract:   %s = %q", key, value)
			}
		}
	}

	return data
}

// structuredPass fills the schema from AcroForm fields. Candidates match
// case-insensitively as substrings of the form field name; the first field
// in form order with a non-empty value wins.
func (p *Parser) structuredPass(data Fields, formFields []pdfsource.FormField) {
	for _, sf := range structuredSchema {
		data[sf.Key] = findInFormFields(formFields, sf.Candidates)
	}

	// Structured extraction is known to sometimes return the literal label
	// string for this field; the text pass re-derives it regardless, but
	// glyphs are stripped here so a good structured value stays clean.
	signing := findInFormFields(formFields, []string{"person signing the agreement", "who is signing", "signatory"})
	data[KeyPersonSigning] = StripGlyphs(signing)
}

// findInFormFields tries each candidate against every form field name in
// form order.
func findInFormFields(formFields []pdfsource.FormField, candidates []string) string {
	for _, cand := range candidates {
		candLower := normalize(cand)
		for _, ff := range formFields {
			value := strings.TrimSpace(ff.Value)
			if value == "" {
				continue
			}
			if strings.Contains(normalize(ff.Name), candLower) {
				return value
			}
		}
	}
	return ""
}

// textPass fills fields still missing after the structured pass, plus the
// fields with asymmetric rules (person signing, emergency contact, numbered
// support items, consents).
func (p *Parser) textPass(data Fields, lines []string) {
	r := NewResolver(lines)

	for _, sf := range sectionSchema {
		if data[sf.Key] == "" {
			data[sf.Key] = r.ValueInSection(sf.Labels, sf.Kind)
		}
	}

	p.fillEmergencyContact(data, r)

	for _, af := range anywhereSchema {
		if data[af.Key] == "" {
			data[af.Key] = r.ValueAfterLabel(af.Labels, 0)
		}
	}

	p.fillPersonSigning(data, r)
	p.fillSupportItems(data, r)
	p.fillConsents(data, lines)
}

// fillEmergencyContact resolves the emergency contact strictly inside the
// Emergency section; the bare labels recur under Details and Primary carer
// and must not bleed across. First/surname fall back to a whole-document
// search on the fully parenthesised label only. The relationship field has
// no fallback at all.
func (p *Parser) fillEmergencyContact(data Fields, r *Resolver) {
	if data[KeyEmergencyFirstName] == "" {
		if v := r.ValueInSection([]string{"First name"}, SectionEmergency); v != "" {
			data[KeyEmergencyFirstName] = v
		} else {
			data[KeyEmergencyFirstName] = r.ValueAfterLabel([]string{"First name (Emergency contact)"}, 0)
		}
	}
	if data[KeyEmergencySurname] == "" {
		if v := r.ValueInSection([]string{"Surname"}, SectionEmergency); v != "" {
			data[KeyEmergencySurname] = v
		} else {
			data[KeyEmergencySurname] = r.ValueAfterLabel([]string{"Surname (Emergency contact)"}, 0)
		}
	}
	if data[KeyEmergencyPhone] == "" {
		data[KeyEmergencyPhone] = r.ValueInSection([]string{"Phone", "Mobile phone", "Home phone"}, SectionEmergency)
	}
	if data[KeyEmergencyRelationship] == "" {
		data[KeyEmergencyRelationship] = r.ValueInSection([]string{"Relationship to client", "Relationship"}, SectionEmergency)
	}
	if data[KeyCarerIsEmergency] == "" {
		data[KeyCarerIsEmergency] = r.ValueAfterLabel([]string{"Is the primary carer also the emergency contact"}, 0)
	}
}

// fillPersonSigning always re-derives the signing answer from text, because
// the structured value is unreliable for this field. The text value is only
// taken when it is a real answer, not an echo of the label.
func (p *Parser) fillPersonSigning(data Fields, r *Resolver) {
	v := r.ValueAfterLabel([]string{"Person signing the agreement", "Who is signing"}, 0)
	if v == "" || normalize(v) == "person signing the agreement" {
		return
	}
	if cleaned := StripGlyphs(v); cleaned != "" {
		data[KeyPersonSigning] = cleaned
	}
}

// fillSupportItems resolves the numbered support item slots; they carry no
// enclosing section, so each uses the whole-document search.
func (p *Parser) fillSupportItems(data Fields, r *Resolver) {
	for i := 1; i <= SupportItemCount; i++ {
		key := SupportItemKey(i)
		if data[key] == "" {
			data[key] = r.ValueAfterLabel([]string{SupportItemLabel(i)}, 0)
		}
	}
}

// fillConsents matches each consent statement by its leading clause and
// takes the first bare yes/no inside a window of two lines before to five
// lines after the match.
func (p *Parser) fillConsents(data Fields, lines []string) {
	for _, clause := range ConsentClauses {
		if data[clause] != "" {
			continue
		}
		leading := normalize(strings.SplitN(clause, ".", 2)[0])

		for i, line := range lines {
			if !strings.Contains(normalize(line), leading) {
				continue
			}

			lo := i - 2
			if lo < 0 {
				lo = 0
			}
			hi := i + 6
			if hi > len(lines) {
				hi = len(lines)
			}
			for j := lo; j < hi; j++ {
				switch normalize(lines[j]) {
				case "yes", "no":
					data[clause] = lines[j]
				}
				if data[clause] != "" {
					break
				}
			}
			break
		}
	}
}
