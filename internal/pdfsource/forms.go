// Package pdfsource adapts the two raw inputs the extraction engine consumes:
// the AcroForm field dictionary of a fillable PDF and the plain text line
// stream of its pages. Both sources degrade to empty results on any failure;
// callers decide how to combine them.
package pdfsource

import (
	"fmt"
	"log"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// FormField is one named AcroForm field with its filled-in value
type FormField struct {
	Name  string
	Value string
}

// FormReader extracts AcroForm field values from fillable PDFs
type FormReader struct {
	debugMode bool
}

// NewFormReader creates a new form field reader
func NewFormReader(debugMode bool) *FormReader {
	return &FormReader{
		debugMode: debugMode,
	}
}

// Fields returns the AcroForm fields carrying a value, in the order of the
// form's Fields array. That order follows the form layout, which matters to
// callers matching loosely on field names. The result is empty when the file
// has no AcroForm, cannot be read, or the form is malformed; a single bad
// field only skips that field.
func (fr *FormReader) Fields(path string) []FormField {
	var fields []FormField

	file, err := os.Open(path)
	if err != nil {
		if fr.debugMode {
			log.Printf("form source: cannot open %s: %v", path, err)
		}
		return fields
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		if fr.debugMode {
			log.Printf("form source: cannot read PDF context: %v", err)
		}
		return fields
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return fields
	}

	rootDict, err := ctx.Catalog()
	if err != nil {
		return fields
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		if fr.debugMode {
			log.Println("form source: no AcroForm dictionary found in document")
		}
		return fields
	}

	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil || acroFormDict == nil {
		return fields
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return fields
	}

	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return fields
	}

	for i, fieldRef := range fieldsArray {
		name, value, err := fr.readField(ctx, fieldRef, i)
		if err != nil {
			if fr.debugMode {
				log.Printf("form source: skipping field %d: %v", i, err)
			}
			continue
		}
		if name == "" || value == "" {
			continue
		}
		fields = append(fields, FormField{Name: name, Value: value})
	}

	return fields
}

// readField resolves a single field dictionary into a (name, value) pair
func (fr *FormReader) readField(ctx *model.Context, fieldObj types.Object, index int) (string, string, error) {
	fieldDict, err := ctx.DereferenceDict(fieldObj)
	if err != nil {
		return "", "", fmt.Errorf("failed to dereference field: %w", err)
	}
	if fieldDict == nil {
		return "", "", nil
	}

	var name string
	if nameObj, found := fieldDict.Find("T"); found {
		if n, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil {
			name = n
		}
	}
	if name == "" {
		name = fmt.Sprintf("field_%d", index)
	}

	valueObj, found := fieldDict.Find("V")
	if !found {
		return name, "", nil
	}

	// Text fields carry string literals; checkboxes and radio groups carry
	// name objects such as /Yes or /Off.
	if val, err := ctx.DereferenceStringOrHexLiteral(valueObj, model.V10, nil); err == nil && val != "" {
		return name, val, nil
	}
	if val, err := ctx.DereferenceName(valueObj, model.V10, nil); err == nil {
		if val == "Off" {
			return name, "", nil
		}
		return name, string(val), nil
	}

	return name, "", nil
}
