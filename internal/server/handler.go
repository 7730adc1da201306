package server

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carefoundry/intake-server/internal/extract"
	"github.com/carefoundry/intake-server/internal/refdata"
	"github.com/carefoundry/intake-server/internal/render"
)

const flashCookie = "flash"

// generated is one rendered output held in memory until delivery
type generated struct {
	name string
	data []byte
}

// handleIndex renders the upload form, surfacing any pending flash message
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var flash string
	if c, err := r.Cookie(flashCookie); err == nil {
		if v, err := url.QueryUnescape(c.Value); err == nil {
			flash = v
		}
		http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, map[string]string{"Flash": flash}); err != nil {
		log.Printf("index render: %v", err)
	}
}

// handleUpload runs the full pipeline for one uploaded form: validate,
// save to scratch, extract once, render the selected outputs, deliver.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadSize); err != nil {
		s.flashAndRedirect(w, r, "Upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.flashAndRedirect(w, r, "No file selected")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		s.flashAndRedirect(w, r, "Invalid file type. Please upload a PDF file.")
		return
	}

	selected := selectedOutputs(r)
	if len(selected) == 0 {
		s.flashAndRedirect(w, r, "Please select at least one output to generate")
		return
	}

	scratch, err := s.saveScratch(file, header.Filename)
	if err != nil {
		log.Printf("upload: saving scratch copy: %v", err)
		s.flashAndRedirect(w, r, "Error saving file")
		return
	}
	defer func() {
		if err := os.Remove(scratch); err != nil {
			log.Printf("upload: removing scratch file %s: %v", scratch, err)
		}
	}()

	fields := s.parser.ParseFile(scratch)
	s.logSignatures(scratch)

	items := refdata.LoadSupportItems(s.cfg.SupportItemsCSV)
	staff := s.staffFor(fields)
	contactName := strings.TrimSpace(r.FormValue("contact_name"))

	outputs := make([]generated, 0, len(selected))
	for _, kind := range selected {
		out, err := s.renderOutput(kind, fields, items, staff, contactName)
		if err != nil {
			log.Printf("upload: rendering %s: %v", kind, err)
			s.flashAndRedirect(w, r, fmt.Sprintf("Error processing file: %v", err))
			return
		}
		outputs = append(outputs, out)
	}

	s.deliver(w, r, outputs)
}

// outputOrder fixes the checkbox processing order so zip bundles are stable
var outputOrder = []string{
	"generate_csv",
	"generate_service_agreement",
	"generate_emergency_plan",
	"generate_service_estimate",
	"generate_risk_assessment",
	"generate_support_plan",
	"generate_medication_plan",
}

func selectedOutputs(r *http.Request) []string {
	var selected []string
	for _, name := range outputOrder {
		if r.FormValue(name) == "1" {
			selected = append(selected, name)
		}
	}
	return selected
}

// renderOutput builds one selected document in memory
func (s *Server) renderOutput(kind string, fields extract.Fields, items *refdata.SupportItemTable, staff *refdata.StaffDirectory, contactName string) (generated, error) {
	var buf bytes.Buffer
	var name string
	var err error

	switch kind {
	case "generate_csv":
		name = "client_export.csv"
		err = render.WriteClientRecord(&buf, fields)
	case "generate_service_agreement":
		name = "Service Agreement.pdf"
		err = render.WriteServiceAgreement(&buf, fields, items, staff, contactName, s.theme)
	case "generate_emergency_plan":
		name = "Emergency & Disaster Plan.pdf"
		err = render.WriteEmergencyPlan(&buf, fields, staff, contactName, s.theme)
	case "generate_service_estimate":
		name = "Service Estimate.csv"
		err = render.WriteServiceEstimate(&buf, fields, items)
	case "generate_risk_assessment":
		name = "Risk Assessment.pdf"
		err = render.WriteRiskAssessment(&buf, fields, staff, contactName, s.theme)
	case "generate_support_plan":
		name = render.PlanFileName("Support Plan", fields, ".docx", time.Now())
		err = render.WriteSupportPlan(&buf, fields, items, staff, contactName, s.theme)
	case "generate_medication_plan":
		name = render.PlanFileName("Medication Assistance Plan", fields, ".docx", time.Now())
		err = render.WriteMedicationPlan(&buf, fields, staff, contactName, s.theme)
	default:
		return generated{}, fmt.Errorf("unknown output %q", kind)
	}
	if err != nil {
		return generated{}, err
	}
	return generated{name: name, data: buf.Bytes()}, nil
}

// deliver sends a single output directly, or bundles several into a zip
func (s *Server) deliver(w http.ResponseWriter, r *http.Request, outputs []generated) {
	if len(outputs) == 1 {
		sendAttachment(w, outputs[0].name, outputs[0].data)
		return
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, out := range outputs {
		f, err := zw.Create(out.name)
		if err == nil {
			_, err = f.Write(out.data)
		}
		if err != nil {
			log.Printf("upload: bundling %s: %v", out.name, err)
			s.flashAndRedirect(w, r, "Error bundling outputs")
			return
		}
	}
	if err := zw.Close(); err != nil {
		log.Printf("upload: finalizing bundle: %v", err)
		s.flashAndRedirect(w, r, "Error bundling outputs")
		return
	}

	sendAttachment(w, "outputs.zip", buf.Bytes())
}

func sendAttachment(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", contentTypeFor(name))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	if _, err := w.Write(data); err != nil {
		log.Printf("upload: writing response: %v", err)
	}
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}

// saveScratch writes the upload under a uuid-prefixed name in the scratch
// directory.
func (s *Server) saveScratch(file io.Reader, original string) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String(), sanitizeFilename(original))
	path := filepath.Join(s.cfg.UploadDir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write scratch file: %w", err)
	}
	return path, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	if base == "" || base == "." {
		base = "upload.pdf"
	}
	return base
}

// staffFor picks the staff directory for the state the representative team
// maps to.
func (s *Server) staffFor(fields extract.Fields) *refdata.StaffDirectory {
	state := refdata.TeamState(extract.StripGlyphs(fields[extract.KeyRepresentativeTeam]))
	if state == refdata.StateNSW {
		return refdata.LoadStaffDirectory(s.cfg.StaffCSVNSW)
	}
	return refdata.LoadStaffDirectory(s.cfg.StaffCSVWA)
}

func (s *Server) flashAndRedirect(w http.ResponseWriter, r *http.Request, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:  flashCookie,
		Value: url.QueryEscape(msg),
		Path:  "/",
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

var indexTemplate = template.Must(template.New("index").Parse(indexPage))

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Client Intake</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; color: #222; }
h1 { color: #316DB2; }
.flash { background: #fdecea; border: 1px solid #d93025; padding: 0.6rem 1rem; margin-bottom: 1rem; }
fieldset { border: 1px solid #ccc; margin-bottom: 1rem; padding: 1rem; }
label { display: block; margin: 0.3rem 0; }
button { background: #316DB2; color: #fff; border: 0; padding: 0.6rem 1.4rem; cursor: pointer; }
</style>
</head>
<body>
<h1>Client Intake</h1>
{{if .Flash}}<div class="flash">{{.Flash}}</div>{{end}}
<form method="post" action="/upload" enctype="multipart/form-data">
<fieldset>
<legend>Welcoming form (PDF)</legend>
<input type="file" name="file" accept=".pdf" required>
</fieldset>
<fieldset>
<legend>Outputs</legend>
<label><input type="checkbox" name="generate_csv" value="1" checked> Client record CSV</label>
<label><input type="checkbox" name="generate_service_agreement" value="1"> Service Agreement</label>
<label><input type="checkbox" name="generate_emergency_plan" value="1"> Emergency &amp; Disaster Plan</label>
<label><input type="checkbox" name="generate_service_estimate" value="1"> Service Estimate</label>
<label><input type="checkbox" name="generate_risk_assessment" value="1"> Risk Assessment</label>
<label><input type="checkbox" name="generate_support_plan" value="1"> Support Plan</label>
<label><input type="checkbox" name="generate_medication_plan" value="1"> Medication Assistance Plan</label>
</fieldset>
<fieldset>
<legend>Key contact (optional)</legend>
<input type="text" name="contact_name" placeholder="Staff member name">
</fieldset>
<button type="submit">Generate</button>
</form>
</body>
</html>`
