package pdfsource

import (
	"log"
	"time"

	"github.com/ledongthuc/pdf"
)

// SignatureImage describes an image object that may be a drawn signature
type SignatureImage struct {
	Role       string // "signatory" or "representative"
	PageNumber int
	Width      int
	Height     int
	Format     string
}

// SignatureScanner locates candidate signature images in a PDF. The scan is
// explicitly bounded: it visits at most pageCap pages and stops once the
// wall-clock budget is exhausted, whichever comes first.
type SignatureScanner struct {
	pageCap   int
	budget    time.Duration
	debugMode bool
}

// NewSignatureScanner creates a bounded signature scanner
func NewSignatureScanner(pageCap int, budget time.Duration, debugMode bool) *SignatureScanner {
	return &SignatureScanner{
		pageCap:   pageCap,
		budget:    budget,
		debugMode: debugMode,
	}
}

// Scan returns up to two candidate signature images: the first image found is
// assigned the signatory role, the second the representative role. Any
// failure returns the images found so far.
func (ss *SignatureScanner) Scan(path string) []SignatureImage {
	var images []SignatureImage

	defer func() {
		if r := recover(); r != nil && ss.debugMode {
			log.Printf("signature scan: recovered: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return images
	}
	defer f.Close()

	deadline := time.Now().Add(ss.budget)
	pages := r.NumPage()
	if pages > ss.pageCap {
		pages = ss.pageCap
	}

	for pageNum := 1; pageNum <= pages && len(images) < 2; pageNum++ {
		if time.Now().After(deadline) {
			if ss.debugMode {
				log.Printf("signature scan: budget exhausted at page %d", pageNum)
			}
			break
		}
		images = append(images, ss.scanPage(r, pageNum, 2-len(images))...)
	}

	if len(images) > 0 {
		images[0].Role = "signatory"
	}
	if len(images) > 1 {
		images[1].Role = "representative"
	}

	return images
}

// scanPage extracts up to limit image descriptors from one page
func (ss *SignatureScanner) scanPage(r *pdf.Reader, pageNum, limit int) []SignatureImage {
	var images []SignatureImage

	defer func() {
		// Recover from any panics during image traversal; the scan
		// continues with the other pages.
		_ = recover()
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return images
	}

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return images
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return images
	}

	for _, key := range xObjects.Keys() {
		if len(images) >= limit {
			break
		}
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}
		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}

		img := SignatureImage{
			PageNumber: pageNum,
			Format:     "unknown",
		}
		if width := obj.Key("Width"); !width.IsNull() {
			img.Width = int(width.Int64())
		}
		if height := obj.Key("Height"); !height.IsNull() {
			img.Height = int(height.Int64())
		}
		if filter := obj.Key("Filter"); !filter.IsNull() {
			img.Format = normalizeImageFormat(filter.Name())
		}
		if img.Width > 0 && img.Height > 0 {
			images = append(images, img)
		}
	}

	return images
}

// normalizeImageFormat converts PDF filter names to more readable format names
func normalizeImageFormat(filterName string) string {
	switch filterName {
	case "DCTDecode":
		return "JPEG"
	case "JPXDecode":
		return "JPEG2000"
	case "FlateDecode":
		return "PNG"
	case "CCITTFaxDecode":
		return "TIFF"
	default:
		return filterName
	}
}
