package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// OOXML documents (.docx, .pptx) are zip archives of XML parts. Text
// lives in <w:t> runs for Word and <a:t> runs for PowerPoint; pulling
// the run contents is enough for retrieval purposes.
var (
	wordTextTag    = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	drawingTextTag = regexp.MustCompile(`<a:t[^>]*>([^<]*)</a:t>`)
)

// xmlPartOfInterest reports whether an archive member may carry body
// text (main document, slides).
func xmlPartOfInterest(name string) bool {
	if name == "word/document.xml" {
		return true
	}
	return strings.HasPrefix(name, "ppt/slides/") && strings.HasSuffix(name, ".xml")
}

func extractOOXML(content []byte, textTag *regexp.Regexp) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract OOXML: not a zip: %w", err)
	}

	var b strings.Builder
	for _, f := range zr.File {
		if !xmlPartOfInterest(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("extract OOXML: open %s: %w", f.Name, err)
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("extract OOXML: read %s: %w", f.Name, err)
		}

		for _, m := range textTag.FindAllStringSubmatch(buf.String(), -1) {
			run := unescapeXML(m[1])
			if run == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(run)
		}
	}

	return strings.TrimSpace(b.String()), nil
}

var xmlEntityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

func unescapeXML(s string) string {
	return xmlEntityReplacer.Replace(strings.TrimSpace(s))
}
