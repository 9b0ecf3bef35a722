// Package export turns a rendered CV into downloadable files: a Word-compatible
// document, a PDF printed by headless Chrome, and a spreadsheet match report.
package export

import (
	"strings"
)

// WordContentType is the media type of WordDocument output.
const WordContentType = "application/msword"

// DefaultBaseName names exports when the candidate has no full name.
const DefaultBaseName = "Professional_CV"

const wordHeader = `<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'>
<head><meta charset='utf-8'><title>CV</title><style>
body { font-family: 'Arial', sans-serif; font-size: 11pt; padding: 0.5in; }
h1 { font-size: 24pt; text-align: center; text-transform: uppercase; font-weight: bold; margin-bottom: 5pt; }
h2 { font-size: 14pt; border-bottom: 1.5pt solid #000; text-transform: uppercase; margin-top: 15pt; margin-bottom: 5pt; font-weight: bold; }
p { margin-bottom: 8pt; text-align: justify; }
ul { margin-left: 20pt; }
li { margin-bottom: 3pt; }
</style></head><body>`

const wordFooter = "</body></html>"

// WordDocument wraps rendered body markup in the HTML envelope Word opens
// as a document.
func WordDocument(bodyHTML string) []byte {
	var sb strings.Builder
	sb.Grow(len(wordHeader) + len(bodyHTML) + len(wordFooter))
	sb.WriteString(wordHeader)
	sb.WriteString(bodyHTML)
	sb.WriteString(wordFooter)
	return []byte(sb.String())
}

// WordFilename returns "<full name>.doc", or "Professional_CV.doc" when the
// name is blank.
func WordFilename(fullName string) string {
	return BaseName(fullName) + ".doc"
}

// PDFFilename mirrors WordFilename for PDF output.
func PDFFilename(fullName string) string {
	return BaseName(fullName) + ".pdf"
}

// BaseName strips characters that cannot appear in a file name.
func BaseName(fullName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, fullName)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return DefaultBaseName
	}
	return name
}
