package export

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDF_EmptyDocument(t *testing.T) {
	_, err := PDF(context.Background(), "", PDFOptions{})
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Contains(t, err.Error(), "document is empty")
}

func TestPDF_HeadlessChrome(t *testing.T) {
	chrome := os.Getenv("CHROME_PATH")
	if chrome == "" {
		t.Skip("CHROME_PATH not set, skipping headless print")
	}

	html := `<!DOCTYPE html><html><head><style>@page { size: Letter; margin: 0.5in; }</style></head>` +
		`<body><h1>Jane Doe</h1><p>Backend engineer.</p></body></html>`

	out, err := PDF(context.Background(), html, PDFOptions{ChromePath: chrome, Timeout: 30 * time.Second})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
