package rendering

import (
	_ "embed"
	"html/template"
	"strings"
	"sync"
)

//go:embed template.html.tmpl
var templateSource string

var (
	parsedOnce sync.Once
	parsed     *template.Template
	parseErr   error
)

// parseTemplate parses the embedded print template once.
func parseTemplate() (*template.Template, error) {
	parsedOnce.Do(func() {
		parsed, parseErr = template.New("cv").Parse(templateSource)
		if parseErr != nil {
			parseErr = &TemplateError{Message: "failed to parse template", Cause: parseErr}
		}
	})
	return parsed, parseErr
}

// RenderHTML renders the complete standalone page, including the print stylesheet.
func RenderHTML(doc *Document) (string, error) {
	return execute("page", doc)
}

// RenderBodyHTML renders only the document markup, without the page shell and stylesheet.
func RenderBodyHTML(doc *Document) (string, error) {
	return execute("body", doc)
}

func execute(name string, doc *Document) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "document is nil"}
	}
	tmpl, err := parseTemplate()
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.ExecuteTemplate(&result, name, doc); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template " + name,
			Cause:   err,
		}
	}
	return result.String(), nil
}
