// Package schemas holds the JSON Schema documents for the structured artifacts the builder reads and
// writes: the persisted version snapshot and the job-description analysis returned by the model.
package schemas

import (
	"embed"
	"fmt"
	"io/fs"
)

// Schema file names
const (
	JDAnalysis = "jd_analysis.schema.json"
	CVSnapshot = "cv_snapshot.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the content of an embedded schema file.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not found: %w", name, err)
	}
	return string(data), nil
}

// Names lists every embedded schema file.
func Names() ([]string, error) {
	return fs.Glob(files, "*.schema.json")
}
