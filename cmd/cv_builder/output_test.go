package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/sections"
)

func TestRender_Stdout(t *testing.T) {
	setupEnv(t)
	mustRun(t, "edit", "personal", "fullName", "Ada Lovelace")

	out := mustRun(t, "render")
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Ada Lovelace")

	body := mustRun(t, "render", "--body")
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "Ada Lovelace")
}

func TestRender_EmptyVersionUsesPlaceholders(t *testing.T) {
	setupEnv(t)

	var doc rendering.Document
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "render", "--json")), &doc))
	assert.Equal(t, "Your Name", doc.Header.Name)
	assert.Equal(t, "Target Job Title", doc.Header.Title)
}

func TestRender_HiddenSectionIsOmitted(t *testing.T) {
	setupEnv(t)
	group := addEntry(t, "skills")
	mustRun(t, "edit", "skills", "set", group, "skills", "Go")

	var doc rendering.Document
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "render", "--json")), &doc))
	assert.True(t, hasSection(doc, sections.Skills))

	mustRun(t, "versions", "hide", sections.Skills)
	doc = rendering.Document{}
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "render", "--json")), &doc))
	assert.False(t, hasSection(doc, sections.Skills))
}

func hasSection(doc rendering.Document, id string) bool {
	for _, s := range doc.Sections {
		if s.ID == id {
			return true
		}
	}
	return false
}

func TestRender_ToFile(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "cv.html")

	out := mustRun(t, "render", "-o", path)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
}

func TestRender_BodyAndJSONConflict(t *testing.T) {
	setupEnv(t)

	_, err := runCLI(t, "", "render", "--body", "--json")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestExport_Word(t *testing.T) {
	setupEnv(t)
	mustRun(t, "edit", "personal", "fullName", "Ada Lovelace")
	outDir := t.TempDir()

	out := mustRun(t, "export", "word", "-o", outDir)
	path := filepath.Join(outDir, "Ada Lovelace.doc")
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "urn:schemas-microsoft-com:office:word")
	assert.Contains(t, string(data), "Ada Lovelace")
}

func TestExport_WordToNamedFile(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "mine.doc")

	mustRun(t, "export", "word", "--out", path)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
