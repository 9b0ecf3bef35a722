package editor

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// AddBullet appends a statement.
func AddBullet(bullets []string, text string) []string {
	return append(cloneBullets(bullets), text)
}

// RemoveBullet drops the statement at index. An out-of-range index leaves the list unchanged.
func RemoveBullet(bullets []string, index int) []string {
	out := cloneBullets(bullets)
	if index < 0 || index >= len(out) {
		return out
	}
	return slices.Delete(out, index, index+1)
}

// SetBullet replaces the statement at index. An out-of-range index leaves the list unchanged.
func SetBullet(bullets []string, index int, text string) []string {
	out := cloneBullets(bullets)
	if index >= 0 && index < len(out) {
		out[index] = text
	}
	return out
}

// EditExperienceBullets applies fn to the description of one experience.
func EditExperienceBullets(list []types.Experience, id string, fn func([]string) []string) []types.Experience {
	return MapByID(list, id, experienceID, func(e types.Experience) types.Experience {
		e.Description = fn(e.Description)
		return e
	})
}

// EditProjectBullets applies fn to the description of one project.
func EditProjectBullets(list []types.Project, id string, fn func([]string) []string) []types.Project {
	return MapByID(list, id, projectID, func(p types.Project) types.Project {
		p.Description = fn(p.Description)
		return p
	})
}

// AppendExperienceBullet appends one statement to an experience.
func AppendExperienceBullet(list []types.Experience, id, text string) []types.Experience {
	return EditExperienceBullets(list, id, func(b []string) []string { return AddBullet(b, text) })
}

// AppendProjectBullet appends one statement to a project.
func AppendProjectBullet(list []types.Project, id, text string) []types.Project {
	return EditProjectBullets(list, id, func(b []string) []string { return AddBullet(b, text) })
}

// Composer drafts an achievement statement from an action verb, a scope and a metric.
type Composer interface {
	OptimizeBullet(ctx context.Context, action, scope, metric string) (string, error)
}

// ComposeBullet asks the composer for a statement. Empty results are rejected so that a failed
// generation never appends a blank line.
func ComposeBullet(ctx context.Context, c Composer, action, scope, metric string) (string, error) {
	text, err := c.OptimizeBullet(ctx, action, scope, metric)
	if err != nil {
		return "", fmt.Errorf("failed to compose bullet: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("failed to compose bullet: empty response")
	}
	return text, nil
}

func cloneBullets(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}
