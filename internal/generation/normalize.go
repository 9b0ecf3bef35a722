package generation

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// keywordNormalizations maps common variants to canonical names
var keywordNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"gcp":        "GCP",
	"aws":        "AWS",
}

// NormalizeKeyword trims a keyword and maps known variants to their canonical name. Unknown
// keywords keep the model's casing.
func NormalizeKeyword(keyword string) string {
	normalized := strings.TrimSpace(keyword)
	if canonical, ok := keywordNormalizations[strings.ToLower(normalized)]; ok {
		return canonical
	}
	return normalized
}

// NormalizeKeywords normalizes each keyword, drops empties, and removes case-insensitive
// duplicates keeping the first occurrence. The result is never nil.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		n := NormalizeKeyword(k)
		key := strings.ToLower(n)
		if n == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

func normalizeAnalysis(a *types.JDAnalysis) {
	a.Keywords.Skills = NormalizeKeywords(a.Keywords.Skills)
	a.Keywords.Tools = NormalizeKeywords(a.Keywords.Tools)
	a.Keywords.Responsibilities = NormalizeKeywords(a.Keywords.Responsibilities)
	a.Gaps = NormalizeKeywords(a.Gaps)
	a.Suggestions = strings.TrimSpace(a.Suggestions)
}

// Coverage splits the analysis' skill and tool keywords into those the CV's skill groups already
// list and those it does not.
func Coverage(a *types.JDAnalysis, data types.CVData) (found, missing []string) {
	have := make(map[string]bool)
	for _, s := range data.AllSkills() {
		have[strings.ToLower(NormalizeKeyword(s))] = true
	}

	found, missing = []string{}, []string{}
	for _, k := range NormalizeKeywords(append(append([]string{}, a.Keywords.Skills...), a.Keywords.Tools...)) {
		if have[strings.ToLower(k)] {
			found = append(found, k)
		} else {
			missing = append(missing, k)
		}
	}
	return found, missing
}
