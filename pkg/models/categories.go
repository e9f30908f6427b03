package models

import "strings"

// RepositoryCategory identifies a package-repository ecosystem in Artifactory.
type RepositoryCategory string

const (
	CategoryPyPI   RepositoryCategory = "pypi"
	CategoryNPM    RepositoryCategory = "npm"
	CategoryMaven  RepositoryCategory = "maven"
	CategoryGo     RepositoryCategory = "go"
	CategoryDocker RepositoryCategory = "docker"
	CategoryNuGet  RepositoryCategory = "nuget"
)

// categoryAliases maps alternate spellings to canonical categories
var categoryAliases = map[string]RepositoryCategory{
	"python":     CategoryPyPI,
	"pip":        CategoryPyPI,
	"javascript": CategoryNPM,
	"js":         CategoryNPM,
	"node":       CategoryNPM,
	"java":       CategoryMaven,
	"golang":     CategoryGo,
	"container":  CategoryDocker,
	"dotnet":     CategoryNuGet,
	"csharp":     CategoryNuGet,
}

// AllRepositoryCategories returns every known category in display order.
// This is also the fallback list when the server reports none.
func AllRepositoryCategories() []RepositoryCategory {
	return []RepositoryCategory{
		CategoryPyPI,
		CategoryNPM,
		CategoryMaven,
		CategoryGo,
		CategoryDocker,
		CategoryNuGet,
	}
}

// ParseRepositoryCategory resolves free-form input to a known category
func ParseRepositoryCategory(s string) (RepositoryCategory, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return "", false
	}

	c := RepositoryCategory(normalized)
	if c.Valid() {
		return c, true
	}

	if alias, ok := categoryAliases[normalized]; ok {
		return alias, true
	}

	return "", false
}

// Valid reports whether c is a member of the known category set
func (c RepositoryCategory) Valid() bool {
	switch c {
	case CategoryPyPI, CategoryNPM, CategoryMaven, CategoryGo, CategoryDocker, CategoryNuGet:
		return true
	}
	return false
}

// CategoryLabels maps categories to the display names shown in pickers.
// The mapping is injected into the UI rather than hardcoded there so the
// category set can grow without touching form logic.
type CategoryLabels map[RepositoryCategory]string

// DefaultCategoryLabels returns the standard display names
func DefaultCategoryLabels() CategoryLabels {
	return CategoryLabels{
		CategoryPyPI:   "PyPI (Python)",
		CategoryNPM:    "npm (JavaScript)",
		CategoryMaven:  "Maven (Java)",
		CategoryGo:     "Go modules",
		CategoryDocker: "Docker registry",
		CategoryNuGet:  "NuGet (.NET)",
	}
}

// Label returns the display name for c, falling back to the raw value
func (l CategoryLabels) Label(c RepositoryCategory) string {
	if name, ok := l[c]; ok {
		return name
	}
	return string(c)
}
