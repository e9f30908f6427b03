package draft

import (
	"strings"

	"github.com/google/uuid"

	"github.com/skiffworks/skiffctl/pkg/models"
)

// Row is one repository integration being edited. The ID is local to
// this process: stable while the row exists, never persisted, and not
// carried across baseline reloads.
type Row struct {
	ID       string
	Category models.RepositoryCategory // empty until the user picks one
	Key      string
}

// materializeRows derives one row per baseline repository entry, in
// canonical category order. IDs derive from the category so the same
// baseline always yields the same rows.
func materializeRows(repos map[models.RepositoryCategory]string) []Row {
	normalized := models.NormalizeRepositories(repos)

	var rows []Row
	for _, category := range models.AllRepositoryCategories() {
		key, ok := normalized[category]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			ID:       "row-" + string(category),
			Category: category,
			Key:      key,
		})
	}
	return rows
}

// Rows returns the current integration rows in display order.
func (f *Form) Rows() []Row {
	return f.rows
}

// RowByID finds a row by its local identifier.
func (f *Form) RowByID(id string) (Row, bool) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, true
		}
	}
	return Row{}, false
}

// CanAddRow reports whether another blank row may be added. Once every
// category is spoken for there is nothing left to assign.
func (f *Form) CanAddRow() bool {
	return len(f.rows) < len(f.categories)
}

// AddRow appends a blank row and returns its identifier.
func (f *Form) AddRow() string {
	id := uuid.NewString()
	f.rows = append(f.rows, Row{ID: id})
	f.recomputeRepositories()
	return id
}

// RemoveRow deletes a row by identifier.
func (f *Form) RemoveRow(id string) {
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			break
		}
	}
	f.recomputeRepositories()
}

// SetRowCategory assigns a category to a row. Picking a different
// category resets the row's key, since a key only means something
// inside its category's namespace. A category outside the currently
// valid set is coerced to empty rather than rejected.
func (f *Form) SetRowCategory(id string, category models.RepositoryCategory) {
	if category != "" && !f.categoryAllowed(category) {
		category = ""
	}
	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		if f.rows[i].Category != category {
			f.rows[i].Key = ""
		}
		f.rows[i].Category = category
		break
	}
	f.recomputeRepositories()
}

// SetRowKey replaces a row's key text verbatim. Trimming and blank
// filtering happen at comparison and submit time, not while typing.
func (f *Form) SetRowKey(id, key string) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Key = key
			break
		}
	}
	f.recomputeRepositories()
}

// CategoryOptions lists the categories a row may switch to: every
// valid category not taken by another row, with the row's own current
// choice always present.
func (f *Form) CategoryOptions(id string) []models.RepositoryCategory {
	taken := make(map[models.RepositoryCategory]bool)
	var own models.RepositoryCategory
	for _, row := range f.rows {
		if row.ID == id {
			own = row.Category
			continue
		}
		if row.Category != "" {
			taken[row.Category] = true
		}
	}

	var options []models.RepositoryCategory
	seenOwn := own == ""
	for _, category := range f.categories {
		if taken[category] && category != own {
			continue
		}
		if category == own {
			seenOwn = true
		}
		options = append(options, category)
	}
	// A baseline row may hold a category the server no longer reports.
	if !seenOwn {
		options = append(options, own)
	}
	return options
}

// RepositoryMap collapses the rows into the candidate repository map:
// rows without a category are dropped, keys are trimmed and blank keys
// ignored. Row order never matters.
func (f *Form) RepositoryMap() map[models.RepositoryCategory]string {
	repos := make(map[models.RepositoryCategory]string, len(f.rows))
	for _, row := range f.rows {
		if row.Category == "" {
			continue
		}
		key := strings.TrimSpace(row.Key)
		if key == "" {
			continue
		}
		repos[row.Category] = key
	}
	return repos
}

func (f *Form) categoryAllowed(category models.RepositoryCategory) bool {
	for _, c := range f.categories {
		if c == category {
			return true
		}
	}
	return false
}

func (f *Form) recomputeRepositories() {
	f.setDirty(FieldRepositories, !models.RepositoriesEqual(f.RepositoryMap(), f.baselineRepositories()))
}
