package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiffworks/skiffctl/pkg/models"
)

func TestRowsMaterializeInCanonicalOrder(t *testing.T) {
	f := newTestForm()

	rows := f.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, models.CategoryPyPI, rows[0].Category)
	assert.Equal(t, "pypi-virtual", rows[0].Key)
	assert.Equal(t, models.CategoryNPM, rows[1].Category)
	assert.Equal(t, "npm-virtual", rows[1].Key)
}

func TestRowsDeterministicIDs(t *testing.T) {
	f := newTestForm()
	first := f.Rows()

	// Re-deriving from the same baseline yields the same identifiers.
	f.SetBaseline(testBaseline())
	second := f.Rows()

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
	assert.Equal(t, "row-pypi", first[0].ID)
}

func TestRowsAddedIDsAreFresh(t *testing.T) {
	f := newTestForm()

	a := f.AddRow()
	b := f.AddRow()

	assert.NotEmpty(t, a)
	assert.NotEmpty(t, b)
	assert.NotEqual(t, a, b)

	row, ok := f.RowByID(a)
	require.True(t, ok)
	assert.Empty(t, row.Category)
	assert.Empty(t, row.Key)
}

func TestRowsAddLimit(t *testing.T) {
	f := newTestForm()
	f.SetCategories([]models.RepositoryCategory{models.CategoryPyPI, models.CategoryNPM})

	// Both categories already hold a row.
	assert.False(t, f.CanAddRow())

	f.SetCategories(models.AllRepositoryCategories())
	assert.True(t, f.CanAddRow())

	for f.CanAddRow() {
		f.AddRow()
	}
	assert.Len(t, f.Rows(), len(models.AllRepositoryCategories()))
}

func TestRowsRemoveNeverBlocked(t *testing.T) {
	f := newTestForm()

	for _, row := range f.Rows() {
		f.RemoveRow(row.ID)
	}
	assert.Empty(t, f.Rows())
	assert.True(t, f.Dirty(FieldRepositories))

	// Removing an unknown id is a no-op.
	f.RemoveRow("no-such-row")
	assert.Empty(t, f.Rows())
}

func TestRowsCategorySwitchResetsKey(t *testing.T) {
	f := newTestForm()
	f.RemoveRow("row-pypi")

	f.SetRowCategory("row-npm", models.CategoryPyPI)
	row, ok := f.RowByID("row-npm")
	require.True(t, ok)
	assert.Equal(t, models.CategoryPyPI, row.Category)
	assert.Equal(t, "", row.Key, "a key only means something inside its category")
}

func TestRowsSameCategoryKeepsKey(t *testing.T) {
	f := newTestForm()

	f.SetRowCategory("row-npm", models.CategoryNPM)
	row, ok := f.RowByID("row-npm")
	require.True(t, ok)
	assert.Equal(t, "npm-virtual", row.Key)
}

func TestRowsUnknownCategoryCoercedToEmpty(t *testing.T) {
	f := newTestForm()
	f.SetCategories([]models.RepositoryCategory{models.CategoryPyPI, models.CategoryNPM})

	f.SetRowCategory("row-npm", models.CategoryDocker)
	row, ok := f.RowByID("row-npm")
	require.True(t, ok)
	assert.Equal(t, models.RepositoryCategory(""), row.Category)
	assert.Equal(t, "", row.Key)
}

func TestRowsKeyEditedVerbatim(t *testing.T) {
	f := newTestForm()

	f.SetRowKey("row-npm", "  npm-remote  ")
	row, ok := f.RowByID("row-npm")
	require.True(t, ok)
	assert.Equal(t, "  npm-remote  ", row.Key, "no normalization while typing")

	// Normalization happens at map-assembly time.
	assert.Equal(t, "npm-remote", f.RepositoryMap()[models.CategoryNPM])
}

func TestRowsCategoryOptionsExcludeOtherRows(t *testing.T) {
	f := newTestForm()

	options := f.CategoryOptions("row-pypi")
	assert.Contains(t, options, models.CategoryPyPI, "own choice stays available")
	assert.NotContains(t, options, models.CategoryNPM, "taken by the other row")
	assert.Contains(t, options, models.CategoryGo)
}

func TestRowsCategoryOptionsKeepRetiredOwnChoice(t *testing.T) {
	f := newTestForm()
	f.SetCategories([]models.RepositoryCategory{models.CategoryGo})

	options := f.CategoryOptions("row-npm")
	assert.Contains(t, options, models.CategoryNPM)
	assert.Contains(t, options, models.CategoryGo)
}

func TestRowsOrderNeverMatters(t *testing.T) {
	baseline := map[models.RepositoryCategory]string{
		models.CategoryPyPI: "b",
		models.CategoryNPM:  "a",
	}

	build := func(order []models.RepositoryCategory, keys map[models.RepositoryCategory]string) *Form {
		doc := testBaseline()
		doc.Repositories = nil
		doc.Normalize()
		f := NewForm(nil, nil)
		f.SetBaseline(doc)
		for _, category := range order {
			id := f.AddRow()
			f.SetRowCategory(id, category)
			f.SetRowKey(id, keys[category])
		}
		return f
	}

	keys := map[models.RepositoryCategory]string{
		models.CategoryNPM:  "a",
		models.CategoryPyPI: "b",
	}
	forward := build([]models.RepositoryCategory{models.CategoryNPM, models.CategoryPyPI}, keys)
	reverse := build([]models.RepositoryCategory{models.CategoryPyPI, models.CategoryNPM}, keys)

	assert.Equal(t, forward.RepositoryMap(), reverse.RepositoryMap())
	assert.True(t, models.RepositoriesEqual(forward.RepositoryMap(), baseline))
	assert.True(t, models.RepositoriesEqual(reverse.RepositoryMap(), baseline))
}

func TestRowsDirtyTracksMapEquality(t *testing.T) {
	f := newTestForm()

	// Rebuilding the same map through different rows is not a change.
	f.RemoveRow("row-pypi")
	assert.True(t, f.Dirty(FieldRepositories))

	id := f.AddRow()
	f.SetRowCategory(id, models.CategoryPyPI)
	f.SetRowKey(id, "pypi-virtual")
	assert.False(t, f.Dirty(FieldRepositories))
	assert.True(t, f.Clean())
}

func TestRowsBlankRowsDropFromMap(t *testing.T) {
	f := newTestForm()

	id := f.AddRow()
	assert.True(t, f.Clean(), "a blank row adds nothing to the map")

	f.SetRowCategory(id, models.CategoryGo)
	assert.True(t, f.Clean(), "category without key still adds nothing")

	f.SetRowKey(id, "   ")
	assert.True(t, f.Clean(), "whitespace key is blank")

	f.SetRowKey(id, "go-virtual")
	assert.True(t, f.Dirty(FieldRepositories))
}

func BenchmarkRowsRepositoryMap(b *testing.B) {
	f := newTestForm()
	for _, category := range []models.RepositoryCategory{
		models.CategoryMaven, models.CategoryGo, models.CategoryDocker, models.CategoryNuGet,
	} {
		id := f.AddRow()
		f.SetRowCategory(id, category)
		f.SetRowKey(id, string(category)+"-virtual")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.RepositoryMap()
	}
}
