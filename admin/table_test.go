package admin

import (
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id    uuid.UUID
	title string
	city  string
	count int
}

func (r row) GetID() uuid.UUID { return r.id }

var rowColumns = []Column[row]{
	stringCol("title", "Title", func(r row) string { return r.title }),
	stringCol("city", "City", func(r row) string { return r.city }),
	intCol("count", "Count", func(r row) int { return r.count }),
	{Key: "badge", Label: "Badge", Value: func(r row) any { return r.title }, Render: func(r row) template.HTML { return "<b>hidden</b>" }},
}

func sampleRows() []row {
	return []row{
		{id: uuid.New(), title: "Mercy Hospital Wing", city: "Tampa", count: 3},
		{id: uuid.New(), title: "Harbor Retail Center", city: "Orlando", count: 12},
		{id: uuid.New(), title: "Lincoln Elementary", city: "tampa bay", count: 7},
	}
}

func TestFilter(t *testing.T) {
	rows := sampleRows()

	t.Run("empty query keeps everything", func(t *testing.T) {
		assert.Len(t, Filter(rows, rowColumns, "  "), 3)
	})

	t.Run("matches any string column ignoring case", func(t *testing.T) {
		got := Filter(rows, rowColumns, "TAMPA")
		require.Len(t, got, 2)
		assert.Equal(t, "Mercy Hospital Wing", got[0].title)
		assert.Equal(t, "Lincoln Elementary", got[1].title)
	})

	t.Run("numbers are not searched", func(t *testing.T) {
		assert.Empty(t, Filter(rows, rowColumns, "12"))
	})

	t.Run("rendered columns are not searched", func(t *testing.T) {
		assert.Empty(t, Filter(rows, rowColumns, "hidden"))
	})

	t.Run("dates render but are not searched", func(t *testing.T) {
		created := time.Date(2025, time.March, 4, 9, 30, 0, 0, time.UTC)
		cols := []Column[row]{dateCol("created_at", "Created", "Jan 2, 2006", func(row) time.Time { return created })}
		assert.Empty(t, Filter(rows, cols, "Mar"))
		assert.Empty(t, Filter(rows, cols, "2025"))

		v := Table[row]{Label: "Rows", Columns: cols, Rows: rows}.View()
		require.Len(t, v.Rows, 3)
		assert.Equal(t, template.HTML("Mar 4, 2025"), v.Rows[0].Cells[0].HTML)
	})
}

func TestEmptyMessage(t *testing.T) {
	assert.Equal(t, "No projects yet", EmptyMessage("Projects", "", 0))
	assert.Equal(t, "No projects yet", EmptyMessage("Projects", "zzz", 0))
	assert.Equal(t, `No results for "zzz"`, EmptyMessage("Projects", "zzz", 4))
}

func TestTableView(t *testing.T) {
	t.Run("loading shows skeleton rows", func(t *testing.T) {
		v := Table[row]{Label: "Rows", Columns: rowColumns, IsLoading: true}.View()
		assert.True(t, v.IsLoading)
		assert.Len(t, v.Skeleton, SkeletonRows)
		assert.Empty(t, v.Rows)
		assert.Equal(t, []string{"Title", "City", "Count", "Badge"}, v.Headers)
	})

	t.Run("filtered rows with escaped cells", func(t *testing.T) {
		rows := append(sampleRows(), row{id: uuid.New(), title: "<script>x</script>", city: "Tampa"})
		v := Table[row]{Label: "Rows", Columns: rowColumns, Rows: rows, Query: "tampa"}.View()
		require.Len(t, v.Rows, 3)
		assert.Empty(t, v.Empty)
		last := v.Rows[2]
		assert.Equal(t, rows[3].id, last.ID)
		assert.Equal(t, template.HTML("&lt;script&gt;x&lt;/script&gt;"), last.Cells[0].HTML)
		assert.Equal(t, template.HTML("<b>hidden</b>"), last.Cells[3].HTML)
		assert.Equal(t, "City", last.Cells[1].Label)
	})

	t.Run("mobile cards split primary and detail cells", func(t *testing.T) {
		v := Table[row]{Label: "Rows", Columns: rowColumns, Rows: sampleRows()}.View()
		require.NotEmpty(t, v.Rows)
		r := v.Rows[0]
		require.Len(t, r.Primary, 2)
		assert.Equal(t, "Title", r.Primary[0].Label)
		assert.Equal(t, "City", r.Primary[1].Label)
		require.Len(t, r.Details, 2)
		assert.Equal(t, "Count", r.Details[0].Label)
		assert.Equal(t, "Badge", r.Details[1].Label)

		single := Table[row]{Label: "Rows", Columns: rowColumns[:1], Rows: sampleRows()}.View()
		assert.Len(t, single.Rows[0].Primary, 1)
		assert.Empty(t, single.Rows[0].Details)
	})

	t.Run("no match", func(t *testing.T) {
		v := Table[row]{Label: "Rows", Columns: rowColumns, Rows: sampleRows(), Query: "miami"}.View()
		assert.Empty(t, v.Rows)
		assert.Equal(t, `No results for "miami"`, v.Empty)
	})

	t.Run("no data", func(t *testing.T) {
		v := Table[row]{Label: "Partner Logos", Columns: rowColumns}.View()
		assert.Equal(t, "No partner logos yet", v.Empty)
		assert.Nil(t, v.Skeleton)
	})
}

func TestDisplayName(t *testing.T) {
	r := sampleRows()[1]
	assert.Equal(t, "Harbor Retail Center", displayName(rowColumns, r))
	assert.Equal(t, "this record", displayName(rowColumns[2:], r))
	assert.True(t, strings.HasPrefix(sentence("project deleted"), "Project"))
}
