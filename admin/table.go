package admin

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
)

// SkeletonRows is how many placeholder rows a loading table shows.
const SkeletonRows = 5

// primaryCells is how many leading columns a mobile card shows as its heading.
const primaryCells = 2

// Column describes one table column. Without Render the cell shows
// fmt.Sprint of Value.
type Column[T any] struct {
	Key    string
	Label  string
	Value  func(T) any
	Render func(T) template.HTML
}

// Table is the view model of a data table before type erasure.
type Table[T identified] struct {
	Resource  string
	Label     string
	Columns   []Column[T]
	Rows      []T
	Query     string
	IsLoading bool
	// ReadOnly hides the Edit and Delete actions.
	ReadOnly bool
	// Gallery adds a link to each row's image gallery.
	Gallery bool
}

type identified interface {
	GetID() uuid.UUID
}

// Filter keeps the records where any searchable column's raw string value
// contains query, ignoring case. Columns with a Render func and non-string
// values are not searched. An empty query keeps everything.
func Filter[T any](records []T, columns []Column[T], query string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	var out []T
	for _, rec := range records {
		for _, col := range columns {
			if col.Render != nil || col.Value == nil {
				continue
			}
			s, ok := col.Value(rec).(string)
			if ok && strings.Contains(strings.ToLower(s), q) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// EmptyMessage is shown when a table has no rows to render.
func EmptyMessage(label, query string, total int) string {
	if total > 0 && query != "" {
		return fmt.Sprintf("No results for \"%s\"", query)
	}
	return fmt.Sprintf("No %s yet", strings.ToLower(label))
}

// TableView is what the rows template renders.
type TableView struct {
	Resource  string
	Label     string
	Headers   []string
	Rows      []RowView
	Skeleton  []int
	Query     string
	Empty     string
	Error     string
	IsLoading bool
	ReadOnly  bool
	Gallery   bool
}

type RowView struct {
	ID    uuid.UUID
	Cells []CellView
	// Primary and Details split Cells for the mobile card layout.
	Primary []CellView
	Details []CellView
}

type CellView struct {
	Label string
	HTML  template.HTML
}

// View filters the rows by the table's query and erases their type.
func (t Table[T]) View() TableView {
	v := TableView{
		Resource:  t.Resource,
		Label:     t.Label,
		Query:     t.Query,
		IsLoading: t.IsLoading,
		ReadOnly:  t.ReadOnly,
		Gallery:   t.Gallery,
	}
	for _, c := range t.Columns {
		v.Headers = append(v.Headers, c.Label)
	}
	if t.IsLoading {
		v.Skeleton = make([]int, SkeletonRows)
		return v
	}

	matched := Filter(t.Rows, t.Columns, t.Query)
	for _, rec := range matched {
		row := RowView{ID: rec.GetID()}
		for _, c := range t.Columns {
			row.Cells = append(row.Cells, CellView{Label: c.Label, HTML: cell(c, rec)})
		}
		split := min(primaryCells, len(row.Cells))
		row.Primary, row.Details = row.Cells[:split], row.Cells[split:]
		v.Rows = append(v.Rows, row)
	}
	if len(v.Rows) == 0 {
		v.Empty = EmptyMessage(t.Label, t.Query, len(t.Rows))
	}
	return v
}

func cell[T any](c Column[T], rec T) template.HTML {
	if c.Render != nil {
		return c.Render(rec)
	}
	if c.Value == nil {
		return ""
	}
	return template.HTML(template.HTMLEscapeString(fmt.Sprint(c.Value(rec))))
}
