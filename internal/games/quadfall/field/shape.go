package field

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCatalog is returned when a catalog has no templates.
	ErrEmptyCatalog = errors.New("field: catalog has no shapes")
	// ErrInvalidShape is returned for non-square, empty or untagged templates.
	ErrInvalidShape = errors.New("field: invalid shape")
)

// Template is one shape of a catalog: a square matrix of cells, all filled
// cells carrying the template's tag.
type Template struct {
	Name  string
	Tag   Cell
	cells Grid
}

// ParseTemplate builds a template from rows drawn top to bottom, where '#'
// is a filled cell and any other rune is empty. The matrix must be square.
func ParseTemplate(name string, tag Cell, rows ...string) (Template, error) {
	if tag == Empty || tag == Sentinel {
		return Template{}, fmt.Errorf("%w: %s: tag %d is reserved", ErrInvalidShape, name, tag)
	}
	n := len(rows)
	if n == 0 {
		return Template{}, fmt.Errorf("%w: %s: no rows", ErrInvalidShape, name)
	}

	cells := NewGrid(n, n)
	filled := 0
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != n {
			return Template{}, fmt.Errorf("%w: %s: row %d has %d cells, want %d", ErrInvalidShape, name, y, len(runes), n)
		}
		for x, r := range runes {
			if r == '#' {
				cells[x][y] = tag
				filled++
			}
		}
	}
	if filled == 0 {
		return Template{}, fmt.Errorf("%w: %s: no filled cells", ErrInvalidShape, name)
	}

	return Template{Name: name, Tag: tag, cells: cells}, nil
}

// MustTemplate is ParseTemplate for static tables; it panics on error.
func MustTemplate(name string, tag Cell, rows ...string) Template {
	t, err := ParseTemplate(name, tag, rows...)
	if err != nil {
		panic(err)
	}
	return t
}

// Size returns the side length of the template matrix.
func (t Template) Size() int {
	return len(t.cells)
}

// Cells returns a copy of the template matrix.
func (t Template) Cells() Grid {
	return t.cells.Clone()
}

// Catalog is an immutable, ordered set of templates pieces are drawn from.
type Catalog struct {
	name      string
	templates []Template
}

// NewCatalog validates and wraps a list of templates.
func NewCatalog(name string, templates ...Template) (*Catalog, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, name)
	}
	for _, t := range templates {
		if t.Size() == 0 {
			return nil, fmt.Errorf("%w: %s: template %q is empty", ErrInvalidShape, name, t.Name)
		}
	}
	ts := make([]Template, len(templates))
	copy(ts, templates)
	return &Catalog{name: name, templates: ts}, nil
}

// Name returns the catalog name.
func (c *Catalog) Name() string {
	return c.name
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// Template returns the i-th template.
func (c *Catalog) Template(i int) Template {
	return c.templates[i]
}

// Templates returns a copy of the template list.
func (c *Catalog) Templates() []Template {
	ts := make([]Template, len(c.templates))
	copy(ts, c.templates)
	return ts
}
