package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"sharvari-site/internal/shared/errors"

	"github.com/google/uuid"
)

// ListOps edits one list field of a Page. Element payloads are JSON.
type ListOps interface {
	Field() string
	Add(p *Page, payload []byte) error
	Delete(p *Page, i int) error
	Move(p *Page, i int, dir Direction) error
	Replace(p *Page, i int, payload []byte) error
}

type listField[T any] struct {
	name string
	get  func(*Page) *List[T]
	// fresh builds the element appended by an Add without payload.
	fresh func() T
	// parse decodes an Add payload into one or more elements.
	parse func([]byte) ([]T, error)
	check func(T) error
}

func (lf listField[T]) Field() string { return lf.name }

func (lf listField[T]) Add(p *Page, payload []byte) error {
	if len(strings.TrimSpace(string(payload))) == 0 || string(payload) == "null" {
		if lf.fresh == nil {
			return invalidPayload(lf.name, fmt.Errorf("element required"))
		}
		lf.get(p).Add(lf.fresh())
		return nil
	}
	parse := lf.parse
	if parse == nil {
		parse = func(b []byte) ([]T, error) {
			item := lf.fresh()
			if err := json.Unmarshal(b, &item); err != nil {
				return nil, err
			}
			return []T{item}, nil
		}
	}
	items, err := parse(payload)
	if err != nil {
		return invalidPayload(lf.name, err)
	}
	for _, item := range items {
		if err := lf.validate(item); err != nil {
			return err
		}
	}
	lf.get(p).Add(items...)
	return nil
}

func (lf listField[T]) Delete(p *Page, i int) error {
	return lf.get(p).Delete(i)
}

func (lf listField[T]) Move(p *Page, i int, dir Direction) error {
	return lf.get(p).Move(i, dir)
}

func (lf listField[T]) Replace(p *Page, i int, payload []byte) error {
	var item T
	if err := json.Unmarshal(payload, &item); err != nil {
		return invalidPayload(lf.name, err)
	}
	if err := lf.validate(item); err != nil {
		return err
	}
	return lf.get(p).Replace(i, item)
}

func (lf listField[T]) validate(item T) error {
	if lf.check == nil {
		return nil
	}
	if err := lf.check(item); err != nil {
		return invalidPayload(lf.name, err)
	}
	return nil
}

func invalidPayload(field string, err error) error {
	return errors.NewValidationError(fmt.Sprintf("invalid %s element", field)).WithCause(err)
}

var lists = map[string]ListOps{
	FieldHeroSlides: listField[HeroSlide]{
		name:  FieldHeroSlides,
		get:   func(p *Page) *List[HeroSlide] { return &p.HeroSlides },
		fresh: func() HeroSlide { return HeroSlide{} },
	},
	FieldSections: listField[Section]{
		name:  FieldSections,
		get:   func(p *Page) *List[Section] { return &p.Sections },
		fresh: func() Section { return Section{Heading: "New Section"} },
		check: func(s Section) error {
			if s.Layout != "" && !s.Layout.Valid() {
				return fmt.Errorf("unknown layout %q", s.Layout)
			}
			return nil
		},
	},
	FieldStats: listField[Stat]{
		name:  FieldStats,
		get:   func(p *Page) *List[Stat] { return &p.Stats },
		fresh: func() Stat { return Stat{Value: "100+", Label: "Projects"} },
	},
	FieldFeatures: listField[Feature]{
		name:  FieldFeatures,
		get:   func(p *Page) *List[Feature] { return &p.Features },
		fresh: func() Feature { return Feature{Title: "Feature", Desc: "Description"} },
	},
	FieldTeamMembers: listField[TeamMember]{
		name:  FieldTeamMembers,
		get:   func(p *Page) *List[TeamMember] { return &p.TeamMembers },
		fresh: func() TeamMember { return TeamMember{Name: "New Member", Role: "Role"} },
	},
	FieldClientLogos: listField[ClientLogo]{
		name:  FieldClientLogos,
		get:   func(p *Page) *List[ClientLogo] { return &p.ClientLogos },
		parse: parseLogos,
	},
	FieldProjectCategories: listField[ProjectCategory]{
		name:  FieldProjectCategories,
		get:   func(p *Page) *List[ProjectCategory] { return &p.ProjectCategories },
		fresh: NewProjectCategory,
		check: func(c ProjectCategory) error {
			if strings.TrimSpace(c.ID) == "" {
				return fmt.Errorf("category id required")
			}
			return nil
		},
	},
}

// Lists returns the editor for a list field.
func Lists(field string) (ListOps, error) {
	ops, ok := lists[field]
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown list field %q", field)).
			WithCause(errors.ErrUnknownField)
	}
	return ops, nil
}

// parseLogos accepts a URL, a list of URLs or {"urls": [...]}.
func parseLogos(b []byte) ([]ClientLogo, error) {
	var urls []string
	if err := json.Unmarshal(b, &urls); err != nil {
		var one string
		if err := json.Unmarshal(b, &one); err == nil {
			urls = []string{one}
		} else {
			var wrapped struct {
				URLs []string `json:"urls"`
			}
			if err := json.Unmarshal(b, &wrapped); err != nil {
				return nil, err
			}
			urls = wrapped.URLs
		}
	}

	logos := make([]ClientLogo, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			logos = append(logos, ClientLogo(u))
		}
	}
	if len(logos) == 0 {
		return nil, fmt.Errorf("no logo URLs given")
	}
	return logos, nil
}

// NewProjectCategory returns a category with a fresh id and the default columns.
func NewProjectCategory() ProjectCategory {
	return ProjectCategory{
		ID:      uuid.NewString(),
		Title:   "New Category",
		Columns: []string{"Client Name", "Location", "Status"},
		Rows:    []Row{},
	}
}

// ParseColumns splits a comma separated column list, trimming names and
// dropping empty ones.
func ParseColumns(s string) []string {
	cols := []string{}
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

// SetColumns replaces the column list. Existing rows keep their keys.
func (c *ProjectCategory) SetColumns(s string) {
	c.Columns = ParseColumns(s)
}

// AddRow appends a row with every current column set to "".
func (c *ProjectCategory) AddRow() {
	row := make(Row, len(c.Columns))
	for _, col := range c.Columns {
		row[col] = ""
	}
	c.Rows = append(c.Rows, row)
}

// SetCell sets one cell. col need not be a current column.
func (c *ProjectCategory) SetCell(row int, col, value string) error {
	if row < 0 || row >= len(c.Rows) {
		return errors.NewValidationError(fmt.Sprintf("row %d out of range", row)).WithCause(errors.ErrIndexOutOfRange)
	}
	if c.Rows[row] == nil {
		c.Rows[row] = Row{}
	}
	c.Rows[row][col] = value
	return nil
}

// DeleteRow removes a row.
func (c *ProjectCategory) DeleteRow(row int) error {
	if row < 0 || row >= len(c.Rows) {
		return errors.NewValidationError(fmt.Sprintf("row %d out of range", row)).WithCause(errors.ErrIndexOutOfRange)
	}
	c.Rows = append(c.Rows[:row:row], c.Rows[row+1:]...)
	return nil
}

// Cell returns the value of col in row, or "" when the key is missing.
func (r Row) Cell(col string) string {
	return r[col]
}
