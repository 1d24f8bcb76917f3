package model

import (
	"strconv"
	"strings"

	storemodel "sharvari-site/internal/store/domain/model"
)

// Layout is the presentation of a content section.
type Layout string

const (
	LayoutStandard  Layout = "standard"
	LayoutReverse   Layout = "reverse"
	LayoutFullWidth Layout = "full-width"
	LayoutCard      Layout = "card"
)

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	switch l {
	case LayoutStandard, LayoutReverse, LayoutFullWidth, LayoutCard:
		return true
	}
	return false
}

// HeroSlide is one carousel slide.
type HeroSlide struct {
	Image   string `json:"image"`
	Title   string `json:"title"`
	Subtext string `json:"subtext"`
}

// Section is a block of rich text with an optional image. Content is HTML.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
	Layout  Layout `json:"layout,omitempty"`
}

// Stat is a headline number such as "100+ Projects".
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Number splits Value into its digits and everything else, so "100+"
// yields 100 and "+".
func (s Stat) Number() (int, string) {
	var digits, suffix strings.Builder
	for _, r := range s.Value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		} else {
			suffix.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		n = 0
	}
	return n, suffix.String()
}

// Feature is a short selling point.
type Feature struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// TeamMember is a card on the About page.
type TeamMember struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Image  string `json:"image,omitempty"`
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

// ClientLogo is the URL of a client's logo.
type ClientLogo string

// Row is one table row of a project category, keyed by column name.
type Row map[string]string

// ProjectCategory is a titled table of projects with editable columns.
type ProjectCategory struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Store encoding. Values read back from a store are generic maps and slices.

func (s HeroSlide) value() interface{} {
	return map[string]interface{}{"image": s.Image, "title": s.Title, "subtext": s.Subtext}
}

func heroSlideFrom(v interface{}) (HeroSlide, bool) {
	m, ok := asMap(v)
	if !ok {
		return HeroSlide{}, false
	}
	return HeroSlide{Image: str(m, "image"), Title: str(m, "title"), Subtext: str(m, "subtext")}, true
}

func (s Section) value() interface{} {
	m := map[string]interface{}{"heading": s.Heading, "content": s.Content, "image": s.Image}
	if s.Layout != "" {
		m["layout"] = string(s.Layout)
	}
	return m
}

func sectionFrom(v interface{}) (Section, bool) {
	m, ok := asMap(v)
	if !ok {
		return Section{}, false
	}
	return Section{
		Heading: str(m, "heading"),
		Content: str(m, "content"),
		Image:   str(m, "image"),
		Layout:  Layout(str(m, "layout")),
	}, true
}

func (s Stat) value() interface{} {
	return map[string]interface{}{"value": s.Value, "label": s.Label}
}

func statFrom(v interface{}) (Stat, bool) {
	m, ok := asMap(v)
	if !ok {
		return Stat{}, false
	}
	return Stat{Value: str(m, "value"), Label: str(m, "label")}, true
}

func (f Feature) value() interface{} {
	return map[string]interface{}{"title": f.Title, "desc": f.Desc}
}

func featureFrom(v interface{}) (Feature, bool) {
	m, ok := asMap(v)
	if !ok {
		return Feature{}, false
	}
	return Feature{Title: str(m, "title"), Desc: str(m, "desc")}, true
}

func (t TeamMember) value() interface{} {
	m := map[string]interface{}{"name": t.Name, "role": t.Role, "image": t.Image}
	if t.Email != "" {
		m["email"] = t.Email
	}
	if t.Mobile != "" {
		m["mobile"] = t.Mobile
	}
	return m
}

func teamMemberFrom(v interface{}) (TeamMember, bool) {
	m, ok := asMap(v)
	if !ok {
		return TeamMember{}, false
	}
	return TeamMember{
		Name:   str(m, "name"),
		Role:   str(m, "role"),
		Image:  str(m, "image"),
		Email:  str(m, "email"),
		Mobile: str(m, "mobile"),
	}, true
}

func (c ClientLogo) value() interface{} { return string(c) }

func clientLogoFrom(v interface{}) (ClientLogo, bool) {
	s, ok := v.(string)
	return ClientLogo(s), ok
}

func (c ProjectCategory) value() interface{} {
	cols := make([]interface{}, len(c.Columns))
	for i, col := range c.Columns {
		cols[i] = col
	}
	rows := make([]interface{}, len(c.Rows))
	for i, row := range c.Rows {
		r := make(map[string]interface{}, len(row))
		for k, v := range row {
			r[k] = v
		}
		rows[i] = r
	}
	return map[string]interface{}{"id": c.ID, "title": c.Title, "columns": cols, "rows": rows}
}

func projectCategoryFrom(v interface{}) (ProjectCategory, bool) {
	m, ok := asMap(v)
	if !ok {
		return ProjectCategory{}, false
	}
	c := ProjectCategory{ID: str(m, "id"), Title: str(m, "title"), Columns: []string{}, Rows: []Row{}}
	for _, col := range asSlice(m["columns"]) {
		if s, ok := col.(string); ok {
			c.Columns = append(c.Columns, s)
		}
	}
	for _, raw := range asSlice(m["rows"]) {
		rm, ok := asMap(raw)
		if !ok {
			continue
		}
		row := make(Row, len(rm))
		for k, v := range rm {
			if s, ok := v.(string); ok {
				row[k] = s
			}
		}
		c.Rows = append(c.Rows, row)
	}
	return c, true
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case storemodel.Fields:
		return m, true
	case map[string]string:
		out := make(map[string]interface{}, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func asSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		return s
	case []string:
		out := make([]interface{}, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out
	}
	return nil
}

func str(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func decodeList[T any](v interface{}, from func(interface{}) (T, bool)) List[T] {
	raw := asSlice(v)
	items := make([]T, 0, len(raw))
	for _, e := range raw {
		if item, ok := from(e); ok {
			items = append(items, item)
		}
	}
	return List[T]{items: items}
}

func encodeList[T interface{ value() interface{} }](l List[T]) []interface{} {
	out := make([]interface{}, len(l.items))
	for i, item := range l.items {
		out[i] = item.value()
	}
	return out
}
