package model

// SectionView is a section with its layout resolved.
type SectionView struct {
	Section
	Layout Layout `json:"layout"`
}

// StatView is a stat with its value split for counting animations.
type StatView struct {
	Stat
	Number int    `json:"number"`
	Suffix string `json:"suffix"`
}

// View is the read model served to public pages.
type View struct {
	ID                PageID            `json:"id"`
	Title             string            `json:"title"`
	HeroText          string            `json:"heroText"`
	ShowHero          bool              `json:"showHero"`
	HeroSlides        []HeroSlide       `json:"heroSlides"`
	Sections          []SectionView     `json:"sections"`
	Stats             []StatView        `json:"stats"`
	Features          []Feature         `json:"features"`
	TeamMembers       []TeamMember      `json:"teamMembers,omitempty"`
	ClientLogos       []ClientLogo      `json:"clientLogos,omitempty"`
	ProjectCategories []ProjectCategory `json:"projectCategories,omitempty"`
	AboutImage        string            `json:"aboutImage,omitempty"`
	InfraImage1       string            `json:"infraImage1,omitempty"`
	InfraImage2       string            `json:"infraImage2,omitempty"`
}

// Fallback images of the About page.
const (
	DefaultAboutImage  = "https://upload.wikimedia.org/wikipedia/commons/e/ea/Electric_transmission_power_tower.jpg"
	DefaultInfraImage1 = "https://upload.wikimedia.org/wikipedia/commons/thumb/2/2f/Electric_substation.jpg/1280px-Electric_substation.jpg"
	DefaultInfraImage2 = "https://upload.wikimedia.org/wikipedia/commons/7/77/Electricians_at_work.jpg"
)

// ResolveLayout returns the layout of the section at index i. Sections
// without a layout alternate standard and reverse.
func ResolveLayout(s Section, i int) Layout {
	if s.Layout.Valid() {
		return s.Layout
	}
	if i%2 == 0 {
		return LayoutStandard
	}
	return LayoutReverse
}

// NewView builds the public read model of a normalized page.
func NewView(p *Page) *View {
	v := &View{
		ID:                p.ID,
		Title:             p.Title,
		HeroText:          p.HeroText,
		ShowHero:          p.ShowHero == nil || *p.ShowHero,
		HeroSlides:        p.HeroSlides.Items(),
		Features:          p.Features.Items(),
		TeamMembers:       p.TeamMembers.Items(),
		ClientLogos:       p.ClientLogos.Items(),
		ProjectCategories: p.ProjectCategories.Items(),
		AboutImage:        p.AboutImage,
		InfraImage1:       p.InfraImage1,
		InfraImage2:       p.InfraImage2,
	}

	for i, s := range p.Sections.Items() {
		if s.Image == "" && p.ID == PageServices {
			s.Image = ServiceImage(s.Heading)
		}
		v.Sections = append(v.Sections, SectionView{Section: s, Layout: ResolveLayout(s, i)})
	}
	if v.Sections == nil {
		v.Sections = []SectionView{}
	}

	v.Stats = make([]StatView, 0, p.Stats.Len())
	for _, s := range p.Stats.Items() {
		n, suffix := s.Number()
		v.Stats = append(v.Stats, StatView{Stat: s, Number: n, Suffix: suffix})
	}

	if p.ID == PageAbout {
		if v.AboutImage == "" {
			v.AboutImage = DefaultAboutImage
		}
		if v.InfraImage1 == "" {
			v.InfraImage1 = DefaultInfraImage1
		}
		if v.InfraImage2 == "" {
			v.InfraImage2 = DefaultInfraImage2
		}
	}
	return v
}
