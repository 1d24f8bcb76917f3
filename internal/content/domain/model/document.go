package model

import (
	"time"

	settingsmodel "sharvari-site/internal/settings/domain/model"
	storemodel "sharvari-site/internal/store/domain/model"
)

// Stored field names.
const (
	FieldTitle             = "title"
	FieldHeroText          = "heroText"
	FieldShowHero          = "showHero"
	FieldHeroSlides        = "heroSlides"
	FieldHeroImages        = "heroImages"
	FieldHeroImage         = "heroImage"
	FieldSections          = "sections"
	FieldStats             = "stats"
	FieldFeatures          = "features"
	FieldTeamMembers       = "teamMembers"
	FieldClientLogos       = "clientLogos"
	FieldProjectCategories = "projectCategories"
	FieldAboutImage        = "aboutImage"
	FieldInfraImage1       = "infraImage1"
	FieldInfraImage2       = "infraImage2"
)

// Page is the whole editable content of one page. Fields the editor does not
// know about are carried in Extra so a save never drops them.
type Page struct {
	ID       PageID `json:"id"`
	Title    string `json:"title"`
	HeroText string `json:"heroText"`
	ShowHero *bool  `json:"showHero,omitempty"`

	HeroSlides List[HeroSlide] `json:"heroSlides"`
	HeroImages []string        `json:"heroImages,omitempty"`
	HeroImage  string          `json:"heroImage,omitempty"`

	Sections          List[Section]         `json:"sections"`
	Stats             List[Stat]            `json:"stats"`
	Features          List[Feature]         `json:"features"`
	TeamMembers       List[TeamMember]      `json:"teamMembers"`
	ClientLogos       List[ClientLogo]      `json:"clientLogos"`
	ProjectCategories List[ProjectCategory] `json:"projectCategories"`

	AboutImage  string `json:"aboutImage,omitempty"`
	InfraImage1 string `json:"infraImage1,omitempty"`
	InfraImage2 string `json:"infraImage2,omitempty"`

	// Site settings, used by the settings pseudo page only.
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`

	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
	Extra     storemodel.Fields `json:"extra,omitempty"`
}

var knownFields = map[string]struct{}{
	FieldTitle: {}, FieldHeroText: {}, FieldShowHero: {}, FieldHeroSlides: {},
	FieldHeroImages: {}, FieldHeroImage: {}, FieldSections: {}, FieldStats: {},
	FieldFeatures: {}, FieldTeamMembers: {}, FieldClientLogos: {},
	FieldProjectCategories: {}, FieldAboutImage: {}, FieldInfraImage1: {},
	FieldInfraImage2: {}, storemodel.FieldUpdatedAt: {}, storemodel.FieldCreatedAt: {},
	settingsmodel.KeyEmail: {}, settingsmodel.KeyPhone: {}, settingsmodel.KeyAddress: {},
}

// FromFields decodes a stored document. Elements of the wrong shape are skipped.
func FromFields(id PageID, f storemodel.Fields) *Page {
	p := &Page{
		ID:                id,
		Title:             f.String(FieldTitle),
		HeroText:          f.String(FieldHeroText),
		HeroImage:         f.String(FieldHeroImage),
		HeroSlides:        decodeList(f[FieldHeroSlides], heroSlideFrom),
		Sections:          decodeList(f[FieldSections], sectionFrom),
		Stats:             decodeList(f[FieldStats], statFrom),
		Features:          decodeList(f[FieldFeatures], featureFrom),
		TeamMembers:       decodeList(f[FieldTeamMembers], teamMemberFrom),
		ClientLogos:       decodeList(f[FieldClientLogos], clientLogoFrom),
		ProjectCategories: decodeList(f[FieldProjectCategories], projectCategoryFrom),
		AboutImage:        f.String(FieldAboutImage),
		InfraImage1:       f.String(FieldInfraImage1),
		InfraImage2:       f.String(FieldInfraImage2),
		Email:             f.String(settingsmodel.KeyEmail),
		Phone:             f.String(settingsmodel.KeyPhone),
		Address:           f.String(settingsmodel.KeyAddress),
	}
	if b, ok := f[FieldShowHero].(bool); ok {
		p.ShowHero = &b
	}
	for _, img := range asSlice(f[FieldHeroImages]) {
		if s, ok := img.(string); ok {
			p.HeroImages = append(p.HeroImages, s)
		}
	}
	if t, ok := f.Time(storemodel.FieldUpdatedAt); ok {
		p.UpdatedAt = &t
	}
	for k, v := range f {
		if _, known := knownFields[k]; known {
			continue
		}
		if p.Extra == nil {
			p.Extra = storemodel.Fields{}
		}
		p.Extra[k] = storemodel.CloneValue(v)
	}
	return p
}

// ToFields encodes the page for a merge write. The settings pseudo page
// only writes its three contact fields.
func (p *Page) ToFields() storemodel.Fields {
	if p.ID == PageSettings {
		return storemodel.Fields{
			settingsmodel.KeyEmail:   p.Email,
			settingsmodel.KeyPhone:   p.Phone,
			settingsmodel.KeyAddress: p.Address,
		}
	}

	f := p.Extra.Clone()
	if f == nil {
		f = storemodel.Fields{}
	}
	f[FieldTitle] = p.Title
	f[FieldHeroText] = p.HeroText
	f[FieldHeroSlides] = encodeList(p.HeroSlides)
	f[FieldSections] = encodeList(p.Sections)
	f[FieldStats] = encodeList(p.Stats)
	f[FieldFeatures] = encodeList(p.Features)
	f[FieldTeamMembers] = encodeList(p.TeamMembers)
	f[FieldClientLogos] = encodeList(p.ClientLogos)
	f[FieldProjectCategories] = encodeList(p.ProjectCategories)

	if p.ShowHero != nil {
		f[FieldShowHero] = *p.ShowHero
	}
	if p.HeroImages != nil {
		imgs := make([]interface{}, len(p.HeroImages))
		for i, img := range p.HeroImages {
			imgs[i] = img
		}
		f[FieldHeroImages] = imgs
	}
	// Written even when empty so a cleared image replaces the stored one.
	f[FieldHeroImage] = p.HeroImage
	f[FieldAboutImage] = p.AboutImage
	f[FieldInfraImage1] = p.InfraImage1
	f[FieldInfraImage2] = p.InfraImage2
	return f
}

// Clone returns a deep copy of p.
func (p *Page) Clone() *Page {
	cp := FromFields(p.ID, p.ToFields())
	cp.Email, cp.Phone, cp.Address = p.Email, p.Phone, p.Address
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		cp.UpdatedAt = &t
	}
	return cp
}
