package model

import "strings"

func placeholder(text string) string {
	return "https://placehold.co/800x600/2563eb/FFF?text=" + text
}

// ServiceSections is the seed content of the Services page.
var ServiceSections = []Section{
	{Heading: "EHV Transmission Lines", Content: "Turnkey & EPC of EHV Transmission Lines of all types, including Design, Supply, Civil, Erection, Testing & Commissioning of projects (up to 765 kV)", Image: placeholder("EHV+Transmission+Lines")},
	{Heading: "Sub-stations", Content: "Turnkey EPC of all types of Sub-stations including Supply, Civil, Erection, Testing & Commissioning of projects (up to 765 kV)", Image: placeholder("Sub-stations")},
	{Heading: "Railway Traction Sub-Stations", Content: "Turnkey EPC of Traction Sub Stations for Railways including Supply, Civil, Erection, Testing & Commissioning of projects (up to 25/220 kV)", Image: placeholder("Railway+Traction")},
	{Heading: "Rural Electrification", Content: "Rural Electrification & Distribution Projects including infrastructure setup and grid connectivity.", Image: placeholder("Rural+Electrification")},
	{Heading: "Maintenance Services", Content: "On Site Service Contracts like Live/Hot/Cold line maintenance of EHV Lines/Sub-stations.", Image: placeholder("Maintenance+Services")},
	{Heading: "Solar & Irrigation Projects", Content: "Electrical Transmission & Sub – Station Projects of Lift Irrigation Schemes, Mega Scale Solar Power Plants.", Image: placeholder("Solar+%26+Irrigation")},
	{Heading: "Industrial Electrification", Content: "Comprehensive Industrial Electrification Projects for factories and industrial zones.", Image: placeholder("Industrial+Electrification")},
	{Heading: "Line Upgradation", Content: "Up gradation of EHV Lines to increase capacity and reliability.", Image: placeholder("Line+Upgradation")},
	{Heading: "Harmonic Analysis", Content: "Detailed Harmonic Analysis to ensure power system health and efficiency.", Image: placeholder("Harmonic+Analysis")},
	{Heading: "Power Quality Audit", Content: "Power Quality audit services to identify and resolve electrical issues.", Image: placeholder("Power+Quality+Audit")},
	{Heading: "Energy Saving Consultant", Content: "Expert consultancy for energy saving and efficiency improvements.", Image: placeholder("Energy+Saving")},
}

// ServiceImage returns the seed image of the service with the given heading.
func ServiceImage(heading string) string {
	for _, s := range ServiceSections {
		if s.Heading == heading {
			return s.Image
		}
	}
	return ""
}

type pageText struct {
	title, heroText string
}

var pageTexts = map[PageID]pageText{
	PageHome:     {"Welcome to Sharvari", "Building the future, one pixel at a time."},
	PageAbout:    {"About SHARVARI ELECTRICALS", "Leading EPC Company delivering excellence in electrical engineering projects."},
	PageServices: {"Our Services", "Leading the way in Electrical Infrastructure Development."},
	PageProjects: {"Our Major Projects", "Showcasing our excellence in execution across various sectors."},
	PageClients:  {"Our Valued Clients", "Building lasting partnerships with industry leaders across the nation."},
	PageContact:  {"Contact SHARVARI ELECTRICALS", "Get in touch with us for your EPC project requirements."},
}

// Default is the content used when a page has no stored document.
func Default(id PageID) *Page {
	p := &Page{ID: id}
	if t, ok := pageTexts[id]; ok {
		p.Title, p.HeroText = t.title, t.heroText
	}
	if id == PageServices {
		p.Sections = NewList(ServiceSections...)
	}
	return p
}

// requiredAboutSection is matched against headings by substring.
type requiredAboutSection struct {
	match   string
	section Section
}

var requiredAboutSections = []requiredAboutSection{
	{"About Sharvari", Section{
		Heading: "About Sharvari Electricals",
		Content: "Sharvari Electricals is a premier EPC company...",
		Image:   "https://images.unsplash.com/photo-1497366216548-37526070297c?auto=format&fit=crop&q=80&w=1200",
	}},
	{"Infrastructure", Section{
		Heading: "Our Infrastructure",
		Content: "We possess state-of-the-art infrastructure...",
		Image:   "https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?auto=format&fit=crop&q=80&w=1200",
	}},
	{"Vision", Section{Heading: "Our Vision", Content: "To be the globally recognized leader..."}},
	{"Mission", Section{Heading: "Our Mission", Content: "To deliver superior electrical infrastructure..."}},
	{"Strength", Section{Heading: "Our Strength", Content: "Our core strengths lie in our experienced workforce..."}},
}

// SeedAboutSections appends any of the five required About sections that
// are missing. Existing sections keep their place. It returns the number
// of sections added.
func SeedAboutSections(p *Page) int {
	added := 0
	existing := p.Sections.Items()
	for _, req := range requiredAboutSections {
		found := false
		for _, s := range existing {
			if strings.Contains(s.Heading, req.match) {
				found = true
				break
			}
		}
		if !found {
			p.Sections.Add(req.section)
			added++
		}
	}
	return added
}

// Normalize migrates legacy hero images into slides. When heroSlides is
// empty every legacy image becomes a slide sharing the page title and hero
// text. It is idempotent.
func Normalize(p *Page) {
	if p.HeroSlides.Len() > 0 {
		return
	}
	images := p.HeroImages
	if len(images) == 0 && p.HeroImage != "" {
		images = []string{p.HeroImage}
	}
	for _, img := range images {
		p.HeroSlides.Add(HeroSlide{Image: img, Title: p.Title, Subtext: p.HeroText})
	}
}
