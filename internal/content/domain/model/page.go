package model

import (
	settingsmodel "sharvari-site/internal/settings/domain/model"
	"sharvari-site/internal/shared/errors"
)

// PageID identifies an editable page.
type PageID string

const (
	PageHome     PageID = "home"
	PageAbout    PageID = "about"
	PageServices PageID = "services"
	PageProjects PageID = "projects"
	PageClients  PageID = "clients"
	PageContact  PageID = "contact"
	// PageSettings is the pseudo page backed by settings/general.
	PageSettings PageID = "settings"
)

// PagesCollection holds one document per content page.
const PagesCollection = "pages"

// Tab is a dashboard editing tab.
type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PageInfo describes a page in the dashboard navigation.
type PageInfo struct {
	ID   PageID `json:"id"`
	Name string `json:"name"`
	Tabs []Tab  `json:"tabs"`
}

// Pages lists the dashboard pages in navigation order.
var Pages = []PageInfo{
	{ID: PageHome, Name: "Home", Tabs: []Tab{
		{ID: "hero", Label: "Hero Section"},
		{ID: "stats", Label: "Stats & Features"},
		{ID: "content", Label: "Content Sections"},
	}},
	{ID: PageAbout, Name: "About Us", Tabs: []Tab{
		{ID: "team", Label: "Team Members"},
		{ID: "images", Label: "Page Images"},
	}},
	{ID: PageServices, Name: "Services", Tabs: []Tab{
		{ID: "content", Label: "Content Sections"},
	}},
	{ID: PageProjects, Name: "Projects", Tabs: []Tab{
		{ID: "categories", Label: "Project Categories"},
	}},
	{ID: PageClients, Name: "Clients", Tabs: []Tab{
		{ID: "logos", Label: "Client Logos"},
	}},
	{ID: PageContact, Name: "Contact", Tabs: []Tab{
		{ID: "messages", Label: "Messages"},
	}},
	{ID: PageSettings, Name: "Site Settings", Tabs: []Tab{}},
}

// ParsePageID validates a page id taken from a request.
func ParsePageID(s string) (PageID, error) {
	id := PageID(s)
	for _, p := range Pages {
		if p.ID == id {
			return id, nil
		}
	}
	return "", errors.NewNotFoundError("page").WithCause(errors.ErrUnknownPage).WithDetail("page", s)
}

// IsContent reports whether the page lives in the pages collection.
func (p PageID) IsContent() bool {
	return p != PageSettings
}

// Ref returns the (collection, id) of the document backing the page.
func (p PageID) Ref() (collection, id string) {
	if p == PageSettings {
		return settingsmodel.Collection, settingsmodel.DocumentID
	}
	return PagesCollection, string(p)
}
