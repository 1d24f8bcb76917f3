package model

import (
	"testing"
	"time"

	"sharvari-site/internal/shared/errors"
	storemodel "sharvari-site/internal/store/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageID(t *testing.T) {
	for _, p := range Pages {
		id, err := ParsePageID(string(p.ID))
		require.NoError(t, err)
		assert.Equal(t, p.ID, id)
	}

	_, err := ParsePageID("careers")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestPageRef(t *testing.T) {
	col, id := PageAbout.Ref()
	assert.Equal(t, "pages", col)
	assert.Equal(t, "about", id)

	col, id = PageSettings.Ref()
	assert.Equal(t, "settings", col)
	assert.Equal(t, "general", id)
	assert.False(t, PageSettings.IsContent())
}

func TestDefault(t *testing.T) {
	services := Default(PageServices)
	assert.Equal(t, "Our Services", services.Title)
	assert.Equal(t, "Leading the way in Electrical Infrastructure Development.", services.HeroText)
	require.Equal(t, 11, services.Sections.Len())
	first, _ := services.Sections.At(0)
	assert.Equal(t, "EHV Transmission Lines", first.Heading)
	assert.Equal(t, "https://placehold.co/800x600/2563eb/FFF?text=EHV+Transmission+Lines", first.Image)

	projects := Default(PageProjects)
	assert.Equal(t, "Our Major Projects", projects.Title)
	assert.Equal(t, 0, projects.ProjectCategories.Len())

	settings := Default(PageSettings)
	assert.Empty(t, settings.Email)
	assert.Empty(t, settings.Phone)
	assert.Empty(t, settings.Address)
}

func TestSeedAboutSections(t *testing.T) {
	t.Run("empty page gets all five", func(t *testing.T) {
		p := Default(PageAbout)
		assert.Equal(t, 5, SeedAboutSections(p))
		headings := []string{}
		for _, s := range p.Sections.Items() {
			headings = append(headings, s.Heading)
		}
		assert.Equal(t, []string{"About Sharvari Electricals", "Our Infrastructure", "Our Vision", "Our Mission", "Our Strength"}, headings)
	})

	t.Run("existing sections keep their order", func(t *testing.T) {
		p := &Page{ID: PageAbout, Sections: NewList(
			Section{Heading: "Our Mission Statement", Content: "custom"},
			Section{Heading: "History"},
			Section{Heading: "About Sharvari Electricals Pvt Ltd"},
		)}

		assert.Equal(t, 3, SeedAboutSections(p))
		items := p.Sections.Items()
		require.Len(t, items, 6)
		assert.Equal(t, "Our Mission Statement", items[0].Heading)
		assert.Equal(t, "custom", items[0].Content)
		assert.Equal(t, "History", items[1].Heading)
		assert.Equal(t, "About Sharvari Electricals Pvt Ltd", items[2].Heading)
		assert.Equal(t, "Our Infrastructure", items[3].Heading)
		assert.Equal(t, "Our Vision", items[4].Heading)
		assert.Equal(t, "Our Strength", items[5].Heading)
	})

	t.Run("idempotent", func(t *testing.T) {
		p := Default(PageAbout)
		SeedAboutSections(p)
		assert.Equal(t, 0, SeedAboutSections(p))
		assert.Equal(t, 5, p.Sections.Len())
	})
}

func TestNormalize(t *testing.T) {
	t.Run("hero images become slides", func(t *testing.T) {
		p := &Page{Title: "T", HeroText: "H", HeroImages: []string{"a.jpg", "b.jpg"}}
		Normalize(p)
		assert.Equal(t, []HeroSlide{
			{Image: "a.jpg", Title: "T", Subtext: "H"},
			{Image: "b.jpg", Title: "T", Subtext: "H"},
		}, p.HeroSlides.Items())
		Normalize(p)
		assert.Equal(t, 2, p.HeroSlides.Len())
	})

	t.Run("single hero image", func(t *testing.T) {
		p := &Page{Title: "T", HeroImage: "one.jpg"}
		Normalize(p)
		assert.Equal(t, []HeroSlide{{Image: "one.jpg", Title: "T"}}, p.HeroSlides.Items())
	})

	t.Run("slides win over legacy images", func(t *testing.T) {
		p := &Page{HeroImages: []string{"a.jpg"}, HeroSlides: NewList(HeroSlide{Image: "s.jpg"})}
		Normalize(p)
		assert.Equal(t, []HeroSlide{{Image: "s.jpg"}}, p.HeroSlides.Items())
	})
}

func TestFromFieldsToFields(t *testing.T) {
	updated := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	stored := storemodel.Fields{
		"title":      "Home",
		"showHero":   false,
		"heroImages": []interface{}{"a.jpg"},
		"sections": []interface{}{
			map[string]interface{}{"heading": "Intro", "content": "<p>Hi</p>", "layout": "card"},
			"not a section",
		},
		"stats": []interface{}{storemodel.Fields{"value": "15+", "label": "Years"}},
		"projectCategories": []interface{}{
			map[string]interface{}{
				"id": "c1", "title": "Lines",
				"columns": []interface{}{"Client", "Status"},
				"rows":    []interface{}{map[string]interface{}{"Client": "MSETCL", "Old": "kept"}},
			},
		},
		"updatedAt": updated,
		"customKey": "preserved",
	}

	p := FromFields(PageHome, stored)
	assert.Equal(t, "Home", p.Title)
	require.NotNil(t, p.ShowHero)
	assert.False(t, *p.ShowHero)
	assert.Equal(t, []Section{{Heading: "Intro", Content: "<p>Hi</p>", Layout: LayoutCard}}, p.Sections.Items())
	assert.Equal(t, []Stat{{Value: "15+", Label: "Years"}}, p.Stats.Items())
	cat, _ := p.ProjectCategories.At(0)
	assert.Equal(t, "kept", cat.Rows[0].Cell("Old"))
	assert.Equal(t, "", cat.Rows[0].Cell("Status"))
	require.NotNil(t, p.UpdatedAt)
	assert.Equal(t, updated, *p.UpdatedAt)

	out := p.ToFields()
	assert.Equal(t, "preserved", out["customKey"])
	assert.Equal(t, false, out["showHero"])
	assert.Equal(t, []interface{}{"a.jpg"}, out["heroImages"])
	assert.NotContains(t, out, "updatedAt")
	assert.NotContains(t, out, "email")
	assert.Equal(t, "", out["aboutImage"], "empty images are written so clearing reaches the store")

	again := FromFields(PageHome, out)
	assert.Equal(t, p.Sections.Items(), again.Sections.Items())
	assert.Equal(t, p.ProjectCategories.Items(), again.ProjectCategories.Items())
}

func TestToFields_Settings(t *testing.T) {
	p := &Page{ID: PageSettings, Email: "a@b.co", Title: "ignored"}
	assert.Equal(t, storemodel.Fields{"email": "a@b.co", "phone": "", "address": ""}, p.ToFields())
}

func TestClone(t *testing.T) {
	p := Default(PageServices)
	cp := p.Clone()
	require.NoError(t, cp.Sections.Delete(0))
	assert.Equal(t, 11, p.Sections.Len())
	assert.Equal(t, 10, cp.Sections.Len())
}
