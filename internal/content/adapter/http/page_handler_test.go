package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chttp "sharvari-site/internal/content/adapter/http"
	"sharvari-site/internal/content/domain/model"
	"sharvari-site/internal/content/usecase"
	settingsusecase "sharvari-site/internal/settings/usecase"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/utils"
	"sharvari-site/internal/store/adapter/persistence/memory"
	storemodel "sharvari-site/internal/store/domain/model"
	storeusecase "sharvari-site/internal/store/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asAdmin(c *fiber.Ctx) error {
	c.SetUserContext(utils.WithUser(c.UserContext(), "admin-1", "admin@sharvari.test"))
	return c.Next()
}

type fixture struct {
	app  *fiber.App
	docs *memory.DocumentRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	docs := memory.NewDocumentRepository()
	bus := eventbus.NewEventBus(nil)
	client := storeusecase.NewClient(docs, nil, bus, nil)
	settings := settingsusecase.NewSiteSettings(client, nil)
	settings.Init(context.Background(), bus)
	t.Cleanup(settings.Teardown)

	h := chttp.NewPageHandler(usecase.NewEditor(client, nil, nil), settings)
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app, asAdmin)
	return &fixture{app: app, docs: docs}
}

func (f *fixture) do(t *testing.T, method, target, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodePage(t *testing.T, data []byte) model.Page {
	t.Helper()
	var p model.Page
	require.NoError(t, json.Unmarshal(data, &p))
	return p
}

func TestPageHandler_PublicView(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.docs.Set(context.Background(), "pages", "home", storemodel.Fields{
		"title": "Powering Progress",
		"stats": []interface{}{map[string]interface{}{"value": "150+", "label": "Projects"}},
	}, false))

	status, data := f.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, status)

	var resp struct {
		Page     model.View             `json:"page"`
		Settings map[string]interface{} `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, "Powering Progress", resp.Page.Title)
	assert.True(t, resp.Page.ShowHero)
	require.Len(t, resp.Page.Stats, 1)
	assert.Equal(t, 150, resp.Page.Stats[0].Number)
	assert.Equal(t, "+", resp.Page.Stats[0].Suffix)
	assert.NotEmpty(t, resp.Settings["email"])
}

func TestPageHandler_UnknownPage(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodGet, "/api/pages/careers", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.do(t, http.MethodGet, "/api/pages/settings", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.do(t, http.MethodGet, "/api/admin/pages/careers", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPageHandler_EditAndSave(t *testing.T) {
	f := newFixture(t)

	status, data := f.do(t, http.MethodPatch, "/api/admin/pages/home", `{"title":"New Title","showHero":false}`)
	require.Equal(t, http.StatusOK, status, string(data))
	p := decodePage(t, data)
	assert.Equal(t, "New Title", p.Title)
	require.NotNil(t, p.ShowHero)
	assert.False(t, *p.ShowHero)

	status, _ = f.do(t, http.MethodPost, "/api/admin/pages/home/lists/features", `{"title":"Safety"}`)
	require.Equal(t, http.StatusOK, status)
	status, data = f.do(t, http.MethodPost, "/api/admin/pages/home/lists/features", `{"title":"Quality"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, decodePage(t, data).Features.Len())

	status, data = f.do(t, http.MethodPost, "/api/admin/pages/home/lists/features/1/move?dir=up", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Quality", decodePage(t, data).Features.Items()[0].Title)

	status, _ = f.do(t, http.MethodDelete, "/api/admin/pages/home/lists/features/5", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, http.MethodPost, "/api/admin/pages/home/lists/nope", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, http.MethodPost, "/api/admin/pages/home/save", "")
	require.Equal(t, http.StatusOK, status)

	doc, err := f.docs.Get(context.Background(), "pages", "home")
	require.NoError(t, err)
	assert.Equal(t, "New Title", doc.Fields.String("title"))
	assert.False(t, doc.Fields.Bool("showHero", true))
}

func TestPageHandler_Categories(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodPost, "/api/admin/pages/projects/lists/projectCategories", "")
	require.Equal(t, http.StatusOK, status)

	status, _ = f.do(t, http.MethodPut, "/api/admin/pages/projects/categories/0/columns", `{"columns":"Client, Capacity"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = f.do(t, http.MethodPost, "/api/admin/pages/projects/categories/0/rows", "")
	require.Equal(t, http.StatusOK, status)
	status, data := f.do(t, http.MethodPut, "/api/admin/pages/projects/categories/0/rows/0", `{"column":"Capacity","value":"33kV"}`)
	require.Equal(t, http.StatusOK, status)

	cat := decodePage(t, data).ProjectCategories.Items()[0]
	assert.Equal(t, []string{"Client", "Capacity"}, cat.Columns)
	require.Len(t, cat.Rows, 1)
	assert.Equal(t, "33kV", cat.Rows[0]["Capacity"])

	status, _ = f.do(t, http.MethodPut, "/api/admin/pages/projects/categories/x/rows/0", `{"column":"Client","value":"A"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPageHandler_SettingsSave(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodPatch, "/api/admin/pages/settings", `{"email":"not-an-email","phone":"","address":""}`)
	require.Equal(t, http.StatusOK, status)
	status, data := f.do(t, http.MethodPost, "/api/admin/pages/settings/save", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(data), usecase.MsgInvalidEmail)

	_, err := f.docs.Get(context.Background(), "settings", "general")
	assert.Error(t, err)

	status, _ = f.do(t, http.MethodPatch, "/api/admin/pages/settings", `{"email":"info@sharvari.test"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = f.do(t, http.MethodPost, "/api/admin/pages/settings/save", "")
	require.Equal(t, http.StatusOK, status)

	doc, err := f.docs.Get(context.Background(), "settings", "general")
	require.NoError(t, err)
	assert.Equal(t, "info@sharvari.test", doc.Fields.String("email"))
}

func TestPageHandler_ReloadDiscardsDraft(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodPatch, "/api/admin/pages/contact", `{"title":"Draft"}`)
	require.Equal(t, http.StatusOK, status)

	status, data := f.do(t, http.MethodPost, "/api/admin/pages/contact/reload", "")
	require.Equal(t, http.StatusOK, status)
	assert.NotEqual(t, "Draft", decodePage(t, data).Title)

	status, _ = f.do(t, http.MethodDelete, "/api/admin/pages/contact/draft", "")
	assert.Equal(t, http.StatusNoContent, status)
}
