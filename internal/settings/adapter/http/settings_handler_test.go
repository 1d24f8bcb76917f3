package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	shttp "sharvari-site/internal/settings/adapter/http"
	"sharvari-site/internal/settings/usecase"
	"sharvari-site/internal/store/adapter/persistence/memory"
	storemodel "sharvari-site/internal/store/domain/model"
	storeusecase "sharvari-site/internal/store/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsHandler_Get(t *testing.T) {
	ctx := context.Background()
	docs := memory.NewDocumentRepository()
	require.NoError(t, docs.Set(ctx, "settings", "general", storemodel.Fields{"address": "Pune"}, false))

	svc := usecase.NewSiteSettings(storeusecase.NewClient(docs, nil, nil, nil), nil)
	svc.Init(ctx, nil)

	app := fiber.New()
	shttp.NewSettingsHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Settings map[string]interface{} `json:"settings"`
		Loading  bool                   `json:"loading"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Loading)
	assert.Equal(t, "Pune", body.Settings["address"])
	assert.Equal(t, "info@sharvarielectricals.com", body.Settings["email"])
}
