package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	uhttp "sharvari-site/internal/upload/adapter/http"
	"sharvari-site/internal/upload/config"
	"sharvari-site/internal/upload/domain/model"
	"sharvari-site/internal/upload/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHost struct{}

func (stubHost) Name() string { return "stub" }

func (stubHost) Upload(_ context.Context, folder string, file model.File) (string, error) {
	return "https://cdn.example.com/" + folder + "/" + file.Name, nil
}

func allowAll(c *fiber.Ctx) error { return c.Next() }

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	uhttp.NewUploadHandler(usecase.NewUploader(stubHost{}, cfg, nil, nil, nil)).RegisterRoutes(app, allowAll)
	return app
}

func configured() *config.Config {
	return &config.Config{Host: config.HostCloudinary, DefaultFolder: "uploads", CloudinaryCloudName: "c", CloudinaryUploadPreset: "p"}
}

type part struct {
	name, contentType string
	data              []byte
}

func multipartRequest(t *testing.T, fields map[string]string, parts ...part) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+p.name+`"`)
		h.Set("Content-Type", p.contentType)
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadHandler_Single(t *testing.T) {
	app := newApp(configured())

	req := multipartRequest(t, map[string]string{"folder": "about"}, part{"team.jpg", "image/jpeg", []byte("jpg")})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res model.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "https://cdn.example.com/about/team.jpg", res.URL)
}

func TestUploadHandler_Multiple(t *testing.T) {
	app := newApp(configured())

	req := multipartRequest(t, map[string]string{"multiple": "true"},
		part{"a.png", "image/png", []byte("a")},
		part{"b.webp", "image/webp", []byte("b")},
	)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res model.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.ElementsMatch(t, []string{
		"https://cdn.example.com/uploads/a.png",
		"https://cdn.example.com/uploads/b.webp",
	}, res.URLs)
}

func TestUploadHandler_InvalidType(t *testing.T) {
	app := newApp(configured())

	resp, err := app.Test(multipartRequest(t, nil, part{"notes.pdf", "application/pdf", []byte("%PDF")}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid file type: notes.pdf. Please upload JPG, PNG, or WebP.", body["error"])
}

func TestUploadHandler_Disabled(t *testing.T) {
	app := newApp(&config.Config{Host: config.HostS3})

	resp, err := app.Test(multipartRequest(t, nil, part{"a.png", "image/png", []byte("a")}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "S3 not configured. Please check your .env file.", body["error"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/uploads/status", nil))
	require.NoError(t, err)
	var status map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.False(t, status["enabled"])
}

func TestUploadHandler_NotMultipart(t *testing.T) {
	app := newApp(configured())

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/admin/uploads", bytes.NewBufferString("{}")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
