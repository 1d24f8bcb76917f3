package cloudinary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sharvari-site/internal/upload/domain/model"
	"sharvari-site/internal/upload/domain/repository"

	"github.com/gofiber/fiber/v2"
)

// Host performs unsigned uploads to the Cloudinary image upload API.
type Host struct {
	endpoint string
	preset   string
	timeout  time.Duration
}

// NewHost creates a Cloudinary host for cloudName using an unsigned upload preset.
func NewHost(apiBase, cloudName, preset string, timeout time.Duration) *Host {
	return &Host{
		endpoint: fmt.Sprintf("%s/%s/image/upload", strings.TrimRight(apiBase, "/"), cloudName),
		preset:   preset,
		timeout:  timeout,
	}
}

var _ repository.AssetHost = (*Host)(nil)

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (h *Host) Name() string { return "cloudinary" }

// Upload posts file, upload_preset and folder as a multipart form and
// returns the secure_url of the stored image.
func (h *Host) Upload(ctx context.Context, folder string, file model.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	timeout := h.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout || timeout <= 0 {
			timeout = remaining
		}
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("upload_preset", h.preset)
	args.Set("folder", folder)

	// files must be attached before MultipartForm writes the body
	agent := fiber.Post(h.endpoint).
		FileData(&fiber.FormFile{Fieldname: "file", Name: file.Name, Content: file.Data}).
		MultipartForm(args)
	if timeout > 0 {
		agent.Timeout(timeout)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", fmt.Errorf("upload failed for %s: %w", file.Name, errs[0])
	}

	var resp uploadResponse
	if err := json.Unmarshal(body, &resp); err != nil && code < 300 {
		return "", fmt.Errorf("upload failed for %s: unreadable response: %w", file.Name, err)
	}
	if code < 200 || code >= 300 {
		if resp.Error != nil && resp.Error.Message != "" {
			return "", fmt.Errorf("upload failed for %s: %s", file.Name, resp.Error.Message)
		}
		return "", fmt.Errorf("upload failed for %s: status %d", file.Name, code)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("upload failed for %s: no secure_url in response", file.Name)
	}
	return resp.SecureURL, nil
}
