package repository

import (
	"context"

	"sharvari-site/internal/upload/domain/model"
)

// AssetHost stores an image and returns its public URL.
type AssetHost interface {
	Name() string
	Upload(ctx context.Context, folder string, file model.File) (string, error)
}
