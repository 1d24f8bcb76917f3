package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/eventbus"
	"sharvari-site/internal/shared/logger"
	"sharvari-site/internal/upload/config"
	"sharvari-site/internal/upload/domain/model"
	"sharvari-site/internal/upload/domain/repository"

	"golang.org/x/sync/errgroup"
)

// Operator-facing messages.
const (
	msgInvalidType   = "Invalid file type: %s. Please upload JPG, PNG, or WebP."
	msgTooLarge      = "File too large: %s. Max size is 5MB."
	msgBatchFailed   = "One or more uploads failed. Please try again."
	msgUploadedOne   = "Image uploaded successfully!"
	msgUploadedMany  = "%d images uploaded successfully!"
	msgNoFiles       = "No files selected."
	msgHostMissingFB = "Asset host not configured. Please check your .env file."
)

// Notifier surfaces transient messages to the operator.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// EventPublisher is the part of the event bus the uploader needs.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event) error
}

// Progress is reported after every completed file.
type Progress struct {
	Done    int     `json:"done"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// Request is one upload batch.
type Request struct {
	Files    []model.File
	Folder   string
	Multiple bool
	// OnProgress is optional and may be called from several goroutines,
	// but never concurrently.
	OnProgress func(Progress)
}

// Uploader validates image batches and sends them to the asset host.
type Uploader struct {
	host     repository.AssetHost
	disabled string
	folder   string
	notifier Notifier
	events   EventPublisher
	logger   logger.Logger
}

// NewUploader builds an Uploader. A nil host, or a non-empty disabled
// message, leaves uploads switched off. notifier and events may be nil.
func NewUploader(host repository.AssetHost, cfg *config.Config, notifier Notifier, events EventPublisher, log logger.Logger) *Uploader {
	if log == nil {
		log = eventbus.NoopLogger()
	}
	u := &Uploader{
		host:     host,
		disabled: cfg.Missing(),
		folder:   cfg.DefaultFolder,
		notifier: notifier,
		events:   events,
		logger:   log.WithComponent("uploader"),
	}
	if u.host == nil && u.disabled == "" {
		u.disabled = msgHostMissingFB
	}
	if u.disabled != "" {
		u.logger.Warn(u.disabled)
	}
	return u
}

// Enabled reports whether an asset host is configured.
func (u *Uploader) Enabled() bool {
	return u.disabled == ""
}

// Upload validates the whole batch, then uploads every file concurrently.
// Files that finished before a failure are left on the host.
func (u *Uploader) Upload(ctx context.Context, req Request) (*model.Result, error) {
	if !u.Enabled() {
		u.notifyError(ctx, u.disabled)
		return nil, errors.NewUploadError(u.disabled).WithCause(errors.ErrUploadsDisabled)
	}
	if len(req.Files) == 0 {
		return nil, errors.NewValidationError(msgNoFiles)
	}
	if err := validate(req.Files); err != nil {
		u.notifyError(ctx, err.Message)
		return nil, err
	}

	folder := strings.TrimSpace(req.Folder)
	if folder == "" {
		folder = u.folder
	}

	total := len(req.Files)
	var (
		mu   sync.Mutex
		urls = make([]string, 0, total)
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, file := range req.Files {
		g.Go(func() error {
			url, err := u.host.Upload(gctx, folder, file)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			urls = append(urls, url)
			u.progress(ctx, req.OnProgress, Progress{
				Done:    len(urls),
				Total:   total,
				Percent: float64(len(urls)) / float64(total) * 100,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		u.logger.WithContext(ctx).Errorf("Upload error: %v", err)
		u.notifyError(ctx, msgBatchFailed)
		return nil, errors.NewUploadError(msgBatchFailed).WithCause(err)
	}

	u.logger.WithContext(ctx).Infof("Uploaded %d file(s) to %s via %s", total, folder, u.host.Name())
	if req.Multiple {
		u.notifySuccess(ctx, fmt.Sprintf(msgUploadedMany, len(urls)))
		return &model.Result{URLs: urls}, nil
	}
	u.notifySuccess(ctx, msgUploadedOne)
	return &model.Result{URL: urls[0]}, nil
}

// validate checks type before size for each file and stops at the first violation.
func validate(files []model.File) *errors.AppError {
	for _, f := range files {
		if _, ok := model.AllowedContentTypes[f.ContentType]; !ok {
			return errors.NewValidationError(fmt.Sprintf(msgInvalidType, f.Name)).WithDetail("file", f.Name)
		}
		if f.Size > config.MaxFileSize {
			return errors.NewValidationError(fmt.Sprintf(msgTooLarge, f.Name)).WithDetail("file", f.Name)
		}
	}
	return nil
}

func (u *Uploader) progress(ctx context.Context, fn func(Progress), p Progress) {
	if fn != nil {
		fn(p)
	}
	if u.events != nil {
		if err := u.events.Publish(ctx, eventbus.NewBasicEventWithSource(eventbus.EventTypeUploadProgress, p, "uploader")); err != nil {
			u.logger.Debugf("Progress subscriber failed: %v", err)
		}
	}
}

func (u *Uploader) notifySuccess(ctx context.Context, msg string) {
	if u.notifier != nil {
		u.notifier.Success(ctx, msg)
	}
}

func (u *Uploader) notifyError(ctx context.Context, msg string) {
	if u.notifier != nil {
		u.notifier.Error(ctx, msg)
	}
}
