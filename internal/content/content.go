package content

import (
	authmodel "sharvari-site/internal/auth/domain/model"
	chttp "sharvari-site/internal/content/adapter/http"
	"sharvari-site/internal/content/usecase"
	"sharvari-site/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// SessionObserver reports session starts and ends.
type SessionObserver interface {
	Observe(fn func(authmodel.SessionChange)) func()
}

// ContentModule owns the page editor and the public page routes.
type ContentModule struct {
	Editor    *usecase.Editor
	pages     *chttp.PageHandler
	dashboard *chttp.DashboardHandler
	stop      func()
}

// NewContentModule wires the editor. Drafts of a user are dropped when
// their session ends.
func NewContentModule(
	store usecase.DocumentClient,
	settings chttp.SettingsProvider,
	notifier usecase.Notifier,
	sessions SessionObserver,
	uploads chttp.UploadStatus,
	adminPath string,
	log logger.Logger,
) *ContentModule {
	editor := usecase.NewEditor(store, notifier, log)
	m := &ContentModule{
		Editor:    editor,
		pages:     chttp.NewPageHandler(editor, settings),
		dashboard: chttp.NewDashboardHandler(adminPath, uploads),
		stop:      func() {},
	}
	if sessions != nil {
		m.stop = sessions.Observe(func(change authmodel.SessionChange) {
			if change.Kind == authmodel.SignedOut {
				editor.DiscardOwner(change.Session.UID)
			}
		})
	}
	return m
}

// RegisterRoutes mounts the public pages, the dashboard and the editor API.
func (m *ContentModule) RegisterRoutes(router fiber.Router, adminOnly, adminPage fiber.Handler) {
	m.pages.RegisterPublicRoutes(router)
	m.dashboard.RegisterRoutes(router, adminPage)
	m.pages.RegisterAdminRoutes(router, adminOnly)
}

// Stop detaches the module from session changes.
func (m *ContentModule) Stop() {
	m.stop()
}
