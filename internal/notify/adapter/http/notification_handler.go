package http

import (
	"strconv"
	"time"

	"sharvari-site/internal/notify/config"
	"sharvari-site/internal/notify/domain/model"
	"sharvari-site/internal/notify/usecase"
	"sharvari-site/internal/shared/errors"
	"sharvari-site/internal/shared/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localsSessionDone    = "notify.sessionDone"
	localsSessionRelease = "notify.sessionRelease"
	defaultRecentLimit   = 20
	maxRecentLimit       = 200
)

// SessionWatch authorises a websocket upgrade. done is closed once the
// caller's admin session ends; release frees whatever the watch holds.
type SessionWatch func(c *fiber.Ctx) (done <-chan struct{}, release func(), err error)

// WebSocketMessage is the frame sent to dashboard clients.
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NotificationHandler serves the notification history and the live channel.
type NotificationHandler struct {
	svc   *usecase.Service
	cfg   *config.Config
	watch SessionWatch
	log   logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(svc *usecase.Service, cfg *config.Config, watch SessionWatch, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		svc:   svc,
		cfg:   cfg,
		watch: watch,
		log:   log.WithComponent("notification-ws"),
	}
}

// RegisterRoutes mounts the history endpoint behind adminOnly and the
// websocket endpoint behind the session watch.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler) {
	router.Get("/api/admin/notifications", adminOnly, h.Recent)
	router.Use(h.cfg.WebSocketPath, h.upgrade)
	router.Get(h.cfg.WebSocketPath, websocket.New(h.stream))
}

// Recent returns stored notifications, newest first.
func (h *NotificationHandler) Recent(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultRecentLimit)))
	if err != nil || limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	items, err := h.svc.Recent(c.UserContext(), limit)
	if err != nil {
		h.log.Errorf("Failed to read notifications: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "notifications_unavailable",
			"message": "Could not load notifications",
		})
	}
	return c.JSON(fiber.Map{"notifications": items})
}

func (h *NotificationHandler) upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	done, release, err := h.watch(c)
	if err != nil {
		return c.Status(errors.HTTPStatus(err)).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": err.Error(),
		})
	}
	c.Locals(localsSessionDone, done)
	c.Locals(localsSessionRelease, release)
	return c.Next()
}

func (h *NotificationHandler) stream(conn *websocket.Conn) {
	clientID := uuid.NewString()
	done, _ := conn.Locals(localsSessionDone).(<-chan struct{})
	if release, ok := conn.Locals(localsSessionRelease).(func()); ok && release != nil {
		defer release()
	}

	outbox := make(chan model.Notification, h.cfg.ClientBufferSize)
	cancel := h.svc.Listen(func(n model.Notification) {
		select {
		case outbox <- n:
		default:
			h.log.Warnf("Dropping notification for slow client %s", clientID)
		}
	})
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.log.Infof("Notification client %s connected", clientID)
	defer h.log.Infof("Notification client %s disconnected", clientID)

	for {
		select {
		case <-closed:
			return
		case <-done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session ended"),
				time.Now().Add(time.Second))
			return
		case n := <-outbox:
			if err := conn.WriteJSON(WebSocketMessage{Type: "notification", Data: n}); err != nil {
				h.log.Warnf("Write to client %s failed: %v", clientID, err)
				return
			}
		}
	}
}
