package realtime

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/pkg/auth"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades authenticated HTTP requests to websocket
// connections. Token is taken from the Authorization header or, since
// browsers cannot set headers on websocket requests, a token query
// parameter.
type Handler struct {
	hub       *Hub
	db        *ent.Client
	jwtSecret string
	blacklist *auth.TokenBlacklist
}

// NewHandler creates a new websocket handler
func NewHandler(hub *Hub, db *ent.Client, jwtSecret string, blacklist *auth.TokenBlacklist) *Handler {
	return &Handler{
		hub:       hub,
		db:        db,
		jwtSecret: jwtSecret,
		blacklist: blacklist,
	}
}

// Serve handles GET /ws
func (h *Handler) Serve(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		header := c.Request().Header.Get("Authorization")
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	claims, err := auth.ValidateJWTWithBlacklist(c.Request().Context(), token, h.jwtSecret, h.blacklist)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	u, err := h.db.User.Get(c.Request().Context(), claims.UserID)
	if err != nil || !u.IsActive {
		return echo.NewHTTPError(http.StatusUnauthorized, "account unavailable")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := newClient(h.hub, conn, u.ID, string(u.Role))
	go client.writePump()
	go client.readPump()
	return nil
}
