package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/enttest"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/auth"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Hub, *ent.Client, *httptest.Server) {
	t.Helper()
	db := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { db.Close() })

	hub := NewHub(logger.Default())
	go hub.Run()

	e := echo.New()
	handler := NewHandler(hub, db, testSecret, nil)
	e.GET("/ws", handler.Serve)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return hub, db, srv
}

func createUser(t *testing.T, db *ent.Client, email, role string) *ent.User {
	t.Helper()
	u, err := db.User.Create().
		SetEmail(email).
		SetPasswordHash("x").
		SetFirstName("Test").
		SetLastName("User").
		SetRole(user.Role(role)).
		Save(context.Background())
	require.NoError(t, err)
	return u
}

func dial(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func waitForRoom(t *testing.T, hub *Hub, room string, size int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.RoomSize(room) == size {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room %s never reached size %d", room, size)
}

func TestServe_RejectsMissingOrBadToken(t *testing.T) {
	_, _, srv := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(url+"?token=garbage", nil)
	require.Error(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestServe_RejectsInactiveUser(t *testing.T) {
	_, db, srv := newTestServer(t)
	u := createUser(t, db, "gone@example.com", "sales_executive")
	_, err := db.User.UpdateOneID(u.ID).SetIsActive(false).Save(context.Background())
	require.NoError(t, err)

	token, err := auth.GenerateJWT(u.ID, u.Email, string(u.Role), testSecret, 1)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestEmit_BroadcastsToAllClients(t *testing.T) {
	hub, db, srv := newTestServer(t)
	u := createUser(t, db, "rep@example.com", "sales_executive")
	token, err := auth.GenerateJWT(u.ID, u.Email, string(u.Role), testSecret, 1)
	require.NoError(t, err)

	conn := dial(t, srv, token)
	waitForRoom(t, hub, "all-users", 1)

	hub.Emit("lead:created", map[string]interface{}{"lead_id": 7})

	env := readEnvelope(t, conn)
	assert.Equal(t, "lead:created", env.Event)
	assert.False(t, env.EmittedAt.IsZero())

	payload, ok := env.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 7, payload["lead_id"])
}

func TestDefaultRooms(t *testing.T) {
	hub, db, srv := newTestServer(t)
	u := createUser(t, db, "manager@example.com", "manager")
	token, err := auth.GenerateJWT(u.ID, u.Email, string(u.Role), testSecret, 1)
	require.NoError(t, err)

	dial(t, srv, token)
	waitForRoom(t, hub, "all-users", 1)

	assert.Equal(t, 1, hub.RoomSize(fmt.Sprintf("user:%d", u.ID)))
	assert.Equal(t, 1, hub.RoomSize("role:manager"))
}

func TestJoinAndLeaveLeadRoom(t *testing.T) {
	hub, db, srv := newTestServer(t)
	u := createUser(t, db, "rep@example.com", "sales_executive")
	token, err := auth.GenerateJWT(u.ID, u.Email, string(u.Role), testSecret, 1)
	require.NoError(t, err)

	conn := dial(t, srv, token)
	waitForRoom(t, hub, "all-users", 1)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "join:lead", "lead_id": 42}))
	waitForRoom(t, hub, "lead:42", 1)

	hub.EmitToRoom("lead:42", "activity:created", map[string]interface{}{"activity_id": 1})
	env := readEnvelope(t, conn)
	assert.Equal(t, "activity:created", env.Event)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "leave:lead", "lead_id": 42}))
	waitForRoom(t, hub, "lead:42", 0)
}
