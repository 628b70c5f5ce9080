package httpapi

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/semafind/closepairs/models"
	"github.com/stretchr/testify/require"
)

func dialLive(t *testing.T) *websocket.Conn {
	t.Helper()
	router := setupTestRouter(t)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	state := createSession(t, router)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/sessions/" + state.Id.String() + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendLive(t *testing.T, conn *websocket.Conn, msg any) liveStateMsg {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
	var resp liveStateMsg
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func Test_LiveGestures(t *testing.T) {
	conn := dialLive(t)
	resp := sendLive(t, conn, liveMsg{Type: "setN", N: ptr(4)})
	require.Equal(t, "state", resp.Type)
	require.Equal(t, 4, resp.State.N)
	require.Equal(t, 16, strings.Count(resp.SVG, "<circle "))
	// ---------------------------
	resp = sendLive(t, conn, liveMsg{Type: "wheel", DeltaY: 120})
	require.InDelta(t, 0.9, resp.State.View.Zoom, 1e-12)
	resp = sendLive(t, conn, liveMsg{Type: "dragStart", X: 10, Y: 10})
	require.Equal(t, models.DragDragging, resp.State.Drag)
	resp = sendLive(t, conn, liveMsg{Type: "dragMove", X: 20, Y: 5})
	require.Equal(t, models.Offset{X: 10, Y: -5}, resp.State.View.Pan)
	resp = sendLive(t, conn, liveMsg{Type: "leave"})
	require.Equal(t, models.DragIdle, resp.State.Drag)
	resp = sendLive(t, conn, liveMsg{Type: "reset"})
	require.Equal(t, models.ViewState{Zoom: 1}, resp.State.View)
}

func Test_LiveErrorsKeepConnection(t *testing.T) {
	conn := dialLive(t)
	resp := sendLive(t, conn, liveMsg{Type: "teleport"})
	require.Equal(t, "error", resp.Type)
	require.Contains(t, resp.Error, "teleport")
	resp = sendLive(t, conn, liveMsg{Type: "setN", N: ptr(20)})
	require.Equal(t, "error", resp.Type)
	require.Equal(t, 0, resp.State.N)
	// Missing n is not n = 0
	resp = sendLive(t, conn, liveMsg{Type: "setN", N: ptr(3)})
	require.Equal(t, 3, resp.State.N)
	resp = sendLive(t, conn, map[string]string{"type": "setN"})
	require.Equal(t, "error", resp.Type)
	require.Equal(t, 3, resp.State.N)
	// Pointer positions that would overflow the pan
	resp = sendLive(t, conn, liveMsg{Type: "dragStart", X: 1.7e308})
	require.Equal(t, "error", resp.Type)
	require.Equal(t, models.DragIdle, resp.State.Drag)
	resp = sendLive(t, conn, liveMsg{Type: "dragMove", X: -1.7e308})
	require.Equal(t, "error", resp.Type)
	require.Equal(t, models.Offset{}, resp.State.View.Pan)
	// Malformed frame
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{gandalf")))
	var raw liveStateMsg
	require.NoError(t, conn.ReadJSON(&raw))
	require.Equal(t, "error", raw.Type)
	// Still usable
	resp = sendLive(t, conn, liveMsg{Type: "state"})
	require.Equal(t, "state", resp.Type)
	require.NotEmpty(t, resp.SVG)
}
