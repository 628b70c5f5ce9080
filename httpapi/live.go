package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/semafind/closepairs/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveMsg is a single gesture sent by a live client.
type liveMsg struct {
	Type string `json:"type"`
	// setN
	N *int `json:"n,omitempty"`
	// wheel
	DeltaY float64 `json:"deltaY,omitempty"`
	// dragStart, dragMove
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	// resize
	WindowWidth  float64 `json:"windowWidth,omitempty"`
	WindowHeight float64 `json:"windowHeight,omitempty"`
}

type liveStateMsg struct {
	Type  string        `json:"type"` // "state" or "error"
	State session.State `json:"state"`
	SVG   string        `json:"svg,omitempty"`
	Error string        `json:"error,omitempty"`
}

// applyLiveMsg maps a gesture onto the session, unknown or invalid gestures
// are reported back without touching the session.
func applyLiveMsg(s *session.Session, m liveMsg) (session.State, error) {
	switch m.Type {
	case "state":
		return s.State(), nil
	case "setN":
		if err := (SetNRequest{N: m.N}).Validate(); err != nil {
			return s.State(), err
		}
		return s.SetN(*m.N), nil
	case "wheel":
		if err := (WheelRequest{DeltaY: m.DeltaY}).Validate(); err != nil {
			return s.State(), err
		}
		return s.Wheel(m.DeltaY), nil
	case "dragStart", "dragMove":
		if err := (PointerRequest{X: m.X, Y: m.Y}).Validate(); err != nil {
			return s.State(), err
		}
		if m.Type == "dragStart" {
			return s.DragStart(m.X, m.Y), nil
		}
		return s.DragMove(m.X, m.Y), nil
	case "dragEnd":
		return s.DragEnd(), nil
	case "leave":
		return s.PointerLeave(), nil
	case "reset":
		return s.Reset(), nil
	case "resize":
		req := ResizeRequest{WindowWidth: m.WindowWidth, WindowHeight: m.WindowHeight}
		if err := req.Validate(); err != nil {
			return s.State(), err
		}
		return s.Resize(m.WindowWidth, m.WindowHeight), nil
	default:
		return s.State(), errUnknownGesture(m.Type)
	}
}

type errUnknownGesture string

func (e errUnknownGesture) Error() string {
	return "unknown gesture " + string(e)
}

// Live upgrades to a websocket and handles gestures one at a time, each one
// answered with the new state and drawing. Gestures on a connection are
// therefore applied strictly in order.
func (h *Handlers) Live(c *gin.Context) {
	s := c.MustGet("session").(*session.Session)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Debug().Err(err).Msg("live upgrade failed")
		return
	}
	defer conn.Close()
	logger := log.With().Str("session", s.Id.String()).Logger()
	logger.Debug().Msg("Live connection opened")
	readTimeout := time.Duration(h.cfg.LiveReadTimeout) * time.Second
	// ---------------------------
	for {
		if readTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(readTimeout))
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug().Err(err).Msg("Live connection closed")
			}
			return
		}
		// ---------------------------
		var state session.State
		var m liveMsg
		if err = json.Unmarshal(data, &m); err == nil {
			state, err = applyLiveMsg(s, m)
		} else {
			state = s.State()
		}
		resp := liveStateMsg{Type: "state", State: state}
		if err != nil {
			resp.Type = "error"
			resp.Error = err.Error()
		} else {
			doc, err := s.SVG()
			if err != nil {
				logger.Error().Err(err).Msg("could not render live frame")
				resp.Type = "error"
				resp.Error = err.Error()
			} else {
				resp.SVG = string(doc)
			}
		}
		if err := conn.WriteJSON(resp); err != nil {
			logger.Debug().Err(err).Msg("Live write failed")
			return
		}
	}
}
