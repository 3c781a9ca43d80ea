package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	"nhooyr.io/websocket"

	"github.com/aristath/botboard/internal/modules/viewport"
)

// PointerFrame is one pointer event from the client, msgpack-encoded on
// the wire. Handle is only meaningful for "down" frames.
type PointerFrame struct {
	Type   string  `msgpack:"type"` // down, move, up, blur
	Handle string  `msgpack:"handle"`
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
}

// SizeFrame is the reply after each pointer frame: the resulting viewport
// size and gesture state.
type SizeFrame struct {
	Height    float64 `msgpack:"height"`
	Width     float64 `msgpack:"width"`
	AutoWidth bool    `msgpack:"auto_width"`
	Dragging  bool    `msgpack:"dragging"`
	Error     string  `msgpack:"error,omitempty"`
}

// PointerSocketHandler feeds client pointer events into the viewport
// controller over a WebSocket. One socket carries one client's gestures;
// a socket closing mid-drag commits the gesture (the server-side
// equivalent of detaching global listeners on unmount).
type PointerSocketHandler struct {
	vp  *viewport.Controller
	log zerolog.Logger
}

// NewPointerSocketHandler creates a new pointer socket handler
func NewPointerSocketHandler(vp *viewport.Controller, log zerolog.Logger) *PointerSocketHandler {
	return &PointerSocketHandler{
		vp:  vp,
		log: log.With().Str("component", "pointer_socket").Logger(),
	}
}

// ServeHTTP handles GET /api/pointer WebSocket upgrades
func (h *PointerSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Same-origin is not enforced: the chart page may be served from
		// a different dev port.
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "connection closed")

	h.log.Info().Msg("Pointer socket connected")

	ctx := r.Context()
	for {
		frame, err := h.readFrame(ctx, conn)
		if err != nil {
			// Client went away; never leak an in-flight gesture.
			h.vp.Blur()
			h.log.Info().Msg("Pointer socket disconnected")
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}

		reply := h.apply(frame)
		if err := h.writeFrame(ctx, conn, reply); err != nil {
			h.vp.Blur()
			h.log.Warn().Err(err).Msg("Pointer socket write failed")
			return
		}
	}
}

// apply routes one pointer frame into the controller state machine
func (h *PointerSocketHandler) apply(frame PointerFrame) SizeFrame {
	var errMsg string

	switch frame.Type {
	case "down":
		handle, err := viewport.ParseHandle(frame.Handle)
		if err == nil {
			err = h.vp.PointerDown(handle, frame.X, frame.Y)
		}
		if err != nil {
			errMsg = err.Error()
		}
	case "move":
		if _, err := h.vp.PointerMove(frame.X, frame.Y); err != nil {
			errMsg = err.Error()
		}
	case "up":
		h.vp.PointerUp()
	case "blur":
		h.vp.Blur()
	default:
		errMsg = "unknown frame type: " + frame.Type
	}

	size := h.vp.Size()
	return SizeFrame{
		Height:    size.Height,
		Width:     size.Width,
		AutoWidth: size.AutoWidth,
		Dragging:  h.vp.Dragging(),
		Error:     errMsg,
	}
}

func (h *PointerSocketHandler) readFrame(ctx context.Context, conn *websocket.Conn) (PointerFrame, error) {
	var frame PointerFrame
	_, data, err := conn.Read(ctx)
	if err != nil {
		return frame, err
	}
	if err := msgpack.Unmarshal(data, &frame); err != nil {
		return frame, err
	}
	return frame, nil
}

func (h *PointerSocketHandler) writeFrame(ctx context.Context, conn *websocket.Conn, reply SizeFrame) error {
	data, err := msgpack.Marshal(reply)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageBinary, data)
}
