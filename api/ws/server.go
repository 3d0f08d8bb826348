// Package ws exposes the order service over a JSON WebSocket endpoint.
package ws

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"fenrir/domain/book"
	"fenrir/service"
)

// Request is one client frame. Action selects the operation; the other
// fields are read as that action needs them.
type Request struct {
	Action   string `json:"action"` // submit, cancel, modify, top, depth, trades, order
	Price    uint32 `json:"price,omitempty"`
	Quantity uint32 `json:"quantity,omitempty"`
	Side     string `json:"side,omitempty"`
	OrderID  uint64 `json:"order_id,omitempty"`
}

// Response mirrors the request action. OK reports command outcome; the
// query fields are set only for their action.
type Response struct {
	Action  string                 `json:"action"`
	OK      bool                   `json:"ok"`
	Error   string                 `json:"error,omitempty"`
	OrderID uint64                 `json:"order_id,omitempty"`
	Quote   *service.Quote         `json:"quote,omitempty"`
	Depth   *service.DepthSnapshot `json:"depth,omitempty"`
	Trades  []book.Trade           `json:"trades,omitempty"`
	Order   *book.Order            `json:"order,omitempty"`
}

// Server adapts WebSocket frames onto the order service. The engine is
// single-threaded; one mutex serialises every entry across connections so
// the serialisation lives here, not in the book.
type Server struct {
	svc        *service.OrderService
	depthLimit int
	log        *slog.Logger
	upgrader   websocket.Upgrader

	mu sync.Mutex
}

func NewServer(svc *service.OrderService, depthLimit int, log *slog.Logger) *Server {
	return &Server{
		svc:        svc,
		depthLimit: depthLimit,
		log:        log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	s.log.Info("client connected", slog.String("remote", conn.RemoteAddr().String()))

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("client read failed", slog.String("error", err.Error()))
			}
			return
		}

		resp := s.handle(req)
		if err := conn.WriteJSON(resp); err != nil {
			s.log.Warn("client write failed", slog.String("error", err.Error()))
			return
		}
	}
}

func (s *Server) handle(req Request) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := Response{Action: req.Action}

	switch req.Action {
	case "submit":
		id, err := s.svc.Submit(service.SubmitRequest{
			Price:    req.Price,
			Quantity: req.Quantity,
			Side:     req.Side,
		})
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.OK = true
		resp.OrderID = id

	case "cancel":
		resp.OK = s.svc.Cancel(req.OrderID)
		resp.OrderID = req.OrderID

	case "modify":
		resp.OK = s.svc.Modify(req.OrderID, req.Quantity)
		resp.OrderID = req.OrderID

	case "top":
		q := s.svc.TopOfBook()
		resp.OK = true
		resp.Quote = &q

	case "depth":
		d := s.svc.Depth(s.depthLimit)
		resp.OK = true
		resp.Depth = &d

	case "trades":
		resp.OK = true
		resp.Trades = s.svc.Trades()

	case "order":
		o, ok := s.svc.Order(req.OrderID)
		resp.OK = ok
		if ok {
			resp.Order = &o
		} else {
			resp.Error = "unknown or terminal order"
		}

	default:
		resp.Error = "unknown action"
	}

	return resp
}
