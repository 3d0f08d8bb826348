// Package service orchestrates the matching engine behind a validated
// command surface. It is the only write entry point into the book,
// decoupled from network transports.
package service

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"fenrir/domain/book"
)

// ErrRejected is returned when a submit fails pre-validation. The book
// itself signals rejection with a zero id; the service maps both onto one
// error so transports have a single failure path.
var ErrRejected = errors.New("order rejected: malformed input")

// SubmitRequest is an order submission on the service boundary. The
// timestamp is stamped by the service clock, never by the caller.
type SubmitRequest struct {
	Price    uint32 `json:"price" validate:"required,gt=0"`
	Quantity uint32 `json:"quantity" validate:"required,gt=0"`
	Side     string `json:"side" validate:"required,oneof=buy sell"`
}

// Quote is the top-of-book view.
type Quote struct {
	BestBid  uint32 `json:"best_bid"`
	BestAsk  uint32 `json:"best_ask"`
	Spread   int32  `json:"spread"`
	BidDepth int    `json:"bid_depth"`
	AskDepth int    `json:"ask_depth"`
}

// DepthSnapshot is a two-sided ladder view, best prices first.
type DepthSnapshot struct {
	Bids []book.Level `json:"bids"`
	Asks []book.Level `json:"asks"`
}

// OrderService owns the book. All commands and queries pass through it;
// callers on concurrent transports must serialise their calls (the engine
// is single-threaded by contract and takes no locks).
type OrderService struct {
	book     *book.Book
	validate *validator.Validate
	log      *slog.Logger
	now      func() uint64
}

// New wires the service. now supplies nanosecond timestamps; the engine
// never reads the clock itself.
func New(b *book.Book, log *slog.Logger, now func() uint64) *OrderService {
	return &OrderService{
		book:     b,
		validate: validator.New(),
		log:      log,
		now:      now,
	}
}

// ---- commands ----

// Submit validates and executes an order submission, returning the minted
// order id.
func (s *OrderService) Submit(req SubmitRequest) (uint64, error) {
	if err := s.validate.Struct(req); err != nil {
		s.log.Warn("submit rejected", slog.String("error", err.Error()))
		return 0, ErrRejected
	}

	side := book.Buy
	if req.Side == "sell" {
		side = book.Sell
	}

	id := s.book.Submit(req.Price, req.Quantity, side, s.now())
	if id == 0 {
		return 0, ErrRejected
	}

	s.log.Debug("order submitted",
		slog.Uint64("id", id),
		slog.String("side", side.String()),
		slog.Uint64("price", uint64(req.Price)),
		slog.Uint64("qty", uint64(req.Quantity)),
	)
	return id, nil
}

// Cancel removes a resting order. False means unknown or terminal id.
func (s *OrderService) Cancel(id uint64) bool {
	ok := s.book.Cancel(id)
	s.log.Debug("order cancel", slog.Uint64("id", id), slog.Bool("ok", ok))
	return ok
}

// Modify changes a resting order's quantity in place, preserving queue
// position.
func (s *OrderService) Modify(id uint64, newQuantity uint32) bool {
	ok := s.book.Modify(id, newQuantity)
	s.log.Debug("order modify",
		slog.Uint64("id", id),
		slog.Uint64("qty", uint64(newQuantity)),
		slog.Bool("ok", ok),
	)
	return ok
}

// ---- queries ----

func (s *OrderService) TopOfBook() Quote {
	return Quote{
		BestBid:  s.book.BestBid(),
		BestAsk:  s.book.BestAsk(),
		Spread:   s.book.Spread(),
		BidDepth: s.book.BidDepth(),
		AskDepth: s.book.AskDepth(),
	}
}

func (s *OrderService) Depth(maxLevels int) DepthSnapshot {
	return DepthSnapshot{
		Bids: s.book.Depth(book.Buy, maxLevels),
		Asks: s.book.Depth(book.Sell, maxLevels),
	}
}

// Trades returns the execution log, oldest first. Read-only.
func (s *OrderService) Trades() []book.Trade {
	return s.book.Trades()
}

// Order returns a copy of a resting order.
func (s *OrderService) Order(id uint64) (book.Order, bool) {
	return s.book.Order(id)
}
