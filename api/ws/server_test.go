package ws

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenrir/domain/book"
	"fenrir/service"
)

func dialTestServer(t *testing.T) *websocket.Conn {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	var tick uint64
	svc := service.New(book.New(), log, func() uint64 {
		tick++
		return tick
	})
	srv := httptest.NewServer(NewServer(svc, 10, log))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	require.NoError(t, conn.WriteJSON(req))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestSubmitQueryCancelOverWebSocket(t *testing.T) {
	conn := dialTestServer(t)

	resp := roundTrip(t, conn, Request{Action: "submit", Price: 10050, Quantity: 100, Side: "buy"})
	require.True(t, resp.OK)
	require.Equal(t, uint64(1), resp.OrderID)

	resp = roundTrip(t, conn, Request{Action: "submit", Price: 10055, Quantity: 120, Side: "sell"})
	require.True(t, resp.OK)

	resp = roundTrip(t, conn, Request{Action: "top"})
	require.True(t, resp.OK)
	require.NotNil(t, resp.Quote)
	assert.Equal(t, uint32(10050), resp.Quote.BestBid)
	assert.Equal(t, uint32(10055), resp.Quote.BestAsk)
	assert.Equal(t, int32(5), resp.Quote.Spread)

	resp = roundTrip(t, conn, Request{Action: "depth"})
	require.True(t, resp.OK)
	require.NotNil(t, resp.Depth)
	assert.Len(t, resp.Depth.Bids, 1)
	assert.Len(t, resp.Depth.Asks, 1)

	resp = roundTrip(t, conn, Request{Action: "cancel", OrderID: 1})
	assert.True(t, resp.OK)
	resp = roundTrip(t, conn, Request{Action: "cancel", OrderID: 1})
	assert.False(t, resp.OK)
}

func TestRejectedSubmitOverWebSocket(t *testing.T) {
	conn := dialTestServer(t)

	resp := roundTrip(t, conn, Request{Action: "submit", Price: 10050, Quantity: 0, Side: "buy"})
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Error)
	assert.Zero(t, resp.OrderID)

	resp = roundTrip(t, conn, Request{Action: "bogus"})
	assert.False(t, resp.OK)
	assert.Equal(t, "unknown action", resp.Error)
}

func TestTradesOverWebSocket(t *testing.T) {
	conn := dialTestServer(t)

	roundTrip(t, conn, Request{Action: "submit", Price: 10100, Quantity: 50, Side: "sell"})
	roundTrip(t, conn, Request{Action: "submit", Price: 10100, Quantity: 80, Side: "buy"})

	resp := roundTrip(t, conn, Request{Action: "trades"})
	require.True(t, resp.OK)
	require.Len(t, resp.Trades, 1)
	assert.Equal(t, uint32(10100), resp.Trades[0].Price)
	assert.Equal(t, uint32(50), resp.Trades[0].Quantity)
}
