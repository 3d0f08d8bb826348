package book

import (
	"fenrir/infra/memory"
	"fenrir/infra/sequence"
)

// Book is the single-instrument limit order book and matching engine.
//
// It keeps three indices that must agree after every operation: the two
// price ladders (red-black trees of FIFO price levels), and the id index
// mapping every resting order to its handle. The side and price stored on
// the order locate its level in O(log P); the intrusive queue links make
// the removal itself O(1).
//
// Book is single-threaded by contract. Every mutating call runs to
// completion before the next begins; there are no locks on the hot path.
type Book struct {
	bids *rbTree
	asks *rbTree

	index  map[uint64]*Order
	trades []Trade

	seq  *sequence.Sequencer
	pool *memory.Pool[Order]
}

// Level is one rung of a depth snapshot.
type Level struct {
	Price    uint32
	Quantity uint64
	Orders   int
}

// New creates an empty book with its own sequencer and order pool.
func New() *Book {
	return NewWith(
		sequence.New(0),
		memory.NewPool(1024, func() *Order { return new(Order) }),
	)
}

// NewWith creates an empty book around an existing sequencer and pool,
// for callers that preallocate or resume id assignment.
func NewWith(seq *sequence.Sequencer, pool *memory.Pool[Order]) *Book {
	return &Book{
		bids:  newRBTree(),
		asks:  newRBTree(),
		index: make(map[uint64]*Order),
		seq:   seq,
		pool:  pool,
	}
}

// ---- commands ----

// Submit runs the incoming order through the matching loop and rests any
// residual at price. It returns the minted order id, or 0 when the input
// is malformed (zero price, zero quantity, unknown side); a rejected
// submit mutates nothing.
//
// The timestamp is caller-supplied nanoseconds; the book never reads the
// clock, which keeps replays of the same command sequence byte-identical.
func (b *Book) Submit(price, quantity uint32, side Side, timestamp uint64) uint64 {
	if price == 0 || quantity == 0 || (side != Buy && side != Sell) {
		return 0
	}

	o := b.pool.Get()
	*o = Order{
		ID:        b.seq.Next(),
		Timestamp: timestamp,
		Price:     price,
		Quantity:  quantity,
		Side:      side,
		Status:    StatusNew,
	}

	b.match(o)

	if o.Remaining() > 0 {
		b.ladder(o.Side).GetOrCreate(o.Price).Enqueue(o)
		b.index[o.ID] = o
		return o.ID
	}

	// fully filled on entry; never rests, never indexed
	id := o.ID
	b.pool.Put(o)
	return id
}

// Cancel removes a resting order. It returns true iff the id was resting;
// unknown or terminal ids are a no-op.
func (b *Book) Cancel(id uint64) bool {
	o, ok := b.index[id]
	if !ok {
		return false
	}

	ladder := b.ladder(o.Side)
	lvl := ladder.Find(o.Price)
	lvl.Unlink(o)
	if lvl.Empty() {
		ladder.Delete(lvl.Price)
	}

	o.Status = Cancelled
	delete(b.index, id)
	b.pool.Put(o)
	return true
}

// Modify changes a resting order's original quantity in place, preserving
// its queue position. If newQuantity is not above the filled quantity the
// order becomes FILLED and leaves the book without a trade. Returns false
// for zero quantity, unknown or terminal ids.
//
// Modified orders are deliberately not re-crossed against the book.
func (b *Book) Modify(id uint64, newQuantity uint32) bool {
	if newQuantity == 0 {
		return false
	}
	o, ok := b.index[id]
	if !ok {
		return false
	}

	ladder := b.ladder(o.Side)
	lvl := ladder.Find(o.Price)

	if newQuantity <= o.Filled {
		lvl.Unlink(o)
		if lvl.Empty() {
			ladder.Delete(lvl.Price)
		}
		o.Quantity = newQuantity
		o.Status = Filled
		delete(b.index, id)
		b.pool.Put(o)
		return true
	}

	if newQuantity > o.Quantity {
		lvl.growBy(newQuantity - o.Quantity)
	} else {
		lvl.reduceBy(o.Quantity - newQuantity)
	}
	o.Quantity = newQuantity
	return true
}

// ---- matching ----

// match drains crossed levels of the opposite ladder in price-time order:
// best price first, FIFO within a level. Trades execute at the resting
// order's price.
func (b *Book) match(incoming *Order) {
	opp := b.ladder(incoming.Side.Opposite())

	for incoming.Remaining() > 0 {
		var best *PriceLevel
		if incoming.Side == Buy {
			best = opp.Min()
			if best == nil || best.Price > incoming.Price {
				return
			}
		} else {
			best = opp.Max()
			if best == nil || best.Price < incoming.Price {
				return
			}
		}

		b.drainLevel(incoming, best)

		if best.Empty() {
			opp.Delete(best.Price)
		}
	}
}

func (b *Book) drainLevel(incoming *Order, lvl *PriceLevel) {
	for incoming.Remaining() > 0 && !lvl.Empty() {
		resting := lvl.Head()
		qty := min(incoming.Remaining(), resting.Remaining())

		incoming.fill(qty)
		resting.fill(qty)
		lvl.reduceBy(qty)

		buyID, sellID := incoming.ID, resting.ID
		if incoming.Side == Sell {
			buyID, sellID = resting.ID, incoming.ID
		}
		b.trades = append(b.trades, Trade{
			BuyOrderID:  buyID,
			SellOrderID: sellID,
			Price:       lvl.Price,
			Quantity:    qty,
			Timestamp:   incoming.Timestamp,
		})

		if resting.IsFilled() {
			lvl.PopHead()
			delete(b.index, resting.ID)
			b.pool.Put(resting)
		}
	}
}

func (b *Book) ladder(s Side) *rbTree {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

// ---- queries (pure) ----

// BestBid returns the highest bid price, 0 when the bid side is empty.
func (b *Book) BestBid() uint32 {
	if lvl := b.bids.Max(); lvl != nil {
		return lvl.Price
	}
	return 0
}

// BestAsk returns the lowest ask price, 0 when the ask side is empty.
func (b *Book) BestAsk() uint32 {
	if lvl := b.asks.Min(); lvl != nil {
		return lvl.Price
	}
	return 0
}

// Spread returns bestAsk - bestBid, or -1 when either side is empty.
// Callers must treat -1 as "undefined", not a width.
func (b *Book) Spread() int32 {
	if b.bids.Len() == 0 || b.asks.Len() == 0 {
		return -1
	}
	return int32(b.BestAsk() - b.BestBid())
}

// BidDepth returns the number of distinct bid price levels.
func (b *Book) BidDepth() int {
	return b.bids.Len()
}

// AskDepth returns the number of distinct ask price levels.
func (b *Book) AskDepth() int {
	return b.asks.Len()
}

// Trades returns the trade log in execution order. The slice is owned by
// the book; callers must not mutate it.
func (b *Book) Trades() []Trade {
	return b.trades
}

// TradeCount returns the number of executed trades.
func (b *Book) TradeCount() int {
	return len(b.trades)
}

// OrderCount returns the number of resting orders across both sides.
func (b *Book) OrderCount() int {
	return len(b.index)
}

// Order returns a copy of a resting order. The second return is false for
// unknown or terminal ids.
func (b *Book) Order(id uint64) (Order, bool) {
	o, ok := b.index[id]
	if !ok {
		return Order{}, false
	}
	cp := *o
	cp.next = nil
	cp.prev = nil
	return cp, true
}

// Depth returns up to maxLevels levels of one side, best price first.
// maxLevels <= 0 returns the whole side.
func (b *Book) Depth(side Side, maxLevels int) []Level {
	var out []Level
	visit := func(lvl *PriceLevel) bool {
		out = append(out, Level{
			Price:    lvl.Price,
			Quantity: lvl.TotalQty,
			Orders:   lvl.OrderCount,
		})
		return maxLevels <= 0 || len(out) < maxLevels
	}
	if side == Buy {
		b.bids.walkDesc(visit)
	} else {
		b.asks.walkAsc(visit)
	}
	return out
}
