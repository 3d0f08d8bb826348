package book

// Trade is one execution. The price is always the resting order's price;
// the timestamp is inherited from the aggressor. Trades are immutable once
// appended to the log.
type Trade struct {
	BuyOrderID  uint64
	SellOrderID uint64
	Price       uint32
	Quantity    uint32
	Timestamp   uint64
}
