package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newResting(id uint64, qty uint32) *Order {
	return &Order{ID: id, Price: 100, Quantity: qty, Side: Buy, Status: StatusNew}
}

func TestPriceLevelFIFO(t *testing.T) {
	lvl := &PriceLevel{Price: 100}
	a := newResting(1, 10)
	c := newResting(2, 20)
	lvl.Enqueue(a)
	lvl.Enqueue(c)

	assert.Equal(t, uint64(30), lvl.TotalQty)
	assert.Equal(t, 2, lvl.OrderCount)
	assert.Same(t, a, lvl.Head())

	assert.Same(t, a, lvl.PopHead())
	assert.Same(t, c, lvl.Head())
	assert.Equal(t, uint64(20), lvl.TotalQty)

	assert.Same(t, c, lvl.PopHead())
	assert.True(t, lvl.Empty())
	assert.Nil(t, lvl.PopHead())
	assert.Equal(t, uint64(0), lvl.TotalQty)
}

func TestPriceLevelUnlinkMiddle(t *testing.T) {
	lvl := &PriceLevel{Price: 100}
	a := newResting(1, 10)
	mid := newResting(2, 20)
	c := newResting(3, 30)
	lvl.Enqueue(a)
	lvl.Enqueue(mid)
	lvl.Enqueue(c)

	lvl.Unlink(mid)
	assert.Equal(t, uint64(40), lvl.TotalQty)
	assert.Equal(t, 2, lvl.OrderCount)
	assert.Same(t, a, lvl.Head())
	assert.Same(t, c, a.Next())
	assert.Nil(t, c.Next())
}

func TestPriceLevelUnlinkEnds(t *testing.T) {
	lvl := &PriceLevel{Price: 100}
	a := newResting(1, 10)
	c := newResting(2, 20)
	lvl.Enqueue(a)
	lvl.Enqueue(c)

	lvl.Unlink(a)
	assert.Same(t, c, lvl.Head())

	lvl.Unlink(c)
	assert.True(t, lvl.Empty())
	assert.Equal(t, uint64(0), lvl.TotalQty)
	assert.Equal(t, 0, lvl.OrderCount)
}

// TotalQty tracks remaining, not original, quantity.
func TestPriceLevelTracksRemaining(t *testing.T) {
	lvl := &PriceLevel{Price: 100}
	o := newResting(1, 50)
	o.fill(20)
	lvl.Enqueue(o)
	assert.Equal(t, uint64(30), lvl.TotalQty)
}
