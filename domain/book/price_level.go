package book

// PriceLevel is the FIFO queue of resting orders at one price. TotalQty
// caches the sum of remaining quantities so depth queries never scan the
// queue. A level must not outlive its last order: the ladder erases it
// in the same operation that empties it.
type PriceLevel struct {
	Price uint32

	head *Order
	tail *Order

	TotalQty   uint64
	OrderCount int
}

// Enqueue appends o at the tail, behind every earlier arrival.
func (p *PriceLevel) Enqueue(o *Order) {
	if p.head == nil {
		p.head = o
		p.tail = o
	} else {
		p.tail.next = o
		o.prev = p.tail
		p.tail = o
	}
	p.TotalQty += uint64(o.Remaining())
	p.OrderCount++
}

// PopHead removes and returns the oldest order.
func (p *PriceLevel) PopHead() *Order {
	o := p.head
	if o == nil {
		return nil
	}

	p.head = o.next
	if p.head != nil {
		p.head.prev = nil
	} else {
		p.tail = nil
	}

	o.next = nil
	o.prev = nil

	p.TotalQty -= uint64(o.Remaining())
	p.OrderCount--

	return o
}

// Unlink removes o from anywhere in the queue. Used by cancel.
func (p *PriceLevel) Unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		p.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		p.tail = o.prev
	}
	o.next = nil
	o.prev = nil

	p.TotalQty -= uint64(o.Remaining())
	p.OrderCount--
}

// reduceBy shrinks the cached total after a fill or an in-place modify.
func (p *PriceLevel) reduceBy(qty uint32) {
	p.TotalQty -= uint64(qty)
}

func (p *PriceLevel) growBy(qty uint32) {
	p.TotalQty += uint64(qty)
}

// Empty reports whether no orders rest at this price.
func (p *PriceLevel) Empty() bool {
	return p.head == nil
}

// Head returns the oldest resting order, the next to fill.
func (p *PriceLevel) Head() *Order {
	return p.head
}
