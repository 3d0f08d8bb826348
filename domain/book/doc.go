// Package book implements the in-memory limit order book and its
// continuous matching engine with price-time priority. It maintains two
// red-black trees for the bid and ask ladders, an intrusive FIFO queue
// per price level, and an id index for O(log P) cancel and modify.
//
// The book is a single-writer structure: every operation runs to
// completion before the next begins, and identical command sequences
// produce identical trade logs and book states.
package book
