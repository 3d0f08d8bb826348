package book

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRBTreeInsertFindDelete(t *testing.T) {
	tree := newRBTree()
	lvl1 := tree.GetOrCreate(100)
	require.NotNil(t, lvl1)
	assert.Same(t, lvl1, tree.Find(100))

	tree.GetOrCreate(200)
	assert.Equal(t, uint32(100), tree.Min().Price)
	assert.Equal(t, uint32(200), tree.Max().Price)
	assert.Equal(t, 2, tree.Len())

	require.True(t, tree.Delete(100))
	assert.Nil(t, tree.Find(100))
	assert.Equal(t, 1, tree.Len())
}

func TestRBTreeDeleteNonExistent(t *testing.T) {
	tree := newRBTree()
	assert.False(t, tree.Delete(123))
}

func TestRBTreeEmptyMinMax(t *testing.T) {
	tree := newRBTree()
	assert.Nil(t, tree.Min())
	assert.Nil(t, tree.Max())
	assert.Equal(t, 0, tree.Len())
}

func TestRBTreeGetOrCreateDuplicate(t *testing.T) {
	tree := newRBTree()
	lvl1 := tree.GetOrCreate(150)
	lvl2 := tree.GetOrCreate(150)
	assert.Same(t, lvl1, lvl2)
	assert.Equal(t, 1, tree.Len())
}

func TestRBTreeWalkOrder(t *testing.T) {
	tree := newRBTree()
	for _, p := range []uint32{50, 10, 90, 30, 70, 20, 80} {
		tree.GetOrCreate(p)
	}

	var asc []uint32
	tree.walkAsc(func(lvl *PriceLevel) bool {
		asc = append(asc, lvl.Price)
		return true
	})
	assert.Equal(t, []uint32{10, 20, 30, 50, 70, 80, 90}, asc)

	var desc []uint32
	tree.walkDesc(func(lvl *PriceLevel) bool {
		desc = append(desc, lvl.Price)
		return true
	})
	assert.Equal(t, []uint32{90, 80, 70, 50, 30, 20, 10}, desc)
}

func TestRBTreeWalkEarlyStop(t *testing.T) {
	tree := newRBTree()
	for p := uint32(1); p <= 10; p++ {
		tree.GetOrCreate(p)
	}
	var seen []uint32
	tree.walkAsc(func(lvl *PriceLevel) bool {
		seen = append(seen, lvl.Price)
		return len(seen) < 3
	})
	assert.Equal(t, []uint32{1, 2, 3}, seen)
}

// Random churn against a reference map; the tree must stay ordered and
// complete through interleaved inserts and deletes.
func TestRBTreeRandomChurn(t *testing.T) {
	tree := newRBTree()
	ref := make(map[uint32]bool)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20000; i++ {
		price := uint32(rng.Intn(500)) + 1
		if rng.Intn(3) == 0 {
			assert.Equal(t, ref[price], tree.Delete(price))
			delete(ref, price)
		} else {
			tree.GetOrCreate(price)
			ref[price] = true
		}
	}

	require.Equal(t, len(ref), tree.Len())

	var prev uint32
	count := 0
	tree.walkAsc(func(lvl *PriceLevel) bool {
		if count > 0 {
			assert.Greater(t, lvl.Price, prev)
		}
		assert.True(t, ref[lvl.Price])
		prev = lvl.Price
		count++
		return true
	})
	assert.Equal(t, len(ref), count)
}
