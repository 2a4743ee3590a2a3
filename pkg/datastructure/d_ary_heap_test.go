package datastructure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractsInOrder(t *testing.T) {
	testCases := []struct {
		name string
		heap *MinHeap[int]
	}{
		{name: "binary", heap: NewdAryHeap[int](2)},
		{name: "four-ary", heap: NewFourAryHeap[int]()},
	}

	rng := rand.New(rand.NewSource(7))
	ranks := make([]float64, 200)
	for i := range ranks {
		ranks[i] = float64(rng.Intn(50))
	}
	want := append([]float64(nil), ranks...)
	sort.Float64s(want)

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			for i, r := range ranks {
				tt.heap.Insert(NewPriorityQueueNode(r, i))
			}
			require.Equal(t, len(ranks), tt.heap.Size())
			assert.Equal(t, want[0], tt.heap.GetMinrank())

			got := make([]float64, 0, len(ranks))
			for !tt.heap.IsEmpty() {
				node, err := tt.heap.ExtractMin()
				require.NoError(t, err)
				got = append(got, node.GetRank())
			}
			assert.Equal(t, want, got)

			_, err := tt.heap.ExtractMin()
			assert.ErrorIs(t, err, ErrHeapEmpty)
		})
	}
}
