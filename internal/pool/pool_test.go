package pool

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type heapAllocator struct{}

func (heapAllocator) Allocate(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func (heapAllocator) Release(_ []byte) {}

func newTestPool(t *testing.T, slotSize, capacity int, policy Policy) *Pool {
	t.Helper()

	p, err := New(heapAllocator{}, slotSize, capacity, policy)
	require.NoError(t, err)

	t.Cleanup(p.Destroy)

	return p
}

func drainAll(p *Pool) []string {
	var messages []string

	p.Drain(func(_ uint8, text []byte) {
		messages = append(messages, string(text))
	})

	return messages
}

func TestNew(t *testing.T) {
	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := New(heapAllocator{}, 0, 10, EvictOldest)
		require.Error(t, err)

		_, err = New(heapAllocator{}, 128, 0, EvictOldest)
		require.Error(t, err)

		_, err = New(heapAllocator{}, -1, -1, EvictOldest)
		require.Error(t, err)
	})

	t.Run("reports geometry", func(t *testing.T) {
		p := newTestPool(t, 128, 32, EvictOldest)

		require.Equal(t, 128, p.SlotSize())
		require.Equal(t, 32, p.Capacity())
		require.Equal(t, 127, p.MaxTextLen())
	})
}

func TestClaimCommitDrain(t *testing.T) {
	p := newTestPool(t, 64, 8, EvictOldest)

	for i := 0; i < 5; i++ {
		handle, ok := p.Claim()
		require.True(t, ok)
		p.Commit(handle, []byte(fmt.Sprintf("message %d", i)), uint8(i))
	}

	require.Equal(t, 5, p.Outstanding())

	var levels []uint8

	var messages []string

	p.Drain(func(level uint8, text []byte) {
		levels = append(levels, level)
		messages = append(messages, string(text))
	})

	require.Equal(t, []string{"message 0", "message 1", "message 2", "message 3", "message 4"}, messages)
	require.Equal(t, []uint8{0, 1, 2, 3, 4}, levels)
	require.Equal(t, 0, p.Outstanding())
}

func TestDrainStopsAtWritingSlot(t *testing.T) {
	p := newTestPool(t, 64, 8, EvictOldest)

	first, ok := p.Claim()
	require.True(t, ok)

	// Second slot claimed but not yet committed.
	_, ok = p.Claim()
	require.True(t, ok)

	third, ok := p.Claim()
	require.True(t, ok)

	p.Commit(first, []byte("first"), 0)
	p.Commit(third, []byte("third"), 0)

	// Delivery must stop at the uncommitted slot; "third" stays buffered.
	require.Equal(t, []string{"first"}, drainAll(p))
	require.Equal(t, 1, p.Outstanding())
}

func TestCommitTruncates(t *testing.T) {
	p := newTestPool(t, 8, 2, EvictOldest)

	handle, ok := p.Claim()
	require.True(t, ok)
	p.Commit(handle, []byte("0123456789"), 0)

	require.Equal(t, []string{"0123456"}, drainAll(p))
}

func TestEvictOldest(t *testing.T) {
	p := newTestPool(t, 64, 1, EvictOldest)

	handle, ok := p.Claim()
	require.True(t, ok)
	p.Commit(handle, []byte("old"), 0)

	handle, ok = p.Claim()
	require.True(t, ok)
	p.Commit(handle, []byte("new"), 0)

	require.Equal(t, []string{"new"}, drainAll(p))

	_, _, evicted, dropped := p.Counters()
	require.Equal(t, uint64(1), evicted)
	require.Equal(t, uint64(0), dropped)
}

func TestDropNewest(t *testing.T) {
	p := newTestPool(t, 64, 1, DropNewest)

	handle, ok := p.Claim()
	require.True(t, ok)
	p.Commit(handle, []byte("old"), 0)

	_, ok = p.Claim()
	require.False(t, ok)

	require.Equal(t, []string{"old"}, drainAll(p))

	_, _, evicted, dropped := p.Counters()
	require.Equal(t, uint64(0), evicted)
	require.Equal(t, uint64(1), dropped)
}

func TestDrainWithNilDeliver(t *testing.T) {
	p := newTestPool(t, 64, 4, EvictOldest)

	for i := 0; i < 3; i++ {
		handle, ok := p.Claim()
		require.True(t, ok)
		p.Commit(handle, []byte("x"), 0)
	}

	require.Equal(t, 3, p.Drain(nil))
	require.Equal(t, 0, p.Outstanding())
}

func TestCounters(t *testing.T) {
	p := newTestPool(t, 64, 8, EvictOldest)

	for i := 0; i < 4; i++ {
		handle, ok := p.Claim()
		require.True(t, ok)
		p.Commit(handle, []byte("x"), 0)
	}

	p.Drain(nil)

	published, delivered, _, _ := p.Counters()
	require.Equal(t, uint64(4), published)
	require.Equal(t, uint64(4), delivered)
}

func TestDestroyIsIdempotent(t *testing.T) {
	p, err := New(heapAllocator{}, 64, 4, EvictOldest)
	require.NoError(t, err)

	handle, ok := p.Claim()
	require.True(t, ok)
	p.Commit(handle, []byte("never drained"), 0)

	p.Destroy()
	p.Destroy()
}

func TestConcurrentProducers(t *testing.T) {
	const (
		producers           = 8
		messagesPerProducer = 500
	)

	p := newTestPool(t, 64, producers*messagesPerProducer, EvictOldest)

	var wg sync.WaitGroup

	for producer := 0; producer < producers; producer++ {
		wg.Add(1)

		go func(producer int) {
			defer wg.Done()

			for seq := 0; seq < messagesPerProducer; seq++ {
				handle, ok := p.Claim()
				if !ok {
					continue
				}

				p.Commit(handle, []byte(fmt.Sprintf("%d %d", producer, seq)), 0)
			}
		}(producer)
	}

	wg.Wait()

	next := make([]int, producers)
	total := 0

	p.Drain(func(_ uint8, text []byte) {
		var producer, seq int

		_, err := fmt.Sscanf(string(text), "%d %d", &producer, &seq)
		require.NoError(t, err)
		require.Equal(t, next[producer], seq, "producer %d out of order", producer)

		next[producer]++
		total++
	})

	require.Equal(t, producers*messagesPerProducer, total)

	for producer := 0; producer < producers; producer++ {
		require.Equal(t, messagesPerProducer, next[producer])
	}
}

func TestConcurrentDrainersPreserveOrder(t *testing.T) {
	const (
		drainers = 4
		total    = 200000
	)

	// Two slots and DropNewest keep the producer lapping right behind the
	// drain cursor, the regime where a stalled drainer used to grab a lapped
	// message at its stale cursor position, deliver it out of order and
	// leave the cursor stuck on a freed slot.
	p := newTestPool(t, 32, 2, DropNewest)

	var (
		deliveredMu sync.Mutex
		delivered   []int
	)

	deliver := func(_ uint8, text []byte) {
		value, err := strconv.Atoi(string(text))
		if err != nil {
			value = -1
		}

		deliveredMu.Lock()
		delivered = append(delivered, value)
		deliveredMu.Unlock()
	}

	var (
		wg   sync.WaitGroup
		done atomic.Bool
	)

	for worker := 0; worker < drainers; worker++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for !done.Load() {
				p.Drain(deliver)
			}
		}()
	}

	for seq := 0; seq < total; seq++ {
		handle, ok := p.Claim()
		if !ok {
			continue
		}

		p.Commit(handle, strconv.AppendInt(nil, int64(seq), 10), 0)
	}

	done.Store(true)
	wg.Wait()

	// Sweep whatever the workers left buffered.
	p.Drain(deliver)

	require.NotEmpty(t, delivered)

	for i := 1; i < len(delivered); i++ {
		require.Greater(t, delivered[i], delivered[i-1], "delivered out of order at index %d", i)
	}

	require.Equal(t, 0, p.Outstanding())

	published, deliveredCount, _, _ := p.Counters()
	require.Equal(t, published, deliveredCount)
	require.Len(t, delivered, int(deliveredCount))
}

func TestConcurrentProducersWithInterleavedDrains(t *testing.T) {
	const (
		producers           = 4
		messagesPerProducer = 1000
	)

	// Capacity exceeds the worst-case outstanding count, so no eviction
	// can occur and every sequence must arrive complete and in order.
	p := newTestPool(t, 64, producers*messagesPerProducer+1, EvictOldest)

	var wg sync.WaitGroup

	done := make(chan struct{})

	for producer := 0; producer < producers; producer++ {
		wg.Add(1)

		go func(producer int) {
			defer wg.Done()

			for seq := 0; seq < messagesPerProducer; seq++ {
				handle, ok := p.Claim()
				require.True(t, ok)
				p.Commit(handle, []byte(fmt.Sprintf("%d %d", producer, seq)), 0)
			}
		}(producer)
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	next := make([]int, producers)
	total := 0

	deliver := func(_ uint8, text []byte) {
		var producer, seq int

		_, err := fmt.Sscanf(string(text), "%d %d", &producer, &seq)
		require.NoError(t, err)
		require.Equal(t, next[producer], seq)

		next[producer]++
		total++
	}

	for {
		p.Drain(deliver)

		select {
		case <-done:
			p.Drain(deliver)
			require.Equal(t, producers*messagesPerProducer, total)

			return
		default:
		}
	}
}
