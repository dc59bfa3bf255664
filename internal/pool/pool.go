// Package pool implements the fixed-capacity message slot pool backing the
// logging core.
//
// The pool owns a single block of storage divided into capacity slots of
// slotSize bytes each. Every slot carries an atomic state tag and moves
// through the cycle Free -> Writing -> Ready -> Draining -> Free. Producers
// claim slots in a single globally increasing order through an atomic claim
// cursor; drainers walk the same order through a mutex-serialized drain
// cursor, so delivery order always matches claim order. The publish path is
// lock-free; only the drain walk takes a lock.
package pool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hyp3rd/ewrap"
)

// Slot states. A slot is in exactly one state at any instant; transitions
// are CAS-guarded so no two logical owners ever hold the same slot.
const (
	slotFree uint32 = iota
	slotWriting
	slotReady
	slotDraining
)

// Policy selects the behaviour when a claim lands on a slot whose message
// has not been drained yet.
type Policy uint8

const (
	// EvictOldest discards the undrained message and reuses its slot.
	EvictOldest Policy = iota
	// DropNewest discards the incoming message instead.
	DropNewest
)

// Allocator supplies the pool's backing block. Satisfied by the allocator
// types in the root package.
type Allocator interface {
	Allocate(n int) ([]byte, error)
	Release(buf []byte)
}

// Handle identifies a claimed slot between Claim and Commit.
type Handle struct {
	index uint64
}

type slot struct {
	state atomic.Uint32
	// level and length are written while the slot is held in Writing and
	// read while it is held in Draining; the state CAS pair orders the
	// accesses.
	level  uint8
	length int
}

// Pool is a fixed set of fixed-size message slots claimed and drained in a
// single global order.
type Pool struct {
	alloc    Allocator
	backing  []byte
	slots    []slot
	slotSize int
	capacity uint64
	policy   Policy

	claimCursor atomic.Uint64

	// drainMu serializes drain walks. Without it a drainer that stalled
	// between reading the cursor and claiming the slot could, once the slot
	// has been reclaimed and lapped by a producer, deliver the newer message
	// at the stale position and leave the cursor stuck on a Free slot,
	// stranding every later Ready slot. drainCursor is only touched under
	// drainMu.
	drainMu     sync.Mutex
	drainCursor uint64

	published atomic.Uint64
	delivered atomic.Uint64
	evicted   atomic.Uint64
	dropped   atomic.Uint64
}

// New allocates a pool of capacity slots of slotSize bytes each from alloc.
// All slots start Free. slotSize and capacity must be positive.
func New(alloc Allocator, slotSize, capacity int, policy Policy) (*Pool, error) {
	if slotSize <= 0 || capacity <= 0 {
		return nil, ewrap.New("slot size and capacity must be positive")
	}

	backing, err := alloc.Allocate(slotSize * capacity)
	if err != nil {
		return nil, ewrap.Wrap(err, "allocating slot pool backing block")
	}

	return &Pool{
		alloc:    alloc,
		backing:  backing,
		slots:    make([]slot, capacity),
		slotSize: slotSize,
		capacity: uint64(capacity),
		policy:   policy,
	}, nil
}

// SlotSize returns the per-slot capacity in bytes.
func (p *Pool) SlotSize() int {
	return p.slotSize
}

// Capacity returns the number of slots.
func (p *Pool) Capacity() int {
	return int(p.capacity)
}

// MaxTextLen returns the longest message text a slot can hold.
func (p *Pool) MaxTextLen() int {
	return p.slotSize - 1
}

// Claim selects the next slot in global claim order, transitions it to
// Writing and returns its handle. It never blocks on a full pool: a slot
// still holding an undrained message is either evicted or, under the
// DropNewest policy, left alone with ok=false. A slot transiently held by
// another producer or drainer is waited out with Gosched; the holder only
// performs a bounded copy or a single sink call.
func (p *Pool) Claim() (Handle, bool) {
	index := (p.claimCursor.Add(1) - 1) % p.capacity
	s := &p.slots[index]

	for {
		switch state := s.state.Load(); state {
		case slotFree:
			if s.state.CompareAndSwap(slotFree, slotWriting) {
				return Handle{index: index}, true
			}
		case slotReady:
			if p.policy == DropNewest {
				p.dropped.Add(1)

				return Handle{}, false
			}

			if s.state.CompareAndSwap(slotReady, slotWriting) {
				p.evicted.Add(1)

				return Handle{index: index}, true
			}
		default:
			runtime.Gosched()
		}
	}
}

// Commit copies text into the claimed slot, truncating to MaxTextLen bytes,
// records the level tag and publishes the slot as Ready. Once Commit
// returns, the message is visible to any subsequent Drain.
func (p *Pool) Commit(handle Handle, text []byte, level uint8) {
	s := &p.slots[handle.index]
	buf := p.slotText(handle.index)

	n := copy(buf[:p.slotSize-1], text)
	s.length = n
	s.level = level

	p.published.Add(1)
	s.state.Store(slotReady)
}

// Drain walks Ready slots from the drain cursor in claim order, invoking
// deliver once per message, and reclaims each slot. It stops at the first
// slot that is not Ready. The text passed to deliver aliases slot storage
// and is only valid for the duration of the call.
//
// Concurrent drainers are safe: the walk is serialized on the drain mutex,
// so exactly one drainer moves the cursor at a time and the global delivery
// order matches claim order even with racing flushers. The Ready->Draining
// transition still guards each slot against producers evicting it
// mid-delivery.
func (p *Pool) Drain(deliver func(level uint8, text []byte)) int {
	p.drainMu.Lock()
	defer p.drainMu.Unlock()

	drained := 0

	for {
		index := p.drainCursor % p.capacity
		s := &p.slots[index]

		if !s.state.CompareAndSwap(slotReady, slotDraining) {
			return drained
		}

		if deliver != nil {
			deliver(s.level, p.slotText(index)[:s.length])
		}

		p.delivered.Add(1)
		p.drainCursor++
		s.state.Store(slotFree)

		drained++
	}
}

// Outstanding reports the number of slots currently holding an undelivered
// message. The count is a snapshot; concurrent publishes and drains may
// move it immediately.
func (p *Pool) Outstanding() int {
	outstanding := 0

	for i := range p.slots {
		if p.slots[i].state.Load() == slotReady {
			outstanding++
		}
	}

	return outstanding
}

// Counters returns the pool's cumulative published, delivered, evicted and
// dropped message counts.
func (p *Pool) Counters() (published, delivered, evicted, dropped uint64) {
	return p.published.Load(), p.delivered.Load(), p.evicted.Load(), p.dropped.Load()
}

// Destroy returns the backing block to the allocator. It is valid in any
// slot state and never invokes a callback; outstanding messages are simply
// released with the storage.
func (p *Pool) Destroy() {
	if p.backing == nil {
		return
	}

	p.alloc.Release(p.backing)
	p.backing = nil
	p.slots = nil
}

func (p *Pool) slotText(index uint64) []byte {
	offset := int(index) * p.slotSize

	return p.backing[offset : offset+p.slotSize]
}
