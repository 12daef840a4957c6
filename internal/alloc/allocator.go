package alloc

import (
	"fmt"
	"sort"
	"sync"
)

// Allocator hands out file regions at the end of the space it manages.
type Allocator struct {
	mu sync.Mutex

	// eofAddr is the current end-of-file address (next allocation point)
	eofAddr uint64

	// baseAddr is the minimum address that can be allocated
	// (the end of the superblock)
	baseAddr uint64

	allocations []Allocation

	stats Stats
}

// Allocation represents a single allocated or reserved region.
type Allocation struct {
	Addr uint64
	Size uint64
	Tag  string
}

// Stats contains allocation statistics.
type Stats struct {
	TotalAllocations uint64 // Number of regions recorded
	TotalBytesAlloc  uint64 // Total bytes recorded
	LargestAlloc     uint64 // Largest single region
	PaddingBytes     uint64 // Bytes skipped for alignment
}

// New creates a new Allocator starting at the given base address.
func New(baseAddr uint64) *Allocator {
	return &Allocator{
		eofAddr:  baseAddr,
		baseAddr: baseAddr,
	}
}

// Alloc allocates a block of the given size and returns its address.
func (a *Allocator) Alloc(size uint64) uint64 {
	return a.AllocTagged(size, "")
}

// AllocTagged allocates a block and records tag with it.
func (a *Allocator) AllocTagged(size uint64, tag string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.allocLocked(size, tag)
}

// allocLocked performs allocation while holding the lock.
func (a *Allocator) allocLocked(size uint64, tag string) uint64 {
	if size == 0 {
		return a.eofAddr
	}

	addr := a.eofAddr
	a.eofAddr += size
	a.recordLocked(addr, size, tag)
	return addr
}

func (a *Allocator) recordLocked(addr, size uint64, tag string) {
	a.allocations = append(a.allocations, Allocation{
		Addr: addr,
		Size: size,
		Tag:  tag,
	})

	a.stats.TotalAllocations++
	a.stats.TotalBytesAlloc += size
	if size > a.stats.LargestAlloc {
		a.stats.LargestAlloc = size
	}
}

// AllocAligned allocates a block whose address is a multiple of alignment.
func (a *Allocator) AllocAligned(size uint64, alignment uint64, tag string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if alignment > 1 {
		if remainder := a.eofAddr % alignment; remainder != 0 {
			padding := alignment - remainder
			a.eofAddr += padding
			a.stats.PaddingBytes += padding
		}
	}

	return a.allocLocked(size, tag)
}

// Reserve records a region that already exists in a file. The end of file
// moves forward if the region extends past it.
func (a *Allocator) Reserve(addr, size uint64, tag string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if size == 0 {
		return
	}
	a.recordLocked(addr, size, tag)
	if end := addr + size; end > a.eofAddr {
		a.eofAddr = end
	}
}

// EOFAddr returns the current end-of-file address.
func (a *Allocator) EOFAddr() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.eofAddr
}

// BaseAddr returns the base address (start of allocatable space).
func (a *Allocator) BaseAddr() uint64 {
	return a.baseAddr
}

// Stats returns a copy of the allocation statistics.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Allocations returns the recorded regions ordered by address.
func (a *Allocator) Allocations() []Allocation {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]Allocation, len(a.allocations))
	copy(result, a.allocations)
	sort.Slice(result, func(i, j int) bool { return result[i].Addr < result[j].Addr })
	return result
}

// Validate checks that regions don't overlap and lie within
// [base address, end of file).
func (a *Allocator) Validate() error {
	regions := a.Allocations()

	a.mu.Lock()
	base, eof := a.baseAddr, a.eofAddr
	a.mu.Unlock()

	for i, r := range regions {
		if r.Addr < base {
			return fmt.Errorf("region %q at 0x%x is before base address 0x%x", r.Tag, r.Addr, base)
		}
		if r.Addr+r.Size > eof {
			return fmt.Errorf("region %q at 0x%x size %d extends past EOF 0x%x", r.Tag, r.Addr, r.Size, eof)
		}
		if i > 0 {
			prev := regions[i-1]
			if prev.Addr+prev.Size > r.Addr {
				return fmt.Errorf("overlapping regions: %q [0x%x, size %d] and %q [0x%x, size %d]",
					prev.Tag, prev.Addr, prev.Size, r.Tag, r.Addr, r.Size)
			}
		}
	}

	return nil
}
