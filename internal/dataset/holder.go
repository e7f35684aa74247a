package dataset

import (
	"sync/atomic"
	"time"
)

type snapshot struct {
	data     *Dataset
	loadedAt time.Time
}

// Holder publishes the current dataset to request handlers. Swaps are
// atomic so readers never observe a half-loaded table.
type Holder struct {
	current atomic.Pointer[snapshot]
}

// NewHolder returns a holder serving d.
func NewHolder(d *Dataset) *Holder {
	h := &Holder{}
	h.Swap(d)
	return h
}

// Get returns the dataset currently served.
func (h *Holder) Get() *Dataset {
	if s := h.current.Load(); s != nil {
		return s.data
	}
	return New(nil)
}

// LoadedAt returns when the current dataset was published.
func (h *Holder) LoadedAt() time.Time {
	if s := h.current.Load(); s != nil {
		return s.loadedAt
	}
	return time.Time{}
}

// Swap publishes d and returns the dataset it replaces.
func (h *Holder) Swap(d *Dataset) *Dataset {
	old := h.current.Swap(&snapshot{data: d, loadedAt: time.Now()})
	if old == nil {
		return nil
	}
	return old.data
}
