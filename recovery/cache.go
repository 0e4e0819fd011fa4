package recovery

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/tex2d/render"
)

// UploadFunc uploads a cached record to the device again.
type UploadFunc func(Record) error

type entry struct {
	rec  Record
	node *orderNode
}

// Cache keeps a private copy of the texel data of every live texture so
// the textures can be uploaded again after the graphics context is lost.
//
// Cache is safe for concurrent use. RecoverAll does not hold the lock
// while it calls the upload function, so the upload function may call back
// into the cache. Record calls made while a recovery is running are
// ignored.
type Cache struct {
	mu      sync.Mutex
	entries map[render.Handle]*entry
	order   orderList
	bytes   int

	reloading atomic.Bool
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[render.Handle]*entry),
	}
}

// Record stores a copy of rec, replacing any entry for the same handle.
// A replaced entry keeps its position in the replay order.
//
// Record returns false and stores nothing when rec.Data is nil, when a
// recovery is running, or when rec fails Validate.
func (c *Cache) Record(rec Record) bool {
	if rec.Data == nil {
		return false
	}
	if c.reloading.Load() {
		slogger().Debug("recovery: record ignored while reloading", "handle", rec.Handle)
		return false
	}
	if err := rec.Validate(); err != nil {
		slogger().Warn("recovery: record rejected", "handle", rec.Handle, "err", err)
		return false
	}

	owned := rec.clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[rec.Handle]; ok {
		c.bytes += len(owned.Data) - len(e.rec.Data)
		e.rec = owned
		return true
	}
	c.entries[rec.Handle] = &entry{rec: owned, node: c.order.PushBack(rec.Handle)}
	c.bytes += len(owned.Data)
	return true
}

// Remove deletes the entry for h. It reports whether an entry existed.
func (c *Cache) Remove(h render.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[h]
	if !ok {
		return false
	}
	c.order.Remove(e.node)
	delete(c.entries, h)
	c.bytes -= len(e.rec.Data)
	return true
}

// Get returns a copy of the entry for h.
func (c *Cache) Get(h render.Handle) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[h]
	if !ok {
		return Record{}, false
	}
	return e.rec.clone(), true
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Bytes returns the number of texel bytes retained by the cache.
func (c *Cache) Bytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytes
}

// Handles returns the cached handles in replay order.
func (c *Cache) Handles() []render.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Handles()
}

// Reloading reports whether RecoverAll is running.
func (c *Cache) Reloading() bool {
	return c.reloading.Load()
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[render.Handle]*entry)
	c.order.Clear()
	c.bytes = 0
}

// RecoverAll calls upload once for every entry in insertion order.
//
// A failed upload is logged and collected in the report; the remaining
// entries are still replayed. RecoverAll returns ErrReloading if another
// recovery is running. The returned error is nil when the recovery ran,
// even if some uploads failed; use Report.Err for those.
func (c *Cache) RecoverAll(upload UploadFunc) (Report, error) {
	if upload == nil {
		return Report{}, ErrNilUpload
	}
	if !c.reloading.CompareAndSwap(false, true) {
		return Report{}, ErrReloading
	}
	defer c.reloading.Store(false)

	snapshot := c.snapshot()
	log := slogger()
	log.Info("recovery: reloading textures", "count", len(snapshot))

	var report Report
	for _, rec := range snapshot {
		// Entries removed by an earlier upload are skipped.
		if !c.contains(rec.Handle) {
			continue
		}
		report.Attempted++
		if err := c.replay(upload, rec); err != nil {
			log.Warn("recovery: texture upload failed", "handle", rec.Handle, "format", rec.Format, "err", err)
			report.Failures = append(report.Failures, Failure{Handle: rec.Handle, Err: err})
			continue
		}
		report.Recovered++
	}

	log.Info("recovery: reload finished",
		"recovered", report.Recovered,
		"failed", len(report.Failures))
	return report, nil
}

// snapshot returns the entries in insertion order. The records share Data
// with the cache; upload functions must not modify it.
func (c *Cache) snapshot() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Record, 0, c.order.Len())
	for n := c.order.head; n != nil; n = n.next {
		out = append(out, c.entries[n.handle].rec)
	}
	return out
}

func (c *Cache) contains(h render.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[h]
	return ok
}

// replay calls upload for one record and turns a panic into an error.
func (c *Cache) replay(upload UploadFunc, rec Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovery: upload panicked: %v", r)
		}
	}()
	return upload(rec)
}
