// Package store keeps decoded scans in memory and fans new scans out to
// subscribers (the websocket feed). A small product table maps known payloads
// to product names.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scan is one successfully decoded barcode.
type Scan struct {
	ID        string    `json:"id"`
	Payload   string    `json:"payload"`
	Symbology string    `json:"symbology"`
	Product   string    `json:"product,omitempty"`
	ScannedAt time.Time `json:"scanned_at"`
}

// subscriber channels are buffered; a slow consumer drops scans rather than
// blocking the decode path.
const subscriberBuffer = 16

// Store is an in-memory scan log. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	scans    []Scan
	products map[string]string
	subs     map[string]chan Scan
}

// New creates an empty store.
func New() *Store {
	return &Store{
		products: make(map[string]string),
		subs:     make(map[string]chan Scan),
	}
}

// Add records a decoded scan, resolves its product name if known, and
// notifies subscribers.
func (s *Store) Add(payload, symbology string) Scan {
	scan := Scan{
		ID:        uuid.NewString(),
		Payload:   payload,
		Symbology: symbology,
		ScannedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	if name, ok := s.products[payload]; ok {
		scan.Product = name
	}
	s.scans = append(s.scans, scan)
	for _, ch := range s.subs {
		select {
		case ch <- scan:
		default:
		}
	}
	s.mu.Unlock()

	return scan
}

// List returns all scans, oldest first.
func (s *Store) List() []Scan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Scan, len(s.scans))
	copy(out, s.scans)
	return out
}

// Get returns the scan with the given ID.
func (s *Store) Get(id string) (Scan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, scan := range s.scans {
		if scan.ID == id {
			return scan, true
		}
	}
	return Scan{}, false
}

// Len returns the number of recorded scans.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scans)
}

// Clear removes all scans and returns how many were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.scans)
	s.scans = nil
	return n
}

// SetProduct registers a payload-to-product-name mapping.
func (s *Store) SetProduct(payload, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[payload] = name
}

// Product looks up the product name for a payload.
func (s *Store) Product(payload string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.products[payload]
	return name, ok
}

// Products returns a copy of the product table.
func (s *Store) Products() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.products))
	for k, v := range s.products {
		out[k] = v
	}
	return out
}

// Subscribe registers a new scan subscriber and returns its ID and channel.
// The channel is closed by Unsubscribe.
func (s *Store) Subscribe() (string, <-chan Scan) {
	id := uuid.NewString()
	ch := make(chan Scan, subscriberBuffer)

	s.mu.Lock()
	s.subs[id] = ch
	s.mu.Unlock()

	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (s *Store) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subs[id]; ok {
		close(ch)
		delete(s.subs, id)
	}
}
