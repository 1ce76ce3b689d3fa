package services

import (
	"sync"
	"time"
)

// RequestGate caps how many requests one client may make per fixed window.
// State is in memory only and resets with the process.
type RequestGate interface {
	Allow(client string) (allowed bool, retryAfter time.Duration)
}

type window struct {
	count int
	start time.Time
}

type requestGate struct {
	max    int
	length time.Duration
	now    func() time.Time

	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
}

func NewRequestGate(max int, length time.Duration) RequestGate {
	return newRequestGate(max, length, time.Now)
}

func newRequestGate(max int, length time.Duration, now func() time.Time) *requestGate {
	return &requestGate{
		max:       max,
		length:    length,
		now:       now,
		windows:   make(map[string]*window),
		lastSweep: now(),
	}
}

// Allow counts the request against client's current window. A non-positive
// max or window disables the gate.
func (g *requestGate) Allow(client string) (bool, time.Duration) {
	if g.max <= 0 || g.length <= 0 {
		return true, 0
	}

	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.sweep(now)

	w, ok := g.windows[client]
	if !ok || now.Sub(w.start) >= g.length {
		g.windows[client] = &window{count: 1, start: now}
		return true, 0
	}

	if w.count >= g.max {
		return false, w.start.Add(g.length).Sub(now)
	}

	w.count++
	return true, 0
}

// sweep drops elapsed windows at most once per window length. Caller holds mu.
func (g *requestGate) sweep(now time.Time) {
	if now.Sub(g.lastSweep) < g.length {
		return
	}
	for client, w := range g.windows {
		if now.Sub(w.start) >= g.length {
			delete(g.windows, client)
		}
	}
	g.lastSweep = now
}
