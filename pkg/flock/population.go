package flock

import "sync"

// Population is the authoritative list of live entities plus the queue of entities waiting
// to join it. The control surface stages from any goroutine, the simulation loop drains
// once per tick, so nothing staged during a tick is seen by that tick's rules.
type Population struct {
	liveMu sync.Mutex
	live   []*Entity

	pendingMu sync.Mutex
	pending   []*Entity
}

// NewPopulation returns an empty population.
func NewPopulation() *Population {
	return &Population{}
}

// Stage queues entities for the next drain. An entity already staged once is skipped.
// It returns how many entities were accepted.
func (p *Population) Stage(entities ...*Entity) int {
	p.pendingMu.Lock()
	defer p.pendingMu.Unlock()

	accepted := 0
	for _, e := range entities {
		if e == nil || e.staged {
			continue
		}
		e.staged = true
		p.pending = append(p.pending, e)
		accepted++
	}
	return accepted
}

// Drain moves every staged entity to the live list, in staging order, and returns how many moved.
func (p *Population) Drain() int {
	p.pendingMu.Lock()
	batch := p.pending
	p.pending = nil
	p.pendingMu.Unlock()

	if len(batch) == 0 {
		return 0
	}

	p.liveMu.Lock()
	p.live = append(p.live, batch...)
	p.liveMu.Unlock()
	return len(batch)
}

// WithLive runs fn with exclusive access to the live list. fn must not retain the slice
// nor call back into the Population's live methods.
func (p *Population) WithLive(fn func(live []*Entity)) {
	p.liveMu.Lock()
	defer p.liveMu.Unlock()
	fn(p.live)
}

// Len is the number of live entities.
func (p *Population) Len() int {
	p.liveMu.Lock()
	defer p.liveMu.Unlock()
	return len(p.live)
}

// PendingLen is the number of entities waiting for the next drain.
func (p *Population) PendingLen() int {
	p.pendingMu.Lock()
	defer p.pendingMu.Unlock()
	return len(p.pending)
}

// Census counts the live entities per kind.
func (p *Population) Census() (plain, predators int) {
	p.WithLive(func(live []*Entity) {
		for _, e := range live {
			if e.IsPredator() {
				predators++
			} else {
				plain++
			}
		}
	})
	return plain, predators
}
