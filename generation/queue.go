// This file is part of Chimeraboy.
//
// Chimeraboy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chimeraboy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chimeraboy.  If not, see <https://www.gnu.org/licenses/>.

package generation

import (
	"context"
	"sync"

	"github.com/jetsetilly/chimeraboy/creature"
	"github.com/jetsetilly/chimeraboy/curated"
	"github.com/jetsetilly/chimeraboy/logger"
	"github.com/jetsetilly/chimeraboy/notifications"
)

// flight is the single in-flight slot. done is closed when the task's
// result has been appended to the queue
type flight struct {
	done chan struct{}
}

// Queue is the pre-fetch queue of ready creatures. The producer is a
// supervised background task; at most one is ever in flight, so results
// join the queue in the same order they were requested.
//
// A failure of the network provider is not a failure of the task: the
// offline generator is substituted and the failure is reported through the
// notification channel. The background task itself never fails.
type Queue struct {
	// primary may be nil, in which case the offline provider serves
	// every request directly
	primary Provider
	offline Provider

	notify notifications.Notify

	crit   sync.Mutex
	items  []creature.Creature
	flight *flight
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue(primary Provider, offline Provider, notify notifications.Notify) (*Queue, error) {
	if offline == nil {
		return nil, curated.Errorf("generation: offline provider is nil")
	}
	return &Queue{
		primary: primary,
		offline: offline,
		notify:  notify,
	}, nil
}

// Prefetch requests that a creature be ready for later. It never blocks.
// If an item is already queued or a generation task is already in flight
// the call is a no-op.
func (q *Queue) Prefetch(hint string) {
	q.crit.Lock()
	defer q.crit.Unlock()

	if len(q.items) > 0 || q.flight != nil {
		return
	}

	f := &flight{done: make(chan struct{})}
	q.flight = f
	go q.run(f, hint)
}

// NextIfReady removes and returns the head of the queue if an item is
// present. It never blocks.
func (q *Queue) NextIfReady() (creature.Creature, bool) {
	q.crit.Lock()
	defer q.crit.Unlock()

	if len(q.items) == 0 {
		return creature.Creature{}, false
	}

	cr := q.items[0]
	q.items = q.items[1:]
	return cr, true
}

// Next removes and returns the head of the queue, waiting for the
// in-flight task if there is one, or starting a fresh generation if there
// is not. Each creature is returned to exactly one caller.
func (q *Queue) Next(ctx context.Context, hint string) (creature.Creature, error) {
	for {
		q.crit.Lock()
		if len(q.items) > 0 {
			cr := q.items[0]
			q.items = q.items[1:]
			q.crit.Unlock()
			return cr, nil
		}

		f := q.flight
		if f == nil {
			f = &flight{done: make(chan struct{})}
			q.flight = f
			go q.run(f, hint)
		}
		q.crit.Unlock()

		select {
		case <-ctx.Done():
			return creature.Creature{}, curated.Errorf("generation: %v", ctx.Err())
		case <-f.done:
			// the result landed in the queue but another caller may get
			// there first. loop and look again
		}
	}
}

// Invalidate clears all queued items. An in-flight task is not aborted;
// its result will join the (now empty) queue when it completes.
func (q *Queue) Invalidate() {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.items = q.items[:0]
}

// run is the supervised background task. It always produces a creature.
func (q *Queue) run(f *flight, hint string) {
	cr := q.produce(hint)

	q.crit.Lock()
	q.items = append(q.items, cr)
	q.flight = nil
	q.crit.Unlock()

	close(f.done)
}

func (q *Queue) produce(hint string) creature.Creature {
	if q.primary != nil {
		cr, err := q.primary.Generate(context.Background(), hint)
		if err == nil {
			return cr
		}

		logger.Logf(logger.Allow, "generation", "provider failed: %v. using offline generator", err)
		if q.notify != nil {
			q.notify.Notify(notifications.NotifyGenerationFailed, err)
		}
	}

	cr, err := q.offline.Generate(context.Background(), hint)
	if err != nil {
		// the offline generator is documented not to fail. if it somehow
		// does, an empty creature would poison the guest, so synthesise
		// the smallest valid one instead
		logger.Logf(logger.Allow, "generation", "offline generator failed: %v", err)
		cr = creature.Creature{
			Name:  "Missingno",
			Level: 1,
			Base:  creature.Stats{HP: 1, Attack: 1, Defence: 1, Speed: 1, Special: 1},
		}
	}

	return cr
}
