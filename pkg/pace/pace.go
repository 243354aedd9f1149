// Copyright 2025 astragull
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pace enforces a quiet interval between calls to external services.
package pace

import (
	"context"
	"sync"
	"time"
)

// Gate spaces out external calls. Wait blocks until at least the configured
// interval has passed since the last completed call; Done records a
// completion. The interval is anchored on completions, not starts, so a slow
// response still buys the service its full quiet period. The first call is
// never delayed, and a nil gate or a non-positive interval disables pacing.
type Gate struct {
	interval time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	mu   sync.Mutex
	last time.Time
}

// New creates a gate with the given quiet interval.
func New(interval time.Duration) *Gate {
	return &Gate{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until the quiet interval since the last completed call has
// elapsed, or until ctx is cancelled.
func (g *Gate) Wait(ctx context.Context) error {
	if g == nil || g.interval <= 0 {
		return nil
	}

	g.mu.Lock()
	last := g.last
	g.mu.Unlock()

	if last.IsZero() {
		return nil
	}

	wait := g.interval - g.now().Sub(last)
	if wait <= 0 {
		return nil
	}

	return g.sleep(ctx, wait)
}

// Done records the completion of a call. The next Wait measures its quiet
// interval from this moment.
func (g *Gate) Done() {
	if g == nil || g.interval <= 0 {
		return
	}

	g.mu.Lock()
	g.last = g.now()
	g.mu.Unlock()
}

// sleepCtx sleeps for d, waking early if ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	select {
	case <-ctx.Done():
		if !t.Stop() {
			<-t.C
		}
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
