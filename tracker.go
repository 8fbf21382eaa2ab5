// Copyright 2026 The httpremote Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpremote

import (
	"sync"

	"github.com/codonnell/httpremote/transport"
)

// A tracker maps abort identities to the transport handles in flight
// under them. The zero value is an empty tracker.
//
// An identity with no handles has no entry.
type tracker struct {
	lock sync.Mutex
	m    map[string]map[transport.Primitive]struct{}
}

// track adds h under id. It does nothing if id is empty.
func (t *tracker) track(id string, h transport.Primitive) {
	if id == "" {
		return
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.m == nil {
		t.m = make(map[string]map[transport.Primitive]struct{})
	}
	set := t.m[id]
	if set == nil {
		set = make(map[transport.Primitive]struct{}, 1)
		t.m[id] = set
	}
	set[h] = struct{}{}
}

// untrack removes h from under id, dropping the entry for id when h was
// its last handle.
func (t *tracker) untrack(id string, h transport.Primitive) {
	if id == "" {
		return
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	set, ok := t.m[id]
	if !ok {
		return
	}
	if _, ok = set[h]; !ok {
		return
	}
	if len(set) == 1 {
		delete(t.m, id)
		return
	}
	delete(set, h)
}

// handles returns a snapshot of the handles tracked under id.
func (t *tracker) handles(id string) []transport.Primitive {
	t.lock.Lock()
	defer t.lock.Unlock()
	set := t.m[id]
	if len(set) == 0 {
		return nil
	}
	hs := make([]transport.Primitive, 0, len(set))
	for h := range set {
		hs = append(hs, h)
	}
	return hs
}

// cancelAll aborts every handle tracked under id and returns how many
// there were. The aborts happen outside the lock because a primitive
// may deliver its terminal signals, and so untrack, from inside Abort.
func (t *tracker) cancelAll(id string) int {
	if id == "" {
		return 0
	}
	hs := t.handles(id)
	for _, h := range hs {
		h.Abort()
	}
	return len(hs)
}

// ids returns the number of identities with tracked handles.
func (t *tracker) ids() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.m)
}
