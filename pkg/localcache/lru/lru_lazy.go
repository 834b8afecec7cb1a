// Copyright © 2024 OpenIM. All rights reserved.
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

package lru

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"golang.org/x/sync/singleflight"
)

type layLruItem[V any] struct {
	lock   sync.Mutex
	flight singleflight.Group

	loaded       bool
	revalidating bool
	fresh        int64 // unix milli, served without refetching until then
	expires      int64 // unix milli, dropped unless read again before then, 0 means never
	err          error
	value        V
}

type evicted[K comparable, V any] struct {
	key   K
	value V
}

// NewLayLRU creates a lazily expiring LRU. A retention of 0 keeps entries
// until they are evicted for capacity or deleted. A failed refresh keeps the
// stale value unless discard reports true for its error, then the next read
// loads synchronously. discard may be nil.
func NewLayLRU[K comparable, V any](size int, successTTL, failedTTL, retention time.Duration, target Target, onEvict EvictCallback[K, V], discard func(err error) bool) *LayLRU[K, V] {
	x := &LayLRU[K, V]{
		successTTL: successTTL,
		failedTTL:  failedTTL,
		retention:  retention,
		target:     target,
		onEvict:    onEvict,
		discard:    discard,
	}
	var cb simplelru.EvictCallback[K, *layLruItem[V]]
	if onEvict != nil {
		// simplelru also calls back on Remove and Purge, only capacity
		// evictions are reported.
		cb = func(key K, value *layLruItem[V]) {
			if !x.removing {
				x.evicted = append(x.evicted, evicted[K, V]{key: key, value: value.value})
			}
		}
	}
	core, err := simplelru.NewLRU[K, *layLruItem[V]](size, cb)
	if err != nil {
		panic(err)
	}
	x.core = core
	return x
}

type LayLRU[K comparable, V any] struct {
	lock       sync.Mutex
	core       *simplelru.LRU[K, *layLruItem[V]]
	removing   bool
	evicted    []evicted[K, V]
	successTTL time.Duration
	failedTTL  time.Duration
	retention  time.Duration
	target     Target
	onEvict    EvictCallback[K, V]
	discard    func(err error) bool
}

func (x *LayLRU[K, V]) retain(now int64) int64 {
	if x.retention <= 0 {
		return 0
	}
	return now + x.retention.Milliseconds()
}

func idle[V any](v *layLruItem[V], now int64) bool {
	return v.expires != 0 && v.expires <= now
}

// flushEvicted runs the evict callback outside of the store lock, the
// callback is free to call back into the cache.
func (x *LayLRU[K, V]) flushEvicted() {
	if x.onEvict == nil {
		return
	}
	x.lock.Lock()
	list := x.evicted
	x.evicted = nil
	x.lock.Unlock()
	for _, e := range list {
		x.onEvict(e.key, e.value)
	}
}

func (x *LayLRU[K, V]) Get(key K, fetch func() (V, error)) (V, error) {
	now := time.Now().UnixMilli()

	x.lock.Lock()
	v, ok := x.core.Get(key)
	if !ok {
		v = &layLruItem[V]{}
		x.core.Add(key, v)
	}
	x.lock.Unlock()
	x.flushEvicted()

	v.lock.Lock()
	if v.loaded && idle(v, now) {
		var zero V
		v.loaded, v.value, v.err = false, zero, nil
	}
	if v.loaded {
		v.expires = x.retain(now)
		if now < v.fresh {
			value, err := v.value, v.err
			v.lock.Unlock()
			x.target.IncrGetHit()
			return value, err
		}
		if v.err == nil {
			value := v.value
			start := !v.revalidating
			v.revalidating = true
			v.lock.Unlock()
			x.target.IncrGetStale()
			if start {
				go x.load(v, fetch)
			}
			return value, nil
		}
	}
	v.lock.Unlock()
	return x.load(v, fetch)
}

// load runs fetch once for all concurrent callers of the same item. An item
// removed from the store while loading still hands the result to its
// waiters, but nobody can read it from the store any more.
func (x *LayLRU[K, V]) load(v *layLruItem[V], fetch func() (V, error)) (V, error) {
	res, err, _ := v.flight.Do("", func() (any, error) {
		value, err := fetch()
		x.store(v, value, err)
		return value, err
	})
	value, _ := res.(V)
	return value, err
}

func (x *LayLRU[K, V]) store(v *layLruItem[V], value V, err error) {
	now := time.Now()
	v.lock.Lock()
	defer v.lock.Unlock()
	v.revalidating = false

	if err == nil {
		v.loaded, v.value, v.err = true, value, nil
		v.fresh = now.Add(x.successTTL).UnixMilli()
		v.expires = x.retain(now.UnixMilli())
		x.target.IncrGetSuccess()
		return
	}
	x.target.IncrGetFailed()
	if v.loaded && v.err == nil {
		if x.discard != nil && x.discard(err) {
			var zero V
			v.loaded, v.value = false, zero
		}
		// otherwise a failed refresh keeps the stale value
		return
	}
	if x.failedTTL > 0 {
		var zero V
		v.loaded, v.value, v.err = true, zero, err
		v.fresh = now.Add(x.failedTTL).UnixMilli()
		v.expires = x.retain(now.UnixMilli())
	}
}

func (x *LayLRU[K, V]) Peek(key K) (V, bool) {
	var zero V
	x.lock.Lock()
	v, ok := x.core.Peek(key)
	x.lock.Unlock()
	if !ok {
		return zero, false
	}
	v.lock.Lock()
	defer v.lock.Unlock()
	if !v.loaded || v.err != nil || idle(v, time.Now().UnixMilli()) {
		return zero, false
	}
	return v.value, true
}

func (x *LayLRU[K, V]) newItem(value V) *layLruItem[V] {
	now := time.Now()
	return &layLruItem[V]{
		loaded:  true,
		value:   value,
		fresh:   now.Add(x.successTTL).UnixMilli(),
		expires: x.retain(now.UnixMilli()),
	}
}

func (x *LayLRU[K, V]) Set(key K, value V) {
	x.lock.Lock()
	x.core.Add(key, x.newItem(value))
	x.lock.Unlock()
	x.flushEvicted()
}

func (x *LayLRU[K, V]) Del(key K) bool {
	x.lock.Lock()
	x.removing = true
	ok := x.core.Remove(key)
	x.removing = false
	x.lock.Unlock()

	if ok {
		x.target.IncrDelHit()
	} else {
		x.target.IncrDelNotFound()
	}
	return ok
}

func (x *LayLRU[K, V]) Len() int {
	x.lock.Lock()
	defer x.lock.Unlock()
	return x.core.Len()
}

func (x *LayLRU[K, V]) Purge() []K {
	x.lock.Lock()
	defer x.lock.Unlock()
	keys := x.core.Keys()
	x.removing = true
	x.core.Purge()
	x.removing = false
	x.evicted = nil
	return keys
}

func (x *LayLRU[K, V]) Stop() {}
