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

package localcache

import (
	"context"
	"hash/fnv"
	"unsafe"

	"github.com/vison888/fxboard/pkg/localcache/link"
	"github.com/vison888/fxboard/pkg/localcache/lru"
)

type Cache[V any] interface {
	Get(ctx context.Context, key string, fetch func(ctx context.Context) (V, error)) (V, error)
	// GetLink is Get, and additionally makes key a dependent of every link
	// key, deleting any of them deletes key as well.
	GetLink(ctx context.Context, key string, fetch func(ctx context.Context) (V, error), link ...string) (V, error)
	// Peek returns the cached value without loading it.
	Peek(key string) (V, bool)
	// Set writes value directly, replacing whatever is cached or loading.
	Set(ctx context.Context, key string, value V, link ...string)
	// Del removes the keys and their dependents, calling the delete hooks first.
	Del(ctx context.Context, key ...string)
	// DelLocal is Del without the delete hooks.
	DelLocal(ctx context.Context, key ...string)
	// Purge clears the whole cache.
	Purge(ctx context.Context)
	// Len is the number of entries held, stale ones included.
	Len() int
	// Subscribe calls fn after every change until the returned func is called.
	Subscribe(fn func(Event)) (unsubscribe func())
	Stop()
}

func LRUStringHash(key string) uint64 {
	h := fnv.New64a()
	h.Write(*(*[]byte)(unsafe.Pointer(&key)))
	return h.Sum64()
}

func New[V any](opts ...Option) Cache[V] {
	opt := defaultOption()
	for _, o := range opts {
		o(opt)
	}

	c := cache[V]{opt: opt}
	if opt.localSlotNum > 0 && opt.localSlotSize > 0 {
		createSimpleLRU := func() lru.LRU[string, V] {
			return lru.NewLayLRU[string, V](opt.localSlotSize, opt.localSuccessTTL, opt.localFailedTTL, opt.retention, opt.target, c.onEvict, opt.discard)
		}
		if opt.localSlotNum == 1 {
			c.local = createSimpleLRU()
		} else {
			c.local = lru.NewSlotLRU[string, V](opt.localSlotNum, LRUStringHash, createSimpleLRU)
		}
		if opt.linkSlotNum > 0 {
			c.link = link.New(opt.linkSlotNum)
		}
	}
	return &c
}

type cache[V any] struct {
	opt   *option
	link  link.Link
	local lru.LRU[string, V]
	subs  subscribers
}

func (c *cache[V]) onEvict(key string, value V) {
	if c.link != nil {
		for k := range c.link.Del(key) {
			if key != k {
				c.local.Del(k)
			}
			c.subs.emit(Event{Type: EventDelete, Key: k})
		}
		return
	}
	c.subs.emit(Event{Type: EventDelete, Key: key})
}

func (c *cache[V]) del(remote bool, key ...string) {
	if c.local == nil {
		return
	}
	for _, k := range key {
		keys := map[string]struct{}{k: {}}
		if c.link != nil {
			keys = c.link.Del(k)
		}
		for dk := range keys {
			c.local.Del(dk)
			c.subs.emit(Event{Type: EventDelete, Key: dk, Remote: remote})
		}
	}
}

func (c *cache[V]) Get(ctx context.Context, key string, fetch func(ctx context.Context) (V, error)) (V, error) {
	return c.GetLink(ctx, key, fetch)
}

func (c *cache[V]) GetLink(ctx context.Context, key string, fetch func(ctx context.Context) (V, error), link ...string) (V, error) {
	if c.local == nil {
		return fetch(ctx)
	}
	// linked before the entry exists, a parent delete racing the load
	// still reaches it
	if len(link) > 0 && c.link != nil {
		c.link.Link(key, link...)
	}
	// the load is shared with other callers and may outlive this request
	loadCtx := context.WithoutCancel(ctx)
	return c.local.Get(key, func() (V, error) {
		v, err := fetch(loadCtx)
		if err == nil {
			c.subs.emit(Event{Type: EventFetched, Key: key})
		}
		return v, err
	})
}

func (c *cache[V]) Peek(key string) (V, bool) {
	if c.local == nil {
		var zero V
		return zero, false
	}
	return c.local.Peek(key)
}

func (c *cache[V]) Set(ctx context.Context, key string, value V, link ...string) {
	if c.local == nil {
		return
	}
	if len(link) > 0 && c.link != nil {
		c.link.Link(key, link...)
	}
	c.local.Set(key, value)
	c.subs.emit(Event{Type: EventSet, Key: key})
}

func (c *cache[V]) Del(ctx context.Context, key ...string) {
	for _, fn := range c.opt.delFn {
		fn(ctx, key...)
	}
	c.del(false, key...)
}

func (c *cache[V]) DelLocal(ctx context.Context, key ...string) {
	c.del(true, key...)
}

func (c *cache[V]) Purge(ctx context.Context) {
	if c.local == nil {
		return
	}
	for _, k := range c.local.Purge() {
		if c.link != nil {
			c.link.Del(k)
		}
	}
	c.subs.emit(Event{Type: EventPurge})
}

func (c *cache[V]) Subscribe(fn func(Event)) func() {
	return c.subs.add(fn)
}

func (c *cache[V]) Len() int {
	if c.local == nil {
		return 0
	}
	return c.local.Len()
}

func (c *cache[V]) Stop() {
	if c.local != nil {
		c.local.Stop()
	}
}
