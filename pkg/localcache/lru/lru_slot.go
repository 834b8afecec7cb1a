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

// NewSlotLRU spreads keys over slotNum independent LRUs, each with its own
// lock, so loads of unrelated keys never wait on one another.
func NewSlotLRU[K comparable, V any](slotNum int, hash func(K) uint64, create func() LRU[K, V]) LRU[K, V] {
	if slotNum < 1 {
		slotNum = 1
	}
	slots := make([]LRU[K, V], slotNum)
	for i := range slots {
		slots[i] = create()
	}
	return &slotLRU[K, V]{slots: slots, hash: hash}
}

type slotLRU[K comparable, V any] struct {
	slots []LRU[K, V]
	hash  func(k K) uint64
}

func (x *slotLRU[K, V]) slot(k K) LRU[K, V] {
	return x.slots[x.hash(k)%uint64(len(x.slots))]
}

func (x *slotLRU[K, V]) Get(key K, fetch func() (V, error)) (V, error) {
	return x.slot(key).Get(key, fetch)
}

func (x *slotLRU[K, V]) Peek(key K) (V, bool) {
	return x.slot(key).Peek(key)
}

func (x *slotLRU[K, V]) Set(key K, value V) {
	x.slot(key).Set(key, value)
}

func (x *slotLRU[K, V]) Del(key K) bool {
	return x.slot(key).Del(key)
}

func (x *slotLRU[K, V]) Len() int {
	var n int
	for _, s := range x.slots {
		n += s.Len()
	}
	return n
}

func (x *slotLRU[K, V]) Purge() []K {
	keys := make([]K, 0, x.Len())
	for _, s := range x.slots {
		keys = append(keys, s.Purge()...)
	}
	return keys
}

func (x *slotLRU[K, V]) Stop() {
	for _, s := range x.slots {
		s.Stop()
	}
}
