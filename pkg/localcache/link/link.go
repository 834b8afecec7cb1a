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

package link

import (
	"hash/fnv"
	"sync"
	"unsafe"
)

type Link interface {
	// Link makes key a dependent of every parent.
	Link(key string, parents ...string)
	// Del removes key and everything depending on it, returning the removed
	// keys (key included).
	Del(key string) map[string]struct{}
}

type node struct {
	children map[string]struct{}
	parents  map[string]struct{}
}

func newLinkKey() *linkKey {
	return &linkKey{
		data: make(map[string]*node),
	}
}

type linkKey struct {
	lock sync.Mutex
	data map[string]*node
}

func (x *linkKey) get(key string) *node {
	n, ok := x.data[key]
	if !ok {
		n = &node{children: make(map[string]struct{}), parents: make(map[string]struct{})}
		x.data[key] = n
	}
	return n
}

func (x *linkKey) addChild(key string, child string) {
	x.lock.Lock()
	defer x.lock.Unlock()
	x.get(key).children[child] = struct{}{}
}

func (x *linkKey) addParents(key string, parents ...string) {
	x.lock.Lock()
	defer x.lock.Unlock()
	n := x.get(key)
	for _, p := range parents {
		n.parents[p] = struct{}{}
	}
}

func (x *linkKey) removeChild(key string, child string) {
	x.lock.Lock()
	defer x.lock.Unlock()
	n, ok := x.data[key]
	if !ok {
		return
	}
	delete(n.children, child)
	if len(n.children) == 0 && len(n.parents) == 0 {
		delete(x.data, key)
	}
}

func (x *linkKey) del(key string) *node {
	x.lock.Lock()
	defer x.lock.Unlock()
	n, ok := x.data[key]
	if !ok {
		return nil
	}
	delete(x.data, key)
	return n
}

func New(n int) Link {
	if n <= 0 {
		panic("must be greater than 0")
	}
	slots := make([]*linkKey, n)
	for i := 0; i < len(slots); i++ {
		slots[i] = newLinkKey()
	}
	return &slot{
		n:     uint64(n),
		slots: slots,
	}
}

type slot struct {
	n     uint64
	slots []*linkKey
}

func (x *slot) index(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(*(*[]byte)(unsafe.Pointer(&s)))
	return h.Sum64() % x.n
}

func (x *slot) Link(key string, parents ...string) {
	if len(parents) == 0 {
		return
	}
	ps := make([]string, 0, len(parents))
	for _, p := range parents {
		if p != key {
			ps = append(ps, p)
		}
	}
	x.slots[x.index(key)].addParents(key, ps...)
	for _, p := range ps {
		x.slots[x.index(p)].addChild(p, key)
	}
}

func (x *slot) Del(key string) map[string]struct{} {
	del := make(map[string]struct{})
	stack := []string{key}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := del[curr]; ok {
			continue
		}
		del[curr] = struct{}{}

		n := x.slots[x.index(curr)].del(curr)
		if n == nil {
			continue
		}
		for p := range n.parents {
			if _, ok := del[p]; !ok {
				x.slots[x.index(p)].removeChild(p, curr)
			}
		}
		for c := range n.children {
			stack = append(stack, c)
		}
	}
	return del
}
