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

import "sync"

type EventType int

const (
	// EventFetched is sent after a load stored a new value.
	EventFetched EventType = iota + 1
	// EventSet is sent after a direct write.
	EventSet
	// EventDelete is sent for every key removed by Del, DelLocal or eviction.
	EventDelete
	// EventPurge is sent once when the whole cache was cleared.
	EventPurge
)

func (t EventType) String() string {
	switch t {
	case EventFetched:
		return "fetched"
	case EventSet:
		return "set"
	case EventDelete:
		return "delete"
	case EventPurge:
		return "purge"
	default:
		return "unknown"
	}
}

type Event struct {
	Type EventType
	Key  string
	// Remote is true when the change was applied on behalf of another instance.
	Remote bool
}

type subscribers struct {
	lock sync.RWMutex
	next uint64
	fns  map[uint64]func(Event)
}

func (s *subscribers) add(fn func(Event)) func() {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.fns == nil {
		s.fns = make(map[uint64]func(Event))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			s.lock.Lock()
			delete(s.fns, id)
			s.lock.Unlock()
		})
	}
}

func (s *subscribers) emit(e Event) {
	s.lock.RLock()
	fns := make([]func(Event), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.lock.RUnlock()
	for _, fn := range fns {
		fn(e)
	}
}
