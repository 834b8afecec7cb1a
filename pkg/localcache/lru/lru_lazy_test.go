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
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type cacheTarget struct {
	getHit      int64
	getStale    int64
	getSuccess  int64
	getFailed   int64
	delHit      int64
	delNotFound int64
}

func (r *cacheTarget) IncrGetHit() { atomic.AddInt64(&r.getHit, 1) }
func (r *cacheTarget) IncrGetStale() { atomic.AddInt64(&r.getStale, 1) }
func (r *cacheTarget) IncrGetSuccess() { atomic.AddInt64(&r.getSuccess, 1) }
func (r *cacheTarget) IncrGetFailed() { atomic.AddInt64(&r.getFailed, 1) }
func (r *cacheTarget) IncrDelHit() { atomic.AddInt64(&r.delHit, 1) }
func (r *cacheTarget) IncrDelNotFound() { atomic.AddInt64(&r.delNotFound, 1) }

func (r *cacheTarget) String() string {
	return fmt.Sprintf("getHit: %d, getStale: %d, getSuccess: %d, getFailed: %d, delHit: %d, delNotFound: %d",
		atomic.LoadInt64(&r.getHit), atomic.LoadInt64(&r.getStale), atomic.LoadInt64(&r.getSuccess),
		atomic.LoadInt64(&r.getFailed), atomic.LoadInt64(&r.delHit), atomic.LoadInt64(&r.delNotFound))
}

func newTestLRU(successTTL, failedTTL, retention time.Duration) (*LayLRU[string, string], *cacheTarget) {
	target := &cacheTarget{}
	return NewLayLRU[string, string](100, successTTL, failedTTL, retention, target, nil, nil), target
}

func TestName(t *testing.T) {
	l, target := newTestLRU(time.Minute, 0, 10*time.Minute)
	var calls int64
	fetch := func() (string, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return "v1", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := l.Get("k", fetch)
			assert.NoError(t, err)
			assert.Equal(t, "v1", v)
		}()
	}
	wg.Wait()
	t.Log(target.String())
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))

	v, err := l.Get("k", fetch)
	assert.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestStaleWhileRevalidate(t *testing.T) {
	l, target := newTestLRU(20*time.Millisecond, 0, time.Minute)
	var calls int64
	fetch := func() (string, error) {
		n := atomic.AddInt64(&calls, 1)
		return fmt.Sprintf("v%d", n), nil
	}

	v, _ := l.Get("k", fetch)
	assert.Equal(t, "v1", v)
	time.Sleep(40 * time.Millisecond)

	v, _ = l.Get("k", fetch)
	assert.Equal(t, "v1", v)
	assert.Eventually(t, func() bool {
		p, ok := l.Peek("k")
		return ok && p == "v2"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&target.getStale))
}

func TestRetention(t *testing.T) {
	l, _ := newTestLRU(10*time.Millisecond, 0, 30*time.Millisecond)
	var calls int64
	fetch := func() (string, error) {
		n := atomic.AddInt64(&calls, 1)
		return fmt.Sprintf("v%d", n), nil
	}

	v, _ := l.Get("k", fetch)
	assert.Equal(t, "v1", v)
	time.Sleep(80 * time.Millisecond)

	_, ok := l.Peek("k")
	assert.False(t, ok)
	// an idle entry is never served stale
	v, _ = l.Get("k", fetch)
	assert.Equal(t, "v2", v)
}

func TestFailed(t *testing.T) {
	errFetch := errors.New("boom")
	var calls int64
	fetch := func() (string, error) {
		atomic.AddInt64(&calls, 1)
		return "", errFetch
	}

	l, target := newTestLRU(time.Minute, 0, time.Minute)
	_, err := l.Get("k", fetch)
	assert.ErrorIs(t, err, errFetch)
	_, err = l.Get("k", fetch)
	assert.ErrorIs(t, err, errFetch)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
	assert.Equal(t, int64(2), atomic.LoadInt64(&target.getFailed))

	atomic.StoreInt64(&calls, 0)
	l, _ = newTestLRU(time.Minute, time.Minute, time.Minute)
	_, _ = l.Get("k", fetch)
	_, err = l.Get("k", fetch)
	assert.ErrorIs(t, err, errFetch)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestFailedRefreshKeepsValue(t *testing.T) {
	l, _ := newTestLRU(10*time.Millisecond, time.Minute, time.Minute)
	var fail atomic.Bool
	var calls int64
	fetch := func() (string, error) {
		atomic.AddInt64(&calls, 1)
		if fail.Load() {
			return "", errors.New("down")
		}
		return "v1", nil
	}

	_, _ = l.Get("k", fetch)
	fail.Store(true)
	time.Sleep(20 * time.Millisecond)

	v, err := l.Get("k", fetch)
	assert.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.Eventually(t, func() bool { return atomic.LoadInt64(&calls) == 2 }, time.Second, 5*time.Millisecond)

	p, ok := l.Peek("k")
	assert.True(t, ok)
	assert.Equal(t, "v1", p)
}

func TestFailedRefreshDiscardsValue(t *testing.T) {
	errDenied := errors.New("denied")
	target := &cacheTarget{}
	l := NewLayLRU[string, string](100, 10*time.Millisecond, 0, time.Minute, target, nil, func(err error) bool {
		return errors.Is(err, errDenied)
	})
	var deny atomic.Bool
	var calls int64
	fetch := func() (string, error) {
		atomic.AddInt64(&calls, 1)
		if deny.Load() {
			return "", errDenied
		}
		return "v1", nil
	}

	_, _ = l.Get("k", fetch)
	deny.Store(true)
	time.Sleep(20 * time.Millisecond)

	// served stale while the refresh runs
	v, err := l.Get("k", fetch)
	assert.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.Eventually(t, func() bool {
		_, ok := l.Peek("k")
		return !ok
	}, time.Second, 5*time.Millisecond)

	_, err = l.Get("k", fetch)
	assert.ErrorIs(t, err, errDenied)
	assert.GreaterOrEqual(t, atomic.LoadInt64(&calls), int64(2))
}

func TestDelWhileLoading(t *testing.T) {
	l, _ := newTestLRU(time.Minute, 0, time.Minute)
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan string)

	go func() {
		v, _ := l.Get("k", func() (string, error) {
			close(started)
			<-release
			return "old", nil
		})
		done <- v
	}()
	<-started
	assert.True(t, l.Del("k"))
	close(release)

	assert.Equal(t, "old", <-done)
	_, ok := l.Peek("k")
	assert.False(t, ok)

	v, _ := l.Get("k", func() (string, error) { return "new", nil })
	assert.Equal(t, "new", v)
}

func TestSet(t *testing.T) {
	l, target := newTestLRU(time.Minute, 0, time.Minute)
	l.Set("k", "direct")

	v, err := l.Get("k", func() (string, error) {
		t.Fatal("fetch must not run for a written key")
		return "", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "direct", v)
	l.Set("k", "again")
	p, _ := l.Peek("k")
	assert.Equal(t, "again", p)

	assert.False(t, l.Del("missing"))
	assert.Equal(t, int64(1), atomic.LoadInt64(&target.delNotFound))
	assert.ElementsMatch(t, []string{"k"}, l.Purge())
	_, ok := l.Peek("k")
	assert.False(t, ok)
}

func TestEvict(t *testing.T) {
	var evictedKeys []string
	l := NewLayLRU[string, string](2, time.Minute, 0, 0, &cacheTarget{}, func(key string, value string) {
		evictedKeys = append(evictedKeys, key)
	}, nil)
	l.Set("a", "1")
	l.Set("b", "2")
	l.Set("c", "3")
	l.Del("b")

	assert.Equal(t, []string{"a"}, evictedKeys)
}

func TestSlotLRU(t *testing.T) {
	target := &cacheTarget{}
	hash := func(k string) uint64 {
		h := fnv.New64a()
		_, _ = h.Write([]byte(k))
		return h.Sum64()
	}
	l := NewSlotLRU[string, string](8, hash, func() LRU[string, string] {
		return NewLayLRU[string, string](100, time.Minute, 0, time.Minute, target, nil, nil)
	})
	for i := 0; i < 20; i++ {
		key := fmt.Sprintf("key-%d", i)
		v, err := l.Get(key, func() (string, error) { return key, nil })
		assert.NoError(t, err)
		assert.Equal(t, key, v)
	}
	assert.Equal(t, 20, l.Len())
	assert.True(t, l.Del("key-3"))
	assert.Len(t, l.Purge(), 19)
	assert.Equal(t, 0, l.Len())
	l.Stop()
}
