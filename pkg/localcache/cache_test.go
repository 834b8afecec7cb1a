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
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	c := New[string](WithLocalSuccessTTL(time.Second), WithRetention(time.Minute))
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		fetches int64
		gets    int64
		dels    int64
	)
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 2000; j++ {
				key := fmt.Sprintf("currencies:detail:%d", rand.Intn(100))
				v, err := c.GetLink(ctx, key, func(ctx context.Context) (string, error) {
					atomic.AddInt64(&fetches, 1)
					return key, nil
				}, "currencies")
				assert.NoError(t, err)
				assert.Equal(t, key, v)
				atomic.AddInt64(&gets, 1)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.Del(ctx, fmt.Sprintf("currencies:detail:%d", rand.Intn(100)))
				atomic.AddInt64(&dels, 1)
			}
		}()
	}
	wg.Wait()
	t.Log("gets", gets, "fetches", fetches, "dels", dels)
	assert.Less(t, fetches, gets)
}

func TestLinkInvalidation(t *testing.T) {
	var deleted [][]string
	c := New[string](WithDeleteKeyBefore(func(ctx context.Context, key ...string) {
		deleted = append(deleted, key)
	}))
	ctx := context.Background()
	fetch := func(v string) func(ctx context.Context) (string, error) {
		return func(ctx context.Context) (string, error) { return v, nil }
	}

	_, _ = c.GetLink(ctx, "currencies:list:{}", fetch("list"), "currencies")
	_, _ = c.GetLink(ctx, "currencies:price-history:USD", fetch("history"), "currencies")
	c.Set(ctx, "currencies:detail:1", "detail", "currencies")
	_, _ = c.Get(ctx, "user:login", fetch("user"))

	c.Del(ctx, "currencies")
	assert.Equal(t, [][]string{{"currencies"}}, deleted)
	for _, key := range []string{"currencies:list:{}", "currencies:price-history:USD", "currencies:detail:1"} {
		_, ok := c.Peek(key)
		assert.False(t, ok, key)
	}
	v, ok := c.Peek("user:login")
	assert.True(t, ok)
	assert.Equal(t, "user", v)

	// a dependent can be dropped without touching its siblings
	_, _ = c.GetLink(ctx, "currencies:list:{}", fetch("list"), "currencies")
	c.Set(ctx, "currencies:detail:1", "detail", "currencies")
	c.DelLocal(ctx, "currencies:detail:1")
	assert.Len(t, deleted, 1)
	_, ok = c.Peek("currencies:list:{}")
	assert.True(t, ok)
}

func TestDelParentWhileLoading(t *testing.T) {
	c := New[string]()
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string)

	go func() {
		v, _ := c.GetLink(ctx, "currencies:list:{}", func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "before-mutation", nil
		}, "currencies")
		done <- v
	}()
	<-started
	c.Del(ctx, "currencies")
	close(release)

	assert.Equal(t, "before-mutation", <-done)
	_, ok := c.Peek("currencies:list:{}")
	assert.False(t, ok)

	v, err := c.GetLink(ctx, "currencies:list:{}", func(ctx context.Context) (string, error) {
		return "after-mutation", nil
	}, "currencies")
	assert.NoError(t, err)
	assert.Equal(t, "after-mutation", v)
}

func TestSubscribe(t *testing.T) {
	c := New[int](WithLocalSlotNum(1))
	ctx := context.Background()

	var (
		lock   sync.Mutex
		events []Event
	)
	unsubscribe := c.Subscribe(func(e Event) {
		lock.Lock()
		events = append(events, e)
		lock.Unlock()
	})

	_, _ = c.GetLink(ctx, "a", func(ctx context.Context) (int, error) { return 1, nil }, "root")
	c.Set(ctx, "b", 2)
	c.DelLocal(ctx, "root")
	c.Purge(ctx)
	unsubscribe()
	c.Set(ctx, "c", 3)

	lock.Lock()
	defer lock.Unlock()
	assert.Equal(t, Event{Type: EventFetched, Key: "a"}, events[0])
	assert.Equal(t, Event{Type: EventSet, Key: "b"}, events[1])
	assert.ElementsMatch(t, []Event{
		{Type: EventDelete, Key: "root", Remote: true},
		{Type: EventDelete, Key: "a", Remote: true},
	}, events[2:4])
	assert.Equal(t, Event{Type: EventPurge}, events[4])
	assert.Len(t, events, 5)
	assert.Equal(t, "purge", events[4].Type.String())
}

func TestCanceledCaller(t *testing.T) {
	c := New[string]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := c.Get(ctx, "k", func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "v", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "v", v)
	p, ok := c.Peek("k")
	assert.True(t, ok)
	assert.Equal(t, "v", p)
}

func TestPurge(t *testing.T) {
	c := New[string]()
	ctx := context.Background()
	c.Set(ctx, "currencies:detail:1", "a", "currencies")
	c.Set(ctx, "user:login", "b")
	assert.Equal(t, 2, c.Len())
	c.Purge(ctx)
	assert.Equal(t, 0, c.Len())

	_, ok := c.Peek("currencies:detail:1")
	assert.False(t, ok)
	_, ok = c.Peek("user:login")
	assert.False(t, ok)
}
