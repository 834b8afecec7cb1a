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
	"time"

	"github.com/vison888/fxboard/pkg/localcache/lru"
)

func defaultOption() *option {
	return &option{
		localSlotNum:    100,
		localSlotSize:   2000,
		linkSlotNum:     100,
		localSuccessTTL: 5 * time.Minute,
		localFailedTTL:  0,
		retention:       10 * time.Minute,
		delFn:           make([]func(ctx context.Context, key ...string), 0, 2),
		target:          EmptyTarget{},
	}
}

type option struct {
	localSlotNum  int
	localSlotSize int
	linkSlotNum   int
	// localSuccessTTL is how long a loaded value is served without refetching.
	localSuccessTTL time.Duration
	// localFailedTTL is how long a failed load is remembered, 0 retries on the next read.
	localFailedTTL time.Duration
	// retention is how long an unread entry is kept before it is dropped.
	retention time.Duration
	delFn     []func(ctx context.Context, key ...string)
	target    lru.Target
	// discard reports refresh errors after which a stale value must not be served.
	discard func(err error) bool
}

type Option func(o *option)

func WithLinkDisable() Option {
	return WithLinkSlotNum(0)
}

func WithLinkSlotNum(linkSlotNum int) Option {
	return func(o *option) {
		o.linkSlotNum = linkSlotNum
	}
}

func WithLocalSlotNum(localSlotNum int) Option {
	return func(o *option) {
		o.localSlotNum = localSlotNum
	}
}

func WithLocalSlotSize(localSlotSize int) Option {
	return func(o *option) {
		o.localSlotSize = localSlotSize
	}
}

func WithLocalSuccessTTL(localSuccessTTL time.Duration) Option {
	if localSuccessTTL < 0 {
		panic("localSuccessTTL should be greater than 0")
	}
	return func(o *option) {
		o.localSuccessTTL = localSuccessTTL
	}
}

func WithLocalFailedTTL(localFailedTTL time.Duration) Option {
	if localFailedTTL < 0 {
		panic("localFailedTTL should be greater than 0")
	}
	return func(o *option) {
		o.localFailedTTL = localFailedTTL
	}
}

func WithRetention(retention time.Duration) Option {
	if retention < 0 {
		panic("retention should be greater than 0")
	}
	return func(o *option) {
		o.retention = retention
	}
}

func WithTarget(target lru.Target) Option {
	if target == nil {
		panic("target should not be nil")
	}
	return func(o *option) {
		o.target = target
	}
}

// WithDiscardStaleOn drops a stale value when its background refresh fails
// with an error fn accepts. The next read then loads it and sees the error.
func WithDiscardStaleOn(fn func(err error) bool) Option {
	return func(o *option) {
		o.discard = fn
	}
}

// WithDeleteKeyBefore registers fn to be called with the keys passed to Del
// before they are removed locally. DelLocal does not call it.
func WithDeleteKeyBefore(fn func(ctx context.Context, key ...string)) Option {
	if fn == nil {
		panic("fn should not be nil")
	}
	return func(o *option) {
		o.delFn = append(o.delFn, fn)
	}
}

type EmptyTarget struct{}

func (e EmptyTarget) IncrGetHit() {}

func (e EmptyTarget) IncrGetStale() {}

func (e EmptyTarget) IncrGetSuccess() {}

func (e EmptyTarget) IncrGetFailed() {}

func (e EmptyTarget) IncrDelHit() {}

func (e EmptyTarget) IncrDelNotFound() {}
