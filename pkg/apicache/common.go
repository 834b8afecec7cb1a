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

package apicache

import (
	"context"
	"encoding/json"

	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
	"github.com/vison888/fxboard/pkg/apicli"
	"github.com/vison888/fxboard/pkg/common/config"
	"github.com/vison888/fxboard/pkg/common/prommetrics"
	"github.com/vison888/fxboard/pkg/localcache"
)

// cacheJSON stores values as JSON so that every reader gets its own copy.
type cacheJSON[V any] struct{}

func (cacheJSON[V]) Marshal(val V, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(val)
	if err != nil {
		return nil, errs.WrapMsg(err, "local cache json.Marshal error")
	}
	return data, nil
}

func (cacheJSON[V]) Unmarshal(data []byte, err error) (V, error) {
	var val V
	if err != nil {
		return val, err
	}
	if err := json.Unmarshal(data, &val); err != nil {
		return val, errs.WrapMsg(err, "local cache json.Unmarshal error")
	}
	return val, nil
}

// newLocalCache builds the cache for one resource. Deletes are broadcast
// through pub when it is not nil.
func newLocalCache(name string, lc config.CacheConfig, pub *redisPublisher) localcache.Cache[[]byte] {
	log.ZDebug(context.Background(), "new local cache", "name", name, "topic", lc.Topic, "slotNum", lc.SlotNum, "slotSize", lc.SlotSize, "enable", lc.Enable())
	opts := []localcache.Option{
		localcache.WithLocalSlotNum(lc.SlotNum),
		localcache.WithLocalSlotSize(lc.SlotSize),
		localcache.WithLinkSlotNum(lc.SlotNum),
		localcache.WithLocalSuccessTTL(lc.Fresh()),
		localcache.WithLocalFailedTTL(lc.Failed()),
		localcache.WithRetention(lc.Retention()),
		localcache.WithTarget(prommetrics.CacheTarget{Name: name}),
		// a rejected refresh must reach the caller, e.g. a 401 clears the cookie
		localcache.WithDiscardStaleOn(apicli.IsClientError),
	}
	if pub != nil && lc.Enable() {
		opts = append(opts, localcache.WithDeleteKeyBefore(pub.Publish))
	}
	local := localcache.New[[]byte](opts...)
	local.Subscribe(func(e localcache.Event) {
		prommetrics.CacheEvent(name, e.Type.String(), local.Len())
	})
	return local
}
