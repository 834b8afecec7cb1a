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
	"strings"

	"github.com/google/uuid"
	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
	"github.com/openimsdk/tools/utils/datautil"
	"github.com/redis/go-redis/v9"
)

// deleteMessage is published for every Del. Instance lets a process skip the
// messages it sent itself, its local cache is already up to date.
type deleteMessage struct {
	Instance string   `json:"instance"`
	Keys     []string `json:"keys"`
}

// newRedisPublisher broadcasts deletes of keys under prefixes on topic. It is
// nil without a redis client.
func newRedisPublisher(rdb redis.UniversalClient, topic string, prefixes ...string) *redisPublisher {
	if rdb == nil {
		return nil
	}
	return &redisPublisher{
		rdb:      rdb,
		instance: uuid.NewString(),
		topic:    topic,
		prefixes: datautil.Distinct(prefixes),
	}
}

type redisPublisher struct {
	rdb      redis.UniversalClient
	instance string
	topic    string
	prefixes []string
}

func (p *redisPublisher) match(key string) bool {
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// Publish sends the keys matching the publisher's prefixes to its topic.
func (p *redisPublisher) Publish(ctx context.Context, keys ...string) {
	matched := make([]string, 0, len(keys))
	for _, key := range datautil.Distinct(keys) {
		if p.match(key) {
			matched = append(matched, key)
		}
	}
	if len(matched) == 0 {
		return
	}
	log.ZDebug(ctx, "publish cache delete", "topic", p.topic, "keys", matched)
	data, err := json.Marshal(deleteMessage{Instance: p.instance, Keys: matched})
	if err != nil {
		log.ZWarn(ctx, "keys json marshal failed", err, "topic", p.topic, "keys", matched)
		return
	}
	if err := p.rdb.Publish(ctx, p.topic, string(data)).Err(); err != nil {
		log.ZWarn(ctx, "redis publish cache delete error", err, "topic", p.topic, "keys", matched)
	}
}

func (p *redisPublisher) handle(ctx context.Context, payload string, del func(ctx context.Context, key ...string)) {
	var msg deleteMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		log.ZError(ctx, "subscriberRedisDeleteCache json.Unmarshal error", err, "payload", payload)
		return
	}
	if msg.Instance == p.instance || len(msg.Keys) == 0 {
		return
	}
	del(ctx, msg.Keys...)
}

// subscriberRedisDeleteCache applies deletes published by other instances
// until ctx is done.
func (p *redisPublisher) subscriberRedisDeleteCache(ctx context.Context, channel string, del func(ctx context.Context, key ...string)) {
	defer func() {
		if r := recover(); r != nil {
			log.ZPanic(ctx, "subscriberRedisDeleteCache Panic", errs.ErrPanic(r))
		}
	}()
	sub := p.rdb.Subscribe(ctx, channel)
	defer sub.Close()
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case message, ok := <-ch:
			if !ok {
				return
			}
			log.ZDebug(ctx, "subscriberRedisDeleteCache", "channel", channel, "payload", message.Payload)
			p.handle(ctx, message.Payload, del)
		}
	}
}
