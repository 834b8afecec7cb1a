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

	"github.com/openimsdk/tools/log"
	"github.com/redis/go-redis/v9"
	"github.com/vison888/fxboard/pkg/apicli"
	"github.com/vison888/fxboard/pkg/common/cachekey"
	"github.com/vison888/fxboard/pkg/common/config"
	"github.com/vison888/fxboard/pkg/common/model"
	"github.com/vison888/fxboard/pkg/common/prommetrics"
	"github.com/vison888/fxboard/pkg/common/servererrs"
	"github.com/vison888/fxboard/pkg/localcache"
)

// TokenStore is a Credentials that can also persist a new token.
type TokenStore interface {
	apicli.Credentials
	SetToken(ctx context.Context, token string)
}

// Purger is any cache cleared on logout.
type Purger interface {
	Purge(ctx context.Context)
}

func NewUserLocalCache(ctx context.Context, client *apicli.UserClient, localCache *config.LocalCache, retry *config.Retry, rdb redis.UniversalClient, purge ...Purger) *UserLocalCache {
	lc := localCache.User
	pub := newRedisPublisher(rdb, lc.Topic, cachekey.UserKey)
	x := &UserLocalCache{
		client:   client,
		local:    newLocalCache("user", lc, pub),
		mutation: NewRetryPolicy(kindMutation, retry.Mutation),
		purge:    purge,
	}
	if pub != nil && lc.Enable() {
		go pub.subscriberRedisDeleteCache(ctx, lc.Topic, x.local.DelLocal)
	}
	return x
}

// UserLocalCache holds no entries of its own yet. Login deletes its root key,
// which notifies subscribers and sibling instances that user data changed.
type UserLocalCache struct {
	client   *apicli.UserClient
	local    localcache.Cache[[]byte]
	mutation RetryPolicy
	purge    []Purger
}

// Login stores the returned token in the request's TokenStore and
// invalidates every user key. A failed login clears the stored token.
func (u *UserLocalCache) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	log.ZDebug(ctx, "UserLocalCache Login req", "phonePrefix", req.PhonePrefix, "phone", req.Phone)
	creds := apicli.CredentialsFrom(ctx)

	resp, err := retry(ctx, u.mutation, "Login", func(ctx context.Context) (*model.LoginResponse, error) {
		return u.client.Login(ctx, req)
	})
	if err == nil && (resp == nil || resp.Token == "") {
		err = servererrs.ErrLoginFailed.WrapMsg("login response has no token")
	}
	if err != nil {
		log.ZError(ctx, "Login failed", err, "phone", req.Phone)
		if creds != nil {
			creds.Clear(ctx)
		}
		return nil, err
	}

	if store, ok := creds.(TokenStore); ok {
		store.SetToken(ctx, resp.Token)
	}
	u.local.Del(ctx, cachekey.UserKey)
	prommetrics.UserLoginCounter.Inc()
	log.ZInfo(ctx, "UserLocalCache Login success", "phone", req.Phone)
	return resp, nil
}

// Logout clears the stored token and every cached query.
func (u *UserLocalCache) Logout(ctx context.Context) {
	if creds := apicli.CredentialsFrom(ctx); creds != nil {
		creds.Clear(ctx)
	}
	u.local.Purge(ctx)
	for _, p := range u.purge {
		p.Purge(ctx)
	}
	log.ZInfo(ctx, "UserLocalCache Logout")
}

func (u *UserLocalCache) Stop() {
	u.local.Stop()
}
