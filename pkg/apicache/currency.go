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
	"github.com/vison888/fxboard/pkg/common/servererrs"
	"github.com/vison888/fxboard/pkg/localcache"
)

func NewCurrencyLocalCache(ctx context.Context, client *apicli.CurrencyClient, localCache *config.LocalCache, retry *config.Retry, rdb redis.UniversalClient) *CurrencyLocalCache {
	lc := localCache.Currency
	pub := newRedisPublisher(rdb, lc.Topic, cachekey.CurrencyKey)
	x := &CurrencyLocalCache{
		client:   client,
		local:    newLocalCache("currency", lc, pub),
		query:    NewRetryPolicy(kindQuery, retry.Query),
		mutation: NewRetryPolicy(kindMutation, retry.Mutation),
	}
	if pub != nil && lc.Enable() {
		go pub.subscriberRedisDeleteCache(ctx, lc.Topic, x.local.DelLocal)
	}
	return x
}

type CurrencyLocalCache struct {
	client   *apicli.CurrencyClient
	local    localcache.Cache[[]byte]
	query    RetryPolicy
	mutation RetryPolicy
}

// get loads key through the cache. Every currency key is linked to
// cachekey.CurrencyKey so one delete invalidates them all.
func get[V any](ctx context.Context, x *CurrencyLocalCache, op string, key string, fetch func(ctx context.Context) (V, error)) (val V, err error) {
	log.ZDebug(ctx, "CurrencyLocalCache "+op+" req", "key", key)
	defer func() {
		if err == nil {
			log.ZDebug(ctx, "CurrencyLocalCache "+op+" return", "key", key)
		} else {
			log.ZError(ctx, "CurrencyLocalCache "+op+" return", err, "key", key)
		}
	}()
	var cache cacheJSON[V]
	return cache.Unmarshal(x.local.GetLink(ctx, key, func(ctx context.Context) ([]byte, error) {
		log.ZDebug(ctx, "CurrencyLocalCache "+op+" api", "key", key)
		return cache.Marshal(retry(ctx, x.query, op, fetch))
	}, cachekey.CurrencyKey))
}

func (x *CurrencyLocalCache) GetCurrencies(ctx context.Context) ([]model.Currency, error) {
	return get(ctx, x, "GetCurrencies", cachekey.GetCurrencyListKey(model.CurrencyFilter{}), x.client.GetCurrencies)
}

func (x *CurrencyLocalCache) GetFilteredCurrencies(ctx context.Context, filter model.CurrencyFilter) ([]model.Currency, error) {
	return get(ctx, x, "GetFilteredCurrencies", cachekey.GetCurrencyFilteredKey(filter), func(ctx context.Context) ([]model.Currency, error) {
		return x.client.GetFilteredCurrencies(ctx, filter)
	})
}

func (x *CurrencyLocalCache) GetCurrenciesByType(ctx context.Context, currencyType model.CurrencyType) ([]model.Currency, error) {
	return x.GetFilteredCurrencies(ctx, model.CurrencyFilter{Type: currencyType})
}

// GetCurrency is disabled for id 0.
func (x *CurrencyLocalCache) GetCurrency(ctx context.Context, id int) (*model.Currency, error) {
	if id <= 0 {
		return nil, servererrs.ErrQueryDisabled.WrapMsg("currency id is empty")
	}
	return get(ctx, x, "GetCurrency", cachekey.GetCurrencyDetailKey(id), func(ctx context.Context) (*model.Currency, error) {
		return x.client.GetCurrency(ctx, id)
	})
}

func (x *CurrencyLocalCache) GetPrices(ctx context.Context, currencyType model.CurrencyType) ([]model.CurrencyPrice, error) {
	return get(ctx, x, "GetPrices", cachekey.GetCurrencyPricesKey(currencyType), func(ctx context.Context) ([]model.CurrencyPrice, error) {
		return x.client.GetCurrencyPrices(ctx, currencyType)
	})
}

// GetPriceHistory is disabled for an empty code.
func (x *CurrencyLocalCache) GetPriceHistory(ctx context.Context, code string) (*model.CurrencyPriceHistory, error) {
	if code == "" {
		return nil, servererrs.ErrQueryDisabled.WrapMsg("currency code is empty")
	}
	return get(ctx, x, "GetPriceHistory", cachekey.GetCurrencyPriceHistoryKey(code), func(ctx context.Context) (*model.CurrencyPriceHistory, error) {
		return x.client.GetCurrencyPriceHistory(ctx, code)
	})
}

func (x *CurrencyLocalCache) CreateCurrency(ctx context.Context, req *model.CreateCurrencyRequest) (*model.Currency, error) {
	c, err := retry(ctx, x.mutation, "CreateCurrency", func(ctx context.Context) (*model.Currency, error) {
		return x.client.CreateCurrency(ctx, req)
	})
	if err != nil {
		log.ZError(ctx, "CurrencyLocalCache CreateCurrency failed", err, "isoCode", req.IsoCode)
		return nil, err
	}
	x.written(ctx, c)
	return c, nil
}

func (x *CurrencyLocalCache) UpdateCurrency(ctx context.Context, req *model.UpdateCurrencyRequest) (*model.Currency, error) {
	c, err := retry(ctx, x.mutation, "UpdateCurrency", func(ctx context.Context) (*model.Currency, error) {
		return x.client.UpdateCurrency(ctx, req)
	})
	if err != nil {
		log.ZError(ctx, "CurrencyLocalCache UpdateCurrency failed", err, "id", req.ID)
		return nil, err
	}
	x.written(ctx, c)
	return c, nil
}

// written invalidates every currency query, then stores c at its detail key.
// Invalidating first keeps the fresh detail, it is linked to the root too.
func (x *CurrencyLocalCache) written(ctx context.Context, c *model.Currency) {
	x.local.Del(ctx, cachekey.CurrencyKey)
	if c == nil || c.ID <= 0 {
		return
	}
	var cache cacheJSON[*model.Currency]
	data, err := cache.Marshal(c, nil)
	if err != nil {
		log.ZWarn(ctx, "CurrencyLocalCache marshal detail failed", err, "id", c.ID)
		return
	}
	x.local.Set(ctx, cachekey.GetCurrencyDetailKey(c.ID), data, cachekey.CurrencyKey)
}

func (x *CurrencyLocalCache) Purge(ctx context.Context) {
	x.local.Purge(ctx)
}

func (x *CurrencyLocalCache) Stop() {
	x.local.Stop()
}
