// Copyright © 2023 OpenIM. All rights reserved.
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

// Package fxboard wires the upstream client, the query caches and the web
// server into one process.
package fxboard

import (
	"context"
	"net"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
	"github.com/redis/go-redis/v9"
	"github.com/vison888/fxboard/internal/web"
	"github.com/vison888/fxboard/pkg/apicache"
	"github.com/vison888/fxboard/pkg/apicli"
	"github.com/vison888/fxboard/pkg/common/config"
	"github.com/vison888/fxboard/pkg/common/prommetrics"
)

func Start(ctx context.Context, conf *config.Config) error {
	log.ZInfo(ctx, "fxboard starting", "upstream", conf.Upstream.BaseURL, "ports", conf.API.Ports)
	gin.SetMode(gin.ReleaseMode)

	var rdb redis.UniversalClient
	if conf.Redis.Enable {
		client, err := newRedis(ctx, &conf.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		rdb = client
	}

	if conf.Prometheus.Enable && len(conf.Prometheus.Ports) > 0 {
		listener, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(conf.Prometheus.Ports[0])))
		if err != nil {
			return errs.WrapMsg(err, "prometheus listen failed", "port", conf.Prometheus.Ports[0])
		}
		defer listener.Close()
		go func() {
			if err := prommetrics.Start(listener); err != nil {
				log.ZError(ctx, "prometheus stopped", err)
			}
		}()
	}

	cli, err := apicli.NewClient(&conf.Upstream)
	if err != nil {
		return err
	}
	currency := apicache.NewCurrencyLocalCache(ctx, apicli.NewCurrencyClient(cli), &conf.LocalCache, &conf.Retry, rdb)
	defer currency.Stop()
	user := apicache.NewUserLocalCache(ctx, apicli.NewUserClient(cli), &conf.LocalCache, &conf.Retry, rdb, currency)
	defer user.Stop()

	return web.NewServer(conf, currency, user).Run(ctx)
}

func newRedis(ctx context.Context, conf *config.Redis) (redis.UniversalClient, error) {
	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    conf.Address,
		Username: conf.Username,
		Password: conf.Password,
		DB:       conf.DB,
		PoolSize: conf.PoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errs.WrapMsg(err, "redis ping failed", "address", conf.Address)
	}
	log.ZInfo(ctx, "redis connected", "address", conf.Address)
	return rdb, nil
}
