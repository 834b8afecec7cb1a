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

package prommetrics

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/openimsdk/tools/errs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpstreamCallCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_call_total",
		Help: "Calls made to the REST API by method, path and status code",
	}, []string{"method", "path", "code"})
	UpstreamRetryCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_retry_total",
		Help: "Retried REST API operations by kind (query or mutation)",
	}, []string{"kind"})
	CacheOpCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "local_cache_op_total",
		Help: "Local cache operations by cache and result",
	}, []string{"cache", "op"})
	CacheEventCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "local_cache_event_total",
		Help: "Local cache change notifications by cache and event type",
	}, []string{"cache", "event"})
	CacheEntriesGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "local_cache_entries",
		Help: "Entries currently held by each local cache",
	}, []string{"cache"})
	HTTPCallCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_call_total",
		Help: "Inbound page requests by route and status code",
	}, []string{"path", "method", "code"})
	UserLoginCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_login_total",
		Help: "Successful logins",
	})
)

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		UpstreamCallCounter,
		UpstreamRetryCounter,
		CacheOpCounter,
		CacheEventCounter,
		CacheEntriesGauge,
		HTTPCallCounter,
		UserLoginCounter,
	)
	return reg
}

// Start serves /metrics on listener until it is closed.
func Start(listener net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(NewRegistry(), promhttp.HandlerOpts{}))
	if err := http.Serve(listener, mux); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
		return errs.WrapMsg(err, "prometheus serve failed", "addr", listener.Addr().String())
	}
	return nil
}

func UpstreamCall(method, path string, code int) {
	UpstreamCallCounter.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
}

func HTTPCall(path, method string, code int) {
	HTTPCallCounter.WithLabelValues(path, method, strconv.Itoa(code)).Inc()
}
