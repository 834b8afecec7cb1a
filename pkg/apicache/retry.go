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
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openimsdk/tools/log"
	"github.com/vison888/fxboard/pkg/apicli"
	"github.com/vison888/fxboard/pkg/common/config"
	"github.com/vison888/fxboard/pkg/common/prommetrics"
)

const (
	kindQuery    = "query"
	kindMutation = "mutation"
)

// RetryPolicy retries failed calls with a delay of BaseDelay*2^n, capped at
// MaxDelay. Client errors (4xx) are returned at once.
type RetryPolicy struct {
	Kind       string
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func NewRetryPolicy(kind string, conf config.RetryPolicy) RetryPolicy {
	return RetryPolicy{
		Kind:       kind,
		MaxRetries: conf.MaxRetries,
		BaseDelay:  conf.Base(),
		MaxDelay:   conf.Max(),
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = p.MaxDelay
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(p.MaxRetries, 0))), ctx)
}

func retry[T any](ctx context.Context, p RetryPolicy, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var attempt int
	return backoff.RetryNotifyWithData(func() (T, error) {
		val, err := fn(ctx)
		if err != nil && apicli.IsClientError(err) {
			return val, backoff.Permanent(err)
		}
		return val, err
	}, p.backOff(ctx), func(err error, delay time.Duration) {
		attempt++
		prommetrics.UpstreamRetryCounter.WithLabelValues(p.Kind).Inc()
		log.ZWarn(ctx, "retry "+op, err, "kind", p.Kind, "attempt", attempt, "delay", delay)
	})
}
