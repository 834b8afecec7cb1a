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

// CacheTarget counts the operations of one named local cache.
type CacheTarget struct {
	Name string
}

func (c CacheTarget) inc(op string) {
	CacheOpCounter.WithLabelValues(c.Name, op).Inc()
}

func (c CacheTarget) IncrGetHit() { c.inc("get_hit") }

func (c CacheTarget) IncrGetStale() { c.inc("get_stale") }

func (c CacheTarget) IncrGetSuccess() { c.inc("get_success") }

func (c CacheTarget) IncrGetFailed() { c.inc("get_failed") }

func (c CacheTarget) IncrDelHit() { c.inc("del_hit") }

func (c CacheTarget) IncrDelNotFound() { c.inc("del_not_found") }

// CacheEvent records one change notification and the cache size after it.
func CacheEvent(cache, event string, entries int) {
	CacheEventCounter.WithLabelValues(cache, event).Inc()
	CacheEntriesGauge.WithLabelValues(cache).Set(float64(entries))
}
