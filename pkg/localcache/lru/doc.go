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

// Package lru provides the LRU stores behind localcache.
//
// LayLRU checks expiry lazily on access. An entry is fresh for successTTL
// after it was loaded and is kept for retention after it was last read; a
// stale entry still inside its retention window is served while a single
// background fetch refreshes it. Concurrent loads of one key share a single
// fetch.
//
// SlotLRU shards keys over several independent stores to reduce lock
// contention.
package lru // import "github.com/vison888/fxboard/pkg/localcache/lru"
