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

// Package localcache is the in-process query cache.
//
// Every entry is addressed by a string key. A key may be linked to parent keys
// so that deleting a parent removes all of its dependents, e.g. every
// currency query is linked to "currencies". Loads of the same key are
// coalesced, fresh entries are served from memory and stale ones are served
// while a background load refreshes them.
package localcache // import "github.com/vison888/fxboard/pkg/localcache"
