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

// Package link tracks which cache keys depend on which. A key linked to a
// parent is removed whenever that parent is removed, transitively. Removing a
// child never touches its parent or siblings.
//
//	l := New(10)
//	l.Link("currencies:detail:1", "currencies")
//	l.Link("currencies:list:{}", "currencies")
//	l.Del("currencies") // {"currencies", "currencies:detail:1", "currencies:list:{}"}
package link // import "github.com/vison888/fxboard/pkg/localcache/link"
