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

package web

import (
	"context"
	"net/http"
	"sync"

	"github.com/openimsdk/tools/log"
	"github.com/vison888/fxboard/pkg/apicache"
	"github.com/vison888/fxboard/pkg/common/config"
)

// cookieCredentials keeps the bearer token in the auth cookie of one
// request. Shared cache loads can outlive the request, so writes after the
// handler returned are dropped.
type cookieCredentials struct {
	conf *config.Auth

	lock  sync.Mutex
	w     http.ResponseWriter
	token string
	done  bool
}

func newCookieCredentials(conf *config.Auth, w http.ResponseWriter, r *http.Request) *cookieCredentials {
	x := &cookieCredentials{conf: conf, w: w}
	if cookie, err := r.Cookie(conf.CookieName); err == nil {
		x.token = cookie.Value
	}
	return x
}

func (x *cookieCredentials) Token(ctx context.Context) string {
	x.lock.Lock()
	defer x.lock.Unlock()
	return x.token
}

func (x *cookieCredentials) Clear(ctx context.Context) {
	x.lock.Lock()
	defer x.lock.Unlock()
	x.token = ""
	x.write(ctx, &http.Cookie{Name: x.conf.CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

func (x *cookieCredentials) SetToken(ctx context.Context, token string) {
	x.lock.Lock()
	defer x.lock.Unlock()
	x.token = token
	x.write(ctx, &http.Cookie{
		Name:     x.conf.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(x.conf.MaxAge().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (x *cookieCredentials) write(ctx context.Context, cookie *http.Cookie) {
	if x.done {
		log.ZDebug(ctx, "request finished, cookie dropped", "name", cookie.Name, "maxAge", cookie.MaxAge)
		return
	}
	http.SetCookie(x.w, cookie)
}

func (x *cookieCredentials) finish() {
	x.lock.Lock()
	defer x.lock.Unlock()
	x.done = true
	x.w = nil
}

var _ apicache.TokenStore = (*cookieCredentials)(nil)
