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
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
	"github.com/openimsdk/tools/mcontext"
	"github.com/vison888/fxboard/pkg/apicli"
	"github.com/vison888/fxboard/pkg/common/config"
	"github.com/vison888/fxboard/pkg/common/prommetrics"
)

const headerOperationID = "X-Operation-ID"

func operationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerOperationID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerOperationID, id)
		c.Request = c.Request.WithContext(mcontext.SetOperationID(c.Request.Context(), id))
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		status := c.Writer.Status()
		prommetrics.HTTPCall(path, c.Request.Method, status)
		log.ZInfo(c.Request.Context(), "http request", "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", status, "cost", time.Since(start))
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, r any) {
		log.ZError(c.Request.Context(), "http handler panic", errs.ErrPanic(r), "path", c.Request.URL.Path)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// credentials makes the auth cookie the request's apicli.Credentials.
func credentials(conf *config.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds := newCookieCredentials(conf, c.Writer, c.Request)
		defer creds.finish()
		c.Request = c.Request.WithContext(apicli.WithCredentials(c.Request.Context(), creds))
		c.Next()
	}
}

func gateExempt(path string, conf *config.Auth) bool {
	return path == conf.LoginPath || path == "/favicon.ico" || strings.HasPrefix(path, "/static/")
}

// authGate redirects to the login page when the auth cookie is missing.
// The token itself is not checked here, the API rejects a bad one with 401.
func authGate(conf *config.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gateExempt(c.Request.URL.Path, conf) {
			c.Next()
			return
		}
		if token, err := c.Cookie(conf.CookieName); err != nil || token == "" {
			log.ZDebug(c.Request.Context(), "no token, redirect to login", "path", c.Request.URL.Path)
			c.Redirect(http.StatusFound, conf.LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
