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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openimsdk/tools/log"
	"github.com/vison888/fxboard/internal/web/view"
	"github.com/vison888/fxboard/pkg/apicli"
	"github.com/vison888/fxboard/pkg/common/config"
)

type handler struct {
	conf     *config.Config
	currency CurrencyService
	user     UserService
	now      func() time.Time
}

// upstreamFailed logs err and returns the message and status to render.
// A 401 drops the auth cookie, the next navigation goes to the login page.
func (h *handler) upstreamFailed(c *gin.Context, msg string, err error) (string, int) {
	ctx := c.Request.Context()
	log.ZError(ctx, msg, err, "path", c.Request.URL.Path)
	status := apicli.StatusCode(err)
	if status == http.StatusUnauthorized {
		if creds := apicli.CredentialsFrom(ctx); creds != nil {
			creds.Clear(ctx)
		}
	}
	if status < 400 || status >= 500 {
		status = http.StatusBadGateway
	}
	return view.ErrorMessage(apicli.Message(err)), status
}
