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
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openimsdk/tools/log"
	"github.com/vison888/fxboard/pkg/common/model"
)

const (
	loginPending = "pending"
	loginError   = "error"
	loginSuccess = "success"
)

type loginPage struct {
	State     string
	LoginPath string
	// RedirectMS and RedirectSeconds are the delay before going home.
	RedirectMS      int
	RedirectSeconds string
}

func (h *handler) newLoginPage(state string) *loginPage {
	ms := h.conf.Auth.RedirectDelay
	return &loginPage{
		State:           state,
		LoginPath:       h.conf.Auth.LoginPath,
		RedirectMS:      ms,
		RedirectSeconds: strconv.FormatFloat(float64(ms)/1000, 'f', -1, 64),
	}
}

// loginPage shows the pending state and submits the login form by itself.
func (h *handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.newLoginPage(loginPending))
}

// login signs in with the configured account.
func (h *handler) login(c *gin.Context) {
	ctx := c.Request.Context()
	auth := h.conf.Auth
	_, err := h.user.Login(ctx, &model.LoginRequest{
		PhonePrefix:   auth.PhonePrefix,
		Phone:         auth.Phone,
		Password:      auth.Password,
		FirebaseToken: auth.FirebaseToken,
	})
	if err != nil {
		_, status := h.upstreamFailed(c, "auto login failed", err)
		c.HTML(status, "login.html", h.newLoginPage(loginError))
		return
	}
	log.ZInfo(ctx, "auto login success", "phone", auth.Phone)
	c.HTML(http.StatusOK, "login.html", h.newLoginPage(loginSuccess))
}

func (h *handler) logout(c *gin.Context) {
	h.user.Logout(c.Request.Context())
	c.Redirect(http.StatusSeeOther, h.conf.Auth.LoginPath)
}
