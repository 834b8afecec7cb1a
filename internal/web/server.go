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
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
	"github.com/vison888/fxboard/pkg/common/config"
)

type Server struct {
	conf   *config.Config
	engine *gin.Engine
}

func NewServer(conf *config.Config, currency CurrencyService, user UserService) *Server {
	return &Server{conf: conf, engine: newRouter(conf, currency, user, time.Now)}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func newRouter(conf *config.Config, currency CurrencyService, user UserService, now func() time.Time) *gin.Engine {
	h := &handler{conf: conf, currency: currency, user: user, now: now}

	r := gin.New()
	r.SetHTMLTemplate(loadTemplates())
	r.Use(recovery(), operationID(), accessLog(), gzip.Gzip(gzip.DefaultCompression),
		credentials(&conf.Auth), authGate(&conf.Auth))

	r.StaticFS("/static", staticFiles())
	r.GET("/favicon.ico", favicon)

	r.GET(conf.Auth.LoginPath, h.loginPage)
	r.POST(conf.Auth.LoginPath, h.login)
	r.GET("/logout", h.logout)
	r.POST("/logout", h.logout)

	r.GET("/", h.home)
	r.GET("/currencies/new", h.newCurrency)
	r.POST("/currencies", h.createCurrency)
	r.GET("/currencies/:code/details", h.details)
	r.GET("/currencies/:code/edit", h.editCurrency)
	r.POST("/currencies/:code", h.updateCurrency)
	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if len(s.conf.API.Ports) == 0 {
		return errs.ErrArgs.WrapMsg("api ports is empty")
	}
	server := &http.Server{
		Addr:              net.JoinHostPort(s.conf.API.ListenIP, strconv.Itoa(s.conf.API.Ports[0])),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	netDone := make(chan error, 1)
	go func() {
		log.ZInfo(ctx, "http server listening", "addr", server.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			netDone <- errs.WrapMsg(err, "http start err", "addr", server.Addr)
		}
		close(netDone)
	}()

	select {
	case <-ctx.Done():
		timeout := time.Duration(s.conf.API.ShutdownTimeout) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errs.WrapMsg(err, "shutdown err")
		}
		log.ZInfo(ctx, "http server stopped", "addr", server.Addr)
		return nil
	case err := <-netDone:
		return err
	}
}
