// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the Markdown converter over HTTP.
//
// The service has two routes:
// GET / serves a small conversion page,
// and POST /to-html converts the raw request body,
// answering text/html.
// Any failure in the pipeline produces
// a 500 response with the body "Error".
package server

import (
	_ "embed"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"zombiezen.com/go/gfm"
)

// DefaultAddr is the address Run listens on
// when none is given.
const DefaultAddr = "0.0.0.0:8082"

//go:embed index.html
var indexPage []byte

// A Server converts Markdown over HTTP.
type Server struct {
	log    *slog.Logger
	engine *gin.Engine
}

// New builds a Server with its routes registered.
// A nil logger falls back to [slog.Default].
func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{log: log, engine: gin.New()}
	s.engine.Use(s.recovery())
	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/to-html", s.handleConvert)
	return s
}

// Handler returns the server's routes as an [http.Handler].
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr (DefaultAddr if empty) and serves until failure.
func (s *Server) Run(addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	s.log.Info("listening", "addr", addr)
	return s.engine.Run(addr)
}

// recovery turns any panic in a handler
// into a plain 500 "Error" response.
func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("conversion failed", "panic", r, "path", c.Request.URL.Path)
				s.fail(c)
			}
		}()
		c.Next()
	}
}

func (s *Server) fail(c *gin.Context) {
	c.Abort()
	c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("Error"))
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (s *Server) handleConvert(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.log.Error("read request", "error", err)
		s.fail(c)
		return
	}
	out := gfm.ToHTML(string(body))
	s.log.Info("converted", "bytes_in", len(body), "bytes_out", len(out))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}
