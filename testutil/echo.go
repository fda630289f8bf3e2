package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restbind/component"
)

// Exchange is one request as the echo server received it.
type Exchange struct {
	Method     string
	RequestURI string
	Header     http.Header
	Body       string
}

// EchoServer records requests and echoes the request line.
type EchoServer struct {
	mu        sync.Mutex
	server    *httptest.Server
	exchanges []Exchange
}

var _ TestComponent = (*EchoServer)(nil)

// NewEchoServer creates a stopped echo server.
func NewEchoServer() *EchoServer {
	return &EchoServer{}
}

func (s *EchoServer) handler() http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(s.record)
	r.Any("/status/:code", func(c *gin.Context) {
		code, err := strconv.Atoi(c.Param("code"))
		if err != nil || code < 100 || code > 999 {
			c.String(http.StatusBadRequest, "bad status %q", c.Param("code"))
			return
		}
		c.String(code, "status %d", code)
	})
	r.Any("/slow/:millis", func(c *gin.Context) {
		ms, _ := strconv.Atoi(c.Param("millis"))
		select {
		case <-time.After(time.Duration(ms) * time.Millisecond):
		case <-c.Request.Context().Done():
			return
		}
		echo(c)
	})
	r.NoRoute(echo)
	return r
}

// record stores the exchange before any handler runs.
func (s *EchoServer) record(c *gin.Context) {
	body, _ := c.GetRawData()
	s.mu.Lock()
	s.exchanges = append(s.exchanges, Exchange{
		Method:     c.Request.Method,
		RequestURI: c.Request.RequestURI,
		Header:     c.Request.Header.Clone(),
		Body:       string(body),
	})
	s.mu.Unlock()
	c.Next()
}

func echo(c *gin.Context) {
	c.String(http.StatusOK, "%s %s", c.Request.Method, c.Request.RequestURI)
}

// Name implements component.Component.
func (s *EchoServer) Name() string { return "echo-server" }

// Start begins serving on a loopback port.
func (s *EchoServer) Start(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return fmt.Errorf("echo server already started")
	}
	s.server = httptest.NewServer(s.handler())
	return nil
}

// Stop shuts the server down.
func (s *EchoServer) Stop(context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
	return nil
}

// Health reports whether the server is running.
func (s *EchoServer) Health(context.Context) component.Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// URL returns the base URL of a started server.
func (s *EchoServer) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return ""
	}
	return s.server.URL
}

// Exchanges returns the recorded exchanges in arrival order.
func (s *EchoServer) Exchanges() []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Exchange(nil), s.exchanges...)
}

// Last returns the most recent exchange, or a zero Exchange.
func (s *EchoServer) Last() Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.exchanges) == 0 {
		return Exchange{}
	}
	return s.exchanges[len(s.exchanges)-1]
}

// Reset forgets the recorded exchanges.
func (s *EchoServer) Reset(context.Context) error {
	s.mu.Lock()
	s.exchanges = nil
	s.mu.Unlock()
	return nil
}

// Snapshot returns the recorded exchanges.
func (s *EchoServer) Snapshot(context.Context) (any, error) {
	return s.Exchanges(), nil
}

// Restore replaces the recorded exchanges.
func (s *EchoServer) Restore(_ context.Context, snapshot any) error {
	exchanges, ok := snapshot.([]Exchange)
	if !ok {
		return fmt.Errorf("echo server: invalid snapshot type %T", snapshot)
	}
	s.mu.Lock()
	s.exchanges = append([]Exchange(nil), exchanges...)
	s.mu.Unlock()
	return nil
}
