// Package api serves the bot's HTTP views: status and trade history as
// JSON, Prometheus metrics, and a websocket stream of status updates.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rustyeddy/simbot/sim"
)

// Server exposes read-only views over a running engine. It never mutates
// engine state.
type Server struct {
	engine   *sim.Engine
	hub      *Hub
	gatherer prometheus.Gatherer
	log      *zap.Logger
	started  time.Time

	upgrader websocket.Upgrader
}

func NewServer(engine *sim.Engine, hub *Hub, g prometheus.Gatherer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		engine:   engine,
		hub:      hub,
		gatherer: g,
		log:      log,
		started:  time.Now().UTC(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard is served from arbitrary hosts in demos.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(s.log))
	r.Use(RateLimit(rate.Limit(20), 50))

	r.GET("/", s.handleIndex)
	r.GET("/health", s.handleHealth)
	r.GET("/status", s.handleStatus)
	r.GET("/trades", s.handleTrades)
	r.GET("/ws", s.handleWS)

	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	return r
}

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "simbot",
		"status":  "running",
		"endpoints": []string{
			"/health", "/status", "/trades", "/metrics", "/ws",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Status())
}

func (s *Server) handleTrades(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Trades())
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	s.hub.Add(conn)

	// Push a fresh snapshot so the new client does not wait a full
	// interval for its first frame.
	s.hub.Broadcast(s.engine.Status())
}
