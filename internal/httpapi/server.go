// Package httpapi exposes the practice flow as a JSON API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/spellbound/internal/auth"
	"github.com/abhisek/spellbound/internal/glossary"
	"github.com/abhisek/spellbound/internal/practice"
	"github.com/abhisek/spellbound/internal/store"
)

// Deps are the services the API is built on.
type Deps struct {
	Auth     *auth.Service
	Glossary *glossary.Service
	Practice *practice.Service
	Sessions store.SessionRepo
	Logger   logrus.FieldLogger
}

// Server holds the API handlers and the in-flight rounds.
type Server struct {
	auth     *auth.Service
	glossary *glossary.Service
	practice *practice.Service
	sessions store.SessionRepo
	logger   logrus.FieldLogger

	mu     sync.Mutex
	rounds map[string]*practice.Round // by username; one open round each
}

// New creates a Server.
func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	return &Server{
		auth:     d.Auth,
		glossary: d.Glossary,
		practice: d.Practice,
		sessions: d.Sessions,
		logger:   d.Logger.WithField("component", "httpapi"),
		rounds:   make(map[string]*practice.Round),
	}
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.healthz)

	api := r.Group("/api")
	api.GET("/grades", s.listGrades)
	api.POST("/register", s.register)
	api.POST("/login", s.login)
	api.GET("/users/:username/available", s.available)

	user := api.Group("/users/:username", s.requireUser())
	user.POST("/rounds", s.createRound)
	user.POST("/rounds/:id/check", s.checkRound)
	user.GET("/mistakes", s.listMistakes)
	user.DELETE("/mistakes/:id", s.deleteMistake)
	user.GET("/sessions", s.listSessions)
	user.GET("/stats", s.stats)

	return r
}

// Run serves the API on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := s.logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request")
	}
}

// requireUser rejects requests for learners that are not registered.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := s.auth.Lookup(c.Request.Context(), c.Param("username"))
		if err != nil {
			s.fail(c, err)
			c.Abort()
			return
		}
		c.Set("user", u)
		c.Next()
	}
}

func (s *Server) putRound(r *practice.Round) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds[r.Username] = r
}

// restoreRound puts back a round taken for checking, unless the user has
// opened a newer one in the meantime.
func (s *Server) restoreRound(r *practice.Round) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rounds[r.Username]; !ok {
		s.rounds[r.Username] = r
	}
}

// takeRound removes and returns the user's open round when its id matches.
func (s *Server) takeRound(username, id string) (*practice.Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rounds[username]
	if !ok || r.ID != id {
		return nil, false
	}
	delete(s.rounds, username)
	return r, true
}
