package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/spellbound/internal/auth"
	"github.com/abhisek/spellbound/internal/glossary"
	"github.com/abhisek/spellbound/internal/grades"
	"github.com/abhisek/spellbound/internal/practice"
	"github.com/abhisek/spellbound/internal/stats"
	"github.com/abhisek/spellbound/internal/store"
)

var (
	errUnknownGrade = errors.New("Unknown grade")
	errNoRound      = errors.New("Round not found")
	errNoMistake    = errors.New("Mistake not found")
)

type errorResponse struct {
	Error string `json:"error"`
}

type roundRequest struct {
	Grade      string `json:"grade"`
	TargetWord string `json:"targetWord"`
}

type roundResponse struct {
	ID              string `json:"id"`
	Text            string `json:"text"`
	Hint            string `json:"hint"`
	Grade           string `json:"grade"`
	TargetWord      string `json:"targetWord,omitempty"`
	TargetMistakeID string `json:"targetMistakeId,omitempty"`
	Fallback        bool   `json:"fallback"`
	Audio           string `json:"audio"`
	SampleRate      int    `json:"sampleRate"`
}

type checkRequest struct {
	Attempt string `json:"attempt"`
}

// fail maps err to a status code and writes it as JSON.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := practice.GenericErrorMessage
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, auth.ErrUnknownUser), errors.Is(err, errNoRound), errors.Is(err, errNoMistake):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, auth.ErrEmailMismatch):
		status, msg = http.StatusUnauthorized, err.Error()
	case auth.IsUserError(err), errors.Is(err, errUnknownGrade):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, practice.ErrEmptyAttempt):
		status, msg = http.StatusBadRequest, "Please type the sentence"
	case errors.Is(err, practice.ErrAudioUnavailable):
		status = http.StatusBadGateway
	default:
		s.logger.WithError(err).WithField("path", c.FullPath()).Error("request error")
	}
	c.JSON(status, errorResponse{Error: msg})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listGrades(c *gin.Context) {
	c.JSON(http.StatusOK, grades.All)
}

func (s *Server) register(c *gin.Context) {
	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		s.fail(c, auth.ErrMissingFields)
		return
	}
	u, err := s.auth.Register(c.Request.Context(), creds)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (s *Server) login(c *gin.Context) {
	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		s.fail(c, auth.ErrMissingFields)
		return
	}
	u, err := s.auth.Login(c.Request.Context(), creds)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) available(c *gin.Context) {
	ok, err := s.auth.Available(c.Request.Context(), c.Param("username"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": ok})
}

func (s *Server) createRound(c *gin.Context) {
	var req roundRequest
	if err := c.ShouldBindJSON(&req); err != nil || !grades.Valid(req.Grade) {
		s.fail(c, errUnknownGrade)
		return
	}
	username := c.Param("username")
	r, err := s.practice.NewRound(c.Request.Context(), username, req.Grade, req.TargetWord)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.putRound(r)

	c.JSON(http.StatusCreated, roundResponse{
		ID:              r.ID,
		Text:            r.Sentence.Text,
		Hint:            r.Sentence.Hint,
		Grade:           r.Grade,
		TargetWord:      r.TargetWord,
		TargetMistakeID: r.TargetMistakeID,
		Fallback:        r.Sentence.Fallback,
		Audio:           r.Audio.Base64(),
		SampleRate:      r.Audio.SampleRate,
	})
}

func (s *Server) checkRound(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, practice.ErrEmptyAttempt)
		return
	}
	username := c.Param("username")
	r, ok := s.takeRound(username, c.Param("id"))
	if !ok {
		s.fail(c, errNoRound)
		return
	}
	out, err := s.practice.Check(c.Request.Context(), r, req.Attempt)
	if err != nil {
		// The round stays open so the learner can try again.
		s.restoreRound(r)
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listMistakes(c *gin.Context) {
	list := s.glossary.List(c.Request.Context(), c.Param("username"))
	list = glossary.Filter(list, c.Query("q"), c.Query("grade"))
	if list == nil {
		list = []glossary.Record{}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) deleteMistake(c *gin.Context) {
	ctx := c.Request.Context()
	rec, err := s.glossary.Get(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) || (err == nil && rec.Username != c.Param("username")) {
		s.fail(c, errNoMistake)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.glossary.Delete(ctx, rec.ID); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listSessions(c *gin.Context) {
	list, err := s.sessions.List(c.Request.Context(), c.Param("username"), 0)
	if err != nil {
		s.fail(c, err)
		return
	}
	if list == nil {
		list = []store.PracticeSession{}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) stats(c *gin.Context) {
	list, err := s.sessions.List(c.Request.Context(), c.Param("username"), 0)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.Summarize(list))
}
