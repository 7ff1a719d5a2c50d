package devserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"quizez/internal/config"
	"quizez/pkg/quiz"
	"quizez/pkg/wire"
)

// Server hosts quiz sessions over WebSocket. It exists so the client can be
// developed and exercised end to end without a deployed backend, and it
// implements the full event catalogue a production server speaks.
type Server struct {
	cfg      *config.ServerConfig
	log      *zap.Logger
	reg      *registry
	metrics  *metrics
	upgrader websocket.Upgrader
}

func New(cfg *config.ServerConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:     cfg,
		log:     log,
		reg:     newRegistry(cfg.SessionCodeLength),
		metrics: newMetrics(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Local dev tool: any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP surface: the WebSocket endpoint plus health and
// metrics for anything that wants to scrape the dev server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	r.Get("/ws", s.serveWS)
	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("dev server listening", zap.String("addr", s.cfg.Addr()))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	s.metrics.connections.Inc()

	c := newConn(uuid.NewString(), ws, s.log)
	go c.writePump()
	c.readPump(s)

	s.disconnected(c)
	c.shutdown()
}

// dispatch routes one client frame to its handler.
func (s *Server) dispatch(c *conn, event string, data wire.Payload) {
	s.metrics.events.WithLabelValues(event).Inc()

	switch event {
	case wire.EventCreateSession:
		s.handleCreateSession(c)
	case wire.EventJoinSession:
		s.handleJoinSession(c, data)
	case wire.EventKickUser:
		s.handleKickUser(c, data)
	case wire.EventStartSession:
		s.handleStartSession(c, data)
	case wire.EventEndSession:
		s.handleEndSession(c, data)
	case wire.EventAddQuestion:
		s.handleAddQuestion(c, data)
	case wire.EventNextQuestion:
		s.handleNextQuestion(c, data)
	case wire.EventSubmitResponse:
		s.handleSubmitResponse(c, data)
	case wire.EventSubmitFeedback:
		s.handleSubmitFeedback(c, data)
	case wire.EventSendHint:
		s.handleSendHint(c, data)
	default:
		s.log.Warn("unknown event", zap.String("event", event))
	}
}

func failure(session, reason string) wire.Payload {
	p := wire.Payload{"reason": reason}
	if session != "" {
		p["session"] = session
	}
	return p
}

func (s *Server) handleCreateSession(c *conn) {
	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	if s.reg.byConn[c.id] != nil {
		s.log.Warn("create session from socket already in a session", zap.String("conn", c.id))
		return
	}

	sess := &session{
		id:      s.reg.newCode(),
		owner:   c,
		members: make(map[string]*conn),
		current: -1,
	}
	s.reg.sessions[sess.id] = sess
	s.reg.byConn[c.id] = sess
	s.metrics.sessionsCreated.Inc()
	s.metrics.activeSessions.Inc()

	s.log.Info("session created", zap.String("session", sess.id))
	c.enqueue(wire.EventCreatedSession, wire.Payload{"session": sess.id})
}

func (s *Server) handleJoinSession(c *conn, data wire.Payload) {
	req, err := wire.DecodeJoinSessionRequest(data)
	if err != nil {
		c.enqueue(wire.EventJoinFailed, failure("", err.Error()))
		return
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	sess, ok := s.reg.sessions[req.Session]
	switch {
	case !ok:
		c.enqueue(wire.EventJoinFailed, failure(req.Session, "no such session"))
	case sess.ended:
		c.enqueue(wire.EventJoinFailed, failure(req.Session, "session has ended"))
	case req.Name == "":
		c.enqueue(wire.EventJoinFailed, failure(req.Session, "display name required"))
	case sess.members[req.Name] != nil:
		c.enqueue(wire.EventJoinFailed, failure(req.Session, "name already taken"))
	case s.reg.byConn[c.id] != nil:
		c.enqueue(wire.EventJoinFailed, failure(req.Session, "socket already in a session"))
	default:
		sess.members[req.Name] = c
		s.reg.byConn[c.id] = sess
		s.log.Info("user joined", zap.String("session", sess.id), zap.String("name", req.Name))
		sess.fanout(wire.EventJoinSuccess, wire.Payload{"session": sess.id, "name": req.Name})
	}
}

func (s *Server) handleKickUser(c *conn, data wire.Payload) {
	req, err := wire.DecodeKickUserRequest(data)
	if err != nil {
		c.enqueue(wire.EventKickFailed, failure("", err.Error()))
		return
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	sess, reason := s.ownedSession(c, req.Session)
	if reason != "" {
		c.enqueue(wire.EventKickFailed, failure(req.Session, reason))
		return
	}
	target, ok := sess.members[req.Name]
	if !ok {
		c.enqueue(wire.EventKickFailed, failure(req.Session, "no such user"))
		return
	}

	// The eviction notice must reach the kicked socket too, so broadcast
	// before removing it from the session.
	sess.fanout(wire.EventKickSuccess, wire.Payload{"session": sess.id, "name": req.Name})
	delete(sess.members, req.Name)
	delete(s.reg.byConn, target.id)
	s.log.Info("user kicked", zap.String("session", sess.id), zap.String("name", req.Name))
}

func (s *Server) handleStartSession(c *conn, data wire.Payload) {
	req, err := wire.DecodeStartSessionRequest(data)
	if err != nil {
		c.enqueue(wire.EventStartFailed, failure("", err.Error()))
		return
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	sess, reason := s.ownedSession(c, req.Session)
	switch {
	case reason != "":
		c.enqueue(wire.EventStartFailed, failure(req.Session, reason))
	case sess.started:
		c.enqueue(wire.EventStartFailed, failure(req.Session, "session already started"))
	default:
		sess.started = true
		s.log.Info("session started", zap.String("session", sess.id))
		sess.fanout(wire.EventSessionStarted, wire.Payload{"session": sess.id})
	}
}

func (s *Server) handleEndSession(c *conn, data wire.Payload) {
	req, err := wire.DecodeEndSessionRequest(data)
	if err != nil {
		c.enqueue(wire.EventEndFailed, failure("", err.Error()))
		return
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	sess, reason := s.ownedSession(c, req.Session)
	switch {
	case reason != "":
		c.enqueue(wire.EventEndFailed, failure(req.Session, reason))
	case !sess.started:
		c.enqueue(wire.EventEndFailed, failure(req.Session, "session not started"))
	case sess.ended:
		c.enqueue(wire.EventEndFailed, failure(req.Session, "session already ended"))
	default:
		sess.ended = true
		s.log.Info("session ended", zap.String("session", sess.id))
		sess.fanout(wire.EventSessionEnded, wire.Payload{"session": sess.id})
	}
}

func (s *Server) handleAddQuestion(c *conn, data wire.Payload) {
	req, err := wire.DecodeAddQuestionRequest(data)
	if err != nil {
		c.enqueue(wire.EventAddQuestionFailed, failure("", err.Error()))
		return
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	sess, reason := s.ownedSession(c, req.Session)
	switch {
	case reason != "":
		c.enqueue(wire.EventAddQuestionFailed, failure(req.Session, reason))
	case sess.ended:
		c.enqueue(wire.EventAddQuestionFailed, failure(req.Session, "session has ended"))
	default:
		if violations := req.Question.Validate(); len(violations) > 0 {
			c.enqueue(wire.EventAddQuestionFailed, failure(req.Session, "question failed validation"))
			return
		}
		sess.questions = append(sess.questions, req.Question)
		sess.grades = append(sess.grades, newTally())
		c.enqueue(wire.EventAddQuestionSuccess, wire.Payload{"session": sess.id})
	}
}

func (s *Server) handleNextQuestion(c *conn, data wire.Payload) {
	req, err := wire.DecodeNextQuestionRequest(data)
	if err != nil {
		s.log.Warn("bad next question request", zap.Error(err))
		return
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	sess, reason := s.ownedSession(c, req.Session)
	if reason != "" || !sess.started || sess.ended {
		s.log.Warn("next question rejected", zap.String("session", req.Session))
		return
	}
	if sess.current+1 >= len(sess.questions) {
		s.log.Warn("quiz exhausted", zap.String("session", sess.id))
		return
	}

	sess.current++
	sess.fanout(wire.EventNextQuestion, wire.Payload{
		"session":  sess.id,
		"index":    sess.current,
		"question": wire.EncodeQuestion(sess.questions[sess.current]),
	})
}

func (s *Server) handleSubmitResponse(c *conn, data wire.Payload) {
	req, err := wire.DecodeSubmitResponseRequest(data)
	if err != nil {
		c.enqueue(wire.EventResponseFailed, failure("", err.Error()))
		return
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	sess, reason := s.memberSession(c, req.Session, req.Name)
	switch {
	case reason != "":
		c.enqueue(wire.EventResponseFailed, failure(req.Session, reason))
		return
	case !sess.started || sess.ended:
		c.enqueue(wire.EventResponseFailed, failure(req.Session, "session not running"))
		return
	case req.Index != sess.current || sess.current < 0:
		c.enqueue(wire.EventResponseFailed, failure(req.Session, "question not live"))
		return
	}

	t := sess.grades[sess.current]
	if t.answered[req.Name] {
		c.enqueue(wire.EventResponseFailed, failure(req.Session, "already answered"))
		return
	}

	question := sess.questions[sess.current]
	if violations := req.Response.Validate(&question); len(violations) > 0 {
		c.enqueue(wire.EventResponseFailed, failure(req.Session, "response failed validation"))
		return
	}

	points, answer := grade(question, req.Response)
	t.answered[req.Name] = true
	t.counts[answer]++
	t.total++

	firstNow := false
	if points > 0 && t.firstCorrect == "" {
		t.firstCorrect = req.Name
		firstNow = true
	}

	c.enqueue(wire.EventResponseSuccess, wire.Payload{
		"session":      sess.id,
		"index":        sess.current,
		"firstCorrect": firstNow,
		"points":       points,
	})
	sess.owner.enqueue(wire.EventResponseAdded, wire.Payload{
		"session":           sess.id,
		"index":             sess.current,
		"user":              req.Name,
		"response":          answer,
		"points":            points,
		"firstCorrect":      t.firstCorrect,
		"frequency":         t.counts[answer],
		"relativeFrequency": t.counts[answer] * 100 / t.total,
	})
}

func (s *Server) handleSubmitFeedback(c *conn, data wire.Payload) {
	req, err := wire.DecodeSubmitFeedbackRequest(data)
	if err != nil {
		c.enqueue(wire.EventFeedbackFailed, failure("", err.Error()))
		return
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	sess, reason := s.memberSession(c, req.Session, req.Name)
	switch {
	case reason != "":
		c.enqueue(wire.EventFeedbackFailed, failure(req.Session, reason))
	case !sess.started:
		c.enqueue(wire.EventFeedbackFailed, failure(req.Session, "session not started"))
	case req.Question < 0 || req.Question > sess.current:
		c.enqueue(wire.EventFeedbackFailed, failure(req.Session, "no such question"))
	default:
		if violations := req.Feedback.Validate(); len(violations) > 0 {
			c.enqueue(wire.EventFeedbackFailed, failure(req.Session, "feedback failed validation"))
			return
		}
		c.enqueue(wire.EventFeedbackSuccess, wire.Payload{"session": sess.id})
		sess.owner.enqueue(wire.EventFeedbackSubmitted, wire.Payload{
			"session":  sess.id,
			"user":     req.Name,
			"question": req.Question,
			"feedback": wire.EncodeFeedback(req.Feedback),
		})
	}
}

func (s *Server) handleSendHint(c *conn, data wire.Payload) {
	req, err := wire.DecodeSendHintRequest(data)
	if err != nil {
		c.enqueue(wire.EventHintFailed, failure("", err.Error()))
		return
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	sess, reason := s.ownedSession(c, req.Session)
	switch {
	case reason != "":
		c.enqueue(wire.EventHintFailed, failure(req.Session, reason))
	case !sess.started || sess.ended:
		c.enqueue(wire.EventHintFailed, failure(req.Session, "session not running"))
	case req.Question < 0 || req.Question > sess.current:
		c.enqueue(wire.EventHintFailed, failure(req.Session, "no such question"))
	default:
		c.enqueue(wire.EventHintSuccess, wire.Payload{"session": sess.id})
		sess.participants(wire.EventHintReceived, wire.Payload{
			"session":  sess.id,
			"question": req.Question,
			"hint":     req.Hint,
		})
	}
}

// ownedSession resolves a session the connection must own. Callers hold
// reg.mu. A non-empty reason means the lookup failed.
func (s *Server) ownedSession(c *conn, id string) (*session, string) {
	sess, ok := s.reg.sessions[id]
	if !ok {
		return nil, "no such session"
	}
	if sess.owner != c {
		return nil, "not the session owner"
	}
	return sess, ""
}

// memberSession resolves a session the connection must have joined under the
// given display name. Callers hold reg.mu.
func (s *Server) memberSession(c *conn, id, name string) (*session, string) {
	sess, ok := s.reg.sessions[id]
	if !ok {
		return nil, "no such session"
	}
	if sess.members[name] != c {
		return nil, "not a participant"
	}
	return sess, ""
}

// disconnected cleans up after a socket goes away. A lost participant is
// announced to the rest of the session; a lost owner takes the whole session
// down with a session-ended broadcast.
func (s *Server) disconnected(c *conn) {
	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	sess := s.reg.byConn[c.id]
	delete(s.reg.byConn, c.id)
	if sess == nil {
		return
	}

	if sess.owner == c {
		sess.ended = true
		sess.participants(wire.EventSessionEnded, wire.Payload{"session": sess.id})
		for _, mc := range sess.members {
			delete(s.reg.byConn, mc.id)
		}
		delete(s.reg.sessions, sess.id)
		s.metrics.activeSessions.Dec()
		s.log.Info("owner disconnected, session closed", zap.String("session", sess.id))
		return
	}

	if name, ok := sess.memberName(c); ok {
		delete(sess.members, name)
		sess.fanout(wire.EventUserDisconnected, wire.Payload{"session": sess.id, "name": name})
		s.log.Info("user disconnected", zap.String("session", sess.id), zap.String("name", name))
	}
}

// Questions reports how many questions a session holds. Test hook.
func (s *Server) Questions(sessionID string) []quiz.Question {
	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()
	if sess, ok := s.reg.sessions[sessionID]; ok {
		return append([]quiz.Question(nil), sess.questions...)
	}
	return nil
}
