package client

// sessionState is the single source of truth for what this connection may
// legally do. Only the named transition methods mutate it; the Client reads
// it under its own mutex and never hands it out.
//
// Invariants: isOwner implies sessionID != ""; started implies
// sessionID != ""; ended implies started. At most one of owner, participant
// or no-session holds at a time, where a pending join already counts as
// participant for request routing but is rolled back wholesale on failure.
type sessionState struct {
	connected bool
	sessionID string
	isOwner   bool
	username  string
	pending   bool
	started   bool
	ended     bool
}

// inSession reports whether a session id is recorded, confirmed or pending.
func (s *sessionState) inSession() bool { return s.sessionID != "" }

// participant reports whether this connection joined (or is joining) a
// session it does not own.
func (s *sessionState) participant() bool { return s.inSession() && !s.isOwner }

func (s *sessionState) connectSucceeded() {
	s.connected = true
}

// disconnected resets the state to its zero value; any responses still in
// flight for the old session will fail the session filter afterwards.
func (s *sessionState) disconnected() {
	*s = sessionState{}
}

func (s *sessionState) sessionCreated(id string) {
	s.sessionID = id
	s.isOwner = true
	s.pending = false
}

// joinRequested optimistically records the target session before the server
// confirms, because the join-success event does not reliably echo the
// requester's own name. joinFailed undoes it completely.
func (s *sessionState) joinRequested(id, name string) {
	s.sessionID = id
	s.username = name
	s.pending = true
}

func (s *sessionState) joinConfirmed() {
	s.pending = false
}

func (s *sessionState) joinFailed() {
	if s.isOwner {
		return
	}
	s.sessionID = ""
	s.username = ""
	s.pending = false
}

// kickedSelf evicts this connection from its session without touching the
// transport connection itself.
func (s *sessionState) kickedSelf() {
	s.sessionID = ""
	s.username = ""
	s.isOwner = false
	s.pending = false
	s.started = false
}

func (s *sessionState) sessionStarted() {
	s.started = true
}

func (s *sessionState) sessionEnded() {
	s.ended = true
}
