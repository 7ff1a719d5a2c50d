package devserver

import (
	"crypto/rand"
	"sync"

	"quizez/pkg/quiz"
	"quizez/pkg/wire"
)

// session is the server-side record of one quiz session: its owner socket,
// the participants by display name, the quiz content and the per-question
// grading tallies.
type session struct {
	id      string
	owner   *conn
	members map[string]*conn
	started bool
	ended   bool

	questions []quiz.Question
	current   int // index of the live question, -1 before the first push
	grades    []*tally
}

// tally accumulates grading state for one question.
type tally struct {
	firstCorrect string
	answered     map[string]bool
	counts       map[string]int
	total        int
}

func newTally() *tally {
	return &tally{answered: make(map[string]bool), counts: make(map[string]int)}
}

// fanout delivers an event to the owner and every participant.
func (s *session) fanout(event string, data wire.Payload) {
	s.owner.enqueue(event, data)
	for _, c := range s.members {
		c.enqueue(event, data)
	}
}

// participants delivers an event to every participant but not the owner.
func (s *session) participants(event string, data wire.Payload) {
	for _, c := range s.members {
		c.enqueue(event, data)
	}
}

// memberName finds the display name a connection joined under.
func (s *session) memberName(c *conn) (string, bool) {
	for name, mc := range s.members {
		if mc == c {
			return name, true
		}
	}
	return "", false
}

// registry tracks live sessions and which session each socket belongs to.
// One mutex guards all session state; handlers run their whole read-decide-
// reply sequence under it.
type registry struct {
	mu       sync.Mutex
	codeLen  int
	sessions map[string]*session
	byConn   map[string]*session
}

func newRegistry(codeLen int) *registry {
	return &registry{
		codeLen:  codeLen,
		sessions: make(map[string]*session),
		byConn:   make(map[string]*session),
	}
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newCode draws a random session code, retrying on the unlikely collision.
// Callers hold r.mu.
func (r *registry) newCode() string {
	for {
		buf := make([]byte, r.codeLen)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand unavailable: " + err.Error())
		}
		for i, b := range buf {
			buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
		}
		code := string(buf)
		if _, taken := r.sessions[code]; !taken {
			return code
		}
	}
}
