package devserver_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizez/internal/config"
	"quizez/internal/devserver"
	"quizez/pkg/client"
	"quizez/pkg/quiz"
	"quizez/pkg/transport"
	"quizez/pkg/wire"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.ServerConfig{
		Host:              "127.0.0.1",
		Port:              0,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		SessionCodeLength: 6,
	}
	ts := httptest.NewServer(devserver.New(cfg, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

// event is one delegate callback captured for assertion.
type event struct {
	name string
	err  error
	data any
}

type recorder struct {
	client.NoopDelegate
	events chan event
}

func newRecorder() *recorder {
	return &recorder{events: make(chan event, 64)}
}

func (r *recorder) OnConnected() {
	r.events <- event{name: "connected"}
}

func (r *recorder) OnDisconnected(reason string) {
	r.events <- event{name: "disconnected", data: reason}
}

func (r *recorder) OnSessionCreated(created wire.CreatedSession, err error) {
	r.events <- event{name: wire.EventCreatedSession, err: err, data: created}
}

func (r *recorder) OnSessionJoined(joined wire.UserJoined, err error) {
	r.events <- event{name: wire.EventJoinSuccess, err: err, data: joined}
}

func (r *recorder) OnUserKicked(kicked wire.KickedUser, err error) {
	r.events <- event{name: wire.EventKickSuccess, err: err, data: kicked}
}

func (r *recorder) OnSessionStarted(err error) {
	r.events <- event{name: wire.EventSessionStarted, err: err}
}

func (r *recorder) OnSessionEnded(err error) {
	r.events <- event{name: wire.EventSessionEnded, err: err}
}

func (r *recorder) OnUserDisconnected(gone wire.UserDisconnected, err error) {
	r.events <- event{name: wire.EventUserDisconnected, err: err, data: gone}
}

func (r *recorder) OnQuestionAdded(err error) {
	r.events <- event{name: wire.EventAddQuestionSuccess, err: err}
}

func (r *recorder) OnNextQuestion(next wire.NextQuestion, err error) {
	r.events <- event{name: wire.EventNextQuestion, err: err, data: next}
}

func (r *recorder) OnResponseSubmitted(graded wire.QuestionResponseSubmitted, err error) {
	r.events <- event{name: wire.EventResponseSuccess, err: err, data: graded}
}

func (r *recorder) OnResponseAdded(added wire.QuestionResponseAdded, err error) {
	r.events <- event{name: wire.EventResponseAdded, err: err, data: added}
}

func (r *recorder) OnFeedbackSubmitted(err error) {
	r.events <- event{name: wire.EventFeedbackSuccess, err: err}
}

func (r *recorder) OnFeedbackReceived(fb wire.FeedbackSubmitted, err error) {
	r.events <- event{name: wire.EventFeedbackSubmitted, err: err, data: fb}
}

func (r *recorder) OnHintSent(err error) {
	r.events <- event{name: wire.EventHintSuccess, err: err}
}

func (r *recorder) OnHintReceived(hint wire.HintReceived, err error) {
	r.events <- event{name: wire.EventHintReceived, err: err, data: hint}
}

func await(t *testing.T, r *recorder, want string) event {
	t.Helper()
	select {
	case ev := <-r.events:
		require.Equalf(t, want, ev.name, "unexpected event %q (err %v)", ev.name, ev.err)
		return ev
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
		return event{}
	}
}

func quiet(r *recorder) bool {
	select {
	case <-r.events:
		return false
	case <-time.After(100 * time.Millisecond):
		return true
	}
}

// dial brings up a connected client against the test server.
func dial(t *testing.T, ts *httptest.Server) (*client.Client, *recorder) {
	t.Helper()
	socket, err := transport.NewSocket(ts.URL, nil)
	require.NoError(t, err)

	c := client.NewClient(socket, nil)
	rec := newRecorder()
	c.SetDelegate(rec)

	require.NoError(t, c.Connect(5*time.Second, func() {
		rec.events <- event{name: "connect timeout"}
	}))
	await(t, rec, "connected")
	t.Cleanup(func() {
		if c.Connected() {
			_ = c.Disconnect()
		}
	})
	return c, rec
}

func e2eQuestion() quiz.Question {
	return quiz.Question{
		Text:      "Largest planet?",
		TimeLimit: 90,
		Body: quiz.MultipleChoiceBody{
			Choices: []quiz.Choice{
				{Text: "Jupiter", Points: 100},
				{Text: "Mars", Points: 0},
			},
			Answer: 0,
		},
	}
}

// TestFullQuizScenario runs a whole session end to end: a host and one
// participant work through create, join, start, a graded question, feedback,
// a hint, a kick and the session end, while a third unrelated client runs
// its own session and must see none of it.
func TestFullQuizScenario(t *testing.T) {
	ts := startServer(t)

	host, hostRec := dial(t, ts)
	participant, partRec := dial(t, ts)
	bystander, byRec := dial(t, ts)

	// Unrelated session that must stay isolated.
	require.NoError(t, bystander.CreateSession())
	await(t, byRec, wire.EventCreatedSession)

	require.NoError(t, host.CreateSession())
	created := await(t, hostRec, wire.EventCreatedSession)
	require.NoError(t, created.err)
	code := created.data.(wire.CreatedSession).Session
	require.Len(t, code, 6)
	assert.True(t, host.IsSessionOwner())

	require.NoError(t, participant.JoinSession(code, "amy"))
	joined := await(t, partRec, wire.EventJoinSuccess)
	require.NoError(t, joined.err)
	assert.Equal(t, wire.UserJoined{Session: code, Name: "amy"}, joined.data)
	await(t, hostRec, wire.EventJoinSuccess)

	require.NoError(t, host.AddQuestion(e2eQuestion()))
	added := await(t, hostRec, wire.EventAddQuestionSuccess)
	require.NoError(t, added.err)

	require.NoError(t, host.StartSession())
	require.NoError(t, await(t, hostRec, wire.EventSessionStarted).err)
	require.NoError(t, await(t, partRec, wire.EventSessionStarted).err)
	assert.True(t, participant.SessionStarted())

	require.NoError(t, host.PushNextQuestion())
	require.NoError(t, await(t, hostRec, wire.EventNextQuestion).err)
	pushed := await(t, partRec, wire.EventNextQuestion)
	require.NoError(t, pushed.err)
	assert.Equal(t, e2eQuestion(), pushed.data.(wire.NextQuestion).Question)

	response := quiz.Response{Submitter: "amy", Body: quiz.ChoiceResponse{Choice: 0}}
	require.NoError(t, participant.SubmitQuestionResponse(0, "amy", response))

	graded := await(t, partRec, wire.EventResponseSuccess)
	require.NoError(t, graded.err)
	assert.Equal(t, wire.QuestionResponseSubmitted{
		Session:      code,
		Index:        0,
		FirstCorrect: true,
		Points:       100,
	}, graded.data)

	tallied := await(t, hostRec, wire.EventResponseAdded)
	require.NoError(t, tallied.err)
	assert.Equal(t, wire.QuestionResponseAdded{
		Session:           code,
		Index:             0,
		User:              "amy",
		Response:          "Jupiter",
		Points:            100,
		FirstCorrect:      "amy",
		Frequency:         1,
		RelativeFrequency: 100,
	}, tallied.data)

	feedback := quiz.Feedback{Rating: quiz.RatingOkay, Message: "fair"}
	require.NoError(t, participant.SubmitQuestionFeedback("amy", 0, feedback))
	require.NoError(t, await(t, partRec, wire.EventFeedbackSuccess).err)
	heard := await(t, hostRec, wire.EventFeedbackSubmitted)
	require.NoError(t, heard.err)
	assert.Equal(t, wire.FeedbackSubmitted{
		Session:  code,
		User:     "amy",
		Question: 0,
		Feedback: feedback,
	}, heard.data)

	require.NoError(t, host.SendQuestionHint(0, "think big"))
	require.NoError(t, await(t, hostRec, wire.EventHintSuccess).err)
	hint := await(t, partRec, wire.EventHintReceived)
	require.NoError(t, hint.err)
	assert.Equal(t, wire.HintReceived{Session: code, Question: 0, Hint: "think big"}, hint.data)

	require.NoError(t, host.KickUser("amy"))
	require.NoError(t, await(t, hostRec, wire.EventKickSuccess).err)
	kicked := await(t, partRec, wire.EventKickSuccess)
	require.NoError(t, kicked.err)
	assert.Equal(t, wire.KickedUser{Session: code, Name: "amy"}, kicked.data)
	assert.Empty(t, participant.SessionID())
	assert.True(t, participant.Connected())

	require.NoError(t, host.EndSession())
	require.NoError(t, await(t, hostRec, wire.EventSessionEnded).err)

	// The bystander's session never heard any of it.
	assert.True(t, quiet(byRec), "unrelated session received foreign events")
}

func TestJoinFailures(t *testing.T) {
	ts := startServer(t)

	host, hostRec := dial(t, ts)
	require.NoError(t, host.CreateSession())
	code := await(t, hostRec, wire.EventCreatedSession).data.(wire.CreatedSession).Session

	stranger, strangerRec := dial(t, ts)
	require.NoError(t, stranger.JoinSession("ZZZZZZ", "amy"))
	rejected := await(t, strangerRec, wire.EventJoinSuccess)
	assert.ErrorIs(t, rejected.err, client.ErrJoinFailed)
	assert.Empty(t, stranger.SessionID())

	require.NoError(t, stranger.JoinSession(code, "amy"))
	require.NoError(t, await(t, strangerRec, wire.EventJoinSuccess).err)
	await(t, hostRec, wire.EventJoinSuccess)

	imposter, imposterRec := dial(t, ts)
	require.NoError(t, imposter.JoinSession(code, "amy"))
	duplicate := await(t, imposterRec, wire.EventJoinSuccess)
	assert.ErrorIs(t, duplicate.err, client.ErrJoinFailed)
}

func TestInvalidQuestionRejected(t *testing.T) {
	ts := startServer(t)

	host, hostRec := dial(t, ts)
	require.NoError(t, host.CreateSession())
	await(t, hostRec, wire.EventCreatedSession)

	require.NoError(t, host.AddQuestion(quiz.Question{Text: "no body at all"}))
	rejected := await(t, hostRec, wire.EventAddQuestionSuccess)
	assert.ErrorIs(t, rejected.err, client.ErrAddQuestionFailed)
}

func TestParticipantDisconnectAnnounced(t *testing.T) {
	ts := startServer(t)

	host, hostRec := dial(t, ts)
	require.NoError(t, host.CreateSession())
	code := await(t, hostRec, wire.EventCreatedSession).data.(wire.CreatedSession).Session

	participant, partRec := dial(t, ts)
	require.NoError(t, participant.JoinSession(code, "amy"))
	require.NoError(t, await(t, partRec, wire.EventJoinSuccess).err)
	await(t, hostRec, wire.EventJoinSuccess)

	require.NoError(t, participant.Disconnect())
	await(t, partRec, "disconnected")

	gone := await(t, hostRec, wire.EventUserDisconnected)
	require.NoError(t, gone.err)
	assert.Equal(t, wire.UserDisconnected{Session: code, Name: "amy"}, gone.data)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	ts := startServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	metrics, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = metrics.Body.Close() }()
	assert.Equal(t, http.StatusOK, metrics.StatusCode)

	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "quizez_sessions_created_total"))
}
