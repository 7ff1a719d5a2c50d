package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinLifecycle(t *testing.T) {
	var s sessionState
	s.connectSucceeded()

	s.joinRequested("ABC123", "amy")
	assert.True(t, s.pending)
	assert.True(t, s.inSession())
	assert.True(t, s.participant())
	assert.Equal(t, "ABC123", s.sessionID)
	assert.Equal(t, "amy", s.username)

	s.joinConfirmed()
	assert.False(t, s.pending)
	assert.True(t, s.inSession())
}

func TestJoinFailedRollsBack(t *testing.T) {
	var s sessionState
	s.connectSucceeded()
	s.joinRequested("ABC123", "amy")

	s.joinFailed()
	assert.False(t, s.inSession())
	assert.Empty(t, s.username)
	assert.False(t, s.pending)
	assert.True(t, s.connected)
}

func TestJoinFailedIgnoredForOwners(t *testing.T) {
	var s sessionState
	s.connectSucceeded()
	s.sessionCreated("ABC123")

	s.joinFailed()
	assert.True(t, s.isOwner)
	assert.Equal(t, "ABC123", s.sessionID)
}

func TestSessionCreatedMakesOwner(t *testing.T) {
	var s sessionState
	s.connectSucceeded()
	s.sessionCreated("ABC123")

	assert.True(t, s.isOwner)
	assert.True(t, s.inSession())
	assert.False(t, s.participant())
	assert.Empty(t, s.username)
}

func TestKickedSelfKeepsConnection(t *testing.T) {
	var s sessionState
	s.connectSucceeded()
	s.joinRequested("ABC123", "amy")
	s.joinConfirmed()
	s.sessionStarted()

	s.kickedSelf()
	assert.True(t, s.connected)
	assert.False(t, s.inSession())
	assert.Empty(t, s.username)
	assert.False(t, s.started)
}

func TestDisconnectedResetsEverything(t *testing.T) {
	var s sessionState
	s.connectSucceeded()
	s.sessionCreated("ABC123")
	s.sessionStarted()
	s.sessionEnded()

	s.disconnected()
	assert.Equal(t, sessionState{}, s)
}
