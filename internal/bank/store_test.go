package bank

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizez/internal/config"
	"quizez/pkg/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(&config.BankConfig{
		Path:    filepath.Join(t.TempDir(), "bank.db"),
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleQuestion(text string) quiz.Question {
	return quiz.Question{
		Text:      text,
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

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, sampleQuestion("Largest planet?"))
	require.NoError(t, err)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sampleQuestion("Largest planet?"), got)
}

func TestSaveRejectsInvalidQuestions(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Save(context.Background(), quiz.Question{Text: "no body"})
	assert.Error(t, err)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		_, err := store.Save(ctx, sampleQuestion(text))
		require.NoError(t, err)
	}

	questions, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "first", questions[0].Text)
	assert.Equal(t, "second", questions[1].Text)
	assert.Equal(t, "third", questions[2].Text)
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, sampleQuestion("gone soon"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.Error(t, err)

	assert.Error(t, store.Delete(ctx, id), "double delete should report missing")
}
