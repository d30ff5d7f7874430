package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	doc := &Document{
		Title: "Physics Final",
		Questions: []Question{
			q("Mechanics", "Define momentum", 5),
			q("Optics", "State Snell's law", 10),
		},
	}

	require.NoError(t, store.Save(doc))
	assert.NotEmpty(t, doc.ID, "save should assign a document id")
	for i, question := range doc.Questions {
		assert.NotEmpty(t, question.ID, "save should assign an id to question %d", i)
	}

	loaded, err := store.Load(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Title, loaded.Title)
	require.Len(t, loaded.Questions, 2)
	assert.Equal(t, "Mechanics", loaded.Questions[0].SectionName)
	assert.Equal(t, 10.0, loaded.Questions[1].Points)
	assert.Equal(t, doc.Questions[0].ModelAnswer, loaded.Questions[0].ModelAnswer)
}

func TestFileStoreSaveKeepsExistingIDs(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	doc := &Document{
		ID:        "fixed-id",
		Title:     "Quiz",
		Questions: []Question{q("A", "prompt", 1)},
	}
	doc.Questions[0].ID = "q-1"

	require.NoError(t, store.Save(doc))
	assert.Equal(t, "fixed-id", doc.ID)
	assert.Equal(t, "q-1", doc.Questions[0].ID)
}

func TestFileStoreSaveRejectsInvalid(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	err = store.Save(&Document{Title: ""})
	require.Error(t, err)
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve), "expected a validation error, got %v", err)
}

func TestFileStoreLoadMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no-such-id")
	require.Error(t, err)
	var nfe *NotFoundError
	assert.True(t, errors.As(err, &nfe), "expected a not-found error, got %v", err)
}

func TestFileStoreListAndDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ids, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, ids)

	first := &Document{Title: "First", Questions: []Question{q("A", "p", 1)}}
	second := &Document{Title: "Second", Questions: []Question{q("A", "p", 1)}}
	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	ids, err = store.List()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)

	require.NoError(t, store.Delete(first.ID))

	ids, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID}, ids)

	err = store.Delete(first.ID)
	require.Error(t, err)
	var nfe *NotFoundError
	assert.True(t, errors.As(err, &nfe))
}
