package postgres

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/domain"
)

func TestAttachItems(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	docs := []domain.Document{{ID: a}, {ID: b}, {ID: c}}
	items := []domain.DocumentItem{
		{DocumentID: a, Position: 0},
		{DocumentID: a, Position: 1},
		{DocumentID: c, Position: 0},
		{DocumentID: uuid.New(), Position: 0},
	}

	attachItems(docs, items)

	require.Len(t, docs[0].Items, 2)
	assert.Equal(t, 0, docs[0].Items[0].Position)
	assert.Equal(t, 1, docs[0].Items[1].Position)
	assert.NotNil(t, docs[1].Items)
	assert.Empty(t, docs[1].Items)
	require.Len(t, docs[2].Items, 1)
	assert.Equal(t, c, docs[2].Items[0].DocumentID)
}

func TestAttachItems_ListedDocumentWithoutItemsEncodesEmptyArray(t *testing.T) {
	docs := []domain.Document{{ID: uuid.New()}}

	attachItems(docs, nil)

	raw, err := json.Marshal(docs[0])
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.JSONEq(t, `[]`, string(decoded["items"]))
}
