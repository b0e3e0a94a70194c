package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"bookshelf/internal/domain/book"
)

func TestDocID(t *testing.T) {
	assert.Equal(t, "Demo/5", docID("Demo", 5))
	assert.Equal(t, []string{"Demo/1", "Demo/99"}, docIDs("Demo", []int{1, 99}))
	assert.Empty(t, docIDs("Demo", nil))
}

func TestBookDocument_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := newBookDocument("Demo", 7, book.Book{ID: 5, Title: "Dune", Description: "Herbert"}, now)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.Equal(t, "Demo/5", fields["_id"])
	assert.Equal(t, "Demo", fields["zone"])

	var decoded bookDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	stored := decoded.toStored()
	assert.Equal(t, book.Book{ID: 5, Title: "Dune", Description: "Herbert"}, stored.Book)
	assert.Equal(t, 7, stored.UpdatedBy)
	assert.True(t, now.Equal(stored.UpdatedAt))
}
