package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/utils/logger"
)

// memRepo is enough of a Repository for the service tests.
type memRepo struct {
	types map[string]StoredType
	saves int
}

func (r *memRepo) Get(_ context.Context, name string) (StoredType, error) {
	t, ok := r.types[name]
	if !ok {
		return StoredType{}, ErrTypeNotRegistered
	}
	return t, nil
}

func (r *memRepo) Save(_ context.Context, t StoredType) error {
	r.types[t.Name] = t
	r.saves++
	return nil
}

func bookInfo(version int) ObjectTypeInfo {
	return ObjectTypeInfo{
		FormatVersion:     1,
		ObjectTypeVersion: version,
		ObjectTypes: []ObjectType{{
			Name:       "Book",
			PrimaryKey: "id",
			Fields: []Field{
				{Name: "id", Type: "Integer", NotNull: true},
				{Name: "title", Type: "String"},
			},
		}},
	}
}

func TestService_Register_Idempotent(t *testing.T) {
	repo := &memRepo{types: map[string]StoredType{}}
	s := NewService(repo, logger.Discard())
	ctx := context.Background()

	res, err := s.Register(ctx, bookInfo(5))
	require.NoError(t, err)
	assert.Equal(t, []string{"Book"}, res.Created)

	res, err = s.Register(ctx, bookInfo(5))
	require.NoError(t, err)
	assert.Equal(t, []string{"Book"}, res.Unchanged)

	res, err = s.Register(ctx, bookInfo(4))
	require.NoError(t, err)
	assert.Equal(t, []string{"Book"}, res.Unchanged)
	assert.Equal(t, 5, repo.types["Book"].ObjectTypeVersion)

	res, err = s.Register(ctx, bookInfo(6))
	require.NoError(t, err)
	assert.Equal(t, []string{"Book"}, res.Upgraded)
	assert.Equal(t, 2, repo.saves)
}

func TestService_Register_Invalid(t *testing.T) {
	s := NewService(&memRepo{types: map[string]StoredType{}}, logger.Discard())

	badFormat := bookInfo(1)
	badFormat.FormatVersion = 2
	_, err := s.Register(context.Background(), badFormat)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	noKey := bookInfo(1)
	noKey.ObjectTypes[0].PrimaryKey = "isbn"
	_, err = s.Register(context.Background(), noKey)
	assert.ErrorIs(t, err, ErrInvalidSchema)

	dup := bookInfo(1)
	dup.ObjectTypes[0].Fields = append(dup.ObjectTypes[0].Fields, Field{Name: "title", Type: "String"})
	_, err = s.Register(context.Background(), dup)
	assert.ErrorIs(t, err, ErrInvalidSchema)

	_, err = s.Register(context.Background(), ObjectTypeInfo{FormatVersion: 1, ObjectTypeVersion: 1})
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestService_Require(t *testing.T) {
	repo := &memRepo{types: map[string]StoredType{}}
	s := NewService(repo, logger.Discard())

	assert.ErrorIs(t, s.Require(context.Background(), "Book"), ErrTypeNotRegistered)

	_, err := s.Register(context.Background(), bookInfo(1))
	require.NoError(t, err)
	assert.NoError(t, s.Require(context.Background(), "Book"))
}
