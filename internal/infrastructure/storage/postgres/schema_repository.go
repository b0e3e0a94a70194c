package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slog"

	"bookshelf/internal/domain/schema"
)

type SchemaRepository struct {
	db  DB
	log *slog.Logger
}

func NewSchemaRepository(db DB, log *slog.Logger) *SchemaRepository {
	return &SchemaRepository{
		db:  db,
		log: log.With("component", "schema_repository"),
	}
}

func (r *SchemaRepository) Get(ctx context.Context, name string) (schema.StoredType, error) {
	const query = `
		SELECT name, format_version, object_type_version, primary_key, fields
		FROM object_types
		WHERE name = $1`

	var (
		t      schema.StoredType
		fields []byte
	)
	err := r.db.QueryRow(ctx, query, name).
		Scan(&t.Name, &t.FormatVersion, &t.ObjectTypeVersion, &t.PrimaryKey, &fields)
	if err != nil {
		if isNoRows(err) {
			return schema.StoredType{}, schema.ErrTypeNotRegistered
		}
		return schema.StoredType{}, fmt.Errorf("get object type: %w", err)
	}

	if err := json.Unmarshal(fields, &t.Fields); err != nil {
		return schema.StoredType{}, fmt.Errorf("decode fields of %s: %w", name, err)
	}
	return t, nil
}

func (r *SchemaRepository) Save(ctx context.Context, t schema.StoredType) error {
	const query = `
		INSERT INTO object_types (name, format_version, object_type_version, primary_key, fields)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			format_version = EXCLUDED.format_version,
			object_type_version = EXCLUDED.object_type_version,
			primary_key = EXCLUDED.primary_key,
			fields = EXCLUDED.fields,
			updated_at = NOW()`

	fields, err := json.Marshal(t.Fields)
	if err != nil {
		return fmt.Errorf("encode fields of %s: %w", t.Name, err)
	}

	if _, err := r.db.Exec(ctx, query,
		t.Name, t.FormatVersion, t.ObjectTypeVersion, t.PrimaryKey, fields); err != nil {
		r.log.Error("failed to save object type", "type", t.Name, "error", err)
		return fmt.Errorf("save object type: %w", err)
	}
	return nil
}
