package book

import "bookshelf/internal/domain/schema"

const (
	formatVersion     = 1
	objectTypeVersion = 5
)

// ObjectTypeInfo is the schema descriptor clients register before opening a zone.
func ObjectTypeInfo() schema.ObjectTypeInfo {
	return schema.ObjectTypeInfo{
		FormatVersion:     formatVersion,
		ObjectTypeVersion: objectTypeVersion,
		ObjectTypes: []schema.ObjectType{
			{
				Name:       TypeName,
				PrimaryKey: "id",
				Fields: []schema.Field{
					{Name: "id", Type: "Integer", NotNull: true},
					{Name: "title", Type: "String"},
					{Name: "description", Type: "String"},
				},
			},
		},
	}
}
