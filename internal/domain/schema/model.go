package schema

import "fmt"

// SupportedFormatVersion is the only descriptor format the store understands.
const SupportedFormatVersion = 1

// ObjectTypeInfo is a versioned declaration of the record types a client uses.
type ObjectTypeInfo struct {
	FormatVersion     int          `json:"format_version" example:"1"`
	ObjectTypeVersion int          `json:"object_type_version" example:"5"`
	ObjectTypes       []ObjectType `json:"object_types"`
}

type ObjectType struct {
	Name       string  `json:"name"`
	PrimaryKey string  `json:"primary_key"`
	Fields     []Field `json:"fields"`
}

type Field struct {
	Name    string `json:"name"`
	Type    string `json:"type" enum:"Integer,String,Boolean,Date"`
	NotNull bool   `json:"not_null,omitempty"`
}

// StoredType is an object type as the store keeps it.
type StoredType struct {
	ObjectType
	FormatVersion     int `json:"format_version"`
	ObjectTypeVersion int `json:"object_type_version"`
}

func (info ObjectTypeInfo) Validate() error {
	if info.FormatVersion != SupportedFormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, info.FormatVersion)
	}
	if info.ObjectTypeVersion <= 0 {
		return fmt.Errorf("%w: object type version must be positive", ErrInvalidSchema)
	}
	if len(info.ObjectTypes) == 0 {
		return fmt.Errorf("%w: no object types", ErrInvalidSchema)
	}
	for _, t := range info.ObjectTypes {
		if err := t.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (t ObjectType) validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: object type without name", ErrInvalidSchema)
	}
	seen := make(map[string]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: %s has a field without name", ErrInvalidSchema, t.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: %s.%s declared twice", ErrInvalidSchema, t.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	if _, ok := seen[t.PrimaryKey]; !ok {
		return fmt.Errorf("%w: %s primary key %q is not a field", ErrInvalidSchema, t.Name, t.PrimaryKey)
	}
	return nil
}
