package tgnorm

import "ex-tgnorm/pkg/richtext"

// readEntities copies the entity list so later caller mutation cannot reach the message.
//
// Besides []richtext.Entity the list may be a decoded []any of records keyed
// by type (or the TL constructor name under "_"), offset, length, url,
// language, user_id, document_id and collapsed. Items that cannot be read
// become EntityTypeUnknown spans, which render as plain text.
func readEntities(raw Record) ([]richtext.Entity, error) {
	value, ok := raw.Lookup("entities")
	if !ok {
		return nil, nil
	}

	var entities []richtext.Entity
	switch typed := value.(type) {
	case []richtext.Entity:
		entities = append([]richtext.Entity(nil), typed...)
	case []any:
		entities = make([]richtext.Entity, 0, len(typed))
		for _, item := range typed {
			entities = append(entities, entityFromItem(item))
		}
	case []Record:
		entities = make([]richtext.Entity, 0, len(typed))
		for _, item := range typed {
			entities = append(entities, entityFromRecord(item))
		}
	case []map[string]any:
		entities = make([]richtext.Entity, 0, len(typed))
		for _, item := range typed {
			entities = append(entities, entityFromRecord(Record(item)))
		}
	default:
		return nil, wrongShape("entities", "entity list", value)
	}
	if len(entities) == 0 {
		return nil, nil
	}

	return entities, nil
}

func entityFromItem(item any) richtext.Entity {
	switch typed := item.(type) {
	case richtext.Entity:
		return typed
	case Record:
		return entityFromRecord(typed)
	case map[string]any:
		return entityFromRecord(Record(typed))
	default:
		return richtext.Entity{Type: richtext.EntityTypeUnknown}
	}
}

func entityFromRecord(record Record) richtext.Entity {
	fields := newFieldReader(record, "entities")
	unknown := richtext.Entity{Type: richtext.EntityTypeUnknown}

	name, ok, err := fields.optionalString("type")
	if err != nil {
		return unknown
	}
	if !ok {
		if name, _, err = fields.optionalString("_"); err != nil {
			return unknown
		}
	}

	offset, err := fields.requiredInt("offset")
	if err != nil {
		return unknown
	}
	length, err := fields.requiredInt("length")
	if err != nil {
		return unknown
	}

	entity := richtext.Entity{
		Type:   richtext.ParseEntityType(name),
		Offset: offset,
		Length: length,
	}
	if entity.URL, _, err = fields.optionalString("url"); err != nil {
		return unknown
	}
	if entity.Language, _, err = fields.optionalString("language"); err != nil {
		return unknown
	}
	if entity.MentionUserID, _, err = fields.optionalInt64("user_id"); err != nil {
		return unknown
	}
	if entity.CustomEmojiID, _, err = fields.optionalInt64("document_id"); err != nil {
		return unknown
	}
	if entity.Collapsed, _, err = fields.optionalBool("collapsed"); err != nil {
		return unknown
	}

	return entity
}
