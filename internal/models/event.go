package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidTags   = errors.New("tags must be a JSON array of strings")
	ErrInvalidAgenda = errors.New("agenda must be a JSON array of objects or strings")
)

// Event is a developer event document. Fields holds any additional scalar form values; they are
// flattened onto the document and never shadow the named fields.
type Event struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Title       string    `gorm:"not null" bson:"title" json:"title"`
	Description string    `gorm:"not null" bson:"description" json:"description"`
	Tags        Tags      `gorm:"type:jsonb;not null" bson:"tags" json:"tags"`
	Agenda      Agenda    `gorm:"type:jsonb;not null" bson:"agenda" json:"agenda"`
	Image       string    `gorm:"not null" bson:"image" json:"image"`
	Fields      Fields    `gorm:"type:jsonb" bson:",inline" json:"-"`
	CreatedAt   time.Time `gorm:"index:idx_events_created_at,sort:desc" bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Tags is the set of labels attached to an event.
type Tags []string

// Agenda is the ordered schedule of an event. Entries are objects such as {"time":"10:00","desc":"Kickoff"}
// or plain strings.
type Agenda []any

type Fields map[string]string

var reservedKeys = map[string]struct{}{
	"_id": {}, "id": {}, "title": {}, "description": {}, "tags": {}, "agenda": {},
	"image": {}, "createdAt": {}, "updatedAt": {},
}

// IsReservedField reports whether key names one of the structured Event fields.
func IsReservedField(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// ParseTags decodes a JSON-encoded tag list. An empty string yields an empty set. Duplicate labels are
// dropped keeping the first occurrence.
func ParseTags(raw string) (Tags, error) {
	if strings.TrimSpace(raw) == "" {
		return Tags{}, nil
	}
	var decoded []string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTags, err)
	}
	seen := make(map[string]struct{}, len(decoded))
	tags := make(Tags, 0, len(decoded))
	for _, t := range decoded {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags, nil
}

// ParseAgenda decodes a JSON-encoded agenda. An empty string yields an empty agenda.
func ParseAgenda(raw string) (Agenda, error) {
	if strings.TrimSpace(raw) == "" {
		return Agenda{}, nil
	}
	var decoded []any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAgenda, err)
	}
	for i, item := range decoded {
		switch item.(type) {
		case map[string]any, string:
		default:
			return nil, fmt.Errorf("%w: entry %d is %T", ErrInvalidAgenda, i, item)
		}
	}
	return Agenda(decoded), nil
}

func (e Event) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+9)
	for k, v := range e.Fields {
		if !IsReservedField(k) {
			out[k] = v
		}
	}
	tags, agenda := e.Tags, e.Agenda
	if tags == nil {
		tags = Tags{}
	}
	if agenda == nil {
		agenda = Agenda{}
	}
	out["_id"] = e.ID
	out["title"] = e.Title
	out["description"] = e.Description
	out["tags"] = tags
	out["agenda"] = agenda
	out["image"] = e.Image
	out["createdAt"] = e.CreatedAt
	out["updatedAt"] = e.UpdatedAt
	return json.Marshal(out)
}

func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if IsReservedField(k) {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			continue
		}
		if p.Fields == nil {
			p.Fields = Fields{}
		}
		p.Fields[k] = s
	}
	*e = Event(p)
	return nil
}

func (t Tags) Value() (driver.Value, error) { return jsonValue(t) }
func (t *Tags) Scan(src any) error { return jsonScan(src, t) }
func (a Agenda) Value() (driver.Value, error) { return jsonValue(a) }
func (a *Agenda) Scan(src any) error { return jsonScan(src, a) }
func (f Fields) Value() (driver.Value, error) { return jsonValue(f) }
func (f *Fields) Scan(src any) error { return jsonScan(src, f) }

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
