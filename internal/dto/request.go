package dto

const (
	FieldImage       = "image"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldAgenda      = "agenda"
)

// CreateEventForm holds the text parts of a multipart create request. Tags and Agenda are still
// JSON-encoded; every other value lands in Fields.
type CreateEventForm struct {
	Title       string
	Description string
	Tags        string
	Agenda      string
	Fields      map[string]string
}

// NewCreateEventForm flattens multipart values, keeping the last value of a repeated key.
func NewCreateEventForm(values map[string][]string) CreateEventForm {
	form := CreateEventForm{Fields: map[string]string{}}
	for key, vs := range values {
		if len(vs) == 0 {
			continue
		}
		v := vs[len(vs)-1]
		switch key {
		case FieldTitle:
			form.Title = v
		case FieldDescription:
			form.Description = v
		case FieldTags:
			form.Tags = v
		case FieldAgenda:
			form.Agenda = v
		case FieldImage:
		default:
			form.Fields[key] = v
		}
	}
	return form
}
