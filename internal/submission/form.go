package submission

import (
	"mime/multipart"
	"time"
)

type FormType string

const (
	Contact     FormType = "contact"
	Application FormType = "application"
)

// HoneypotField is hidden from humans; bots fill it in.
const HoneypotField = "botField"

// Upload fields of the application form, in validation order.
const (
	PassportImage  = "passport_image"
	SignatureImage = "signature_image"
)

// Column binds a table column to the request field feeding it.
type Column struct {
	Name  string
	Field string
	// Upload marks columns holding the public URL of an uploaded file.
	Upload bool
}

// Descriptor is everything the pipeline needs to know about one form.
type Descriptor struct {
	Type           FormType
	Table          string
	Columns        []Column
	Uploads        []string
	RequireMessage bool
}

var ContactForm = Descriptor{
	Type:  Contact,
	Table: "contact_form",
	Columns: []Column{
		{Name: "fullname", Field: "fullName"},
		{Name: "email", Field: "email"},
		{Name: "phone", Field: "phone"},
		{Name: "message", Field: "message"},
	},
	RequireMessage: true,
}

var ApplicationForm = Descriptor{
	Type:  Application,
	Table: "application_form",
	Columns: []Column{
		{Name: "fullname", Field: "fullName"},
		{Name: "dob", Field: "dob"},
		{Name: "gender", Field: "gender"},
		{Name: "email", Field: "email"},
		{Name: "phone", Field: "phone"},
		{Name: "address", Field: "address"},
		{Name: "occupation", Field: "occupation"},
		{Name: "years_of_experience", Field: "years_of_experience"},
		{Name: "culinary_training", Field: "culinary_training"},
		{Name: "degree", Field: "degree"},
		{Name: "graduation_year", Field: "graduation_year"},
		{Name: "specialized_category", Field: "specialized_category"},
		{Name: "food_allergies", Field: "food_allergies"},
		{Name: "signature_dish", Field: "signature_dish"},
		{Name: "signature_dish_description", Field: "signature_dish_description"},
		{Name: "participation_reason", Field: "participation_reason"},
		{Name: "fullName_emergency_contact", Field: "fullName_emergency_contact"},
		{Name: "relationship", Field: "relationship"},
		{Name: "phone_emergency", Field: "phone_emergency"},
		{Name: "address_emergency", Field: "address_emergency"},
		{Name: "passport_image", Field: PassportImage, Upload: true},
		{Name: "signature_image", Field: SignatureImage, Upload: true},
	},
	Uploads: []string{PassportImage, SignatureImage},
}

// ColumnNames lists the table columns in insert order.
func (d Descriptor) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Values returns the insert parameters in column order. Missing fields and
// uploads that were not sent become "".
func (d Descriptor) Values(fields Sanitized, assets map[string]Asset) []any {
	values := make([]any, len(d.Columns))
	for i, c := range d.Columns {
		if c.Upload {
			values[i] = assets[c.Field].URL
			continue
		}
		values[i] = fields.String(c.Field)
	}
	return values
}

// Request is one raw submission as received.
type Request struct {
	Form   Descriptor
	Fields map[string]any
	Files  map[string]*multipart.FileHeader
	// Origin is scheme://host of the request, used for public upload URLs.
	Origin string
}

// Asset is an upload accepted and written to storage.
type Asset struct {
	Field    string
	Filename string
	Path     string
	URL      string
}

// Record is a persisted submission.
type Record struct {
	Form        FormType
	ID          int64
	Values      []any
	SubmittedAt time.Time
}

// Submission is what the notifier gets once the record is stored.
type Submission struct {
	Form   Descriptor
	Fields Sanitized
	Assets map[string]Asset
	Record Record
}
