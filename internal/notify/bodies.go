package notify

import (
	"strings"

	"github.com/dmitrymomot/formintake/internal/submission"
)

// Field values reaching the email components were escaped by the sanitizer
// and are written raw. Everything else goes through templ's escaping.

var newlines = strings.NewReplacer("\r\n", "<br />\r\n", "\n", "<br />\n", "\r", "<br />\r")

func nl2br(s string) string {
	return newlines.Replace(s)
}

type label struct {
	title string
	field string
}

var applicationLabels = []label{
	{"Full Name", "fullName"},
	{"Date of Birth", "dob"},
	{"Gender", "gender"},
	{"Email", "email"},
	{"Phone", "phone"},
	{"Address", "address"},
	{"Occupation", "occupation"},
	{"Years of Experience", "years_of_experience"},
	{"Culinary Training", "culinary_training"},
	{"Degree", "degree"},
	{"Graduation Year", "graduation_year"},
	{"Specialized Category", "specialized_category"},
	{"Food Allergies", "food_allergies"},
	{"Signature Dish", "signature_dish"},
	{"Signature Dish Description", "signature_dish_description"},
	{"Participation Reason", "participation_reason"},
	{"Emergency Contact Name", "fullName_emergency_contact"},
	{"Relationship", "relationship"},
	{"Emergency Contact Phone", "phone_emergency"},
	{"Emergency Contact Address", "address_emergency"},
}

var imageLabels = []label{
	{"Passport Photograph", submission.PassportImage},
	{"Signature", submission.SignatureImage},
}

func assetURL(sub submission.Submission, field string) string {
	return sub.Assets[field].URL
}
