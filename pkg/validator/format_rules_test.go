package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formintake/pkg/validator"
)

func TestValidEmail(t *testing.T) {
	t.Run("valid emails", func(t *testing.T) {
		validEmails := []string{
			"test@example.com",
			"user.name@domain.co.uk",
			"user+tag@example.org",
			"1234567890@example.com",
			"email@example-one.com",
			"_______@example.com",
		}

		for _, email := range validEmails {
			err := validator.Apply(validator.ValidEmail("email", email))
			assert.NoError(t, err, "Email should be valid: %s", email)
		}
	})

	t.Run("invalid emails", func(t *testing.T) {
		invalidEmails := []string{
			"",
			"   ",
			"plainaddress",
			"@missingdomain.com",
			"missing@.com",
			"missing@domain",
			"spaces @domain.com",
			"email..double.dot@domain.com",
			"email@domain..com",
			"Ada <ada@example.com>",
		}

		for _, email := range invalidEmails {
			err := validator.Apply(validator.ValidEmail("email", email))
			assert.Error(t, err, "Email should be invalid: %s", email)
		}
	})

	t.Run("reports the field", func(t *testing.T) {
		errs := validator.ExtractValidationErrors(validator.Apply(validator.ValidEmail("contact", "x")))
		assert.True(t, errs.Has("contact"))
		assert.Equal(t, []string{"must be a valid email address"}, errs.Get("contact"))
	})
}
