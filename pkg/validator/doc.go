// Package validator provides small, declarative validation rules for form
// input.
//
// A Rule pairs a Check function with the ValidationError reported when the
// check fails. Apply evaluates rules in order and aggregates failures into a
// ValidationErrors value that implements error:
//
//	err := validator.Apply(
//		validator.RequiredString("fullName", name).WithMessage("Full Name is required."),
//		validator.ValidEmail("email", email),
//		validator.MatchesPattern("email", email, emailPattern, "email"),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		return errs.Map()
//	}
//
// Rules are plain values without global state, so they are safe to build and
// evaluate from concurrent requests.
package validator
