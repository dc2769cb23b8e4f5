package validator

// Validator validates annotated structs.
type Validator interface {
	// Validate returns an error describing the first set of rule violations
	// found on data, or nil when data is valid.
	Validate(data any) error
}
