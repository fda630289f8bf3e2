// Package validation checks struct-tag constraints on restbind inputs
// (declarations and configuration) with go-playground/validator.
//
//	type Declaration struct {
//	    Name string `validate:"required"`
//	    Path string `validate:"required,startswith=/"`
//	}
//	if err := validation.Validate(decl); err != nil {
//	    // err is a *validation.Error listing each failed field
//	}
package validation
