// Package validator provides declarative field validation rules and the
// ValidationErrors type the page engine treats as recoverable: a validation
// failure inside a click handler renders inline instead of aborting the
// response.
package validator
