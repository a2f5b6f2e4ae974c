// Package validator wraps struct validation behind a small interface so
// usecases can declare their input contracts with tags and stay decoupled from
// the validation library.
package validator
