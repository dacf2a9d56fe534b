package services

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Opt distinguishes a field that was provided (possibly with a null value)
// from one that was omitted entirely. Update payloads rely on it so that
// "clear the category" and "leave the category alone" stay different things.
type Opt[T any] struct {
	Value T
	Valid bool
}

func Some[T any](value T) Opt[T] {
	return Opt[T]{Value: value, Valid: true}
}
