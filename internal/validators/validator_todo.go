package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-todo-list/models"
)

const (
	FieldTitle       = "title"
	FieldDescription = "description"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

type TodoValidator struct{}

func NewTodoValidator() Validator {
	return &TodoValidator{}
}

// Validate checks titles and descriptions after trimming. For a
// [models.TodoUpdate] only the provided fields are checked.
func (v *TodoValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateTodoRequest:
		return v.validateCreate(value, fields...)
	case *models.CreateTodoRequest:
		return v.validateCreate(*value, fields...)

	case models.TodoUpdate:
		return v.validateUpdate(value)
	case *models.TodoUpdate:
		return v.validateUpdate(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *TodoValidator) validateCreate(request models.CreateTodoRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldDescription}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if err := validateTitle(request.Title); err != nil {
				return err
			}
		case FieldDescription:
			if err := validateDescription(request.Description); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TodoValidator) validateUpdate(update models.TodoUpdate) error {
	if update.Title != nil {
		if err := validateTitle(*update.Title); err != nil {
			return err
		}
	}
	if update.Description != nil {
		if err := validateDescription(*update.Description); err != nil {
			return err
		}
	}
	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
