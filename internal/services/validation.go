package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

const minTitleLength = 3

var (
	validate  = validator.New()
	titleRule = fmt.Sprintf("required,min=%d", minTitleLength)
)

// ValidateTitle trims title and checks it is long enough to be saved from
// the editor.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	err := validate.Var(title, titleRule)
	if err == nil {
		return title, nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Tag() == "required" {
		return "", ErrEmptyTitle
	}
	return "", ErrInvalidTitle
}

// NormalizeTaskInput prepares quick-add input: the title must be non-empty
// after trimming, and a missing status or priority falls back to on-board
// and normal.
func NormalizeTaskInput(input TaskInput) (TaskInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return input, ErrEmptyTitle
	}
	if input.Status == "" {
		input.Status = models.StatusOnBoard
	}
	if !input.Status.Valid() {
		return input, ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.PriorityNormal
	}
	if !input.Priority.Valid() {
		return input, ErrInvalidPriority
	}
	return input, nil
}

func validatePatch(patch TaskPatch) error {
	if patch.Status != nil && !patch.Status.Valid() {
		return ErrInvalidStatus
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// ValidatePatch checks a full-edit patch: enums must be known and a title, if
// present, must pass ValidateTitle. The returned patch carries the trimmed
// title.
func ValidatePatch(patch TaskPatch) (TaskPatch, error) {
	if err := validatePatch(patch); err != nil {
		return patch, err
	}
	if patch.Title != nil {
		title, err := ValidateTitle(*patch.Title)
		if err != nil {
			return patch, err
		}
		patch.Title = &title
	}
	return patch, nil
}
