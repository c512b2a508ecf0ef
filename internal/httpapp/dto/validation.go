package dto

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cesargomez89/airscore/internal/constants"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ToMap(errs []ValidationError) map[string]string {
	result := make(map[string]string)
	for _, e := range errs {
		result[e.Field] = e.Message
	}
	return result
}

func ToResponse(errs []ValidationError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func validateTitle(title string) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(title) == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "must not be empty"})
	}
	return errs
}

func validateRating(rating *int) []ValidationError {
	var errs []ValidationError
	if rating != nil {
		if *rating < constants.RatingMin || *rating > constants.RatingMax {
			errs = append(errs, ValidationError{Field: "rating", Message: "must be between 1 and 5"})
		}
	}
	return errs
}

func validateDifficulty(difficulty *int) []ValidationError {
	var errs []ValidationError
	if difficulty != nil {
		if *difficulty < constants.DifficultyMin || *difficulty > constants.DifficultyMax {
			errs = append(errs, ValidationError{Field: "difficulty", Message: "must be between 1 and 10"})
		}
	}
	return errs
}

func validatePageCount(pageCount *int) []ValidationError {
	var errs []ValidationError
	if pageCount != nil {
		if *pageCount < 0 {
			errs = append(errs, ValidationError{Field: "page_count", Message: "must not be negative"})
		}
	}
	return errs
}

func validateColour(colour string) []ValidationError {
	var errs []ValidationError
	if colour != "" {
		colourRegex := regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
		if !colourRegex.MatchString(colour) {
			errs = append(errs, ValidationError{Field: "colour", Message: "invalid colour format (expected: #RRGGBB)"})
		}
	}
	return errs
}

func validateLabelName(name string) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "must not be empty"})
	}
	return errs
}
