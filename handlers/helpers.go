// helpers.go - Shared pagination and validation-error helpers for handlers

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Page is the paginator envelope returned by every collection endpoint.
type Page struct {
	CurrentPage int         `json:"current_page"`
	Data        interface{} `json:"data"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
	LastPage    int         `json:"last_page"`
}

// paginate counts query, loads the ?page= slice into out and wraps it in a
// Page. Page numbers are 1-based; anything unparseable falls back to 1.
func paginate(c *gin.Context, query *gorm.DB, perPage int, out interface{}) (*Page, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Find(out).Error; err != nil {
		return nil, err
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &Page{
		CurrentPage: page,
		Data:        out,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}, nil
}

// validationError responds 422 with a readable message for a binding failure.
func validationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": validationMessage(verrs[0])})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
}

// validationMessage renders one field error in the wording clients already
// depend on ("The name field is required.", ...).
func validationMessage(fe validator.FieldError) string {
	field := strings.ReplaceAll(snakeCase(fe.Field()), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", strings.ReplaceAll(snakeCase(fe.Param()), "_", " "))
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

// snakeCase converts a Go field name (EmailUM6P, CheckInTime) to its
// snake_case JSON form.
func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Break before an upper rune that starts a new word
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
