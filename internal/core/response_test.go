// AngelaMos | 2026
// response_test.go

package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		totalPages int
	}{
		{"exact division", 1, 50, 100, 2},
		{"rounds up", 1, 50, 101, 3},
		{"empty table", 1, 50, 0, 0},
		{"single partial page", 3, 10, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 0.0, Percentage(0, 10))
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())

	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"max=3"`
	}

	err := v.Struct(form{Name: "too long"})
	msg := FormatValidationError(err)

	assert.Contains(t, msg, "email is required")
	assert.Contains(t, msg, "name must be at most 3 characters")

	assert.Equal(t, "invalid request", FormatValidationError(assert.AnError))
}
