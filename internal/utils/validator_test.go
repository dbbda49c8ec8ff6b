// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registrationInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,strong_password"`
	Phone    string `validate:"omitempty,phone"`
}

func TestValidateStructAcceptsGoodInput(t *testing.T) {
	input := registrationInput{
		Email:    "jane@makaohomes.co.ke",
		Password: "Nyumba2024",
		Phone:    "+254712345678",
	}
	assert.NoError(t, ValidateStruct(&input))
}

func TestStrongPassword(t *testing.T) {
	weak := []string{"short1A", "alllowercase1", "ALLUPPER1", "NoNumbersHere"}
	for _, pw := range weak {
		input := registrationInput{Email: "a@b.co", Password: pw}
		assert.Error(t, ValidateStruct(&input), "password %q should fail", pw)
	}

	input := registrationInput{Email: "a@b.co", Password: "GoodPass9"}
	assert.NoError(t, ValidateStruct(&input))
}

func TestPhoneValidation(t *testing.T) {
	valid := []string{"254712345678", "+254712345678", "0712 345 678"}
	for _, phone := range valid {
		input := registrationInput{Email: "a@b.co", Password: "GoodPass9", Phone: phone}
		assert.NoError(t, ValidateStruct(&input), "phone %q should pass", phone)
	}

	invalid := []string{"not-a-phone", "12345", "+12 (555) abc"}
	for _, phone := range invalid {
		input := registrationInput{Email: "a@b.co", Password: "GoodPass9", Phone: phone}
		assert.Error(t, ValidateStruct(&input), "phone %q should fail", phone)
	}
}

func TestGetValidationErrors(t *testing.T) {
	input := registrationInput{Email: "nope", Password: ""}
	err := ValidateStruct(&input)
	assert.Error(t, err)

	details := GetValidationErrors(err)
	assert.Len(t, details, 2)

	fields := []string{details[0].Field, details[1].Field}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestCreatePaginationResult(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 20}
	result := CreatePaginationResult([]string{"a"}, 45, params)

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, int64(45), result.Total)
	assert.Equal(t, 3, result.TotalPages)
}

func TestCreatePaginationResultZeroLimit(t *testing.T) {
	result := CreatePaginationResult(nil, 45, PaginationParams{Page: 1})

	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, 3, result.TotalPages)
}
