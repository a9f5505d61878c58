package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateStruct runs validator tags on a typed request value and converts
// any violation into a BadRequest carrying one message per failed field.
func ValidateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return BadRequest("invalid request body")
	}

	apiErr := BadRequest("validation failed")
	for _, fe := range verrs {
		apiErr.Errors = append(apiErr.Errors,
			fmt.Sprintf("field %s failed on the %s rule", fe.Field(), fe.Tag()))
	}
	return apiErr
}

func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 50 {
		return BadRequest("username must be between 3 and 50 characters")
	}

	if !usernameRegex.MatchString(username) {
		return BadRequest("username can only contain letters, numbers, and underscores")
	}

	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return BadRequest("password must be atleast 6 characters long")
	}

	if len(password) > 100 {
		return BadRequest("password is too long")
	}

	return nil
}

func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return BadRequest("invalid email format")
	}

	return nil
}
