// Package validation checks the shape and constraints of incoming user
// payloads before they reach the store. Failures carry per-field messages.
package validation

import (
	"regexp"
	"time"

	"github.com/josuelns/authapi/internal/common"
	"github.com/josuelns/authapi/internal/server/models"
)

const (
	passwordMinLen = 6
	passwordMaxLen = 20
)

var (
	emailRe         = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
	passwordSpecial = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// ValidateCreate checks a creation payload. It returns a *common.ValidationError
// listing every failed field, or nil when the payload is acceptable.
func ValidateCreate(req *models.CreateUserRequest) error {
	ve := &common.ValidationError{}

	if req.Name == "" {
		ve.Add("name", "name is required")
	}
	if req.Surname == "" {
		ve.Add("surname", "surname is required")
	}
	checkEmail(ve, req.Email)
	checkPassword(ve, req.Password)
	if req.Address == "" {
		ve.Add("address", "address is required")
	}
	if req.BloodType == "" {
		ve.Add("bloodType", "blood type is required")
	}
	checkSex(ve, req.Sex)
	checkBirthday(ve, req.Birthday)

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateUpdate applies the creation constraints to whichever fields are
// present in a partial update payload. Absent (nil) fields pass.
func ValidateUpdate(req *models.UpdateUserRequest) error {
	ve := &common.ValidationError{}

	if req.Name != nil && *req.Name == "" {
		ve.Add("name", "name must not be empty")
	}
	if req.Surname != nil && *req.Surname == "" {
		ve.Add("surname", "surname must not be empty")
	}
	if req.Email != nil {
		checkEmail(ve, *req.Email)
	}
	// an empty password on update means "keep the current one"
	if req.Password != nil && *req.Password != "" {
		checkPassword(ve, *req.Password)
	}
	if req.Address != nil && *req.Address == "" {
		ve.Add("address", "address must not be empty")
	}
	if req.BloodType != nil && *req.BloodType == "" {
		ve.Add("bloodType", "blood type must not be empty")
	}
	if req.Sex != nil {
		checkSex(ve, *req.Sex)
	}
	if req.Birthday != nil {
		checkBirthday(ve, *req.Birthday)
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

func checkEmail(ve *common.ValidationError, email string) {
	if email == "" {
		ve.Add("email", "email is required")
		return
	}
	if !emailRe.MatchString(email) {
		ve.Add("email", "email is not a valid address")
	}
}

func checkPassword(ve *common.ValidationError, password string) {
	if password == "" {
		ve.Add("password", "password is required")
		return
	}
	if len(password) < passwordMinLen {
		ve.Add("password", "password must be at least 6 characters")
	}
	if len(password) > passwordMaxLen {
		ve.Add("password", "password must be at most 20 characters")
	}
	if !passwordLower.MatchString(password) {
		ve.Add("password", "password must contain a lowercase letter")
	}
	if !passwordUpper.MatchString(password) {
		ve.Add("password", "password must contain an uppercase letter")
	}
	if !passwordDigit.MatchString(password) {
		ve.Add("password", "password must contain a digit")
	}
	if !passwordSpecial.MatchString(password) {
		ve.Add("password", "password must contain a special character")
	}
}

func checkSex(ve *common.ValidationError, sex models.Sex) {
	if !sex.Valid() {
		ve.Add("sex", "sex must be one of MALE, FEMALE, OTHER")
	}
}

func checkBirthday(ve *common.ValidationError, birthday string) {
	if birthday == "" {
		ve.Add("birthday", "birthday is required")
		return
	}
	if _, err := time.Parse(models.BirthdayLayout, birthday); err != nil {
		ve.Add("birthday", "birthday must be a date in YYYY-MM-DD form")
	}
}
