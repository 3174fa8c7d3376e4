package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josuelns/authapi/internal/common"
	"github.com/josuelns/authapi/internal/server/models"
)

func validCreate() *models.CreateUserRequest {
	return &models.CreateUserRequest{
		Name:      "Ana",
		Surname:   "Souza",
		Email:     "ana@x.com",
		Password:  "Abc123!@",
		Address:   "Rua 1",
		BloodType: "O+",
		Sex:       models.SexFemale,
		Birthday:  "1990-01-01",
	}
}

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	out := map[string][]string{}
	for _, f := range ve.Fields {
		out[f.Field] = append(out[f.Field], f.Message)
	}
	return out
}

func TestValidateCreate_OK(t *testing.T) {
	assert.NoError(t, ValidateCreate(validCreate()))
}

func TestValidateCreate_MissingEverything(t *testing.T) {
	err := ValidateCreate(&models.CreateUserRequest{})
	fields := fieldsOf(t, err)

	for _, name := range []string{"name", "surname", "email", "password", "address", "bloodType", "sex", "birthday"} {
		assert.Contains(t, fields, name)
	}
}

func TestValidateCreate_Email(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"ana@x.com", true},
		{"a.b+c@sub.domain.org", true},
		{"no-at-sign", false},
		{"two@@x.com", false},
		{"spaces in@x.com", false},
		{"no-tld@host", false},
	}

	for _, tt := range tests {
		req := validCreate()
		req.Email = tt.email
		err := ValidateCreate(req)
		if tt.ok {
			assert.NoError(t, err, tt.email)
		} else {
			assert.Contains(t, fieldsOf(t, err), "email", tt.email)
		}
	}
}

func TestValidateCreate_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		message  string
	}{
		{"too short", "Ab1!", "password must be at least 6 characters"},
		{"too long", "Abcdefgh123!Abcdefgh123!", "password must be at most 20 characters"},
		{"no lowercase", "ABC123!@", "password must contain a lowercase letter"},
		{"no uppercase", "abc123!@", "password must contain an uppercase letter"},
		{"no digit", "Abcdef!@", "password must contain a digit"},
		{"no special", "Abcdef12", "password must contain a special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			req.Password = tt.password
			fields := fieldsOf(t, ValidateCreate(req))
			assert.Contains(t, fields["password"], tt.message)
		})
	}
}

func TestValidateCreate_SexAndBirthday(t *testing.T) {
	req := validCreate()
	req.Sex = "INVALID"
	req.Birthday = "01/05/1990"

	fields := fieldsOf(t, ValidateCreate(req))
	assert.Contains(t, fields, "sex")
	assert.Contains(t, fields, "birthday")
}

func TestValidateUpdate_NilFieldsPass(t *testing.T) {
	assert.NoError(t, ValidateUpdate(&models.UpdateUserRequest{}))
}

func TestValidateUpdate_PresentFieldsChecked(t *testing.T) {
	email := "broken"
	name := ""
	err := ValidateUpdate(&models.UpdateUserRequest{Email: &email, Name: &name})

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "name")
}

func TestValidateUpdate_EmptyPasswordMeansKeep(t *testing.T) {
	empty := ""
	assert.NoError(t, ValidateUpdate(&models.UpdateUserRequest{Password: &empty}))
}

func TestValidateUpdate_WeakPasswordRejected(t *testing.T) {
	weak := "short"
	err := ValidateUpdate(&models.UpdateUserRequest{Password: &weak})
	assert.Contains(t, fieldsOf(t, err), "password")
}
