package auth

import (
	"net/url"
	"testing"

	"frontend-gin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignUp() SignUpForm {
	return SignUpForm{
		Name:     "Lakshmi Devi",
		Age:      "34",
		Gender:   "female",
		Mobile:   "9876543210",
		Email:    "lakshmi@example.org",
		Password: "visits2024",
		Role:     models.RoleASHAWorker,
		ASHAID:   "ASHA-77",
		DocID:    "DOC-1",
	}
}

func TestSignUpValid(t *testing.T) {
	assert.False(t, validSignUp().Validate().Any())
}

func TestSignUpRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SignUpForm)
		field   string
		message string
	}{
		{"blank name", func(f *SignUpForm) { f.Name = "   " }, "name", "Name is required"},
		{"missing age", func(f *SignUpForm) { f.Age = "" }, "age", "Age is required"},
		{"age too high", func(f *SignUpForm) { f.Age = "121" }, "age", "Age must be a number between 1 and 120"},
		{"age not a number", func(f *SignUpForm) { f.Age = "abc" }, "age", "Age must be a number between 1 and 120"},
		{"missing gender", func(f *SignUpForm) { f.Gender = "" }, "gender", "Gender is required"},
		{"short mobile", func(f *SignUpForm) { f.Mobile = "12345" }, "mobile", "Mobile number must be exactly 10 digits"},
		{"bad email", func(f *SignUpForm) { f.Email = "lakshmi@example" }, "email", "Please enter a valid email address"},
		{"short password", func(f *SignUpForm) { f.Password = "abc123" }, "password", "Password must be at least 8 characters long"},
		{"letters only password", func(f *SignUpForm) { f.Password = "onlyletters" }, "password", "Password must be alphanumeric"},
		{"missing role", func(f *SignUpForm) { f.Role = "" }, "role", "Role is required"},
		{"unknown role", func(f *SignUpForm) { f.Role = "admin" }, "role", "Please select a valid role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validSignUp()
			tt.mutate(&form)
			errs := form.Validate()
			assert.Equal(t, tt.message, errs[tt.field])
			assert.Len(t, errs, 1)
		})
	}
}

func TestSignUpAgeReadsLeadingNumber(t *testing.T) {
	for _, age := range []string{"12 years", " 45", "7.5", "+30"} {
		form := validSignUp()
		form.Age = age
		assert.False(t, form.Validate().Any(), age)
	}
	for _, age := range []string{"years 12", "0 years", "-5", "99999999999999999999"} {
		form := validSignUp()
		form.Age = age
		assert.Equal(t, "Age must be a number between 1 and 120", form.Validate()["age"], age)
	}
}

func TestSignUpRequestOnlySendsRoleID(t *testing.T) {
	form := validSignUp()
	req := form.Request()
	assert.Equal(t, "ASHA-77", req.ASHAID)
	assert.Empty(t, req.DocID)

	form.Role = models.RoleDoctor
	req = form.Request()
	assert.Empty(t, req.ASHAID)
	assert.Equal(t, "DOC-1", req.DocID)

	form.Role = models.RolePatient
	req = form.Request()
	assert.Empty(t, req.ASHAID)
	assert.Empty(t, req.DocID)
}

func TestDecodeSignIn(t *testing.T) {
	form, err := DecodeSignIn(url.Values{
		"emailOrId": {" doc@example.org "},
		"password":  {"pw"},
		"role":      {"doctor"},
		"csrf":      {"ignored"},
	})
	require.NoError(t, err)
	assert.False(t, form.Validate().Any())
	assert.Equal(t, "doc@example.org", form.Request().Email)

	errs := SignInForm{}.Validate()
	assert.Equal(t, "Email or ID is required", errs["emailOrId"])
	assert.Equal(t, "Password is required", errs["password"])
	assert.Equal(t, "Role is required", errs["role"])
}
