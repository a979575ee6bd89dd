// Package auth holds the sign-in and sign-up forms and their validation rules.
package auth

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"frontend-gin/internal/backend"
	"frontend-gin/internal/models"

	"github.com/gorilla/schema"
)

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

var (
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern  = regexp.MustCompile(`\d`)
	leadingDigits = regexp.MustCompile(`^[+-]?\d+`)
)

// Errors maps a form field name to the message shown beside it.
type Errors map[string]string

func (e Errors) Any() bool {
	return len(e) > 0
}

type SignInForm struct {
	EmailOrID string      `schema:"emailOrId"`
	Password  string      `schema:"password"`
	Role      models.Role `schema:"role"`
}

func DecodeSignIn(values url.Values) (SignInForm, error) {
	var form SignInForm
	if err := decoder.Decode(&form, values); err != nil {
		return SignInForm{}, fmt.Errorf("decode sign in form: %w", err)
	}
	return form, nil
}

func (f SignInForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.EmailOrID) == "" {
		errs["emailOrId"] = "Email or ID is required"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	}
	if f.Role == "" {
		errs["role"] = "Role is required"
	} else if !f.Role.Valid() {
		errs["role"] = "Please select a valid role"
	}
	return errs
}

func (f SignInForm) Request() backend.SignInRequest {
	return backend.SignInRequest{
		Email:    strings.TrimSpace(f.EmailOrID),
		Password: f.Password,
	}
}

type SignUpForm struct {
	Name     string      `schema:"name"`
	Age      string      `schema:"age"`
	Gender   string      `schema:"gender"`
	Mobile   string      `schema:"mobile"`
	Email    string      `schema:"email"`
	Password string      `schema:"password"`
	Role     models.Role `schema:"role"`
	ASHAID   string      `schema:"ashaId"`
	DocID    string      `schema:"docId"`
}

func DecodeSignUp(values url.Values) (SignUpForm, error) {
	var form SignUpForm
	if err := decoder.Decode(&form, values); err != nil {
		return SignUpForm{}, fmt.Errorf("decode sign up form: %w", err)
	}
	return form, nil
}

func (f SignUpForm) Validate() Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}

	if f.Age == "" {
		errs["age"] = "Age is required"
	} else if age, ok := leadingInt(f.Age); !ok || age < 1 || age > 120 {
		errs["age"] = "Age must be a number between 1 and 120"
	}

	if f.Gender == "" {
		errs["gender"] = "Gender is required"
	}

	if f.Mobile == "" {
		errs["mobile"] = "Mobile number is required"
	} else if !mobilePattern.MatchString(f.Mobile) {
		errs["mobile"] = "Mobile number must be exactly 10 digits"
	}

	if f.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Please enter a valid email address"
	}

	switch {
	case f.Password == "":
		errs["password"] = "Password is required"
	case len(f.Password) < 8:
		errs["password"] = "Password must be at least 8 characters long"
	case !letterPattern.MatchString(f.Password) || !digitPattern.MatchString(f.Password):
		errs["password"] = "Password must be alphanumeric"
	}

	if f.Role == "" {
		errs["role"] = "Role is required"
	} else if !f.Role.Valid() {
		errs["role"] = "Please select a valid role"
	}

	return errs
}

// Request builds the backend payload. The role-specific id is only sent for
// the role it belongs to.
func (f SignUpForm) Request() backend.SignUpRequest {
	req := backend.SignUpRequest{
		Name:     strings.TrimSpace(f.Name),
		Gender:   f.Gender,
		Mobile:   f.Mobile,
		Email:    f.Email,
		Password: f.Password,
		Role:     f.Role,
	}
	switch f.Role {
	case models.RoleASHAWorker:
		req.ASHAID = strings.TrimSpace(f.ASHAID)
	case models.RoleDoctor:
		req.DocID = strings.TrimSpace(f.DocID)
	}
	return req
}

// leadingInt reads the integer at the start of s, ignoring whatever follows
// it, so "12 years" is 12.
func leadingInt(s string) (int, bool) {
	digits := leadingDigits.FindString(strings.TrimSpace(s))
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
