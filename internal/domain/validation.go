package domain

import (
	"sort"
	"strings"
)

// GeneralField carries a form-wide message that is not tied to one input.
const GeneralField = "general"

const minPasswordLength = 6

// FormErrors maps a form field to its message. It doubles as an error so a
// form submission can return it directly.
type FormErrors map[string]string

func (e FormErrors) Error() string {
	if len(e) == 0 {
		return "form is valid"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

func (e FormErrors) Valid() bool {
	return len(e) == 0
}

// General builds a FormErrors carrying one form-wide message.
func General(message string) FormErrors {
	return FormErrors{GeneralField: message}
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterForm struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func ValidateLogin(form LoginForm) FormErrors {
	errs := FormErrors{}
	if blank(form.Email) {
		errs["email"] = "Email is required"
	}
	if form.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

func ValidateRegister(form RegisterForm) FormErrors {
	errs := FormErrors{}
	if blank(form.FullName) {
		errs["fullName"] = "Full Name is required"
	}
	if blank(form.Email) {
		errs["email"] = "Email is required"
	}
	switch {
	case form.Password == "":
		errs["password"] = "Password is required"
	case len(form.Password) < minPasswordLength:
		errs["password"] = "Password must be at least 6 characters"
	}
	return errs
}

func ValidateLicense(fields LicenseFields) FormErrors {
	errs := FormErrors{}
	if blank(fields.FirstName) {
		errs["firstName"] = "First Name is required"
	}
	if blank(fields.LastName) {
		errs["lastName"] = "Last Name is required"
	}
	if blank(fields.VehicleType) {
		errs["vehicleType"] = "Vehicle Type is required"
	}
	if blank(fields.VehicleMake) {
		errs["vehicleMake"] = "Vehicle Make is required"
	}
	if blank(fields.Address) {
		errs["address"] = "Address is required"
	}
	return errs
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
