package validation

import "github.com/go-playground/validator/v10"

const (
	MsgEmailRequired    = "Email is required."
	MsgEmailInvalid     = "Please enter a valid email address."
	MsgPasswordTooShort = "Password must be at least 6 characters."
	MsgEmailTaken       = "This email is already registered."
	MsgLoginIncomplete  = "Please enter your email and password."
	MsgInvalidLogin     = "Invalid email or password."
)

type registration struct {
	Email    string `json:"email" validate:"notblank,simple_email"`
	Password string `json:"password" validate:"min=6"`
}

type login struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"min=6"`
}

// Registration checks the shape of new credentials. The duplicate-email rule
// needs the stored users and is applied by the auth service.
func Registration(email, password string) Errors {
	return fieldErrors(&registration{Email: email, Password: password}, func(field string, fe validator.FieldError) (string, string) {
		switch {
		case field == "email" && fe.Tag() == "notblank":
			return "email", MsgEmailRequired
		case field == "email":
			return "email", MsgEmailInvalid
		case field == "password":
			return "password", MsgPasswordTooShort
		}
		return field, fe.Tag()
	})
}

// Login is the pre-check of the login form; any failure yields one "form"
// message.
func Login(email, password string) Errors {
	return fieldErrors(&login{Email: email, Password: password}, func(string, validator.FieldError) (string, string) {
		return "form", MsgLoginIncomplete
	})
}
