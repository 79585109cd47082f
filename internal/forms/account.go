package forms

import "strings"

type LoginInput struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func ValidateLogin(in LoginInput) Result[LoginInput] {
	in.Username = strings.TrimSpace(in.Username)
	return Result[LoginInput]{Value: in, Errors: check(in)}
}

type SignupInput struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Password  string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
}

func ValidateSignup(in SignupInput) Result[SignupInput] {
	in.Username = strings.TrimSpace(in.Username)
	return Result[SignupInput]{Value: in, Errors: check(in)}
}
