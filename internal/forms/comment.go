package forms

import "strings"

type CommentInput struct {
	Text string `form:"text" validate:"required"`
}

func ValidateComment(in CommentInput) Result[string] {
	in.Text = strings.TrimSpace(in.Text)
	return Result[string]{Value: in.Text, Errors: check(in)}
}
