package forms

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"strconv"
	"strings"
)

const (
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidImage  = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

// PostInput is the raw post form as submitted. Image is attached by the
// handler since it arrives as a multipart file.
type PostInput struct {
	Text  string                `form:"text" validate:"required"`
	Group string                `form:"group"`
	Image *multipart.FileHeader `form:"-" validate:"-"`
}

// PostValues is a validated post form.
type PostValues struct {
	Text    string
	GroupID *uint
	Image   *multipart.FileHeader
}

// GroupChecker confirms that a selected group exists.
type GroupChecker interface {
	GroupExists(ctx context.Context, id uint) (bool, error)
}

// ValidatePost checks the post form. The returned error is reserved for
// lookup failures; invalid input is reported through the Result.
func ValidatePost(ctx context.Context, in PostInput, groups GroupChecker) (Result[PostValues], error) {
	in.Text = strings.TrimSpace(in.Text)
	in.Group = strings.TrimSpace(in.Group)

	res := Result[PostValues]{Errors: check(in)}
	res.Value.Text = in.Text

	if in.Group != "" {
		id, err := strconv.ParseUint(in.Group, 10, 64)
		if err != nil {
			res.Errors.Add("group", msgInvalidChoice)
		} else {
			ok, err := groups.GroupExists(ctx, uint(id))
			if err != nil {
				return res, fmt.Errorf("validate group: %w", err)
			}
			if !ok {
				res.Errors.Add("group", msgInvalidChoice)
			} else {
				gid := uint(id)
				res.Value.GroupID = &gid
			}
		}
	}

	if in.Image != nil {
		if err := checkImage(in.Image); err != nil {
			res.Errors.Add("image", msgInvalidImage)
		} else {
			res.Value.Image = in.Image
		}
	}
	return res, nil
}

func checkImage(fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	_, _, err = image.DecodeConfig(f)
	return err
}
