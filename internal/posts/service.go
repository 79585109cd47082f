// Package posts holds the view logic of the blog: it loads what each page
// shows and applies the rules of the create, edit, comment and follow actions.
// HTTP concerns stay in the web package; results come back as typed page
// contexts or redirect outcomes.
package posts

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"

	"github.com/beesaferoot/yatube/internal/models"
	"github.com/beesaferoot/yatube/internal/store"
)

// ImageSaver persists an uploaded image and returns its stored name. Remove
// deletes a stored image by that name.
type ImageSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(name string) error
}

type Service struct {
	store  *store.Store
	images ImageSaver
}

func NewService(s *store.Store, images ImageSaver) *Service {
	return &Service{store: s, images: images}
}

// Outcome is the result of an action: either a redirect target or a form to
// render again.
type Outcome struct {
	Redirect string
	Form     *PostForm
}

func redirect(to string) Outcome {
	return Outcome{Redirect: to}
}

// ParsePostID converts a path segment to a post id. Anything that is not a
// positive integer is reported as a missing post.
func ParsePostID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("post %q: %w", raw, store.ErrNotFound)
	}
	return uint(id), nil
}

func IndexURL() string { return "/" }

func GroupURL(slug string) string { return "/group/" + url.PathEscape(slug) + "/" }

func ProfileURL(username string) string { return "/profile/" + url.PathEscape(username) + "/" }

func PostDetailURL(id uint) string { return fmt.Sprintf("/posts/%d/", id) }

func PostEditURL(id uint) string { return fmt.Sprintf("/posts/%d/edit/", id) }

func CommentURL(id uint) string { return fmt.Sprintf("/posts/%d/comment/", id) }

func FollowIndexURL() string { return "/follow/" }

func FollowURL(username string) string { return ProfileURL(username) + "follow/" }

func UnfollowURL(username string) string { return ProfileURL(username) + "unfollow/" }

func isSelf(viewer *models.User, user *models.User) bool {
	return viewer != nil && user != nil && viewer.ID == user.ID
}
