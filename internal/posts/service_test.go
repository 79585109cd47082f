package posts_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/beesaferoot/yatube/internal/forms"
	"github.com/beesaferoot/yatube/internal/models"
	"github.com/beesaferoot/yatube/internal/posts"
	"github.com/beesaferoot/yatube/internal/store"
	"github.com/beesaferoot/yatube/internal/testutil"
)

type recordingSaver struct {
	saved   []string
	removed []string
}

func (r *recordingSaver) Save(fh *multipart.FileHeader) (string, error) {
	name := "posts/" + fh.Filename
	r.saved = append(r.saved, name)
	return name, nil
}

func (r *recordingSaver) Remove(name string) error {
	r.removed = append(r.removed, name)
	return nil
}

type fixture struct {
	ctx     context.Context
	db      *gorm.DB
	store   *store.Store
	images  *recordingSaver
	service *posts.Service
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	s := store.New(db)
	images := &recordingSaver{}
	return &fixture{
		ctx:     context.Background(),
		db:      db,
		store:   s,
		images:  images,
		service: posts.NewService(s, images),
	}
}

var errWriteRefused = errors.New("write refused")

// refusePostWrites makes every insert and update of posts fail.
func (f *fixture) refusePostWrites(t *testing.T) {
	refuse := func(tx *gorm.DB) {
		if tx.Statement.Table == "posts" {
			_ = tx.AddError(errWriteRefused)
		}
	}
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:refuse_posts", refuse))
	require.NoError(t, f.db.Callback().Update().Before("gorm:update").Register("test:refuse_posts", refuse))
}

func imageHeader(t *testing.T, name string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, image.NewGray(image.Rect(0, 0, 1, 1))))
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	user := &models.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, f.store.CreateUser(f.ctx, user))
	return user
}

func (f *fixture) group(t *testing.T, slug string) *models.Group {
	group := &models.Group{Title: slug, Slug: slug}
	require.NoError(t, f.store.UpsertGroup(f.ctx, group))
	return group
}

func (f *fixture) post(t *testing.T, author *models.User, group *models.Group, text string) *models.Post {
	post := &models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, f.store.CreatePost(f.ctx, post))
	return post
}

func texts(items []models.Post) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Text)
	}
	return out
}

func TestIndexNewestFirst(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	f.post(t, leo, nil, "older")
	newest := f.post(t, leo, nil, "newest")

	page, err := f.service.Index(f.ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, page.Page.Items)
	assert.Equal(t, newest.ID, page.Page.Items[0].ID)
	assert.Equal(t, "leo", page.Page.Items[0].Author.Username)
}

func TestIndexPagination(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	for i := 0; i < 13; i++ {
		f.post(t, leo, nil, "post")
	}

	first, err := f.service.Index(f.ctx, "1")
	require.NoError(t, err)
	assert.Len(t, first.Page.Items, 10)
	assert.True(t, first.Page.HasNext())

	second, err := f.service.Index(f.ctx, "2")
	require.NoError(t, err)
	assert.Len(t, second.Page.Items, 3)
	assert.False(t, second.Page.HasNext())

	beyond, err := f.service.Index(f.ctx, "99")
	require.NoError(t, err)
	assert.Equal(t, 2, beyond.Page.Number)
}

func TestGroupPostsIsolation(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	cats := f.group(t, "cats")
	dogs := f.group(t, "dogs")
	f.post(t, leo, cats, "meow")
	f.post(t, leo, dogs, "woof")
	f.post(t, leo, nil, "nothing")

	page, err := f.service.GroupPosts(f.ctx, "dogs", "")
	require.NoError(t, err)
	assert.Equal(t, "dogs", page.Group.Slug)
	assert.Equal(t, []string{"woof"}, texts(page.Page.Items))

	_, err = f.service.GroupPosts(f.ctx, "birds", "")
	assert.True(t, posts.IsNotFound(err))
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	ann := f.user(t, "ann")
	f.post(t, leo, nil, "one")
	f.post(t, leo, nil, "two")
	f.post(t, ann, nil, "other")

	page, err := f.service.Profile(f.ctx, nil, "leo", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.PostCount)
	assert.Equal(t, []string{"two", "one"}, texts(page.Page.Items))
	assert.False(t, page.Following)

	_, err = f.service.Follow(f.ctx, ann, "leo")
	require.NoError(t, err)

	page, err = f.service.Profile(f.ctx, ann, "leo", "")
	require.NoError(t, err)
	assert.True(t, page.Following)
	assert.Equal(t, int64(1), page.FollowerCount)

	page, err = f.service.Profile(f.ctx, leo, "leo", "")
	require.NoError(t, err)
	assert.False(t, page.Following)
	assert.True(t, page.IsOwn)

	_, err = f.service.Profile(f.ctx, nil, "ghost", "")
	assert.True(t, posts.IsNotFound(err))
}

func TestPostDetail(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	ann := f.user(t, "ann")
	post := f.post(t, leo, nil, "hello")

	_, err := f.service.AddComment(f.ctx, ann, post.ID, forms.CommentInput{Text: "first"})
	require.NoError(t, err)
	_, err = f.service.AddComment(f.ctx, leo, post.ID, forms.CommentInput{Text: "second"})
	require.NoError(t, err)

	page, err := f.service.PostDetail(f.ctx, leo, post.ID)
	require.NoError(t, err)
	assert.True(t, page.CanEdit)
	assert.Equal(t, int64(1), page.AuthorPostCount)
	require.Len(t, page.Comments, 2)
	assert.Equal(t, "second", page.Comments[0].Text)
	assert.Equal(t, "ann", page.Comments[1].Author.Username)

	page, err = f.service.PostDetail(f.ctx, ann, post.ID)
	require.NoError(t, err)
	assert.False(t, page.CanEdit)

	_, err = f.service.PostDetail(f.ctx, nil, post.ID+100)
	assert.True(t, posts.IsNotFound(err))
}

func TestParsePostID(t *testing.T) {
	id, err := posts.ParsePostID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "abc", "0", "-1", "1.5"} {
		_, err := posts.ParsePostID(raw)
		assert.True(t, posts.IsNotFound(err), raw)
	}
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	cats := f.group(t, "cats")

	out, err := f.service.CreatePost(f.ctx, leo, forms.PostInput{Text: "new post", Group: "1"})
	require.NoError(t, err)
	assert.Equal(t, "/profile/leo/", out.Redirect)
	assert.Nil(t, out.Form)

	page, err := f.service.Index(f.ctx, "")
	require.NoError(t, err)
	require.Len(t, page.Page.Items, 1)
	created := page.Page.Items[0]
	assert.Equal(t, "new post", created.Text)
	assert.Equal(t, leo.ID, created.AuthorID)
	require.NotNil(t, created.GroupID)
	assert.Equal(t, cats.ID, *created.GroupID)
}

func TestCreatePostInvalid(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	f.group(t, "cats")

	out, err := f.service.CreatePost(f.ctx, leo, forms.PostInput{Text: " ", Group: "9"})
	require.NoError(t, err)
	assert.Empty(t, out.Redirect)
	require.NotNil(t, out.Form)
	assert.False(t, out.Form.IsEdit)
	assert.True(t, out.Form.Errors.Has("text"))
	assert.True(t, out.Form.Errors.Has("group"))
	assert.Equal(t, "9", out.Form.Group)
	assert.Len(t, out.Form.Groups, 1)

	page, err := f.service.Index(f.ctx, "")
	require.NoError(t, err)
	assert.Empty(t, page.Page.Items)
}

func TestEditPostByNonAuthor(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	ann := f.user(t, "ann")
	post := f.post(t, leo, nil, "original")

	out, err := f.service.EditPostForm(f.ctx, ann, post.ID)
	require.NoError(t, err)
	assert.Equal(t, posts.PostDetailURL(post.ID), out.Redirect)

	out, err = f.service.EditPost(f.ctx, ann, post.ID, forms.PostInput{Text: "hijacked"})
	require.NoError(t, err)
	assert.Equal(t, posts.PostDetailURL(post.ID), out.Redirect)

	reloaded, err := f.store.PostByID(f.ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", reloaded.Text)
}

func TestEditPostByAuthor(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	cats := f.group(t, "cats")
	post := f.post(t, leo, cats, "original")

	out, err := f.service.EditPostForm(f.ctx, leo, post.ID)
	require.NoError(t, err)
	require.NotNil(t, out.Form)
	assert.True(t, out.Form.IsEdit)
	assert.Equal(t, "original", out.Form.Text)
	assert.Equal(t, "1", out.Form.Group)

	out, err = f.service.EditPost(f.ctx, leo, post.ID, forms.PostInput{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "/posts/1/", out.Redirect)

	reloaded, err := f.store.PostByID(f.ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", reloaded.Text)
	assert.Nil(t, reloaded.GroupID)
	assert.True(t, post.PubDate.Equal(reloaded.PubDate))

	out, err = f.service.EditPost(f.ctx, leo, post.ID, forms.PostInput{Text: ""})
	require.NoError(t, err)
	require.NotNil(t, out.Form)
	assert.True(t, out.Form.IsEdit)
	assert.True(t, out.Form.Errors.Has("text"))

	_, err = f.service.EditPostForm(f.ctx, leo, 404)
	assert.True(t, posts.IsNotFound(err))
}

func TestCreatePostFailureRemovesImage(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	f.refusePostWrites(t)

	_, err := f.service.CreatePost(f.ctx, leo, forms.PostInput{Text: "hello", Image: imageHeader(t, "cat.png")})
	require.ErrorIs(t, err, errWriteRefused)
	assert.Equal(t, []string{"posts/cat.png"}, f.images.saved)
	assert.Equal(t, f.images.saved, f.images.removed)
}

func TestEditPostFailureRemovesNewImage(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	post := f.post(t, leo, nil, "original")
	f.refusePostWrites(t)

	_, err := f.service.EditPost(f.ctx, leo, post.ID, forms.PostInput{Text: "edited", Image: imageHeader(t, "dog.png")})
	require.ErrorIs(t, err, errWriteRefused)
	assert.Equal(t, []string{"posts/dog.png"}, f.images.removed)

	_, err = f.service.EditPost(f.ctx, leo, post.ID, forms.PostInput{Text: "edited"})
	require.ErrorIs(t, err, errWriteRefused)
	assert.Len(t, f.images.removed, 1)
}

func TestCanEdit(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	ann := f.user(t, "ann")
	post := f.post(t, leo, nil, "hello")

	ok, err := f.service.CanEdit(f.ctx, leo, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.service.CanEdit(f.ctx, ann, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.service.CanEdit(f.ctx, leo, post.ID+1)
	assert.True(t, posts.IsNotFound(err))
}

func TestAddCommentDropsInvalid(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	post := f.post(t, leo, nil, "hello")

	to, err := f.service.AddComment(f.ctx, leo, post.ID, forms.CommentInput{Text: "  "})
	require.NoError(t, err)
	assert.Equal(t, posts.PostDetailURL(post.ID), to)

	comments, err := f.store.CommentsForPost(f.ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	_, err = f.service.AddComment(f.ctx, leo, post.ID+1, forms.CommentInput{Text: "hi"})
	assert.True(t, posts.IsNotFound(err))
}

func TestFollowTwiceKeepsOneLink(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	ann := f.user(t, "ann")

	for i := 0; i < 2; i++ {
		to, err := f.service.Follow(f.ctx, ann, "leo")
		require.NoError(t, err)
		assert.Equal(t, "/profile/leo/", to)
	}

	count, err := f.store.CountFollowers(f.ctx, leo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFollowSelfIgnored(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")

	to, err := f.service.Follow(f.ctx, leo, "leo")
	require.NoError(t, err)
	assert.Equal(t, "/profile/leo/", to)

	count, err := f.store.CountFollowers(f.ctx, leo.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.service.Follow(f.ctx, leo, "ghost")
	assert.True(t, posts.IsNotFound(err))
}

func TestUnfollow(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	ann := f.user(t, "ann")

	to, err := f.service.Unfollow(f.ctx, ann, "leo")
	require.NoError(t, err)
	assert.Equal(t, "/follow/", to)

	_, err = f.service.Follow(f.ctx, ann, "leo")
	require.NoError(t, err)
	_, err = f.service.Unfollow(f.ctx, ann, "leo")
	require.NoError(t, err)

	following, err := f.store.IsFollowing(f.ctx, ann.ID, leo.ID)
	require.NoError(t, err)
	assert.False(t, following)

	_, err = f.service.Unfollow(f.ctx, ann, "ghost")
	assert.True(t, posts.IsNotFound(err))
}

func TestFollowIndex(t *testing.T) {
	f := newFixture(t)
	leo := f.user(t, "leo")
	ann := f.user(t, "ann")
	bob := f.user(t, "bob")
	f.post(t, leo, nil, "by leo")
	f.post(t, bob, nil, "by bob")

	_, err := f.service.Follow(f.ctx, ann, "leo")
	require.NoError(t, err)

	feed, err := f.service.FollowIndex(f.ctx, ann, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"by leo"}, texts(feed.Page.Items))

	empty, err := f.service.FollowIndex(f.ctx, bob, "")
	require.NoError(t, err)
	assert.Empty(t, empty.Page.Items)
	assert.Equal(t, 1, empty.Page.NumPages)
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "/group/cats/", posts.GroupURL("cats"))
	assert.Equal(t, "/profile/leo/follow/", posts.FollowURL("leo"))
	assert.Equal(t, "/profile/leo/unfollow/", posts.UnfollowURL("leo"))
	assert.Equal(t, "/posts/3/edit/", posts.PostEditURL(3))
	assert.Equal(t, "/posts/3/comment/", posts.CommentURL(3))
}
