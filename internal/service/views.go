package service

import (
	"time"

	"github.com/d60-Lab/microblog/internal/model"
)

// View types are the renderer-facing snapshots of the models. They carry
// only what templates touch and marshal cleanly into feed cache entries.

type AuthorView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type GroupView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type PostView struct {
	ID        string     `json:"id"`
	Author    AuthorView `json:"author"`
	Text      string     `json:"text"`
	Group     *GroupView `json:"group,omitempty"`
	Image     string     `json:"image,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type CommentView struct {
	ID        string     `json:"id"`
	Author    AuthorView `json:"author"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
}

// AuthorProfile is the profile page's author object: the identity plus the
// counters profile templates display.
type AuthorProfile struct {
	AuthorView
	PostCount int64 `json:"post_count"`
}

func newAuthorView(u *model.User) AuthorView {
	return AuthorView{ID: u.ID, Username: u.Username}
}

func newGroupView(g *model.Group) *GroupView {
	if g == nil {
		return nil
	}
	return &GroupView{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func newPostView(p *model.Post) PostView {
	return PostView{
		ID:        p.ID,
		Author:    newAuthorView(&p.Author),
		Text:      p.Text,
		Group:     newGroupView(p.Group),
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
	}
}

func newPostViews(posts []*model.Post) []PostView {
	res := make([]PostView, len(posts))
	for i, p := range posts {
		res[i] = newPostView(p)
	}
	return res
}

func newCommentViews(comments []*model.Comment) []CommentView {
	res := make([]CommentView, len(comments))
	for i, c := range comments {
		res[i] = CommentView{
			ID:        c.ID,
			Author:    newAuthorView(&c.Author),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
	}
	return res
}
