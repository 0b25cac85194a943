package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

// PostInput carries the validated form fields of a create or edit
// submission. Image is the media-relative path of an already stored upload;
// empty means "no new attachment".
type PostInput struct {
	Text    string
	GroupID string
	Image   string
}

// PostDetail is everything the detail page renders.
type PostDetail struct {
	Post            PostView
	AuthorPostCount int64
	Comments        []CommentView
}

type PostService interface {
	Detail(ctx context.Context, id string) (*PostDetail, error)
	// Create stores a new post owned by authorID. The author is never taken
	// from the submission.
	Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error)
	// GetForEdit returns the post iff callerID is its author; otherwise
	// ErrNotAuthor (or ErrNotFound when the id is unknown).
	GetForEdit(ctx context.Context, callerID, id string) (*model.Post, error)
	// Update mutates text, group and image in place. Identity, author and
	// creation time never change.
	Update(ctx context.Context, callerID, id string, in PostInput) (*model.Post, error)
}

type postService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, commentRepo repository.CommentRepository) PostService {
	return &postService{postRepo: postRepo, groupRepo: groupRepo, commentRepo: commentRepo}
}

func (s *postService) Detail(ctx context.Context, id string) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{
		Post:            newPostView(post),
		AuthorPostCount: count,
		Comments:        newCommentViews(comments),
	}, nil
}

// resolveGroup maps an optional group reference (id or slug) to a nullable
// foreign key.
func (s *postService) resolveGroup(ctx context.Context, ref string) (*string, error) {
	if ref == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetByID(ctx, ref)
	if notFound(err) == ErrNotFound {
		group, err = s.groupRepo.GetBySlug(ctx, ref)
	}
	if err != nil {
		if notFound(err) == ErrNotFound {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group.ID, nil
}

func (s *postService) Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error) {
	groupID, err := s.resolveGroup(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}
	post := &model.Post{
		ID:       uuid.New().String(),
		AuthorID: authorID,
		Text:     in.Text,
		GroupID:  groupID,
		Image:    in.Image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) GetForEdit(ctx context.Context, callerID, id string) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if post.AuthorID != callerID {
		return nil, ErrNotAuthor
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, callerID, id string, in PostInput) (*model.Post, error) {
	post, err := s.GetForEdit(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	groupID, err := s.resolveGroup(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}
	post.Text = in.Text
	post.GroupID = groupID
	if in.Image != "" {
		post.Image = in.Image
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
