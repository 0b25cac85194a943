package service

import (
	"context"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

type CommentService interface {
	// Add stores a comment on postID authored by callerID. Both references
	// come from the URL and the session, never from the submission.
	Add(ctx context.Context, callerID, postID, text string) (*model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *commentService) Add(ctx context.Context, callerID, postID, text string) (*model.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, notFound(err)
	}
	return s.commentRepo.Create(ctx, postID, callerID, text)
}
