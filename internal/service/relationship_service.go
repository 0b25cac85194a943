package service

import (
	"context"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

// RelationshipService 关系链服务
type RelationshipService interface {
	// Follow creates the edge follower -> author. Re-invoking never creates
	// a duplicate and never errors; following yourself returns ErrFollowSelf.
	Follow(ctx context.Context, followerID, authorUsername string) (*model.User, error)
	// Unfollow deletes the edge if present; absence is a no-op, not an error.
	Unfollow(ctx context.Context, followerID, authorUsername string) (*model.User, error)
	IsFollowing(ctx context.Context, followerID, authorID string) (bool, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewRelationshipService(followRepo repository.FollowRepository, userRepo repository.UserRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo, userRepo: userRepo}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, authorUsername string) (*model.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return nil, notFound(err)
	}
	if followerID == author.ID {
		return author, ErrFollowSelf
	}
	if err := s.followRepo.Create(ctx, followerID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, authorUsername string) (*model.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, authorUsername)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.followRepo.Delete(ctx, followerID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *relationshipService) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, authorID)
}
