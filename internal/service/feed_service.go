package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/internal/cache"
	"github.com/d60-Lab/microblog/internal/pagination"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/logger"
)

// FeedService assembles the paginated post listings.
//
// Ordering contract: the index, profile and follow feeds are newest-first;
// the group feed is oldest-first. The group ordering is preserved observed
// behavior, not an accident of this implementation.
type FeedService interface {
	Index(ctx context.Context, page int) (*pagination.Page[PostView], error)
	Group(ctx context.Context, slug string, page int) (*GroupView, *pagination.Page[PostView], error)
	Profile(ctx context.Context, username string, page int) (*AuthorProfile, *pagination.Page[PostView], error)
	Following(ctx context.Context, followerID string, page int) (*pagination.Page[PostView], error)
}

type feedService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	feedCache *cache.FeedCache
	pageSize  int
}

// NewFeedService builds the feed service. feedCache may be nil, in which
// case the index feed always hits the database.
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	feedCache *cache.FeedCache,
	pageSize int,
) FeedService {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	return &feedService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		feedCache: feedCache,
		pageSize:  pageSize,
	}
}

// Index serves page through the feed cache. Cache entries expire by TTL
// only; a write becomes visible once the entry for its page lapses.
func (s *feedService) Index(ctx context.Context, page int) (*pagination.Page[PostView], error) {
	key := cache.IndexKey(page, s.pageSize)
	if s.feedCache != nil {
		if data, ok := s.feedCache.Get(ctx, key); ok {
			var cached pagination.Page[PostView]
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
			logger.Warn("dropping undecodable feed cache entry", zap.String("key", key))
		}
	}

	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	result := pagination.Paginate(newPostViews(posts), page, s.pageSize)

	if s.feedCache != nil {
		if payload, err := json.Marshal(result); err == nil {
			s.feedCache.Set(ctx, key, payload)
		}
	}
	return result, nil
}

func (s *feedService) Group(ctx context.Context, slug string, page int) (*GroupView, *pagination.Page[PostView], error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, notFound(err)
	}
	posts, err := s.postRepo.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}
	return newGroupView(group), pagination.Paginate(newPostViews(posts), page, s.pageSize), nil
}

func (s *feedService) Profile(ctx context.Context, username string, page int) (*AuthorProfile, *pagination.Page[PostView], error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, notFound(err)
	}
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID)
	if err != nil {
		return nil, nil, err
	}
	count, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, nil, err
	}
	profile := &AuthorProfile{AuthorView: newAuthorView(author), PostCount: count}
	return profile, pagination.Paginate(newPostViews(posts), page, s.pageSize), nil
}

func (s *feedService) Following(ctx context.Context, followerID string, page int) (*pagination.Page[PostView], error) {
	posts, err := s.postRepo.ListFollowed(ctx, followerID)
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(newPostViews(posts), page, s.pageSize), nil
}
