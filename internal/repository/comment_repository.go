package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, postID, authorID, text string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
	Count(ctx context.Context) (int64, error)
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, postID, authorID, text string) (*model.Comment, error) {
	c := &model.Comment{ID: uuid.New().String(), PostID: postID, AuthorID: authorID, Text: text}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListByPost preloads each comment's author so detail pages render without
// per-comment user lookups.
func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&res).Error
	return res, err
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Count(&cnt).Error
	return cnt, err
}
