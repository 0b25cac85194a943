package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/auth"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

// Seeds a local database with demo authors, groups, posts and follows so
// the service has something to serve out of the box.
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	ctx := context.Background()

	// params
	USERS := 10
	POSTS := 40
	if s := os.Getenv("USERS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			USERS = v
		}
	}
	if s := os.Getenv("POSTS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			POSTS = v
		}
	}

	password := must(auth.HashPassword("password"))

	users := make([]model.User, USERS)
	for i := 0; i < USERS; i++ {
		id := uuid.New().String()
		users[i] = model.User{
			ID:       id,
			Username: fmt.Sprintf("author%02d", i),
			Email:    fmt.Sprintf("author%02d@example.com", i),
			Password: password,
		}
	}
	check(db.CreateInBatches(&users, 100).Error)

	groups := []model.Group{
		{ID: uuid.New().String(), Title: "General", Slug: "general", Description: "Anything goes"},
		{ID: uuid.New().String(), Title: "Travel", Slug: "travel", Description: "Trip reports"},
		{ID: uuid.New().String(), Title: "Books", Slug: "books", Description: "Reading notes"},
	}
	check(db.Create(&groups).Error)

	postRepo := repository.NewPostRepository(db)
	for i := 0; i < POSTS; i++ {
		author := users[i%len(users)]
		post := &model.Post{
			ID:       uuid.New().String(),
			AuthorID: author.ID,
			Text:     fmt.Sprintf("hello from %s, post %d", author.Username, i),
		}
		if i%3 != 0 {
			post.GroupID = &groups[i%len(groups)].ID
		}
		check(postRepo.Create(ctx, post))
	}

	// everyone follows author00
	followRepo := repository.NewFollowRepository(db)
	for i := 1; i < len(users); i++ {
		check(followRepo.Create(ctx, users[i].ID, users[0].ID))
	}

	fmt.Printf("seeded %d users, %d groups, %d posts\n", USERS, len(groups), POSTS)
}
