package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/auth"
	"github.com/d60-Lab/microblog/internal/cache"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
)

const testCacheTTL = 20 * time.Second

type testServer struct {
	router  *gin.Engine
	db      *gorm.DB
	mr      *miniredis.Miniredis
	authMgr *auth.Manager

	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Server:     config.ServerConfig{Port: "0", Mode: gin.TestMode},
		Cache:      config.CacheConfig{IndexTTL: testCacheTTL},
		Pagination: config.PaginationConfig{PageSize: 10},
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
			LoginURL:  "/auth/login",
		},
		Media: config.MediaConfig{Dir: t.TempDir()},
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	feedCache := cache.NewFeedCache(rdb, cfg.Cache.IndexTTL)
	feeds := service.NewFeedService(postRepo, groupRepo, userRepo, feedCache, cfg.Pagination.PageSize)
	posts := service.NewPostService(postRepo, groupRepo, commentRepo)
	comments := service.NewCommentService(commentRepo, postRepo)
	relations := service.NewRelationshipService(followRepo, userRepo)
	authMgr := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, userRepo)

	h := handler.New(feeds, posts, comments, relations, authMgr, db, cfg.Media.Dir)

	return &testServer{
		router:   NewRouter(cfg, h, authMgr),
		db:       db,
		mr:       mr,
		authMgr:  authMgr,
		users:    userRepo,
		posts:    postRepo,
		comments: commentRepo,
		follows:  followRepo,
	}
}

func (s *testServer) seedUser(t *testing.T, username string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword("password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &model.User{ID: uuid.New().String(), Username: username, Email: username + "@example.com", Password: hash}
	if err := s.db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func (s *testServer) seedGroup(t *testing.T, title, slug string) *model.Group {
	t.Helper()
	g := &model.Group{ID: uuid.New().String(), Title: title, Slug: slug, Description: "Тестовое описание"}
	if err := s.db.Create(g).Error; err != nil {
		t.Fatalf("seed group %s: %v", slug, err)
	}
	return g
}

func (s *testServer) seedPost(t *testing.T, author *model.User, group *model.Group, text string, createdAt time.Time) *model.Post {
	t.Helper()
	p := &model.Post{ID: uuid.New().String(), AuthorID: author.ID, Text: text, CreatedAt: createdAt}
	if group != nil {
		p.GroupID = &group.ID
	}
	if err := s.db.Create(p).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

func (s *testServer) seedPosts(t *testing.T, author *model.User, group *model.Group, n int) {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		s.seedPost(t, author, group, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}
}

// sessionFor mints a session cookie for user.
func (s *testServer) sessionFor(t *testing.T, user *model.User) *http.Cookie {
	t.Helper()
	token, err := s.authMgr.IssueToken(user.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return &http.Cookie{Name: "session", Value: token}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return s.do(t, req)
}

func (s *testServer) postForm(t *testing.T, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return s.do(t, req)
}

// postMultipart submits fields plus an optional file part named "image".
func (s *testServer) postMultipart(t *testing.T, target string, fields map[string]string, image []byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", "small.gif")
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return s.do(t, req)
}

// pagePayload is the decoded (template, context) envelope.
type pagePayload struct {
	Template string                     `json:"template"`
	Context  map[string]json.RawMessage `json:"context"`
}

func decodePage(t *testing.T, body io.Reader) *pagePayload {
	t.Helper()
	var envelope struct {
		Code int          `json:"code"`
		Data *pagePayload `json:"data"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode page envelope: %v", err)
	}
	if envelope.Data == nil {
		t.Fatal("envelope carries no page data")
	}
	return envelope.Data
}

// pageObj decodes the paginated listing out of a page context.
type pageObj struct {
	Items []struct {
		ID     string `json:"id"`
		Text   string `json:"text"`
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
		Group *struct {
			Title string `json:"title"`
		} `json:"group"`
	} `json:"items"`
	Number     int `json:"number"`
	TotalPages int `json:"total_pages"`
}

func (p *pagePayload) pageObj(t *testing.T) *pageObj {
	t.Helper()
	raw, ok := p.Context["page_obj"]
	if !ok {
		t.Fatalf("context has no page_obj, keys: %v", contextKeys(p))
	}
	var obj pageObj
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("decode page_obj: %v", err)
	}
	return &obj
}

func contextKeys(p *pagePayload) []string {
	keys := make([]string, 0, len(p.Context))
	for k := range p.Context {
		keys = append(keys, k)
	}
	return keys
}
