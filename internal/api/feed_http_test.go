package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationAcrossListings(t *testing.T) {
	s := setupServer(t)
	author := s.seedUser(t, "NoNameAuthor")
	group := s.seedGroup(t, "Тестовая группа", "test_slug")
	s.seedPosts(t, author, group, 13)

	urls := []string{
		"/",
		"/group/test_slug/",
		"/profile/NoNameAuthor/",
	}
	for _, u := range urls {
		w := s.get(t, u)
		require.Equal(t, http.StatusOK, w.Code, u)
		assert.Len(t, decodePage(t, w.Body).pageObj(t).Items, 10, u)

		w = s.get(t, u+"?page=2")
		require.Equal(t, http.StatusOK, w.Code, u)
		assert.Len(t, decodePage(t, w.Body).pageObj(t).Items, 3, u)
	}
}

func TestIndexContext(t *testing.T) {
	s := setupServer(t)
	author := s.seedUser(t, "NoNameAuthor")
	group := s.seedGroup(t, "Тестовая группа", "test-slug")
	s.seedPost(t, author, group, "Тестовый пост", time.Now())

	w := s.get(t, "/")
	require.Equal(t, http.StatusOK, w.Code)
	page := decodePage(t, w.Body)
	assert.Equal(t, "posts/index.html", page.Template)

	obj := page.pageObj(t)
	require.Len(t, obj.Items, 1)
	assert.Equal(t, "Тестовый пост", obj.Items[0].Text)
	assert.Equal(t, "NoNameAuthor", obj.Items[0].Author.Username)
	require.NotNil(t, obj.Items[0].Group)
	assert.Equal(t, "Тестовая группа", obj.Items[0].Group.Title)
}

func TestGroupFeedContext(t *testing.T) {
	s := setupServer(t)
	author := s.seedUser(t, "NoNameAuthor")
	group := s.seedGroup(t, "Тестовая группа", "test-slug")
	s.seedPost(t, author, group, "Тестовая запись", time.Now())

	w := s.get(t, "/group/test-slug/")
	require.Equal(t, http.StatusOK, w.Code)
	page := decodePage(t, w.Body)
	assert.Equal(t, "posts/group_list.html", page.Template)

	var g struct {
		Title       string `json:"title"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	require.NoError(t, json.Unmarshal(page.Context["group"], &g))
	assert.Equal(t, "Тестовая группа", g.Title)
	assert.Equal(t, "test-slug", g.Slug)
	assert.Equal(t, "Тестовое описание", g.Description)

	obj := page.pageObj(t)
	require.Len(t, obj.Items, 1)
	assert.Equal(t, "Тестовая запись", obj.Items[0].Text)
}

func TestProfileFeedContext(t *testing.T) {
	s := setupServer(t)
	author := s.seedUser(t, "NoNameAuthor")
	s.seedPosts(t, author, nil, 2)

	w := s.get(t, "/profile/NoNameAuthor/")
	require.Equal(t, http.StatusOK, w.Code)
	page := decodePage(t, w.Body)
	assert.Equal(t, "posts/profile.html", page.Template)

	var a struct {
		Username  string `json:"username"`
		PostCount int64  `json:"post_count"`
	}
	require.NoError(t, json.Unmarshal(page.Context["author"], &a))
	assert.Equal(t, "NoNameAuthor", a.Username)
	assert.Equal(t, int64(2), a.PostCount)
}

func TestFollowFeedShowsOnlyFollowedAuthors(t *testing.T) {
	s := setupServer(t)
	reader := s.seedUser(t, "reader")
	followed := s.seedUser(t, "followed")
	ignored := s.seedUser(t, "ignored")
	s.seedPosts(t, followed, nil, 2)
	s.seedPosts(t, ignored, nil, 2)
	session := s.sessionFor(t, reader)

	w := s.get(t, "/profile/followed/follow/", session)
	require.Equal(t, http.StatusFound, w.Code)

	w = s.get(t, "/follow/", session)
	require.Equal(t, http.StatusOK, w.Code)
	obj := decodePage(t, w.Body).pageObj(t)
	require.Len(t, obj.Items, 2)
	for _, item := range obj.Items {
		assert.Equal(t, "followed", item.Author.Username)
	}
}

func TestFollowFeedRequiresLogin(t *testing.T) {
	s := setupServer(t)

	w := s.get(t, "/follow/")
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/login", loc.Path)
	assert.Equal(t, "/follow/", loc.Query().Get("next"))
}

func TestUnknownLookupsReturn404(t *testing.T) {
	s := setupServer(t)
	user := s.seedUser(t, "user")
	session := s.sessionFor(t, user)

	for _, u := range []string{
		"/group/missing/",
		"/profile/missing/",
		"/posts/missing/",
	} {
		w := s.get(t, u)
		assert.Equal(t, http.StatusNotFound, w.Code, u)
	}
	for _, u := range []string{
		"/profile/missing/follow/",
		"/profile/missing/unfollow/",
	} {
		w := s.get(t, u, session)
		assert.Equal(t, http.StatusNotFound, w.Code, u)
	}

	w := s.get(t, "/definitely/not/a/route")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexCacheExpiresByTTLOnly(t *testing.T) {
	s := setupServer(t)
	author := s.seedUser(t, "author")
	post := s.seedPost(t, author, nil, "Пост для проверки кэша", time.Now())

	w := s.get(t, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodePage(t, w.Body).pageObj(t).Items, 1)

	// remove straight against the store; nothing evicts the cached page
	require.NoError(t, s.db.Delete(post).Error)

	w = s.get(t, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodePage(t, w.Body).pageObj(t).Items, 1,
		"deletion must stay invisible inside the TTL window")

	s.mr.FastForward(testCacheTTL + time.Second)

	w = s.get(t, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodePage(t, w.Body).pageObj(t).Items)
}
