package post

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/core/internal/middleware"
	"github.com/inkwell-blog/core/internal/models"
	"github.com/inkwell-blog/core/internal/pkg/jwt"
	"github.com/inkwell-blog/core/internal/testutil"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	r := testutil.NewRouter()
	NewHandler(NewService(db)).RegisterRoutes(r.Group("/api/v1"), middleware.Auth())
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, username string) (models.UserModel, map[string]string) {
	t.Helper()
	u := models.UserModel{Username: username, Password: "irrelevant"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	token, err := jwt.Mint(u.ID, u.Username)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return u, map[string]string{"Cookie": middleware.AuthCookieName + "=" + token}
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) models.CategoryModel {
	t.Helper()
	cat := models.CategoryModel{Name: name, Slug: slug}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category %q: %v", slug, err)
	}
	return cat
}

func seedPost(t *testing.T, db *gorm.DB, authorID, slug string, published bool, createdAt time.Time) models.PostModel {
	t.Helper()
	p := models.PostModel{
		Title:       slug,
		Content:     "content of " + slug,
		Slug:        slug,
		IsPublished: published,
		AuthorID:    authorID,
	}
	p.CreatedAt = createdAt
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed post %q: %v", slug, err)
	}
	return p
}

type pageResponse struct {
	Items      []listItem `json:"items"`
	NextCursor *int       `json:"nextCursor"`
}

func fetchPage(t *testing.T, r *gin.Engine, path string, headers map[string]string) pageResponse {
	t.Helper()
	w := testutil.DoJSON(t, r, "GET", path, nil, headers)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: status = %d (body %s)", path, w.Code, w.Body.String())
	}
	var page pageResponse
	testutil.Decode(t, w, &page)
	return page
}

func TestCreateRequiresAuthentication(t *testing.T) {
	r, _ := newTestRouter(t)

	body := map[string]interface{}{"title": "t", "content": "c", "slug": "s"}
	w := testutil.DoJSON(t, r, "POST", "/api/v1/posts", body, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestCreate(t *testing.T) {
	r, db := newTestRouter(t)
	author, headers := seedUser(t, db, "alice")
	cat := seedCategory(t, db, "Go", "go")

	t.Run("success", func(t *testing.T) {
		body := map[string]interface{}{
			"title":       "First Post",
			"content":     "# hello",
			"slug":        "first-post",
			"published":   true,
			"categoryIds": []string{cat.ID},
		}
		w := testutil.DoJSON(t, r, "POST", "/api/v1/posts", body, headers)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusCreated, w.Body.String())
		}
		var resp postResponse
		testutil.Decode(t, w, &resp)
		if resp.AuthorID != author.ID {
			t.Errorf("authorId = %q, want the caller %q", resp.AuthorID, author.ID)
		}
		if !resp.Published {
			t.Error("published = false, want true")
		}
		// Categories are not attached on create; callers re-fetch.
		if len(resp.Categories) != 0 {
			t.Errorf("created response carries %d categories, want 0", len(resp.Categories))
		}
	})

	t.Run("slug conflict", func(t *testing.T) {
		body := map[string]interface{}{"title": "Again", "content": "x", "slug": "first-post"}
		w := testutil.DoJSON(t, r, "POST", "/api/v1/posts", body, headers)
		if w.Code != http.StatusConflict {
			t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		body := map[string]interface{}{"title": "No Content", "slug": "no-content"}
		w := testutil.DoJSON(t, r, "POST", "/api/v1/posts", body, headers)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("omitted slug derives from the title", func(t *testing.T) {
		body := map[string]interface{}{"title": "What's New in 1.24?", "content": "x"}
		w := testutil.DoJSON(t, r, "POST", "/api/v1/posts", body, headers)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusCreated, w.Body.String())
		}
		var resp postResponse
		testutil.Decode(t, w, &resp)
		if resp.Slug != "whats-new-in-124" {
			t.Errorf("slug = %q, want %q", resp.Slug, "whats-new-in-124")
		}
	})
}

func TestGetBySlugAndByID(t *testing.T) {
	r, db := newTestRouter(t)
	author, headers := seedUser(t, db, "alice")
	goCat := seedCategory(t, db, "Go", "go")
	dbCat := seedCategory(t, db, "Databases", "databases")

	body := map[string]interface{}{
		"title":       "Joined Post",
		"content":     "body",
		"slug":        "joined-post",
		"categoryIds": []string{goCat.ID, dbCat.ID},
	}
	w := testutil.DoJSON(t, r, "POST", "/api/v1/posts", body, headers)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %s", w.Body.String())
	}
	var created postResponse
	testutil.Decode(t, w, &created)

	assertDetail := func(t *testing.T, resp postResponse) {
		t.Helper()
		if resp.Author == nil || resp.Author.Username != "alice" || resp.Author.ID != author.ID {
			t.Errorf("author = %+v, want alice's public identity", resp.Author)
		}
		got := map[string]bool{}
		for _, c := range resp.Categories {
			got[c.ID] = true
		}
		if len(got) != 2 || !got[goCat.ID] || !got[dbCat.ID] {
			t.Errorf("categories = %v, want exactly the two attached", got)
		}
	}

	t.Run("by slug", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "GET", "/api/v1/posts/joined-post", nil, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
		}
		var resp postResponse
		testutil.Decode(t, w, &resp)
		assertDetail(t, resp)
	})

	t.Run("by id", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "GET", "/api/v1/posts/id/"+created.ID, nil, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
		}
		var resp postResponse
		testutil.Decode(t, w, &resp)
		assertDetail(t, resp)
	})

	t.Run("unknown slug", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "GET", "/api/v1/posts/missing", nil, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "GET", "/api/v1/posts/id/no-such-id", nil, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestUpdateCategoryReplaceSemantics(t *testing.T) {
	r, db := newTestRouter(t)
	_, headers := seedUser(t, db, "alice")
	c1 := seedCategory(t, db, "One", "one")
	c2 := seedCategory(t, db, "Two", "two")
	c3 := seedCategory(t, db, "Three", "three")

	body := map[string]interface{}{
		"title": "P", "content": "c", "slug": "p",
		"categoryIds": []string{c1.ID, c2.ID},
	}
	w := testutil.DoJSON(t, r, "POST", "/api/v1/posts", body, headers)
	var created postResponse
	testutil.Decode(t, w, &created)

	fetchCategoryIDs := func(t *testing.T) map[string]bool {
		t.Helper()
		w := testutil.DoJSON(t, r, "GET", "/api/v1/posts/p", nil, nil)
		var resp postResponse
		testutil.Decode(t, w, &resp)
		got := map[string]bool{}
		for _, c := range resp.Categories {
			got[c.ID] = true
		}
		return got
	}

	if got := fetchCategoryIDs(t); len(got) != 2 || !got[c1.ID] || !got[c2.ID] {
		t.Fatalf("initial categories = %v, want {one, two}", got)
	}

	t.Run("supplied list replaces, not merges", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "PATCH", "/api/v1/posts/"+created.ID,
			map[string]interface{}{"categoryIds": []string{c3.ID}}, headers)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
		}
		if got := fetchCategoryIDs(t); len(got) != 1 || !got[c3.ID] {
			t.Errorf("categories = %v, want exactly {three}", got)
		}
	})

	t.Run("omitted list leaves the set untouched", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "PATCH", "/api/v1/posts/"+created.ID,
			map[string]interface{}{"title": "renamed"}, headers)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
		}
		if got := fetchCategoryIDs(t); len(got) != 1 || !got[c3.ID] {
			t.Errorf("categories = %v, want {three} unchanged", got)
		}
	})

	t.Run("empty list clears the set", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "PATCH", "/api/v1/posts/"+created.ID,
			map[string]interface{}{"categoryIds": []string{}}, headers)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
		}
		if got := fetchCategoryIDs(t); len(got) != 0 {
			t.Errorf("categories = %v, want empty", got)
		}
	})
}

func TestUpdatePartialFields(t *testing.T) {
	r, db := newTestRouter(t)
	_, headers := seedUser(t, db, "alice")

	body := map[string]interface{}{"title": "Original", "content": "original body", "slug": "orig"}
	w := testutil.DoJSON(t, r, "POST", "/api/v1/posts", body, headers)
	var created postResponse
	testutil.Decode(t, w, &created)

	w = testutil.DoJSON(t, r, "PATCH", "/api/v1/posts/"+created.ID,
		map[string]interface{}{"title": "Renamed", "published": true}, headers)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}
	var updated postResponse
	testutil.Decode(t, w, &updated)

	if updated.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", updated.Title)
	}
	if updated.Content != "original body" {
		t.Errorf("content = %q, want the prior value retained", updated.Content)
	}
	if !updated.Published {
		t.Error("published = false, want true")
	}
	if !updated.Modified.After(created.Modified) {
		t.Errorf("modified = %v, want refreshed past %v", updated.Modified, created.Modified)
	}

	t.Run("missing id", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "PATCH", "/api/v1/posts/no-such-id",
			map[string]interface{}{"title": "X"}, headers)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	// Preserved behavior: no ownership check on update.
	t.Run("another account may update the post", func(t *testing.T) {
		_, otherHeaders := seedUser(t, db, "mallory")
		w := testutil.DoJSON(t, r, "PATCH", "/api/v1/posts/"+created.ID,
			map[string]interface{}{"title": "Edited by another"}, otherHeaders)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})
}

func TestDelete(t *testing.T) {
	r, db := newTestRouter(t)
	author, headers := seedUser(t, db, "alice")
	cat := seedCategory(t, db, "Go", "go")

	post := seedPost(t, db, author.ID, "doomed", true, time.Now())
	if err := db.Create(&models.PostCategory{PostID: post.ID, CategoryID: cat.ID}).Error; err != nil {
		t.Fatalf("seed junction: %v", err)
	}

	t.Run("requires authentication", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "DELETE", "/api/v1/posts/"+post.ID, nil, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("removes the post and its junction rows", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "DELETE", "/api/v1/posts/"+post.ID, nil, headers)
		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
		}

		fetched := testutil.DoJSON(t, r, "GET", "/api/v1/posts/doomed", nil, nil)
		if fetched.Code != http.StatusNotFound {
			t.Errorf("post still retrievable after delete: %d", fetched.Code)
		}
		var count int64
		if err := db.Model(&models.PostCategory{}).Where("post_id = ?", post.ID).Count(&count).Error; err != nil {
			t.Fatalf("count junction rows: %v", err)
		}
		if count != 0 {
			t.Errorf("junction rows = %d, want 0", count)
		}
	})

	t.Run("second delete is not found", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "DELETE", "/api/v1/posts/"+post.ID, nil, headers)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestListPagination(t *testing.T) {
	r, db := newTestRouter(t)
	author, _ := seedUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		seedPost(t, db, author.ID, fmt.Sprintf("post-%02d", i), true, base.Add(time.Duration(i)*time.Second))
	}

	tests := []struct {
		cursor   int
		wantLen  int
		wantNext *int
	}{
		{0, 10, intPtr(10)},
		{10, 10, intPtr(20)},
		{20, 5, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("cursor=%d", tt.cursor), func(t *testing.T) {
			page := fetchPage(t, r, fmt.Sprintf("/api/v1/posts?limit=10&cursor=%d", tt.cursor), nil)
			if len(page.Items) != tt.wantLen {
				t.Errorf("len(items) = %d, want %d", len(page.Items), tt.wantLen)
			}
			if (page.NextCursor == nil) != (tt.wantNext == nil) {
				t.Fatalf("nextCursor = %v, want %v", page.NextCursor, tt.wantNext)
			}
			if page.NextCursor != nil && *page.NextCursor != *tt.wantNext {
				t.Errorf("nextCursor = %d, want %d", *page.NextCursor, *tt.wantNext)
			}
		})
	}

	t.Run("newest first", func(t *testing.T) {
		page := fetchPage(t, r, "/api/v1/posts?limit=3", nil)
		if page.Items[0].Slug != "post-24" {
			t.Errorf("first item = %q, want post-24", page.Items[0].Slug)
		}
	})
}

func TestListPublishedFilter(t *testing.T) {
	r, db := newTestRouter(t)
	author, _ := seedUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	seedPost(t, db, author.ID, "published-post", true, base)
	seedPost(t, db, author.ID, "draft-post", false, base.Add(time.Second))

	t.Run("published=true", func(t *testing.T) {
		page := fetchPage(t, r, "/api/v1/posts?published=true", nil)
		if len(page.Items) != 1 || page.Items[0].Slug != "published-post" {
			t.Errorf("items = %+v, want only the published post", page.Items)
		}
	})

	t.Run("published=false", func(t *testing.T) {
		page := fetchPage(t, r, "/api/v1/posts?published=false", nil)
		if len(page.Items) != 1 || page.Items[0].Slug != "draft-post" {
			t.Errorf("items = %+v, want only the draft", page.Items)
		}
	})

	t.Run("no filter returns both", func(t *testing.T) {
		page := fetchPage(t, r, "/api/v1/posts", nil)
		if len(page.Items) != 2 {
			t.Errorf("len(items) = %d, want 2", len(page.Items))
		}
	})
}

// Category filtering applies to the fetched page only: the window never
// shifts to compensate, so a page may come back under-filled while more
// matching posts exist at later cursors.
func TestListCategoryFilterIsPageScoped(t *testing.T) {
	r, db := newTestRouter(t)
	author, _ := seedUser(t, db, "alice")
	cat := seedCategory(t, db, "Go", "go")

	base := time.Now().Add(-time.Hour)
	// 10 posts; only the two oldest carry the category.
	for i := 0; i < 10; i++ {
		p := seedPost(t, db, author.ID, fmt.Sprintf("post-%02d", i), true, base.Add(time.Duration(i)*time.Second))
		if i < 2 {
			if err := db.Create(&models.PostCategory{PostID: p.ID, CategoryID: cat.ID}).Error; err != nil {
				t.Fatalf("seed junction: %v", err)
			}
		}
	}

	// First page (newest 5) holds no tagged posts: empty items, but the
	// cursor still advances by the full window.
	page := fetchPage(t, r, "/api/v1/posts?limit=5&categoryIds="+cat.ID, nil)
	if len(page.Items) != 0 {
		t.Errorf("page 1 items = %d, want 0", len(page.Items))
	}
	if page.NextCursor == nil || *page.NextCursor != 5 {
		t.Fatalf("page 1 nextCursor = %v, want 5", page.NextCursor)
	}

	page = fetchPage(t, r, fmt.Sprintf("/api/v1/posts?limit=5&cursor=%d&categoryIds=%s", *page.NextCursor, cat.ID), nil)
	if len(page.Items) != 2 {
		t.Errorf("page 2 items = %d, want the 2 tagged posts", len(page.Items))
	}
	for _, item := range page.Items {
		if len(item.Categories) != 1 || item.Categories[0].ID != cat.ID {
			t.Errorf("item %q categories = %+v, want the tag attached", item.Slug, item.Categories)
		}
	}
}

func TestListMine(t *testing.T) {
	r, db := newTestRouter(t)
	alice, aliceHeaders := seedUser(t, db, "alice")
	bob, _ := seedUser(t, db, "bob")

	base := time.Now().Add(-time.Hour)
	seedPost(t, db, alice.ID, "alice-published", true, base)
	seedPost(t, db, alice.ID, "alice-draft", false, base.Add(time.Second))
	seedPost(t, db, bob.ID, "bob-post", true, base.Add(2*time.Second))

	t.Run("requires authentication", func(t *testing.T) {
		w := testutil.DoJSON(t, r, "GET", "/api/v1/posts/mine", nil, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("returns only the caller's posts, drafts included", func(t *testing.T) {
		page := fetchPage(t, r, "/api/v1/posts/mine", aliceHeaders)
		if len(page.Items) != 2 {
			t.Fatalf("len(items) = %d, want 2", len(page.Items))
		}
		for _, item := range page.Items {
			if item.AuthorID != alice.ID {
				t.Errorf("item %q owned by %q, want alice", item.Slug, item.AuthorID)
			}
		}
	})
}

func intPtr(v int) *int { return &v }
