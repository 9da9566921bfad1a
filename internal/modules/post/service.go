package post

import (
	"errors"
	"time"

	"github.com/inkwell-blog/core/internal/models"
	"github.com/inkwell-blog/core/internal/pkg/pagination"
	"gorm.io/gorm"
)

var errSlugTaken = errors.New("a post with this slug already exists")

// Service handles post business logic.
//
// Update and Delete perform no ownership check: any authenticated
// account may modify any post by id (an any-editor model).
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// ListedPost is a post row with its page-scoped category attachments.
type ListedPost struct {
	models.PostModel
	Categories []categoryRef
}

// ListFilter narrows the listing window. AuthorID pre-filters to one
// owner; Published applies an equality filter; CategoryIDs filters the
// fetched page only (see List).
type ListFilter struct {
	Published   *bool
	CategoryIDs []string
	AuthorID    string
}

// List fetches one window of posts ordered by created_at descending, then
// batch-loads category attachments for exactly the page's post ids in a
// single join query.
//
// Known limitation: the CategoryIDs filter runs against the fetched
// page, after the window is cut. A page can therefore
// return fewer than limit items while more matching posts exist at later
// cursors; nextCursor still advances by the full window.
func (s *Service) List(q pagination.Query, f ListFilter) ([]ListedPost, *int, error) {
	tx := s.db.Model(&models.PostModel{}).Order("created_at DESC")
	if f.Published != nil {
		tx = tx.Where("is_published = ?", *f.Published)
	}
	if f.AuthorID != "" {
		tx = tx.Where("author_id = ?", f.AuthorID)
	}

	var posts []models.PostModel
	next, err := pagination.Window(tx, q, &posts)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.attachCategories(posts)
	if err != nil {
		return nil, nil, err
	}

	if len(f.CategoryIDs) > 0 {
		items = filterByCategories(items, f.CategoryIDs)
	}
	return items, next, nil
}

// attachCategories loads (id, name, slug) for every category attached to
// the given posts with one junction join, keyed by the page's post ids.
func (s *Service) attachCategories(posts []models.PostModel) ([]ListedPost, error) {
	items := make([]ListedPost, len(posts))
	if len(posts) == 0 {
		return items, nil
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		items[i] = ListedPost{PostModel: p, Categories: []categoryRef{}}
	}

	var rows []struct {
		PostID string
		ID     string
		Name   string
		Slug   string
	}
	err := s.db.Table("post_categories").
		Select("post_categories.post_id AS post_id, categories.id AS id, categories.name AS name, categories.slug AS slug").
		Joins("JOIN categories ON categories.id = post_categories.category_id").
		Where("post_categories.post_id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byPost := make(map[string][]categoryRef, len(posts))
	for _, r := range rows {
		byPost[r.PostID] = append(byPost[r.PostID], categoryRef{ID: r.ID, Name: r.Name, Slug: r.Slug})
	}
	for i := range items {
		if cats, ok := byPost[items[i].ID]; ok {
			items[i].Categories = cats
		}
	}
	return items, nil
}

// filterByCategories keeps posts attached to at least one wanted category.
func filterByCategories(items []ListedPost, wanted []string) []ListedPost {
	want := make(map[string]struct{}, len(wanted))
	for _, id := range wanted {
		want[id] = struct{}{}
	}

	filtered := items[:0]
	for _, item := range items {
		for _, cat := range item.Categories {
			if _, ok := want[cat.ID]; ok {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// GetBySlug fetches a post by slug with its author identity and full
// category list. Returns nil when absent.
func (s *Service) GetBySlug(slug string) (*models.PostModel, error) {
	return s.getOne("slug = ?", slug)
}

// GetByID fetches a post by id, same shape as GetBySlug; used for edit
// pre-fill.
func (s *Service) GetByID(id string) (*models.PostModel, error) {
	return s.getOne("id = ?", id)
}

func (s *Service) getOne(cond string, arg string) (*models.PostModel, error) {
	var post models.PostModel
	err := s.db.
		Preload("Author").
		Preload("Categories").
		Where(cond, arg).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create inserts a post owned by authorID together with its junction rows
// in one transaction. The slug pre-check gives a friendly conflict; the
// unique index is the guarantee under concurrent creation.
func (s *Service) Create(authorID string, dto *CreatePostDTO) (*models.PostModel, error) {
	var count int64
	if err := s.db.Model(&models.PostModel{}).
		Where("slug = ?", dto.Slug).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errSlugTaken
	}

	post := models.PostModel{
		Title:       dto.Title,
		Content:     dto.Content,
		Slug:        dto.Slug,
		IsPublished: dto.Published,
		AuthorID:    authorID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		return insertJunctionRows(tx, post.ID, dto.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update patches a post by id. Only supplied scalar fields are applied;
// updated_at is always refreshed. A supplied category list (even empty)
// replaces the whole association set; an omitted one leaves it untouched.
// The scalar update and the replace run in one transaction.
func (s *Service) Update(id string, dto *UpdatePostDTO) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.Slug != nil {
		updates["slug"] = *dto.Slug
	}
	if dto.Published != nil {
		updates["is_published"] = *dto.Published
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&post).Updates(updates).Error; err != nil {
			return err
		}
		if dto.CategoryIDs == nil {
			return nil
		}
		// Replace, not merge: drop the old set, insert the new one.
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		return insertJunctionRows(tx, post.ID, *dto.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post and its junction rows in one transaction.
func (s *Service) Delete(id string) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.PostModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func insertJunctionRows(tx *gorm.DB, postID string, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]models.PostCategory, len(categoryIDs))
	for i, cid := range categoryIDs {
		rows[i] = models.PostCategory{PostID: postID, CategoryID: cid}
	}
	return tx.Create(&rows).Error
}
