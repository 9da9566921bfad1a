package models

// PostModel is a blog post. AuthorID is set at creation and never changes.
type PostModel struct {
	Base
	Title       string `json:"title"     gorm:"not null;size:255"`
	Content     string `json:"content"   gorm:"type:longtext;not null"`
	Slug        string `json:"slug"      gorm:"uniqueIndex;not null;size:255"`
	IsPublished bool   `json:"published" gorm:"default:false;index"`
	AuthorID    string `json:"authorId"  gorm:"type:char(36);index;not null"`

	Author     *UserModel      `json:"author,omitempty"     gorm:"foreignKey:AuthorID"`
	Categories []CategoryModel `json:"categories,omitempty" gorm:"many2many:post_categories;joinForeignKey:PostID;joinReferences:CategoryID"`
}

func (PostModel) TableName() string { return "posts" }

// PostCategory is the post↔category junction row. It has no identity of
// its own; the set for a post is always replaced wholesale.
type PostCategory struct {
	PostID     string `gorm:"type:char(36);primaryKey"`
	CategoryID string `gorm:"type:char(36);primaryKey"`
}

func (PostCategory) TableName() string { return "post_categories" }
