package models

// CategoryModel represents a post category.
type CategoryModel struct {
	Base
	Name        string `json:"name"        gorm:"uniqueIndex;not null;size:100"`
	Slug        string `json:"slug"        gorm:"uniqueIndex;not null;size:100"`
	Description string `json:"description"`

	Posts []PostModel `json:"posts,omitempty" gorm:"many2many:post_categories;joinForeignKey:CategoryID;joinReferences:PostID"`
}

func (CategoryModel) TableName() string { return "categories" }
