package models

// UserModel is a registered account. Accounts are never mutated after
// registration; there is no profile edit surface.
type UserModel struct {
	Base
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

// PublicIdentity is the identity shape exposed to other callers.
type PublicIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Public returns the externally visible identity of the user.
func (u *UserModel) Public() PublicIdentity {
	return PublicIdentity{ID: u.ID, Username: u.Username}
}
