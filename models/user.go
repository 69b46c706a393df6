package models

// User is a registered shopper or an administrator.
// Password holds a bcrypt hash and never leaves the server.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	IsAdmin  int    `gorm:"default:0" json:"is_admin"` // 0 or 1
}

// PublicUser is the login/register echo.
type PublicUser struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin int    `json:"is_admin"`
	Token   string `json:"token,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}
