package dbschema

import (
	"time"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/user"
)

type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email     *string   `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}
	return &user.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
