package dao

import (
	"Forum/models"

	"gorm.io/gorm"
)

type User struct {
	Repo[models.User]
}

func NewUser(db *gorm.DB) *User {
	return &User{
		Repo: NewRepo[models.User](db),
	}
}
