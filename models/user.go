package models

const (
	RoleAdmin   = 1 // 管理员
	RoleManager = 2 // 版主
)

type User struct {
	ID     uint64  `gorm:"column:id_utilizador;primaryKey;autoIncrement" json:"id_utilizador"`
	Name   string  `gorm:"column:nome;type:varchar(255);not null" json:"nome"`
	Email  string  `gorm:"column:email;type:varchar(255);uniqueIndex:idx_utilizadores_email" json:"email"`
	Avatar *string `gorm:"column:foto_perfil;type:varchar(500)" json:"foto_perfil"`
	Role   int     `gorm:"column:id_cargo;not null;default:3" json:"id_cargo"`
}

func (User) TableName() string {
	return "utilizadores"
}

// IsModerator 管理员或版主
func IsModerator(role int) bool {
	return role == RoleAdmin || role == RoleManager
}
