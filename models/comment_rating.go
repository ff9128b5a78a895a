package models

import "time"

const (
	RatingLike    = "like"
	RatingDislike = "dislike"
)

// CommentRating 用户对评论的评价，每个用户对每条评论最多一条
type CommentRating struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	CommentID uint64    `gorm:"column:id_comentario;not null;uniqueIndex:idx_avaliacoes_comentario_utilizador"`
	UserID    uint64    `gorm:"column:id_utilizador;not null;uniqueIndex:idx_avaliacoes_comentario_utilizador"`
	Kind      string    `gorm:"column:tipo;type:varchar(10);not null"`
	CreatedAt time.Time `gorm:"column:data;not null"`
}

func (CommentRating) TableName() string {
	return "comentario_avaliacoes"
}

// CounterColumn 评价类型对应的计数列
func CounterColumn(kind string) (string, bool) {
	switch kind {
	case RatingLike:
		return "likes", true
	case RatingDislike:
		return "dislikes", true
	}
	return "", false
}
