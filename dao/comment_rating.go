package dao

import (
	"Forum/models"

	"gorm.io/gorm"
)

type CommentRating struct {
	Repo[models.CommentRating]
}

func NewCommentRating(db *gorm.DB) *CommentRating {
	return &CommentRating{
		Repo: NewRepo[models.CommentRating](db),
	}
}

// FindForUpdate 事务内查询用户对评论的评价，不存在返回 nil
func (d *CommentRating) FindForUpdate(tx *gorm.DB, commentID, userID uint64) (*models.CommentRating, error) {
	var rating []*models.CommentRating
	err := tx.Clauses(lockingClause(tx)...).
		Where("id_comentario = ? AND id_utilizador = ?", commentID, userID).
		Limit(1).
		Find(&rating).Error
	if err != nil || len(rating) == 0 {
		return nil, err
	}
	return rating[0], nil
}

func (d *CommentRating) Create(tx *gorm.DB, rating *models.CommentRating) error {
	return tx.Create(rating).Error
}

func (d *CommentRating) Delete(tx *gorm.DB, id uint64) error {
	return tx.Delete(&models.CommentRating{}, id).Error
}

func (d *CommentRating) UpdateKind(tx *gorm.DB, id uint64, kind string) error {
	return tx.Model(&models.CommentRating{}).
		Where("id = ?", id).
		Update("tipo", kind).Error
}
