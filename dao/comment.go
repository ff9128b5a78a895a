package dao

import (
	"Forum/models"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Comment struct {
	Repo[models.Comment]
}

func NewComment(db *gorm.DB) *Comment {
	return &Comment{
		Repo: NewRepo[models.Comment](db),
	}
}

// CommentCounters 评论的三个计数
type CommentCounters struct {
	Likes    int64 `gorm:"column:likes"`
	Dislikes int64 `gorm:"column:dislikes"`
	Reports  int64 `gorm:"column:denuncias"`
}

// ListByTopic 按创建时间正序分页，同一时刻按 id 排序，不含已隐藏的评论
func (d *Comment) ListByTopic(ctx context.Context, topicID uint64, offset, limit int) ([]*models.Comment, int64, error) {
	var (
		count    int64
		comments []*models.Comment
	)

	if err := d.Model(ctx).Where("id_topico = ? AND oculto = ?", topicID, false).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if count == 0 {
		return []*models.Comment{}, 0, nil
	}

	err := d.Db.WithContext(ctx).
		Preload("User").
		Where("id_topico = ? AND oculto = ?", topicID, false).
		Order("data_criacao ASC, id_comentario ASC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, count, err
}

// FindInTopic 评论必须属于指定话题
func (d *Comment) FindInTopic(ctx context.Context, topicID, commentID uint64) (*models.Comment, error) {
	var comment models.Comment
	err := d.Db.WithContext(ctx).
		Where("id_comentario = ? AND id_topico = ?", commentID, topicID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (d *Comment) GetWithUser(ctx context.Context, commentID uint64) (*models.Comment, error) {
	var comment models.Comment
	err := d.Db.WithContext(ctx).
		Preload("User").
		Where("id_comentario = ?", commentID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (d *Comment) Create(ctx context.Context, comment *models.Comment) error {
	return d.Db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

// IncrCounter 原子增减计数列，减到 0 为止
func (d *Comment) IncrCounter(tx *gorm.DB, commentID uint64, column string, delta int) error {
	if !isCounterColumn(column) {
		return fmt.Errorf("unknown counter column %q", column)
	}

	var expr clause.Expr
	if delta >= 0 {
		expr = gorm.Expr(column+" + ?", delta)
	} else {
		expr = gorm.Expr(fmt.Sprintf("CASE WHEN %s > ? THEN %s - ? ELSE 0 END", column, column), -delta, -delta)
	}

	return tx.Model(&models.Comment{}).
		Where("id_comentario = ?", commentID).
		UpdateColumn(column, expr).Error
}

func (d *Comment) Counters(tx *gorm.DB, commentID uint64) (*CommentCounters, error) {
	var counters CommentCounters
	err := tx.Model(&models.Comment{}).
		Select("likes, dislikes, denuncias").
		Where("id_comentario = ?", commentID).
		Take(&counters).Error
	if err != nil {
		return nil, err
	}
	return &counters, nil
}

// AttachmentURLs 话题下所有评论的附件地址
func (d *Comment) AttachmentURLs(ctx context.Context, topicID uint64) ([]string, error) {
	var urls []string
	err := d.Model(ctx).
		Where("id_topico = ? AND anexo_url IS NOT NULL AND anexo_url <> ''", topicID).
		Pluck("anexo_url", &urls).Error
	return urls, err
}

// Hide 隐藏评论，列表中不再返回
func (d *Comment) Hide(tx *gorm.DB, commentID uint64) error {
	return tx.Model(&models.Comment{}).
		Where("id_comentario = ?", commentID).
		UpdateColumn("oculto", true).Error
}

func isCounterColumn(column string) bool {
	switch column {
	case "likes", "dislikes", "denuncias":
		return true
	}
	return false
}
