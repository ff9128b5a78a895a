package dao

import (
	"Forum/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Topic struct {
	Repo[models.Topic]
}

func NewTopic(db *gorm.DB) *Topic {
	return &Topic{
		Repo: NewRepo[models.Topic](db),
	}
}

func withSummaries(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Creator")
}

const topicOrder = "data_criacao DESC, id_topico DESC"

// List 所有话题，携带分类与创建者摘要，按创建时间倒序
func (d *Topic) List(ctx context.Context) ([]*models.Topic, error) {
	var topics []*models.Topic
	err := withSummaries(d.Db.WithContext(ctx)).
		Order(topicOrder).
		Find(&topics).Error
	return topics, err
}

// ListPlain 不带关联的话题列表
func (d *Topic) ListPlain(ctx context.Context) ([]*models.Topic, error) {
	var topics []*models.Topic
	err := d.Db.WithContext(ctx).
		Order(topicOrder).
		Find(&topics).Error
	return topics, err
}

func (d *Topic) ListByCategory(ctx context.Context, categoryID uint64) ([]*models.Topic, error) {
	var topics []*models.Topic
	err := withSummaries(d.Db.WithContext(ctx)).
		Where("id_categoria = ?", categoryID).
		Order(topicOrder).
		Find(&topics).Error
	return topics, err
}

// GetDetail 单个话题及其关联
func (d *Topic) GetDetail(ctx context.Context, topicID uint64) (*models.Topic, error) {
	var topic models.Topic
	err := withSummaries(d.Db.WithContext(ctx)).
		Where("id_topico = ?", topicID).
		First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// GetWithCategory 只加载分类，用于计算附件目录
func (d *Topic) GetWithCategory(ctx context.Context, topicID uint64) (*models.Topic, error) {
	var topic models.Topic
	err := d.Db.WithContext(ctx).
		Preload("Category").
		Where("id_topico = ?", topicID).
		First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (d *Topic) Create(ctx context.Context, topic *models.Topic) error {
	return d.Db.WithContext(ctx).Omit(clause.Associations).Create(topic).Error
}

func (d *Topic) Update(ctx context.Context, topicID uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).
		Model(&models.Topic{}).
		Where("id_topico = ?", topicID).
		Updates(fields).Error
}

// DeleteCascade 删除话题及其评论、评价、举报
func (d *Topic) DeleteCascade(ctx context.Context, topicID uint64) error {
	return d.Transaction(ctx, func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).
			Select("id_comentario").
			Where("id_topico = ?", topicID)

		if err := tx.Where("id_comentario IN (?)", commentIDs).
			Delete(&models.CommentRating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_topico = ?", topicID).
			Delete(&models.CommentReport{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_topico = ?", topicID).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id_topico = ?", topicID).
			Delete(&models.Topic{}).Error
	})
}
