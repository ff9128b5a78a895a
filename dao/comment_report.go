package dao

import (
	"Forum/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type CommentReport struct {
	Repo[models.CommentReport]
}

func NewCommentReport(db *gorm.DB) *CommentReport {
	return &CommentReport{
		Repo: NewRepo[models.CommentReport](db),
	}
}

func (d *CommentReport) Create(tx *gorm.DB, report *models.CommentReport) error {
	return tx.Create(report).Error
}

// ListByComment 评论的举报记录，最新的在前
func (d *CommentReport) ListByComment(ctx context.Context, commentID uint64) ([]*models.CommentReport, error) {
	var reports []*models.CommentReport
	err := d.Db.WithContext(ctx).
		Where("id_comentario = ?", commentID).
		Order("data DESC, id_denuncia DESC").
		Find(&reports).Error
	return reports, err
}

// List 管理端分页列表，resolved 为 nil 时不过滤处理状态
func (d *CommentReport) List(ctx context.Context, resolved *bool, offset, limit int) ([]*models.CommentReport, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if resolved != nil {
			return db.Where("resolvida = ?", *resolved)
		}
		return db
	}

	var count int64
	if err := d.Model(ctx).Scopes(filter).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if count == 0 {
		return []*models.CommentReport{}, 0, nil
	}

	var reports []*models.CommentReport
	err := d.Db.WithContext(ctx).
		Scopes(filter).
		Preload("Reporter").
		Preload("Comment").
		Preload("Comment.User").
		Order("data DESC, id_denuncia DESC").
		Offset(offset).
		Limit(limit).
		Find(&reports).Error
	return reports, count, err
}

// Resolve 仅处理未解决的举报，返回是否有行被更新
func (d *CommentReport) Resolve(ctx context.Context, reportID, adminID uint64, action string, at time.Time) (bool, error) {
	res := d.Db.WithContext(ctx).
		Model(&models.CommentReport{}).
		Where("id_denuncia = ? AND resolvida = ?", reportID, false).
		Updates(resolution(adminID, action, at))
	return res.RowsAffected > 0, res.Error
}

// ResolveByComment 将评论下所有未处理的举报标记为已解决
func (d *CommentReport) ResolveByComment(tx *gorm.DB, commentID, adminID uint64, action string, at time.Time) (int64, error) {
	res := tx.Model(&models.CommentReport{}).
		Where("id_comentario = ? AND resolvida = ?", commentID, false).
		Updates(resolution(adminID, action, at))
	return res.RowsAffected, res.Error
}

func resolution(adminID uint64, action string, at time.Time) map[string]any {
	return map[string]any{
		"resolvida":      true,
		"acao_tomada":    action,
		"data_resolucao": at,
		"resolvida_por":  adminID,
	}
}
