package dao

import (
	"Forum/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LegacyComment struct {
	Repo[models.LegacyComment]
}

func NewLegacyComment(db *gorm.DB) *LegacyComment {
	return &LegacyComment{
		Repo: NewRepo[models.LegacyComment](db),
	}
}

// HasTable 旧表不存在时跳过导入
func (d *LegacyComment) HasTable() bool {
	return d.Db.Migrator().HasTable(&models.LegacyComment{})
}

// Import 分批读取旧表并写入评论表，返回写入条数；fn 返回错误时中止导入
func (d *LegacyComment) Import(ctx context.Context, batchSize int, fn func(*models.LegacyComment) (*models.Comment, bool, error)) (int64, error) {
	var imported int64
	var rows []*models.LegacyComment

	res := d.Db.WithContext(ctx).
		FindInBatches(&rows, batchSize, func(tx *gorm.DB, _ int) error {
			batch := make([]*models.Comment, 0, len(rows))
			for _, row := range rows {
				c, ok, err := fn(row)
				if err != nil {
					return err
				}
				if ok {
					batch = append(batch, c)
				}
			}
			if len(batch) == 0 {
				return nil
			}
			if err := d.Db.WithContext(ctx).Omit(clause.Associations).Create(&batch).Error; err != nil {
				return err
			}
			imported += int64(len(batch))
			return nil
		})
	return imported, res.Error
}
