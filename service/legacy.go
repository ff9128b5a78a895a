package service

import (
	"Forum/dao"
	"Forum/models"
	"Forum/pkg/log"
	"context"
	"fmt"

	"go.uber.org/zap"
)

const legacyBatchSize = 500

// LegacyImportService 将旧版 comentario_topico 表迁入 comentarios_topicos
type LegacyImportService struct {
	LegacyDAO  *dao.LegacyComment
	CommentDAO *dao.Comment
}

// Import 旧表不存在时返回 0；已导入过的行（同话题、作者、时间）会被跳过
func (s *LegacyImportService) Import(ctx context.Context) (int64, error) {
	if !s.LegacyDAO.HasTable() {
		log.L.Info("legacy comment table not found, nothing to import")
		return 0, nil
	}

	var skipped int64
	n, err := s.LegacyDAO.Import(ctx, legacyBatchSize, func(row *models.LegacyComment) (*models.Comment, bool, error) {
		c := row.Canonical()
		if c.Text == nil && !c.HasAttachment() {
			skipped++
			return nil, false, nil
		}
		exist, err := s.CommentDAO.IsExist(ctx, "id_topico = ? AND id_utilizador = ? AND data_criacao = ?",
			c.TopicID, c.UserID, c.CreatedAt)
		if err != nil {
			return nil, false, fmt.Errorf("check legacy comment %d: %w", row.ID, err)
		}
		if exist {
			skipped++
			return nil, false, nil
		}
		return c, true, nil
	})
	if err != nil {
		return n, fmt.Errorf("import legacy comments: %w", err)
	}

	log.L.Info("legacy comments imported", zap.Int64("imported", n), zap.Int64("skipped", skipped))
	return n, nil
}
