package models

import "time"

// LegacyComment 旧版评论表，只读，通过 Canonical 转换到 comentarios_topicos
type LegacyComment struct {
	ID             uint64    `gorm:"column:id_comentario;primaryKey"`
	TopicID        uint64    `gorm:"column:id_topico"`
	UserID         uint64    `gorm:"column:id_utilizador"`
	Comment        *string   `gorm:"column:comentario"`
	AttachmentURL  *string   `gorm:"column:anexo_url"`
	AttachmentName *string   `gorm:"column:anexo_nome"`
	AttachmentKind *string   `gorm:"column:tipo_anexo"`
	Likes          int64     `gorm:"column:likes"`
	Dislikes       int64     `gorm:"column:dislikes"`
	Reports        int64     `gorm:"column:denuncias"`
	CreatedAt      time.Time `gorm:"column:data_comentario"`
}

func (LegacyComment) TableName() string {
	return "comentario_topico"
}

// Canonical 转换为当前评论结构，主键交给新表生成
func (l *LegacyComment) Canonical() *Comment {
	text := l.Comment
	if text != nil && *text == "" {
		text = nil
	}
	return &Comment{
		TopicID:        l.TopicID,
		UserID:         l.UserID,
		Text:           text,
		AttachmentURL:  l.AttachmentURL,
		AttachmentName: l.AttachmentName,
		AttachmentKind: l.AttachmentKind,
		Likes:          nonNegative(l.Likes),
		Dislikes:       nonNegative(l.Dislikes),
		Reports:        nonNegative(l.Reports),
		CreatedAt:      l.CreatedAt,
	}
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
