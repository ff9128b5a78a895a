package models

import "time"

type CommentReport struct {
	ID        uint64    `gorm:"column:id_denuncia;primaryKey;autoIncrement"`
	CommentID uint64    `gorm:"column:id_comentario;not null;index:idx_denuncias_comentario"`
	TopicID   uint64    `gorm:"column:id_topico;not null;index:idx_denuncias_topico"`
	UserID    uint64    `gorm:"column:id_utilizador;not null"`
	Reason    *string   `gorm:"column:motivo;type:text"`
	CreatedAt time.Time `gorm:"column:data;not null"`

	// 管理员处理结果
	Resolved   bool       `gorm:"column:resolvida;not null;default:false;index:idx_denuncias_resolvida"`
	Action     *string    `gorm:"column:acao_tomada;type:text"`
	ResolvedAt *time.Time `gorm:"column:data_resolucao"`
	ResolvedBy *uint64    `gorm:"column:resolvida_por"`

	Reporter *User    `gorm:"foreignKey:UserID;references:ID"`
	Comment  *Comment `gorm:"foreignKey:CommentID;references:ID"`
}

// ActionHidden 隐藏评论时自动写入的处理说明
const ActionHidden = "Conteúdo ocultado pelo administrador"

func (CommentReport) TableName() string {
	return "comentario_denuncias"
}
