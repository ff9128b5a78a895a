package models

import "time"

const (
	AttachmentImage = "imagem"
	AttachmentVideo = "video"
	AttachmentFile  = "file"
)

// Comment 话题下的评论，文本与附件至少有一个
type Comment struct {
	ID             uint64    `gorm:"column:id_comentario;primaryKey;autoIncrement"`
	TopicID        uint64    `gorm:"column:id_topico;not null;index:idx_comentarios_topico_data,priority:1"`
	UserID         uint64    `gorm:"column:id_utilizador;not null;index:idx_comentarios_utilizador"`
	Text           *string   `gorm:"column:texto;type:text"`
	AttachmentURL  *string   `gorm:"column:anexo_url;type:varchar(500)"`
	AttachmentName *string   `gorm:"column:anexo_nome;type:varchar(255)"`
	AttachmentKind *string   `gorm:"column:tipo_anexo;type:varchar(20)"`
	Likes          int64     `gorm:"column:likes;not null;default:0"`
	Dislikes       int64     `gorm:"column:dislikes;not null;default:0"`
	Reports        int64     `gorm:"column:denuncias;not null;default:0"`
	Hidden         bool      `gorm:"column:oculto;not null;default:false"`
	CreatedAt      time.Time `gorm:"column:data_criacao;not null;index:idx_comentarios_topico_data,priority:2"`

	User *User `gorm:"foreignKey:UserID;references:ID"`
}

func (Comment) TableName() string {
	return "comentarios_topicos"
}

// HasAttachment 是否带附件
func (c *Comment) HasAttachment() bool {
	return c.AttachmentURL != nil && *c.AttachmentURL != ""
}
