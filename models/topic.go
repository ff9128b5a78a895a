package models

import "time"

// Topic 分类下的讨论话题
type Topic struct {
	ID          uint64    `gorm:"column:id_topico;primaryKey;autoIncrement"`
	CategoryID  uint64    `gorm:"column:id_categoria;not null;index:idx_topicos_categoria"`
	AreaID      *uint64   `gorm:"column:id_area"`
	Title       string    `gorm:"column:titulo;type:varchar(255);not null"`
	Description *string   `gorm:"column:descricao;type:text"`
	CreatedBy   uint64    `gorm:"column:criado_por;not null;index:idx_topicos_criador"`
	CreatedAt   time.Time `gorm:"column:data_criacao;not null;index:idx_topicos_data"`
	Active      bool      `gorm:"column:ativo;not null;default:true"`

	Category *Category `gorm:"foreignKey:CategoryID;references:ID"`
	Creator  *User     `gorm:"foreignKey:CreatedBy;references:ID"`
}

func (Topic) TableName() string {
	return "topico_categoria"
}
