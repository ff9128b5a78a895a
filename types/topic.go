package types

import "time"

// TopicUri /topicos-categoria/:id
type TopicUri struct {
	ID uint64 `uri:"id" binding:"required,min=1"`
}

// CategoryUri /topicos-categoria/categoria/:id
type CategoryUri struct {
	ID uint64 `uri:"id" binding:"required,min=1"`
}

type CreateTopicRequest struct {
	CategoryID  uint64  `json:"id_categoria" form:"id_categoria"`
	AreaID      *uint64 `json:"id_area" form:"id_area"`
	Title       string  `json:"titulo" form:"titulo"`
	Description *string `json:"descricao" form:"descricao"`
}

// UpdateTopicRequest 空字段保留原值
type UpdateTopicRequest struct {
	Title       *string `json:"titulo" form:"titulo"`
	Description *string `json:"descricao" form:"descricao"`
}

type CategorySummary struct {
	ID   uint64 `json:"id_categoria"`
	Name string `json:"nome"`
}

type UserSummary struct {
	ID     uint64  `json:"id_utilizador"`
	Name   string  `json:"nome"`
	Email  string  `json:"email"`
	Avatar *string `json:"foto_perfil"`
}

type TopicItem struct {
	ID          uint64           `json:"id_topico"`
	CategoryID  uint64           `json:"id_categoria"`
	AreaID      *uint64          `json:"id_area"`
	Title       string           `json:"titulo"`
	Description *string          `json:"descricao"`
	CreatedBy   uint64           `json:"criado_por"`
	CreatedAt   time.Time        `json:"data_criacao"`
	Active      bool             `json:"ativo"`
	Category    *CategorySummary `json:"categoria,omitempty"`
	Creator     *UserSummary     `json:"criador,omitempty"`
}
