package models

// Category 话题分类
type Category struct {
	ID   uint64 `gorm:"column:id_categoria;primaryKey;autoIncrement" json:"id_categoria"`
	Name string `gorm:"column:nome;type:varchar(255);not null" json:"nome"`
}

func (Category) TableName() string {
	return "categorias"
}

// Area 分类下的领域
type Area struct {
	ID         uint64 `gorm:"column:id_area;primaryKey;autoIncrement" json:"id_area"`
	Name       string `gorm:"column:nome;type:varchar(255);not null" json:"nome"`
	CategoryID uint64 `gorm:"column:id_categoria;not null;index:idx_areas_categoria" json:"id_categoria"`
}

func (Area) TableName() string {
	return "areas"
}
