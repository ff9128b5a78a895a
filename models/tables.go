package models

// Tables 参与迁移的表，旧版评论表不在此列
func Tables() []any {
	return []any{
		&Category{},
		&Area{},
		&User{},
		&Topic{},
		&Comment{},
		&CommentRating{},
		&CommentReport{},
	}
}
