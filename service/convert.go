package service

import (
	"Forum/models"
	"Forum/types"
)

func toUserSummary(u *models.User) *types.UserSummary {
	if u == nil {
		return nil
	}
	return &types.UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}

func toTopicItem(t *models.Topic) *types.TopicItem {
	item := &types.TopicItem{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		AreaID:      t.AreaID,
		Title:       t.Title,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		Active:      t.Active,
		Creator:     toUserSummary(t.Creator),
	}
	if t.Category != nil {
		item.Category = &types.CategorySummary{ID: t.Category.ID, Name: t.Category.Name}
	}
	return item
}

func toTopicItems(topics []*models.Topic) []*types.TopicItem {
	items := make([]*types.TopicItem, 0, len(topics))
	for _, t := range topics {
		items = append(items, toTopicItem(t))
	}
	return items
}

func toCommentItem(c *models.Comment) *types.CommentItem {
	return &types.CommentItem{
		ID:             c.ID,
		TopicID:        c.TopicID,
		UserID:         c.UserID,
		Text:           c.Text,
		AttachmentURL:  c.AttachmentURL,
		AttachmentName: c.AttachmentName,
		AttachmentKind: c.AttachmentKind,
		Likes:          c.Likes,
		Dislikes:       c.Dislikes,
		Reports:        c.Reports,
		CreatedAt:      c.CreatedAt,
		User:           toUserSummary(c.User),
	}
}
