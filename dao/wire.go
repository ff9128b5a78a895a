package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewCategory,
	NewUser,
	NewTopic,
	NewComment,
	NewCommentRating,
	NewCommentReport,
	NewLegacyComment,
)
