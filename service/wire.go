package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewSanitizer,
	NewStorage,
	NewAttachmentService,

	wire.Struct(new(TopicService), "*"),
	wire.Bind(new(ITopicService), new(*TopicService)),

	wire.Struct(new(CommentService), "*"),
	wire.Bind(new(ICommentService), new(*CommentService)),

	wire.Struct(new(ModerationService), "*"),
	wire.Bind(new(IModerationService), new(*ModerationService)),

	wire.Struct(new(ReportService), "*"),
	wire.Bind(new(IReportService), new(*ReportService)),

	wire.Struct(new(LegacyImportService), "*"),
)
