package router

import (
	"context"

	"resume-analyzer/internal/api/handler"
	"resume-analyzer/internal/constants"
	"resume-analyzer/internal/logger"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// RegisterRoutes 注册页面和 API 路由
func RegisterRoutes(h *server.Hertz, analyzeHandler *handler.AnalyzeHandler) {
	h.Use(requestLogger)

	// 页面
	h.GET(constants.IndexPath, analyzeHandler.IndexPage)
	h.POST(constants.AnalyzePagePath, analyzeHandler.AnalyzePage)

	api := h.Group(constants.APIPrefix)
	api.POST(constants.AnalyzeAPIPath, analyzeHandler.AnalyzeJSON)

	// 添加健康检查
	api.GET(constants.HealthPath, func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

// requestLogger 为每个请求在上下文中放入带方法和路径的 logger，处理器通过 logger.Ctx 取用
func requestLogger(c context.Context, ctx *app.RequestContext) {
	ctx.Next(logger.WithContext(c, string(ctx.Method()), string(ctx.Path())))
}
