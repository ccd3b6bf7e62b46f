package router

import (
	"github.com/labstack/echo/v4"

	"appointment-sync/core/middleware"
	"appointment-sync/modules/appointment/controller"
)

type SyncRouter struct {
	Controller *controller.SyncController
}

func NewSyncRouter(ctrl *controller.SyncController) *SyncRouter {
	return &SyncRouter{Controller: ctrl}
}

func (r *SyncRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	admin := e.Group("/api/v1/admin", mw.AuthMiddleware())
	admin.GET("/appointments", r.Controller.GetUnified)
	admin.GET("/appointments/summary", r.Controller.GetSummary)
	admin.POST("/sync", r.Controller.RunSync)
	admin.GET("/export", r.Controller.GetExport)
	admin.POST("/export/backup", r.Controller.BackupExport)
}
