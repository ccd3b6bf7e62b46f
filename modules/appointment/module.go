package appointment

import (
	"github.com/labstack/echo/v4"

	"appointment-sync/core/middleware"
	"appointment-sync/core/storage"
	"appointment-sync/modules/appointment/controller"
	"appointment-sync/modules/appointment/router"
	"appointment-sync/modules/appointment/service"
)

func Init(e *echo.Echo, syncSvc *service.SyncService, uploader storage.Uploader, mw *middleware.Middleware) {
	ctrl := controller.NewSyncController(syncSvc, uploader)
	router.NewSyncRouter(ctrl).Setup(e, mw)
}
