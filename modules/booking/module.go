package booking

import (
	"appointment-sync/core/cache"
	"appointment-sync/core/queue"
	appointmentService "appointment-sync/modules/appointment/service"
	"appointment-sync/modules/booking/controller"
	"appointment-sync/modules/booking/router"
	"appointment-sync/modules/booking/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, syncSvc *appointmentService.SyncService, c cache.Cache, q *queue.Client) service.BookingService {
	bookingSvc := service.NewBookingService(syncSvc, c, q)
	ctrl := controller.NewBookingController(bookingSvc)
	router.NewBookingRouter(ctrl).Setup(e)
	return bookingSvc
}
