package router

import (
	"appointment-sync/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	Controller *controller.BookingController
}

func NewBookingRouter(ctrl *controller.BookingController) *BookingRouter {
	return &BookingRouter{Controller: ctrl}
}

// Setup registers the public booking endpoints. Health is registered
// before the :id route so it is not captured as an appointment id.
func (r *BookingRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	appts := v1.Group("/appointments")
	appts.GET("/health", r.Controller.Health)
	appts.POST("/book", r.Controller.Book)
	appts.GET("", r.Controller.List)
	appts.GET("/:id", r.Controller.GetByID)
	appts.DELETE("/:id", r.Controller.Cancel)
}
