package controller

import (
	"github.com/labstack/echo/v4"

	"appointment-sync/core/controller"
	"appointment-sync/core/errors"
	"appointment-sync/modules/booking/dto"
	"appointment-sync/modules/booking/service"
)

type BookingController struct {
	controller.BaseController
	BookingService service.BookingService
}

func NewBookingController(bookingSvc service.BookingService) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		BookingService: bookingSvc,
	}
}

// Book creates a new appointment booking mirrored across all stores.
func (ctrl *BookingController) Book(c echo.Context) error {
	var req dto.BookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	resp, appErr := ctrl.BookingService.Book(c.Request().Context(), &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, resp.Message)
}

// List returns appointments with optional date filtering.
func (ctrl *BookingController) List(c echo.Context) error {
	resp, appErr := ctrl.BookingService.List(c.Request().Context(), c.QueryParam("date_filter"))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, "appointments retrieved")
}

// GetByID returns one appointment by its id.
func (ctrl *BookingController) GetByID(c echo.Context) error {
	appt, appErr := ctrl.BookingService.GetByID(c.Request().Context(), c.Param("id"))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, appt, "appointment retrieved")
}

// Cancel removes an appointment from every store holding it.
func (ctrl *BookingController) Cancel(c echo.Context) error {
	resp, appErr := ctrl.BookingService.Cancel(c.Request().Context(), c.Param("id"))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, resp.Message)
}

// Health reports service liveness and the total appointment count.
func (ctrl *BookingController) Health(c echo.Context) error {
	return ctrl.SuccessResponse(c, ctrl.BookingService.Health(c.Request().Context()), "healthy")
}
