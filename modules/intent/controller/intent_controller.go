package controller

import (
	"github.com/labstack/echo/v4"

	"appointment-sync/core/controller"
	"appointment-sync/core/errors"
	"appointment-sync/modules/intent/dto"
	"appointment-sync/modules/intent/service"
)

type IntentController struct {
	controller.BaseController
	IntentService service.IntentService
}

func NewIntentController(intentSvc service.IntentService) *IntentController {
	return &IntentController{
		BaseController: controller.NewBaseController(),
		IntentService:  intentSvc,
	}
}

// Interpret parses an utterance into a scheduling intent and executes
// it when the intent is complete.
func (ctrl *IntentController) Interpret(c echo.Context) error {
	var req dto.InterpretRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	resp, appErr := ctrl.IntentService.InterpretAndExecute(c.Request().Context(), req.Text)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, resp.Message)
}
