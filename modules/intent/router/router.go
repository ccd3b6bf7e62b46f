package router

import (
	"appointment-sync/modules/intent/controller"

	"github.com/labstack/echo/v4"
)

type IntentRouter struct {
	Controller *controller.IntentController
}

func NewIntentRouter(ctrl *controller.IntentController) *IntentRouter {
	return &IntentRouter{Controller: ctrl}
}

func (r *IntentRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/intent/interpret", r.Controller.Interpret)
}
