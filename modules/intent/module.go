package intent

import (
	"appointment-sync/core/config"
	appointmentService "appointment-sync/modules/appointment/service"
	bookingService "appointment-sync/modules/booking/service"
	"appointment-sync/modules/intent/controller"
	"appointment-sync/modules/intent/router"
	"appointment-sync/modules/intent/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, llmCfg config.LLMConfig, bookingSvc bookingService.BookingService, syncSvc *appointmentService.SyncService) {
	intentSvc := service.NewIntentService(llmCfg.AnthropicAPIKey, llmCfg.Model, bookingSvc, syncSvc)
	ctrl := controller.NewIntentController(intentSvc)
	router.NewIntentRouter(ctrl).Setup(e)
}
