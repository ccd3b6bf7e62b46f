package controller

import (
	"encoding/json"
	"time"

	"github.com/labstack/echo/v4"

	"appointment-sync/core/controller"
	"appointment-sync/core/errors"
	"appointment-sync/core/logger"
	"appointment-sync/core/storage"
	"appointment-sync/modules/appointment/service"
)

// SyncController exposes the synchronizer's diagnostic surface: the unified
// view, the conflict scan, and the export snapshot.
type SyncController struct {
	controller.BaseController
	syncService *service.SyncService
	uploader    storage.Uploader
}

func NewSyncController(syncService *service.SyncService, uploader storage.Uploader) *SyncController {
	return &SyncController{
		BaseController: controller.NewBaseController(),
		syncService:    syncService,
		uploader:       uploader,
	}
}

// GetUnified returns every appointment across the three stores in unified form.
func (ctrl *SyncController) GetUnified(c echo.Context) error {
	appointments := ctrl.syncService.GetAll(c.Request().Context())
	return ctrl.SuccessResponse(c, appointments, "unified appointments retrieved")
}

// GetSummary returns the ordered human-readable listing.
func (ctrl *SyncController) GetSummary(c echo.Context) error {
	summary := ctrl.syncService.Summary(c.Request().Context())
	return ctrl.SuccessResponse(c, summary, "appointment summary generated")
}

// RunSync runs the read-only conflict scan and reports duplicate groups.
func (ctrl *SyncController) RunSync(c echo.Context) error {
	report := ctrl.syncService.SyncAll(c.Request().Context())
	return ctrl.SuccessResponse(c, report, "synchronization scan completed")
}

// GetExport returns the raw three-store snapshot plus the unified view.
func (ctrl *SyncController) GetExport(c echo.Context) error {
	snapshot := ctrl.syncService.ExportAll(c.Request().Context())
	return ctrl.SuccessResponse(c, snapshot, "export snapshot generated")
}

// BackupExport uploads the current export snapshot to the configured backup
// bucket.
func (ctrl *SyncController) BackupExport(c echo.Context) error {
	if ctrl.uploader == nil {
		return ctrl.BadRequest(errors.ErrInvalidInput, "export backup is not configured")
	}

	ctx := c.Request().Context()
	snapshot := ctrl.syncService.ExportAll(ctx)
	payload, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("SyncController:BackupExport:MarshalError:", err)
		return ctrl.InternalServerError(errors.ErrInternalServer, "failed to encode export snapshot")
	}

	key, err := ctrl.uploader.UploadExport(ctx, time.Now(), payload)
	if err != nil {
		return ctrl.InternalServerError(errors.ErrInternalServer, "failed to upload export snapshot")
	}
	return ctrl.SuccessResponse(c, map[string]string{"key": key}, "export snapshot uploaded")
}
