package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/financas-app/financas_backend/internal/core/ports/services"
	"github.com/financas-app/financas_backend/internal/dto"
	"github.com/financas-app/financas_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type maintenanceHandler struct {
	maintenanceService portssvc.MaintenanceSvcFacade
	syncService        portssvc.SyncSvcFacade
}

func newMaintenanceHandler(ms portssvc.MaintenanceSvcFacade, ss portssvc.SyncSvcFacade) *maintenanceHandler {
	return &maintenanceHandler{maintenanceService: ms, syncService: ss}
}

// registerMaintenanceRoutes registers the self-healing and store-sync routes.
func registerMaintenanceRoutes(rg *gin.RouterGroup, maintenanceService portssvc.MaintenanceSvcFacade, syncService portssvc.SyncSvcFacade) {
	h := newMaintenanceHandler(maintenanceService, syncService)

	maintenance := rg.Group("/maintenance")
	{
		maintenance.POST("/repair", h.repair)
		maintenance.POST("/link-recurrences", h.linkRecurrences)
	}

	sync := rg.Group("/sync")
	{
		sync.POST("/migrate-to-cloud", h.migrateToCloud)
		sync.POST("/to-local", h.syncToLocal)
	}
}

// repair godoc
// @Summary Repair transaction integrity
// @Description Renormalizes dates and derived month/year fields on corrupted records; idempotent
// @Tags maintenance
// @Produce  json
// @Success 200 {object} dto.RepairResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /maintenance/repair [post]
func (h *maintenanceHandler) repair(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := mustAuthUser(c)
	if !ok {
		return
	}

	report, err := h.maintenanceService.RepairAll(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err, "Failed to repair transactions")
		return
	}

	logger.Info("Repair finished", slog.Int("repaired", report.Count), slog.Int("skipped", report.Skipped))
	c.JSON(http.StatusOK, dto.ToRepairResponse(report))
}

// linkRecurrences godoc
// @Summary Link legacy recurring transactions
// @Description Mints series ids for recurring records that predate series tracking and materializes their forward year
// @Tags maintenance
// @Produce  json
// @Success 200 {object} dto.RecurrenceLinkResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /maintenance/link-recurrences [post]
func (h *maintenanceHandler) linkRecurrences(c *gin.Context) {
	user, ok := mustAuthUser(c)
	if !ok {
		return
	}

	report, err := h.maintenanceService.LinkLegacyRecurrences(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err, "Failed to link recurrences")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurrenceLinkResponse(report))
}

// migrateToCloud godoc
// @Summary Migrate local data to the cloud store
// @Description Uploads locally tracked data, deduplicating master data by name and remapping foreign keys
// @Tags sync
// @Produce  json
// @Success 200 {object} dto.SyncResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "User has no cloud access"
// @Failure 503 {object} map[string]string "Cloud store unreachable"
// @Security BearerAuth
// @Router /sync/migrate-to-cloud [post]
func (h *maintenanceHandler) migrateToCloud(c *gin.Context) {
	user, ok := mustAuthUser(c)
	if !ok {
		return
	}

	report, err := h.syncService.MigrateLocalToCloud(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err, "Failed to migrate data to cloud")
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncResponse(report))
}

// syncToLocal godoc
// @Summary Replace local data with cloud data
// @Tags sync
// @Produce  json
// @Success 200 {object} dto.SyncResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "User has no cloud access"
// @Failure 503 {object} map[string]string "Cloud store unreachable"
// @Security BearerAuth
// @Router /sync/to-local [post]
func (h *maintenanceHandler) syncToLocal(c *gin.Context) {
	user, ok := mustAuthUser(c)
	if !ok {
		return
	}

	report, err := h.syncService.SyncCloudToLocal(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err, "Failed to sync data to local store")
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncResponse(report))
}
