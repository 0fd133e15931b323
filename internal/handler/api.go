package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urgelog/internal/domain"
	"github.com/urgelog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db            *gorm.DB
	clock         domain.Clock
	urges         *service.UrgeService
	checkins      *service.CheckinService
	progress      *service.ProgressService
	content       *service.ContentService
	profiles      *service.ProfileService
	subscriptions *service.SubscriptionService
	wipe          *service.WipeService
	exports       *service.ExportService
	imports       *service.ImportService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, clock domain.Clock, cacheDir, appVersion string) *API {
	return &API{
		db:            gdb,
		clock:         clock,
		urges:         service.NewUrgeService(gdb, clock),
		checkins:      service.NewCheckinService(gdb, clock),
		progress:      service.NewProgressService(gdb, clock),
		content:       service.NewContentService(gdb, clock),
		profiles:      service.NewProfileService(gdb),
		subscriptions: service.NewSubscriptionService(gdb),
		wipe:          service.NewWipeService(gdb),
		exports:       service.NewExportService(gdb, clock, cacheDir, appVersion),
		imports:       service.NewImportService(gdb),
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func respondSuccess(c *gin.Context, status int, data gin.H) {
	payload := gin.H{"success": true}
	for key, value := range data {
		payload[key] = value
	}
	c.JSON(status, payload)
}

func respondStorageError(c *gin.Context, err error) {
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, "存储操作失败")
}
