package controllers

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateOutfitIn struct {
	Name        string     `json:"outfit_name" validate:"omitempty,max=100"`
	ClothingIDs []uint     `json:"clothing_ids" validate:"required,min=1,max=20,dive,required"`
	WornAt      *time.Time `json:"worn_at"`
	Weather     string     `json:"weather" validate:"omitempty,max=50"`
	Temperature *float64   `json:"temperature" validate:"omitempty,min=-60,max=60"`
	Occasion    string     `json:"occasion" validate:"omitempty,max=50"`
	Mood        string     `json:"mood" validate:"omitempty,max=50"`
	Rating      *int       `json:"rating" validate:"omitempty,min=1,max=5"`
	Notes       *string    `json:"notes" validate:"omitempty,max=1000"`
}

type OutfitRecordResponse struct {
	models.OutfitRecord
	// false when the wear counts were applied inline
	WearQueued bool `json:"wear_queued"`
}

type OutfitsController struct {
	Enqueuer tasks.Enqueuer
	Logger   zerolog.Logger
}

func (controller *OutfitsController) OutfitRoutes(g *echo.Group) {
	g.GET("", controller.ListOutfits)
	g.GET("/", controller.ListOutfits)
	g.POST("", controller.CreateOutfit)
	g.POST("/", controller.CreateOutfit)
	g.GET("/:id", controller.GetOutfit)
}

// CreateOutfit logs a worn outfit and hands the wear count update to the
// worker. Without a reachable queue the update runs inline.
func (controller *OutfitsController) CreateOutfit(c echo.Context) error {
	var req CreateOutfitIn
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	ids := slices.Clone(req.ClothingIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	var owned int64
	if err := db.Model(&models.Clothing{}).Where("id IN ? AND owner_id = ?", ids, user.ID).Count(&owned).Error; err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to get clothes")
	}
	if int(owned) != len(ids) {
		return errorJSON(c, http.StatusBadRequest, "Some clothes of the outfit do not exist")
	}

	record := models.OutfitRecord{
		OwnerID:     user.ID,
		Name:        req.Name,
		ClothingIDs: datatypes.JSONSlice[uint](ids),
		WornAt:      time.Now().UTC(),
		Weather:     req.Weather,
		Temperature: req.Temperature,
		Occasion:    req.Occasion,
		Mood:        req.Mood,
		Rating:      req.Rating,
		Notes:       req.Notes,
	}
	if req.WornAt != nil {
		record.WornAt = req.WornAt.UTC()
	}
	if err := db.Create(&record).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to save outfit, please try again"})
	}

	log := controller.Logger.With().Uint("user_id", user.ID).Uint("outfit_record_id", record.ID).Logger()
	queued := false
	if controller.Enqueuer != nil {
		info, err := tasks.EnqueueOutfitWorn(controller.Enqueuer, record.ID)
		if err == nil {
			queued = true
			log.Info().Str("task_id", info.ID).Msg("wear task enqueued")
		} else {
			sentry.CaptureException(err)
			log.Error().Err(err).Msg("could not enqueue wear task")
		}
	}
	if !queued {
		if _, err := tasks.ApplyOutfitWear(c.Request().Context(), db, record.ID, log); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Outfit saved but wear counts could not be updated"})
		}
		if err := db.First(&record, record.ID).Error; err != nil {
			sentry.CaptureException(err)
			log.Error().Err(err).Msg("could not reload outfit record")
		}
	}
	return c.JSON(http.StatusCreated, DataResponse{Success: true, Data: OutfitRecordResponse{OutfitRecord: record, WearQueued: queued}})
}

func (controller *OutfitsController) ListOutfits(c echo.Context) error {
	skip, limit := 0, defaultPageSize
	err := echo.QueryParamsBinder(c).Int("skip", &skip).Int("limit", &limit).BindError()
	if err != nil || skip < 0 || limit < 1 || limit > 100 {
		return errorJSON(c, http.StatusBadRequest, "Invalid query parameters")
	}
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	records := []models.OutfitRecord{}
	err = db.Where("owner_id = ?", user.ID).
		Order("worn_at desc").Order("id desc").
		Offset(skip).Limit(limit).
		Find(&records).Error
	if err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to get outfits")
	}
	count := len(records)
	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: records, Count: &count})
}

func (controller *OutfitsController) GetOutfit(c echo.Context) error {
	var id uint
	if err := echo.PathParamsBinder(c).Uint("id", &id).BindError(); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid outfit id")
	}
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var record models.OutfitRecord
	result := db.Where("id = ? AND owner_id = ?", id, user.ID).Take(&record)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return errorJSON(c, http.StatusNotFound, "Outfit not found")
	}
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return errorJSON(c, http.StatusInternalServerError, "Failed to get outfits")
	}
	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: record})
}
