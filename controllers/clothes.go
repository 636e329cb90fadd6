package controllers

import (
	"errors"
	"net/http"
	"slices"
	"sort"
	"strings"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/outfit"
	"wardrobeapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	neverWornWindow = 30 * 24 * time.Hour
	recentlyWornMax = 5
)

type CreateClothingIn struct {
	Name      string   `json:"name" validate:"required,max=100"`
	Category  string   `json:"category" validate:"required,max=50"`
	Type      string   `json:"type" validate:"omitempty,max=100"`
	Color     string   `json:"color" validate:"omitempty,max=30"`
	ColorTone string   `json:"color_tone" validate:"omitempty,oneof=warm cool neutral multi"`
	Material  string   `json:"material" validate:"omitempty,max=50"`
	Thickness string   `json:"thickness" validate:"omitempty,oneof=thin medium thick"`
	Style     []string `json:"style" validate:"omitempty,max=10,dive,required,max=30"`
	Season    []string `json:"season" validate:"omitempty,max=4,dive,season"`
	Occasions []string `json:"suitable_occasions" validate:"omitempty,max=20,dive,required,max=50"`
	Features  []string `json:"features" validate:"omitempty,max=20,dive,max=50"`

	Description *string  `json:"description" validate:"omitempty,max=500"`
	Brand       *string  `json:"brand" validate:"omitempty,max=100"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	UserNotes   *string  `json:"user_notes" validate:"omitempty,max=1000"`
	IsFavorite  bool     `json:"is_favorite"`
}

// UpdateClothingIn is a partial update, nil fields are left alone.
type UpdateClothingIn struct {
	Name      *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Category  *string  `json:"category" validate:"omitempty,min=1,max=50"`
	Type      *string  `json:"type" validate:"omitempty,max=100"`
	Color     *string  `json:"color" validate:"omitempty,max=30"`
	ColorTone *string  `json:"color_tone" validate:"omitempty,oneof=warm cool neutral multi"`
	Material  *string  `json:"material" validate:"omitempty,max=50"`
	Thickness *string  `json:"thickness" validate:"omitempty,oneof=thin medium thick"`
	Style     []string `json:"style" validate:"omitempty,max=10,dive,required,max=30"`
	Season    []string `json:"season" validate:"omitempty,max=4,dive,season"`
	Occasions []string `json:"suitable_occasions" validate:"omitempty,max=20,dive,required,max=50"`
	Features  []string `json:"features" validate:"omitempty,max=20,dive,max=50"`

	Description *string  `json:"description" validate:"omitempty,max=500"`
	Brand       *string  `json:"brand" validate:"omitempty,max=100"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	UserNotes   *string  `json:"user_notes" validate:"omitempty,max=1000"`
	IsFavorite  *bool    `json:"is_favorite"`
	IsArchived  *bool    `json:"is_archived"`
}

type ClothesQuery struct {
	Category   string
	Color      string
	Style      string
	Season     string
	Occasion   string
	Search     string
	IsFavorite *bool
	IsArchived *bool
	Skip       int `validate:"min=0"`
	Limit      int `validate:"min=1,max=100"`
}

type ItemOutfitQuery struct {
	Occasion string `validate:"omitempty,max=50"`
	Season   string `validate:"omitempty,season"`
	Limit    int    `validate:"omitempty,min=1,max=10"`
}

type OccasionOutfitQuery struct {
	Occasion string `validate:"required,max=50"`
	Season   string `validate:"omitempty,season"`
	Style    string `validate:"omitempty,max=30"`
}

type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

type ClothesStatistics struct {
	TotalItems           int               `json:"total_items"`
	Favorites            int               `json:"favorites"`
	Archived             int               `json:"archived"`
	CategoryDistribution map[string]int    `json:"category_distribution"`
	ColorDistribution    map[string]int    `json:"color_distribution"`
	RecentlyWorn         []models.Clothing `json:"recently_worn"`
	NeverWornCount       int               `json:"never_worn_count"`
}

type FilterOptions struct {
	Categories []string `json:"categories"`
	Colors     []string `json:"colors"`
	Styles     []string `json:"styles"`
}

type ColorMatching struct {
	BaseColor      string   `json:"base_color"`
	MatchingColors []string `json:"matching_colors"`
}

type ClothesController struct {
	Engine  *outfit.Engine
	Catalog services.CatalogProvider
	Logger  zerolog.Logger
}

func (controller *ClothesController) ClothingRoutes(g *echo.Group) {
	g.GET("", controller.ListClothes)
	g.GET("/", controller.ListClothes)
	g.POST("", controller.CreateClothing)
	g.POST("/", controller.CreateClothing)
	g.GET("/statistics", controller.GetStatistics)
	g.GET("/filters", controller.GetFilterOptions)
	g.GET("/outfit/occasion", controller.RecommendForOccasion)
	g.GET("/colors/:color/matching", controller.GetColorMatching)
	g.GET("/:id", controller.GetClothing)
	g.PATCH("/:id", controller.UpdateClothing)
	g.DELETE("/:id", controller.DeleteClothing)
	g.GET("/:id/outfit", controller.RecommendForItem)
	g.POST("/:id/favorite", controller.ToggleFavorite)
	g.POST("/:id/archive", controller.ToggleArchive)
	g.POST("/:id/wear", controller.RecordWear)
}

func (controller *ClothesController) CreateClothing(c echo.Context) error {
	var req CreateClothingIn
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	clothing := models.Clothing{
		OwnerID:     user.ID,
		Name:        req.Name,
		Category:    strings.TrimSpace(req.Category),
		Type:        req.Type,
		Color:       req.Color,
		ColorTone:   req.ColorTone,
		Material:    req.Material,
		Thickness:   req.Thickness,
		Style:       datatypes.JSONSlice[string](nonNil(req.Style)),
		Season:      datatypes.JSONSlice[string](nonNil(req.Season)),
		Occasions:   datatypes.JSONSlice[string](nonNil(req.Occasions)),
		Features:    datatypes.JSONSlice[string](nonNil(req.Features)),
		Description: req.Description,
		Brand:       req.Brand,
		Price:       req.Price,
		UserNotes:   req.UserNotes,
		IsFavorite:  req.IsFavorite,
	}
	if err := db.Create(&clothing).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to save clothes, please try again"})
	}
	controller.Catalog.Invalidate(c.Request().Context(), user.ID)
	return c.JSON(http.StatusCreated, DataResponse{Success: true, Data: clothing, Message: "Saved"})
}

func (controller *ClothesController) ListClothes(c echo.Context) error {
	q := ClothesQuery{Limit: defaultPageSize}
	err := echo.QueryParamsBinder(c).
		String("category", &q.Category).
		String("color", &q.Color).
		String("style", &q.Style).
		String("season", &q.Season).
		String("occasion", &q.Occasion).
		String("search", &q.Search).
		Int("skip", &q.Skip).
		Int("limit", &q.Limit).
		BindError()
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid query parameters")
	}
	if q.IsFavorite, err = optionalBool(c, "is_favorite"); err != nil {
		return errorJSON(c, http.StatusBadRequest, "is_favorite must be a boolean")
	}
	if q.IsArchived, err = optionalBool(c, "is_archived"); err != nil {
		return errorJSON(c, http.StatusBadRequest, "is_archived must be a boolean")
	}
	if err := c.Validate(q); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	clothes, err := listClothes(db, user.ID, q)
	if err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to get clothes")
	}
	count := len(clothes)
	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: clothes, Count: &count})
}

// listClothes applies column filters in SQL and label filters, which live in
// json columns, in memory before paging.
func listClothes(db *gorm.DB, ownerID uint, q ClothesQuery) ([]models.Clothing, error) {
	query := db.Model(&models.Clothing{}).Where("owner_id = ?", ownerID)
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Color != "" {
		query = query.Where("color = ?", q.Color)
	}
	if q.IsFavorite != nil {
		query = query.Where("is_favorite = ?", *q.IsFavorite)
	}
	// archived clothes are hidden unless asked for
	if q.IsArchived != nil {
		query = query.Where("is_archived = ?", *q.IsArchived)
	} else {
		query = query.Where("is_archived = ?", false)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(type) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ? OR LOWER(COALESCE(brand, '')) LIKE ? OR LOWER(COALESCE(user_notes, '')) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	var clothes []models.Clothing
	if err := query.Order("created_at desc").Order("id desc").Find(&clothes).Error; err != nil {
		return nil, err
	}
	clothes = slices.DeleteFunc(clothes, func(item models.Clothing) bool {
		return (q.Style != "" && !slices.Contains(item.Style, q.Style)) ||
			(q.Season != "" && !slices.Contains(item.Season, q.Season)) ||
			(q.Occasion != "" && !slices.Contains(item.Occasions, q.Occasion))
	})
	if q.Skip >= len(clothes) {
		return []models.Clothing{}, nil
	}
	end := min(q.Skip+q.Limit, len(clothes))
	return clothes[q.Skip:end], nil
}

func (controller *ClothesController) GetClothing(c echo.Context) error {
	clothing, err := controller.findOwned(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: clothing})
}

func (controller *ClothesController) UpdateClothing(c echo.Context) error {
	clothing, err := controller.findOwned(c)
	if err != nil {
		return err
	}
	var req UpdateClothingIn
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	req.apply(&clothing)

	db := c.Get("__db").(*gorm.DB)
	if err := db.Save(&clothing).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update clothes, please try again"})
	}
	controller.Catalog.Invalidate(c.Request().Context(), clothing.OwnerID)
	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: clothing, Message: "Updated"})
}

func (req UpdateClothingIn) apply(clothing *models.Clothing) {
	setIf(&clothing.Name, req.Name)
	if req.Category != nil {
		clothing.Category = strings.TrimSpace(*req.Category)
	}
	setIf(&clothing.Type, req.Type)
	setIf(&clothing.Color, req.Color)
	setIf(&clothing.ColorTone, req.ColorTone)
	setIf(&clothing.Material, req.Material)
	setIf(&clothing.Thickness, req.Thickness)
	if req.Style != nil {
		clothing.Style = req.Style
	}
	if req.Season != nil {
		clothing.Season = req.Season
	}
	if req.Occasions != nil {
		clothing.Occasions = req.Occasions
	}
	if req.Features != nil {
		clothing.Features = req.Features
	}
	if req.Description != nil {
		clothing.Description = req.Description
	}
	if req.Brand != nil {
		clothing.Brand = req.Brand
	}
	if req.Price != nil {
		clothing.Price = req.Price
	}
	if req.UserNotes != nil {
		clothing.UserNotes = req.UserNotes
	}
	setIf(&clothing.IsFavorite, req.IsFavorite)
	setIf(&clothing.IsArchived, req.IsArchived)
}

func (controller *ClothesController) DeleteClothing(c echo.Context) error {
	clothing, err := controller.findOwned(c)
	if err != nil {
		return err
	}
	db := c.Get("__db").(*gorm.DB)
	if err := db.Delete(&clothing).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to delete clothes, please try again"})
	}
	controller.Catalog.Invalidate(c.Request().Context(), clothing.OwnerID)
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted"})
}

func (controller *ClothesController) ToggleFavorite(c echo.Context) error {
	clothing, err := controller.findOwned(c)
	if err != nil {
		return err
	}
	clothing.IsFavorite = !clothing.IsFavorite
	if err := controller.saveFlag(c, &clothing, "is_favorite", clothing.IsFavorite); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: map[string]bool{"is_favorite": clothing.IsFavorite}})
}

func (controller *ClothesController) ToggleArchive(c echo.Context) error {
	clothing, err := controller.findOwned(c)
	if err != nil {
		return err
	}
	clothing.IsArchived = !clothing.IsArchived
	if err := controller.saveFlag(c, &clothing, "is_archived", clothing.IsArchived); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: map[string]bool{"is_archived": clothing.IsArchived}})
}

func (controller *ClothesController) saveFlag(c echo.Context, clothing *models.Clothing, column string, value bool) error {
	db := c.Get("__db").(*gorm.DB)
	if err := db.Model(clothing).Update(column, value).Error; err != nil {
		sentry.CaptureException(err)
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"message": "Failed to update clothes, please try again"})
	}
	controller.Catalog.Invalidate(c.Request().Context(), clothing.OwnerID)
	return nil
}

// RecordWear counts one wear of a single item right away.
func (controller *ClothesController) RecordWear(c echo.Context) error {
	clothing, err := controller.findOwned(c)
	if err != nil {
		return err
	}
	db := c.Get("__db").(*gorm.DB)
	now := time.Now().UTC()
	err = db.Model(&clothing).Updates(map[string]interface{}{
		"wear_count":   gorm.Expr("wear_count + ?", 1),
		"last_worn_at": now,
	}).Error
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to record wear, please try again"})
	}
	if err := db.First(&clothing, clothing.ID).Error; err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to get clothes")
	}
	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: map[string]interface{}{
		"wear_count":   clothing.WearCount,
		"last_worn_at": clothing.LastWornAt,
	}})
}

func (controller *ClothesController) GetStatistics(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var clothes []models.Clothing
	if err := db.Where("owner_id = ?", user.ID).Order("id asc").Find(&clothes).Error; err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to get clothes")
	}
	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: clothesStatistics(clothes, time.Now())})
}

func clothesStatistics(clothes []models.Clothing, now time.Time) ClothesStatistics {
	stats := ClothesStatistics{
		CategoryDistribution: map[string]int{},
		ColorDistribution:    map[string]int{},
		RecentlyWorn:         []models.Clothing{},
	}
	var worn []models.Clothing
	for _, item := range clothes {
		if item.LastWornAt != nil {
			worn = append(worn, item)
		}
		if item.IsArchived {
			stats.Archived++
			continue
		}
		stats.TotalItems++
		if item.IsFavorite {
			stats.Favorites++
		}
		if item.Category != "" {
			stats.CategoryDistribution[item.Category]++
		}
		if item.Color != "" {
			stats.ColorDistribution[item.Color]++
		}
		if item.LastWornAt == nil || now.Sub(*item.LastWornAt) > neverWornWindow {
			stats.NeverWornCount++
		}
	}
	sort.SliceStable(worn, func(i, j int) bool { return worn[i].LastWornAt.After(*worn[j].LastWornAt) })
	stats.RecentlyWorn = append(stats.RecentlyWorn, worn[:min(recentlyWornMax, len(worn))]...)
	return stats
}

func (controller *ClothesController) GetFilterOptions(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var clothes []models.Clothing
	if err := db.Select("category", "color", "style").Where("owner_id = ?", user.ID).Find(&clothes).Error; err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to get clothes")
	}
	options := FilterOptions{Categories: []string{}, Colors: []string{}, Styles: []string{}}
	for _, item := range clothes {
		options.Categories = appendLabel(options.Categories, item.Category)
		options.Colors = appendLabel(options.Colors, item.Color)
		for _, style := range item.Style {
			options.Styles = appendLabel(options.Styles, style)
		}
	}
	slices.Sort(options.Categories)
	slices.Sort(options.Colors)
	slices.Sort(options.Styles)
	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: options})
}

func (controller *ClothesController) GetColorMatching(c echo.Context) error {
	color := strings.TrimSpace(c.Param("color"))
	if color == "" {
		return errorJSON(c, http.StatusBadRequest, "color is required")
	}
	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: ColorMatching{
		BaseColor:      color,
		MatchingColors: controller.Engine.Tables().ColorSuggestions(color),
	}})
}

func (controller *ClothesController) RecommendForItem(c echo.Context) error {
	var id uint
	if err := echo.PathParamsBinder(c).Uint("id", &id).BindError(); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid clothes id")
	}
	var q ItemOutfitQuery
	err := echo.QueryParamsBinder(c).
		String("occasion", &q.Occasion).
		String("season", &q.Season).
		Int("limit", &q.Limit).
		BindError()
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid query parameters")
	}
	if c.QueryParam("limit") != "" && q.Limit == 0 {
		return errorJSON(c, http.StatusBadRequest, "limit must be between 1 and 10")
	}
	if err := c.Validate(q); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	user := c.Get("currentUser").(models.UserAccount)
	catalog, err := controller.Catalog.Catalog(c.Request().Context(), user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to get clothes")
	}

	start := time.Now()
	result := controller.Engine.RecommendForItem(catalog, outfit.ItemRequest{
		BaseID:   id,
		Occasion: q.Occasion,
		Season:   q.Season,
		Limit:    q.Limit,
	})
	controller.observe("item", result, start)

	if result.Status == outfit.StatusNotFound {
		return c.JSON(http.StatusNotFound, DataResponse{Success: false, Data: result, Message: result.Message})
	}
	return c.JSON(http.StatusOK, DataResponse{Success: result.Success(), Data: result, Message: result.Message})
}

func (controller *ClothesController) RecommendForOccasion(c echo.Context) error {
	var q OccasionOutfitQuery
	err := echo.QueryParamsBinder(c).
		String("occasion", &q.Occasion).
		String("season", &q.Season).
		String("style", &q.Style).
		BindError()
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(q); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	user := c.Get("currentUser").(models.UserAccount)
	catalog, err := controller.Catalog.Catalog(c.Request().Context(), user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to get clothes")
	}

	req := outfit.OccasionRequest{Occasion: q.Occasion, Season: q.Season}
	if q.Style != "" {
		req.StylePreference = []string{q.Style}
	}
	start := time.Now()
	result := controller.Engine.RecommendForOccasion(catalog, req)
	controller.observe("occasion", result, start)

	return c.JSON(http.StatusOK, DataResponse{Success: result.Success(), Data: result, Message: result.Message})
}

func (controller *ClothesController) observe(kind string, result outfit.RecommendationResult, start time.Time) {
	services.RecommendationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	services.RecommendationsTotal.WithLabelValues(kind, string(result.Status)).Inc()
	controller.Logger.Debug().Str("kind", kind).Str("status", string(result.Status)).
		Dur("took", time.Since(start)).Msg("recommendation served")
}

// findOwned loads the :id clothing of the current user. Errors are echo HTTP
// errors with a json body, handlers return them as is.
func (controller *ClothesController) findOwned(c echo.Context) (models.Clothing, error) {
	var clothing models.Clothing
	var id uint
	if err := echo.PathParamsBinder(c).Uint("id", &id).BindError(); err != nil {
		return clothing, echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "Invalid clothes id"})
	}
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	result := db.Where("id = ? AND owner_id = ?", id, user.ID).Take(&clothing)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return clothing, echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "Clothes not found"})
	}
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return clothing, echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"error": "Failed to get clothes"})
	}
	return clothing, nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func nonNil(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return labels
}

func appendLabel(labels []string, label string) []string {
	if label == "" || slices.Contains(labels, label) {
		return labels
	}
	return append(labels, label)
}
