package controllers

import (
	"net/http"
	"os"

	"wardrobeapi/models"
	"wardrobeapi/outfit"
	"wardrobeapi/services"
	"wardrobeapi/tasks"

	"github.com/go-playground/validator"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("season", models.ValidateSeason)
	return &CustomValidator{validator: v}
}

func SetupServer(
	db *gorm.DB,
	engine *outfit.Engine,
	catalog services.CatalogProvider,
	enqueuer tasks.Enqueuer,
	logger zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__db", db)
			return next(c)
		}
	})
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	jwtMiddleware := echojwt.JWT([]byte(os.Getenv("JWT_SECRET")))

	clothesController := ClothesController{Engine: engine, Catalog: catalog, Logger: logger}
	clothesGroup := e.Group("/clothes", jwtMiddleware, UserMiddleware)
	clothesController.ClothingRoutes(clothesGroup)

	outfitsController := OutfitsController{Enqueuer: enqueuer, Logger: logger}
	outfitsGroup := e.Group("/outfits", jwtMiddleware, UserMiddleware)
	outfitsController.OutfitRoutes(outfitsGroup)

	return e
}
