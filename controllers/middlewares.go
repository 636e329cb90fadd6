package controllers

import (
	"errors"
	"net/http"

	"wardrobeapi/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserMiddleware resolves the jwt subject into the current user.
func UserMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		userRaw := c.Get("user")
		if userRaw == nil {
			return echo.ErrUnauthorized
		}
		user := userRaw.(*jwt.Token)
		claims, ok := user.Claims.(jwt.MapClaims)
		if !ok {
			return echo.ErrUnauthorized
		}
		userId := claims["sub"]
		if userId == nil || userId == "" {
			c.Logger().Warn("token without subject")
			return echo.ErrUnauthorized
		}

		var currentUser models.UserAccount
		result := db.Where("id = ?", userId).Take(&currentUser)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return echo.ErrUnauthorized
		}
		if result.Error != nil {
			return echo.ErrInternalServerError
		}
		if currentUser.Banned {
			return echo.NewHTTPError(http.StatusLocked)
		}
		c.Set("currentUser", currentUser)
		return next(c)
	}
}
