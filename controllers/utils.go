package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

func BoolPointer(b bool) *bool {
	return &b
}

func StrPointer(b string) *string {
	return &b
}

func IntPointer(i int) *int {
	return &i
}

func UIntToStr(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}

// optionalBool reads a tri-state query flag: nil when absent.
func optionalBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}
