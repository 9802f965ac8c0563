package main

import (
	"net/http"

	"GearGodAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerLookupRoutes(g *echo.Group, ls *services.LookupService) {
	g.GET("/categories", func(c echo.Context) error {
		list, err := ls.Categories(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/colors", func(c echo.Context) error {
		list, err := ls.Colors(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/:id/colors", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return badRequest(c, "invalid product id")
		}
		list, err := ls.ProductColors(c.Request().Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/:id/materials", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return badRequest(c, "invalid product id")
		}
		list, err := ls.ProductMaterials(c.Request().Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})
}
