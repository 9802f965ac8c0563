package main

import (
	"net/http"

	"GearGodAPI/internal/middleware"
	"GearGodAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type cartLineRequest struct {
	ProductID int64 `json:"product_id" query:"product_id"`
	Quantity  int   `json:"quantity"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	cart := g.Group("/cart")
	cart.Use(middleware.CartIdentity())

	cart.GET("", func(c echo.Context) error {
		resp, err := cs.Get(c.Request().Context(), middleware.CartKey(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	})

	cart.POST("", func(c echo.Context) error {
		var req services.AddToCartInput
		if err := c.Bind(&req); err != nil || req.ProductID <= 0 {
			return badRequest(c, "product_id is required")
		}
		resp, err := cs.Add(c.Request().Context(), middleware.CartKey(c), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	})

	cart.PUT("", func(c echo.Context) error {
		var req cartLineRequest
		if err := c.Bind(&req); err != nil || req.ProductID <= 0 {
			return badRequest(c, "product_id is required")
		}
		resp, err := cs.Update(c.Request().Context(), middleware.CartKey(c), req.ProductID, req.Quantity)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	})

	cart.DELETE("", func(c echo.Context) error {
		var req cartLineRequest
		if err := c.Bind(&req); err != nil || req.ProductID <= 0 {
			return badRequest(c, "product_id is required")
		}
		resp, err := cs.Remove(c.Request().Context(), middleware.CartKey(c), req.ProductID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, resp)
	})

	cart.DELETE("/all", func(c echo.Context) error {
		if err := cs.Clear(c.Request().Context(), middleware.CartKey(c)); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": []any{}, "total": 0})
	})
}
