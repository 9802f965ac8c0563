package main

import (
	"net/http"

	"GearGodAPI/internal/model"
	"GearGodAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerCouponRoutes(g *echo.Group, admin *echo.Group, cs *services.CouponService) {
	g.POST("/coupon", func(c echo.Context) error {
		var req struct {
			Code string `json:"code"`
		}
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request")
		}
		res, err := cs.Evaluate(c.Request().Context(), req.Code)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, res)
	})

	coupons := admin.Group("/coupons")

	coupons.GET("", func(c echo.Context) error {
		list, err := cs.List(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	coupons.POST("", func(c echo.Context) error {
		req := model.Coupon{IsActive: true}
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request")
		}
		id, err := cs.Create(c.Request().Context(), &req)
		if err != nil {
			return respondError(c, err)
		}
		req.CouponID = id
		return c.JSON(http.StatusCreated, req)
	})

	coupons.PUT("/:id/toggle", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return badRequest(c, "invalid coupon id")
		}
		active, err := cs.Toggle(c.Request().Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"coupon_id": id, "is_active": active})
	})

	coupons.DELETE("/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return badRequest(c, "invalid coupon id")
		}
		if err := cs.Delete(c.Request().Context(), id); err != nil {
			return respondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}
