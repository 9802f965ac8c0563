package main

import (
	"net/http"
	"time"

	"GearGodAPI/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func registerReportRoutes(admin *echo.Group, rs *services.ReportService) {
	admin.GET("/dashboard", func(c echo.Context) error {
		stats, err := rs.Dashboard(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, stats)
	})

	admin.GET("/orders/export", func(c echo.Context) error {
		name := "orders-" + time.Now().Format("20060102") + ".xlsx"
		h := c.Response().Header()
		h.Set(echo.HeaderContentDisposition, "attachment; filename="+name)
		h.Set(echo.HeaderContentType, xlsxContentType)
		h.Set("Expires", "0")

		// headers are committed by the first write; an error before that still gets JSON
		if err := rs.WriteOrdersXLSX(c.Request().Context(), c.Response()); err != nil {
			if c.Response().Committed {
				logger.Error("export orders", zap.Error(err))
				return nil
			}
			h.Del(echo.HeaderContentDisposition)
			return respondError(c, err)
		}
		return nil
	})
}
