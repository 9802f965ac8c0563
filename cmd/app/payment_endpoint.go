package main

import (
	"net/http"

	"GearGodAPI/internal/middleware"
	"GearGodAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	p := g.Group("/payments")

	// ============================
	// MIDTRANS NOTIFICATION
	// (NO JWT, must be public)
	// ============================
	p.POST("/notification", func(c echo.Context) error {
		var payload map[string]interface{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusOK, echo.Map{
				"status": "ignored",
				"reason": "invalid payload",
			})
		}

		if err := ps.HandleNotification(c.Request().Context(), payload); err != nil {
			status, msg := errorMessage(c, err)
			if status == http.StatusInternalServerError {
				// non-2xx makes Midtrans retry later
				return c.JSON(status, echo.Map{"status": "error"})
			}
			// Midtrans requires HTTP 200 or it will retry
			return c.JSON(http.StatusOK, echo.Map{
				"status": "ignored",
				"reason": msg,
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"status": "ok",
		})
	})

	// ============================
	// PAYMENT RETRY
	// (JWT protected)
	// ============================
	p.POST("/:orderId", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		orderID, ok := pathID(c, "orderId")
		if !ok {
			return badRequest(c, "invalid order id")
		}

		uid := cl.UserID
		redirectURL, err := ps.RetryPayment(c.Request().Context(), orderID, &uid)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusOK, echo.Map{
			"redirect_url": redirectURL,
		})
	}, middleware.JWTMiddleware())
}
