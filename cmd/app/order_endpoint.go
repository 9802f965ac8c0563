package main

import (
	"net/http"
	"strconv"

	"GearGodAPI/internal/middleware"
	"GearGodAPI/internal/model"
	"GearGodAPI/internal/realtime"
	"GearGodAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type updateStatusRequest struct {
	ID          int64  `json:"id"`
	OrderStatus string `json:"orderStatus"`
}

func placeOrderHandler(os *services.OrderService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in model.PlaceOrderInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
		}

		// the order owner comes from the token, never from the body
		in.UserID = nil
		if cl := middleware.GetClaims(c); cl != nil {
			uid := cl.UserID
			in.UserID = &uid
			if in.Email == "" {
				in.Email = cl.Email
			}
		}

		placed, err := os.PlaceOrder(c.Request().Context(), middleware.CartKey(c), &in)
		if err != nil {
			status, msg := errorMessage(c, err)
			return c.JSON(status, echo.Map{"success": false, "message": msg})
		}

		resp := echo.Map{
			"success":      true,
			"orderId":      placed.OrderID,
			"total_amount": placed.TotalAmount,
		}
		if placed.RedirectURL != "" {
			resp["redirect_url"] = placed.RedirectURL
		}
		return c.JSON(http.StatusCreated, resp)
	}
}

func registerOrderRoutes(g *echo.Group, admin *echo.Group, os *services.OrderService, hub *realtime.Hub) {
	g.POST("/orders", placeOrderHandler(os), middleware.CartIdentity())

	p := g.Group("/orders")
	p.Use(middleware.JWTMiddleware())

	p.GET("/me", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		list, err := os.ListByUser(c.Request().Context(), cl.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	p.GET("/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return badRequest(c, "invalid order id")
		}
		cl := middleware.GetClaims(c)
		uid := cl.UserID
		detail, err := os.GetOrder(c.Request().Context(), id, &uid)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, detail)
	})

	g.POST("/update-order-status", func(c echo.Context) error {
		var req updateStatusRequest
		if err := c.Bind(&req); err != nil || req.ID <= 0 {
			return badRequest(c, "id and orderStatus are required")
		}
		if err := os.UpdateStatus(c.Request().Context(), req.ID, req.OrderStatus); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}, middleware.JWTMiddleware(), middleware.AdminOnly)

	orders := admin.Group("/orders")

	orders.GET("", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))
		list, err := os.ListOrders(c.Request().Context(), c.QueryParam("status"), limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	// outside the admin group so the token may travel in the query string
	g.GET("/admin/orders/live", func(c echo.Context) error {
		return hub.ServeWS(c.Response(), c.Request())
	}, middleware.WSAuth(), middleware.AdminOnly)

	orders.GET("/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return badRequest(c, "invalid order id")
		}
		detail, err := os.GetOrder(c.Request().Context(), id, nil)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, detail)
	})
}
