package main

import (
	"net/http"
	"strconv"

	"GearGodAPI/internal/model"
	"GearGodAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerProductRoutes(g *echo.Group, adminOnly []echo.MiddlewareFunc, ps *services.ProductService) {
	g.GET("/products", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))

		var categoryID *int64
		if v := c.QueryParam("category_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return badRequest(c, "invalid category_id")
			}
			categoryID = &id
		}

		list, err := ps.ListProducts(c.Request().Context(), categoryID, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return badRequest(c, "invalid product id")
		}
		p, err := ps.GetProduct(c.Request().Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, p)
	})

	// admin
	g.POST("/products", func(c echo.Context) error {
		var in model.ProductInput
		if err := c.Bind(&in); err != nil {
			return badRequest(c, "invalid request")
		}
		id, err := ps.CreateProduct(c.Request().Context(), &in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"product_id": id})
	}, adminOnly...)

	g.PUT("/products/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return badRequest(c, "invalid product id")
		}
		var in model.ProductInput
		if err := c.Bind(&in); err != nil {
			return badRequest(c, "invalid request")
		}
		if err := ps.UpdateProduct(c.Request().Context(), id, &in); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"product_id": id})
	}, adminOnly...)

	g.DELETE("/products/:id", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return badRequest(c, "invalid product id")
		}
		if err := ps.DeleteProduct(c.Request().Context(), id); err != nil {
			return respondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}, adminOnly...)

	g.POST("/products/:id/image", func(c echo.Context) error {
		id, ok := pathID(c, "id")
		if !ok {
			return badRequest(c, "invalid product id")
		}
		fh, err := c.FormFile("image")
		if err != nil {
			return badRequest(c, "image file is required")
		}
		src, err := fh.Open()
		if err != nil {
			return respondError(c, err)
		}
		defer src.Close()

		path, err := ps.SaveImage(c.Request().Context(), id, fh.Filename, src)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"image_path": path})
	}, adminOnly...)
}
