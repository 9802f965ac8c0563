package main

import (
	"net/http"

	"GearGodAPI/internal/middleware"
	"GearGodAPI/internal/model"
	"GearGodAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerPublic creates a customer account
func registerPublic(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}

		u := &model.User{
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      model.RoleCustomer,
		}
		id, err := authSvc.Register(c.Request().Context(), u, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"user_id": id})
	}
}

func loginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return badRequest(c, "invalid request")
		}

		token, user, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": token,
			"user":  user,
		})
	}
}

// meHandler returns the authenticated user's profile
func meHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		u, err := authSvc.Me(c.Request().Context(), claims.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, u)
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService) {
	auth := g.Group("/auth")

	// public
	auth.POST("/register", registerPublic(authSvc))
	auth.POST("/login", loginHandler(authSvc))

	// authenticated
	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("/me", meHandler(authSvc))
}
