package model

import "time"

// CustomizableCategory is the category name the seed data marks as
// customizable. Older storefront clients send it as the item category.
const CustomizableCategory = "Computer-Cases"

type Category struct {
	CategoryID     int64  `json:"category_id"`
	Name           string `json:"name"`
	IsCustomizable bool   `json:"is_customizable"`
}

type Color struct {
	ColorID int64  `json:"color_id"`
	Name    string `json:"name"`
	HexCode string `json:"hex_code"`
}

type Material struct {
	MaterialID    int64   `json:"material_id"`
	Name          string  `json:"name"`
	PriceModifier float64 `json:"price_modifier"`
}

type Product struct {
	ProductID      int64      `json:"product_id"`
	CategoryID     int64      `json:"category_id"`
	CategoryName   string     `json:"category,omitempty"`
	IsCustomizable bool       `json:"is_customizable"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	Stock          int        `json:"stock"`
	ImagePath      *string    `json:"image_path,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// ProductColor is a predefined catalog variant (product x color).
type ProductColor struct {
	ProductColorID int64  `json:"product_color_id"`
	ProductID      int64  `json:"product_id"`
	ColorID        int64  `json:"color_id"`
	ColorName      string `json:"color_name"`
	HexCode        string `json:"hex_code"`
}

// ProductInput is the admin create/update payload. ColorIDs become catalog
// variants; MaterialIDs are the materials offered for customization.
type ProductInput struct {
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ColorIDs    []int64 `json:"color_ids"`
	MaterialIDs []int64 `json:"material_ids"`
}
