package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Banner is one entry of the main-page advertisement carousel.
type Banner struct {
	ID       uint64 `json:"id"`
	ImageURL string `json:"imageUrl"`
	Path     string `json:"path"`
}

var mainBanners = []Banner{
	{
		ID:       1,
		ImageURL: "/images/advertisement/main/banner/ad-1.png",
		Path:     "https://veil-value-ae4.notion.site/7a20e6e093d94887a4b438fb3ec5c9e1",
	},
}

// AdBanners handles GET /v1/ad.
func AdBanners(c echo.Context) error {
	return respond(c, http.StatusOK, "banners retrieved", mainBanners)
}
