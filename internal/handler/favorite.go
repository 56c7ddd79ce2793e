package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haeun-dev/campus-life-server/internal/repository"
)

// FavoriteHandler manages the user's favorite-store ledger.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
}

func NewFavoriteHandler(favorites *repository.FavoriteRepo) *FavoriteHandler {
	if favorites == nil {
		panic("nil repository passed to NewFavoriteHandler")
	}
	return &FavoriteHandler{Favorites: favorites}
}

// Add handles POST /v1/store/:id/favorite. Favoriting twice is a
// conflict, not a silent no-op.
func (h *FavoriteHandler) Add(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	sid, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid store id", nil)
	}
	switch err := h.Favorites.Add(c.Request().Context(), uid, sid); err {
	case nil:
		return respond(c, http.StatusCreated, "favorite added", nil)
	case repository.ErrStoreNotFound:
		return fail(c, http.StatusNotFound, "store not found", nil)
	case repository.ErrFavoriteExists:
		return fail(c, http.StatusConflict, "store already favorited", nil)
	default:
		return fail(c, http.StatusInternalServerError, "could not add favorite", nil)
	}
}

// Remove handles DELETE /v1/store/:id/favorite.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	sid, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid store id", nil)
	}
	switch err := h.Favorites.Remove(c.Request().Context(), uid, sid); err {
	case nil:
		return respond(c, http.StatusOK, "favorite removed", nil)
	case repository.ErrStoreNotFound:
		return fail(c, http.StatusNotFound, "store not found", nil)
	case repository.ErrFavoriteNotFound:
		return fail(c, http.StatusNotFound, "favorite not found", nil)
	default:
		return fail(c, http.StatusInternalServerError, "could not remove favorite", nil)
	}
}

// List handles GET /v1/user/favorite, newest favorites first.
func (h *FavoriteHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	items, err := h.Favorites.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load favorites", nil)
	}
	return respond(c, http.StatusOK, "favorites retrieved", items)
}
