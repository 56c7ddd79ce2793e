package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/haeun-dev/campus-life-server/internal/model"
	"github.com/haeun-dev/campus-life-server/internal/repository"
	"github.com/haeun-dev/campus-life-server/internal/status"
	"github.com/haeun-dev/campus-life-server/internal/utils"
)

// Category ids grouped into the directory's browse tabs.
var (
	foodCategories       = []uint64{1}
	cafeCategories       = []uint64{2}
	convCategories       = []uint64{3}
	facilitiesCategories = []uint64{4, 5, 6, 7, 8}
)

// StoreHandler serves the store directory: browsing, search, detail
// and the manager-only hours update.
type StoreHandler struct {
	SchoolID uint64
	Stores   *repository.StoreRepo
	Notices  *repository.NoticeRepo
}

func NewStoreHandler(schoolID uint64, stores *repository.StoreRepo, notices *repository.NoticeRepo) *StoreHandler {
	if stores == nil || notices == nil {
		panic("nil repository passed to NewStoreHandler")
	}
	return &StoreHandler{SchoolID: schoolID, Stores: stores, Notices: notices}
}

func (h *StoreHandler) list(c echo.Context, categories []uint64) error {
	var (
		items []repository.StoreSummary
		err   error
	)
	if categories == nil {
		items, err = h.Stores.ListBySchool(c.Request().Context(), h.SchoolID)
	} else {
		items, err = h.Stores.ListByCategories(c.Request().Context(), h.SchoolID, categories)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load stores", nil)
	}
	return respond(c, http.StatusOK, "stores retrieved", items)
}

// ListAll handles GET /v1/store.
func (h *StoreHandler) ListAll(c echo.Context) error { return h.list(c, nil) }

// ListFood handles GET /v1/store/food.
func (h *StoreHandler) ListFood(c echo.Context) error { return h.list(c, foodCategories) }

// ListCafe handles GET /v1/store/cafe.
func (h *StoreHandler) ListCafe(c echo.Context) error { return h.list(c, cafeCategories) }

// ListConvenience handles GET /v1/store/convenience.
func (h *StoreHandler) ListConvenience(c echo.Context) error { return h.list(c, convCategories) }

// ListFacilities handles GET /v1/store/facilities.
func (h *StoreHandler) ListFacilities(c echo.Context) error { return h.list(c, facilitiesCategories) }

// Search handles GET /v1/store/search?name=.
func (h *StoreHandler) Search(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		return fail(c, http.StatusBadRequest, "name query parameter is required", nil)
	}
	items, err := h.Stores.SearchByName(c.Request().Context(), h.SchoolID, name)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not search stores", nil)
	}
	return respond(c, http.StatusOK, "stores retrieved", items)
}

// ----- detail -----

type runningTime struct {
	OpeningTime *model.TimeOfDay `json:"opening_time"`
	ClosingTime *model.TimeOfDay `json:"closing_time"`
}

type breakTime struct {
	BreakStartTime *model.TimeOfDay `json:"break_start_time"`
	BreakExitTime  *model.TimeOfDay `json:"break_exit_time"`
}

type storeHoursView struct {
	RunningTime runningTime `json:"running_time"`
	BreakTime   breakTime   `json:"break_time"`
}

type noticeView struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsPinned  bool   `json:"is_pinned"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type categoryView struct {
	MainCategory string  `json:"main_category"`
	SubCategory  *string `json:"sub_category"`
}

type storeDetailView struct {
	SID        uint64                           `json:"sid"`
	Name       string                           `json:"store_name"`
	Number     *string                          `json:"store_number"`
	Location   *string                          `json:"store_location"`
	Status     model.Status                     `json:"status"`
	ImgURL     *string                          `json:"store_img_url"`
	Category   categoryView                     `json:"category"`
	StoreHours map[model.Weekday]storeHoursView `json:"store_hours"`
	Notices    []noticeView                     `json:"store_notice"`
}

func noticeViews(list []model.Notice) []noticeView {
	model.SortNotices(list)
	out := make([]noticeView, 0, len(list))
	for _, n := range list {
		out = append(out, noticeView{
			ID: n.ID, Title: n.Title, Content: n.Content, IsPinned: n.IsPinned,
			CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
			UpdatedAt: n.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return out
}

// Detail handles GET /v1/store/:id and assembles the aggregate view:
// store row, weekly hours keyed by weekday, and notices pinned-first.
func (h *StoreHandler) Detail(c echo.Context) error {
	sid, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid store id", nil)
	}
	ctx := c.Request().Context()

	store, err := h.Stores.GetByID(ctx, sid)
	if err == repository.ErrStoreNotFound {
		return fail(c, http.StatusNotFound, "store not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load store", nil)
	}
	category, err := h.Stores.Category(ctx, store.CategoryID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load store", nil)
	}
	hours, err := h.Stores.HoursByStore(ctx, sid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load store hours", nil)
	}
	notices, err := h.Notices.ListByStore(ctx, sid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load notices", nil)
	}

	hoursMap := make(map[model.Weekday]storeHoursView, len(hours))
	for _, hrs := range hours {
		hoursMap[hrs.Weekday] = storeHoursView{
			RunningTime: runningTime{OpeningTime: hrs.OpeningTime, ClosingTime: hrs.ClosingTime},
			BreakTime:   breakTime{BreakStartTime: hrs.BreakStartTime, BreakExitTime: hrs.BreakExitTime},
		}
	}

	view := storeDetailView{
		SID: store.SID, Name: store.Name, Number: store.Number, Location: store.Location,
		Status: store.Status, ImgURL: store.ImgURL,
		Category:   categoryView{MainCategory: category.MainCategory, SubCategory: category.SubCategory},
		StoreHours: hoursMap,
		Notices:    noticeViews(notices),
	}
	return respond(c, http.StatusOK, "store retrieved", view)
}

// ----- hours update -----

type hoursUpdateEntry struct {
	Weekday        string           `json:"weekday"`
	OpeningTime    *model.TimeOfDay `json:"opening_time"`
	ClosingTime    *model.TimeOfDay `json:"closing_time"`
	BreakStartTime *model.TimeOfDay `json:"break_start_time"`
	BreakExitTime  *model.TimeOfDay `json:"break_exit_time"`
}

type storeUpdateReq struct {
	Number     *string            `json:"store_number"`
	Location   *string            `json:"store_location"`
	StoreHours []hoursUpdateEntry `json:"store_hours"`
}

// Update handles PUT /v1/store/:id. Only the store's manager of record
// may call it. Display fields and hours rows are written in one
// transaction, and today's status is re-resolved inside the same
// transaction so an hours edit is visible immediately instead of
// waiting for the next scheduler firing.
func (h *StoreHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	sid, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid store id", nil)
	}
	var req storeUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}

	// Validate all weekday names before touching the database so a
	// bad entry cannot leave a half-applied schedule.
	days := make([]model.Weekday, len(req.StoreHours))
	for i, entry := range req.StoreHours {
		day, err := model.ParseWeekday(entry.Weekday)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid weekday: "+entry.Weekday, nil)
		}
		days[i] = day
	}

	ctx := c.Request().Context()
	switch _, err := h.Stores.ManagedBy(ctx, sid, uid); err {
	case nil:
	case repository.ErrStoreNotFound:
		return fail(c, http.StatusNotFound, "store not found", nil)
	case repository.ErrForbidden:
		return fail(c, http.StatusForbidden, "not the manager of this store", nil)
	default:
		return fail(c, http.StatusInternalServerError, "could not load store", nil)
	}

	tx, err := h.Stores.DB().BeginTx(ctx, nil)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not start transaction", nil)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if req.Number != nil || req.Location != nil {
		if err := h.Stores.UpdateFieldsTx(ctx, tx, sid, req.Number, req.Location); err != nil {
			return fail(c, http.StatusInternalServerError, "could not update store", nil)
		}
	}
	for i, entry := range req.StoreHours {
		row := model.StoreHours{
			StoreID:        sid,
			Weekday:        days[i],
			OpeningTime:    entry.OpeningTime,
			ClosingTime:    entry.ClosingTime,
			BreakStartTime: entry.BreakStartTime,
			BreakExitTime:  entry.BreakExitTime,
		}
		if err := h.Stores.UpsertHoursTx(ctx, tx, row); err != nil {
			return fail(c, http.StatusInternalServerError, "could not update store hours", nil)
		}
	}

	now := utils.NowKST()
	today, err := h.Stores.HoursForWeekdayTx(ctx, tx, sid, model.WeekdayOf(now))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not update store status", nil)
	}
	next := status.Resolve(today, model.ClockOf(now))
	if err := h.Stores.UpdateStatusTx(ctx, tx, sid, next); err != nil {
		return fail(c, http.StatusInternalServerError, "could not update store status", nil)
	}

	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "could not save store", nil)
	}
	committed = true

	return respond(c, http.StatusOK, "store updated", echo.Map{"status": next})
}
