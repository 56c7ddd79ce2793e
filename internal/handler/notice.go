package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/haeun-dev/campus-life-server/internal/model"
	"github.com/haeun-dev/campus-life-server/internal/repository"
	"github.com/haeun-dev/campus-life-server/internal/utils"
)

// NoticeHandler serves store notices. Creation, update and deletion are
// manager-only; pinning follows a confirm-override protocol so a new
// pin never silently displaces an existing one.
type NoticeHandler struct {
	Stores  *repository.StoreRepo
	Notices *repository.NoticeRepo
}

func NewNoticeHandler(stores *repository.StoreRepo, notices *repository.NoticeRepo) *NoticeHandler {
	if stores == nil || notices == nil {
		panic("nil repository passed to NewNoticeHandler")
	}
	return &NoticeHandler{Stores: stores, Notices: notices}
}

type noticeReq struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPinned bool   `json:"is_pinned"`
}

func (r noticeReq) validate() string {
	if strings.TrimSpace(r.Title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(r.Content) == "" {
		return "content is required"
	}
	return ""
}

func confirmSet(c echo.Context) bool {
	v := strings.ToLower(c.QueryParam("confirm"))
	return v == "true" || v == "1"
}

// loadManagedStore resolves the store and checks the acting user is its
// manager of record.
func (h *NoticeHandler) loadManagedStore(c echo.Context) (model.Store, int, string) {
	uid, err := getUserID(c)
	if err != nil {
		return model.Store{}, http.StatusUnauthorized, "unauthorized"
	}
	sid, err := pathID(c, "id")
	if err != nil {
		return model.Store{}, http.StatusBadRequest, "invalid store id"
	}
	store, err := h.Stores.ManagedBy(c.Request().Context(), sid, uid)
	switch err {
	case nil:
		return store, 0, ""
	case repository.ErrStoreNotFound:
		return model.Store{}, http.StatusNotFound, "store not found"
	case repository.ErrForbidden:
		return model.Store{}, http.StatusForbidden, "not the manager of this store"
	default:
		return model.Store{}, http.StatusInternalServerError, "could not load store"
	}
}

// List handles GET /v1/store/:id/notice.
func (h *NoticeHandler) List(c echo.Context) error {
	sid, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid store id", nil)
	}
	ctx := c.Request().Context()
	if _, err := h.Stores.GetByID(ctx, sid); err != nil {
		if err == repository.ErrStoreNotFound {
			return fail(c, http.StatusNotFound, "store not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "could not load store", nil)
	}
	list, err := h.Notices.ListByStore(ctx, sid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load notices", nil)
	}
	return respond(c, http.StatusOK, "notices retrieved", noticeViews(list))
}

// Get handles GET /v1/store/:id/notice/:nid.
func (h *NoticeHandler) Get(c echo.Context) error {
	sid, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid store id", nil)
	}
	nid, err := pathID(c, "nid")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid notice id", nil)
	}
	n, err := h.Notices.Get(c.Request().Context(), sid, nid)
	if err == repository.ErrNoticeNotFound {
		return fail(c, http.StatusNotFound, "notice not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load notice", nil)
	}
	views := noticeViews([]model.Notice{n})
	return respond(c, http.StatusOK, "notice retrieved", views[0])
}

// Create handles POST /v1/store/:id/notice.
func (h *NoticeHandler) Create(c echo.Context) error {
	store, code, msg := h.loadManagedStore(c)
	if code != 0 {
		return fail(c, code, msg, nil)
	}
	var req noticeReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg, nil)
	}

	ctx := c.Request().Context()
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

	if req.IsPinned {
		pinnedID, found, err := h.Notices.PinnedExceptTx(ctx, tx, store.SID, 0)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "could not check pinned notice", nil)
		}
		if found {
			if !confirmSet(c) {
				return fail(c, http.StatusConflict, "another notice is already pinned",
					echo.Map{"needsConfirmation": true, "pinnedNoticeId": pinnedID})
			}
			if err := h.Notices.UnpinTx(ctx, tx, pinnedID); err != nil {
				return fail(c, http.StatusInternalServerError, "could not unpin notice", nil)
			}
		}
	}

	now := utils.NowKST()
	n := model.Notice{
		StoreID:   store.SID,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		IsPinned:  req.IsPinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Notices.CreateTx(ctx, tx, &n); err != nil {
		return fail(c, http.StatusInternalServerError, "could not create notice", nil)
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "could not save notice", nil)
	}
	committed = true

	views := noticeViews([]model.Notice{n})
	return respond(c, http.StatusCreated, "notice created", views[0])
}

// Update handles PUT /v1/store/:id/notice/:nid.
func (h *NoticeHandler) Update(c echo.Context) error {
	store, code, msg := h.loadManagedStore(c)
	if code != 0 {
		return fail(c, code, msg, nil)
	}
	nid, err := pathID(c, "nid")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid notice id", nil)
	}
	var req noticeReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg, nil)
	}

	ctx := c.Request().Context()
	existing, err := h.Notices.Get(ctx, store.SID, nid)
	if err == repository.ErrNoticeNotFound {
		return fail(c, http.StatusNotFound, "notice not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load notice", nil)
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

	if req.IsPinned {
		// Exclude the target itself: re-saving an already pinned
		// notice must not conflict with its own pin.
		pinnedID, found, err := h.Notices.PinnedExceptTx(ctx, tx, store.SID, nid)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "could not check pinned notice", nil)
		}
		if found {
			if !confirmSet(c) {
				return fail(c, http.StatusConflict, "another notice is already pinned",
					echo.Map{"needsConfirmation": true, "pinnedNoticeId": pinnedID})
			}
			if err := h.Notices.UnpinTx(ctx, tx, pinnedID); err != nil {
				return fail(c, http.StatusInternalServerError, "could not unpin notice", nil)
			}
		}
	}

	existing.Title = strings.TrimSpace(req.Title)
	existing.Content = req.Content
	existing.IsPinned = req.IsPinned
	existing.UpdatedAt = utils.NowKST()
	if err := h.Notices.UpdateTx(ctx, tx, &existing); err != nil {
		if err == repository.ErrNoticeNotFound {
			return fail(c, http.StatusNotFound, "notice not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "could not update notice", nil)
	}
	if err := tx.Commit(); err != nil {
		return fail(c, http.StatusInternalServerError, "could not save notice", nil)
	}
	committed = true

	views := noticeViews([]model.Notice{existing})
	return respond(c, http.StatusOK, "notice updated", views[0])
}

// Delete handles DELETE /v1/store/:id/notice/:nid. Deleting a pinned
// notice simply removes it; nothing is re-pinned in its place.
func (h *NoticeHandler) Delete(c echo.Context) error {
	store, code, msg := h.loadManagedStore(c)
	if code != 0 {
		return fail(c, code, msg, nil)
	}
	nid, err := pathID(c, "nid")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid notice id", nil)
	}
	err = h.Notices.Delete(c.Request().Context(), store.SID, nid)
	if err == repository.ErrNoticeNotFound {
		return fail(c, http.StatusNotFound, "notice not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not delete notice", nil)
	}
	return respond(c, http.StatusOK, "notice deleted", nil)
}
