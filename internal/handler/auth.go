package handler

import (
	"database/sql"
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/haeun-dev/campus-life-server/internal/config"
	"github.com/haeun-dev/campus-life-server/internal/model"
	"github.com/haeun-dev/campus-life-server/internal/queue"
	"github.com/haeun-dev/campus-life-server/internal/repository"
	"github.com/haeun-dev/campus-life-server/internal/service"
	"github.com/haeun-dev/campus-life-server/internal/utils"
)

// AuthHandler covers the account lifecycle: signup, email check, login,
// token refresh, logout, profile lookup and verification requests.
type AuthHandler struct {
	Cfg       config.Config
	Users     *repository.UserRepo
	Tokens    *repository.TokenRepo
	Publisher *service.Publisher
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, tokens *repository.TokenRepo, pub *service.Publisher) *AuthHandler {
	if users == nil || tokens == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens, Publisher: pub}
}

type signupReq struct {
	StdID    string `json:"std_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	UID      uint64  `json:"uid"`
	StdID    string  `json:"std_id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	SchoolID uint64  `json:"school_id"`
	Role     string  `json:"role"`
	SignURL  *string `json:"sign_url"`
}

func toUserView(u model.User) userView {
	return userView{
		UID: u.UID, StdID: u.StdID, Name: u.Name, Email: u.Email,
		SchoolID: u.SchoolID, Role: u.Role, SignURL: u.SignURL,
	}
}

func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

// Signup handles POST /v1/user/signup. New accounts always start as
// STUDENT; manager and staff roles are assigned out of band.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	req.StdID = strings.TrimSpace(req.StdID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.StdID == "":
		return fail(c, http.StatusBadRequest, "std_id is required", nil)
	case req.Name == "":
		return fail(c, http.StatusBadRequest, "name is required", nil)
	case !validEmail(req.Email):
		return fail(c, http.StatusBadRequest, "invalid email address", nil)
	case len(req.Password) < 8:
		return fail(c, http.StatusBadRequest, "password must be at least 8 characters", nil)
	}

	u := model.User{
		StdID:    req.StdID,
		Name:     req.Name,
		Email:    req.Email,
		SchoolID: h.Cfg.SchoolID,
		Role:     model.RoleStudent,
	}
	err := h.Users.Create(c.Request().Context(), &u, req.Password, h.Cfg.BcryptCost)
	switch err {
	case nil:
	case repository.ErrEmailExists:
		return fail(c, http.StatusConflict, "email already registered", nil)
	case repository.ErrStdIDExists:
		return fail(c, http.StatusConflict, "student id already registered", nil)
	default:
		return fail(c, http.StatusInternalServerError, "could not create account", nil)
	}
	return respond(c, http.StatusCreated, "account created", toUserView(u))
}

// CheckEmail handles POST /v1/user/check-email, the pre-signup
// availability probe.
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if !validEmail(strings.TrimSpace(req.Email)) {
		return fail(c, http.StatusBadRequest, "invalid email address", nil)
	}
	exists, err := h.Users.EmailExists(c.Request().Context(), req.Email)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not check email", nil)
	}
	if exists {
		return fail(c, http.StatusConflict, "email already registered", echo.Map{"available": false})
	}
	return respond(c, http.StatusOK, "email available", echo.Map{"available": true})
}

type loginReq struct {
	StdID    string `json:"std_id"`
	Password string `json:"password"`
}

type tokenPairView struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

func (h *AuthHandler) issueTokens(c echo.Context, u model.User) (tokenPairView, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.UID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return tokenPairView{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return tokenPairView{}, err
	}
	if err := h.Tokens.Store(c.Request().Context(), u.UID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return tokenPairView{}, err
	}
	return tokenPairView{
		AccessToken:  access.Token,
		RefreshToken: refresh.Raw,
		ExpiresAt:    access.Exp.Format("2006-01-02 15:04:05"),
	}, nil
}

// Login handles POST /v1/user/login. Students sign in with their
// student number. Wrong id and wrong password answer identically.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if strings.TrimSpace(req.StdID) == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "std_id and password are required", nil)
	}
	u, err := h.Users.GetByStdID(c.Request().Context(), req.StdID)
	if err == sql.ErrNoRows {
		return fail(c, http.StatusUnauthorized, "invalid credentials", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not sign in", nil)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "invalid credentials", nil)
	}
	pair, err := h.issueTokens(c, u)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not sign in", nil)
	}
	return respond(c, http.StatusOK, "signed in", pair)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /v1/user/refresh: rotate the refresh token and
// mint a new access token. The presented token is revoked whether or
// not rotation succeeds past validation.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, "refresh_token is required", nil)
	}
	ctx := c.Request().Context()
	hash := utils.HashRefreshRaw(req.RefreshToken)
	userID, err := h.Tokens.Validate(ctx, hash)
	if err == sql.ErrNoRows {
		return fail(c, http.StatusUnauthorized, "invalid or expired refresh token", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not refresh session", nil)
	}
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "invalid or expired refresh token", nil)
	}
	if err := h.Tokens.Revoke(ctx, hash); err != nil {
		return fail(c, http.StatusInternalServerError, "could not refresh session", nil)
	}
	pair, err := h.issueTokens(c, u)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not refresh session", nil)
	}
	return respond(c, http.StatusOK, "session refreshed", pair)
}

// Logout handles POST /v1/user/logout by revoking the refresh token.
// Revoking an unknown token still answers OK; logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, "refresh_token is required", nil)
	}
	if err := h.Tokens.Revoke(c.Request().Context(), utils.HashRefreshRaw(req.RefreshToken)); err != nil {
		return fail(c, http.StatusInternalServerError, "could not sign out", nil)
	}
	return respond(c, http.StatusOK, "signed out", nil)
}

type schoolView struct {
	ID     uint64  `json:"id"`
	Name   string  `json:"name"`
	Campus *string `json:"campus"`
}

type meView struct {
	userView
	School schoolView `json:"school"`
}

// Me handles GET /v1/user/me, the profile view including the campus
// the account belongs to.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, uid)
	if err == sql.ErrNoRows {
		return fail(c, http.StatusNotFound, "account not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load account", nil)
	}
	school, err := h.Users.School(ctx, u.SchoolID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load account", nil)
	}
	view := meView{
		userView: toUserView(u),
		School:   schoolView{ID: school.ID, Name: school.Name, Campus: school.Campus},
	}
	return respond(c, http.StatusOK, "account retrieved", view)
}

type verifyPhoneReq struct {
	PhoneNumber string `json:"phone_number"`
}

// VerifyPhone handles POST /v1/user/verify/phone: enqueue an SMS
// verification request. The message is sent by the queue consumer, so
// the endpoint only confirms acceptance.
func (h *AuthHandler) VerifyPhone(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	var req verifyPhoneReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", nil)
	}
	phone := strings.TrimSpace(req.PhoneNumber)
	if phone == "" {
		return fail(c, http.StatusBadRequest, "phone_number is required", nil)
	}
	return h.publishVerification(c, uid, queue.ChannelSMS, phone)
}

// VerifySchool handles POST /v1/user/verify/school: enqueue a school
// email verification addressed to the account's registered email.
func (h *AuthHandler) VerifySchool(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized", nil)
	}
	u, err := h.Users.GetByID(c.Request().Context(), uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load account", nil)
	}
	return h.publishVerification(c, uid, queue.ChannelSchoolEmail, u.Email)
}

func (h *AuthHandler) publishVerification(c echo.Context, uid uint64, channel, destination string) error {
	if h.Publisher == nil {
		return fail(c, http.StatusServiceUnavailable, "verification is not available", nil)
	}
	ev := queue.VerificationRequestedEvent{
		UserID:      uid,
		Channel:     channel,
		Destination: destination,
		RequestedAt: utils.NowKST().Format("2006-01-02 15:04:05"),
	}
	if err := h.Publisher.PublishVerificationRequested(c.Request().Context(), ev); err != nil {
		return fail(c, http.StatusServiceUnavailable, "verification is not available", nil)
	}
	return respond(c, http.StatusAccepted, "verification requested", nil)
}
