package user

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/common"
	"vidtube/internal/config"
	"vidtube/internal/dbmysql"
)

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type Handler struct {
	service   UserService
	tokens    *common.TokenManager
	maxUpload int64 // request body cap for multipart uploads, in bytes
}

func NewHandler(service UserService, tokens *common.TokenManager, cnf *config.Config) *Handler {
	return &Handler{
		service:   service,
		tokens:    tokens,
		maxUpload: cnf.Media.MaxUploadMB << 20,
	}
}

// Register handles POST /users/register (multipart with avatar file).
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := common.ParseMultipart(w, r, h.maxUpload); err != nil {
		common.RespondError(w, err)
		return
	}

	in := RegisterInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
		Password: r.FormValue("password"),
	}

	if file, header, err := r.FormFile("avatar"); err == nil {
		defer file.Close()
		in.Avatar, in.AvatarInfo = file, header
	}
	if file, header, err := r.FormFile("coverImage"); err == nil {
		defer file.Close()
		in.Cover, in.CoverInfo = file, header
	}

	created, err := h.service.Register(r.Context(), in)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, created, "User registered successfully!")
}

// Login handles POST /users/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.BadRequest("invalid request body"))
		return
	}
	if err := common.ValidateStruct(&req); err != nil {
		common.RespondError(w, err)
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	logged, access, refresh, err := h.service.Login(r.Context(), identifier, req.Password)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	h.setAuthCookies(w, access, refresh)
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user":         logged,
		"accessToken":  access,
		"refreshToken": refresh,
	}, "User logged in successfully!")
}

// Logout handles POST /users/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	current, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("unauthorized request"))
		return
	}

	if err := h.service.Logout(r.Context(), current.UserID); err != nil {
		common.RespondError(w, err)
		return
	}

	h.clearAuthCookies(w)
	common.RespondJSON(w, http.StatusOK, struct{}{}, "User logged out successfully!")
}

// RefreshToken handles POST /users/refresh-token.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			token = req.RefreshToken
		}
	}

	refreshed, access, refresh, err := h.service.RefreshTokens(r.Context(), token)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	h.setAuthCookies(w, access, refresh)
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user":         refreshed,
		"accessToken":  access,
		"refreshToken": refresh,
	}, "Access token refreshed successfully!")
}

// CurrentUser handles GET /users/current-user.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	current, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("unauthorized request"))
		return
	}

	common.RespondJSON(w, http.StatusOK, current, "Current user fetched successfully!")
}

// ChangePassword handles POST /users/change-password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	current, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("unauthorized request"))
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.BadRequest("invalid request body"))
		return
	}
	if err := common.ValidateStruct(&req); err != nil {
		common.RespondError(w, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), current.UserID, req.OldPassword, req.NewPassword); err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, struct{}{}, "Password changed successfully!")
}

// UpdateAccount handles PATCH /users/update-account.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	current, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("unauthorized request"))
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.BadRequest("invalid request body"))
		return
	}

	updated, err := h.service.UpdateAccount(r.Context(), current.UserID, req.FullName, req.Email)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, updated, "Account details updated successfully!")
}

// UpdateAvatar handles PATCH /users/avatar (multipart).
func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", h.service.UpdateAvatar, "Avatar updated successfully!")
}

// UpdateCoverImage handles PATCH /users/cover-image (multipart).
func (h *Handler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", h.service.UpdateCoverImage, "Cover image updated successfully!")
}

// ChannelProfile handles GET /users/c/{username} with optional identity.
func (h *Handler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if username == "" {
		common.RespondError(w, common.BadRequest("username is required"))
		return
	}

	var viewerID uint64
	if current, ok := common.CurrentUser(r.Context()); ok {
		viewerID = current.UserID
	}

	profile, err := h.service.GetChannelProfile(r.Context(), username, viewerID)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, profile, "Channel profile fetched successfully!")
}

func (h *Handler) updateImage(w http.ResponseWriter, r *http.Request, field string,
	update func(ctx context.Context, userID uint64, file multipart.File, header *multipart.FileHeader) (*dbmysql.User, error),
	message string) {

	current, ok := common.CurrentUser(r.Context())
	if !ok {
		common.RespondError(w, common.Unauthorized("unauthorized request"))
		return
	}

	if err := common.ParseMultipart(w, r, h.maxUpload); err != nil {
		common.RespondError(w, err)
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		common.RespondError(w, common.BadRequest(field+" file is required"))
		return
	}
	defer file.Close()

	updated, err := update(r.Context(), current.UserID, file, header)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, updated, message)
}

func (h *Handler) setAuthCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    access,
		Path:     "/",
		MaxAge:   int(h.tokens.AccessTokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.tokens.SecureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refresh,
		Path:     "/",
		MaxAge:   int(h.tokens.RefreshTokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.tokens.SecureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.tokens.SecureCookies(),
			SameSite: http.SameSiteLaxMode,
		})
	}
}
