package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/accidentdash/internal/app/features/errors"
	userstore "github.com/dalemusser/accidentdash/internal/app/store/users"
	"github.com/dalemusser/accidentdash/internal/app/system/auth"
	"github.com/dalemusser/accidentdash/internal/app/system/ratelimit"
	"github.com/dalemusser/accidentdash/internal/app/system/limits"
	"github.com/dalemusser/accidentdash/internal/app/system/timeouts"
	"github.com/dalemusser/accidentdash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

const msgInvalid = "Invalid email or password."

type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter // nil means unthrottled
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
	Render     viewdata.RenderFunc
}

func NewHandler(users *userstore.Store, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
		Render:     viewdata.Render,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	h.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Login", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	limits.LimitBody(w, r, limits.MaxAuthFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if ok, reason := h.Limiter.Check(r, email); !ok {
		h.Log.Warn("login throttled", zap.String("ip", ratelimit.ClientIP(r)))
		h.renderFormWithError(w, r, http.StatusTooManyRequests, reason, email)
		return
	}

	if email == "" || password == "" {
		h.renderFormWithError(w, r, http.StatusUnauthorized, msgInvalid, email)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		h.renderFormWithError(w, r, http.StatusUnauthorized, msgInvalid, email)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "DB find user", err, "A server error occurred.", "/login")
		return
	}

	// Same message for unknown email and wrong password.
	if !userstore.VerifyPassword(u, password) {
		h.Log.Info("login failed", zap.Int64("user_id", u.ID))
		h.renderFormWithError(w, r, http.StatusUnauthorized, msgInvalid, email)
		return
	}

	su := &auth.SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
	if err := h.SessionMgr.StartSession(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Unable to create session. Please try again.", "/login")
		return
	}
	h.Limiter.ResetEmail(email)
	h.Log.Info("login succeeded", zap.Int64("user_id", u.ID))

	dest := urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, status int, msg, email string) {
	// From POST, "return" will be in the form; from GET, we might rely on the query.
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	w.WriteHeader(status)
	h.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Login", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: ret,
	})
}
