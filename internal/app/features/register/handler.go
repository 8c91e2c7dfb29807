package register

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/accidentdash/internal/app/features/errors"
	userstore "github.com/dalemusser/accidentdash/internal/app/store/users"
	"github.com/dalemusser/accidentdash/internal/app/system/limits"
	"github.com/dalemusser/accidentdash/internal/app/system/timeouts"
	"github.com/dalemusser/accidentdash/internal/app/system/viewdata"
	"go.uber.org/zap"
)

const (
	msgDuplicate = "An account with that email already exists."
	msgMissing   = "Please enter your name, email and password."
)

type Handler struct {
	Users  *userstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
	Render viewdata.RenderFunc
}

func NewHandler(users *userstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		ErrLog: errLog,
		Log:    logger,
		Render: viewdata.Render,
	}
}

type registerFormData struct {
	viewdata.BaseVM
	Error string
	Name  string
	Email string
}

// ServeRegister handles GET /register.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	h.Render(w, r, "register", registerFormData{
		BaseVM: viewdata.NewBaseVM(r, "Register", "/"),
	})
}

// HandleRegisterPost handles POST /register.
func (h *Handler) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	limits.LimitBody(w, r, limits.MaxAuthFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/register")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, name, email, password)
	switch {
	case err == nil:
	case errors.Is(err, userstore.ErrInvalidInput):
		h.renderFormWithError(w, r, http.StatusBadRequest, msgMissing, name, email)
		return
	case errors.Is(err, userstore.ErrDuplicateEmail):
		h.renderFormWithError(w, r, http.StatusConflict, msgDuplicate, name, email)
		return
	default:
		h.ErrLog.LogServerError(w, r, "create user failed", err, "Unable to create your account.", "/register")
		return
	}

	h.Log.Info("user registered", zap.Int64("user_id", u.ID))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// renderFormWithError re-renders the form with what the user typed,
// except the password.
func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, status int, msg, name, email string) {
	w.WriteHeader(status)
	h.Render(w, r, "register", registerFormData{
		BaseVM: viewdata.NewBaseVM(r, "Register", "/"),
		Error:  msg,
		Name:   name,
		Email:  email,
	})
}
