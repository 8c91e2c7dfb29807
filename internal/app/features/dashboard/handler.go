package dashboard

import (
	"net/http"

	"github.com/dalemusser/accidentdash/internal/app/system/auth"
	"github.com/dalemusser/accidentdash/internal/app/system/viewdata"
	"go.uber.org/zap"
)

const memberSinceLayout = "January 2, 2006"

type Handler struct {
	Log    *zap.Logger
	Render viewdata.RenderFunc
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Render: viewdata.Render}
}

type dashboardData struct {
	viewdata.BaseVM
	Name        string
	Email       string
	MemberSince string
}

// ServeDashboard handles GET /dashboard. It shows the signed-in user's
// profile; a request without a user goes to the login page.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := dashboardData{
		BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/"),
		Name:   u.Name,
		Email:  u.Email,
	}
	if !u.CreatedAt.IsZero() {
		data.MemberSince = u.CreatedAt.Format(memberSinceLayout)
	}
	h.Render(w, r, "dashboard", data)
}
