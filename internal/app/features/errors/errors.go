// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/accidentdash/internal/app/system/reqlog"
	"github.com/dalemusser/accidentdash/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Message string
}

// ErrorLogger logs a failure and answers the request with the error page.
// Every feature that can fail on the server side holds one.
type ErrorLogger struct {
	Log    *zap.Logger
	Render viewdata.RenderFunc
}

// NewErrorLogger constructs an ErrorLogger that renders with the template engine.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger, Render: viewdata.Render}
}

// LogServerError logs err at error level and renders a 500 page.
// msg is for the log, userMsg is shown to the user. An empty backURL
// falls back to "/".
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", reqlog.ID(r.Context())))
	e.renderError(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}

// LogBadRequest logs err at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", reqlog.ID(r.Context())))
	e.renderError(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL)
}

func (e *ErrorLogger) renderError(w http.ResponseWriter, r *http.Request, status int, title, userMsg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	vm := viewdata.NewBaseVM(r, title, backURL)
	vm.BackURL = backURL

	w.WriteHeader(status)
	e.Render(w, r, "error_page", pageData{
		BaseVM:  vm,
		Status:  status,
		Message: userMsg,
	})
}
