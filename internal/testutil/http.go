package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/accidentdash/internal/app/system/auth"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID    int64
	Name  string
	Email string
}

// DefaultUser returns the TestUser most handler tests sign in as.
func DefaultUser() TestUser {
	return TestUser{ID: 1, Name: "Test User", Email: "user@test.com"}
}

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewFormRequest creates a url-encoded form POST.
func NewFormRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// CopyCookies adds every cookie set on rec to req, the way a browser
// would on its next request.
func CopyCookies(rec *httptest.ResponseRecorder, req *http.Request) {
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		req.AddCookie(c)
	}
}

// RenderRecorder stands in for the template engine. It remembers the
// last template name and view model and writes the name to the response.
type RenderRecorder struct {
	mu    sync.Mutex
	Name  string
	Data  any
	Calls int
}

// Render has the viewdata.RenderFunc signature.
func (rr *RenderRecorder) Render(w http.ResponseWriter, _ *http.Request, name string, data any) {
	rr.mu.Lock()
	rr.Name, rr.Data = name, data
	rr.Calls++
	rr.mu.Unlock()
	fmt.Fprintf(w, "rendered:%s", name)
}

// Field returns the named field of a view model struct, following
// embedded structs. It fails the test if the field does not exist.
func Field(t *testing.T, data any, name string) any {
	t.Helper()
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		t.Fatalf("view model is %T, not a struct", data)
	}
	f := v.FieldByName(name)
	if !f.IsValid() {
		t.Fatalf("view model %T has no field %q", data, name)
	}
	return f.Interface()
}
