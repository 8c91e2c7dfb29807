// internal/app/system/limits/limits.go
package limits

import "net/http"

// Request body size limits.
const (
	// MaxAuthFormSize caps the register and login forms, which carry a
	// name, an email, a password and a return path.
	MaxAuthFormSize = 64 << 10 // 64 KB
)

// LimitBody wraps r.Body so reading past n bytes fails. Call it before
// ParseForm.
func LimitBody(w http.ResponseWriter, r *http.Request, n int64) {
	r.Body = http.MaxBytesReader(w, r.Body, n)
}
