package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		user     string
		pass     string
		setAuth  bool
		login    string
		password string
		want     int
	}{
		{"valid", "admin", "secret", true, "admin", "secret", http.StatusNoContent},
		{"wrong password", "admin", "secret", true, "admin", "nope", http.StatusUnauthorized},
		{"wrong user", "admin", "secret", true, "root", "secret", http.StatusUnauthorized},
		{"no header", "admin", "secret", false, "", "", http.StatusUnauthorized},
		{"unconfigured", "", "", true, "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/admin/classification/org-1", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.login, tt.password)
			}
			rr := httptest.NewRecorder()

			BasicAuth(tt.user, tt.pass)(ok).ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Basic realm=")
			}
		})
	}
}
