package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		host    string
		allowed bool
	}{
		{"no origin header", "", "example.com", true},
		{"localhost", "http://localhost:8080", "example.com", true},
		{"loopback v4", "http://127.0.0.1:8080", "example.com", true},
		{"loopback v6", "http://[::1]:8080", "example.com", true},
		{"same origin", "http://example.com", "example.com", true},
		{"same origin with port", "http://example.com:8080", "example.com:8080", true},
		{"private 192.168", "http://192.168.1.50:8080", "example.com", true},
		{"private 10.x", "http://10.0.0.5", "example.com", true},
		{"public IP", "http://8.8.8.8", "example.com", false},
		{"other host", "http://evil.test", "example.com", false},
		{"invalid origin URL", "http://[", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.allowed, checkOrigin(r))
		})
	}
}
