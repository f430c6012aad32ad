package server

import (
	"testing"

	"github.com/desertthunder/castaway/internal/shared"
)

func TestNew(t *testing.T) {
	router := NewBasicRouter()
	srv := New(shared.ServerConfig{Host: "127.0.0.1", Port: 8080}, router)

	if srv.Addr != "127.0.0.1:8080" {
		t.Errorf("expected 127.0.0.1:8080, got %s", srv.Addr)
	}
	if srv.Handler == nil {
		t.Error("expected the router as handler")
	}
}
