package backend_test

import (
	"testing"

	"github.com/brunohorta82/idf-gpio/backend"
)

func TestUnknownType(t *testing.T) {
	if _, err := backend.New(backend.Config{Type: "bogus"}); err == nil {
		t.Fatal("expected error for unknown backend type")
	}
}

func TestDefaultIsFake(t *testing.T) {
	drv, err := backend.New(backend.Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() {
		if c, ok := drv.(interface{ Close() error }); ok {
			c.Close()
		}
	}()
	if err := drv.Reset(1); err != nil {
		t.Fatalf("fake driver reset: %v", err)
	}
}
