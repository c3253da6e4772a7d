package server

import (
	"strings"
	"testing"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
)

func TestValidateEvent(t *testing.T) {
	tests := []struct {
		name string
		req  EventRequest
		want string // substring of the message; empty means valid
	}{
		{"hover", EventRequest{Type: "hover", Node: "Eco"}, ""},
		{"hover without node", EventRequest{Type: "hover"}, ""},
		{"zoom", EventRequest{Type: "zoom", Factor: 1.5}, ""},
		{"pan", EventRequest{Type: "pan", DX: -3}, ""},
		{"empty", EventRequest{}, "type is required"},
		{"unknown", EventRequest{Type: "wiggle"}, "type must be one of"},
		{"drag", EventRequest{Type: "drag"}, "node is required"},
		{"zoom zero", EventRequest{Type: "zoom"}, "factor is required"},
		{"zoom negative", EventRequest{Type: "zoom", Factor: -1}, "factor must be at least 0"},
		{"long node", EventRequest{Type: "click", Node: strings.Repeat("x", 300)}, "node must be at most 256"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEvent(tt.req)
			if tt.want == "" {
				if err != nil {
					t.Errorf("validateEvent(%+v) = %v", tt.req, err)
				}
				return
			}
			if !terrors.Is(err, terrors.ErrCodeInvalidEvent) {
				t.Fatalf("validateEvent(%+v) = %v, want INVALID_EVENT", tt.req, err)
			}
			if !strings.Contains(terrors.UserMessage(err), tt.want) {
				t.Errorf("message = %q, want it to contain %q", terrors.UserMessage(err), tt.want)
			}
		})
	}
}
