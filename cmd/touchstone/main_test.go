package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, 0},
		{"interrupt", fmt.Errorf("render: %w", context.Canceled), 130},
		{"bad engine", terrors.New(terrors.ErrCodeInvalidEngine, "nope"), 2},
		{"missing file", terrors.New(terrors.ErrCodeFileNotFound, "authors.json"), 2},
		{"invalid graph", terrors.New(terrors.ErrCodeInvalidGraph, "2 problems"), 1},
		{"unknown view", terrors.New(terrors.ErrCodeViewNotFound, "v1"), 2},
		{"plain", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("%s: exitCode = %d, want %d", tt.name, got, tt.want)
		}
	}
}
