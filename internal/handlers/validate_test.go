package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"prompt":"hello"}`, ""},
		{"unknown fields ignored", `{"prompt":"hello","extra":1}`, ""},
		{"empty", ``, "body is empty"},
		{"not json", `prompt=hello`, "invalid request body"},
		{"too long", `{"prompt":"` + strings.Repeat("x", 10_001) + `"}`, "prompt is too long (max 10000 characters)"},
		{"too large", `{"prompt":"` + strings.Repeat("x", maxBodyBytes) + `"}`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var req screenRequest
			err := decodeBody(w, r, &req)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if req.Prompt != "hello" {
					t.Errorf("prompt: got %q", req.Prompt)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errInvalidRequest) {
				t.Errorf("error should wrap errInvalidRequest: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error: got %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}
