package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storyboardgen/internal/storyboard"
	"storyboardgen/pkg/prompts"
)

var fakePNG = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x01, 0x02, 0x03}

func newTestClient(serverURL string) *HFClient {
	c := NewHFClient("test-token", prompts.Default(), HFOptions{})
	c.baseURL = serverURL
	return c
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name        string
		description string
		style       string
		statusCode  int
		response    []byte
		wantErr     bool
		wantPrompt  string
		wantStyle   string
	}{
		{
			name:        "success",
			description: "a cat on a massage table",
			style:       "cartoon",
			statusCode:  http.StatusOK,
			response:    fakePNG,
			wantStyle:   "cartoon style",
		},
		{
			name:        "defaultStyleApplied",
			description: "a cat on a massage table",
			style:       "",
			statusCode:  http.StatusOK,
			response:    fakePNG,
			wantStyle:   "cartoon style",
		},
		{
			name:        "customStyle",
			description: "a cat on a massage table",
			style:       "watercolor",
			statusCode:  http.StatusOK,
			response:    fakePNG,
			wantStyle:   "watercolor style",
		},
		{
			name:        "emptyDescription",
			description: "",
			style:       "cartoon",
			statusCode:  http.StatusOK,
			response:    fakePNG,
		},
		{
			name:        "longDescription",
			description: strings.Repeat("a very detailed scene ", 500),
			style:       "cartoon",
			statusCode:  http.StatusOK,
			response:    fakePNG,
		},
		{
			name:        "providerError",
			description: "a cat",
			style:       "cartoon",
			statusCode:  http.StatusServiceUnavailable,
			response:    []byte(`{"error": "model loading"}`),
			wantErr:     true,
		},
		{
			name:        "unauthorized",
			description: "a cat",
			style:       "cartoon",
			statusCode:  http.StatusUnauthorized,
			response:    []byte(`{"error": "invalid token"}`),
			wantErr:     true,
		},
		{
			name:        "emptyBody",
			description: "a cat",
			style:       "cartoon",
			statusCode:  http.StatusOK,
			response:    nil,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotReq hfRequest
			var gotAuth string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				_ = json.NewDecoder(r.Body).Decode(&gotReq)
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write(tt.response)
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			got, err := client.Generate(context.Background(), tt.description, tt.style)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Generate() expected error, got nil")
				}
				if !errors.Is(err, storyboard.ErrImageProvider) {
					t.Errorf("Generate() error = %v, want ErrImageProvider", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if !bytes.Equal(got, fakePNG) {
				t.Errorf("Generate() = %v, want %v", got, fakePNG)
			}
			if gotAuth != "Bearer test-token" {
				t.Errorf("Authorization = %q, want bearer token", gotAuth)
			}
			if gotReq.Parameters.NumInferenceSteps != defaultSteps {
				t.Errorf("NumInferenceSteps = %d, want %d", gotReq.Parameters.NumInferenceSteps, defaultSteps)
			}
			if tt.wantStyle != "" && !strings.Contains(gotReq.Inputs, tt.wantStyle) {
				t.Errorf("prompt %q missing style %q", gotReq.Inputs, tt.wantStyle)
			}
			if !strings.Contains(gotReq.Inputs, "bright colors") {
				t.Errorf("prompt %q missing quality qualifiers", gotReq.Inputs)
			}
		})
	}
}

func TestPlaceholder(t *testing.T) {
	a := Placeholder()
	b := Placeholder()
	if !bytes.Equal(a, b) {
		t.Error("Placeholder() is not deterministic")
	}

	img, err := png.Decode(bytes.NewReader(a))
	if err != nil {
		t.Fatalf("Placeholder() is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != placeholderWidth || bounds.Dy() != placeholderHeight {
		t.Errorf("Placeholder() size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), placeholderWidth, placeholderHeight)
	}
}

func TestTransparentPixel(t *testing.T) {
	data := TransparentPixel()

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("TransparentPixel() is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 1 || bounds.Dy() != 1 {
		t.Errorf("TransparentPixel() size = %dx%d, want 1x1", bounds.Dx(), bounds.Dy())
	}
}

func TestDataURI(t *testing.T) {
	uri := DataURI([]byte{1, 2, 3})
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("DataURI() = %q, want data URI prefix", uri)
	}
	if uri != "data:image/png;base64,AQID" {
		t.Errorf("DataURI() = %q, want %q", uri, "data:image/png;base64,AQID")
	}
}
