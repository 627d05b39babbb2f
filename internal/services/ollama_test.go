package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaService_Generate(t *testing.T) {
	var gotReq map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"response": "<think>hmm</think>You enter the cave.",
		})
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "llama3", nil)
	got, err := svc.Generate(context.Background(), "the prompt", "the system")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got != "You enter the cave." {
		t.Errorf("got %q, thinking block should be stripped", got)
	}
	if gotReq["model"] != "llama3" || gotReq["prompt"] != "the prompt" || gotReq["system"] != "the system" {
		t.Errorf("request = %+v", gotReq)
	}
	if gotReq["stream"] != false {
		t.Error("streaming must be disabled")
	}
}

func TestOllamaService_GenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "llama3", nil)
	if _, err := svc.Generate(context.Background(), "p", "s"); err == nil {
		t.Error("expected an error on a 500 response")
	}
}

func TestOllamaService_ListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models": [{"name": "llama3"}, {"name": "mistral"}]}`))
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "", nil)
	models, err := svc.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 2 || models[0] != "llama3" || models[1] != "mistral" {
		t.Errorf("models = %v", models)
	}
}

func TestOllamaService_InitModelAlreadyAvailable(t *testing.T) {
	pulled := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models": [{"name": "llama3"}]}`))
		case "/api/pull":
			pulled = true
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "", nil)
	if err := svc.InitModel(context.Background(), "llama3"); err != nil {
		t.Fatalf("InitModel: %v", err)
	}
	if pulled {
		t.Error("available model must not be pulled")
	}
	if svc.Model() != "llama3" {
		t.Errorf("model = %q", svc.Model())
	}
}

func TestOllamaService_InitModelPullsMissing(t *testing.T) {
	pulled := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models": []}`))
		case "/api/pull":
			pulled = true
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "", nil)
	if err := svc.InitModel(context.Background(), "llama3"); err != nil {
		t.Fatalf("InitModel: %v", err)
	}
	if !pulled {
		t.Error("missing model should be pulled")
	}
}
