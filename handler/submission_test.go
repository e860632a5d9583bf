package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/Dibbotcf/Legacyscript/model"
)

func TestSubmissionCreate(t *testing.T) {
	srv := newTestServer(t)

	w := srv.public(t, "POST", "/api/submissions", map[string]string{
		"name":    "Ayesha Rahman",
		"email":   "ayesha@example.com",
		"message": "Need a corporate video",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var sub model.Submission
	decodeData(t, w, &sub)

	if sub.ID != "1709294400001" {
		t.Errorf("Expected id from the clock, got %q", sub.ID)
	}
	if sub.Phone != model.PhoneNotProvided {
		t.Errorf("Expected default phone, got %q", sub.Phone)
	}
	if sub.Timestamp != "2024-03-01T12:00:00.001Z" {
		t.Errorf("Unexpected timestamp %q", sub.Timestamp)
	}
	if _, err := srv.store.Get(context.Background(), "submission:"+sub.ID); err != nil {
		t.Errorf("Expected submission to be stored: %v", err)
	}
}

func TestSubmissionCreateValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"missing name", map[string]string{"email": "a@example.com", "message": "hi"}, "Name is required"},
		{"missing email", map[string]string{"name": "A", "message": "hi"}, "Email is required"},
		{"bad email", map[string]string{"name": "A", "email": "nope", "message": "hi"}, "Email is invalid"},
		{"missing message", map[string]string{"name": "A", "email": "a@example.com"}, "Message is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.public(t, "POST", "/api/submissions", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			env := decodeEnvelope(t, w)
			if env.Success || env.Error != tt.message {
				t.Errorf("Expected error %q, got %+v", tt.message, env)
			}
		})
	}

	if srv.store.Count() != 0 {
		t.Errorf("Expected nothing stored, got %d records", srv.store.Count())
	}
}

func TestSubmissionCreateMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	w := srv.public(t, "POST", "/api/submissions", "{not json")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success || !strings.HasPrefix(env.Error, "parse request body: ") {
		t.Errorf("Expected the parse error in the envelope, got %+v", env)
	}
	if srv.store.Count() != 0 {
		t.Errorf("Expected nothing stored, got %d records", srv.store.Count())
	}
}

func TestSubmissionListNewestFirst(t *testing.T) {
	srv := newTestServer(t)

	for _, name := range []string{"first", "second", "third"} {
		w := srv.public(t, "POST", "/api/submissions", map[string]string{
			"name": name, "email": name + "@example.com", "message": "hello",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Create %s: expected status 200, got %d", name, w.Code)
		}
	}
	if err := srv.store.Set(context.Background(), "submission:broken", []byte("{")); err != nil {
		t.Fatalf("Failed to seed malformed record: %v", err)
	}

	w := srv.admin(t, "GET", "/api/submissions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var subs []model.Submission
	decodeData(t, w, &subs)

	if len(subs) != 3 {
		t.Fatalf("Expected 3 submissions, got %d", len(subs))
	}
	if subs[0].Name != "third" || subs[2].Name != "first" {
		t.Errorf("Expected newest first, got %s..%s", subs[0].Name, subs[2].Name)
	}
}

func TestSubmissionListEmpty(t *testing.T) {
	srv := newTestServer(t)

	w := srv.admin(t, "GET", "/api/submissions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("Expected empty array, got %s", w.Body.String())
	}
}

func TestSubmissionDeleteIdempotent(t *testing.T) {
	srv := newTestServer(t)

	w := srv.public(t, "POST", "/api/submissions", map[string]string{
		"name": "A", "email": "a@example.com", "message": "hello",
	})
	var sub model.Submission
	decodeData(t, w, &sub)

	for i := 0; i < 2; i++ {
		w := srv.admin(t, "DELETE", "/api/submissions/"+sub.ID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Delete %d: expected status 200, got %d", i+1, w.Code)
		}
		if env := decodeEnvelope(t, w); !env.Success {
			t.Errorf("Delete %d: expected success", i+1)
		}
	}

	if srv.store.Count() != 0 {
		t.Errorf("Expected store to be empty, got %d", srv.store.Count())
	}
}

func TestSubmissionStoreFailure(t *testing.T) {
	srv := newBrokenServer(t)

	w := srv.admin(t, "GET", "/api/submissions", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success || !strings.Contains(env.Error, "connection refused") {
		t.Errorf("Expected store error in envelope, got %+v", env)
	}
}
