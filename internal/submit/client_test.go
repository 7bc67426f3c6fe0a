package submit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/festivo/festivo-backend/internal/wizard"
	"github.com/festivo/festivo-backend/pkg/config"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

func testSubmission() wizard.Submission {
	return wizard.Submission{
		Kind:    "service_card",
		OwnerID: "vendor-1",
		Record:  wizard.Record{"title": "Rustic Barn Weddings"},
		Attachments: []wizard.Attachment{
			{ID: "att-1", Name: "barn.jpg", Ref: "uploads/barn.jpg"},
		},
	}
}

func TestSubmitSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/submissions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sekret" {
			t.Errorf("unexpected auth header: %q", got)
		}
		var submission wizard.Submission
		if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if submission.Kind != "service_card" || len(submission.Attachments) != 1 {
			t.Errorf("unexpected submission: %+v", submission)
		}
		_ = json.NewEncoder(w).Encode(wizard.SubmitResult{Success: true, ID: "card-42"})
	}))
	defer server.Close()

	client, err := NewClient(config.SubmissionConfig{BaseURL: server.URL, APIKey: "sekret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := client.Submit(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.ID != "card-42" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSubmitBusinessRejection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(wizard.SubmitResult{Success: false, Message: "duplicate title"})
	}))
	defer server.Close()

	client, err := NewClient(config.SubmissionConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A rejection travels in the result, not as an error.
	result, err := client.Submit(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success || result.Message != "duplicate title" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSubmitServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(config.SubmissionConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.Submit(context.Background(), testSubmission())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(config.SubmissionConfig{}); err == nil {
		t.Fatal("expected error for missing base url")
	}
}
