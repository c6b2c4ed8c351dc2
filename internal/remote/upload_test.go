package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/justalter/dancectl/internal/catalog"
	"github.com/justalter/dancectl/internal/remote"
)

func uploadFixture() catalog.Catalog {
	return catalog.Catalog{
		"a1b2c3d4": {Name: "Spin.unity3d", Author: "tanito", Credits: []string{}, Updated: "2026-01-15"},
	}
}

func TestUpload_PayloadShape(t *testing.T) {
	var got remote.Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	u, err := remote.NewUploader(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewUploader: %v", err)
	}
	if err := u.Upload(context.Background(), uploadFixture(), "justalter"); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if got.ContributorID != "justalter" {
		t.Errorf("contributorId = %q", got.ContributorID)
	}
	if got.Timestamp == "" {
		t.Error("timestamp missing from payload")
	}
	if len(got.Content) != 1 || got.Content["a1b2c3d4"] == nil {
		t.Errorf("content = %v", got.Content)
	}
}

func TestUpload_NeverMutatesCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	cat := uploadFixture()
	before := cat.Clone()
	u, err := remote.NewUploader(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewUploader: %v", err)
	}
	_ = u.Upload(context.Background(), cat, "justalter")

	if len(cat) != len(before) || !cat["a1b2c3d4"].Equal(before["a1b2c3d4"]) {
		t.Error("failed upload mutated the local catalog")
	}
}

func TestUpload_Non2xxIsUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	u, err := remote.NewUploader(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewUploader: %v", err)
	}
	err = u.Upload(context.Background(), uploadFixture(), "justalter")
	var ue *remote.UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("error type = %T, want *UploadError", err)
	}
	if ue.Reason == "" {
		t.Error("upload error carries no reason")
	}
}

func TestUpload_MissingContributor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent despite invalid payload")
	}))
	t.Cleanup(srv.Close)

	u, err := remote.NewUploader(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewUploader: %v", err)
	}
	err = u.Upload(context.Background(), uploadFixture(), "")
	var ue *remote.UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("error type = %T, want *UploadError", err)
	}
}

func TestNewUploader_RejectsBadEndpoint(t *testing.T) {
	if _, err := remote.NewUploader("not a url", time.Second); err == nil {
		t.Error("expected error for invalid endpoint")
	}
	if _, err := remote.NewUploader("", time.Second); err == nil {
		t.Error("expected error for empty endpoint")
	}
}
