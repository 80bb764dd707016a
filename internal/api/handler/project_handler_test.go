package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moderndash/dashboard/internal/core/domain"
)

func TestProjectHandler_CreateOwnedByCurrentIdentity(t *testing.T) {
	stub := &stubAdmin{}
	h := NewProjectHandler(stub)

	c, rec := newContext(jsonRequest(http.MethodPost, "/api/projects", `{"title":"Website Redesign","status":"paused"}`), sessionAs(domain.RoleUser))
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.project == nil || stub.project.CreatedBy != "1" || stub.project.Status != domain.ProjectPaused {
		t.Fatalf("unexpected input: %+v", stub.project)
	}
}

func TestProjectHandler_CreateRequiresTitle(t *testing.T) {
	h := NewProjectHandler(&stubAdmin{})

	c, rec := newContext(jsonRequest(http.MethodPost, "/api/projects", `{"description":"no title"}`), sessionAs(domain.RoleUser))
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProjectHandler_ListEmpty(t *testing.T) {
	h := NewProjectHandler(&stubAdmin{projects: []*domain.Project{}})

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/projects", nil), sessionAs(domain.RoleUser))
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "[]\n" {
		t.Fatalf("expected empty list, got %d %q", rec.Code, rec.Body.String())
	}
}
