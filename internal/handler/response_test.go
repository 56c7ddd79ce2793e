package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func record(t *testing.T, fn func(echo.Context) error) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := fn(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("body is not an envelope: %v", err)
	}
	return rec, env
}

func TestRespondEnvelopeShape(t *testing.T) {
	rec, env := record(t, func(c echo.Context) error {
		return respond(c, http.StatusCreated, "created", echo.Map{"id": 7})
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("http status = %d, want 201", rec.Code)
	}
	if env.Status != http.StatusCreated || !env.IsSuccess || env.Message != "created" {
		t.Errorf("envelope = %+v", env)
	}
	result, ok := env.Result.(map[string]any)
	if !ok || result["id"] != float64(7) {
		t.Errorf("result = %v, want map with id 7", env.Result)
	}
}

func TestFailEnvelopeShape(t *testing.T) {
	rec, env := record(t, func(c echo.Context) error {
		return fail(c, http.StatusConflict, "another notice is already pinned",
			echo.Map{"needsConfirmation": true, "pinnedNoticeId": 3})
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("http status = %d, want 409", rec.Code)
	}
	if env.IsSuccess {
		t.Error("isSuccess must be false on failures")
	}
	result, ok := env.Result.(map[string]any)
	if !ok {
		t.Fatalf("result = %v, want confirmation payload", env.Result)
	}
	if result["needsConfirmation"] != true || result["pinnedNoticeId"] != float64(3) {
		t.Errorf("confirmation payload = %v", result)
	}
}

func TestFailNilResult(t *testing.T) {
	_, env := record(t, func(c echo.Context) error {
		return fail(c, http.StatusNotFound, "store not found", nil)
	})
	if env.Result != nil {
		t.Errorf("result = %v, want null", env.Result)
	}
}
