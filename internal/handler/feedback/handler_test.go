package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/thelab/fan-chat/backend/internal/model/feedback"
	feedbackService "github.com/thelab/fan-chat/backend/internal/service/feedback"
)

type fakeRecorder struct {
	calls int
	err   error
}

func (f *fakeRecorder) Submit(ctx context.Context, text, moodLabel string) (feedback.Entry, error) {
	mood, err := feedback.ParseMood(moodLabel)
	if err != nil {
		return feedback.Entry{}, err
	}
	f.calls++
	if f.err != nil {
		return feedback.Entry{}, f.err
	}
	return feedback.Entry{Text: text, Mood: mood, Date: "2024-03-01", Time: "10:00:00"}, nil
}

func setupRouter(recorder Submitter) *chi.Mux {
	r := chi.NewRouter()
	New(recorder).RegisterRoutes(r)
	return r
}

func submit(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/feedback", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestFormDefaults(t *testing.T) {
	r := setupRouter(&fakeRecorder{})
	req := httptest.NewRequest(http.MethodGet, "/feedback/form", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var form feedback.Form
	if err := json.NewDecoder(resp.Body).Decode(&form); err != nil {
		t.Fatalf("decode form: %v", err)
	}
	if form.Mood != feedback.DefaultMood || form.Text != "" || len(form.Moods) != 4 {
		t.Fatalf("unexpected form: %+v", form)
	}
}

func TestSubmitSuccess(t *testing.T) {
	recorder := &fakeRecorder{}
	r := setupRouter(recorder)

	resp := submit(r, `{"text":"great tool","mood":"😀 Happy"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Status  string         `json:"status"`
		Message string         `json:"message"`
		Entry   feedback.Entry `json:"entry"`
		Form    feedback.Form  `json:"form"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != SuccessMessage || body.Entry.Text != "great tool" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Form.Text != "" || body.Form.Mood != feedback.DefaultMood {
		t.Fatalf("expected cleared form, got %+v", body.Form)
	}
	if recorder.calls != 1 {
		t.Fatalf("expected one submission, got %d", recorder.calls)
	}
}

func TestSubmitInvalidMood(t *testing.T) {
	recorder := &fakeRecorder{}
	r := setupRouter(recorder)

	resp := submit(r, `{"text":"meh","mood":"🤷 Whatever"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if recorder.calls != 0 {
		t.Fatalf("recorder should not append, got %d calls", recorder.calls)
	}
}

func TestSubmitRecorderFailure(t *testing.T) {
	recorder := &fakeRecorder{err: &feedbackService.RecorderError{Op: "append", Err: errors.New("quota")}}
	r := setupRouter(recorder)

	resp := submit(r, `{"text":"x","mood":"😐 Neutral"}`)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
	var body struct {
		Kind string `json:"kind"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if body.Kind != "recorder_error" {
		t.Fatalf("expected recorder_error kind, got %q", body.Kind)
	}
}

func TestSubmitWithoutRecorder(t *testing.T) {
	r := setupRouter(nil)
	resp := submit(r, `{"text":"x","mood":"😐 Neutral"}`)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
