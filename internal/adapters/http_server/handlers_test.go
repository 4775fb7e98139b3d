package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "flex_reviews/internal/adapters/http_server"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

type failSource struct{}

func (failSource) GetReviews(ctx context.Context) ([]map[string]any, error) {
	return nil, errors.New("upstream down")
}

// newTestServer wires the full router against a fixture-backed review
// service, the way cmd/api does it.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	res := app.NewResolver()
	store := app.NewMemoryStore()
	reviews := app.NewReviewService(failSource{}, store, res, time.Second)
	props := app.NewPropertyService(nil, time.Minute, res)

	s := httpserver.New()
	s.MountHandlers(&httpserver.Handlers{Reviews: reviews, Store: store, Properties: props})

	ts := httptest.NewServer(s.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode, body
}

func postJSON(t *testing.T, url, payload string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode, body
}

func TestGetReviews_FallbackBatch(t *testing.T) {
	ts := newTestServer(t)

	code, body := getJSON(t, ts.URL+"/reviews")
	if code != http.StatusOK {
		t.Fatalf("status: %d", code)
	}
	if body["source"] != app.SourceFallback {
		t.Errorf("source: %v", body["source"])
	}
	if body["count"] != float64(5) {
		t.Errorf("count: %v", body["count"])
	}
	reviews, ok := body["reviews"].([]any)
	if !ok || len(reviews) != 5 {
		t.Fatalf("reviews: %v", body["reviews"])
	}
	first := reviews[0].(map[string]any)
	if first["id"] != float64(7453) {
		t.Errorf("first id: %v", first["id"])
	}
	if first["propertyId"] != "29-shoreditch-heights" {
		t.Errorf("first propertyId: %v", first["propertyId"])
	}
}

func TestModerationFlow(t *testing.T) {
	ts := newTestServer(t)
	getJSON(t, ts.URL+"/reviews") // load the store

	code, body := postJSON(t, ts.URL+"/reviews/approved", `{"action":"approve","reviewIds":[7453]}`)
	if code != http.StatusOK {
		t.Fatalf("approve status: %d", code)
	}
	if body["success"] != true || body["approvedCount"] != float64(1) {
		t.Fatalf("approve body: %v", body)
	}
	if body["message"] != "Reviews approved successfully" {
		t.Errorf("message: %v", body["message"])
	}

	code, body = getJSON(t, ts.URL+"/reviews/approved")
	if code != http.StatusOK {
		t.Fatalf("approved status: %d", code)
	}
	approved := body["approvedReviews"].([]any)
	if len(approved) != 1 || approved[0].(map[string]any)["id"] != float64(7453) {
		t.Fatalf("approvedReviews: %v", approved)
	}
	if body["count"] != float64(1) {
		t.Errorf("count: %v", body["count"])
	}

	code, body = postJSON(t, ts.URL+"/reviews/approved", `{"action":"approve_all"}`)
	if code != http.StatusOK || body["approvedCount"] != float64(5) {
		t.Fatalf("approve_all: code=%d body=%v", code, body)
	}

	code, body = postJSON(t, ts.URL+"/reviews/approved", `{"action":"reject_all"}`)
	if code != http.StatusOK || body["approvedCount"] != float64(0) {
		t.Fatalf("reject_all: code=%d body=%v", code, body)
	}
}

func TestModerationValidation(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name, payload, wantErr string
	}{
		{"malformed json", `{"action":`, "Invalid JSON in request body"},
		{"missing action", `{"reviewIds":[1]}`, "Missing action"},
		{"approve without ids", `{"action":"approve"}`, "Missing reviewIds for approve/reject actions"},
		{"reject empty ids", `{"action":"reject","reviewIds":[]}`, "Missing reviewIds for approve/reject actions"},
		{"unknown action", `{"action":"promote","reviewIds":[1]}`, "Invalid action"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := postJSON(t, ts.URL+"/reviews/approved", tc.payload)
			if code != http.StatusBadRequest {
				t.Fatalf("status: %d", code)
			}
			if body["error"] != tc.wantErr {
				t.Errorf("error: %v, want %q", body["error"], tc.wantErr)
			}
		})
	}
}

func TestGetProperty(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/properties/29-shoreditch-heights")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	prop := body["property"].(map[string]any)
	if prop["id"] != "29-shoreditch-heights" || prop["name"] != "2B N1 A - 29 Shoreditch Heights" {
		t.Fatalf("property: %v", prop)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/properties/29-shoreditch-heights", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Fatalf("conditional status: %d", resp2.StatusCode)
	}
}

func TestGetProperty_NotFound(t *testing.T) {
	ts := newTestServer(t)

	code, body := getJSON(t, ts.URL+"/properties/no-such-place")
	if code != http.StatusNotFound {
		t.Fatalf("status: %d", code)
	}
	if body["error"] != "Property not found" {
		t.Errorf("error: %v", body["error"])
	}
}

func TestUpdateProperty(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/properties/15-camden-square",
		bytes.NewBufferString(`{"price":"£275","status":"inactive","id":"hijack-attempt"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != true {
		t.Fatalf("body: %v", body)
	}
	prop := body["property"].(map[string]any)
	if prop["id"] != "15-camden-square" {
		t.Errorf("id not immutable: %v", prop["id"])
	}
	if prop["price"] != "£275" || prop["status"] != "inactive" {
		t.Errorf("fields not applied: %v", prop)
	}

	// the change persists
	_, got := getJSON(t, ts.URL+"/properties/15-camden-square")
	if got["property"].(map[string]any)["price"] != "£275" {
		t.Errorf("update not persisted: %v", got)
	}
}

func TestUpdateProperty_NotFound(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/properties/ghost",
		bytes.NewBufferString(`{"price":"£1"}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestPropertyReviews(t *testing.T) {
	ts := newTestServer(t)
	getJSON(t, ts.URL+"/reviews")
	postJSON(t, ts.URL+"/reviews/approved", `{"action":"approve_all"}`)

	code, body := getJSON(t, ts.URL+"/properties/29-shoreditch-heights/reviews")
	if code != http.StatusOK {
		t.Fatalf("status: %d", code)
	}
	reviews := body["reviews"].([]any)
	var gotIDs []int64
	for _, r := range reviews {
		gotIDs = append(gotIDs, int64(r.(map[string]any)["id"].(float64)))
	}
	want := []int64{7453, 7456}
	if len(gotIDs) != len(want) {
		t.Fatalf("ids: %v", gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("ids: %v, want %v", gotIDs, want)
		}
	}
	if body["count"] != float64(2) {
		t.Errorf("count: %v", body["count"])
	}

	code, _ = getJSON(t, ts.URL+"/properties/ghost/reviews")
	if code != http.StatusNotFound {
		t.Fatalf("unknown property status: %d", code)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

var _ domain.ReviewSource = failSource{}
