package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
)

type member struct {
	ID   entity.ID `json:"id"`
	Name string    `json:"name"`
}

func (m member) GetID() entity.ID { return m.ID }

// hits counts requests per path
type hits struct {
	mu     sync.Mutex
	counts map[string]int
	auth   []string
}

func (h *hits) add(r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.counts == nil {
		h.counts = map[string]int{}
	}
	h.counts[r.Method+" "+r.URL.Path]++
	h.auth = append(h.auth, r.Header.Get("Authorization"))
}

func (h *hits) get(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[key]
}

func newServer(t *testing.T, h *hits, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.add(r)
		if fn, ok := routes[r.Method+" "+r.URL.Path]; ok {
			fn(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

var members = Resource{Name: "users", Key: "users", Singular: "user", Paths: []string{"/admin/users", "/users", "/api/users"}}

func TestFetchList_FallsThroughToSecondEndpoint(t *testing.T) {
	h := &hits{}
	srv := newServer(t, h, map[string]http.HandlerFunc{
		"GET /admin/users": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
		},
		"GET /users": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"users":[{"id":1,"name":"Ann"},{"id":"u-2","name":"Ben"}],"pagination":{"total":2}}}`)
		},
	})
	c := NewClient(Config{BaseURL: srv.URL})

	got, meta, err := FetchList[member](context.Background(), c, members, nil)
	if err != nil {
		t.Fatalf("FetchList: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "u-2" {
		t.Errorf("items = %+v, want the second endpoint's records", got)
	}
	if meta.Pagination.TotalItems() != 2 {
		t.Errorf("total = %d, want 2", meta.Pagination.TotalItems())
	}
	if h.get("GET /api/users") != 0 {
		t.Error("third endpoint should not be tried after a success")
	}
}

func TestFetchList_MalformedFallsThrough(t *testing.T) {
	h := &hits{}
	srv := newServer(t, h, map[string]http.HandlerFunc{
		"GET /admin/users": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `<html>maintenance</html>`)
		},
		"GET /users": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":false,"message":"nope"}`)
		},
		"GET /api/users": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[{"id":3,"name":"Cy"}]`)
		},
	})
	c := NewClient(Config{BaseURL: srv.URL})

	got, _, err := FetchList[member](context.Background(), c, members, nil)
	if err != nil {
		t.Fatalf("FetchList: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Cy" {
		t.Errorf("items = %+v", got)
	}
}

func TestFetchList_Exhausted(t *testing.T) {
	h := &hits{}
	srv := newServer(t, h, map[string]http.HandlerFunc{
		"GET /api/users": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadGateway, `{"message":"upstream down"}`)
		},
	})
	c := NewClient(Config{BaseURL: srv.URL})

	_, _, err := FetchList[member](context.Background(), c, members, nil)
	var upErr *Error
	if !errors.As(err, &upErr) || upErr.Kind != KindExhausted {
		t.Fatalf("err = %v, want exhausted", err)
	}
	if upErr.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", upErr.Attempts)
	}
	last := upErr.Last()
	if last.Status != http.StatusBadGateway || last.Message != "upstream down" {
		t.Errorf("last failure = %+v, want 502 upstream down", last)
	}
}

func TestFetchOne_NotFoundIsTerminal(t *testing.T) {
	h := &hits{}
	srv := newServer(t, h, map[string]http.HandlerFunc{
		"GET /admin/users/7": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"message":"user not found"}`)
		},
		"GET /users/7": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"id":7,"name":"Ghost"}`)
		},
	})
	c := NewClient(Config{BaseURL: srv.URL})

	_, err := FetchOne[member](context.Background(), c, members, "7")
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	if n := h.get("GET /users/7"); n != 0 {
		t.Errorf("second endpoint hit %d times, want 0", n)
	}
}

func TestFetchOne_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"nested singular", `{"success":true,"data":{"user":{"id":9,"name":"Dee"}}}`},
		{"data object", `{"success":true,"data":{"id":9,"name":"Dee"}}`},
		{"top singular", `{"user":{"id":9,"name":"Dee"}}`},
		{"bare object", `{"id":9,"name":"Dee"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, &hits{}, map[string]http.HandlerFunc{
				"GET /admin/users/9": func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, tt.body)
				},
			})
			c := NewClient(Config{BaseURL: srv.URL})

			got, err := FetchOne[member](context.Background(), c, members, "9")
			if err != nil {
				t.Fatalf("FetchOne: %v", err)
			}
			if got.ID != "9" || got.Name != "Dee" {
				t.Errorf("record = %+v, want 9 Dee", got)
			}
		})
	}
}

func TestFetchAll_PagesAndDedupes(t *testing.T) {
	h := &hits{}
	srv := newServer(t, h, map[string]http.HandlerFunc{
		"GET /admin/users": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, `{}`)
		},
		"GET /users": func(w http.ResponseWriter, r *http.Request) {
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
			var rows []member
			for i := offset; i < min(offset+limit, 5); i++ {
				rows = append(rows, member{ID: entity.ID(strconv.Itoa(i + 1)), Name: fmt.Sprintf("m%d", i+1)})
			}
			data, _ := json.Marshal(map[string]any{"success": true, "data": map[string]any{"users": rows, "pagination": map[string]any{"total": 5}}})
			writeJSON(w, http.StatusOK, string(data))
		},
	})
	c := NewClient(Config{BaseURL: srv.URL, PageSize: 2})

	got, _, err := FetchAll[member](context.Background(), c, members, nil)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("records = %d, want 5", len(got))
	}
	for i, m := range got {
		if m.ID != entity.ID(strconv.Itoa(i+1)) {
			t.Errorf("record %d = %s", i, m.ID)
		}
	}
	if n := h.get("GET /admin/users"); n != 1 {
		t.Errorf("failing endpoint hit %d times, want 1 (only for the first page)", n)
	}
	if n := h.get("GET /users"); n != 3 {
		t.Errorf("serving endpoint hit %d times, want 3", n)
	}
}

func TestFetchAll_StopsWhenLimitIgnored(t *testing.T) {
	h := &hits{}
	srv := newServer(t, h, map[string]http.HandlerFunc{
		"GET /admin/users": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[{"id":1},{"id":2},{"id":3}]`)
		},
	})
	c := NewClient(Config{BaseURL: srv.URL, PageSize: 2})

	got, _, err := FetchAll[member](context.Background(), c, members, nil)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("records = %d, want 3", len(got))
	}
	if n := h.get("GET /admin/users"); n != 2 {
		t.Errorf("endpoint hit %d times, want 2", n)
	}
}

func TestSend_FallsThroughOnlyOnMissingRoute(t *testing.T) {
	h := &hits{}
	srv := newServer(t, h, map[string]http.HandlerFunc{
		"PUT /admin/users/4": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusMethodNotAllowed, `{}`)
		},
		"PUT /users/4": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":true,"message":"updated"}`)
		},
	})
	c := NewClient(Config{BaseURL: srv.URL})

	reply, err := Send(context.Background(), c, http.MethodPut, members, "/4", map[string]any{"name": "Eve"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Endpoint != "/users/4" || reply.Message != "updated" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestSend_RejectedIsNotReplayed(t *testing.T) {
	h := &hits{}
	srv := newServer(t, h, map[string]http.HandlerFunc{
		"POST /admin/users": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, `{"message":"email taken"}`)
		},
		"POST /users": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, `{"success":true}`)
		},
	})
	c := NewClient(Config{BaseURL: srv.URL})

	_, err := Send(context.Background(), c, http.MethodPost, members, "", map[string]any{"email": "a@b.c"})
	var upErr *Error
	if !errors.As(err, &upErr) || upErr.Kind != KindRejected {
		t.Fatalf("err = %v, want rejected", err)
	}
	if upErr.Status != http.StatusUnprocessableEntity || upErr.Message != "email taken" {
		t.Errorf("error = %+v", upErr)
	}
	if n := h.get("POST /users"); n != 0 {
		t.Errorf("mutation replayed %d times on the second endpoint", n)
	}
}

func TestSend_SuccessFalseIsRejected(t *testing.T) {
	srv := newServer(t, &hits{}, map[string]http.HandlerFunc{
		"PATCH /admin/users/4": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":false,"message":"cannot deactivate"}`)
		},
	})
	c := NewClient(Config{BaseURL: srv.URL})

	_, err := Send(context.Background(), c, http.MethodPatch, members, "/4", map[string]int{"is_active": 0})
	var upErr *Error
	if !errors.As(err, &upErr) || upErr.Kind != KindRejected || upErr.Message != "cannot deactivate" {
		t.Fatalf("err = %v, want rejected with message", err)
	}
}

func TestClient_ForwardsBearerToken(t *testing.T) {
	h := &hits{}
	srv := newServer(t, h, map[string]http.HandlerFunc{
		"GET /admin/users": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[]`)
		},
	})
	c := NewClient(Config{BaseURL: srv.URL})

	ctx := WithToken(context.Background(), "secret")
	if _, _, err := FetchList[member](ctx, c, members, nil); err != nil {
		t.Fatal(err)
	}
	if _, _, err := FetchList[member](context.Background(), c, members, nil); err != nil {
		t.Fatal(err)
	}
	if len(h.auth) != 2 || h.auth[0] != "Bearer secret" || h.auth[1] != "" {
		t.Errorf("Authorization headers = %q, want [Bearer secret, empty]", h.auth)
	}
}

func TestClient_CancelledContextStopsProbing(t *testing.T) {
	h := &hits{}
	srv := newServer(t, h, nil)
	c := NewClient(Config{BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := FetchList[member](ctx, c, members, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(h.auth) != 0 {
		t.Errorf("requests sent = %d, want 0", len(h.auth))
	}
}
