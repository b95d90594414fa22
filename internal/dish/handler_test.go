package dish

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/skytake/service/internal/response"
)

func newTestRouter(repo *memoryStore) http.Handler {
	h := NewHandler(NewService(repo), zap.NewNop())
	r := chi.NewRouter()
	r.Route("/admin/dish", h.Routes)
	return r
}

func do(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env response.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, rec.Body.String())
	}
	return rec, env
}

func TestHandler_CreateAndGet(t *testing.T) {
	repo := newMemoryStore()
	router := newTestRouter(repo)

	rec, env := do(t, router, http.MethodPost, "/admin/dish",
		`{"name":"Mapo Tofu","categoryId":12,"price":"26.50","status":1,"flavors":[{"name":"spice","value":"[\"mild\",\"hot\"]"}]}`)
	if rec.Code != http.StatusOK || env.Code != response.CodeSuccess {
		t.Fatalf("expected success, got %d %+v", rec.Code, env)
	}

	rec, env = do(t, router, http.MethodGet, "/admin/dish/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := env.Data.(map[string]any)
	if data["name"] != "Mapo Tofu" || data["price"] != "26.50" {
		t.Fatalf("unexpected dish %v", data)
	}
	flavors, _ := data["flavors"].([]any)
	if len(flavors) != 1 {
		t.Fatalf("expected 1 flavor, got %v", data["flavors"])
	}
}

func TestHandler_CreateDuplicateName(t *testing.T) {
	router := newTestRouter(newMemoryStore())
	body := `{"name":"Mapo Tofu","categoryId":12,"price":"26.50","status":1}`

	if rec, _ := do(t, router, http.MethodPost, "/admin/dish", body); rec.Code != http.StatusOK {
		t.Fatalf("expected first insert to succeed, got %d", rec.Code)
	}
	rec, env := do(t, router, http.MethodPost, "/admin/dish", body)
	if rec.Code != http.StatusConflict || env.Msg != ErrDuplicateName.Error() {
		t.Fatalf("expected 409 %q, got %d %+v", ErrDuplicateName.Error(), rec.Code, env)
	}
}

func TestHandler_CreateOutOfRangeInput(t *testing.T) {
	router := newTestRouter(newMemoryStore())

	for _, body := range []string{
		`{"name":"` + strings.Repeat("a", 40) + `","categoryId":1,"price":"1"}`,
		`{"name":"x","categoryId":1,"price":"0x1p3"}`,
		`{"name":"x","categoryId":1,"price":"1e12"}`,
	} {
		rec, env := do(t, router, http.MethodPost, "/admin/dish", body)
		if rec.Code != http.StatusBadRequest || env.Code != response.CodeError {
			t.Fatalf("expected 400 for %s, got %d %+v", body, rec.Code, env)
		}
	}
}

func TestHandler_CreateInvalid(t *testing.T) {
	router := newTestRouter(newMemoryStore())

	rec, env := do(t, router, http.MethodPost, "/admin/dish", `{"name":"","categoryId":1,"price":"1"}`)
	if rec.Code != http.StatusBadRequest || env.Code != response.CodeError {
		t.Fatalf("expected 400 error envelope, got %d %+v", rec.Code, env)
	}

	rec, _ = do(t, router, http.MethodPost, "/admin/dish", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestHandler_GetNotFound(t *testing.T) {
	router := newTestRouter(newMemoryStore())

	rec, env := do(t, router, http.MethodGet, "/admin/dish/99", "")
	if rec.Code != http.StatusNotFound || env.Msg != ErrNotFound.Error() {
		t.Fatalf("expected 404, got %d %+v", rec.Code, env)
	}

	rec, _ = do(t, router, http.MethodGet, "/admin/dish/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestHandler_DeleteBatch(t *testing.T) {
	repo := newMemoryStore()
	repo.dishes[1] = Dish{ID: 1, Name: "a", Status: StatusDisabled}
	repo.dishes[2] = Dish{ID: 2, Name: "b", Status: StatusOnSale}
	router := newTestRouter(repo)

	rec, env := do(t, router, http.MethodDelete, "/admin/dish?ids=1,2", "")
	if rec.Code != http.StatusBadRequest || env.Msg != ErrOnSale.Error() {
		t.Fatalf("expected on-sale rejection, got %d %+v", rec.Code, env)
	}

	rec, _ = do(t, router, http.MethodDelete, "/admin/dish?ids=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := repo.dishes[1]; ok {
		t.Fatal("expected dish 1 to be deleted")
	}
}

func TestHandler_InternalErrorHidden(t *testing.T) {
	repo := newMemoryStore()
	repo.failWith = errors.New("pq: connection reset by peer")
	router := newTestRouter(repo)

	rec, env := do(t, router, http.MethodPost, "/admin/dish", `{"name":"x","categoryId":1,"price":"1"}`)
	if rec.Code != http.StatusInternalServerError || env.Msg != "internal server error" {
		t.Fatalf("expected generic 500, got %d %+v", rec.Code, env)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("response leaked cause: %s", rec.Body.String())
	}
}

func TestParsePageQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/dish/page?page=2&pageSize=20&name=%20tofu%20&categoryId=12&status=1", nil)

	q, err := parsePageQuery(req)
	if err != nil {
		t.Fatalf("parsePageQuery returned error: %v", err)
	}
	if q.Page != 2 || q.PageSize != 20 || q.Name != "tofu" {
		t.Fatalf("unexpected query %+v", q)
	}
	if q.CategoryID == nil || *q.CategoryID != 12 {
		t.Fatalf("expected category 12, got %v", q.CategoryID)
	}
	if q.Status == nil || *q.Status != StatusOnSale {
		t.Fatalf("expected status 1, got %v", q.Status)
	}

	for _, bad := range []string{"page=x", "pageSize=1.5", "categoryId=a", "status=3"} {
		req := httptest.NewRequest(http.MethodGet, "/admin/dish/page?"+bad, nil)
		if _, err := parsePageQuery(req); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs(" 3, 1,3 ,,2")
	if err != nil {
		t.Fatalf("parseIDs returned error: %v", err)
	}
	want := []int64{3, 1, 2}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}

	for _, bad := range []string{"", " , ", "1,x", "0", "-4"} {
		if _, err := parseIDs(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
