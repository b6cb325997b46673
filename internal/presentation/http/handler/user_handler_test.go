package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/upstream"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
	"github.com/sangkips/loyalty-admin/pkg/listing"
)

func newUserRouter(repo *fakeRepo[entity.User]) *gin.Engine {
	h := NewUserHandler(service.NewUserService(repo, service.CatalogDeps{}))
	r := gin.New()
	r.GET("/users", h.List)
	r.GET("/users/:id", h.Get)
	r.POST("/users", h.Create)
	r.PUT("/users/:id", h.Update)
	r.DELETE("/users/:id", h.Deactivate)
	return r
}

func members(n int) []entity.User {
	users := make([]entity.User, n)
	for i := range users {
		users[i] = entity.User{
			ID:       entity.ID(fmt.Sprint(i + 1)),
			Name:     fmt.Sprintf("Member %02d", i+1),
			Email:    fmt.Sprintf("m%d@example.com", i+1),
			IsActive: true,
			IsVIP:    i%3 == 0,
		}
	}
	return users
}

func TestUserHandler_ListPaginates(t *testing.T) {
	router := newUserRouter(newFakeRepo(members(12)...))

	w, env := perform(t, router, http.MethodGet, "/users?page=2&sort_by=name&sort_order=asc", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	page := decode[listing.PaginatedResult[entity.User]](t, env.Data)
	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	if page.Items[0].Name != "Member 11" {
		t.Errorf("first item = %q, want Member 11", page.Items[0].Name)
	}
	if page.Pagination.Total != 12 || page.Pagination.TotalPages != 2 {
		t.Errorf("pagination = %+v, want total 12 over 2 pages", page.Pagination)
	}
	if got := page.Stats["vip_users"]; got != float64(4) {
		t.Errorf("vip_users = %v, want 4", got)
	}
}

func TestUserHandler_ListFilters(t *testing.T) {
	router := newUserRouter(newFakeRepo(members(12)...))

	_, env := perform(t, router, http.MethodGet, "/users?is_vip=yes", "")
	page := decode[listing.PaginatedResult[entity.User]](t, env.Data)
	if page.Pagination.Total != 4 {
		t.Errorf("total = %d, want 4", page.Pagination.Total)
	}
	for _, u := range page.Items {
		if !u.IsVIP {
			t.Errorf("%s is not a VIP", u.Name)
		}
	}
}

func TestUserHandler_ListUpstreamDown(t *testing.T) {
	repo := newFakeRepo[entity.User]()
	repo.listErr = &upstream.Error{
		Kind:     upstream.KindExhausted,
		Resource: "users",
		Err:      &upstream.Error{Kind: upstream.KindTransport, Resource: "users"},
	}
	router := newUserRouter(repo)

	w, env := perform(t, router, http.MethodGet, "/users", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if env.Success || !env.Retryable {
		t.Errorf("success = %v retryable = %v, want false and true", env.Success, env.Retryable)
	}
}

func TestUserHandler_CreateEchoesRejectedInput(t *testing.T) {
	repo := newFakeRepo[entity.User]()
	router := newUserRouter(repo)

	body := `{"name":"  ","email":"not-an-email","phone":" 0712 ","is_vip":1}`
	w, env := perform(t, router, http.MethodPost, "/users", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	echoed := decode[map[string]any](t, env.Data)
	if echoed["name"] != "  " || echoed["email"] != "not-an-email" || echoed["phone"] != " 0712 " {
		t.Errorf("echoed input = %v, want the body as submitted", echoed)
	}
	fields := decode[[]apperror.FieldError](t, env.Errors)
	if len(fields) != 2 || fields[0].Field != "name" || fields[1].Field != "email" {
		t.Errorf("field errors = %+v, want name and email", fields)
	}
	if len(repo.created) != 0 {
		t.Errorf("rejected form was sent upstream")
	}
}

func TestUserHandler_Create(t *testing.T) {
	repo := newFakeRepo[entity.User]()
	router := newUserRouter(repo)

	w, env := perform(t, router, http.MethodPost, "/users", `{"name":"Asha","email":" Asha@Example.com "}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if env.Message != "User created successfully" {
		t.Errorf("message = %q", env.Message)
	}
	in, ok := repo.created[0].(*service.UserInput)
	if !ok {
		t.Fatalf("payload type = %T", repo.created[0])
	}
	if in.Email != "asha@example.com" {
		t.Errorf("email = %q, want asha@example.com", in.Email)
	}
}

func TestUserHandler_CreateRejectedUpstream(t *testing.T) {
	repo := newFakeRepo[entity.User]()
	repo.mutErr = &upstream.Error{Kind: upstream.KindRejected, Resource: "users", Status: http.StatusConflict, Message: "Email already registered"}
	router := newUserRouter(repo)

	w, env := perform(t, router, http.MethodPost, "/users", `{"name":"Asha","email":"asha@example.com"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if env.Message != "Email already registered" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestUserHandler_GetAndDeactivate(t *testing.T) {
	repo := newFakeRepo(members(3)...)
	router := newUserRouter(repo)

	w, env := perform(t, router, http.MethodGet, "/users/2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", w.Code)
	}
	if got := decode[entity.User](t, env.Data); got.Name != "Member 02" {
		t.Errorf("name = %q, want Member 02", got.Name)
	}

	if w, _ := perform(t, router, http.MethodGet, "/users/99", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing user status = %d, want 404", w.Code)
	}

	if w, _ := perform(t, router, http.MethodDelete, "/users/2", ""); w.Code != http.StatusOK {
		t.Fatalf("deactivate status = %d, want 200", w.Code)
	}
	if _, ok := repo.updated["2"]; !ok {
		t.Errorf("deactivate did not reach the repository")
	}
}
