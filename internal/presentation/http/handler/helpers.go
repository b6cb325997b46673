package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	infraRepo "github.com/sangkips/loyalty-admin/internal/infrastructure/repository"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/dto/request"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/dto/response"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
	"github.com/sangkips/loyalty-admin/pkg/listing"
)

// SearchSessionHeader identifies the screen instance a list request comes from
const SearchSessionHeader = "X-Search-Session"

// GetOperator extracts the operator from the request context
func GetOperator(c *gin.Context) entity.Operator {
	return infraRepo.OperatorOrAnonymous(c.Request.Context())
}

// parseID reads a path parameter as a record id
func parseID(c *gin.Context, name string) (entity.ID, bool) {
	id := entity.ID(strings.TrimSpace(c.Param(name)))
	if id.IsZero() {
		response.BadRequest(c, "Invalid "+name)
		return "", false
	}
	return id, true
}

// listRequest reads the search, filters, sort and page of a screen from the query string
func listRequest(c *gin.Context) service.ListRequest {
	q := listing.Query{
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: listing.SortOrder(strings.ToLower(c.Query("sort_order"))),
		QueryKey:  c.Query("query_key"),
		Filters:   map[string]string{},
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	for name, values := range c.Request.URL.Query() {
		if request.IsFilterParam(name) && len(values) > 0 {
			q.Filters[name] = values[0]
		}
	}

	session := c.GetHeader(SearchSessionHeader)
	if session == "" {
		session = c.Query("session")
	}
	return service.ListRequest{Query: q, Session: session}
}

// bindInput decodes the JSON body into dest and returns the body as sent
func bindInput(c *gin.Context, dest any) (json.RawMessage, bool) {
	if err := c.ShouldBindBodyWith(dest, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid request body")
		return nil, false
	}
	raw, _ := c.Get(gin.BodyBytesKey)
	body, _ := raw.([]byte)
	return json.RawMessage(body), true
}

// respondError translates err and sends it
func respondError(c *gin.Context, err error) {
	response.Error(c, translateError(err))
}

// respondMutation sends the outcome of a write. A rejected form is answered
// with the field errors and the input exactly as it was submitted.
func respondMutation(c *gin.Context, status int, message string, res *repository.MutationResult, err error, input json.RawMessage) {
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusUnprocessableEntity && len(appErr.Errors) > 0 {
			response.ValidationFailed(c, appErr.Errors, input)
			return
		}
		respondError(c, err)
		return
	}
	if res != nil && res.Message != "" {
		message = res.Message
	}
	response.Success(c, status, message, res)
}

// create binds a form and hands it to fn
func create[I any](c *gin.Context, label string, fn func(context.Context, *I) (*repository.MutationResult, error)) {
	var in I
	raw, ok := bindInput(c, &in)
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), &in)
	respondMutation(c, http.StatusCreated, label+" created successfully", res, err, raw)
}

// update binds a form and hands it to fn with the :id path parameter
func update[I any](c *gin.Context, label string, fn func(context.Context, entity.ID, *I) (*repository.MutationResult, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in I
	raw, ok := bindInput(c, &in)
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), id, &in)
	respondMutation(c, http.StatusOK, label+" updated successfully", res, err, raw)
}

// createUnder binds a form for a child record of the :id parent
func createUnder[I any](c *gin.Context, label string, fn func(context.Context, entity.ID, *I) (*repository.MutationResult, error)) {
	parentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in I
	raw, ok := bindInput(c, &in)
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), parentID, &in)
	respondMutation(c, http.StatusCreated, label+" created successfully", res, err, raw)
}

// removeUnder deletes the child record named by param of the :id parent
func removeUnder(c *gin.Context, label, param string, fn func(context.Context, entity.ID, entity.ID) (*repository.MutationResult, error)) {
	parentID, ok := parseID(c, "id")
	if !ok {
		return
	}
	childID, ok := parseID(c, param)
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), parentID, childID)
	respondMutation(c, http.StatusOK, label+" deleted successfully", res, err, nil)
}
