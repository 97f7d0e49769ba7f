package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/enttest"
	"github.com/jordanlanch/salespipe/ent/user"
	"github.com/jordanlanch/salespipe/pkg/leads"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/jordanlanch/salespipe/pkg/policy"
	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLeadTest(t *testing.T) (*ent.Client, *LeadHandler, *ent.User, *ent.User) {
	client := enttest.Open(t, "sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()))
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	manager := client.User.Create().
		SetEmail("manager@example.com").
		SetPasswordHash("hash").
		SetFirstName("Mona").
		SetLastName("Manager").
		SetRole(user.RoleManager).
		SaveX(ctx)
	rep := client.User.Create().
		SetEmail("rep@example.com").
		SetPasswordHash("hash").
		SetFirstName("Rita").
		SetLastName("Rep").
		SetRole(user.RoleSalesExecutive).
		SaveX(ctx)

	svc := leads.NewService(client, policy.NewEvaluator(client), nil, nil, nil, logger.Default(), "US")
	handler := NewLeadHandler(svc, nil)
	return client, handler, manager, rep
}

func leadContext(e *echo.Echo, method, target, body string, actor *ent.User) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("actor", actor)
	return c, rec
}

func TestLeadCreate(t *testing.T) {
	_, handler, manager, rep := setupLeadTest(t)

	e := echo.New()
	body := fmt.Sprintf(`{"first_name":"Paula","last_name":"Prospect","email":"paula@corp.com","company":"Corp","estimated_value":1500,"assigned_to_id":%d}`, rep.ID)
	c, rec := leadContext(e, http.MethodPost, "/api/v1/leads", body, manager)

	require.NoError(t, handler.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "new", resp["status"])
	assert.Equal(t, "paula@corp.com", resp["email"])

	assigned := resp["assigned_to"].(map[string]interface{})
	assert.Equal(t, float64(rep.ID), assigned["id"])
}

func TestLeadCreate_ValidationFailure(t *testing.T) {
	_, handler, manager, _ := setupLeadTest(t)

	e := echo.New()
	c, rec := leadContext(e, http.MethodPost, "/api/v1/leads",
		`{"first_name":"","last_name":"","email":"not-an-email"}`, manager)

	require.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["fields"])
}

func TestLeadGet_InvalidID(t *testing.T) {
	_, handler, manager, _ := setupLeadTest(t)

	e := echo.New()
	c, rec := leadContext(e, http.MethodGet, "/api/v1/leads/abc", "", manager)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, handler.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeadGet_NotFound(t *testing.T) {
	_, handler, manager, _ := setupLeadTest(t)

	e := echo.New()
	c, rec := leadContext(e, http.MethodGet, "/api/v1/leads/999", "", manager)
	c.SetParamNames("id")
	c.SetParamValues("999")

	require.NoError(t, handler.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadGet_ForbiddenForUnassignedRep(t *testing.T) {
	client, handler, manager, rep := setupLeadTest(t)

	l := client.Lead.Create().
		SetFirstName("Paula").
		SetLastName("Prospect").
		SetEmail("paula@corp.com").
		SetCreatedBy(manager).
		SaveX(context.Background())

	e := echo.New()
	c, rec := leadContext(e, http.MethodGet, fmt.Sprintf("/api/v1/leads/%d", l.ID), "", rep)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(l.ID))

	require.NoError(t, handler.Get(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeadList_ScopedToAssignee(t *testing.T) {
	client, handler, manager, rep := setupLeadTest(t)
	ctx := context.Background()

	client.Lead.Create().
		SetFirstName("Mine").SetLastName("Lead").SetEmail("mine@corp.com").
		SetCreatedBy(manager).SetAssignedTo(rep).
		SaveX(ctx)
	client.Lead.Create().
		SetFirstName("Other").SetLastName("Lead").SetEmail("other@corp.com").
		SetCreatedBy(manager).
		SaveX(ctx)

	e := echo.New()
	c, rec := leadContext(e, http.MethodGet, "/api/v1/leads", "", rep)

	require.NoError(t, handler.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "mine@corp.com", data[0].(map[string]interface{})["email"])
}

func TestLeadUpdateStatus_Invalid(t *testing.T) {
	client, handler, manager, _ := setupLeadTest(t)

	l := client.Lead.Create().
		SetFirstName("Paula").
		SetLastName("Prospect").
		SetEmail("paula@corp.com").
		SetCreatedBy(manager).
		SaveX(context.Background())

	e := echo.New()
	c, rec := leadContext(e, http.MethodPatch, fmt.Sprintf("/api/v1/leads/%d/status", l.ID),
		`{"status":"closed"}`, manager)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(l.ID))

	require.NoError(t, handler.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeadDelete_ForbiddenForRep(t *testing.T) {
	client, handler, manager, rep := setupLeadTest(t)

	l := client.Lead.Create().
		SetFirstName("Paula").
		SetLastName("Prospect").
		SetEmail("paula@corp.com").
		SetCreatedBy(manager).
		SetAssignedTo(rep).
		SaveX(context.Background())

	e := echo.New()
	c, rec := leadContext(e, http.MethodDelete, fmt.Sprintf("/api/v1/leads/%d", l.ID), "", rep)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(l.ID))

	require.NoError(t, handler.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeadAssign(t *testing.T) {
	client, handler, manager, rep := setupLeadTest(t)

	l := client.Lead.Create().
		SetFirstName("Paula").
		SetLastName("Prospect").
		SetEmail("paula@corp.com").
		SetCreatedBy(manager).
		SaveX(context.Background())

	e := echo.New()
	c, rec := leadContext(e, http.MethodPost, fmt.Sprintf("/api/v1/leads/%d/assign", l.ID),
		fmt.Sprintf(`{"assigned_to_id":%d}`, rep.ID), manager)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(l.ID))

	require.NoError(t, handler.Assign(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assigned := resp["assigned_to"].(map[string]interface{})
	assert.Equal(t, float64(rep.ID), assigned["id"])
}
