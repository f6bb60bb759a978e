package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/employee-be/internal/config"
	"github.com/hongminglow/employee-be/internal/logging"
	"github.com/hongminglow/employee-be/internal/storage/memory"
)

type photoUploader struct{}

func (photoUploader) Upload(context.Context, string, string) (string, error) {
	return "https://cdn.example.com/p.jpg", nil
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"errors"`
}

type client struct {
	t     *testing.T
	url   string
	token string
}

func (c *client) call(operation string, variables any) (int, envelope) {
	c.t.Helper()
	body, err := json.Marshal(map[string]any{"operation": operation, "variables": variables})
	require.NoError(c.t, err)

	req, err := http.NewRequest(http.MethodPost, c.url+"/graphql", bytes.NewReader(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var out envelope
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestEmployeeLifecycle(t *testing.T) {
	cfg := config.Config{
		JWTSecret:   "test-secret",
		JWTIssuer:   "employee-be-test",
		JWTTTL:      time.Hour,
		CORSOrigins: []string{"*"},
		MediaFolder: "test/employees",
	}
	ts := httptest.NewServer(Handler(cfg, memory.NewStore(), photoUploader{}, logging.Discard()))
	defer ts.Close()

	c := &client{t: t, url: ts.URL}

	status, out := c.call("getAllEmployees", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "UNAUTHORIZED", out.Errors[0].Code)

	username := fmt.Sprintf("apitest_%d", time.Now().UnixNano())
	status, out = c.call("signup", map[string]any{"input": map[string]string{
		"username": username, "email": username + "@example.com", "password": "Pass!123",
	}})
	require.Equal(t, http.StatusOK, status, out.Errors)

	status, out = c.call("login", map[string]any{"input": map[string]string{
		"email": username + "@example.com", "password": "Pass!123",
	}})
	require.Equal(t, http.StatusOK, status, out.Errors)
	var auth struct {
		Token string `json:"token"`
		User  struct {
			ID       string `json:"_id"`
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &auth))
	require.NotEmpty(t, auth.Token)
	assert.Equal(t, username, auth.User.Username)
	assert.Empty(t, auth.User.Password)
	c.token = auth.Token

	status, out = c.call("addEmployee", map[string]any{"input": map[string]any{
		"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com",
		"designation": "Engineer", "department": "R&D", "salary": "5000",
		"date_of_joining": "2024-03-01", "employee_photo": "data:image/png;base64,AAAA",
	}})
	require.Equal(t, http.StatusOK, status, out.Errors)
	var added struct {
		Employee map[string]any `json:"employee"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &added))
	eid, _ := added.Employee["_id"].(string)
	require.NotEmpty(t, eid)
	assert.Equal(t, "https://cdn.example.com/p.jpg", added.Employee["employee_photo"])
	assert.Equal(t, "Other", added.Employee["gender"])
	assert.Equal(t, 5000.0, added.Employee["salary"])
	assert.Equal(t, "2024-03-01T00:00:00.000Z", added.Employee["date_of_joining"])

	status, out = c.call("updateEmployeeByEid", map[string]any{"eid": eid, "input": map[string]any{"salary": 800}})
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "salary must be >= 1000.", out.Errors[0].Message)

	status, out = c.call("searchEmployeeByDesignationOrDepartment", map[string]any{"input": map[string]string{"designation": "ENGINEER"}})
	require.Equal(t, http.StatusOK, status, out.Errors)
	var found struct {
		Employees []map[string]any `json:"employees"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &found))
	require.Len(t, found.Employees, 1)
	assert.Equal(t, eid, found.Employees[0]["_id"])

	status, out = c.call("deleteEmployeeByEid", map[string]any{"eid": eid})
	require.Equal(t, http.StatusOK, status, out.Errors)
	assert.JSONEq(t, fmt.Sprintf(`{"success":true,"message":"Employee deleted successfully","deletedId":%q}`, eid), string(out.Data))

	status, out = c.call("searchEmployeeByEid", map[string]any{"eid": eid})
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "Employee not found.", out.Errors[0].Message)

	c.token = "forged." + auth.Token
	status, _ = c.call("getAllEmployees", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthEndpoint(t *testing.T) {
	cfg := config.Config{JWTSecret: "s", CORSOrigins: []string{"*"}}
	ts := httptest.NewServer(Handler(cfg, memory.NewStore(), nil, logging.Discard()))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAnonymousCallWithMistypedVariables(t *testing.T) {
	cfg := config.Config{JWTSecret: "s", JWTTTL: time.Hour, CORSOrigins: []string{"*"}}
	ts := httptest.NewServer(Handler(cfg, memory.NewStore(), nil, logging.Discard()))
	defer ts.Close()

	c := &client{t: t, url: ts.URL}
	for _, vars := range []any{
		map[string]any{"eid": "1", "input": map[string]any{"first_name": 5}},
		map[string]any{"eid": true},
		map[string]any{"input": []int{1}},
	} {
		status, out := c.call("updateEmployeeByEid", vars)
		assert.Equal(t, http.StatusUnauthorized, status)
		require.Len(t, out.Errors, 1)
		assert.Equal(t, "UNAUTHORIZED", out.Errors[0].Code)
		assert.NotContains(t, out.Errors[0].Message, "json:")
	}
}
