package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RealEstate/RealEstate-Backend/src/config"
	"github.com/RealEstate/RealEstate-Backend/src/db"
	"github.com/RealEstate/RealEstate-Backend/src/metrics"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testUser     = "admin"
	testPassword = "s3cret!"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.Migrate(gdb))

	cred, err := services.NewCredential(testUser, testPassword, "Admin", 1000)
	require.NoError(t, err)
	auth, err := services.NewAuthService([]config.CredentialConfig{cred})
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	router, err := NewRouter(config.ServerConfig{CORSOrigins: []string{"http://localhost:3000"}}, Dependencies{
		DB:         gdb,
		Owners:     services.NewOwnerService(gdb),
		Properties: services.NewPropertyService(gdb),
		Auth:       auth,
		Tokens:     services.NewTokenService(testSecret, time.Hour),
		Metrics:    metrics.NewMetrics(registry),
		Gatherer:   registry,
	})
	require.NoError(t, err)

	s := &testServer{t: t, router: router}
	w := s.do(http.MethodPost, "/auth/token", map[string]string{"username": testUser, "password": testPassword}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	s.token = tok.AccessToken
	return s
}

func (s *testServer) do(method, path string, body interface{}, authenticated bool) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createOwner(name string) int {
	s.t.Helper()
	w := s.do(http.MethodPost, "/owners", gin.H{"name": name, "address": "1 Main St"}, true)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeID(s.t, w)
}

func (s *testServer) createProperty(code string, ownerID int) int {
	s.t.Helper()
	w := s.do(http.MethodPost, "/properties", gin.H{
		"name": "House " + code, "address": "1 Main St", "price": 100000,
		"codeInternal": code, "year": 2001, "ownerId": ownerID,
	}, true)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeID(s.t, w)
}

func decodeID(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotZero(t, body.ID)
	return body.ID
}

func TestAuthToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/token", gin.H{"username": "ADMIN", "password": testPassword}, false)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bearer", resp["token_type"])
	assert.Equal(t, 3600.0, resp["expires_in"])
	assert.NotEmpty(t, resp["access_token"])

	wrong := s.do(http.MethodPost, "/auth/token", gin.H{"username": testUser, "password": "nope"}, false)
	unknown := s.do(http.MethodPost, "/auth/token", gin.H{"username": "mallory", "password": "nope"}, false)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	w = s.do(http.MethodPost, "/auth/token", gin.H{"username": "admin"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOwnerEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/owners", gin.H{"name": "Alice", "address": "x"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/owners", gin.H{"name": "   ", "address": "x", "photo": "not a url"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var verr struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verr))
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "photo")

	w = s.do(http.MethodPost, "/owners", gin.H{"name": " Alice ", "address": "1 Main St", "birthday": "1980-05-17T00:00:00Z"}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeID(t, w)
	assert.Equal(t, fmt.Sprintf("/owners/%d", id), w.Header().Get("Location"))

	w = s.do(http.MethodGet, fmt.Sprintf("/owners/%d", id), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Alice"`)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/owners/999", nil, false).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/owners/abc", nil, false).Code)

	w = s.do(http.MethodPut, fmt.Sprintf("/owners/%d", id), gin.H{"name": "Alicia", "address": "2 Side St"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Alicia"`)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPut, "/owners/999", gin.H{"name": "x", "address": "y"}, true).Code)

	s.createProperty("C1", id)
	w = s.do(http.MethodDelete, fmt.Sprintf("/owners/%d", id), nil, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	bob := s.createOwner("Bob")
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, fmt.Sprintf("/owners/%d", bob), nil, true).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, fmt.Sprintf("/owners/%d", bob), nil, true).Code)
}

func TestOwnerListPagingIsClamped(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 3; i++ {
		s.createOwner(fmt.Sprintf("Owner %d", i))
	}

	w := s.do(http.MethodGet, "/owners?page=0&pageSize=1000&name=owner", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Page     int               `json:"page"`
		PageSize int               `json:"pageSize"`
		Total    int               `json:"total"`
		Items    []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.PageSize)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Items, 3)

	w = s.do(http.MethodGet, "/owners?pageSize=-3", nil, false)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 20, page.PageSize)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/owners?page=abc", nil, false).Code)
}

func TestPropertyEndpoints(t *testing.T) {
	s := newTestServer(t)
	owner := s.createOwner("Alice")

	id := s.createProperty("C1", owner)

	w := s.do(http.MethodPost, "/properties", gin.H{
		"name": "Dup", "address": "x", "price": 1, "codeInternal": " C1 ", "year": 2000, "ownerId": owner,
	}, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/properties", gin.H{
		"name": "Orphan", "address": "x", "price": 1, "codeInternal": "C2", "year": 2000, "ownerId": 999,
	}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/properties", gin.H{
		"name": "Old", "address": "x", "price": -1, "codeInternal": "C3", "year": 1700, "ownerId": owner,
	}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"year"`)
	assert.Contains(t, w.Body.String(), `"price"`)

	path := fmt.Sprintf("/properties/%d", id)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, path+"/price", gin.H{"price": 0}, true).Code)
	w = s.do(http.MethodPut, path+"/price", gin.H{"price": 199999.5}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price":199999.5`)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPut, "/properties/999/price", gin.H{"price": 5}, true).Code)

	for i, cover := range []bool{true, false, true} {
		w = s.do(http.MethodPost, path+"/images", gin.H{"file": fmt.Sprintf("https://img.example.com/%d.jpg", i), "enabled": cover}, true)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, path+"/images", gin.H{"file": "nope"}, true).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/properties/999/images", gin.H{"file": "https://img.example.com/x.jpg"}, true).Code)

	w = s.do(http.MethodPost, path+"/traces", gin.H{"dateSale": "2021-03-04T00:00:00Z", "name": "sale", "value": 100, "tax": 5}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, path, nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		CodeInternal string `json:"codeInternal"`
		Owner        struct {
			Name string `json:"name"`
		} `json:"owner"`
		Images []struct {
			Enabled bool `json:"enabled"`
		} `json:"images"`
		Traces []json.RawMessage `json:"traces"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "C1", detail.CodeInternal)
	assert.Equal(t, "Alice", detail.Owner.Name)
	require.Len(t, detail.Images, 3)
	assert.False(t, detail.Images[0].Enabled)
	assert.False(t, detail.Images[1].Enabled)
	assert.True(t, detail.Images[2].Enabled)
	assert.Len(t, detail.Traces, 1)

	w = s.do(http.MethodGet, "/properties?sortBy=price&desc=true&minPrice=1", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"imagesCount":3`)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/properties?minPrice=cheap", nil, false).Code)

	w = s.do(http.MethodGet, path+"/traces", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"sale"`)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/properties/999/traces", nil, false).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/properties/999", nil, false).Code)

	w = s.do(http.MethodPut, path, gin.H{
		"name": "Renamed", "address": "x", "price": 1, "codeInternal": "C1", "year": 2000, "ownerId": owner,
	}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Renamed"`)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodDelete, path, nil, false).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, path, nil, true).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, path, nil, true).Code)
}

func TestPropertySpreadsheets(t *testing.T) {
	s := newTestServer(t)
	owner := s.createOwner("Alice")

	wb := excelize.NewFile()
	rows := [][]interface{}{
		{"Code", "Name", "Address", "Price", "Year", "OwnerId"},
		{"X-1", "One", "1 Rd", 1000, 2000, owner},
		{"X-2", "Two", "2 Rd", 2000, 2001, 999},
	}
	for i, row := range rows {
		r := row
		require.NoError(t, wb.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+1), &r))
	}
	var file bytes.Buffer
	require.NoError(t, wb.Write(&file))
	require.NoError(t, wb.Close())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "properties.xlsx")
	require.NoError(t, err)
	_, err = part.Write(file.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/properties/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"imported":1`)
	assert.Contains(t, w.Body.String(), "row 3")

	w = s.do(http.MethodPost, "/properties/import", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/properties/export?name=one", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/vnd.openxmlformats"))

	exported, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer exported.Close()
	got, err := exported.GetRows("Properties")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "X-1", got[1][0])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)

	w = s.do(http.MethodGet, "/metrics", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "realestate_http_requests_total")
	assert.Contains(t, w.Body.String(), "realestate_auth_success_total 1")
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", nil, false)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
