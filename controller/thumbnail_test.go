package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/haneulab/thumbsmith-api/config"
	"github.com/haneulab/thumbsmith-api/controller"
	"github.com/haneulab/thumbsmith-api/infra"
	middlewares "github.com/haneulab/thumbsmith-api/middleware"
	"github.com/haneulab/thumbsmith-api/provider"
	"github.com/haneulab/thumbsmith-api/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	ctrl   *controller.Controller
	router *gin.Engine
}

// newTestEnv wires a controller around the given env config without touching
// Postgres, Redis or RabbitMQ. withStorage installs a MinIO handle that is
// never dialed, which is enough for paths failing before the upload step.
func newTestEnv(envCfg *config.EnvConfig, withStorage bool) *testEnv {
	cfg := &config.Config{EnvConfig: envCfg}

	inf := &infra.Infra{Logger: infra.InitLoggerClient(envCfg)}
	if withStorage {
		inf.Minio = &infra.MinioClient{Bucket: envCfg.Minio.Bucket, Endpoint: "localhost:9000"}
	}

	prov := &provider.Provider{
		AuthorizationService: provider.InitAuthorizationService(envCfg),
		Gemini:               provider.InitGeminiService(envCfg),
	}

	ctrl := controller.NewController(cfg, inf, prov, &repository.Repository{}, nil)

	r := gin.New()
	r.POST("/api/v1/thumbnails/generate", middlewares.AuthMiddleware(), ctrl.GenerateThumbnail)

	return &testEnv{ctrl: ctrl, router: r}
}

func baseEnvConfig() *config.EnvConfig {
	var cfg config.EnvConfig
	cfg.Minio.Bucket = "thumbnail-assets"
	cfg.Gemini.BaseURL = "http://localhost:0"
	cfg.Gemini.Model = provider.PrimaryGeminiModel
	cfg.Grafana.ServiceName = "thumbsmith-api"
	return &cfg
}

func doGenerate(env *testEnv, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/thumbnails/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// newAuthServer serves the identity verification endpoint. A nil userID
// rejects every token.
func newAuthServer(t *testing.T, userID *uuid.UUID) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID == nil {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"token expired"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": userID.String()})
	}))
}

func TestGenerateThumbnail_MissingToken(t *testing.T) {
	env := newTestEnv(baseEnvConfig(), true)

	w := doGenerate(env, "", `{"prompt":"a fox"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing auth token.", decodeBody(t, w)["error"])
}

func TestGenerateThumbnail_EmptyPrompt(t *testing.T) {
	env := newTestEnv(baseEnvConfig(), true)

	for _, body := range []string{`{}`, `{"prompt":""}`, `{"prompt":"   \n\t "}`} {
		w := doGenerate(env, "some-token", body)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.Equal(t, "Prompt is required.", decodeBody(t, w)["error"])
	}
}

func TestGenerateThumbnail_MissingGeminiKey(t *testing.T) {
	env := newTestEnv(baseEnvConfig(), true)

	w := doGenerate(env, "some-token", `{"prompt":"a fox"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Missing Gemini API key.", decodeBody(t, w)["error"])
}

func TestGenerateThumbnail_StorageNotConfigured(t *testing.T) {
	cfg := baseEnvConfig()
	cfg.Gemini.APIKey = "test-key"
	env := newTestEnv(cfg, false)

	w := doGenerate(env, "some-token", `{"prompt":"a fox"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Storage is not configured.", decodeBody(t, w)["error"])
}

func TestGenerateThumbnail_InvalidToken(t *testing.T) {
	authServer := newAuthServer(t, nil)
	defer authServer.Close()

	cfg := baseEnvConfig()
	cfg.Gemini.APIKey = "test-key"
	cfg.ExternalService.AuthorizationServiceURL = authServer.URL
	env := newTestEnv(cfg, true)

	w := doGenerate(env, "rejected-token", `{"prompt":"a fox"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid auth token.", decodeBody(t, w)["error"])
}

func newGeminiServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func configureProviders(t *testing.T, geminiStatus int, geminiBody string) *testEnv {
	t.Helper()

	userID := uuid.New()
	authServer := newAuthServer(t, &userID)
	t.Cleanup(authServer.Close)

	geminiServer := newGeminiServer(t, geminiStatus, geminiBody)
	t.Cleanup(geminiServer.Close)

	cfg := baseEnvConfig()
	cfg.Gemini.APIKey = "test-key"
	cfg.Gemini.BaseURL = geminiServer.URL
	cfg.ExternalService.AuthorizationServiceURL = authServer.URL

	return newTestEnv(cfg, true)
}

func TestGenerateThumbnail_QuotaBy429(t *testing.T) {
	env := configureProviders(t, http.StatusTooManyRequests, `some completely unrelated body`)

	w := doGenerate(env, "valid-token", `{"prompt":"a fox"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Gemini quota exceeded.", body["error"])
	assert.Equal(t, provider.PrimaryGeminiModel, body["model"])
	assert.NotEmpty(t, body["providerMessage"])
}

func TestGenerateThumbnail_QuotaByKeywordAtOtherStatus(t *testing.T) {
	env := configureProviders(t, http.StatusForbidden,
		`{"error":{"code":403,"message":"Billing account is not enabled"}}`)

	w := doGenerate(env, "valid-token", `{"prompt":"a fox"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Gemini quota exceeded.", body["error"])
	assert.Equal(t, "Billing account is not enabled", body["providerMessage"])
}

func TestGenerateThumbnail_ProviderGenericFailure(t *testing.T) {
	env := configureProviders(t, http.StatusTeapot,
		`{"error":{"code":418,"message":"invalid argument"}}`)

	w := doGenerate(env, "valid-token", `{"prompt":"a fox"}`)

	assert.Equal(t, http.StatusTeapot, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Gemini request failed.", body["error"])
	assert.Equal(t, "invalid argument", body["detail"])
}

func TestGenerateThumbnail_NoImageInResponse(t *testing.T) {
	env := configureProviders(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"no image today"}]}}]}`)

	w := doGenerate(env, "valid-token", `{"prompt":"a fox"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "No generated image found in response.", decodeBody(t, w)["error"])
}

func TestGenerateThumbnail_ThoughtImageIsNotEnough(t *testing.T) {
	env := configureProviders(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[
			{"thought":true,"inlineData":{"mimeType":"image/png","data":"aGVsbG8="}}
		]}}]}`)

	w := doGenerate(env, "valid-token", `{"prompt":"a fox"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "No generated image found in response.", decodeBody(t, w)["error"])
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestGenerateThumbnail_LocalJWTMode(t *testing.T) {
	geminiServer := newGeminiServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"still no image"}]}}]}`)
	t.Cleanup(geminiServer.Close)

	cfg := baseEnvConfig()
	cfg.Gemini.APIKey = "test-key"
	cfg.Gemini.BaseURL = geminiServer.URL
	cfg.JWT.SecretKey = "local-secret"
	env := newTestEnv(cfg, true)

	token := signTestToken(t, "local-secret", jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	// Reaching the no-image 502 proves local verification accepted the token.
	w := doGenerate(env, token, `{"prompt":"a fox"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// A token signed with another key fails closed.
	forged := signTestToken(t, "wrong-secret", jwt.MapClaims{"user_id": uuid.NewString()})
	w = doGenerate(env, forged, `{"prompt":"a fox"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid auth token.", decodeBody(t, w)["error"])
}

func TestGenerateThumbnail_NoVerifierConfigured(t *testing.T) {
	cfg := baseEnvConfig()
	cfg.Gemini.APIKey = "test-key"
	env := newTestEnv(cfg, true)

	w := doGenerate(env, "any-token", `{"prompt":"a fox"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid auth token.", decodeBody(t, w)["error"])
}
