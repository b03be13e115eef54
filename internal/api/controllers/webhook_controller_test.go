package controllers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daejeonmate/internal/infra"
	"daejeonmate/internal/models/response_models"
	"daejeonmate/pkg/utils"
)

const webhookTestSecret = "test-webhook-secret"

type fakeSyncService struct {
	syncedIDs  []string
	deletedIDs []string
	syncErr    error
}

func (f *fakeSyncService) SyncAll(ctx context.Context) (*response_models.SyncReport, error) {
	return &response_models.SyncReport{}, nil
}

func (f *fakeSyncService) SyncDocument(ctx context.Context, id string) error {
	if f.syncErr != nil {
		return f.syncErr
	}
	f.syncedIDs = append(f.syncedIDs, id)
	return nil
}

func (f *fakeSyncService) DeleteDocument(ctx context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeSyncService) VerifyEmbeddingDimensions(ctx context.Context) error {
	return nil
}

func webhookTestRouter(sync *fakeSyncService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewWebhookController(sync, &infra.Config{SanityWebhookSecret: webhookTestSecret})
	router := gin.New()
	router.POST("/api/sanity-webhook", controller.WebhookHandler)
	return router
}

func postWebhook(router *gin.Engine, body []byte, signature, operation string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/sanity-webhook", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(utils.SignatureHeaderName, signature)
	}
	if operation != "" {
		req.Header.Set(OperationHeaderName, operation)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func signedBody(id, docType string) ([]byte, string) {
	body := []byte(fmt.Sprintf(`{"_id":%q,"_type":%q}`, id, docType))
	return body, utils.SignBody(body, webhookTestSecret, "1717243200")
}

func TestWebhookRejectsInvalidSignatureBeforeAnySideEffect(t *testing.T) {
	sync := &fakeSyncService{}
	router := webhookTestRouter(sync)

	body, _ := signedBody("doc-1", "place")
	recorder := postWebhook(router, body, "t=1717243200,v1=forged", "update")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, sync.syncedIDs)
	assert.Empty(t, sync.deletedIDs)
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	sync := &fakeSyncService{}
	router := webhookTestRouter(sync)

	body, _ := signedBody("doc-1", "place")
	recorder := postWebhook(router, body, "", "update")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, sync.syncedIDs)
}

func TestWebhookRejectsUnknownDocumentType(t *testing.T) {
	sync := &fakeSyncService{}
	router := webhookTestRouter(sync)

	body, signature := signedBody("doc-1", "blogPost")
	recorder := postWebhook(router, body, signature, "update")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, sync.syncedIDs)
}

func TestWebhookRejectsMalformedJSON(t *testing.T) {
	sync := &fakeSyncService{}
	router := webhookTestRouter(sync)

	body := []byte(`{"_id":`)
	signature := utils.SignBody(body, webhookTestSecret, "1717243200")
	recorder := postWebhook(router, body, signature, "update")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWebhookDispatchesCreateAndUpdate(t *testing.T) {
	for _, operation := range []string{"create", "update"} {
		sync := &fakeSyncService{}
		router := webhookTestRouter(sync)

		body, signature := signedBody("doc-1", "place")
		recorder := postWebhook(router, body, signature, operation)

		require.Equal(t, http.StatusOK, recorder.Code, "operation %s", operation)
		assert.Equal(t, []string{"doc-1"}, sync.syncedIDs)
		assert.Empty(t, sync.deletedIDs)
	}
}

func TestWebhookDispatchesDelete(t *testing.T) {
	sync := &fakeSyncService{}
	router := webhookTestRouter(sync)

	body, signature := signedBody("doc-1", "place")
	recorder := postWebhook(router, body, signature, "delete")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{"doc-1"}, sync.deletedIDs)
	assert.Empty(t, sync.syncedIDs)
}

func TestWebhookRejectsUnknownOperation(t *testing.T) {
	sync := &fakeSyncService{}
	router := webhookTestRouter(sync)

	body, signature := signedBody("doc-1", "place")
	recorder := postWebhook(router, body, signature, "archive")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, sync.syncedIDs)
	assert.Empty(t, sync.deletedIDs)
}

func TestWebhookDocumentVanishedBetweenPushAndFetch(t *testing.T) {
	sync := &fakeSyncService{syncErr: fmt.Errorf("%w: doc-1", utils.ErrDocumentNotFound)}
	router := webhookTestRouter(sync)

	body, signature := signedBody("doc-1", "place")
	recorder := postWebhook(router, body, signature, "update")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
