package api

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/app/model"
	"taskhub/app/pkg/db"
	"taskhub/app/workflow"
)

const testWebhookSecret = "hook-secret"

func newWebhookRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := db.NewGormDB(&db.Config{
		Driver: "sqlite",
		File:   filepath.Join(t.TempDir(), "test.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&model.User{}, &model.WorkflowRun{}))

	engine := workflow.NewEngine(zap.NewNop(), gdb, workflow.Config{
		PollInterval:   time.Second,
		MaxRetries:     3,
		BaseRetryDelay: time.Minute,
		MaxRetryDelay:  time.Hour,
	})
	engine.Register(workflow.EventUserCreated, func(*workflow.Context) error { return nil })

	r := gin.New()
	ctl := &WebhookCtl{engine: engine, secret: testWebhookSecret, log: zap.NewNop()}
	r.POST("/api/webhooks/identity", ctl.Handle)
	return r, gdb
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("X-Webhook-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookEnqueuesRun(t *testing.T) {
	r, gdb := newWebhookRouter(t)
	body := []byte(`{"type":"user.created","data":{"id":"u1","email":"u1@example.com"}}`)

	w := postWebhook(r, body, sign(body))
	assert.Equal(t, http.StatusOK, w.Code)

	run := model.WorkflowRun{}
	require.NoError(t, gdb.First(&run).Error)
	assert.Equal(t, workflow.EventUserCreated, run.Event)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	r, gdb := newWebhookRouter(t)
	body := []byte(`{"type":"user.created","data":{"id":"u1"}}`)

	w := postWebhook(r, body, "deadbeef")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postWebhook(r, body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	require.NoError(t, gdb.Model(&model.WorkflowRun{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWebhookIgnoresUnknownType(t *testing.T) {
	r, gdb := newWebhookRouter(t)
	body := []byte(`{"type":"session.created","data":{}}`)

	w := postWebhook(r, body, sign(body))
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, gdb.Model(&model.WorkflowRun{}).Count(&count).Error)
	assert.Zero(t, count)
}
