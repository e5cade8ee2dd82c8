package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub/app/internal/errcode"
	"taskhub/app/internal/response"
	"taskhub/app/workflow"
)

// identityEvents maps the provider's webhook event types to workflow
// events.
var identityEvents = map[string]string{
	"user.created":         workflow.EventUserCreated,
	"user.updated":         workflow.EventUserUpdated,
	"user.deleted":         workflow.EventUserDeleted,
	"organization.created": workflow.EventOrganizationCreated,
	"organization.updated": workflow.EventOrganizationUpdated,
	"organization.deleted": workflow.EventOrganizationDeleted,
}

type webhookEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// WebhookCtl receives identity provider lifecycle callbacks and feeds
// them to the workflow engine. The request is authenticated by an HMAC
// signature over the raw body, not by a session.
type WebhookCtl struct {
	engine *workflow.Engine
	secret string
	log    *zap.Logger
}

func (ctl *WebhookCtl) Handle(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		response.Fail(ctx, errcode.ErrInvalidParams.Wrap(err))
		return
	}
	if !ctl.verify(body, ctx.GetHeader("X-Webhook-Signature")) {
		response.Fail(ctx, errcode.ErrUnauthorized.New("invalid webhook signature"))
		return
	}
	envelope := webhookEnvelope{}
	if err = json.Unmarshal(body, &envelope); err != nil {
		response.Fail(ctx, errcode.ErrInvalidParams.Wrap(err))
		return
	}
	event, ok := identityEvents[envelope.Type]
	if !ok {
		// unknown lifecycle types are acknowledged and ignored
		ctl.log.Debug("ignoring webhook event", zap.String("type", envelope.Type))
		response.Response(ctx, nil, gin.H{"message": "ignored"})
		return
	}
	if err = ctl.engine.Send(ctx.Request.Context(), event, envelope.Data); err != nil {
		response.Fail(ctx, err)
		return
	}
	response.Response(ctx, nil, gin.H{"message": "accepted"})
}

func (ctl *WebhookCtl) verify(body []byte, signature string) bool {
	if ctl.secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(ctl.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
