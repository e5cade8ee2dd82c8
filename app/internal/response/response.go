package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/app/internal/errcode"
)

// Response writes data on success, or the error's mapped status and
// message on failure. Record-not-found from the store is reported as the
// NotFound class rather than leaking a 500.
func Response(ctx *gin.Context, err error, data any) {
	if err != nil {
		Fail(ctx, err)
		return
	}
	if data == nil {
		data = gin.H{"message": "ok"}
	}
	ctx.JSON(http.StatusOK, data)
}

// FailBind reports request binding/validation failures as the
// Validation class.
func FailBind(ctx *gin.Context, err error) {
	Fail(ctx, errcode.ErrInvalidParams.Wrap(err))
}

func Fail(ctx *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = errcode.ErrNotFound.Wrap(err)
	}
	status := errcode.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		// unexpected failures are logged with detail but reported generically
		zap.L().Error("request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.JSON(status, gin.H{"message": "something went wrong"})
		return
	}
	ctx.JSON(status, gin.H{"message": err.Error()})
}
