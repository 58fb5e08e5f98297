package api

import (
	"errors"

	"moneymate/ledger"

	"github.com/gin-gonic/gin"
)

// RespondLedgerError 把账本核心的错误分类映射为 HTTP 响应：
// 参数错误 400、不存在 404、状态冲突 409、余额不足 400（附差额）、存储失败 500。
func RespondLedgerError(c *gin.Context, err error, fallback string) {
	var validation *ledger.ValidationError
	if errors.As(err, &validation) {
		BadRequest(c, validation.Message)
		return
	}

	var notFound *ledger.NotFoundError
	if errors.As(err, &notFound) {
		NotFound(c, notFound.Error())
		return
	}

	var invalidState *ledger.InvalidStateError
	if errors.As(err, &invalidState) {
		Conflict(c, invalidState.Message)
		return
	}

	var insufficient *ledger.InsufficientFundsError
	if errors.As(err, &insufficient) {
		// 带上差额，前端可以提示还需储蓄多少
		ErrorWithData(c, 400, insufficient.Error(), gin.H{
			"shortfall": insufficient.Shortfall,
		})
		return
	}

	InternalError(c, SafeErrorMessage(err, fallback))
}
