package ledger

import "fmt"

// ValidationError 输入不合法（缺少必填项、金额非正、日期格式错误等）
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError 实体不存在或不属于当前用户
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + "不存在"
}

// InvalidStateError 当前状态下不允许的操作（如重复达成目标）
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// InsufficientFundsError 储蓄池不足以覆盖目标金额，Shortfall 为差额
type InsufficientFundsError struct {
	Shortfall float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("储蓄余额不足，还差 %.2f", e.Shortfall)
}

// StorageError 底层存储失败，始终向上传递，不静默吞掉
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("存储操作失败(%s): %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
