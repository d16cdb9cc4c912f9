package domain

import "errors"

// 工作流和打卡操作共用的业务错误，由 repository 返回、handler 翻译成响应消息
var (
	ErrAlreadyOpen           = errors.New("already clocked in")
	ErrNoOpenSession         = errors.New("no open session")
	ErrDailyLimitExceeded    = errors.New("daily limit exceeded")
	ErrMissingDocument       = errors.New("missing supporting document")
	ErrMissingOvertimeWindow = errors.New("missing overtime start or end time")
	ErrSelfSwap              = errors.New("cannot swap with yourself")
	ErrNotFound              = errors.New("not found")
)
