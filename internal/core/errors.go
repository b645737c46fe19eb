package core

import (
	"errors"
	"fmt"
)

// Code 领域错误码，属于对外契约的一部分，数值必须保持稳定
type Code int

const (
	CodeOwnerOnly         Code = 100 // 仅合约所有者可操作
	CodeNotTokenOwner     Code = 101 // 调用者不是token所有者
	CodeTokenNotFound     Code = 102 // token不存在
	CodeInvalidPrice      Code = 103 // 价格无效
	CodeCampaignNotFound  Code = 104 // 活动不存在或已结束
	CodeListingNotFound   Code = 105 // 挂单不存在
	CodeInsufficientFunds Code = 106 // 余额不足
	CodeInvalidParameter  Code = 107 // 参数无效
	CodePaused            Code = 108 // 系统已暂停
)

// Error 携带错误码的领域错误
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

func fail(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf 提取领域错误码，非领域错误返回false
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
