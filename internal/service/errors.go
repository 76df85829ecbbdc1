package service

import "fmt"

type ErrorCode string

const (
	ErrorCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrorCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrorCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrorCodeInternal      ErrorCode = "INTERNAL"
	ErrorCodeAIUnavailable ErrorCode = "AI_UNAVAILABLE"
)

type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func NewErr(code ErrorCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}
