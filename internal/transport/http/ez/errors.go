package ez

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gin-gorm-shop/internal/domain"
	resp "gin-gorm-shop/internal/transport/http/response"
)

// AErr 带错误码的传输层错误，Code 同时作为 HTTP 状态
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

var kinds = []struct {
	sentinel error
	code     int
}{
	{domain.ErrNotFound, resp.CodeNotFound},
	{domain.ErrBadRequest, resp.CodeBadRequest},
	{domain.ErrConflict, resp.CodeConflict},
	{domain.ErrUnauthorized, resp.CodeUnauthorized},
}

// FromDomain 业务错误映射成 AErr；未知错误一律 500，不把内部信息带给客户端
func FromDomain(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae
	}
	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			return &AErr{Code: k.code, Msg: detail(err, k.sentinel), Err: err}
		}
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &AErr{Code: resp.CodeBadRequest, Msg: "request body too large", Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &AErr{Code: resp.CodeTimeout, Msg: "timeout", Err: err}
	}
	return &AErr{Code: resp.CodeServerError, Msg: "internal error", Err: err}
}

// detail 去掉 "not found: " 这类前缀，只留具体描述
func detail(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}
