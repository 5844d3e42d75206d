package domain

import "errors"

// 业务错误类别，service 层用 fmt.Errorf("%w: ...") 包装，传输层统一映射状态码
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)
