// Package service 业务用例层：校验、事务编排、事件发布
package service

import (
	"fmt"

	"gin-gorm-shop/internal/core/events"
	"gin-gorm-shop/internal/core/metrics"
	"gin-gorm-shop/internal/domain"
	"gin-gorm-shop/internal/repo"
)

// emit 只在事务提交后调用
func emit(pub events.Publisher, typ, entityID string, payload any) {
	metrics.Events.WithLabelValues(typ).Inc()
	pub.Publish(events.New(typ, entityID, payload))
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrBadRequest, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(format, args...))
}

// dupAsConflict 唯一索引冲突换成 target，其余原样返回
func dupAsConflict(err, target error) error {
	if repo.IsDupKey(err) {
		return target
	}
	return err
}
