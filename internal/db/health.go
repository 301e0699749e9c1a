package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// HealthChecker пингует соединение с базой. Используется хендлером /ping.
type HealthChecker struct {
	conn *gorm.DB
}

func NewHealthChecker(conn *gorm.DB) *HealthChecker {
	return &HealthChecker{conn: conn}
}

func (h *HealthChecker) CheckConnection(ctx context.Context) error {
	sqlDB, err := h.conn.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
