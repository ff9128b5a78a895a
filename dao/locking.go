package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockingClause sqlite 不支持 FOR UPDATE，其余驱动加行锁
func lockingClause(tx *gorm.DB) []clause.Expression {
	if tx.Dialector != nil && tx.Dialector.Name() == "sqlite" {
		return nil
	}
	return []clause.Expression{clause.Locking{Strength: clause.LockingStrengthUpdate}}
}
