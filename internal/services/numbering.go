package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/logger"
)

// maxNumberAttempts bounds the count-then-insert retries for derived numbers.
const maxNumberAttempts = 5

// proformaPrefix numbers proformas by their end date.
func proformaPrefix(endDate datatypes.Date) string {
	return time.Time(endDate).Format("20060102")
}

// taxPaymentPrefix numbers tax payments by fiscal period.
func taxPaymentPrefix(year, month int) string {
	return fmt.Sprintf("%04d%02d", year, month)
}

// insertNumbered inserts record numbered "<prefix>-<n>", where n is one more
// than the rows already sharing prefix. The count and insert share a
// transaction and the number column is unique, so a concurrent writer taking
// the same n makes the insert fail and the whole step is retried.
func insertNumbered[T any](ctx context.Context, db *gorm.DB, prefix string, record *T, setNumber func(string)) error {
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(new(T)).Where("number LIKE ?", prefix+"-%").Count(&count).Error; err != nil {
				return err
			}
			setNumber(fmt.Sprintf("%s-%d", prefix, count+1))
			return tx.Create(record).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		logger.Get().Warnw("document number taken, retrying", "prefix", prefix, "attempt", attempt)
	}
	return apperrors.ErrNumberConflict
}
