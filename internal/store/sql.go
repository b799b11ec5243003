package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"formbot/internal/database"
	"formbot/internal/domain"
	"formbot/internal/metrics"
	apperrors "formbot/pkg/errors"

	"gorm.io/gorm"
)

// submissionRow is the relational shape of a FormSubmission.
type submissionRow struct {
	ID        uint   `gorm:"primaryKey"`
	Company   string `gorm:"type:text"`
	Name      string `gorm:"type:text"`
	Email     string `gorm:"type:text"`
	Phone     string `gorm:"type:text"`
	CreatedAt time.Time
}

// SQLStore keeps submissions in a table named after the collection, through
// gorm. Works against SQLite and PostgreSQL.
type SQLStore struct {
	db    *gorm.DB
	table string
}

// NewSQLStore migrates the submissions table and returns a store over it.
func NewSQLStore(db *gorm.DB, table string) (*SQLStore, error) {
	if err := db.Table(table).AutoMigrate(&submissionRow{}); err != nil {
		return nil, classifySQL(err, apperrors.ErrCodeWrite, "failed to migrate "+table)
	}
	return &SQLStore{db: db, table: table}, nil
}

func (s *SQLStore) Insert(ctx context.Context, sub domain.FormSubmission) (string, error) {
	row := submissionRow{
		Company:   sub.Company,
		Name:      sub.Name,
		Email:     sub.Email,
		Phone:     sub.Phone,
		CreatedAt: sub.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Table(s.table).Create(&row).Error; err != nil {
		return "", classifySQL(err, apperrors.ErrCodeWrite, "failed to insert into "+s.table)
	}
	return strconv.FormatUint(uint64(row.ID), 10), nil
}

func (s *SQLStore) Find(ctx context.Context, opts FindOptions) ([]domain.FormSubmission, error) {
	var rows []submissionRow
	err := s.db.WithContext(ctx).
		Table(s.table).
		Order("id").
		Offset(opts.skip()).
		Limit(opts.EffectiveLimit()).
		Find(&rows).Error
	if err != nil {
		return nil, classifySQL(err, apperrors.ErrCodeRead, "failed to read "+s.table)
	}

	subs := make([]domain.FormSubmission, len(rows))
	for i, r := range rows {
		subs[i] = domain.FormSubmission{
			ID:        strconv.FormatUint(uint64(r.ID), 10),
			Company:   r.Company,
			Name:      r.Name,
			Email:     r.Email,
			Phone:     r.Phone,
			CreatedAt: r.CreatedAt,
		}
	}
	return subs, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	if err := database.PingSQL(ctx, s.db); err != nil {
		return apperrors.Connectivity("database unreachable", err)
	}
	if stats, err := database.Stats(s.db); err == nil {
		metrics.UpdateDBConnections(stats.InUse, stats.Idle)
	}
	return nil
}

func (s *SQLStore) Close(context.Context) error {
	return database.CloseSQL(s.db)
}

// classifySQL maps connection failures to a connectivity error and
// everything else to fallback.
func classifySQL(err error, fallback apperrors.ErrorCode, message string) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return apperrors.Connectivity(fmt.Sprintf("%s: database unreachable", message), err)
	}
	return apperrors.Wrap(fallback, message, err)
}
