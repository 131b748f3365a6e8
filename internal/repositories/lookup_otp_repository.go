package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"food_orders_backend/internal/models"
)

// LookupOTPRepository stores pending customer lookup challenges.
type LookupOTPRepository interface {
	CreateLookupOTP(ctx context.Context, otp *models.LookupOTP) error
	GetLookupOTP(ctx context.Context, requestID string) (*models.LookupOTP, error)
	UpdateLookupOTPAttempts(ctx context.Context, requestID string, attempts int) error
	DeleteLookupOTP(ctx context.Context, requestID string) error
	// DeleteExpiredLookupOTPs removes challenges that expired before nowMs.
	DeleteExpiredLookupOTPs(ctx context.Context, nowMs int64) (int64, error)
}

type lookupOTPRepository struct {
	db SQLExecutor
}

func NewLookupOTPRepository(db SQLExecutor) LookupOTPRepository {
	return &lookupOTPRepository{db: db}
}

func (r *lookupOTPRepository) CreateLookupOTP(ctx context.Context, otp *models.LookupOTP) error {
	query := `INSERT INTO lookup_otps (request_id, phone, tenant_id, otp_hash, attempts, created_at, expires_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		otp.RequestID, otp.Phone, otp.TenantID, otp.OTPHash, otp.Attempts, otp.CreatedAt, otp.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lookup otp %s", ErrDuplicateKey, otp.RequestID)
		}
		return fmt.Errorf("%w: creating lookup otp: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *lookupOTPRepository) GetLookupOTP(ctx context.Context, requestID string) (*models.LookupOTP, error) {
	otp := &models.LookupOTP{}
	query := `SELECT request_id, phone, tenant_id, otp_hash, attempts, created_at, expires_at
	          FROM lookup_otps WHERE request_id = $1`
	err := r.db.QueryRowContext(ctx, query, requestID).Scan(
		&otp.RequestID, &otp.Phone, &otp.TenantID, &otp.OTPHash, &otp.Attempts, &otp.CreatedAt, &otp.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting lookup otp: %v", ErrDatabaseError, err)
	}
	return otp, nil
}

func (r *lookupOTPRepository) UpdateLookupOTPAttempts(ctx context.Context, requestID string, attempts int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE lookup_otps SET attempts = $1 WHERE request_id = $2`, attempts, requestID)
	if err != nil {
		return fmt.Errorf("%w: updating lookup otp attempts: %v", ErrDatabaseError, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for lookup otp: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *lookupOTPRepository) DeleteLookupOTP(ctx context.Context, requestID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lookup_otps WHERE request_id = $1`, requestID); err != nil {
		return fmt.Errorf("%w: deleting lookup otp: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *lookupOTPRepository) DeleteExpiredLookupOTPs(ctx context.Context, nowMs int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lookup_otps WHERE expires_at < $1`, nowMs)
	if err != nil {
		return 0, fmt.Errorf("%w: pruning lookup otps: %v", ErrDatabaseError, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for lookup otp prune: %v", ErrDatabaseError, err)
	}
	return n, nil
}
