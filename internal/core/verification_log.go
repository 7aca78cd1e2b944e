package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/certverify/verification/internal/model"
)

// DB defines the database operations used by the verification log.
// *pgxpool.Pool satisfies this interface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VerificationLogService records verification attempts for audit purposes.
// A nil service (no database configured) is a no-op recorder.
type VerificationLogService struct {
	db     DB
	logger zerolog.Logger
}

func NewVerificationLogService(db DB, logger zerolog.Logger) *VerificationLogService {
	return &VerificationLogService{db: db, logger: logger}
}

// Record writes one attempt. Best effort: failures are logged and swallowed,
// they never influence a verification outcome. The write deliberately does
// not use the request context so a cancelled request still leaves a trail.
func (s *VerificationLogService) Record(_ context.Context, entry model.VerificationLog) {
	if s == nil || s.db == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := s.db.Exec(ctx,
		`INSERT INTO verification_logs (id, certificate_key, verification_method, verifier_ip, result, error_message, response_time_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
		entry.ID, entry.CertificateKey, entry.Method, entry.VerifierIP, entry.Result, entry.ErrorMessage, entry.ResponseTimeMS,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("certificate_key", entry.CertificateKey).Msg("failed to write verification log")
	}
}

// RecentByCertificate lists the latest attempts recorded for a certificate.
func (s *VerificationLogService) RecentByCertificate(ctx context.Context, certificateID string, limit int) ([]model.VerificationLog, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, certificate_key, verification_method, verifier_ip, result, error_message, response_time_ms, created_at
		 FROM verification_logs
		 WHERE certificate_key = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		certificateID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list verification logs for %s: %w", certificateID, err)
	}
	defer rows.Close()

	var logs []model.VerificationLog
	for rows.Next() {
		var l model.VerificationLog
		if err := rows.Scan(&l.ID, &l.CertificateKey, &l.Method, &l.VerifierIP, &l.Result, &l.ErrorMessage, &l.ResponseTimeMS, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan verification log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification logs: %w", err)
	}
	return logs, nil
}
