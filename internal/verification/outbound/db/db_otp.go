package db

import (
	"context"

	"github.com/shandysiswandi/goverify/internal/verification/entity"
)

const queryInvalidateActiveOtps = `
UPDATE verification_otps
SET is_used = TRUE
WHERE subject_id = $1 AND purpose = $2 AND is_used = FALSE
`

const queryInsertOtp = `
INSERT INTO verification_otps (id, subject_id, code_hash, purpose, is_used, expires_at, created_at)
VALUES ($1, $2, $3, $4, FALSE, $5, $6)
`

// queryConsumeActiveOtp marks the freshest live matching code as used and
// returns it. The conditional update makes consumption a single atomic
// compare-and-set, so a code can be accepted at most once.
const queryConsumeActiveOtp = `
UPDATE verification_otps
SET is_used = TRUE
WHERE id = (
	SELECT id FROM verification_otps
	WHERE subject_id = $1 AND purpose = $2 AND code_hash = $3
		AND is_used = FALSE AND expires_at > $4
	ORDER BY created_at DESC
	LIMIT 1
	FOR UPDATE SKIP LOCKED
)
RETURNING id, subject_id, code_hash, purpose, is_used, expires_at, created_at
`

const queryListInertOtps = `
SELECT id, subject_id, code_hash, purpose, is_used, expires_at, created_at
FROM verification_otps
WHERE (is_used = TRUE OR expires_at <= $1)
	AND ($2::text = '' OR purpose = $2)
	AND ($3::timestamptz IS NULL OR created_at >= $3)
	AND ($4::timestamptz IS NULL OR created_at <= $4)
ORDER BY created_at ASC, id ASC
LIMIT $5 OFFSET $6
`

// ReplaceActiveOtp invalidates every live code for the subject and purpose
// and inserts the replacement in one transaction, keeping at most one active
// code per (subject, purpose) even under concurrent requests.
func (s *DB) ReplaceActiveOtp(ctx context.Context, rec entity.OtpRecord) (err error) {
	ctx, span := s.startSpan(ctx, "ReplaceActiveOtp")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return s.mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, queryInvalidateActiveOtps, rec.SubjectID, rec.Purpose.String()); err != nil {
		return s.mapError(err)
	}

	if _, err = tx.Exec(ctx, queryInsertOtp,
		rec.ID,
		rec.SubjectID,
		rec.CodeHash,
		rec.Purpose.String(),
		rec.ExpiresAt,
		rec.CreatedAt,
	); err != nil {
		return s.mapError(err)
	}

	err = s.mapError(tx.Commit(ctx))
	return err
}

// ConsumeActiveOtp returns goerror.ErrNotFound when no live code matches.
func (s *DB) ConsumeActiveOtp(ctx context.Context, in entity.ConsumeOtp) (rec *entity.OtpRecord, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeActiveOtp")
	defer func() { s.endSpan(span, err) }()

	var out entity.OtpRecord
	err = s.conn.QueryRow(ctx, queryConsumeActiveOtp,
		in.SubjectID,
		in.Purpose.String(),
		in.CodeHash,
		in.Now,
	).Scan(&out.ID, &out.SubjectID, &out.CodeHash, &out.Purpose, &out.IsUsed, &out.ExpiresAt, &out.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) ListInertOtps(ctx context.Context, filter entity.OtpListFilterData) (recs []entity.OtpRecord, err error) {
	ctx, span := s.startSpan(ctx, "ListInertOtps")
	defer func() { s.endSpan(span, err) }()

	purpose := ""
	if filter.IsFilterByPurpose {
		purpose = filter.Purpose.String()
	}

	var dateFrom, dateTo any
	if filter.IsFilterByDate {
		if !filter.DateFrom.IsZero() {
			dateFrom = filter.DateFrom
		}
		if !filter.DateTo.IsZero() {
			dateTo = filter.DateTo
		}
	}

	rows, err := s.conn.Query(ctx, queryListInertOtps,
		filter.Now,
		purpose,
		dateFrom,
		dateTo,
		filter.Size,
		filter.Offset,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	out := make([]entity.OtpRecord, 0, filter.Size)
	for rows.Next() {
		var rec entity.OtpRecord
		if err = rows.Scan(
			&rec.ID,
			&rec.SubjectID,
			&rec.CodeHash,
			&rec.Purpose,
			&rec.IsUsed,
			&rec.ExpiresAt,
			&rec.CreatedAt,
		); err != nil {
			return nil, s.mapError(err)
		}
		out = append(out, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return out, nil
}
