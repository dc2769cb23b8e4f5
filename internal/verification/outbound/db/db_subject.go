package db

import (
	"context"

	"github.com/shandysiswandi/goverify/internal/verification/entity"
)

const queryGetSubjectByPhone = `
SELECT id, phone_number, status
FROM subjects
WHERE phone_number = $1
`

func (s *DB) GetSubjectByPhone(ctx context.Context, phone string) (sub *entity.Subject, err error) {
	ctx, span := s.startSpan(ctx, "GetSubjectByPhone")
	defer func() { s.endSpan(span, err) }()

	var out entity.Subject
	err = s.conn.QueryRow(ctx, queryGetSubjectByPhone, phone).
		Scan(&out.ID, &out.PhoneNumber, &out.Status)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}
