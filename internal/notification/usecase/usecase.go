package usecase

import (
	"context"

	"github.com/shandysiswandi/goverify/internal/notification/entity"
	"github.com/shandysiswandi/goverify/internal/pkg/clock"
	"github.com/shandysiswandi/goverify/internal/pkg/config"
	"github.com/shandysiswandi/goverify/internal/pkg/idempotency"
	"github.com/shandysiswandi/goverify/internal/pkg/instrument"
	"github.com/shandysiswandi/goverify/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoSMS interface {
	Send(ctx context.Context, msg entity.SMSMessage) error
}

type Usecase struct {
	repoSMS   repoSMS
	idemp     idempotency.Idempotency
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoSMS     repoSMS
	Idempotency idempotency.Idempotency
	Config      config.Config
	Clock       clock.Clocker
	Validator   validator.Validator
	Instrument  instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoSMS:   dep.RepoSMS,
		idemp:     dep.Idempotency,
		cfg:       dep.Config,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}
