package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/goverify/internal/pkg/clock"
	"github.com/shandysiswandi/goverify/internal/pkg/config"
	"github.com/shandysiswandi/goverify/internal/pkg/hash"
	"github.com/shandysiswandi/goverify/internal/pkg/instrument"
	"github.com/shandysiswandi/goverify/internal/pkg/jwt"
	"github.com/shandysiswandi/goverify/internal/pkg/otp"
	"github.com/shandysiswandi/goverify/internal/pkg/storage"
	"github.com/shandysiswandi/goverify/internal/pkg/uid"
	"github.com/shandysiswandi/goverify/internal/pkg/validator"
	"github.com/shandysiswandi/goverify/internal/verification/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type OtpIssuedEvent struct {
	OtpID       int64
	SubjectID   int64
	PhoneNumber string
	Code        string
	Purpose     string
	ExpiresAt   time.Time
}

type repoMessaging interface {
	PublishOtpIssued(ctx context.Context, msg OtpIssuedEvent) error
}

type repoDB interface {
	GetSubjectByPhone(ctx context.Context, phone string) (*entity.Subject, error)

	ReplaceActiveOtp(ctx context.Context, rec entity.OtpRecord) error
	ConsumeActiveOtp(ctx context.Context, in entity.ConsumeOtp) (*entity.OtpRecord, error)
	ListInertOtps(ctx context.Context, filter entity.OtpListFilterData) ([]entity.OtpRecord, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	hmac          hash.Hash
	uid           uid.NumberID
	uuid          uid.StringID
	codeGen       otp.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation

	issuedCounter   metric.Int64Counter
	verifiedCounter metric.Int64Counter
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	HMAC          hash.Hash
	UID           uid.NumberID
	UUID          uid.StringID
	CodeGen       otp.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	meter := dep.Instrument.Meter("verification.usecase")
	issued, _ := meter.Int64Counter("verification_otp_issued_total",
		metric.WithDescription("Number of passcodes issued"))
	verified, _ := meter.Int64Counter("verification_otp_verified_total",
		metric.WithDescription("Number of verification attempts by outcome"))

	return &Usecase{
		repoDB:          dep.RepoDB,
		repoMessaging:   dep.RepoMessaging,
		validator:       dep.Validator,
		cfg:             dep.Config,
		storage:         dep.Storage,
		hmac:            dep.HMAC,
		uid:             dep.UID,
		uuid:            dep.UUID,
		codeGen:         dep.CodeGen,
		clock:           dep.Clock,
		jwt:             dep.JWT,
		ins:             dep.Instrument,
		issuedCounter:   issued,
		verifiedCounter: verified,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("verification.usecase").Start(ctx, name)
}

func (s *Usecase) countVerify(ctx context.Context, outcome string) {
	if s.verifiedCounter == nil {
		return
	}
	s.verifiedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
