package verification

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/goverify/internal/pkg/clock"
	"github.com/shandysiswandi/goverify/internal/pkg/config"
	"github.com/shandysiswandi/goverify/internal/pkg/hash"
	"github.com/shandysiswandi/goverify/internal/pkg/instrument"
	"github.com/shandysiswandi/goverify/internal/pkg/jwt"
	"github.com/shandysiswandi/goverify/internal/pkg/messaging"
	"github.com/shandysiswandi/goverify/internal/pkg/otp"
	"github.com/shandysiswandi/goverify/internal/pkg/router"
	"github.com/shandysiswandi/goverify/internal/pkg/storage"
	"github.com/shandysiswandi/goverify/internal/pkg/uid"
	"github.com/shandysiswandi/goverify/internal/pkg/validator"
	"github.com/shandysiswandi/goverify/internal/verification/inbound"
	"github.com/shandysiswandi/goverify/internal/verification/outbound/db"
	"github.com/shandysiswandi/goverify/internal/verification/outbound/mq"
	"github.com/shandysiswandi/goverify/internal/verification/usecase"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	CodeGen    otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbOtp := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbOtp,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Storage:       dep.Storage,
		HMAC:          dep.HMAC,
		UID:           dep.UID,
		UUID:          dep.UUID,
		CodeGen:       dep.CodeGen,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
