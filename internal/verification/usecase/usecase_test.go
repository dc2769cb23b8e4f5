package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shandysiswandi/goverify/internal/pkg/config"
	"github.com/shandysiswandi/goverify/internal/pkg/hash"
	"github.com/shandysiswandi/goverify/internal/pkg/instrument"
	"github.com/shandysiswandi/goverify/internal/pkg/jwt"
	"github.com/shandysiswandi/goverify/internal/pkg/storage"
	"github.com/shandysiswandi/goverify/internal/pkg/validator"
	"github.com/shandysiswandi/goverify/internal/verification/entity"
)

const testConfigYAML = `
modules:
  verification:
    otp_ttl_minutes: 10
    export:
      bucket: "goverify-audit"
      url_ttl_minutes: 15
`

type fakeRepoDB struct {
	subject    *entity.Subject
	subjectErr error

	replaceRec entity.OtpRecord
	replaceErr error

	consumed    *entity.OtpRecord
	consumeIn   entity.ConsumeOtp
	consumeErr  error

	listPages [][]entity.OtpRecord
	listCalls []entity.OtpListFilterData
	listErr   error
}

func (f *fakeRepoDB) GetSubjectByPhone(_ context.Context, _ string) (*entity.Subject, error) {
	return f.subject, f.subjectErr
}

func (f *fakeRepoDB) ReplaceActiveOtp(_ context.Context, rec entity.OtpRecord) error {
	f.replaceRec = rec
	return f.replaceErr
}

func (f *fakeRepoDB) ConsumeActiveOtp(_ context.Context, in entity.ConsumeOtp) (*entity.OtpRecord, error) {
	f.consumeIn = in
	return f.consumed, f.consumeErr
}

func (f *fakeRepoDB) ListInertOtps(_ context.Context, filter entity.OtpListFilterData) ([]entity.OtpRecord, error) {
	f.listCalls = append(f.listCalls, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.listPages) == 0 {
		return nil, nil
	}
	page := f.listPages[0]
	f.listPages = f.listPages[1:]
	return page, nil
}

type fakeMessaging struct {
	events []OtpIssuedEvent
	err    error
}

func (f *fakeMessaging) PublishOtpIssued(_ context.Context, msg OtpIssuedEvent) error {
	f.events = append(f.events, msg)
	return f.err
}

type fakeStorage struct {
	bucket  string
	key     string
	body    []byte
	opts    storage.PutOptions
	putErr  error
	signErr error
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	if f.putErr != nil {
		return storage.ObjectInfo{}, f.putErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	f.bucket, f.key, f.body, f.opts = bucket, key, body, opts
	return storage.ObjectInfo{Bucket: bucket, Key: key, Size: int64(len(body))}, nil
}

func (f *fakeStorage) PresignGet(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://storage.local/" + bucket + "/" + key, nil
}

func (f *fakeStorage) Close() error { return nil }

type fakeJWT struct {
	token string
	err   error

	subjectID int64
	purpose   string
}

func (f *fakeJWT) Generate(subjectID int64, purpose string) (string, error) {
	f.subjectID, f.purpose = subjectID, purpose
	return f.token, f.err
}

func (f *fakeJWT) Verify(_ string) (jwt.Claims, error) {
	return jwt.Claims{}, nil
}

type fakeCodeGen struct {
	code string
	err  error
}

func (f fakeCodeGen) Generate() (string, error) { return f.code, f.err }

type staticNumberID struct{ id int64 }

func (s staticNumberID) Generate() int64 { return s.id }

type staticStringID struct{ id string }

func (s staticStringID) Generate() string { return s.id }

type frozenClock struct{ now time.Time }

func (f frozenClock) Now() time.Time { return f.now }

func testValidator(t *testing.T) validator.Validator {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	return cfg
}

type testDeps struct {
	db        *fakeRepoDB
	messaging *fakeMessaging
	storage   *fakeStorage
	jwt       *fakeJWT
	hmac      hash.Hash
	clock     frozenClock
}

func newTestUsecase(t *testing.T, deps *testDeps) *Usecase {
	t.Helper()

	if deps.db == nil {
		deps.db = &fakeRepoDB{}
	}
	if deps.messaging == nil {
		deps.messaging = &fakeMessaging{}
	}
	if deps.storage == nil {
		deps.storage = &fakeStorage{}
	}
	if deps.jwt == nil {
		deps.jwt = &fakeJWT{token: "proof-token"}
	}
	if deps.hmac == nil {
		deps.hmac = hash.NewHMACSHA256("test-secret")
	}
	if deps.clock.now.IsZero() {
		deps.clock = frozenClock{now: time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)}
	}

	return New(Dependency{
		RepoDB:        deps.db,
		RepoMessaging: deps.messaging,
		Validator:     testValidator(t),
		Config:        testConfig(t),
		Storage:       deps.storage,
		HMAC:          deps.hmac,
		UID:           staticNumberID{id: 777},
		UUID:          staticStringID{id: "export-uuid"},
		CodeGen:       fakeCodeGen{code: "123456"},
		Clock:         deps.clock,
		JWT:           deps.jwt,
		Instrument:    instrument.NewNoop(),
	})
}
