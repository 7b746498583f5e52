package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	contractsDomain "github.com/tutorlane/tutorlane/internal/contracts/domain"
	"github.com/tutorlane/tutorlane/internal/sessions/domain"
	"github.com/tutorlane/tutorlane/internal/shared/infrastructure/outbox"
)

// mockSessionRepo is a mock implementation of domain.SessionRepository.
type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *mockSessionRepo) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.Session, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Session), args.Error(1)
}

func (m *mockSessionRepo) Add(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepo) Update(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// mockContractRepo is a mock implementation of contractsDomain.ContractRepository.
type mockContractRepo struct {
	mock.Mock
}

func (m *mockContractRepo) GetByID(ctx context.Context, id uuid.UUID) (*contractsDomain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contractsDomain.Contract), args.Error(1)
}

func (m *mockContractRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*contractsDomain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contractsDomain.Contract), args.Error(1)
}

func (m *mockContractRepo) Add(ctx context.Context, contract *contractsDomain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *mockContractRepo) Update(ctx context.Context, contract *contractsDomain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

// mockOracle is a mock implementation of availabilityDomain.Oracle.
type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) IsTutorAvailable(ctx context.Context, tutorID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, tutorID, start, end)
	return args.Bool(0), args.Error(1)
}

// mockOutboxRepo is a mock implementation of outbox.Repository.
type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, errMsg, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
}

// txMarkerKey marks the context a mocked Begin hands back, so repository
// expectations can pin calls to the transactional context.
type txMarkerKey struct{}

func txContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, txMarkerKey{}, struct{}{})
}

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
