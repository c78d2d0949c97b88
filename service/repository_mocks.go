package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tkuminecz/ynab-reports/events"
	"github.com/tkuminecz/ynab-reports/models"
)

// MockProjectionRepository is a mock implementation of ProjectionRepository
type MockProjectionRepository struct {
	mock.Mock
}

func (m *MockProjectionRepository) Upsert(ctx context.Context, projection *models.Projection) error {
	args := m.Called(ctx, projection)
	return args.Error(0)
}

func (m *MockProjectionRepository) GetAll(ctx context.Context) ([]*models.Projection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Projection), args.Error(1)
}

func (m *MockProjectionRepository) GetByMonth(ctx context.Context, month string) (*models.Projection, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Projection), args.Error(1)
}

func (m *MockProjectionRepository) GetLatest(ctx context.Context) (*models.Projection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Projection), args.Error(1)
}

func (m *MockProjectionRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Projection, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Projection), args.Error(1)
}

func (m *MockProjectionRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProjectionRepository) Count(ctx context.Context) (int, *time.Time, *time.Time, error) {
	args := m.Called(ctx)
	var oldest, newest *time.Time
	if args.Get(1) != nil {
		oldest = args.Get(1).(*time.Time)
	}
	if args.Get(2) != nil {
		newest = args.Get(2).(*time.Time)
	}
	return args.Int(0), oldest, newest, args.Error(3)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Record(ctx context.Context, payment *models.PaymentRecord) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetHistory(ctx context.Context, accountName string) ([]*models.PaymentRecord, error) {
	args := m.Called(ctx, accountName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	projectionRepo ProjectionRepository
	paymentRepo    PaymentRepository
	eventBus       EventPublisher
}

// SetRepositories wires the repository mocks this unit of work hands out
func (m *MockUnitOfWork) SetRepositories(projectionRepo ProjectionRepository, paymentRepo PaymentRepository, eventBus EventPublisher) {
	m.projectionRepo = projectionRepo
	m.paymentRepo = paymentRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) ProjectionRepository() ProjectionRepository {
	return m.projectionRepo
}

func (m *MockUnitOfWork) PaymentRepository() PaymentRepository {
	return m.paymentRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
