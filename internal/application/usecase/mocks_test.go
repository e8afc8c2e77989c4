package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Abhaykauahal21/LoanFlow/internal/domain/event"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
)

// --- Mock implementations ---

type mockApplicationRepository struct {
	saveFunc     func(ctx context.Context, app model.LoanApplication) error
	findByIDFunc func(ctx context.Context, id string) (model.LoanApplication, error)
	savedApps    []model.LoanApplication
}

func (m *mockApplicationRepository) Save(ctx context.Context, app model.LoanApplication) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	m.savedApps = append(m.savedApps, app)
	return nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.LoanApplication{}, port.ErrNotFound
}

func (m *mockApplicationRepository) FindByApplicantID(_ context.Context, _ string) ([]model.LoanApplication, error) {
	return nil, nil
}

func (m *mockApplicationRepository) FindByStatus(_ context.Context, _ string) ([]model.LoanApplication, error) {
	return nil, nil
}

type mockLoanRepository struct {
	saveFunc     func(ctx context.Context, loan model.Loan) error
	findByIDFunc func(ctx context.Context, id string) (model.Loan, error)
	savedLoans   []model.Loan
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	m.savedLoans = append(m.savedLoans, loan)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, port.ErrNotFound
}

func (m *mockLoanRepository) FindByApplicationID(_ context.Context, _ string) (model.Loan, error) {
	return model.Loan{}, port.ErrNotFound
}

func (m *mockLoanRepository) FindByBorrowerID(_ context.Context, _ string) ([]model.Loan, error) {
	return nil, nil
}

type mockPaymentRepository struct {
	saveFunc      func(ctx context.Context, p model.Payment) error
	findByIDFunc  func(ctx context.Context, id string) (model.Payment, error)
	savedPayments []model.Payment
}

func (m *mockPaymentRepository) Save(ctx context.Context, p model.Payment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, p)
	}
	m.savedPayments = append(m.savedPayments, p)
	return nil
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id string) (model.Payment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Payment{}, port.ErrNotFound
}

func (m *mockPaymentRepository) FindByLoanID(_ context.Context, _ string) ([]model.Payment, error) {
	return nil, nil
}

type mockUserRepository struct {
	saveFunc        func(ctx context.Context, u model.User) error
	findByEmailFunc func(ctx context.Context, email string) (model.User, error)
	savedUsers      []model.User
}

func (m *mockUserRepository) Save(ctx context.Context, u model.User) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, u)
	}
	m.savedUsers = append(m.savedUsers, u)
	return nil
}

func (m *mockUserRepository) FindByID(_ context.Context, _ string) (model.User, error) {
	return model.User{}, port.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return model.User{}, port.ErrNotFound
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockScheduleCache struct {
	getFunc  func(ctx context.Context, loanID string) (*model.Schedule, bool, error)
	setFunc  func(ctx context.Context, loanID string, sched *model.Schedule, ttl time.Duration) error
	setCalls int
}

func (m *mockScheduleCache) Get(ctx context.Context, loanID string) (*model.Schedule, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, loanID)
	}
	return nil, false, nil
}

func (m *mockScheduleCache) Set(ctx context.Context, loanID string, sched *model.Schedule, ttl time.Duration) error {
	m.setCalls++
	if m.setFunc != nil {
		return m.setFunc(ctx, loanID, sched, ttl)
	}
	return nil
}

func (m *mockScheduleCache) Invalidate(_ context.Context, _ string) error { return nil }

type mockTokenIssuer struct {
	generateFunc func(userID, email string, roles []string) (string, error)
}

func (m *mockTokenIssuer) GenerateToken(userID, email string, roles []string) (string, error) {
	if m.generateFunc != nil {
		return m.generateFunc(userID, email, roles)
	}
	return "signed-token", nil
}

// --- shared fixtures ---

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func approvedApplication() model.LoanApplication {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	app, err := model.NewLoanApplication("applicant-1", dec("100000"), "INR", 12, dec("45000"), nil, now)
	if err != nil {
		panic(err)
	}
	app, err = app.StartReview(now)
	if err != nil {
		panic(err)
	}
	app, err = app.Approve(dec("12"), "verified", now)
	if err != nil {
		panic(err)
	}
	return app.ClearEvents()
}

func activeLoan() model.Loan {
	loan, err := model.NewLoan(
		"app-1", "borrower-1",
		dec("100000"), "INR",
		dec("12"), 12,
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		panic(err)
	}
	return loan.ClearEvents()
}
