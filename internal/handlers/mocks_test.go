package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, memberID string, req dto.RecordPaymentRequest, callerID string) (*dto.PaymentResult, error) {
	args := m.Called(ctx, memberID, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaymentResult), args.Error(1)
}

func (m *MockPaymentService) RecordGeneralPayment(ctx context.Context, memberID string, req dto.GeneralPaymentRequest, callerID string) (*dto.GeneralPaymentResult, error) {
	args := m.Called(ctx, memberID, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GeneralPaymentResult), args.Error(1)
}

func (m *MockPaymentService) EditPayment(ctx context.Context, paymentID string, req dto.EditPaymentRequest, callerID string) (*dto.EditPaymentResult, error) {
	args := m.Called(ctx, paymentID, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EditPaymentResult), args.Error(1)
}

func (m *MockPaymentService) GetPayment(ctx context.Context, paymentID string, callerID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) ListPayments(ctx context.Context, memberID string, callerID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResult, error) {
	args := m.Called(ctx, memberID, callerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPaymentsResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock CreditService ---
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) ListCredits(ctx context.Context, memberID string, callerID string) ([]dto.CreditWithUsages, error) {
	args := m.Called(ctx, memberID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CreditWithUsages), args.Error(1)
}

func (m *MockCreditService) GetMemberBalance(ctx context.Context, memberID string, callerID string) (*dto.MemberBalance, error) {
	args := m.Called(ctx, memberID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MemberBalance), args.Error(1)
}

var _ portssvc.CreditSvcFacade = (*MockCreditService)(nil)

// --- Mock ObligationService ---
type MockObligationService struct {
	mock.Mock
}

func (m *MockObligationService) CreateObligation(ctx context.Context, memberID string, req dto.CreateObligationRequest, callerID string) (*domain.Obligation, error) {
	args := m.Called(ctx, memberID, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) GetObligation(ctx context.Context, ref domain.ObligationRef, callerID string) (*domain.Obligation, error) {
	args := m.Called(ctx, ref, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) ListObligations(ctx context.Context, memberID string, callerID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, memberID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

var _ portssvc.ObligationSvcFacade = (*MockObligationService)(nil)

// --- Mock AttachmentService ---
type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, filename string, content io.Reader, callerID string) (string, error) {
	data, _ := io.ReadAll(content)
	args := m.Called(ctx, filename, string(data), callerID)
	return args.String(0), args.Error(1)
}

var _ portssvc.AttachmentSvcFacade = (*MockAttachmentService)(nil)
