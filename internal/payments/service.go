package payments

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/ammabio/amma-backend/api/validators"
	"github.com/ammabio/amma-backend/pkg/db/models"
	"github.com/ammabio/amma-backend/pkg/enums"
	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecordPaymentRequest carries a member-reported payment with an optional receipt.
type RecordPaymentRequest struct {
	MembershipID         uint
	Amount               string
	Currency             string
	PaymentMethod        string
	TransactionReference *string
	Remarks              *string
	Receipt              *multipart.FileHeader
}

// UpdatePaymentRequest amends a pending payment's reference, remarks or receipt.
type UpdatePaymentRequest struct {
	TransactionReference *string
	Remarks              *string
	Receipt              *multipart.FileHeader
}

// Service exposes payment recording and history for a membership.
type Service interface {
	Record(ctx context.Context, userID uint, req RecordPaymentRequest) (*models.MembershipPayment, error)
	Get(ctx context.Context, userID, paymentID uint) (*models.MembershipPayment, error)
	Update(ctx context.Context, userID, paymentID uint, req UpdatePaymentRequest) (*models.MembershipPayment, error)
	ListByMembership(ctx context.Context, userID, membershipID uint) ([]models.MembershipPayment, error)
}

type membershipResolver interface {
	ResolveOwned(ctx context.Context, userID, membershipID uint) (*models.Membership, error)
}

type fileStore interface {
	Validate(header *multipart.FileHeader) string
	Save(subdir string, header *multipart.FileHeader) (string, error)
	Remove(relPath string) error
}

type service struct {
	repo        *Repository
	memberships membershipResolver
	store       fileStore
}

// NewService constructs a payment service instance.
func NewService(repo *Repository, memberships membershipResolver, store fileStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment repository required")
	}
	if memberships == nil {
		return nil, fmt.Errorf("membership resolver required")
	}
	if store == nil {
		return nil, fmt.Errorf("file store required")
	}
	return &service{repo: repo, memberships: memberships, store: store}, nil
}

func (s *service) Record(ctx context.Context, userID uint, req RecordPaymentRequest) (*models.MembershipPayment, error) {
	membership, err := s.memberships.ResolveOwned(ctx, userID, req.MembershipID)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}

	currency := validators.CheckCurrency(fields, "currency", strings.TrimSpace(req.Currency))

	var amount decimal.Decimal
	rawAmount := strings.TrimSpace(req.Amount)
	if rawAmount == "" {
		fields.Add("amount", "is required")
	} else if amount, err = decimal.NewFromString(rawAmount); err != nil {
		fields.Add("amount", "must be a valid decimal number")
	} else if currency != "" {
		validators.CheckPaymentAmount(fields, "amount", amount, currency)
	}

	method, err := enums.ParsePaymentMethod(strings.TrimSpace(req.PaymentMethod))
	if err != nil {
		fields.Add("payment_method", "is not a valid payment method")
	}

	if req.Receipt != nil {
		if msg := s.store.Validate(req.Receipt); msg != "" {
			fields.Add("receipt", msg)
		}
	}

	if len(fields) > 0 {
		return nil, pkgerrors.Validation(fields)
	}

	var receiptPath *string
	if req.Receipt != nil {
		rel, err := s.store.Save(fmt.Sprintf("memberships/%d/receipts", membership.ID), req.Receipt)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store receipt")
		}
		receiptPath = &rel
	}

	payment := &models.MembershipPayment{
		MembershipID:         membership.ID,
		Amount:               amount,
		Currency:             currency,
		PaymentMethod:        method,
		TransactionReference: trimPtr(req.TransactionReference),
		ReceiptPath:          receiptPath,
		Remarks:              trimPtr(req.Remarks),
	}
	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		if receiptPath != nil {
			_ = s.store.Remove(*receiptPath)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert payment")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, userID, paymentID uint) (*models.MembershipPayment, error) {
	return s.owned(ctx, userID, paymentID)
}

func (s *service) Update(ctx context.Context, userID, paymentID uint, req UpdatePaymentRequest) (*models.MembershipPayment, error) {
	payment, err := s.owned(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}
	// Settled payments are immutable for members.
	if payment.Status != enums.PaymentStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "only pending payments can be updated")
	}

	if req.Receipt != nil {
		if msg := s.store.Validate(req.Receipt); msg != "" {
			return nil, pkgerrors.Validation(pkgerrors.FieldErrors{"receipt": {msg}})
		}
	}

	if req.TransactionReference != nil {
		payment.TransactionReference = trimPtr(req.TransactionReference)
	}
	if req.Remarks != nil {
		payment.Remarks = trimPtr(req.Remarks)
	}

	var oldReceipt *string
	if req.Receipt != nil {
		rel, err := s.store.Save(fmt.Sprintf("memberships/%d/receipts", payment.MembershipID), req.Receipt)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store receipt")
		}
		oldReceipt = payment.ReceiptPath
		payment.ReceiptPath = &rel
	}

	updated, err := s.repo.Update(ctx, payment)
	if err != nil {
		if req.Receipt != nil && payment.ReceiptPath != nil {
			_ = s.store.Remove(*payment.ReceiptPath)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update payment")
	}
	if oldReceipt != nil {
		_ = s.store.Remove(*oldReceipt)
	}
	return updated, nil
}

func (s *service) ListByMembership(ctx context.Context, userID, membershipID uint) ([]models.MembershipPayment, error) {
	membership, err := s.memberships.ResolveOwned(ctx, userID, membershipID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListForMembership(ctx, membership.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return rows, nil
}

func (s *service) owned(ctx context.Context, userID, paymentID uint) (*models.MembershipPayment, error) {
	payment, err := s.repo.FindOwnedByUser(ctx, paymentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	return payment, nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
