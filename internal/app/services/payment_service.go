package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/codec"
	"github.com/yigit/isluportal/internal/app/models"
	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/repositories"
	"github.com/yigit/isluportal/internal/app/session"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
	"github.com/yigit/isluportal/internal/pkg/validation"
)

// Statement texts
const (
	StatusOutstanding  = "Outstanding Balance"
	StatusGoodStanding = "Account in Good Standing"

	LineBeginningBalance = "BEGINNING BALANCE"
	LineBalanceDue       = "CURRENT BALANCE DUE"
	LineOverpayment      = "OVERPAYMENT BALANCE"

	PrelimPaid   = "PRELIM STATUS: PAID. Permitted to take the exams."
	PrelimUnpaid = "PRELIM STATUS: NOT PAID. Please pay before prelim exams. Ignore if you're SLU Dependent or Full TOF Scholar."
	FinalsPaid   = "FINALS STATUS: PAID. Permitted to take the exams."
	FinalsUnpaid = "FINALS STATUS: UNPAID. Payment required to take exams."
)

const asOfLayout = "January 02, 2006"

// PaymentService logs payments and builds the statement of accounts
type PaymentService struct {
	paymentRepo *repositories.PaymentRepository
	sessions    *session.Manager
	reference   string
	now         func() time.Time
	logger      zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo *repositories.PaymentRepository, sessions *session.Manager, opts Options, logger zerolog.Logger) *PaymentService {
	opts = opts.withDefaults()
	return &PaymentService{
		paymentRepo: paymentRepo,
		sessions:    sessions,
		reference:   opts.PaymentReference,
		now:         time.Now,
		logger:      logger,
	}
}

// List returns the student's payments in log order
func (s *PaymentService) List(ctx context.Context, studentID string) ([]models.PaymentTransaction, error) {
	return s.paymentRepo.FindByStudentID(ctx, studentID)
}

// Log appends a payment stamped with the current time and the configured
// reference. The student ID is not checked against the account file.
func (s *PaymentService) Log(ctx context.Context, studentID, channel string, amount float64) (*models.PaymentTransaction, error) {
	payment, err := s.newPayment(studentID, channel, amount)
	if err != nil {
		return nil, err
	}
	if err := s.record(ctx, payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) newPayment(studentID, channel string, amount float64) (models.PaymentTransaction, error) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return models.PaymentTransaction{}, apperrors.NewValidationError("payment channel is required")
	}
	if !validation.IsFieldSafe(channel) {
		return models.PaymentTransaction{}, apperrors.NewValidationError("payment channel must not contain commas, pipes or line breaks")
	}
	if !(amount > 0) || math.IsInf(amount, 0) {
		return models.PaymentTransaction{}, apperrors.NewValidationError("payment amount must be greater than zero")
	}

	return models.PaymentTransaction{
		Date:      codec.FormatPaymentDate(s.now()),
		Channel:   channel,
		Reference: s.reference,
		Amount:    math.Round(amount*100) / 100,
		StudentID: studentID,
	}, nil
}

func (s *PaymentService) record(ctx context.Context, payment models.PaymentTransaction) error {
	if err := s.paymentRepo.Append(ctx, payment); err != nil {
		return err
	}
	s.logger.Info().Str("studentID", payment.StudentID).Str("channel", payment.Channel).Float64("amount", payment.Amount).Msg("Payment logged")
	return nil
}

// Pay checks the card block, applies the payment to the session's statement
// figures and logs it. A payment that cannot be logged is taken back off the
// session.
func (s *PaymentService) Pay(ctx context.Context, sessionID string, req *dto.PaymentRequest) (*dto.PaymentResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	payment, err := s.newPayment(sess.StudentID, req.Channel, req.Amount)
	if err != nil {
		return nil, err
	}

	updated, outcome, err := s.sessions.ApplyPayment(sessionID, payment.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.record(ctx, payment); err != nil {
		s.sessions.Revert(sessionID, sess)
		return nil, err
	}

	statement, err := s.buildStatement(ctx, updated)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentResponse{
		Payment:     payment,
		Overpayment: outcome.Overpayment,
		FullyPaid:   outcome.FullyPaid,
		Statement:   statement,
	}, nil
}

// Statement builds the statement of accounts from the session figures and
// the payment log
func (s *PaymentService) Statement(ctx context.Context, sessionID string) (*dto.Statement, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildStatement(ctx, sess)
}

// RefreshStatement draws new session figures and rebuilds the statement
func (s *PaymentService) RefreshStatement(ctx context.Context, sessionID string) (*dto.Statement, error) {
	sess, err := s.sessions.Refresh(sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildStatement(ctx, sess)
}

func (s *PaymentService) buildStatement(ctx context.Context, sess session.Session) (*dto.Statement, error) {
	payments, err := s.paymentRepo.FindByStudentID(ctx, sess.StudentID)
	if err != nil {
		return nil, err
	}

	beginning := sess.AmountDue + sess.CurrentBalance
	st := &dto.Statement{
		StudentID:        sess.StudentID,
		AsOf:             s.now().Format(asOfLayout),
		AmountDue:        sess.AmountDue,
		CurrentBalance:   sess.CurrentBalance,
		BeginningBalance: beginning,
		Lines:            make([]dto.StatementLine, 0, len(payments)+2),
	}

	st.Lines = append(st.Lines, dto.StatementLine{
		Description: LineBeginningBalance,
		Amount:      beginning,
		Display:     codec.FormatAmount(beginning),
	})
	for _, p := range payments {
		st.Lines = append(st.Lines, dto.StatementLine{
			Date:        p.Date,
			Description: p.Channel + " - " + p.Reference,
			Amount:      p.Amount,
			Display:     "(" + formatNumber(p.Amount) + ")",
		})
	}

	if sess.AmountDue > 0 {
		st.Status = StatusOutstanding
		st.PrelimStatus = PrelimUnpaid
		st.FinalsStatus = FinalsUnpaid
		st.Lines = append(st.Lines, dto.StatementLine{
			Description: LineBalanceDue,
			Amount:      sess.AmountDue,
			Display:     codec.FormatAmount(sess.AmountDue),
		})
	} else {
		st.Status = StatusGoodStanding
		st.PrelimStatus = PrelimPaid
		st.FinalsStatus = FinalsPaid
		st.Lines = append(st.Lines, dto.StatementLine{
			Description: LineOverpayment,
			Amount:      sess.CurrentBalance,
			Display:     codec.CurrencyPrefix + " (" + formatNumber(sess.CurrentBalance) + ")",
		})
	}
	return st, nil
}

// formatNumber renders v like FormatAmount without the currency prefix
func formatNumber(v float64) string {
	return strings.TrimPrefix(codec.FormatAmount(v), codec.CurrencyPrefix+" ")
}
