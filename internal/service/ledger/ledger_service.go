package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"

	"collectionledger/internal/pkg/config"
	"collectionledger/internal/pkg/consts"
	"collectionledger/internal/pkg/log_messages"
	"collectionledger/internal/pkg/logger"
	"collectionledger/internal/pkg/models"
	"collectionledger/internal/service/interfaces"
)

// Policy bundles the operator-tunable collection rules.
type Policy struct {
	Thresholds LatenessThresholds

	// CollectPendingPenalty makes a Pending endorsement's amount already
	// collectible; off means only Approved penalties enter allocation.
	CollectPendingPenalty bool

	StatusCacheTTL time.Duration
}

func PolicyFromConfig(cfg config.LedgerConfig) Policy {
	return Policy{
		Thresholds: LatenessThresholds{
			PastDueAfterDays: cfg.PastDueAfterDays,
			OverdueAfterDays: cfg.OverdueAfterDays,
		},
		CollectPendingPenalty: cfg.CollectPendingPenalty,
		StatusCacheTTL:        time.Duration(cfg.StatusCacheTTLSeconds) * time.Second,
	}
}

// Service owns every mutation of the collection ledger. All writes to an
// installment funnel through here, serialized per reference number.
type Service struct {
	installments interfaces.InstallmentsRepositoryInterface
	receipts     interfaces.ReceiptsRepositoryInterface
	endorsements interfaces.PenaltyEndorsementsRepositoryInterface
	loans        interfaces.LoansRepositoryInterface
	inProgress   interfaces.PaymentsInProgressRepositoryInterface
	cache        interfaces.RedisStoreOperations
	txn          interfaces.TransactionRunner
	publisher    interfaces.PubSubPublisherInterface

	policy Policy
	locks  *refLocks
	now    func() time.Time
}

func NewService(
	installments interfaces.InstallmentsRepositoryInterface,
	receipts interfaces.ReceiptsRepositoryInterface,
	endorsements interfaces.PenaltyEndorsementsRepositoryInterface,
	loans interfaces.LoansRepositoryInterface,
	inProgress interfaces.PaymentsInProgressRepositoryInterface,
	cache interfaces.RedisStoreOperations,
	txn interfaces.TransactionRunner,
	publisher interfaces.PubSubPublisherInterface,
	policy Policy,
) *Service {
	return &Service{
		installments: installments,
		receipts:     receipts,
		endorsements: endorsements,
		loans:        loans,
		inProgress:   inProgress,
		cache:        cache,
		txn:          txn,
		publisher:    publisher,
		policy:       policy,
		locks:        newRefLocks(),
		now:          time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateSchedule generates and persists the schedule for a newly disbursed
// loan. Replayed disbursement events for a known loan are skipped.
func (s *Service) CreateSchedule(ctx context.Context, terms LoanTerms) ([]Installment, error) {
	exists, err := s.loans.ExistsByLoanID(ctx, terms.LoanID)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.CtxInfo(ctx, "Loan already has a schedule, skipping disbursement",
			slog.String("loan_id", terms.LoanID))
		return s.ListCollections(ctx, terms.LoanID)
	}

	rows, err := GenerateSchedule(terms)
	if err != nil {
		logger.CtxError(ctx, "Schedule generation rejected", err,
			slog.String("loan_id", terms.LoanID))
		return nil, err
	}

	var totalPayable *decimal.Decimal
	if len(rows) > 0 {
		totalPayable = rows[0].TotalPayable
	}

	loanDoc := loanToDoc(&terms, terms.Principal, totalPayable)

	if _, err := s.txn.RunInTransaction(ctx, func(sc context.Context) (interface{}, error) {
		if err := s.loans.CreateLoan(sc, loanDoc); err != nil {
			return nil, err
		}
		return nil, s.insertRows(sc, rows)
	}); err != nil {
		return nil, err
	}

	s.invalidateSnapshot(ctx, terms.LoanID)

	logger.CtxInfo(ctx, "Created installment schedule",
		slog.String("loan_id", terms.LoanID),
		slog.Int("rows", len(rows)),
		slog.Bool("open_term", terms.OpenTerm))
	return rows, nil
}

// ApplyPayment posts one payment against one installment: allocation,
// receipt, optional open-term extension, and the notification publish,
// with the Mongo writes in a single transaction.
//
// The returned error is ErrOverpaymentClamped when the payment committed
// but for less than was tendered; the result is still valid then.
func (s *Service) ApplyPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	unlock := s.locks.lock(req.ReferenceNumber)
	defer unlock()

	busy, err := s.inProgress.CheckEntryExists(ctx, req.ReferenceNumber)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, ErrPaymentInProgress
	}
	if err := s.inProgress.CreateEntry(ctx, req.ReferenceNumber); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.inProgress.DeleteEntry(ctx, req.ReferenceNumber); err != nil {
			logger.CtxError(ctx, "Failed to release payment in progress entry", err,
				slog.String("reference_number", req.ReferenceNumber))
		}
	}()

	doc, err := s.installments.GetByReferenceNumber(ctx, req.ReferenceNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInstallmentNotFound
		}
		return nil, err
	}
	inst, err := installmentFromDoc(doc)
	if err != nil {
		return nil, err
	}

	loanDoc, err := s.loans.GetByLoanID(ctx, inst.LoanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	proposedPenalty := decimal.Zero
	if s.policy.CollectPendingPenalty && inst.PendingPenalty {
		pending, err := s.endorsements.GetPendingByReference(ctx, req.ReferenceNumber)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		if pending != nil {
			e, err := endorsementFromDoc(pending)
			if err != nil {
				return nil, err
			}
			proposedPenalty = e.PenaltyAmount
		}
	}

	now := s.now()
	updated, alloc, err := ApplyPayment(inst, req.Amount, proposedPenalty, now, s.policy.Thresholds)
	if err != nil {
		logger.CtxWarn(ctx, "Payment rejected",
			slog.String("reference_number", req.ReferenceNumber),
			slog.String("reason", err.Error()))
		return nil, err
	}
	updated.Mode = req.Mode
	updated.Collector = req.Collector
	updated.CollectorID = req.CollectorID

	payment := Payment{
		ReferenceNumber: inst.ReferenceNumber,
		LoanID:          inst.LoanID,
		BorrowerID:      loanDoc.BorrowerID,
		Amount:          alloc.Applied,
		DatePaid:        now,
		Mode:            req.Mode,
		Collector:       req.Collector,
		CollectorID:     req.CollectorID,
	}
	receipt := EmitReceipt(uuid.New().String(), payment)

	var nextRow *Installment
	if updated.OpenTerm && updated.Settled() && updated.LoanBalance.IsPositive() {
		rate, err := decimal.NewFromString(loanDoc.MonthlyRate)
		if err != nil {
			return nil, err
		}
		row, err := ExtendSchedule(updated, rate, loanDoc.DisbursementDate)
		if err != nil {
			return nil, err
		}
		nextRow = &row
	}

	if _, err := s.txn.RunInTransaction(ctx, func(sc context.Context) (interface{}, error) {
		if err := s.installments.Update(sc, installmentToDoc(&updated)); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrVersionConflict
			}
			return nil, err
		}
		if err := s.receipts.CreateReceipt(sc, receiptToDoc(&receipt)); err != nil {
			return nil, err
		}
		if nextRow != nil {
			if err := s.insertRows(sc, []Installment{*nextRow}); err != nil {
				return nil, err
			}
		}
		return nil, s.loans.UpdateLoanBalance(sc, inst.LoanID, updated.LoanBalance.StringFixed(2))
	}); err != nil {
		logger.CtxError(ctx, log_messages.ErrorApplyingPayment, err,
			slog.String("reference_number", req.ReferenceNumber))
		return nil, err
	}

	s.invalidateSnapshot(ctx, inst.LoanID)
	s.publishReceiptNotification(ctx, &receipt, &updated)

	logger.CtxInfo(ctx, "Payment committed",
		slog.String("reference_number", inst.ReferenceNumber),
		slog.String("receipt_number", receipt.ReceiptNumber),
		slog.String("applied", alloc.Applied.StringFixed(2)),
		slog.Bool("clamped", alloc.Clamped))

	result := &PaymentResult{Installment: updated, Receipt: receipt, Allocation: alloc}
	if alloc.Clamped {
		return result, ErrOverpaymentClamped
	}
	return result, nil
}

// EndorsePenalty opens a penalty proposal on a late installment.
func (s *Service) EndorsePenalty(ctx context.Context, referenceNumber, reason, endorsedBy string) (*PenaltyEndorsement, error) {
	unlock := s.locks.lock(referenceNumber)
	defer unlock()

	doc, err := s.installments.GetByReferenceNumber(ctx, referenceNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInstallmentNotFound
		}
		return nil, err
	}
	inst, err := installmentFromDoc(doc)
	if err != nil {
		return nil, err
	}

	if inst.PendingPenalty {
		return nil, ErrPenaltyAlreadyPending
	}
	if _, err := s.endorsements.GetPendingByReference(ctx, referenceNumber); err == nil {
		return nil, ErrPenaltyAlreadyPending
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	now := s.now()
	currentStatus := DeriveStatus(inst.DueDate, inst.PaidAmount, inst.Payable(),
		now, false, s.policy.Thresholds)

	endorsement, err := NewEndorsement(inst, currentStatus, reason, endorsedBy, now)
	if err != nil {
		logger.CtxWarn(ctx, "Penalty endorsement rejected",
			slog.String("reference_number", referenceNumber),
			slog.String("status", string(currentStatus)))
		return nil, err
	}

	inst.PendingPenalty = true
	Restatus(&inst, now, s.policy.Thresholds)

	if _, err := s.txn.RunInTransaction(ctx, func(sc context.Context) (interface{}, error) {
		if err := s.endorsements.CreateEndorsement(sc, endorsementToDoc(&endorsement)); err != nil {
			return nil, err
		}
		if err := s.installments.Update(sc, installmentToDoc(&inst)); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrVersionConflict
			}
			return nil, err
		}
		return nil, nil
	}); err != nil {
		return nil, err
	}

	s.invalidateSnapshot(ctx, inst.LoanID)

	logger.CtxInfo(ctx, "Penalty endorsed",
		slog.String("reference_number", referenceNumber),
		slog.String("endorsement_id", endorsement.ID),
		slog.String("penalty_amount", endorsement.PenaltyAmount.StringFixed(2)))
	return &endorsement, nil
}

// DecideEndorsement applies a supervisor's approve or reject decision.
// Approval merges the frozen penalty into the installment's payable;
// rejection just clears the pending flag. Either way the decision is final.
func (s *Service) DecideEndorsement(ctx context.Context, endorsementID, decision, remarks, decidedBy string) (*PenaltyEndorsement, error) {
	doc, err := s.endorsements.GetByEndorsementID(ctx, endorsementID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEndorsementNotFound
		}
		return nil, err
	}
	endorsement, err := endorsementFromDoc(doc)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(endorsement.ReferenceNumber)
	defer unlock()

	now := s.now()
	if err := endorsement.Resolve(decision, remarks, decidedBy, now); err != nil {
		return nil, err
	}

	instDoc, err := s.installments.GetByReferenceNumber(ctx, endorsement.ReferenceNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInstallmentNotFound
		}
		return nil, err
	}
	inst, err := installmentFromDoc(instDoc)
	if err != nil {
		return nil, err
	}

	inst.PendingPenalty = false
	balanceBefore := inst.LoanBalance
	if endorsement.Status == consts.EndorsementApproved {
		inst.PenaltyAmount = inst.PenaltyAmount.Add(endorsement.PenaltyAmount)
	} else {
		// Money already collected against the proposal moves to the
		// interest and principal buckets now that no penalty is owed.
		inst = ReallocateRejectedPenalty(inst)
	}
	Restatus(&inst, now, s.policy.Thresholds)
	inst.RunningBalance = inst.LoanBalance.Add(inst.PeriodBalance())

	if _, err := s.txn.RunInTransaction(ctx, func(sc context.Context) (interface{}, error) {
		if err := s.endorsements.UpdateEndorsement(sc, endorsementToDoc(&endorsement)); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrEndorsementAlreadyResolved
			}
			return nil, err
		}
		if err := s.installments.Update(sc, installmentToDoc(&inst)); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrVersionConflict
			}
			return nil, err
		}
		if !inst.LoanBalance.Equal(balanceBefore) {
			return nil, s.loans.UpdateLoanBalance(sc, inst.LoanID, inst.LoanBalance.StringFixed(2))
		}
		return nil, nil
	}); err != nil {
		logger.CtxError(ctx, log_messages.ErrorResolvingEndorsement, err,
			slog.String("endorsement_id", endorsementID))
		return nil, err
	}

	s.invalidateSnapshot(ctx, inst.LoanID)

	logger.CtxInfo(ctx, "Penalty endorsement resolved",
		slog.String("endorsement_id", endorsementID),
		slog.String("decision", string(endorsement.Status)))
	return &endorsement, nil
}

// ListCollections returns a loan's full collection sheet with freshly
// derived statuses, served from the snapshot cache when warm.
func (s *Service) ListCollections(ctx context.Context, loanID string) ([]Installment, error) {
	if cached, err := s.cache.GetStatusSnapshot(ctx, loanID); err == nil && len(cached) > 0 {
		var rows []Installment
		if err := json.Unmarshal(cached, &rows); err == nil {
			logger.CtxDebug(ctx, "Status snapshot cache hit", slog.String("loan_id", loanID))
			return rows, nil
		}
	}

	docs, err := s.installments.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrLoanNotFound
	}

	now := s.now()
	rows := make([]Installment, 0, len(docs))
	for i := range docs {
		inst, err := installmentFromDoc(&docs[i])
		if err != nil {
			return nil, err
		}
		Restatus(&inst, now, s.policy.Thresholds)
		rows = append(rows, inst)
	}

	if data, err := json.Marshal(rows); err == nil {
		if err := s.cache.SaveStatusSnapshot(ctx, loanID, data, s.policy.StatusCacheTTL); err != nil {
			logger.CtxWarn(ctx, "Failed to cache status snapshot",
				slog.String("loan_id", loanID))
		}
	}

	return rows, nil
}

// GetCollection returns one installment with its status derived now.
func (s *Service) GetCollection(ctx context.Context, referenceNumber string) (*Installment, error) {
	doc, err := s.installments.GetByReferenceNumber(ctx, referenceNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInstallmentNotFound
		}
		return nil, err
	}
	inst, err := installmentFromDoc(doc)
	if err != nil {
		return nil, err
	}
	Restatus(&inst, s.now(), s.policy.Thresholds)
	return &inst, nil
}

// AddNote attaches a free-text collection note to an installment.
func (s *Service) AddNote(ctx context.Context, referenceNumber, note string) error {
	if err := s.installments.SetNote(ctx, referenceNumber, note); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInstallmentNotFound
		}
		return err
	}
	return nil
}

func (s *Service) insertRows(ctx context.Context, rows []Installment) error {
	return s.installments.InsertSchedule(ctx, rowsToDocs(rows))
}

func (s *Service) invalidateSnapshot(ctx context.Context, loanID string) {
	if err := s.cache.DeleteStatusSnapshot(ctx, loanID); err != nil {
		logger.CtxWarn(ctx, "Failed to invalidate status cache",
			slog.String("loan_id", loanID))
	}
}

func (s *Service) publishReceiptNotification(ctx context.Context, receipt *Receipt, inst *Installment) {
	msg := models.ReceiptNotificationPubSubMsgFormat{
		Event:           consts.ReceiptEventPayment,
		Channel:         consts.ReceiptChannel,
		ReceiptNumber:   receipt.ReceiptNumber,
		ReferenceNumber: receipt.ReferenceNumber,
		LoanID:          receipt.LoanID,
		BorrowerID:      receipt.BorrowerID,
		Amount:          receipt.Amount.StringFixed(2),
		PenaltyPaid:     inst.PenaltyPaid.StringFixed(2),
		InterestPaid:    inst.InterestPaid.StringFixed(2),
		PrincipalPaid:   inst.PrincipalPaid.StringFixed(2),
		LoanBalance:     inst.LoanBalance.StringFixed(2),
		Status:          string(inst.Status),
		Mode:            receipt.Mode,
		DatePaid:        receipt.DatePaid,
	}

	if _, err := s.publisher.PublishMessage(ctx, msg); err != nil {
		// The payment already committed; a lost notification is logged,
		// never rolled back.
		logger.CtxError(ctx, "Failed to publish receipt notification", err,
			slog.String("receipt_number", receipt.ReceiptNumber))
	}
}
