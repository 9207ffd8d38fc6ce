package redemption

import (
	"context"
	"sync"
	"testing"
	"time"

	domainErrors "github.com/inanin-user/crm-system-sub001/internal/errors"
	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories"
	"github.com/inanin-user/crm-system-sub001/internal/services/qrcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger mimics the conditional debit semantics of the real
// repository: the quota guard and the balance change are applied under
// one lock, and transactions only land when the whole callback succeeds.
type fakeLedger struct {
	mu           sync.Mutex
	quotas       map[uint]int
	transactions []models.Transaction
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{quotas: make(map[uint]int)}
}

func (l *fakeLedger) ExecuteInTransaction(fn func(tx repositories.LedgerRepository) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	staged := &stagedLedger{ledger: l}
	if err := fn(staged); err != nil {
		return err
	}
	l.transactions = append(l.transactions, staged.pending...)
	for id, quota := range staged.quotas {
		l.quotas[id] = quota
	}
	return nil
}

func (l *fakeLedger) DebitTickets(ctx context.Context, memberID uint, amount int) (repositories.QuotaChange, error) {
	panic("debit outside transaction")
}

func (l *fakeLedger) CreateTransaction(txn *models.Transaction) error {
	panic("create outside transaction")
}

func (l *fakeLedger) ListByMember(ctx context.Context, memberID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var out []models.Transaction
	for _, txn := range l.transactions {
		if txn.MemberID == memberID {
			out = append(out, txn)
		}
	}
	return out, int64(len(out)), nil
}

func (l *fakeLedger) ListAll(ctx context.Context, limit, offset int) ([]models.Transaction, int64, error) {
	return l.transactions, int64(len(l.transactions)), nil
}

// stagedLedger buffers writes so a failing callback leaves no trace.
type stagedLedger struct {
	ledger  *fakeLedger
	quotas  map[uint]int
	pending []models.Transaction
}

func (s *stagedLedger) ExecuteInTransaction(fn func(tx repositories.LedgerRepository) error) error {
	return fn(s)
}

func (s *stagedLedger) DebitTickets(ctx context.Context, memberID uint, amount int) (repositories.QuotaChange, error) {
	quota, ok := s.ledger.quotas[memberID]
	if !ok {
		return repositories.QuotaChange{}, repositories.ErrAccountNotFound
	}
	if quota < amount {
		return repositories.QuotaChange{}, repositories.ErrInsufficientTickets
	}
	if s.quotas == nil {
		s.quotas = make(map[uint]int)
	}
	s.quotas[memberID] = quota - amount
	return repositories.QuotaChange{Previous: quota, New: quota - amount}, nil
}

func (s *stagedLedger) CreateTransaction(txn *models.Transaction) error {
	s.pending = append(s.pending, *txn)
	return nil
}

func (s *stagedLedger) ListByMember(ctx context.Context, memberID uint, limit, offset int) ([]models.Transaction, int64, error) {
	return nil, 0, nil
}

func (s *stagedLedger) ListAll(ctx context.Context, limit, offset int) ([]models.Transaction, int64, error) {
	return nil, 0, nil
}

type fakeResolver struct {
	result *qrcode.ScanResult
	err    error
}

func (r *fakeResolver) ResolveScan(ctx context.Context, rawPayload string) (*qrcode.ScanResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

func shakeResult() *qrcode.ScanResult {
	return &qrcode.ScanResult{
		Number:             "0007",
		RegionCode:         models.RegionWanChai,
		RegionName:         "灣仔",
		ProductDescription: models.ProductShake,
		Price:              50,
	}
}

func TestRedeemDebitsAndRecords(t *testing.T) {
	ledger := newFakeLedger()
	ledger.quotas[1] = 5
	svc := NewService(ledger, &fakeResolver{result: shakeResult()}, nil)

	txn, err := svc.Redeem(context.Background(), 1, "Chan Tai Man", `{"number":"0007"}`)
	require.NoError(t, err)

	assert.NotEmpty(t, txn.Reference)
	assert.Equal(t, uint(1), txn.MemberID)
	assert.Equal(t, "Chan Tai Man", txn.MemberName)
	assert.Equal(t, "0007", txn.QRCodeNumber)
	assert.Equal(t, models.ProductShake, txn.ProductDescription)
	assert.Equal(t, models.RegionWanChai, txn.Region)
	assert.Equal(t, TicketsPerRedemption, txn.QuotaUsed)
	assert.Equal(t, 5, txn.PreviousQuota)
	assert.Equal(t, 4, txn.NewQuota)
	assert.Equal(t, txn.PreviousQuota-txn.QuotaUsed, txn.NewQuota)

	assert.Equal(t, 4, ledger.quotas[1])
	require.Len(t, ledger.transactions, 1)
}

func TestRedeemInsufficientQuotaWritesNothing(t *testing.T) {
	ledger := newFakeLedger()
	ledger.quotas[1] = 0
	svc := NewService(ledger, &fakeResolver{result: shakeResult()}, nil)

	_, err := svc.Redeem(context.Background(), 1, "Chan Tai Man", `{"number":"0007"}`)
	assert.Equal(t, domainErrors.ErrInsufficientQuota, err)

	assert.Equal(t, 0, ledger.quotas[1])
	assert.Empty(t, ledger.transactions)
}

func TestRedeemUnknownMember(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewService(ledger, &fakeResolver{result: shakeResult()}, nil)

	_, err := svc.Redeem(context.Background(), 99, "Ghost", `{"number":"0007"}`)
	assert.Equal(t, domainErrors.ErrMemberNotFound, err)
	assert.Empty(t, ledger.transactions)
}

func TestRedeemPropagatesScanErrors(t *testing.T) {
	ledger := newFakeLedger()
	ledger.quotas[1] = 5
	svc := NewService(ledger, &fakeResolver{err: domainErrors.ErrQRCodeNotFound}, nil)

	_, err := svc.Redeem(context.Background(), 1, "Chan Tai Man", `{"number":"0042"}`)
	assert.Equal(t, domainErrors.ErrQRCodeNotFound, err)

	assert.Equal(t, 5, ledger.quotas[1])
	assert.Empty(t, ledger.transactions)
}

// A member holding one ticket who scans twice at once gets exactly one
// redemption through.
func TestRedeemConcurrentLastTicket(t *testing.T) {
	ledger := newFakeLedger()
	ledger.quotas[1] = 1
	svc := NewService(ledger, &fakeResolver{result: shakeResult()}, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Redeem(context.Background(), 1, "Chan Tai Man", `{"number":"0007"}`)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, domainErrors.ErrInsufficientQuota, err)
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 0, ledger.quotas[1])
	assert.Len(t, ledger.transactions, 1)
}

func TestRedeemStampsTransactionDate(t *testing.T) {
	ledger := newFakeLedger()
	ledger.quotas[1] = 2
	svc := NewService(ledger, &fakeResolver{result: shakeResult()}, nil).(*service)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.nowFn = func() time.Time { return fixed }

	txn, err := svc.Redeem(context.Background(), 1, "Chan Tai Man", `{"number":"0007"}`)
	require.NoError(t, err)
	assert.Equal(t, fixed, txn.TransactionDate)
}
