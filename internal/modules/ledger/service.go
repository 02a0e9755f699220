package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop-backend/internal/metrics"
	"github.com/planloop/planloop-backend/internal/resource"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound              = errors.New("money tracker entry not found")
	ErrInvalidAmount         = errors.New("amount must be a positive number")
	ErrPaymentExceedsBalance = errors.New("payment exceeds remaining balance")
	ErrConcurrentUpdate      = errors.New("entry was modified concurrently, retry the payment")
)

// paymentRetries bounds the compare-and-swap loop in ApplyPayment.
const paymentRetries = 3

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(userID string, req CreateRequest) (*Entry, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", resource.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	entry := Entry{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Gateway:         strings.TrimSpace(req.Gateway),
		EntryDate:       req.Date,
		OriginalAmount:  req.Amount,
		RemainingAmount: req.Amount,
		Payments:        marshalPayments(nil),
		DateAdded:       time.Now().UTC(),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) Get(userID string, id uuid.UUID) (*Entry, error) {
	var entry Entry
	err := s.db.Where("user_id = ?", userID).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) List(userID, search string) ([]Entry, error) {
	q := s.db.Where("user_id = ?", userID)
	if search != "" {
		q = q.Scopes(resource.SearchScope([]string{"name"}, search))
	}

	var entries []Entry
	if err := q.Order("date_added DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ApplyPayment appends a payment and decrements the remaining balance. The
// write is a compare-and-swap on remaining_amount, so two concurrent
// payments can never both pass the balance check and both commit.
func (s *Service) ApplyPayment(userID string, id uuid.UUID, amount decimal.Decimal, date string) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	for attempt := 0; attempt < paymentRetries; attempt++ {
		entry, err := s.Get(userID, id)
		if err != nil {
			return nil, err
		}

		if amount.GreaterThan(entry.RemainingAmount) {
			return nil, fmt.Errorf("%w: remaining balance is %s",
				ErrPaymentExceedsBalance, entry.RemainingAmount.StringFixed(2))
		}

		// Rounding drift past zero is absorbed, not surfaced.
		remaining := entry.RemainingAmount.Sub(amount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		history, err := entry.PaymentList()
		if err != nil {
			return nil, err
		}
		history = append(history, Payment{Date: date, Amount: amount})

		res := s.db.Model(&Entry{}).
			Where("id = ? AND remaining_amount = ?", entry.ID, entry.RemainingAmount).
			Updates(map[string]interface{}{
				"remaining_amount": remaining,
				"payments":         marshalPayments(history),
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			entry.RemainingAmount = remaining
			entry.Payments = marshalPayments(history)
			metrics.LedgerPayments.Inc()
			return entry, nil
		}
		// Lost the swap to a concurrent writer, retry against fresh state.
	}

	return nil, ErrConcurrentUpdate
}

// Update partially replaces the fields present in the patch. Changing the
// nominal amount also overwrites original_amount; the remaining balance is
// never rescaled unless the patch supplies it explicitly.
func (s *Service) Update(userID string, id uuid.UUID, patch map[string]interface{}) (*Entry, error) {
	entry, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if v, ok := patch["name"]; ok {
		name, _ := v.(string)
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", resource.ErrValidation)
		}
		entry.Name = name
	}
	if v, ok := patch["gateway"]; ok {
		gw, _ := v.(string)
		entry.Gateway = strings.TrimSpace(gw)
	}
	if v, ok := patch["date"]; ok {
		d, _ := v.(string)
		entry.EntryDate = d
	}
	if v, ok := patch["amount"]; ok {
		amt, ok := parseAmount(v)
		if !ok || !amt.IsPositive() {
			return nil, ErrInvalidAmount
		}
		entry.OriginalAmount = amt
	}
	if v, ok := patch["originalAmount"]; ok {
		amt, ok := parseAmount(v)
		if !ok || !amt.IsPositive() {
			return nil, ErrInvalidAmount
		}
		entry.OriginalAmount = amt
	}
	if v, ok := patch["remainingAmount"]; ok {
		amt, ok := parseAmount(v)
		if !ok || amt.IsNegative() {
			return nil, ErrInvalidAmount
		}
		entry.RemainingAmount = amt
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Delete(userID string, id uuid.UUID) error {
	res := s.db.Where("user_id = ? AND id = ?", userID, id).Delete(&Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkImport inserts entries best-effort. Rows lacking a name or a parsable
// amount are silently dropped; the remaining balance defaults to the parsed
// amount when the row does not carry one.
func (s *Service) BulkImport(userID string, entries []map[string]interface{}) (int, error) {
	inserted := 0
	for _, raw := range entries {
		name, _ := raw["name"].(string)
		name = strings.TrimSpace(name)

		amount, ok := parseAmount(raw["amount"])
		if !ok {
			amount, ok = parseAmount(raw["originalAmount"])
		}
		if name == "" || !ok {
			continue
		}

		remaining, rok := parseAmount(raw["remainingAmount"])
		if !rok {
			remaining = amount
		}

		gateway, _ := raw["gateway"].(string)
		date, _ := raw["date"].(string)

		entry := Entry{
			ID:              uuid.New(),
			UserID:          userID,
			Name:            name,
			Gateway:         strings.TrimSpace(gateway),
			EntryDate:       date,
			OriginalAmount:  amount,
			RemainingAmount: remaining,
			Payments:        marshalPayments(nil),
			DateAdded:       time.Now().UTC(),
		}
		if err := s.db.Create(&entry).Error; err != nil {
			slog.Warn("bulk import row failed", "module", "money-tracker", "error", err)
			continue
		}
		inserted++
	}

	metrics.BulkImportedRows.WithLabelValues("money-tracker").Add(float64(inserted))
	return inserted, nil
}

// parseAmount accepts the numeric shapes a JSON body can carry.
func parseAmount(v interface{}) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case decimal.Decimal:
		return n, true
	default:
		return decimal.Zero, false
	}
}
