package ledger

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/planloop/planloop-backend/internal/resource"
	"github.com/planloop/planloop-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "alice"

func entryRows(id uuid.UUID, original, remaining, payments string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "gateway", "entry_date",
		"original_amount", "remaining_amount", "payments",
	}).AddRow(id.String(), testUser, "Bank", "", "2025-01-01", original, remaining, []byte(payments))
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	svc := NewService(db)

	_, err := svc.Create(testUser, CreateRequest{Name: "Bank", Amount: decimal.Zero})
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(testUser, CreateRequest{Name: "Bank", Amount: decimal.NewFromInt(-5)})
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(testUser, CreateRequest{Name: "  ", Amount: decimal.NewFromInt(10)})
	require.ErrorIs(t, err, resource.ErrValidation)
}

func TestCreateInitializesBalance(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewService(db)

	mock.ExpectExec(`INSERT INTO "money_tracker_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry, err := svc.Create(testUser, CreateRequest{Name: " Bank ", Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Equal(t, "Bank", entry.Name)
	assert.True(t, entry.OriginalAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, entry.RemainingAmount.Equal(decimal.NewFromInt(100)))

	list, err := entry.PaymentList()
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPaymentDecrementsBalance(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewService(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "money_tracker_entries" WHERE user_id = .*`).
		WillReturnRows(entryRows(id, "100.00", "100.00", "[]"))
	mock.ExpectExec(`UPDATE "money_tracker_entries" SET .* WHERE id = .* AND remaining_amount = .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry, err := svc.ApplyPayment(testUser, id, decimal.NewFromInt(40), "2025-02-01")
	require.NoError(t, err)
	assert.True(t, entry.RemainingAmount.Equal(decimal.NewFromInt(60)),
		"remaining = %s", entry.RemainingAmount)

	list, err := entry.PaymentList()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-02-01", list[0].Date)
	assert.True(t, list[0].Amount.Equal(decimal.NewFromInt(40)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPaymentSequence(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewService(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "money_tracker_entries"`).
		WillReturnRows(entryRows(id, "100.00", "100.00", "[]"))
	mock.ExpectExec(`UPDATE "money_tracker_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	first, err := svc.ApplyPayment(testUser, id, decimal.NewFromInt(30), "2025-02-01")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "money_tracker_entries"`).
		WillReturnRows(entryRows(id, "100.00", first.RemainingAmount.StringFixed(2), string(first.Payments)))
	mock.ExpectExec(`UPDATE "money_tracker_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	second, err := svc.ApplyPayment(testUser, id, decimal.NewFromInt(70), "2025-02-02")
	require.NoError(t, err)

	assert.True(t, second.RemainingAmount.IsZero(), "remaining = %s", second.RemainingAmount)
	list, err := second.PaymentList()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPaymentExceedsBalance(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewService(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "money_tracker_entries"`).
		WillReturnRows(entryRows(id, "100.00", "10.00", "[]"))

	_, err := svc.ApplyPayment(testUser, id, decimal.NewFromInt(25), "")
	require.ErrorIs(t, err, ErrPaymentExceedsBalance)
	assert.Contains(t, err.Error(), "10.00")

	// No update was attempted, so the stored entry is untouched.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPaymentInvalidAmount(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	svc := NewService(db)

	_, err := svc.ApplyPayment(testUser, uuid.New(), decimal.Zero, "")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestApplyPaymentNotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewService(db)

	mock.ExpectQuery(`SELECT \* FROM "money_tracker_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.ApplyPayment(testUser, uuid.New(), decimal.NewFromInt(5), "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApplyPaymentRetriesLostSwap(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewService(db)
	id := uuid.New()

	// Every swap loses to a concurrent writer.
	for i := 0; i < paymentRetries; i++ {
		mock.ExpectQuery(`SELECT \* FROM "money_tracker_entries"`).
			WillReturnRows(entryRows(id, "100.00", "100.00", "[]"))
		mock.ExpectExec(`UPDATE "money_tracker_entries"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	_, err := svc.ApplyPayment(testUser, id, decimal.NewFromInt(5), "")
	require.ErrorIs(t, err, ErrConcurrentUpdate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAmountOverwritesOriginalOnly(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewService(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "money_tracker_entries"`).
		WillReturnRows(entryRows(id, "100.00", "40.00", "[]"))
	mock.ExpectExec(`UPDATE "money_tracker_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry, err := svc.Update(testUser, id, map[string]interface{}{"amount": float64(250)})
	require.NoError(t, err)
	assert.True(t, entry.OriginalAmount.Equal(decimal.NewFromInt(250)))
	assert.True(t, entry.RemainingAmount.Equal(decimal.NewFromInt(40)),
		"remaining balance must not be rescaled")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkImportDropsInvalidRows(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	svc := NewService(db)

	mock.ExpectExec(`INSERT INTO "money_tracker_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "money_tracker_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	count, err := svc.BulkImport(testUser, []map[string]interface{}{
		{"name": "Bank", "amount": float64(100)},
		{"amount": float64(50)}, // no name, dropped
		{"name": "Friend", "originalAmount": "75.50"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want string
		ok   bool
	}{
		{"float", float64(12.5), "12.5", true},
		{"int", 7, "7", true},
		{"string", " 99.90 ", "99.90", true},
		{"garbage string", "a lot", "", false},
		{"nil", nil, "", false},
		{"bool", true, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseAmount(tc.in)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got.String())
			}
		})
	}
}
