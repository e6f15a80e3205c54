package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"spendlog/internal/core"
	slotfile "spendlog/internal/slot/file"
	"spendlog/internal/slot/memory"
)

// MockSlot is a mock implementation of slot.Slot for testing
type MockSlot struct {
	mock.Mock
}

func (m *MockSlot) Load(ctx context.Context) ([]core.ExpenseRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]core.ExpenseRecord), args.Error(1)
}

func (m *MockSlot) Save(ctx context.Context, records []core.ExpenseRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func newMemoryStore(t *testing.T) *Store {
	t.Helper()
	return New(context.Background(), memory.New())
}

func TestNewRehydratesFromSlot(t *testing.T) {
	seeded, err := memory.Seed([]core.ExpenseRecord{
		{ID: "2", Date: core.NewDay(2024, 1, 2), Amount: core.Money{Cents: 200}, Category: "Food"},
		{ID: "1", Date: core.NewDay(2024, 1, 1), Amount: core.Money{Cents: 100}, Category: core.DefaultCategory},
	})
	require.NoError(t, err)

	st := New(context.Background(), seeded)
	records := st.List()
	require.Len(t, records, 2)
	assert.Equal(t, "2", records[0].ID)
	assert.Equal(t, "1", records[1].ID)
}

func TestNewIgnoresCorruptedSlotPayload(t *testing.T) {
	// A payload that parses as JSON but carries records violating the
	// model (empty id, negative amount) must rehydrate as empty, never as
	// authoritative state.
	path := filepath.Join(t.TempDir(), "expenses.json")
	payload := `[{"id":"","date":"2024-01-01","amount":-5,"category":"x","note":""}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	s, err := slotfile.New(path)
	require.NoError(t, err)

	st := New(context.Background(), s)
	assert.Equal(t, 0, st.Len())
}

func TestNewWithFailingLoadStartsEmpty(t *testing.T) {
	mockSlot := new(MockSlot)
	mockSlot.On("Load", mock.Anything).Return(nil, errors.New("disk gone"))

	st := New(context.Background(), mockSlot)
	assert.Equal(t, 0, st.Len())
	mockSlot.AssertExpectations(t)
}

func TestAddValid(t *testing.T) {
	st := newMemoryStore(t)
	before := st.Len()

	rec, err := st.Add(context.Background(), Candidate{
		Date:     "2024-01-01",
		Amount:   "12.345",
		Category: "",
		Note:     "  taxi home  ",
	})
	require.NoError(t, err)

	// Scenario from the data model: amount rounds to 12.35,
	// blank category defaults to General.
	assert.Equal(t, int64(1235), rec.Amount.Cents)
	assert.Equal(t, core.DefaultCategory, rec.Category)
	assert.Equal(t, "taxi home", rec.Note)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, before+1, st.Len())
}

func TestAddInvalidAmountLeavesStoreUnchanged(t *testing.T) {
	st := newMemoryStore(t)

	for _, amount := range []string{"0", "-5", "abc", "", "1.2.3"} {
		_, err := st.Add(context.Background(), Candidate{
			Date:   "2024-01-01",
			Amount: amount,
		})
		require.Error(t, err, "amount %q", amount)
		assert.ErrorIs(t, err, core.ErrInvalidAmount, "amount %q", amount)
	}
	assert.Equal(t, 0, st.Len())
}

func TestAddInvalidDate(t *testing.T) {
	st := newMemoryStore(t)

	_, err := st.Add(context.Background(), Candidate{Date: "01/02/2024", Amount: "5"})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidDate)
	assert.Equal(t, 0, st.Len())
}

func TestNewestFirstOrdering(t *testing.T) {
	st := newMemoryStore(t)
	ctx := context.Background()

	first, err := st.Add(ctx, Candidate{Date: "2024-01-01", Amount: "1"})
	require.NoError(t, err)
	second, err := st.Add(ctx, Candidate{Date: "2024-01-01", Amount: "2"})
	require.NoError(t, err)

	records := st.List()
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestUniqueIDs(t *testing.T) {
	st := newMemoryStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rec, err := st.Add(ctx, Candidate{Date: "2024-01-01", Amount: "1.00"})
		require.NoError(t, err)
		assert.False(t, seen[rec.ID], "duplicate id %s", rec.ID)
		seen[rec.ID] = true
	}
}

func TestDelete(t *testing.T) {
	st := newMemoryStore(t)
	ctx := context.Background()

	keep, err := st.Add(ctx, Candidate{Date: "2024-01-01", Amount: "1"})
	require.NoError(t, err)
	drop, err := st.Add(ctx, Candidate{Date: "2024-01-01", Amount: "2"})
	require.NoError(t, err)

	assert.True(t, st.Delete(ctx, drop.ID))
	records := st.List()
	require.Len(t, records, 1)
	assert.Equal(t, keep.ID, records[0].ID)

	// Absent id is a no-op.
	assert.False(t, st.Delete(ctx, "no-such-id"))
	assert.Equal(t, 1, st.Len())
}

func TestSaveTriggeredOnEveryMutation(t *testing.T) {
	mockSlot := new(MockSlot)
	mockSlot.On("Load", mock.Anything).Return([]core.ExpenseRecord{}, nil)
	mockSlot.On("Save", mock.Anything, mock.Anything).Return(nil)

	st := New(context.Background(), mockSlot)
	ctx := context.Background()

	rec, err := st.Add(ctx, Candidate{Date: "2024-01-01", Amount: "3.50"})
	require.NoError(t, err)
	st.Delete(ctx, rec.ID)

	mockSlot.AssertNumberOfCalls(t, "Save", 2)
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	mockSlot := new(MockSlot)
	mockSlot.On("Load", mock.Anything).Return([]core.ExpenseRecord{}, nil)
	mockSlot.On("Save", mock.Anything, mock.Anything).Return(errors.New("quota exceeded"))

	st := New(context.Background(), mockSlot)

	rec, err := st.Add(context.Background(), Candidate{Date: "2024-01-01", Amount: "9.99"})
	require.NoError(t, err)

	// In-memory state stays authoritative for the session.
	records := st.List()
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)
}

func TestSubscribeReceivesEvents(t *testing.T) {
	st := newMemoryStore(t)
	ctx := context.Background()

	var events []Event
	st.Subscribe(func(e Event) { events = append(events, e) })

	rec, err := st.Add(ctx, Candidate{Date: "2024-01-01", Amount: "4.20", Category: "Food"})
	require.NoError(t, err)
	st.Delete(ctx, rec.ID)
	st.Delete(ctx, "missing") // no event for a no-op

	require.Len(t, events, 2)
	assert.Equal(t, RecordAdded, events[0].Kind)
	assert.Equal(t, rec.ID, events[0].Record.ID)
	assert.Equal(t, RecordDeleted, events[1].Kind)
	assert.Equal(t, rec.ID, events[1].Record.ID)
}

func TestListReturnsCopy(t *testing.T) {
	st := newMemoryStore(t)
	_, err := st.Add(context.Background(), Candidate{Date: "2024-01-01", Amount: "1"})
	require.NoError(t, err)

	records := st.List()
	records[0].Category = "tampered"

	assert.NotEqual(t, "tampered", st.List()[0].Category)
}
