package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jojo-brz/saas-barbearia/internal/models"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

func wc(s string) schedule.WallClock {
	w, err := schedule.ParseWallClock(s)
	if err != nil {
		panic(err)
	}
	return w
}

func wcp(s string) *schedule.WallClock {
	w := wc(s)
	return &w
}

// mondayDate falls on a Monday; the test schedule only opens Mondays.
const mondayDate = "2026-09-07"

func testWeekly() schedule.Weekly {
	return schedule.Weekly{
		time.Monday: {
			Active:     true,
			Open:       wc("09:00"),
			Close:      wc("18:00"),
			BreakStart: wcp("12:00"),
			BreakEnd:   wcp("13:00"),
		},
	}
}

func newTestController() (*Controller, *memStore) {
	store := newMemStore()
	return NewController(store, &fixedSchedule{weekly: testWeekly()}), store
}

func admitAt(start string, durationMin int) AdmitInput {
	return AdmitInput{
		ShopID:        1,
		BarberID:      1,
		ServiceID:     1,
		Date:          mondayDate,
		Start:         wc(start),
		DurationMin:   durationMin,
		CustomerName:  "Carlos",
		CustomerPhone: "11999990000",
	}
}

func TestAdmitHappyPath(t *testing.T) {
	ctrl, store := newTestController()

	b, err := ctrl.Admit(context.Background(), admitAt("10:00", 60))
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.NotEmpty(t, b.PublicID)
	assert.Equal(t, models.BookingStatusScheduled, b.Status)
	assert.Equal(t, 600, b.StartMin)
	assert.Equal(t, 60, b.DurationMin)

	active, err := store.ListActive(context.Background(), 1, mondayDate)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestAdmitValidation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*AdmitInput)
		wantReason string
	}{
		{
			name:       "non positive duration",
			mutate:     func(in *AdmitInput) { in.DurationMin = 0 },
			wantReason: "non_positive_duration",
		},
		{
			name:       "missing customer name",
			mutate:     func(in *AdmitInput) { in.CustomerName = "   " },
			wantReason: "missing_customer_name",
		},
		{
			name:       "missing customer phone",
			mutate:     func(in *AdmitInput) { in.CustomerPhone = "" },
			wantReason: "missing_customer_phone",
		},
		{
			name:       "invalid start time",
			mutate:     func(in *AdmitInput) { in.Start = schedule.WallClock(2000) },
			wantReason: "invalid_start_time",
		},
		{
			name:       "malformed date",
			mutate:     func(in *AdmitInput) { in.Date = "07/09/2026" },
			wantReason: "invalid_date",
		},
		{
			name:       "closed day",
			mutate:     func(in *AdmitInput) { in.Date = "2026-09-08" }, // Tuesday
			wantReason: "closed_day",
		},
		{
			name:       "starts before opening",
			mutate:     func(in *AdmitInput) { in.Start = wc("08:30") },
			wantReason: "outside_business_hours",
		},
		{
			name:       "ends after closing",
			mutate:     func(in *AdmitInput) { in.Start = wc("17:30") },
			wantReason: "outside_business_hours",
		},
		{
			name:       "lands inside the break",
			mutate:     func(in *AdmitInput) { in.Start = wc("11:30") },
			wantReason: "overlaps_break",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, store := newTestController()
			in := admitAt("10:00", 60)
			tt.mutate(&in)

			_, err := ctrl.Admit(context.Background(), in)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantReason, verr.Reason)

			active, _ := store.ListActive(context.Background(), 1, mondayDate)
			assert.Empty(t, active, "a rejected admission must not persist anything")
		})
	}
}

func TestAdmitBreakBoundaries(t *testing.T) {
	ctrl, _ := newTestController()

	// Ending exactly at break start and starting exactly at break end
	// are both legal under half-open intervals.
	_, err := ctrl.Admit(context.Background(), admitAt("11:00", 60))
	assert.NoError(t, err)

	_, err = ctrl.Admit(context.Background(), admitAt("13:00", 60))
	assert.NoError(t, err)
}

func TestAdmitConflict(t *testing.T) {
	ctrl, _ := newTestController()
	ctx := context.Background()

	first, err := ctrl.Admit(ctx, admitAt("10:00", 60))
	require.NoError(t, err)

	tests := []struct {
		name  string
		start string
	}{
		{"identical interval", "10:00"},
		{"straddles the start", "09:30"},
		{"straddles the end", "10:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ctrl.Admit(ctx, admitAt(tt.start, 60))

			var conflict *ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, first.PublicID, conflict.ConflictingBookingID)
		})
	}
}

func TestAdmitTouchingIntervals(t *testing.T) {
	ctrl, _ := newTestController()
	ctx := context.Background()

	_, err := ctrl.Admit(ctx, admitAt("10:00", 60))
	require.NoError(t, err)

	// Back to back with the existing booking on both sides.
	_, err = ctrl.Admit(ctx, admitAt("09:00", 60))
	assert.NoError(t, err)
	_, err = ctrl.Admit(ctx, admitAt("11:00", 60))
	assert.NoError(t, err)
}

func TestAdmitOtherBarberUnaffected(t *testing.T) {
	ctrl, _ := newTestController()
	ctx := context.Background()

	_, err := ctrl.Admit(ctx, admitAt("10:00", 60))
	require.NoError(t, err)

	other := admitAt("10:00", 60)
	other.BarberID = 2
	_, err = ctrl.Admit(ctx, other)
	assert.NoError(t, err, "barbers do not share a calendar")
}

func TestCancelFreesSlot(t *testing.T) {
	ctrl, _ := newTestController()
	ctx := context.Background()

	b, err := ctrl.Admit(ctx, admitAt("10:00", 60))
	require.NoError(t, err)

	_, err = ctrl.Admit(ctx, admitAt("10:00", 60))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	cancelled, err := ctrl.Cancel(ctx, b.PublicID)
	require.NoError(t, err)
	assert.Equal(t, b.PublicID, cancelled.PublicID)

	// The freed interval is admittable again immediately.
	_, err = ctrl.Admit(ctx, admitAt("10:00", 60))
	assert.NoError(t, err)
}

func TestCancelErrors(t *testing.T) {
	ctrl, _ := newTestController()
	ctx := context.Background()

	_, err := ctrl.Cancel(ctx, "no-such-id")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "booking", notFound.Resource)

	b, err := ctrl.Admit(ctx, admitAt("10:00", 60))
	require.NoError(t, err)
	_, err = ctrl.Cancel(ctx, b.PublicID)
	require.NoError(t, err)

	// A second cancel finds the booking already out of scheduled state.
	_, err = ctrl.Cancel(ctx, b.PublicID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid_state", verr.Reason)
}

func TestAdmitConcurrentSameSlot(t *testing.T) {
	ctrl, store := newTestController()
	ctx := context.Background()

	const attempts = 32

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ctrl.Admit(ctx, admitAt("10:00", 60))
		}(i)
	}
	wg.Wait()

	var committed, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			committed++
		default:
			var conflict *ConflictError
			require.ErrorAs(t, err, &conflict)
			conflicted++
		}
	}

	assert.Equal(t, 1, committed, "exactly one admission may win the slot")
	assert.Equal(t, attempts-1, conflicted)

	active, err := store.ListActive(ctx, 1, mondayDate)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestAdmitConcurrentOverlappingIntervals(t *testing.T) {
	ctrl, store := newTestController()
	ctx := context.Background()

	// The candidates pairwise overlap, so at most one can land.
	starts := []string{"09:45", "10:00", "10:15"}

	var wg sync.WaitGroup
	errs := make([]error, len(starts))

	for i, start := range starts {
		wg.Add(1)
		go func(i int, start string) {
			defer wg.Done()
			_, errs[i] = ctrl.Admit(ctx, admitAt(start, 60))
		}(i, start)
	}
	wg.Wait()

	var committed int
	for _, err := range errs {
		if err == nil {
			committed++
		}
	}
	assert.Equal(t, 1, committed)

	active, err := store.ListActive(ctx, 1, mondayDate)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
