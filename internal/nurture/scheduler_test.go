package nurture

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bouwofferte/quote-service/internal/channel"
	"github.com/bouwofferte/quote-service/internal/config"
	"github.com/bouwofferte/quote-service/internal/model"
	"github.com/bouwofferte/quote-service/internal/repository"
	"github.com/bouwofferte/quote-service/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type recordingSender struct {
	mu    sync.Mutex
	sends []channel.Message
	fail  bool
}

func (s *recordingSender) Send(_ context.Context, req *model.Request, msg channel.Message, _ []model.Channel) []model.DeliveryResult {
	s.mu.Lock()
	s.sends = append(s.sends, msg)
	s.mu.Unlock()

	res := model.DeliveryResult{Channel: model.ChannelEmail, Destination: req.EmailAddress(), At: time.Now()}
	if s.fail {
		res.Error = "provider status=500"
	} else {
		res.MessageID = "m-1"
	}
	return []model.DeliveryResult{res}
}

func nurtureConfig() config.NurtureConfig {
	return config.NurtureConfig{
		Interval:   time.Minute,
		Workers:    2,
		Tier1After: 48 * time.Hour,
		Tier2After: 120 * time.Hour,
		Tier3After: 168 * time.Hour,
	}
}

func dueRequest(id string) model.Request {
	email := "k@example.test"
	sent := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.Request{
		ID:           id,
		Kind:         model.KindSolarPanel,
		CustomerName: "K. Bakker",
		Email:        &email,
		Price:        decimal.NullDecimal{Decimal: decimal.NewFromInt(8460), Valid: true},
		Status:       model.StatusQuoteSent,
		SentAt:       &sent,
	}
}

func newScheduler(reqs repository.RequestsRepository, sender Sender) *Scheduler {
	s := NewScheduler(reqs, sender, nil, nil, nurtureConfig(), 30,
		"Bouwofferte B.V.", "085-1234567", "https://example.test/offerte")
	s.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestScheduler_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("sends and claims a due tier-1 reminder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reqs := mocks.NewMockRequestsRepository(ctrl)

		req := dueRequest("01REQ")
		reqs.EXPECT().ListReminderEligible(ctx, 3, gomock.Any(), gomock.Any()).Return(nil, nil)
		reqs.EXPECT().ListReminderEligible(ctx, 2, gomock.Any(), gomock.Any()).Return(nil, nil)
		reqs.EXPECT().ListReminderEligible(ctx, 1, gomock.Any(), gomock.Any()).Return([]model.Request{req}, nil)
		reqs.EXPECT().ClaimReminder(gomock.Any(), "01REQ", 1, gomock.Any()).Return(true, nil)

		sender := &recordingSender{}
		newScheduler(reqs, sender).RunOnce(ctx)

		if len(sender.sends) != 1 {
			t.Fatalf("sends = %d, want 1", len(sender.sends))
		}
	})

	t.Run("tiers run highest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reqs := mocks.NewMockRequestsRepository(ctrl)

		gomock.InOrder(
			reqs.EXPECT().ListReminderEligible(ctx, 3, gomock.Any(), gomock.Any()).Return(nil, nil),
			reqs.EXPECT().ListReminderEligible(ctx, 2, gomock.Any(), gomock.Any()).Return(nil, nil),
			reqs.EXPECT().ListReminderEligible(ctx, 1, gomock.Any(), gomock.Any()).Return(nil, nil),
		)

		sender := &recordingSender{}
		newScheduler(reqs, sender).RunOnce(ctx)

		if len(sender.sends) != 0 {
			t.Fatalf("sends = %d, want 0", len(sender.sends))
		}
	})

	t.Run("failed delivery leaves the tier unclaimed for the next pass", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reqs := mocks.NewMockRequestsRepository(ctrl)

		req := dueRequest("01REQ")
		// no ClaimReminder expectation: the tier column stays null
		reqs.EXPECT().ListReminderEligible(ctx, 3, gomock.Any(), gomock.Any()).Return(nil, nil)
		reqs.EXPECT().ListReminderEligible(ctx, 2, gomock.Any(), gomock.Any()).Return(nil, nil)
		reqs.EXPECT().ListReminderEligible(ctx, 1, gomock.Any(), gomock.Any()).Return([]model.Request{req}, nil)

		newScheduler(reqs, &recordingSender{fail: true}).RunOnce(ctx)
	})

	t.Run("lost claim after send is tolerated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reqs := mocks.NewMockRequestsRepository(ctrl)

		req := dueRequest("01REQ")
		reqs.EXPECT().ListReminderEligible(ctx, 3, gomock.Any(), gomock.Any()).Return(nil, nil)
		reqs.EXPECT().ListReminderEligible(ctx, 2, gomock.Any(), gomock.Any()).Return(nil, nil)
		reqs.EXPECT().ListReminderEligible(ctx, 1, gomock.Any(), gomock.Any()).Return([]model.Request{req}, nil)
		reqs.EXPECT().ClaimReminder(gomock.Any(), "01REQ", 1, gomock.Any()).Return(false, nil)

		sender := &recordingSender{}
		newScheduler(reqs, sender).RunOnce(ctx)

		if len(sender.sends) != 1 {
			t.Fatalf("sends = %d, want 1", len(sender.sends))
		}
	})

	t.Run("missing cached price skips the send", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reqs := mocks.NewMockRequestsRepository(ctrl)

		req := dueRequest("01REQ")
		req.Price = decimal.NullDecimal{}
		reqs.EXPECT().ListReminderEligible(ctx, 3, gomock.Any(), gomock.Any()).Return(nil, nil)
		reqs.EXPECT().ListReminderEligible(ctx, 2, gomock.Any(), gomock.Any()).Return(nil, nil)
		reqs.EXPECT().ListReminderEligible(ctx, 1, gomock.Any(), gomock.Any()).Return([]model.Request{req}, nil)

		sender := &recordingSender{}
		newScheduler(reqs, sender).RunOnce(ctx)

		if len(sender.sends) != 0 {
			t.Fatalf("sends = %d, want 0", len(sender.sends))
		}
	})
}

// fakeRequestsRepo is an in-memory RequestsRepository with the same row
// predicates as the MySQL implementation, so the scheduler can be driven
// through simulated time against real eligibility rules.
type fakeRequestsRepo struct {
	mu   sync.Mutex
	rows map[string]*model.Request
}

var _ repository.RequestsRepository = (*fakeRequestsRepo)(nil)

func newFakeRequestsRepo(rows ...model.Request) *fakeRequestsRepo {
	f := &fakeRequestsRepo{rows: make(map[string]*model.Request)}
	for i := range rows {
		r := rows[i]
		f.rows[r.ID] = &r
	}
	return f
}

func (f *fakeRequestsRepo) Insert(_ context.Context, r model.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[r.ID] = &r
	return nil
}

func (f *fakeRequestsRepo) Get(_ context.Context, id string) (*model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestsRepo) SetPriceIfUnset(_ context.Context, id string, price decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok && !r.Price.Valid {
		r.Price = decimal.NullDecimal{Decimal: price, Valid: true}
	}
	return nil
}

func (f *fakeRequestsRepo) SetPrice(_ context.Context, id string, price decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok {
		r.Price = decimal.NullDecimal{Decimal: price, Valid: true}
	}
	return nil
}

func (f *fakeRequestsRepo) MarkQuoteSent(_ context.Context, id string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok || r.SentAt != nil {
		return false, nil
	}
	r.SentAt = &at
	r.Status = model.StatusQuoteSent
	return true, nil
}

func (f *fakeRequestsRepo) reminderAt(r *model.Request, tier int) **time.Time {
	switch tier {
	case 1:
		return &r.Reminder1At
	case 2:
		return &r.Reminder2At
	default:
		return &r.Reminder3At
	}
}

func (f *fakeRequestsRepo) ClaimReminder(_ context.Context, id string, tier int, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok || r.Status != model.StatusQuoteSent {
		return false, nil
	}
	slot := f.reminderAt(r, tier)
	if *slot != nil {
		return false, nil
	}
	*slot = &at
	return true, nil
}

func (f *fakeRequestsRepo) ListReminderEligible(_ context.Context, tier int, cutoff time.Time, limit int) ([]model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Request
	for _, r := range f.rows {
		if r.Status != model.StatusQuoteSent || r.SentAt == nil || r.SentAt.After(cutoff) {
			continue
		}
		if *f.reminderAt(r, tier) != nil {
			continue
		}
		if tier > 1 && *f.reminderAt(r, tier-1) == nil {
			continue
		}
		out = append(out, *r)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRequestsRepo) Confirm(_ context.Context, id string, to model.RequestStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok || r.Status != model.StatusQuoteSent {
		return false, nil
	}
	r.Status = to
	return true, nil
}

func (f *fakeRequestsRepo) UpdateStatus(_ context.Context, id string, status model.RequestStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return false, nil
	}
	r.Status = status
	return true, nil
}

func TestScheduler_SimulatedTime(t *testing.T) {
	ctx := context.Background()
	sentAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	at := func(s *Scheduler, offset time.Duration) {
		s.now = func() time.Time { return sentAt.Add(offset) }
	}

	t.Run("settled requests never receive reminders", func(t *testing.T) {
		var rows []model.Request
		for i, status := range []model.RequestStatus{
			model.StatusInterestConfirmed,
			model.StatusInterestDeclined,
			model.StatusOnSiteVisit,
			model.StatusInProgressBuild,
			model.StatusCompleted,
		} {
			r := dueRequest(fmt.Sprintf("01REQ%d", i))
			r.Status = status
			rows = append(rows, r)
		}
		repo := newFakeRequestsRepo(rows...)
		sender := &recordingSender{}
		s := newScheduler(repo, sender)
		at(s, 30*24*time.Hour)

		s.RunOnce(ctx)

		if len(sender.sends) != 0 {
			t.Fatalf("sends = %d, want 0 for settled requests", len(sender.sends))
		}
	})

	t.Run("each pass advances exactly one tier in order", func(t *testing.T) {
		repo := newFakeRequestsRepo(dueRequest("01REQ"))
		sender := &recordingSender{}
		s := newScheduler(repo, sender)

		// well past every tier offset; ordering must still come from the
		// recorded reminder columns, not from elapsed time alone
		at(s, 14*24*time.Hour)

		for pass, wantTier := range []int{1, 2, 3} {
			s.RunOnce(ctx)
			if got := len(sender.sends); got != pass+1 {
				t.Fatalf("pass %d: sends = %d, want %d", pass+1, got, pass+1)
			}
			r, _ := repo.Get(ctx, "01REQ")
			for tier := 1; tier <= 3; tier++ {
				set := *repo.reminderAt(r, tier) != nil
				if tier <= wantTier && !set {
					t.Errorf("pass %d: reminder %d not recorded", pass+1, tier)
				}
				if tier > wantTier && set {
					t.Errorf("pass %d: reminder %d recorded early", pass+1, tier)
				}
			}
		}

		// sequence exhausted, a fourth pass sends nothing
		s.RunOnce(ctx)
		if len(sender.sends) != 3 {
			t.Fatalf("sends after exhausted sequence = %d, want 3", len(sender.sends))
		}
	})

	t.Run("higher tiers wait for the first reminder", func(t *testing.T) {
		repo := newFakeRequestsRepo(dueRequest("01REQ"))
		sender := &recordingSender{}
		s := newScheduler(repo, sender)

		// only the first offset has elapsed
		at(s, 50*time.Hour)
		s.RunOnce(ctx)

		r, _ := repo.Get(ctx, "01REQ")
		if r.Reminder1At == nil {
			t.Fatal("first reminder not recorded")
		}
		if r.Reminder2At != nil || r.Reminder3At != nil {
			t.Fatal("later reminders recorded before their offsets")
		}

		// a second pass at the same instant must be a no-op
		s.RunOnce(ctx)
		if len(sender.sends) != 1 {
			t.Fatalf("sends = %d, want 1", len(sender.sends))
		}
	})
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(newFakeRequestsRepo(), &recordingSender{}, nil, nil,
		config.NurtureConfig{}, 0, "", "", "")

	if s.cfg.Tier1After != 48*time.Hour || s.cfg.Tier2After != 120*time.Hour || s.cfg.Tier3After != 168*time.Hour {
		t.Errorf("tier offsets = %v/%v/%v, want 48h/120h/168h",
			s.cfg.Tier1After, s.cfg.Tier2After, s.cfg.Tier3After)
	}
	if s.cfg.Workers != 8 || s.cfg.Interval != 5*time.Minute {
		t.Errorf("workers/interval = %d/%v, want 8/5m", s.cfg.Workers, s.cfg.Interval)
	}
	if s.validityDays != 30 {
		t.Errorf("validityDays = %d, want 30", s.validityDays)
	}
}
