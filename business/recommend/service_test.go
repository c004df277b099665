package recommend

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"pickwise/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConvRepo struct {
	mu       sync.Mutex
	conv     domain.Conversation
	findErr  error
	appended [][]domain.Message
	notify   chan struct{}
}

func (f *fakeConvRepo) FindByID(_ context.Context, _ uuid.UUID) (domain.Conversation, error) {
	if f.findErr != nil {
		return domain.Conversation{}, f.findErr
	}
	return f.conv, nil
}

func (f *fakeConvRepo) AppendMessages(_ context.Context, _ uuid.UUID, messages []domain.Message) error {
	f.mu.Lock()
	f.appended = append(f.appended, messages)
	f.mu.Unlock()
	if f.notify != nil {
		f.notify <- struct{}{}
	}
	return nil
}

func (f *fakeConvRepo) appendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appended)
}

type fakePrefRepo struct {
	mu       sync.Mutex
	pref     domain.UserPreference
	findErr  error
	memories []domain.MemoryEntry
	notify   chan struct{}
}

func (f *fakePrefRepo) FindByUserID(_ context.Context, _ uint) (domain.UserPreference, error) {
	if f.findErr != nil {
		return domain.UserPreference{}, f.findErr
	}
	return f.pref, nil
}

func (f *fakePrefRepo) AppendMemory(_ context.Context, _ uint, entry domain.MemoryEntry) error {
	f.mu.Lock()
	f.memories = append(f.memories, entry)
	f.mu.Unlock()
	if f.notify != nil {
		f.notify <- struct{}{}
	}
	return nil
}

func (f *fakePrefRepo) memoryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.memories)
}

type fakeReasoner struct {
	intent    domain.Intent
	intentErr error
	filter    domain.LaptopFilter
	reply     string
	replyErr  error

	mu         sync.Mutex
	replyCalls []([]domain.RankedCandidate)
}

func (f *fakeReasoner) DeriveIntent(_ context.Context, _, _, _ string) (domain.Intent, error) {
	return f.intent, f.intentErr
}

func (f *fakeReasoner) DeriveFilter(_ context.Context, _, _ string, _ domain.Intent) (domain.LaptopFilter, error) {
	return f.filter, nil
}

func (f *fakeReasoner) GenerateReply(_ context.Context, _, _, _ string, _ domain.Intent, candidates []domain.RankedCandidate) (string, error) {
	f.mu.Lock()
	f.replyCalls = append(f.replyCalls, candidates)
	f.mu.Unlock()
	return f.reply, f.replyErr
}

func scoredLaptop(name string, price float64) domain.Laptop {
	return domain.Laptop{ID: uuid.New(), Brand: "Lenovo", ProductName: name, PriceRM: price}
}

func newTestService(t *testing.T, catalog *fakeCatalog, index *fakeIndex, reasoner *fakeReasoner, convRepo *fakeConvRepo, prefRepo *fakePrefRepo) *Service {
	t.Helper()

	cfg := DefaultConfig()
	cache := NewRangeCache(&fakeStatsRepo{ranges: testRanges()}, time.Minute)
	scorer := NewScoreEngine(cache, UnknownFactorIgnore)
	merger := NewMerger(catalog, index, cfg)

	return NewService(convRepo, prefRepo, reasoner, merger, scorer, cfg)
}

func TestChat_ClarificationShortCircuits(t *testing.T) {
	catalog := &fakeCatalog{}
	reasoner := &fakeReasoner{
		intent: domain.Intent{
			ClarificationRequired: true,
			Clarification:         "What is your budget?",
		},
		reply: "Boss, what budget ah?",
	}
	convRepo := &fakeConvRepo{}
	prefRepo := &fakePrefRepo{}

	svc := newTestService(t, catalog, &fakeIndex{}, reasoner, convRepo, prefRepo)

	reply := svc.Chat(context.Background(), 1, uuid.New(), "laptop")

	assert.Equal(t, "Boss, what budget ah?", reply.Answer)
	assert.Empty(t, reply.Candidates)
	// retrieval never ran
	assert.Empty(t, catalog.filters)
	// clarification turns are not persisted
	assert.Equal(t, 0, convRepo.appendCount())
	assert.Equal(t, 0, prefRepo.memoryCount())
}

func TestChat_ClarificationFallsBackToIntentQuestion(t *testing.T) {
	reasoner := &fakeReasoner{
		intent: domain.Intent{
			ClarificationRequired: true,
			Clarification:         "What is your budget?",
		},
		replyErr: errors.New("model down"),
	}

	svc := newTestService(t, &fakeCatalog{}, &fakeIndex{}, reasoner, &fakeConvRepo{}, &fakePrefRepo{})

	reply := svc.Chat(context.Background(), 1, uuid.New(), "laptop")
	assert.Equal(t, "What is your budget?", reply.Answer)
}

func TestChat_HappyPathRanksAndPersists(t *testing.T) {
	cheap := scoredLaptop("cheap", 2000)
	pricey := scoredLaptop("pricey", 6000)
	catalog := &fakeCatalog{filtered: []domain.Laptop{pricey, cheap}}

	reasoner := &fakeReasoner{reply: "Take the cheap one lah, Pick Score damn high."}
	convRepo := &fakeConvRepo{notify: make(chan struct{}, 1)}
	prefRepo := &fakePrefRepo{notify: make(chan struct{}, 1)}

	svc := newTestService(t, catalog, &fakeIndex{}, reasoner, convRepo, prefRepo)

	reply := svc.Chat(context.Background(), 1, uuid.New(), "budget laptop")

	require.Len(t, reply.Candidates, 2)
	// cheaper laptop scores higher on the default priorities
	assert.Equal(t, "cheap", reply.Candidates[0].Laptop.ProductName)
	assert.GreaterOrEqual(t, reply.Candidates[0].PickScore, reply.Candidates[1].PickScore)
	assert.Equal(t, "Take the cheap one lah, Pick Score damn high.", reply.Answer)

	// persistence is detached; wait for both writes
	waitForSignal(t, convRepo.notify)
	waitForSignal(t, prefRepo.notify)
	assert.Equal(t, 1, convRepo.appendCount())
	assert.Equal(t, 1, prefRepo.memoryCount())
}

func TestChat_TopNCap(t *testing.T) {
	laptops := []domain.Laptop{
		scoredLaptop("a", 2000),
		scoredLaptop("b", 3000),
		scoredLaptop("c", 4000),
		scoredLaptop("d", 5000),
		scoredLaptop("e", 6000),
	}
	catalog := &fakeCatalog{filtered: laptops}
	reasoner := &fakeReasoner{reply: "ok, Pick Score included"}

	svc := newTestService(t, catalog, &fakeIndex{}, reasoner, &fakeConvRepo{}, &fakePrefRepo{})

	reply := svc.Chat(context.Background(), 1, uuid.Nil, "anything")
	assert.Len(t, reply.Candidates, defaultTopN)
}

func TestChat_NoResultsIsTerminal(t *testing.T) {
	catalog := &fakeCatalog{}
	reasoner := &fakeReasoner{}
	convRepo := &fakeConvRepo{}
	prefRepo := &fakePrefRepo{}

	svc := newTestService(t, catalog, &fakeIndex{}, reasoner, convRepo, prefRepo)

	reply := svc.Chat(context.Background(), 1, uuid.New(), "rm100 gaming beast")
	assert.Equal(t, noResultsAnswer, reply.Answer)
	assert.Empty(t, reply.Candidates)
	assert.Equal(t, 0, convRepo.appendCount())
}

func TestChat_RetrievalErrorBecomesFallbackAnswer(t *testing.T) {
	catalog := &fakeCatalog{filterErr: errors.New("db down")}

	svc := newTestService(t, catalog, &fakeIndex{}, &fakeReasoner{}, &fakeConvRepo{}, &fakePrefRepo{})

	reply := svc.Chat(context.Background(), 1, uuid.New(), "laptop")
	assert.Equal(t, fallbackAnswer, reply.Answer)
	assert.Empty(t, reply.Candidates)
}

func TestChat_ReplyFailureDegradesToSummary(t *testing.T) {
	l := scoredLaptop("only-pick", 3000)
	catalog := &fakeCatalog{filtered: []domain.Laptop{l}}
	reasoner := &fakeReasoner{replyErr: errors.New("model down")}

	svc := newTestService(t, catalog, &fakeIndex{}, reasoner, &fakeConvRepo{}, &fakePrefRepo{})

	reply := svc.Chat(context.Background(), 1, uuid.Nil, "laptop")
	assert.Contains(t, reply.Answer, "only-pick")
	assert.Contains(t, reply.Answer, "Pick Score")
}

func TestChat_SummaryAppendedWhenReplyOmitsScores(t *testing.T) {
	l := scoredLaptop("only-pick", 3000)
	catalog := &fakeCatalog{filtered: []domain.Laptop{l}}
	reasoner := &fakeReasoner{reply: "This one quite solid boss."}

	svc := newTestService(t, catalog, &fakeIndex{}, reasoner, &fakeConvRepo{}, &fakePrefRepo{})

	reply := svc.Chat(context.Background(), 1, uuid.Nil, "laptop")
	assert.True(t, strings.HasPrefix(reply.Answer, "This one quite solid boss."))
	assert.Contains(t, reply.Answer, "Pick Score")
}

func TestChat_MissingContextIsNonFatal(t *testing.T) {
	l := scoredLaptop("pick", 3000)
	catalog := &fakeCatalog{filtered: []domain.Laptop{l}}
	convRepo := &fakeConvRepo{findErr: errors.New("not found")}
	prefRepo := &fakePrefRepo{findErr: errors.New("not found")}
	reasoner := &fakeReasoner{reply: "ok, Pick Score 50"}

	svc := newTestService(t, catalog, &fakeIndex{}, reasoner, convRepo, prefRepo)

	reply := svc.Chat(context.Background(), 1, uuid.New(), "laptop")
	require.Len(t, reply.Candidates, 1)
}

func TestFormatMemory(t *testing.T) {
	assert.Equal(t, "No past visits", formatMemory(nil, 5))

	entries := make([]domain.MemoryEntry, 0, 7)
	for i := 0; i < 7; i++ {
		entries = append(entries, domain.MemoryEntry{
			Date:    time.Date(2026, time.January, i+1, 0, 0, 0, 0, time.UTC),
			Summary: "visit",
		})
	}

	out := formatMemory(entries, 5)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 5)
	// the window keeps the most recent entries
	assert.Contains(t, lines[len(lines)-1], "2026-01-07")
}

func waitForSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for background persistence")
	}
}
