package pack

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/faceoffgame/faceoff/internal/model"
	"github.com/faceoffgame/faceoff/internal/storage"
)

// storageKey is where the active pack is persisted.
const storageKey = "faceoff:pack"

// subscriberBuffer is the per-subscriber event buffer; a subscriber that
// falls this far behind misses events rather than blocking the publisher.
const subscriberBuffer = 4

// Pack is a named, ordered set of questions.
type Pack struct {
	Name      string           `json:"name"`
	Questions []model.Question `json:"questions"`
}

// Event is published to subscribers when the active pack changes.
type Event struct {
	Pack Pack
}

// Provider owns the active question pack and notifies subscribers when it
// changes. It is an explicit state container: the pack is only reachable
// through Active, and all mutation goes through SetActive.
type Provider struct {
	storage storage.Store
	logger  *slog.Logger

	mu     sync.RWMutex
	active Pack
	subs   map[chan Event]struct{}
}

// New creates a provider seeded with the built-in default pack.
func New(store storage.Store, logger *slog.Logger) *Provider {
	return &Provider{
		storage: store,
		logger:  logger,
		active:  DefaultPack(),
		subs:    make(map[chan Event]struct{}),
	}
}

// Active returns a copy of the active pack.
func (p *Provider) Active() Pack {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return clonePack(p.active)
}

// SetActive validates and installs a new active pack, persists it, and
// notifies subscribers.
func (p *Provider) SetActive(ctx context.Context, pk Pack) error {
	if err := validate(pk); err != nil {
		return err
	}

	p.mu.Lock()
	p.active = clonePack(pk)
	p.mu.Unlock()

	p.persist(ctx, pk)
	p.publish(Event{Pack: clonePack(pk)})

	p.logger.Info("active pack changed",
		slog.String("name", pk.Name),
		slog.Int("questions", len(pk.Questions)),
	)
	return nil
}

// LoadFromFile reads a pack from a JSON file and makes it active.
func (p *Provider) LoadFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var pk Pack
	if err := json.Unmarshal(data, &pk); err != nil {
		return err
	}
	if pk.Name == "" {
		pk.Name = path
	}
	return p.SetActive(ctx, pk)
}

// LoadFromStorage restores the previously persisted active pack, if any.
// Missing or malformed stored packs are ignored and the current pack kept.
func (p *Provider) LoadFromStorage(ctx context.Context) {
	data, err := p.storage.Get(ctx, storageKey)
	if err != nil {
		if err != storage.ErrKeyNotFound {
			p.logger.Warn("pack load failed", slog.String("error", err.Error()))
		}
		return
	}
	var pk Pack
	if err := json.Unmarshal([]byte(data), &pk); err != nil {
		p.logger.Warn("stored pack malformed, ignoring", slog.String("error", err.Error()))
		return
	}
	if err := validate(pk); err != nil {
		p.logger.Warn("stored pack invalid, ignoring", slog.String("error", err.Error()))
		return
	}

	p.mu.Lock()
	p.active = pk
	p.mu.Unlock()
	p.publish(Event{Pack: clonePack(pk)})
}

// Subscribe registers for pack-change events. The returned channel is
// buffered; events are dropped, not queued unboundedly, when a subscriber
// stops draining.
func (p *Provider) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (p *Provider) Unsubscribe(ch chan Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.subs[ch]; ok {
		delete(p.subs, ch)
		close(ch)
	}
}

func (p *Provider) publish(ev Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for ch := range p.subs {
		select {
		case ch <- ev:
		default:
			p.logger.Warn("pack event dropped, subscriber not draining")
		}
	}
}

func (p *Provider) persist(ctx context.Context, pk Pack) {
	data, err := json.Marshal(pk)
	if err != nil {
		p.logger.Warn("pack marshal failed", slog.String("error", err.Error()))
		return
	}
	if err := p.storage.Set(ctx, storageKey, string(data)); err != nil {
		p.logger.Warn("pack save failed", slog.String("error", err.Error()))
	}
}

func validate(pk Pack) error {
	if len(pk.Questions) == 0 {
		return model.ErrEmptyPack
	}
	for _, q := range pk.Questions {
		if q.Prompt == "" || len(q.Answers) == 0 {
			return model.ErrInvalidQuestion
		}
		for _, a := range q.Answers {
			if a.Text == "" {
				return model.ErrInvalidQuestion
			}
		}
	}
	return nil
}

func clonePack(pk Pack) Pack {
	c := Pack{Name: pk.Name, Questions: make([]model.Question, len(pk.Questions))}
	copy(c.Questions, pk.Questions)
	for i := range c.Questions {
		answers := make([]model.Answer, len(pk.Questions[i].Answers))
		copy(answers, pk.Questions[i].Answers)
		c.Questions[i].Answers = answers
	}
	return c
}
