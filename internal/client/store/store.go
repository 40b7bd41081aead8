package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/modelcatalog/internal/client/client"
	"github.com/dmitrijs2005/modelcatalog/internal/client/identifier"
	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/dmitrijs2005/modelcatalog/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

// DefaultQuerySizeLimit is the page size sent with every listing request.
const DefaultQuerySizeLimit = 1000

// Store caches catalog resources, results, comments and vocabulary in front
// of a client.Client.
type Store struct {
	client    client.Client
	logger    logging.Logger
	metrics   *metrics
	sizeLimit int
	reg       prometheus.Registerer

	flights singleflight.Group

	mu              sync.RWMutex
	resources       map[models.Kind]map[string]*models.Resource
	aliases         map[models.Kind]map[string]string
	queries         map[models.Kind]map[string][]string
	summaryResults  map[string]models.SummaryResult
	extendedResults map[string]*models.ExtendedResult
	comments        map[string][]models.Comment
	vocab           models.Vocabulary
	vocabLoaded     bool
	projects        []string
	projectsLoaded  bool
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithQuerySizeLimit sets the size parameter of listing requests.
func WithQuerySizeLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.sizeLimit = n
		}
	}
}

// WithRegisterer registers the cache metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Store) { s.reg = reg }
}

// New returns an empty Store that fetches through c.
func New(c client.Client, opts ...Option) *Store {
	s := &Store{
		client:          c,
		logger:          logging.Nop(),
		sizeLimit:       DefaultQuerySizeLimit,
		resources:       make(map[models.Kind]map[string]*models.Resource, len(models.Kinds)),
		aliases:         make(map[models.Kind]map[string]string, len(models.Kinds)),
		queries:         make(map[models.Kind]map[string][]string, len(models.Kinds)),
		summaryResults:  make(map[string]models.SummaryResult),
		extendedResults: make(map[string]*models.ExtendedResult),
		comments:        make(map[string][]models.Comment),
	}
	for _, k := range models.Kinds {
		s.resources[k] = make(map[string]*models.Resource)
		s.aliases[k] = make(map[string]string)
		s.queries[k] = make(map[string][]string)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newMetrics(s.reg)
	return s
}

// CallOption tunes a single cache-first read.
type CallOption func(*callOptions)

type callOptions struct {
	forceRefresh bool
}

// ForceRefresh bypasses the cache and re-fetches from the server. The
// response overwrites the cached entry.
func ForceRefresh() CallOption {
	return func(o *callOptions) { o.forceRefresh = true }
}

func applyCallOptions(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Stats is a point-in-time count of cached entries.
type Stats struct {
	Models          int
	Tests           int
	Queries         int
	SummaryResults  int
	ExtendedResults int
	CommentSubjects int
	VocabLoaded     bool
	ProjectsLoaded  bool
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Models:          len(s.resources[models.KindModel]),
		Tests:           len(s.resources[models.KindTest]),
		SummaryResults:  len(s.summaryResults),
		ExtendedResults: len(s.extendedResults),
		CommentSubjects: len(s.comments),
		VocabLoaded:     s.vocabLoaded,
		ProjectsLoaded:  s.projectsLoaded,
	}
	for _, q := range s.queries {
		st.Queries += len(q)
	}
	return st
}

// share runs fetch once for all concurrent callers with the same key. A
// caller whose shared fetch failed only because another caller's context was
// canceled retries with its own context.
//
// When ctx finishes while the caller's own fetch is running, share waits for
// that fetch: it commits under the lock only if ctx was still live, so a
// successful result means the caches were written and is returned as such.
func (s *Store) share(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	for {
		var leader atomic.Bool
		ch := s.flights.DoChan(key, func() (any, error) {
			leader.Store(true)
			return fetch(ctx)
		})

		select {
		case <-ctx.Done():
			if !leader.Load() {
				return nil, contextError(ctx, key)
			}
			res := <-ch
			if res.Err != nil {
				return nil, contextError(ctx, key)
			}
			return res.Val, nil
		case res := <-ch:
			if res.Err != nil && client.IsCanceled(res.Err) && ctx.Err() == nil && !leader.Load() {
				continue
			}
			return res.Val, res.Err
		}
	}
}

// contextError maps a finished context to the error reported to the caller.
// Cancellation is reported as client.ErrCanceled, an expired deadline as a
// failure.
func contextError(ctx context.Context, op string) error {
	err := ctx.Err()
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, client.ErrCanceled)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// settled returns a non-nil error when ctx finished while a response was in
// flight. Responses that arrive after cancellation are discarded.
func settled(ctx context.Context, op string) error {
	if ctx.Err() != nil {
		return contextError(ctx, op)
	}
	return nil
}

// lockSettled takes the write lock for committing a response and then checks
// ctx. When ctx already finished the lock is released and the canceled
// outcome returned, so nothing is written for a canceled operation.
func (s *Store) lockSettled(ctx context.Context, op string) error {
	s.mu.Lock()
	if err := settled(ctx, op); err != nil {
		s.mu.Unlock()
		return err
	}
	return nil
}

// lookup finds a cached resource by ID or alias. Must be called with s.mu held.
func (s *Store) lookup(kind models.Kind, ident string) *models.Resource {
	byID := s.resources[kind]
	if r, ok := byID[ident]; ok {
		return r
	}
	if identifier.IsUUID(ident) {
		return nil
	}
	if id, ok := s.aliases[kind][ident]; ok {
		return byID[id]
	}
	return nil
}

// put stores r under its ID, updating an existing entry in place so pointers
// held by other tables stay valid. Must be called with s.mu held.
func (s *Store) put(kind models.Kind, r *models.Resource) *models.Resource {
	byID := s.resources[kind]
	existing, ok := byID[r.ID]
	if ok {
		if existing.Alias != "" && existing.Alias != r.Alias {
			delete(s.aliases[kind], existing.Alias)
		}
		*existing = *r
	} else {
		existing = r
		byID[r.ID] = r
	}
	if r.Alias != "" {
		s.aliases[kind][r.Alias] = r.ID
	}
	return existing
}

func cloneResources(in []*models.Resource) []*models.Resource {
	out := make([]*models.Resource, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

func normalizeInstances(r *models.Resource) {
	if r.Instances == nil {
		r.Instances = []models.Instance{}
	}
}
