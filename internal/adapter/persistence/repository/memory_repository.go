package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/usecase/interfaces"
)

// MemoryStore keeps the three aggregates in process memory. It is used for
// STORE_DRIVER=memory and in tests. The same conditional semantics as the
// DynamoDB repositories apply: keyed creates fail with ErrAlreadyExists and
// status transitions are guarded by the current status.
type MemoryStore struct {
	mu       sync.RWMutex
	requests map[string]entities.AggregationRequest
	attempts map[string]map[string]entities.ProviderAttempt
	quotes   map[string]map[string]entities.QuoteResponse
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests: map[string]entities.AggregationRequest{},
		attempts: map[string]map[string]entities.ProviderAttempt{},
		quotes:   map[string]map[string]entities.QuoteResponse{},
	}
}

// Requests, Attempts and Quotes expose the store through the narrow
// repository interfaces.
func (s *MemoryStore) Requests() *MemoryAggregationRequestRepository {
	return &MemoryAggregationRequestRepository{s: s}
}

func (s *MemoryStore) Attempts() *MemoryProviderAttemptRepository {
	return &MemoryProviderAttemptRepository{s: s}
}

func (s *MemoryStore) Quotes() *MemoryQuoteResponseRepository {
	return &MemoryQuoteResponseRepository{s: s}
}

type MemoryAggregationRequestRepository struct{ s *MemoryStore }

var _ interfaces.IAggregationRequestRepository = (*MemoryAggregationRequestRepository)(nil)

func (r *MemoryAggregationRequestRepository) Create(_ context.Context, req entities.AggregationRequest) (entities.AggregationRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requests[req.ID]; ok {
		return entities.AggregationRequest{}, interfaces.ErrAlreadyExists
	}
	r.s.requests[req.ID] = cloneRequest(req)
	return req, nil
}

func (r *MemoryAggregationRequestRepository) GetByID(_ context.Context, id string) (entities.AggregationRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneRequest(r.s.requests[id]), nil
}

func (r *MemoryAggregationRequestRepository) MarkProcessing(_ context.Context, id string, dispatched []string) (entities.AggregationRequest, error) {
	return r.transition(id, entities.AggregationStatusPending, func(req *entities.AggregationRequest) {
		req.Status = entities.AggregationStatusProcessing
		req.DispatchedProviders = append([]string(nil), dispatched...)
	})
}

func (r *MemoryAggregationRequestRepository) MarkFailed(_ context.Context, id string, reason string) error {
	_, err := r.transition(id, entities.AggregationStatusPending, func(req *entities.AggregationRequest) {
		req.Status = entities.AggregationStatusFailed
		req.FailureReason = reason
	})
	return err
}

func (r *MemoryAggregationRequestRepository) MarkCompleted(_ context.Context, id string) (bool, error) {
	updated, err := r.transition(id, entities.AggregationStatusProcessing, func(req *entities.AggregationRequest) {
		req.Status = entities.AggregationStatusCompleted
	})
	if err != nil {
		return false, err
	}
	return updated.ID != "", nil
}

// transition applies fn when the stored status equals from. A missing request
// or a status mismatch yields a zero value, mirroring a failed conditional
// update.
func (r *MemoryAggregationRequestRepository) transition(id string, from entities.AggregationStatus, fn func(*entities.AggregationRequest)) (entities.AggregationRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok || req.Status != from {
		return entities.AggregationRequest{}, nil
	}
	fn(&req)
	req.UpdatedAt = time.Now().UTC()
	r.s.requests[id] = req
	return cloneRequest(req), nil
}

type MemoryProviderAttemptRepository struct{ s *MemoryStore }

var _ interfaces.IProviderAttemptRepository = (*MemoryProviderAttemptRepository)(nil)

func (r *MemoryProviderAttemptRepository) Create(_ context.Context, a entities.ProviderAttempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byProvider := r.s.attempts[a.AggregationRequestID]
	if byProvider == nil {
		byProvider = map[string]entities.ProviderAttempt{}
		r.s.attempts[a.AggregationRequestID] = byProvider
	}
	if _, ok := byProvider[a.ProviderCode]; ok {
		return interfaces.ErrAlreadyExists
	}
	byProvider[a.ProviderCode] = a
	return nil
}

func (r *MemoryProviderAttemptRepository) Get(_ context.Context, requestID, providerCode string) (entities.ProviderAttempt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.attempts[requestID][providerCode], nil
}

func (r *MemoryProviderAttemptRepository) ListByRequestID(_ context.Context, requestID string) ([]entities.ProviderAttempt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.ProviderAttempt, 0, len(r.s.attempts[requestID]))
	for _, a := range r.s.attempts[requestID] {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProviderCode < out[j].ProviderCode })
	return out, nil
}

type MemoryQuoteResponseRepository struct{ s *MemoryStore }

var _ interfaces.IQuoteResponseRepository = (*MemoryQuoteResponseRepository)(nil)

func (r *MemoryQuoteResponseRepository) Create(_ context.Context, q entities.QuoteResponse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byProvider := r.s.quotes[q.AggregationRequestID]
	if byProvider == nil {
		byProvider = map[string]entities.QuoteResponse{}
		r.s.quotes[q.AggregationRequestID] = byProvider
	}
	if _, ok := byProvider[q.ProviderCode]; ok {
		return interfaces.ErrAlreadyExists
	}
	byProvider[q.ProviderCode] = q
	return nil
}

func (r *MemoryQuoteResponseRepository) ListByRequestID(_ context.Context, requestID string) ([]entities.QuoteResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.QuoteResponse, 0, len(r.s.quotes[requestID]))
	for _, q := range r.s.quotes[requestID] {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProviderCode < out[j].ProviderCode })
	return out, nil
}

func cloneRequest(r entities.AggregationRequest) entities.AggregationRequest {
	if r.DispatchedProviders != nil {
		r.DispatchedProviders = append([]string(nil), r.DispatchedProviders...)
	}
	return r
}
