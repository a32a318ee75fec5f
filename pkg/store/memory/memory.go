// Package memory provides an in-memory store.Store. It keeps labels and
// records per repository, records every call in the order it was made, and
// can be told to fail specific operations, which makes it the test double
// for the reconciler and a rehearsal backend for the CLI.
package memory

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/store"
)

// defaultColor is given to labels created implicitly by ApplyLabel.
const defaultColor = "ededed"

// Call is one recorded Store invocation.
type Call struct {
	Op     store.Operation
	Repo   string
	Name   string        // Label addressed by the call
	Number int           // Record number, for ApplyLabel
	Label  *labels.Label // Payload, for CreateLabel and UpdateLabel
}

// String implements fmt.Stringer.
func (c Call) String() string {
	switch c.Op {
	case store.OpApplyLabel:
		return fmt.Sprintf("%s %s #%d %s", c.Op, c.Repo, c.Number, c.Name)
	case store.OpListLabels:
		return fmt.Sprintf("%s %s", c.Op, c.Repo)
	default:
		return fmt.Sprintf("%s %s %s", c.Op, c.Repo, c.Name)
	}
}

type repository struct {
	labels  []labels.Label
	records map[int]*labels.Record
}

type failure struct {
	op   store.Operation
	name string
}

// Store is a concurrency-safe in-memory store.Store.
type Store struct {
	mu       sync.RWMutex
	repos    map[string]*repository
	calls    []Call
	failures map[failure]error
	delay    time.Duration

	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLabels seeds repo with labels.
func WithLabels(repo string, ls ...labels.Label) Option {
	return func(s *Store) {
		s.SetLabels(repo, ls...)
	}
}

// WithRecords seeds repo with records.
func WithRecords(repo string, records ...labels.Record) Option {
	return func(s *Store) {
		s.SetRecords(repo, records...)
	}
}

// WithDelay makes every call take at least d, so that concurrent calls
// overlap observably.
func WithDelay(d time.Duration) Option {
	return func(s *Store) {
		s.delay = d
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		repos:    make(map[string]*repository),
		failures: make(map[failure]error),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLabels replaces the labels of repo.
func (s *Store) SetLabels(repo string, ls ...labels.Label) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.repo(repo)
	r.labels = make([]labels.Label, 0, len(ls))
	for _, l := range ls {
		r.labels = append(r.labels, copyLabel(l))
	}
}

// SetRecords adds or replaces records of repo.
func (s *Store) SetRecords(repo string, records ...labels.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.repo(repo)
	for _, rec := range records {
		rec.Labels = slices.Clone(rec.Labels)
		r.records[rec.Number] = &rec
	}
}

// FailOn makes every call of op addressing the label name return err.
// An empty name matches every label.
func (s *Store) FailOn(op store.Operation, name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[failure{op: op, name: name}] = err
}

// Labels returns a copy of the labels of repo.
func (s *Store) Labels(repo string) []labels.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.repos[repo]
	if !ok {
		return nil
	}
	out := make([]labels.Label, 0, len(r.labels))
	for _, l := range r.labels {
		out = append(out, copyLabel(l))
	}
	return out
}

// Record returns a copy of record number of repo.
func (s *Store) Record(repo string, number int) (labels.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.repos[repo]
	if !ok {
		return labels.Record{}, false
	}
	rec, ok := r.records[number]
	if !ok {
		return labels.Record{}, false
	}
	return labels.Record{Number: rec.Number, Labels: slices.Clone(rec.Labels)}, true
}

// Calls returns the recorded calls in the order they were made.
func (s *Store) Calls() []Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.calls)
}

// CallsFor returns the recorded calls of one operation.
func (s *Store) CallsFor(op store.Operation) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// MutatingCalls returns the recorded calls that change state.
func (s *Store) MutatingCalls() []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Op != store.OpListLabels && c.Op != store.OpListRecordsByLabel {
			out = append(out, c)
		}
	}
	return out
}

// MaxInFlight returns the highest number of calls observed running at once.
func (s *Store) MaxInFlight() int {
	return int(s.maxInFlight.Load())
}

// ResetCalls forgets recorded calls and the in-flight high-water mark.
func (s *Store) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
	s.maxInFlight.Store(0)
}

// ListLabels implements store.Store.
func (s *Store) ListLabels(ctx context.Context, repo string) ([]labels.Label, error) {
	done, err := s.begin(ctx, Call{Op: store.OpListLabels, Repo: repo})
	defer done()
	if err != nil {
		return nil, err
	}
	return s.Labels(repo), nil
}

// CreateLabel implements store.Store.
func (s *Store) CreateLabel(ctx context.Context, repo string, label labels.Label) (labels.Label, error) {
	payload := copyLabel(label)
	done, err := s.begin(ctx, Call{Op: store.OpCreateLabel, Repo: repo, Name: label.Name, Label: &payload})
	defer done()
	if err != nil {
		return labels.Label{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.repo(repo)
	if r.find(label.Name) >= 0 {
		return labels.Label{}, errors.NewAPIError(http.MethodPost, labelsEndpoint(repo), http.StatusUnprocessableEntity,
			"Validation Failed: already_exists")
	}
	created := copyLabel(label)
	created.Color = labels.NormalizeColor(created.Color)
	r.labels = append(r.labels, created)
	return copyLabel(created), nil
}

// UpdateLabel implements store.Store.
func (s *Store) UpdateLabel(ctx context.Context, repo, name string, label labels.Label) (labels.Label, error) {
	payload := copyLabel(label)
	done, err := s.begin(ctx, Call{Op: store.OpUpdateLabel, Repo: repo, Name: name, Label: &payload})
	defer done()
	if err != nil {
		return labels.Label{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.repo(repo)
	i := r.find(name)
	if i < 0 {
		return labels.Label{}, errors.NewAPIError(http.MethodPatch, labelEndpoint(repo, name), http.StatusNotFound, "Not Found")
	}
	if j := r.find(label.Name); j >= 0 && j != i {
		return labels.Label{}, errors.NewAPIError(http.MethodPatch, labelEndpoint(repo, name), http.StatusUnprocessableEntity,
			"Validation Failed: already_exists")
	}

	updated := r.labels[i]
	oldName := updated.Name
	if label.Name != "" {
		updated.Name = label.Name
	}
	if label.Color != "" {
		updated.Color = labels.NormalizeColor(label.Color)
	}
	if label.Description != nil {
		updated.Description = labels.String(*label.Description)
	}
	r.labels[i] = updated

	if updated.Name != oldName {
		for _, rec := range r.records {
			for k, l := range rec.Labels {
				if labels.EqualName(l, oldName) {
					rec.Labels[k] = updated.Name
				}
			}
		}
	}
	return copyLabel(updated), nil
}

// ListRecordsByLabel implements store.Store. Records are returned in
// ascending number order.
func (s *Store) ListRecordsByLabel(ctx context.Context, repo, name string) ([]labels.Record, error) {
	done, err := s.begin(ctx, Call{Op: store.OpListRecordsByLabel, Repo: repo, Name: name})
	defer done()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.repos[repo]
	if !ok {
		return []labels.Record{}, nil
	}
	out := []labels.Record{}
	for _, rec := range r.records {
		if rec.HasLabel(name) {
			out = append(out, labels.Record{Number: rec.Number, Labels: slices.Clone(rec.Labels)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// ApplyLabel implements store.Store. Like GitHub, applying a label that
// does not exist yet creates it.
func (s *Store) ApplyLabel(ctx context.Context, repo string, number int, name string) error {
	done, err := s.begin(ctx, Call{Op: store.OpApplyLabel, Repo: repo, Name: name, Number: number})
	defer done()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.repo(repo)
	rec, ok := r.records[number]
	if !ok {
		return errors.NewAPIError(http.MethodPost, fmt.Sprintf("/repos/%s/issues/%d/labels", repo, number),
			http.StatusNotFound, "Not Found")
	}
	if r.find(name) < 0 {
		r.labels = append(r.labels, labels.Label{Name: name, Color: defaultColor})
	}
	if !rec.HasLabel(name) {
		rec.Labels = append(rec.Labels, name)
	}
	return nil
}

// DeleteLabel implements store.Store.
func (s *Store) DeleteLabel(ctx context.Context, repo, name string) error {
	done, err := s.begin(ctx, Call{Op: store.OpDeleteLabel, Repo: repo, Name: name})
	defer done()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.repo(repo)
	i := r.find(name)
	if i < 0 {
		return errors.NewAPIError(http.MethodDelete, labelEndpoint(repo, name), http.StatusNotFound, "Not Found")
	}
	r.labels = slices.Delete(r.labels, i, i+1)
	for _, rec := range r.records {
		rec.Labels = slices.DeleteFunc(rec.Labels, func(l string) bool {
			return labels.EqualName(l, name)
		})
	}
	return nil
}

// begin records call, tracks concurrency, applies the configured delay and
// returns any injected failure. The returned func must always be called.
func (s *Store) begin(ctx context.Context, call Call) (func(), error) {
	n := s.inFlight.Add(1)
	for {
		m := s.maxInFlight.Load()
		if n <= m || s.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	done := func() { s.inFlight.Add(-1) }

	s.mu.Lock()
	s.calls = append(s.calls, call)
	err := s.failures[failure{op: call.Op, name: call.Name}]
	if err == nil {
		err = s.failures[failure{op: call.Op}]
	}
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return done, err
	}
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return done, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	return done, err
}

// repo returns the repository named name, creating it. Callers hold s.mu.
func (s *Store) repo(name string) *repository {
	r, ok := s.repos[name]
	if !ok {
		r = &repository{records: make(map[int]*labels.Record)}
		s.repos[name] = r
	}
	return r
}

func (r *repository) find(name string) int {
	return slices.IndexFunc(r.labels, func(l labels.Label) bool {
		return labels.EqualName(l.Name, name)
	})
}

func copyLabel(l labels.Label) labels.Label {
	if l.Description != nil {
		l.Description = labels.String(*l.Description)
	}
	return l
}

func labelsEndpoint(repo string) string {
	return "/repos/" + repo + "/labels"
}

func labelEndpoint(repo, name string) string {
	return labelsEndpoint(repo) + "/" + name
}
