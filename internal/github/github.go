// Package github implements store.Store against the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/labelsync/internal/transport"
	"github.com/agentstation/labelsync/pkg/constants"
	"github.com/agentstation/labelsync/pkg/errors"
	"github.com/agentstation/labelsync/pkg/labels"
	"github.com/agentstation/labelsync/pkg/store"
)

// Store talks to one GitHub (or GitHub Enterprise) API endpoint.
type Store struct {
	client   *transport.Client
	pageSize int
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithPageSize sets the page size of paginated reads, capped at the API
// maximum.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 && n <= constants.MaxPageSize {
			s.pageSize = n
		}
	}
}

// New creates a Store sending requests through client.
func New(client *transport.Client, opts ...Option) *Store {
	s := &Store{
		client:   client,
		pageSize: constants.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseRepo splits "owner/name" and rejects anything else.
func ParseRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", &errors.ValidationError{
			Field:   "repo",
			Value:   repo,
			Message: fmt.Sprintf("%q is not of the form owner/name", repo),
		}
	}
	return owner, name, nil
}

// label is the GitHub label document.
type label struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

func (l label) toLabel() labels.Label {
	return labels.Label{Name: l.Name, Color: l.Color, Description: l.Description}
}

type createRequest struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description,omitempty"`
}

// updateRequest addresses the label by path; a rename travels as new_name.
type updateRequest struct {
	NewName     string  `json:"new_name,omitempty"`
	Color       string  `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

type issue struct {
	Number int     `json:"number"`
	Labels []label `json:"labels"`
}

type applyRequest struct {
	Labels []string `json:"labels"`
}

// ListLabels implements store.Store.
func (s *Store) ListLabels(ctx context.Context, repo string) ([]labels.Label, error) {
	path, err := repoPath(repo, "labels")
	if err != nil {
		return nil, err
	}

	all, err := transport.Collect(transport.Pages(ctx, s.pageSize, func(ctx context.Context, page int) ([]label, error) {
		var batch []label
		err := s.client.Call(ctx, http.MethodGet, path, s.pageQuery(page), nil, http.StatusOK, &batch)
		return batch, err
	}))
	if err != nil {
		return nil, err
	}

	out := make([]labels.Label, 0, len(all))
	for _, l := range all {
		out = append(out, l.toLabel())
	}
	return out, nil
}

// CreateLabel implements store.Store.
func (s *Store) CreateLabel(ctx context.Context, repo string, l labels.Label) (labels.Label, error) {
	path, err := repoPath(repo, "labels")
	if err != nil {
		return labels.Label{}, err
	}

	body := createRequest{Name: l.Name, Color: labels.NormalizeColor(l.Color), Description: l.Description}
	var created label
	if err := s.client.Call(ctx, http.MethodPost, path, nil, body, http.StatusCreated, &created); err != nil {
		return labels.Label{}, err
	}
	return created.toLabel(), nil
}

// UpdateLabel implements store.Store.
func (s *Store) UpdateLabel(ctx context.Context, repo, name string, l labels.Label) (labels.Label, error) {
	path, err := repoPath(repo, "labels", name)
	if err != nil {
		return labels.Label{}, err
	}

	body := updateRequest{Color: labels.NormalizeColor(l.Color), Description: l.Description}
	if l.Name != "" && l.Name != name {
		body.NewName = l.Name
	}
	var updated label
	if err := s.client.Call(ctx, http.MethodPatch, path, nil, body, http.StatusOK, &updated); err != nil {
		return labels.Label{}, err
	}
	return updated.toLabel(), nil
}

// ListRecordsByLabel implements store.Store. Both open and closed issues
// and pull requests are returned.
func (s *Store) ListRecordsByLabel(ctx context.Context, repo, name string) ([]labels.Record, error) {
	path, err := repoPath(repo, "issues")
	if err != nil {
		return nil, err
	}

	all, err := transport.Collect(transport.Pages(ctx, s.pageSize, func(ctx context.Context, page int) ([]issue, error) {
		query := s.pageQuery(page)
		query.Set("labels", name)
		query.Set("state", "all")
		var batch []issue
		err := s.client.Call(ctx, http.MethodGet, path, query, nil, http.StatusOK, &batch)
		return batch, err
	}))
	if err != nil {
		return nil, err
	}

	out := make([]labels.Record, 0, len(all))
	for _, is := range all {
		rec := labels.Record{Number: is.Number, Labels: make([]string, 0, len(is.Labels))}
		for _, l := range is.Labels {
			rec.Labels = append(rec.Labels, l.Name)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ApplyLabel implements store.Store.
func (s *Store) ApplyLabel(ctx context.Context, repo string, number int, name string) error {
	path, err := repoPath(repo, "issues", strconv.Itoa(number), "labels")
	if err != nil {
		return err
	}
	return s.client.Call(ctx, http.MethodPost, path, nil, applyRequest{Labels: []string{name}}, http.StatusOK, nil)
}

// DeleteLabel implements store.Store.
func (s *Store) DeleteLabel(ctx context.Context, repo, name string) error {
	path, err := repoPath(repo, "labels", name)
	if err != nil {
		return err
	}
	return s.client.Call(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent, nil)
}

func (s *Store) pageQuery(page int) url.Values {
	return url.Values{
		"per_page": {strconv.Itoa(s.pageSize)},
		"page":     {strconv.Itoa(page)},
	}
}

// repoPath builds /repos/{owner}/{name}/{segments...} with every segment
// path-escaped, so label names containing '/', '?' or spaces stay intact.
func repoPath(repo string, segments ...string) (string, error) {
	owner, name, err := ParseRepo(repo)
	if err != nil {
		return "", err
	}
	parts := []string{"", "repos", url.PathEscape(owner), url.PathEscape(name)}
	for _, seg := range segments {
		parts = append(parts, url.PathEscape(seg))
	}
	return strings.Join(parts, "/"), nil
}
