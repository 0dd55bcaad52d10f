package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/tickettrack/internal/client/models"
	"github.com/dmitrijs2005/tickettrack/internal/client/storage"
	"github.com/dmitrijs2005/tickettrack/internal/common"
	"github.com/dmitrijs2005/tickettrack/internal/idx"
	"github.com/dmitrijs2005/tickettrack/internal/logging"
)

// ticketsKey is the storage key holding an owner's ticket collection.
func ticketsKey(ownerID string) string {
	return "tickets_" + ownerID
}

// TicketInput carries the editable ticket fields for create and update.
// Empty Status/Priority mean "default" on create (open/medium) and
// "keep current" on update.
type TicketInput struct {
	Title       string
	Description string
	Status      models.Status
	Priority    models.Priority
}

// ValidationError reports per-field validation failures. Nothing is persisted
// when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// TicketService owns the per-owner ticket collections.
//
// LoadForOwner is the documented read-or-provision path: reading an owner with
// no durable record initializes an empty one. Create/Update/Delete persist the
// full updated collection before returning. Filter, Summarize and Recent are
// pure and operate on whatever slice the caller holds.
type TicketService interface {
	LoadForOwner(ctx context.Context, ownerID string) ([]models.Ticket, error)
	Create(ctx context.Context, ownerID string, in TicketInput) (*models.Ticket, error)
	Update(ctx context.Context, ownerID, ticketID string, in TicketInput) (*models.Ticket, error)
	Delete(ctx context.Context, ownerID, ticketID string) error
}

type ticketService struct {
	store storage.Store
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

// NewTicketService constructs a TicketService over the given store.
func NewTicketService(store storage.Store, log logging.Logger) TicketService {
	return &ticketService{
		store: store,
		log:   log,
		now:   time.Now,
		newID: idx.New,
	}
}

// Validation messages shown next to form fields.
const (
	msgTitleRequired = "Title is required"
	msgTitleTooShort = "Title must be at least 3 characters"
	msgDescRequired  = "Description is required"
	msgDescTooShort  = "Description must be at least 10 characters"
	msgBadStatus     = "Unknown status"
	msgBadPriority   = "Unknown priority"
)

// Validate checks in and returns a field -> message map, empty when valid.
// It is pure: the UI calls it to show field-level errors before submitting.
func Validate(in TicketInput) map[string]string {
	errs := make(map[string]string)

	title := strings.TrimSpace(in.Title)
	if title == "" {
		errs["title"] = msgTitleRequired
	} else if utf8.RuneCountInString(title) < 3 {
		errs["title"] = msgTitleTooShort
	}

	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		errs["description"] = msgDescRequired
	} else if utf8.RuneCountInString(desc) < 10 {
		errs["description"] = msgDescTooShort
	}

	if in.Status != "" && !in.Status.Valid() {
		errs["status"] = msgBadStatus
	}
	if in.Priority != "" && !in.Priority.Valid() {
		errs["priority"] = msgBadPriority
	}

	return errs
}

// LoadForOwner reads the owner's collection. If the owner has no durable
// record yet, an empty one is provisioned — this is the only operation that
// creates durable state as a side effect of a read. A malformed record is
// reset to empty rather than failing the call.
func (s *ticketService) LoadForOwner(ctx context.Context, ownerID string) ([]models.Ticket, error) {
	key := ticketsKey(ownerID)

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read tickets: %w", err)
	}
	if !ok {
		if err := s.save(ctx, ownerID, nil); err != nil {
			return nil, err
		}
		return []models.Ticket{}, nil
	}

	var tickets []models.Ticket
	if err := json.Unmarshal([]byte(raw), &tickets); err != nil {
		s.log.Warn(ctx, "ticket collection is corrupt, resetting", "owner_id", ownerID, "error", err)
		if err := s.save(ctx, ownerID, nil); err != nil {
			return nil, err
		}
		return []models.Ticket{}, nil
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	return tickets, nil
}

func (s *ticketService) Create(ctx context.Context, ownerID string, in TicketInput) (*models.Ticket, error) {
	if errs := Validate(in); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	tickets, err := s.LoadForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.StatusOpen
	}
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := s.now().UTC()
	ticket := models.Ticket{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.save(ctx, ownerID, append(tickets, ticket)); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Update merges the editable fields into the owner's ticket. A ticket id that
// does not exist under ownerID — including one belonging to another owner —
// fails with common.ErrNotFound.
func (s *ticketService) Update(ctx context.Context, ownerID, ticketID string, in TicketInput) (*models.Ticket, error) {
	if errs := Validate(in); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	tickets, err := s.LoadForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for i := range tickets {
		if tickets[i].ID != ticketID {
			continue
		}

		tickets[i].Title = in.Title
		tickets[i].Description = in.Description
		if in.Status != "" {
			tickets[i].Status = in.Status
		}
		if in.Priority != "" {
			tickets[i].Priority = in.Priority
		}
		tickets[i].UpdatedAt = s.now().UTC()

		if err := s.save(ctx, ownerID, tickets); err != nil {
			return nil, err
		}
		updated := tickets[i]
		return &updated, nil
	}

	return nil, common.ErrNotFound
}

// Delete removes the ticket if present. Deleting an id that is absent under
// ownerID is a no-op, not an error.
func (s *ticketService) Delete(ctx context.Context, ownerID, ticketID string) error {
	tickets, err := s.LoadForOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	kept := tickets[:0]
	for _, t := range tickets {
		if t.ID != ticketID {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tickets) {
		return nil
	}
	return s.save(ctx, ownerID, kept)
}

func (s *ticketService) save(ctx context.Context, ownerID string, tickets []models.Ticket) error {
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	data, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("failed to encode tickets: %w", err)
	}
	if err := s.store.Set(ctx, ticketsKey(ownerID), string(data)); err != nil {
		return fmt.Errorf("failed to persist tickets: %w", err)
	}
	return nil
}

// StatusAll is the Filter wildcard matching every ticket.
const StatusAll = "all"

// Filter returns the tickets matching status, preserving input order.
// StatusAll returns the input as-is.
func Filter(tickets []models.Ticket, status string) []models.Ticket {
	if status == StatusAll {
		return tickets
	}
	out := make([]models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if string(t.Status) == status {
			out = append(out, t)
		}
	}
	return out
}

// Summary holds derived per-status counts over a collection.
type Summary struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Closed     int `json:"closed"`
}

// Summarize counts tickets by status.
func Summarize(tickets []models.Ticket) Summary {
	s := Summary{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case models.StatusOpen:
			s.Open++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusClosed:
			s.Closed++
		}
	}
	return s
}

// Recent returns the n most recently created tickets, newest first. The sort
// is stable: tickets sharing a createdAt keep their original relative order.
func Recent(tickets []models.Ticket, n int) []models.Ticket {
	out := make([]models.Ticket, len(tickets))
	copy(out, tickets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n < 0 {
		n = 0
	}
	if n < len(out) {
		out = out[:n]
	}
	return out
}
