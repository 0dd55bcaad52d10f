package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/tickettrack/internal/client/models"
	"github.com/dmitrijs2005/tickettrack/internal/client/services"
)

func (a *App) printTicket(t models.Ticket) {
	fmt.Fprintf(a.out, "%s  [%s/%s]  %s\n", t.ID, t.Status, t.Priority, t.Title)
}

// List prints the owner's tickets, optionally filtered by status
// ("all", "open", "in_progress", "closed").
func (a *App) List(ctx context.Context, status string) {
	owner, ok := a.owner()
	if !ok {
		log.Printf("Please login first")
		return
	}
	if status == "" {
		status = services.StatusAll
	}

	tickets, err := a.tickets.LoadForOwner(ctx, owner)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	filtered := services.Filter(tickets, status)
	if len(filtered) == 0 {
		fmt.Fprintln(a.out, "No tickets")
		return
	}
	for _, t := range filtered {
		a.printTicket(t)
	}
}

// Stats prints the dashboard numbers: total and per-status counts.
func (a *App) Stats(ctx context.Context) {
	owner, ok := a.owner()
	if !ok {
		log.Printf("Please login first")
		return
	}

	tickets, err := a.tickets.LoadForOwner(ctx, owner)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	s := services.Summarize(tickets)
	fmt.Fprintf(a.out, "total: %d  open: %d  in progress: %d  closed: %d\n",
		s.Total, s.Open, s.InProgress, s.Closed)
}

// Recent prints the n most recently created tickets, newest first.
func (a *App) Recent(ctx context.Context, n int) {
	owner, ok := a.owner()
	if !ok {
		log.Printf("Please login first")
		return
	}

	tickets, err := a.tickets.LoadForOwner(ctx, owner)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	for _, t := range services.Recent(tickets, n) {
		a.printTicket(t)
	}
}
