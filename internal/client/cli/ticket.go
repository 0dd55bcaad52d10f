package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/dmitrijs2005/tickettrack/internal/client/models"
	"github.com/dmitrijs2005/tickettrack/internal/client/services"
	"github.com/dmitrijs2005/tickettrack/internal/common"
)

var (
	statusOptions   = []string{"open", "in_progress", "closed"}
	priorityOptions = []string{"low", "medium", "high"}
)

// ticketForm prompts for the editable ticket fields and shows field-level
// validation messages, re-asking until the input is valid (or input fails).
func (a *App) ticketForm(defStatus, defPriority string) (services.TicketInput, error) {
	for {
		title, err := GetSimpleText(a.reader, "Title", a.out)
		if err != nil {
			return services.TicketInput{}, err
		}
		description, err := GetSimpleText(a.reader, "Description", a.out)
		if err != nil {
			return services.TicketInput{}, err
		}
		status, err := GetChoice(a.reader, "Status", statusOptions, defStatus, a.out)
		if err != nil {
			return services.TicketInput{}, err
		}
		priority, err := GetChoice(a.reader, "Priority", priorityOptions, defPriority, a.out)
		if err != nil {
			return services.TicketInput{}, err
		}

		in := services.TicketInput{
			Title:       title,
			Description: description,
			Status:      models.Status(status),
			Priority:    models.Priority(priority),
		}

		errs := services.Validate(in)
		if len(errs) == 0 {
			return in, nil
		}
		fields := make([]string, 0, len(errs))
		for f := range errs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(a.out, "  %s: %s\n", f, errs[f])
		}
	}
}

func (a *App) Add(ctx context.Context) {
	owner, ok := a.owner()
	if !ok {
		log.Printf("Please login first")
		return
	}

	in, err := a.ticketForm("open", "medium")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	ticket, err := a.tickets.Create(ctx, owner, in)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}
	log.Printf("Created ticket %s", ticket.ID)
}

func (a *App) Edit(ctx context.Context, id string) {
	owner, ok := a.owner()
	if !ok {
		log.Printf("Please login first")
		return
	}

	in, err := a.ticketForm("", "")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	ticket, err := a.tickets.Update(ctx, owner, id, in)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Printf("No ticket %s", id)
		} else {
			log.Printf("Error: %s", err.Error())
		}
		return
	}
	log.Printf("Updated ticket %s", ticket.ID)
}

func (a *App) Delete(ctx context.Context, id string) {
	owner, ok := a.owner()
	if !ok {
		log.Printf("Please login first")
		return
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete ticket %s? (y/N)", id), a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if answer != "y" && answer != "Y" {
		return
	}

	if err := a.tickets.Delete(ctx, owner, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}
	log.Printf("Deleted ticket %s", id)
}
