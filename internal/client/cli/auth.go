package cli

import (
	"context"
	"errors"
	"log"

	"github.com/dmitrijs2005/tickettrack/internal/common"
	"github.com/dmitrijs2005/tickettrack/internal/cryptox"
)

func (a *App) Register(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	secret, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	defer cryptox.WipeByteArray(secret)

	sess, err := a.auth.Register(ctx, name, email, secret)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			log.Printf("Registration unsuccessful: %s", err.Error())
		} else {
			log.Printf("error: %v", err)
		}
		return
	}

	log.Printf("Welcome, %s!", sess.Name)
}

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	secret, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	defer cryptox.WipeByteArray(secret)

	sess, err := a.auth.Login(ctx, email, secret)
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return
	}

	log.Printf("Welcome back, %s!", sess.Name)
}

func (a *App) Logout(ctx context.Context) {
	if err := a.auth.Logout(ctx); err != nil {
		log.Printf("error: %v", err)
		return
	}
	log.Printf("Logged out")
}
