package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
)

func (a *App) readCredentials() (string, string, string, error) {
	userName, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", "", "", err
	}
	password, err := GetSecret("Enter password", a.out)
	if err != nil {
		return "", "", "", err
	}
	secondFactor, err := GetSecret("Enter two-factor code", a.out)
	if err != nil {
		return "", "", "", err
	}
	return userName, password, secondFactor, nil
}

// report prints err and hands it back, so commands can end with
// "return a.report(err)".
func (a *App) report(err error) error {
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
	}
	return err
}

func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in!")
		return common.ErrAlreadyLoggedIn
	}

	userName, password, secondFactor, err := a.readCredentials()
	if err != nil {
		return a.report(err)
	}

	if err := a.client.Register(ctx, userName, password, secondFactor); err != nil {
		switch {
		case errors.Is(err, common.ErrAlreadyLoggedIn):
			fmt.Fprintln(a.out, "Already logged in!")
		default:
			fmt.Fprintln(a.out, "Registration Failure!")
		}
		return err
	}

	fmt.Fprintln(a.out, "Registration Success!")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in!")
		return common.ErrAlreadyLoggedIn
	}

	userName, password, secondFactor, err := a.readCredentials()
	if err != nil {
		return a.report(err)
	}

	if err := a.client.Login(ctx, userName, password, secondFactor); err != nil {
		switch {
		case errors.Is(err, common.ErrBadSecondFactor):
			fmt.Fprintln(a.out, "Two-factor failure!")
		case errors.Is(err, common.ErrBadCredentials):
			fmt.Fprintln(a.out, "Incorrect username or password!")
		case errors.Is(err, common.ErrAlreadyLoggedIn):
			fmt.Fprintln(a.out, "Already logged in!")
		default:
			return a.report(err)
		}
		return err
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Success!")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	a.userName = ""
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Check(ctx context.Context) error {
	text, err := GetSimpleText(a.reader, "Enter text to check", a.out)
	if err != nil {
		return a.report(err)
	}

	res, err := a.client.Check(ctx, text)
	if err != nil {
		if errors.Is(err, common.ErrCheckEngineFailure) {
			fmt.Fprintln(a.out, "Spell check failed, try again later")
			return err
		}
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Query #%d\n", res.ID)
	fmt.Fprintf(a.out, "Supplied text: %s\n", text)
	fmt.Fprintf(a.out, "Misspelled words: %s\n", strings.Join(res.Misspelled, ", "))
	return nil
}

func (a *App) History(ctx context.Context, target string) error {
	res, err := a.client.History(ctx, target)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "%s: %d queries\n", res.UserName, len(res.Queries))
	for _, q := range res.Queries {
		fmt.Fprintf(a.out, "  #%d %q\n", q.ID, q.Text)
	}
	return nil
}

func (a *App) Query(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: query <id>")
		return err
	}

	q, err := a.client.Query(ctx, n)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Query #%d\n", q.ID)
	fmt.Fprintf(a.out, "Username: %s\n", q.UserName)
	fmt.Fprintf(a.out, "Query text: %s\n", q.Text)
	fmt.Fprintf(a.out, "Misspelled words: %s\n", strings.Join(q.Misspelled, ", "))
	return nil
}

func (a *App) LoginHistory(ctx context.Context, target string) error {
	res, err := a.client.LoginHistory(ctx, target)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Login history for %s\n", res.UserName)
	for _, r := range res.Records {
		logout := common.NotAvailable
		if r.LogoutTime != nil {
			logout = r.LogoutTime.Format(time.DateTime)
		}
		fmt.Fprintf(a.out, "  #%d login: %s logout: %s\n", r.ID, r.LoginTime.Format(time.DateTime), logout)
	}
	return nil
}
