package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/spellcheckd/internal/client/client"
	"github.com/dmitrijs2005/spellcheckd/internal/client/config"
)

type App struct {
	client   client.Client
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return newApp(apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c client.Client, in io.Reader, out io.Writer) *App {
	return &App{client: c, reader: bufio.NewReader(in), out: out}
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "guest"
}

// Run blocks until the user exits or stdin is closed. An open session is
// logged out on the way out.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.isLoggedIn() {
			_ = a.client.Logout(context.WithoutCancel(ctx))
		}
		_ = a.client.Close()
	}()

	fmt.Fprintln(a.out, "spellcheckd CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}
