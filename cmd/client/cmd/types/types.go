// Package types holds what the client commands share: the context key the
// App travels under, prompts and notices.
package types

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bookshelf/internal/app/client"
)

type contextKey string

const ClientAppKey contextKey = "client_app"

var ErrNoApp = errors.New("client is not initialized")

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	failureColor = color.New(color.FgRed, color.Bold)
)

// App returns the client App that the root command put into the context.
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}
	return app, nil
}

func Success(w io.Writer, format string, a ...any) {
	_, _ = successColor.Fprintf(w, "✓ "+format+"\n", a...)
}

func Warn(w io.Writer, format string, a ...any) {
	_, _ = warnColor.Fprintf(w, "! "+format+"\n", a...)
}

func Failure(w io.Writer, format string, a ...any) {
	_, _ = failureColor.Fprintf(w, "✗ "+format+"\n", a...)
}

// Prompt asks for one line of input. It reads byte by byte so that later
// prompts still see the rest of a piped stdin.
func Prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)

	var line strings.Builder
	b := make([]byte, 1)
	for {
		n, err := cmd.InOrStdin().Read(b)
		if n > 0 {
			if b[0] == '\n' {
				break
			}
			line.WriteByte(b[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && line.Len() > 0 {
				break
			}
			return "", fmt.Errorf("read input: %w", err)
		}
	}
	return strings.TrimSpace(line.String()), nil
}

// ReadPassword asks for a secret without echoing it when stdin is a terminal.
func ReadPassword(cmd *cobra.Command, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if cmd.InOrStdin() != os.Stdin || !term.IsTerminal(fd) {
		return Prompt(cmd, label)
	}

	fmt.Fprint(cmd.OutOrStdout(), label)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}
