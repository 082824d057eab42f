package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillgraph/skillgraph/internal/common"
)

// Register prompts for account details and signs up. Authentication errors
// are shown inline and the user may retry.
func (a *App) Register(ctx context.Context) error {
	name, err := a.readLine("Name: ")
	if err != nil {
		return err
	}
	email, err := a.readLine("Email: ")
	if err != nil {
		return err
	}
	password, err := a.readPassword("Password: ")
	if err != nil {
		return err
	}

	if err := a.session.SignUp(ctx, name, email, password); err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return fmt.Errorf("registration failed: %w", err)
		}
		return err
	}
	printlnFn("Registered as", email)
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := a.readLine("Email: ")
	if err != nil {
		return err
	}
	password, err := a.readPassword("Password: ")
	if err != nil {
		return err
	}

	if err := a.session.LogIn(ctx, email, password); err != nil {
		return err
	}
	printlnFn("Logged in as", email)
	return nil
}

// GoogleLogin prompts for the federated identity attributes and
// authenticates. The external subject id would normally come from the
// provider's token; here it is entered directly.
func (a *App) GoogleLogin(ctx context.Context) error {
	externalID, err := a.readLine("Google subject id: ")
	if err != nil {
		return err
	}
	email, err := a.readLine("Email: ")
	if err != nil {
		return err
	}
	name, err := a.readLine("Name: ")
	if err != nil {
		return err
	}

	if err := a.session.LogInFederated(ctx, externalID, email, name); err != nil {
		return err
	}
	printlnFn("Logged in as", email)
	return nil
}

// Logout clears the persisted identity and working state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.LogOut(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}
