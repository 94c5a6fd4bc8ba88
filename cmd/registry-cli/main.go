package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ruteri/inventor-registry/api/clients"
	"github.com/ruteri/inventor-registry/cmd/flags"
	"github.com/ruteri/inventor-registry/interfaces"
	"github.com/ruteri/inventor-registry/registry"
	"github.com/urfave/cli/v2"
)

var flagCaller = &cli.StringFlag{
	Name:    "caller",
	Usage:   "identity sent as the caller of state-mutating requests",
	EnvVars: []string{flags.EnvPrefix + "CALLER"},
}

var flagName = &cli.StringFlag{
	Name:     "name",
	Required: true,
	Usage:    "inventor name",
}

var flagCredentials = &cli.StringFlag{
	Name:     "credentials",
	Required: true,
	Usage:    "inventor credentials",
}

// errRejected is returned when the registry answered with an err result, so
// the process exits non-zero after printing it.
var errRejected = errors.New("rejected by registry")

const usage string = `Talks to an inventor registry server.

State-mutating commands print the registry result, e.g. {"type":"err","value":403},
and exit with a non-zero status when the registry rejects the call.`

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:  "registry-cli",
		Usage: usage,
		Flags: []cli.Flag{
			flags.ServerAddrFlag,
			flagCaller,
		},
		Commands: []*cli.Command{
			{
				Name:      "register",
				Usage:     "register the caller as an inventor",
				Flags:     []cli.Flag{flagName, flagCredentials},
				ArgsUsage: " ",
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx, true)
					if err != nil {
						return err
					}
					res, err := c.RegisterInventor(cCtx.Context, cCtx.String(flagName.Name), cCtx.String(flagCredentials.Name))
					return printResult(out, res, err)
				},
			},
			{
				Name:      "verify",
				Usage:     "verify an inventor (admin only)",
				ArgsUsage: "<identity>",
				Action: func(cCtx *cli.Context) error {
					return withIdentityResult(cCtx, out, func(ctx context.Context, c *clients.RegistryClient, id interfaces.Identity) (registry.Result, error) {
						return c.VerifyInventor(ctx, id)
					})
				},
			},
			{
				Name:      "transfer-admin",
				Usage:     "hand the admin role to another identity (admin only)",
				ArgsUsage: "<new-admin>",
				Action: func(cCtx *cli.Context) error {
					return withIdentityResult(cCtx, out, func(ctx context.Context, c *clients.RegistryClient, id interfaces.Identity) (registry.Result, error) {
						return c.TransferAdmin(ctx, id)
					})
				},
			},
			{
				Name:      "is-inventor",
				Usage:     "check whether an identity is registered",
				ArgsUsage: "<identity>",
				Action: func(cCtx *cli.Context) error {
					c, id, err := clientAndIdentity(cCtx, false)
					if err != nil {
						return err
					}
					value, err := c.IsInventor(cCtx.Context, id)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, value)
					return nil
				},
			},
			{
				Name:      "is-verified",
				Usage:     "check whether an identity is a verified inventor",
				ArgsUsage: "<identity>",
				Action: func(cCtx *cli.Context) error {
					c, id, err := clientAndIdentity(cCtx, false)
					if err != nil {
						return err
					}
					value, err := c.IsVerifiedInventor(cCtx.Context, id)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, value)
					return nil
				},
			},
			{
				Name:  "admin",
				Usage: "print the current admin",
				Action: func(cCtx *cli.Context) error {
					c, err := newClient(cCtx, false)
					if err != nil {
						return err
					}
					admin, err := c.Admin(cCtx.Context)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, admin)
					return nil
				},
			},
			{
				Name:      "get",
				Usage:     "print the record of an inventor",
				ArgsUsage: "<identity>",
				Action: func(cCtx *cli.Context) error {
					c, id, err := clientAndIdentity(cCtx, false)
					if err != nil {
						return err
					}
					record, err := c.Inventor(cCtx.Context, id)
					if err != nil {
						return err
					}
					encoded, err := json.Marshal(record)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, string(encoded))
					return nil
				},
			},
		},
	}
}

func newClient(cCtx *cli.Context, needCaller bool) (*clients.RegistryClient, error) {
	var caller interfaces.Identity
	if raw := cCtx.String(flagCaller.Name); raw != "" || needCaller {
		var err error
		caller, err = interfaces.ParseIdentity(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", flagCaller.Name, err)
		}
	}
	return clients.NewRegistryClient(cCtx.String(flags.ServerAddrFlag.Name), caller), nil
}

func clientAndIdentity(cCtx *cli.Context, needCaller bool) (*clients.RegistryClient, interfaces.Identity, error) {
	if cCtx.NArg() != 1 {
		return nil, "", fmt.Errorf("expected exactly one identity argument, got %d", cCtx.NArg())
	}
	id, err := interfaces.ParseIdentity(cCtx.Args().First())
	if err != nil {
		return nil, "", err
	}

	c, err := newClient(cCtx, needCaller)
	if err != nil {
		return nil, "", err
	}
	return c, id, nil
}

func withIdentityResult(cCtx *cli.Context, out io.Writer, call func(context.Context, *clients.RegistryClient, interfaces.Identity) (registry.Result, error)) error {
	c, id, err := clientAndIdentity(cCtx, true)
	if err != nil {
		return err
	}
	res, err := call(cCtx.Context, c, id)
	return printResult(out, res, err)
}

func printResult(out io.Writer, res registry.Result, err error) error {
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(encoded))

	if !res.IsOk() {
		return fmt.Errorf("%w: %w", errRejected, res.Err())
	}
	return nil
}
