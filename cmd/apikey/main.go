// Command apikey mints gateway API keys signed with the server secret.
//
//	apikey -s "$ARCAIVES_SECRET_KEY" -r anon
//	apikey -s "$ARCAIVES_SECRET_KEY" -r service_role -t 720h
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/arcaives/internal/server/auth"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Getenv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(args []string, out io.Writer, getenv func(string) string) error {
	fs := flag.NewFlagSet("apikey", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	secret := fs.String("s", getenv("ARCAIVES_SECRET_KEY"), "API-key signing secret (default $ARCAIVES_SECRET_KEY)")
	roleName := fs.String("r", string(auth.RoleAnon), "role: anon or service_role")
	validity := fs.Duration("t", 0, "key lifetime; 0 means no expiry")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *secret == "" {
		return fmt.Errorf("secret is required (-s or ARCAIVES_SECRET_KEY)")
	}
	if *validity < 0 {
		return fmt.Errorf("validity must not be negative")
	}

	role, err := auth.ParseRole(*roleName)
	if err != nil {
		return err
	}

	key, err := auth.GenerateKey(role, []byte(*secret), *validity)
	if err != nil {
		return fmt.Errorf("sign key: %w", err)
	}
	_, err = fmt.Fprintln(out, key)
	return err
}
