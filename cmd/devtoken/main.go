// Command devtoken mints an identity token signed with AUTH_TOKEN_SECRET for
// local development against the storefront API.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"storefront.backend/internal/config"
	"storefront.backend/pkg/jwt"
)

type devTokenDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	out     io.Writer
}

func defaultDevTokenDeps() devTokenDeps {
	return devTokenDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		out:     os.Stdout,
	}
}

func resolveSubject(subject, email string) string {
	if subject != "" {
		return subject
	}
	return "dev|" + strings.ToLower(strings.TrimSpace(email))
}

func runDevToken(args []string, deps devTokenDeps) error {
	def := defaultDevTokenDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("devtoken", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "account email (required)")
	subjectFlag := fs.String("subject", "", "identity subject (defaults to dev|<email>)")
	nameFlag := fs.String("name", "", "display name")
	ttlFlag := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *emailFlag == "" {
		return fmt.Errorf("--email is required")
	}
	if *ttlFlag <= 0 {
		return fmt.Errorf("--ttl must be positive")
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()

	svc := jwt.NewIdentityService(cfg.Auth.TokenSecret, cfg.Auth.Issuer, cfg.Auth.Audience)
	subject := resolveSubject(*subjectFlag, *emailFlag)
	token, err := svc.IssueToken(subject, *emailFlag, *nameFlag, "", *ttlFlag)
	if err != nil {
		return fmt.Errorf("failed signing token: %w", err)
	}

	_, _ = fmt.Fprintf(deps.out, "subject=%s\n", subject)
	if cfg.Auth.IsAdminEmail(*emailFlag) {
		_, _ = fmt.Fprintln(deps.out, "role=admin")
	}
	_, _ = fmt.Fprintf(deps.out, "TOKEN=%s\n", token)
	return nil
}

func main() {
	if err := runDevToken(os.Args[1:], defaultDevTokenDeps()); err != nil {
		log.Fatal(err)
	}
}
