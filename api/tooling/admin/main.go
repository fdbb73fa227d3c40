// This program performs administrative tasks for the agenda service.
package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/agenda/business/domain/userbus"
	"github.com/jcpaschoal/agenda/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/agenda/business/sdk/migrate"
	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jcpaschoal/agenda/business/types/role"
	"github.com/jcpaschoal/agenda/business/types/slug"
	"github.com/jcpaschoal/agenda/business/types/status"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"agenda"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "admin", "ERROR", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [flags]")
		fmt.Println("Commands: migrate, create-company, create-user, genkey")
		return nil
	}

	if os.Args[1] == "genkey" {
		return runGenKey(os.Args[2:])
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "migrate":
		return runMigrate(ctx, db)
	case "create-company":
		return runCreateCompany(ctx, tenantbus.NewCore(log, tenantdb.NewStore(log, db)), os.Args[2:])
	case "create-user":
		return runCreateUser(ctx, userbus.NewCore(log, userdb.NewStore(log, db)), os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runMigrate(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := migrate.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	fmt.Println("migrations complete")
	return nil
}

func runCreateCompany(ctx context.Context, tb *tenantbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-company", flag.ExitOnError)
	nameStr := cmd.String("name", "", "Company name (required)")
	emailStr := cmd.String("email", "", "Company contact email")
	urlStr := cmd.String("url", "", "Public booking page handle")
	planStr := cmd.String("plan", tenantbus.DefaultPlan, "Subscription plan")
	statusStr := cmd.String("status", status.Active.String(), "Account status (active, trial, suspended, cancelled)")
	cmd.Parse(args)

	if *nameStr == "" {
		cmd.PrintDefaults()
		return errors.New("missing required fields")
	}

	sts, err := status.Parse(*statusStr)
	if err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}

	customURL, err := slug.ParseNull(*urlStr)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	tnt, err := tb.Create(ctx, tenantbus.NewTenant{
		Name:      *nameStr,
		Email:     *emailStr,
		Plan:      *planStr,
		Status:    sts,
		CustomURL: customURL,
	})
	if err != nil {
		return fmt.Errorf("create company: %w", err)
	}

	fmt.Printf("company created\nID: %s\nName: %s\nStatus: %s\n", tnt.ID, tnt.Name, tnt.Status)
	return nil
}

func runCreateUser(ctx context.Context, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	emailStr := cmd.String("email", "", "User email (required)")
	passStr := cmd.String("password", "", "User password (required)")
	nameStr := cmd.String("name", "", "User full name (required)")
	roleStr := cmd.String("role", role.Professional.String(), "User role (super_admin, company_admin, professional)")
	companyStr := cmd.String("company-id", "", "Company the user belongs to")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return errors.New("missing required fields")
	}

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	var companyID *uuid.UUID
	if *companyStr != "" {
		id, err := uuid.Parse(*companyStr)
		if err != nil {
			return fmt.Errorf("invalid company id: %w", err)
		}
		companyID = &id
	}

	usr, err := ub.Create(ctx, userbus.NewUser{
		Name:      *nameStr,
		Email:     *emailStr,
		Role:      r,
		Password:  *passStr,
		CompanyID: companyID,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("user created\nID: %s\nEmail: %s\nRole: %s\n", usr.ID, usr.Email.Address, usr.Role)
	return nil
}

// runGenKey creates an RSA private key file named after a new key id. The key
// id is what the service expects in AUTH_ACTIVE_KID.
func runGenKey(args []string) error {
	cmd := flag.NewFlagSet("genkey", flag.ExitOnError)
	dir := cmd.String("dir", "zarf/keys", "Folder the key is written to")
	cmd.Parse(args)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	if err := os.MkdirAll(*dir, 0o700); err != nil {
		return fmt.Errorf("creating key folder: %w", err)
	}

	kid := uuid.NewString()

	file, err := os.Create(filepath.Join(*dir, kid+".pem"))
	if err != nil {
		return fmt.Errorf("creating private file: %w", err)
	}
	defer file.Close()

	block := pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	if err := pem.Encode(file, &block); err != nil {
		return fmt.Errorf("encoding to private file: %w", err)
	}

	fmt.Printf("private key generated\nKID: %s\n", kid)
	return nil
}
