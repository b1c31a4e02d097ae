package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/jobs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		store, err := auth.NewStore(cfg.Auth.VerificationSize, cfg.Auth.VerificationTTL)
		if err != nil {
			return fmt.Errorf("create verification store: %w", err)
		}
		tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

		mailer, err := services.NewMailer(cfg.Mail, mailboxCredentials(db))
		if err != nil {
			return err
		}

		var notifier services.FeedbackNotifier = services.NopNotifier{}
		if cfg.SMS.Enabled() {
			notifier = services.NewSMSNotifier(cfg.SMS, adminPhone(db))
		}

		server, err := api.NewServer(cfg, api.Dependencies{
			Database: db,
			Auth:     auth.NewService(db, store, tokens, mailer),
			Notifier: notifier,
		})
		if err != nil {
			return fmt.Errorf("initialize server: %w", err)
		}

		scheduler := jobs.NewScheduler()
		if _, err := jobs.RegisterSweep(scheduler, cfg.Auth.SweepSpec, store, cfg.Auth.SweepGrace); err != nil {
			return fmt.Errorf("schedule verification sweep: %w", err)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return server.Run(gctx) })
		g.Go(func() error { return scheduler.Run(gctx) })
		return g.Wait()
	},
}

// openDatabase connects, migrates and seeds the store.
func openDatabase(ctx context.Context, cfg *config.Config) (database.Database, error) {
	gdb, err := database.Open(cfg.Database)
	if err != nil {
		return database.Database{}, err
	}
	db := database.New(gdb)

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return database.Database{}, err
	}

	seed, err := seedData(cfg.Seed)
	if err != nil {
		db.Close()
		return database.Database{}, err
	}
	detailsSeeded, credentialsSeeded, err := db.Seed(ctx, seed)
	if err != nil {
		db.Close()
		return database.Database{}, fmt.Errorf("seed database: %w", err)
	}
	if detailsSeeded {
		log.Info().Msg("Default admin details inserted")
	}
	if credentialsSeeded {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("Admin credentials seeded")
	}
	if count, err := db.AdminCredentialsRepo().Count(ctx); err == nil && count == 0 {
		log.Warn().Msg("No admin credentials stored; set ADMIN_EMAIL and ADMIN_PASSWORD to enable admin login")
	}

	log.Info().Str("type", cfg.Database.Type).Msg("Database ready")
	return db, nil
}

func seedData(seed config.SeedConfig) (database.SeedData, error) {
	data := database.SeedData{
		Details: models.AdminDetails{
			Address: seed.ContactAddress,
			Email:   seed.ContactEmail,
			Phone:   seed.ContactPhone,
		},
	}
	if seed.AdminEmail == "" || seed.AdminPassword == "" {
		return data, nil
	}

	hash, err := auth.HashPassword(seed.AdminPassword)
	if err != nil {
		return data, fmt.Errorf("hash admin password: %w", err)
	}
	data.Credentials = &models.AdminCredentials{
		Email:         seed.AdminEmail,
		EmailPassword: seed.AdminAppPassword,
		PasswordHash:  hash,
	}
	return data, nil
}

// mailboxCredentials sends verification mail from the admin mailbox itself.
func mailboxCredentials(db database.Database) services.SenderCredentials {
	return func(ctx context.Context) (string, string, error) {
		creds, err := db.AdminCredentialsRepo().First(ctx)
		if err != nil {
			return "", "", err
		}
		return creds.Email, creds.EmailPassword, nil
	}
}

func adminPhone(db database.Database) services.PhoneLookup {
	return func(ctx context.Context) (string, error) {
		details, err := db.AdminDetailsRepo().First(ctx)
		if err != nil {
			return "", err
		}
		return details.Phone, nil
	}
}
