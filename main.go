package main

import (
	"encoding/json"
	"fmt"
	"os"

	api "fundraise-backend/cmd/api"
	authdomain "fundraise-backend/internal/auth/domain"
	authRepo "fundraise-backend/internal/auth/repository"
	chatbotDelivery "fundraise-backend/internal/chatbot/delivery"
	"fundraise-backend/pkg/config"
	"fundraise-backend/pkg/database"
	"fundraise-backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "fundraise",
	Short: "Fundraising CRM backend with an email chatbot",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	RunE:         runServe,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP API (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("database migrated")
		return nil
	},
}

var chatUser string

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Run one message through the chatbot and print the JSON reply",
	Args:  cobra.ExactArgs(1),
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatUser, "user", "", "username recorded as the acting user")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	handler, err := api.NewHandler(cmd.Context(), db, cfg, log)
	if err != nil {
		return err
	}
	return handler.Start(":" + cfg.Port)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	var actor *authdomain.User
	if chatUser != "" {
		actor, err = authRepo.NewUserRepository(db).FindByUsername(chatUser)
		if err != nil {
			return err
		}
		if actor == nil {
			return fmt.Errorf("user %q not found", chatUser)
		}
	}

	handler, err := api.NewHandler(cmd.Context(), db, cfg, log)
	if err != nil {
		return err
	}

	resp, err := handler.Chatbot().Process(cmd.Context(), args[0], actor)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(chatbotDelivery.NewChatResponse(resp))
}
