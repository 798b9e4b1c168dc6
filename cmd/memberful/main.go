package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/memberwise/memberful-go/api"
	"github.com/memberwise/memberful-go/internal/config"
	"github.com/memberwise/memberful-go/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "memberful",
		Short:   "Memberful data in your terminal",
		Version: version.Get(),
	}

	rootCmd.AddCommand(membersCmd())
	rootCmd.AddCommand(subscriptionsCmd())
	rootCmd.AddCommand(syncCmd())

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}

func newClient() (*api.Client, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if cfg.APIKey == "" {
		return nil, errors.New("MEMBERFUL_API_KEY is not set")
	}
	return api.NewWithAPIKey(cfg.APIKey, api.WithBaseURL(cfg.BaseURL)), nil
}
