package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"task_tracker/internal/config"
	"task_tracker/internal/logger"
	"task_tracker/internal/service"

	"github.com/spf13/cobra"
)

// hashPasswordConfig holds flags for the hash-password command.
type hashPasswordConfig struct {
	cost int
}

// newHashPasswordCmd prints a bcrypt hash, for seeding users directly into the database.
func newHashPasswordCmd() *cobra.Command {
	cfg := &hashPasswordConfig{}

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash of a password (reads stdin when no argument is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHashPassword(cmd, cfg, args)
		},
	}

	cmd.Flags().IntVar(&cfg.cost, "cost", 0, "bcrypt cost (default: auth.bcrypt_cost from config)")

	return cmd
}

func runHashPassword(cmd *cobra.Command, cfg *hashPasswordConfig, args []string) error {
	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	cost := cfg.cost
	if cost == 0 {
		appCfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cost = appCfg.Auth.BcryptCost
	}

	hash, err := service.NewBcryptHasher(cost, logger.Nop()).Hash(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
	return err
}
