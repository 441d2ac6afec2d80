package main

import (
	"Chronicle/internal/api/config"
	"Chronicle/internal/pkg/mongo"
	"Chronicle/internal/repository"
	"Chronicle/internal/service"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// passwordEnv 未通过参数或标准输入提供密码时读取的环境变量
const passwordEnv = "CHRONICLE_ADMIN_PASSWORD"

var (
	configDir     string
	username      string
	password      string
	passwordStdin bool
)

var rootCmd = &cobra.Command{
	Use:   "chronicle-admin",
	Short: "Provision Chronicle administrator accounts",
	Long: `chronicle-admin manages the accounts allowed into the Chronicle back office.

It reads the same configuration as the server (configs/config.yaml plus
CHRONICLE_* environment overrides) and talks to MongoDB directly.`,
	SilenceUsage: true,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an administrator",
	Long: `Create an administrator account with a bcrypt-hashed password.

Examples:
  printf '%s\n' "$PW" | chronicle-admin create --username admin --password-stdin
  CHRONICLE_ADMIN_PASSWORD="$PW" chronicle-admin create -u admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := resolvePassword(cmd.InOrStdin(), password, passwordStdin, os.Getenv(passwordEnv))
		if err != nil {
			return err
		}
		return withAccounts(cmd.Context(), func(ctx context.Context, accounts service.AccountService) error {
			if err := accounts.CreateAdmin(ctx, username, pw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q created\n", username)
			return nil
		})
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Replace an administrator's password",
	Long: `Replace the password of an existing administrator.

Examples:
  printf '%s\n' "$PW" | chronicle-admin passwd --username admin --password-stdin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := resolvePassword(cmd.InOrStdin(), password, passwordStdin, os.Getenv(passwordEnv))
		if err != nil {
			return err
		}
		return withAccounts(cmd.Context(), func(ctx context.Context, accounts service.AccountService) error {
			if err := accounts.ChangePassword(ctx, username, pw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password for %q updated\n", username)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./configs", "Directory containing config.yaml")

	for _, c := range []*cobra.Command{createCmd, passwdCmd} {
		c.Flags().StringVarP(&username, "username", "u", "", "Administrator username")
		c.Flags().StringVarP(&password, "password", "p", "", "Administrator password (visible in shell history, prefer --password-stdin)")
		c.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from the first line of stdin")
		c.MarkFlagsMutuallyExclusive("password", "password-stdin")
		_ = c.MarkFlagRequired("username")
		rootCmd.AddCommand(c)
	}
}

// resolvePassword 依次取参数、标准输入首行、环境变量
func resolvePassword(stdin io.Reader, flagValue string, fromStdin bool, envValue string) (string, error) {
	switch {
	case flagValue != "":
		return flagValue, nil
	case fromStdin:
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return "", errors.New("empty password on stdin")
		}
		return line, nil
	case envValue != "":
		return envValue, nil
	}
	return "", fmt.Errorf("password required: use --password-stdin or set %s", passwordEnv)
}

// withAccounts 连接 Mongo 后执行, 结束时断开
func withAccounts(parent context.Context, fn func(ctx context.Context, accounts service.AccountService) error) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	db, err := mongo.InitMongo(cfg.Mongo)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		_ = db.Client().Disconnect(context.Background())
	}()

	ctx, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()
	return fn(ctx, service.NewAccountService(repository.NewAdminRepo(db)))
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
