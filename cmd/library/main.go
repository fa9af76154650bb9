package main

import (
	"bufio"
	"context"
	stdLog "log"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/Astemirdum/library-records/library/app"
	"github.com/Astemirdum/library-records/library/config"
	"github.com/Astemirdum/library-records/pkg/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", err)
	}
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	return config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "library",
		Short:         "Library records service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(serveCmd(), migrateCmd(), adminCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Run: func(cmd *cobra.Command, args []string) {
			app.Run(loadConfig())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(postgres.MigrateUp), string(postgres.MigrateDown), string(postgres.MigrateStatus)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := postgres.MigrateUp
			if len(args) == 1 {
				direction = postgres.Direction(args[0])
			}
			return app.Migrate(cmd.Context(), loadConfig(), direction)
		},
	}
}

func adminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Administrative tasks",
	}

	var name, email string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			user, err := app.CreateAdmin(ctx, loadConfig(), name, email, password)
			if err != nil {
				return err
			}
			cmd.Printf("admin %s created with id %d\n", user.Email, user.ID)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "admin display name")
	create.Flags().StringVar(&email, "email", "", "admin email")
	_ = create.MarkFlagRequired("name")  //nolint:errcheck
	_ = create.MarkFlagRequired("email") //nolint:errcheck

	admin.AddCommand(create)
	return admin
}

// readPassword prompts without echo on a terminal and reads one line from stdin otherwise.
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", errors.Wrap(err, "read password")
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	cmd.Print("Password: ")
	first, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}
	cmd.Print("Repeat password: ")
	second, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
