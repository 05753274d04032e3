package cli

import (
	"context"
	"errors"
	"strings"

	"go-employee-admin/internal/client"
	"go-employee-admin/internal/domain"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultBaseURL = "http://localhost:8080/api/v1"

// API is the part of the REST client the commands use.
type API interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	GetEmployee(ctx context.Context, id int64) (domain.Employee, error)
	CreateEmployee(ctx context.Context, in client.EmployeeInput) (domain.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, in client.EmployeeInput) (domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	BulkDeleteEmployees(ctx context.Context, ids []int64) error
	ListDepartments(ctx context.Context) ([]client.Department, error)
	GetDepartment(ctx context.Context, id int64) (client.Department, error)
	CreateDepartment(ctx context.Context, in client.DepartmentInput) (client.Department, error)
	UpdateDepartment(ctx context.Context, id int64, in client.DepartmentInput) (client.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
	Login(ctx context.Context, email string) (client.Login, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (domain.Employee, error)
	UpdateProfile(ctx context.Context, in client.EmployeeInput) (domain.Employee, error)
}

type Config struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
	Verbose bool   `mapstructure:"verbose"`
}

// Factory builds the API client once the configuration is known.
type Factory func(cfg Config, logger *zap.Logger) API

func DefaultFactory(cfg Config, logger *zap.Logger) API {
	return client.New(cfg.BaseURL, client.WithToken(cfg.Token), client.WithLogger(logger))
}

type app struct {
	v       *viper.Viper
	factory Factory
	cfg     Config
	logger  *zap.Logger
	api     API
}

func NewRootCommand(factory Factory) *cobra.Command {
	a := &app{v: viper.New(), factory: factory, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Employee admin panel",
		Long:          `Browse, edit and export employee and department records.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default ./admin.yaml or $HOME/admin.yaml)")
	flags.String("base-url", defaultBaseURL, "API base URL")
	flags.String("token", "", "session token from `admin login`")
	flags.Bool("verbose", false, "log requests")

	_ = a.v.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = a.v.BindPFlag("token", flags.Lookup("token"))
	_ = a.v.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(
		a.employeesCommand(),
		a.exportCommand(),
		a.departmentsCommand(),
		a.reportsCommand(),
		a.documentsCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.profileCommand(),
		a.browseCommand(),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("EMPADMIN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName("admin")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		a.v.AddConfigPath("$HOME")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return err
	}
	if a.cfg.BaseURL == "" {
		a.cfg.BaseURL = defaultBaseURL
	}

	if a.cfg.Verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			a.logger = l
		}
	}
	a.api = a.factory(a.cfg, a.logger)
	return nil
}

// fail turns err into the one-line notification shown to the user.
func fail(err error, fallback string) error {
	return errors.New(client.Message(err, fallback))
}
