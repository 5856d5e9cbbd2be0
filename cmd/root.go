package cmd

import (
	"context"
	"fmt"
	"os"

	cobra "github.com/spf13/cobra"
	viper "github.com/spf13/viper"

	config "github.com/inference-gateway/desktop-mcp/config"
	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
	factory "github.com/inference-gateway/desktop-mcp/internal/factory"
	handlers "github.com/inference-gateway/desktop-mcp/internal/handlers"
	logger "github.com/inference-gateway/desktop-mcp/internal/logger"
)

// V holds configuration defaults, the config file, environment overrides
// and bound flags
var V = config.NewViper()

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "desktop-mcp",
	Short: "Desktop automation over the Model Context Protocol",
	Long: `desktop-mcp exposes mouse, keyboard, screen, window and clipboard
automation as MCP tools. Run 'desktop-mcp serve' to start the server over
stdio, or use 'desktop-mcp call' to run a single tool from a script.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("backend", "", "automation backend: auto, win32, x11, robotgo or virtual")
	bindFlag(rootCmd, "backend.name", "backend")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := loadConfig(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() error {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	configPath, _ := rootCmd.PersistentFlags().GetString("config")

	loaded, err := config.Load(V, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg = loaded
	logger.Init(verbose, cfg)
	return nil
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if err := V.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

func getConfig() (*config.Config, error) {
	if cfg == nil {
		if err := loadConfig(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newDispatcher wires the provider factory into a tool dispatcher
func newDispatcher(c *config.Config) (*handlers.Dispatcher, *factory.Factory) {
	f := factory.New(c)
	d := handlers.NewDispatcher(c, func(ctx context.Context) domain.AutomationProvider {
		return f.Provider(ctx)
	})
	return d, f
}

// GetViper returns the command configuration store
func GetViper() *viper.Viper {
	return V
}
