package command

// root.go defines the root command for the churchfinder CLI.
// set up the global flags here.

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dondi-c/church-finder/cmd/cli/command/client"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
)

const requestTimeout = 15 * time.Second

var (
	apiURL  string // Global flag for API server URL
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "churchfinder",
	Short: "churchfinder - find churches near you",
	Long: `churchfinder is the command line client of the church-finder API. User can:
- Search the map area around a location for churches
- Filter them by denomination
- View a church with its service times and reviews
- Edit contact details, add service times and leave reviews

Use "churchfinder command --help" to see all available commands.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	defaultAPI := os.Getenv("CHURCHFINDER_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:5000"
	}

	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "API server URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log map activity to stderr")
}

// printError shows a failure the way the map view's toast does
func printError(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "✗ %v\n", err)
}

func newClient() *client.HTTPClient {
	return client.NewHTTPClient(apiURL)
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, requestTimeout)
}

var formValidator = newFormValidator()

// newFormValidator checks forms with the rules the server binds with, so a
// bad form never reaches the network.
func newFormValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := dto.RegisterValidators(v); err != nil {
		panic(err)
	}
	return v
}

func validateForm(form any) error {
	if err := formValidator.Struct(form); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid %s: failed %q rule", fe.Field(), fe.Tag())
		}
		return err
	}
	return nil
}
