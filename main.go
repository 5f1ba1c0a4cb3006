// itsa files UK Income Tax Self-Assessment updates with HMRC's Make
// Tax Digital API.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ac000/itsa/colorize"
	"github.com/ac000/itsa/config"
	"github.com/ac000/itsa/mtd"
)

type app struct {
	cfg    *config.Config
	client *mtd.Client

	out    *colorize.Printer
	errOut *colorize.Printer
}

func (a *app) exitOnError(err error) {
	if err == nil {
		return
	}
	a.errOut.Errorf("%s\n", err)
	os.Exit(1)
}

// setup loads the configuration and builds the API client. Commands
// that talk to the API call this first.
func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	b := cfg.Business()
	a.client = mtd.New(mtd.Config{
		BaseURL:      cfg.BaseURL(),
		AccessToken:  cfg.AccessToken,
		NINO:         cfg.NINO,
		BusinessID:   b.ID,
		BusinessType: b.Type,
	})

	a.printAPIInfo()

	return nil
}

func (a *app) printAPIInfo() {
	api := "#TANG#TEST#RST#"
	if a.cfg.ProductionAPI {
		api = "#RED#PRODUCTION#RST#"
	}

	a.out.Infof("***\n")
	a.out.Infof("*** Using %s API\n", api)
	a.out.Infof("***\n")

	b := a.cfg.Business()
	if b.ID != "" {
		a.out.Infof("*** Using business : #BOLD#%s#RST# [#BOLD#%s#RST#]\n",
			b.Name, b.ID)
		a.out.Infof("***\n")
	}
	a.out.Printf("\n")
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "itsa",
		Short:         "itsa files UK Income Tax Self-Assessment updates via HMRC's MTD API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		a.listPeriodsCmd(),
		a.listCalculationsCmd(),
		a.viewSavingsAccountsCmd(),
		a.versionCmd(),
	)

	return cmd
}

// setupLogging configures the global zerolog level from ITSA_LOG_LEVEL
// (d* for debug, i* for info, anything else stays at warn).
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	switch lv := os.Getenv("ITSA_LOG_LEVEL"); {
	case lv != "" && lv[0] == 'd':
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case lv != "" && lv[0] == 'i':
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()
}

func main() {
	setupLogging()

	mode := colorize.ModeFromEnv()
	a := &app{
		out:    colorize.NewPrinter(os.Stdout, mode),
		errOut: colorize.NewPrinter(os.Stderr, mode),
	}

	if err := a.rootCmd().Execute(); err != nil {
		a.exitOnError(err)
	}
}
