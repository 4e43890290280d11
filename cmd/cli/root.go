package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/and161185/six-cities/internal/actions"
	"github.com/and161185/six-cities/internal/api"
	"github.com/and161185/six-cities/internal/config"
	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/nav"
	"github.com/and161185/six-cities/internal/notify"
	"github.com/and161185/six-cities/internal/store"
	"github.com/and161185/six-cities/internal/tokenstore"
)

// app is the dependency graph shared by subcommands.
type app struct {
	out, errOut io.Writer

	cfg     *config.CLI
	log     *zap.Logger
	home    string
	tokens  *tokenstore.File
	client  *api.Client
	store   *store.Store
	history *nav.History
	d       *actions.Dispatcher
	rng     actions.IntN
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	var cfgFile string

	root := &cobra.Command{
		Use:           "sixcities",
		Short:         "Browse rental offers in six European cities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v := config.New(cfgFile)
			flags := cmd.Root().PersistentFlags()
			for key, name := range map[string]string{
				"api.url":     "api",
				"api.timeout": "timeout",
				"home":        "home",
				"debug":       "debug",
				"healthaddr":  "health-addr",
			} {
				if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
					return err
				}
			}
			return a.init(v)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./sixcities.yaml)")
	pf.String("api", "", "API base URL")
	pf.Duration("timeout", 0, "request timeout")
	pf.String("home", "", "state dir (default ~/.config/sixcities)")
	pf.Bool("debug", false, "verbose logging")
	pf.String("health-addr", "", "gRPC health endpoint of the server")

	root.AddCommand(
		versionCmd(),
		loginCmd(a), registerCmd(a), logoutCmd(a), statusCmd(a), suggestCmd(a),
		citiesCmd(a), cityCmd(a), offersCmd(a), offerCmd(a), commentCmd(a), statsCmd(a), openCmd(a),
		healthCmd(a),
	)
	root.SetOut(out)
	root.SetErr(errOut)
	return root
}

// init builds the client side: store, REST client, token file, navigator and dispatcher.
func (a *app) init(v *viper.Viper) error {
	cfg, err := config.LoadCLI(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = zap.NewNop()
	if cfg.Debug {
		if a.log, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	a.home = cfg.Home
	if a.home == "" {
		a.home = tokenstore.DefaultDir()
	}
	a.tokens = tokenstore.New(a.home)
	a.client = api.New(cfg.API.URL, cfg.API.Timeout, a.tokens)
	a.store = store.New(store.Initial(), store.WithLogger(a.log))
	a.history = &nav.History{}
	a.d = actions.New(a.store, a.client, a.history, notify.NewWriter(a.errOut, a.log),
		actions.WithTokens(a.tokens),
		actions.WithLogger(a.log),
	)
	if a.rng == nil {
		now := uint64(time.Now().UnixNano())
		a.rng = rand.New(rand.NewPCG(now, now>>1))
	}

	store.Watch(a.store, store.AuthorizationStatus, func(s model.AuthorizationStatus) {
		a.log.Debug("authorization changed", zap.String("status", string(s)))
	})

	p, err := loadPrefs(a.home)
	if err != nil {
		a.log.Warn("load prefs", zap.Error(err))
	}
	if p.CityID != 0 {
		a.store.Dispatch(store.ChangeCity{CityID: p.CityID})
	}
	return nil
}

func (a *app) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 2*a.cfg.API.Timeout+time.Second)
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Args:  cobra.NoArgs,
		// no config needed
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sixcities %s (%s)\n", version, buildDate)
		},
	}
}
