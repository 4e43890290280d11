package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/and161185/six-cities/internal/health"
	"github.com/and161185/six-cities/internal/nav"
	"github.com/and161185/six-cities/internal/view"
)

// showOffer loads and prints an offer page. The session is checked first when a
// token is stored so the page knows whether reviews may be posted.
func (a *app) showOffer(ctx context.Context, id int) error {
	if a.tokens.Token() != "" {
		if err := a.d.CheckAuth(ctx); err != nil {
			a.log.Warn("check auth", zap.Error(err))
		}
	}
	if err := a.d.LoadOffer(ctx, id); err != nil {
		if a.history.Current() == nav.NotFound {
			return a.renderNotFound()
		}
		return err
	}
	a.renderOffer(view.Offer(a.store.State()))
	return nil
}

func healthCmd(a *app) *cobra.Command {
	var service string
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Query the server health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			resp, err := health.Check(ctx, a.cfg.HealthAddr, service)
			if err != nil {
				return err
			}
			out, err := health.Format(resp)
			if err != nil {
				return err
			}
			a.printf("%s\n", out)
			if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
				return fmt.Errorf("%s", resp.GetStatus())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&service, "service", "", "dependency name, e.g. postgres (default: overall)")
	return cmd
}

// prefs survive between runs next to the token file.
type prefs struct {
	CityID int `json:"city_id"`
}

func prefsPath(home string) string { return filepath.Join(home, "prefs.json") }

func loadPrefs(home string) (prefs, error) {
	var p prefs
	b, err := os.ReadFile(prefsPath(home))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, err
	}
	err = json.Unmarshal(b, &p)
	return p, err
}

func savePrefs(home string, p prefs) error {
	if err := os.MkdirAll(home, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(prefsPath(home), b, 0o600)
}
