package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/cobra"

	httpadapter "petverse/internal/adapter/http"
	metricsinmem "petverse/internal/adapter/metrics/inmemory"
	gormrepo "petverse/internal/adapter/repo/gorm"
	"petverse/internal/adapter/repo/memory"
	sqliterepo "petverse/internal/adapter/repo/sqlite"
	speciesadapter "petverse/internal/adapter/species"
	"petverse/internal/app/adopt"
	"petverse/internal/app/alerts"
	"petverse/internal/app/care"
	"petverse/internal/app/evolution"
	"petverse/internal/app/lifecycle"
	"petverse/internal/app/ports"
	"petverse/internal/app/status"
	"petverse/internal/config"
	"petverse/internal/sched"
)

var cfgPath string

func main() {
	root := &cobra.Command{
		Use:          "petd",
		Short:        "Virtual pet simulation and evolution server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to TOML config file")
	root.AddCommand(serveCmd(), speciesCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}
}

func speciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "species",
		Short: "List the species catalog and its stage chains",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			provider, err := buildSpeciesProvider(cfg)
			if err != nil {
				return err
			}
			catalog, err := provider.Species(context.Background())
			if err != nil {
				return err
			}
			for _, sp := range catalog {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", sp.ID, sp.Name)
				for _, stage := range sp.Chain {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d requirement(s), abilities %v\n",
						stage.Stage, len(stage.Requirements), stage.Abilities)
				}
			}
			return nil
		},
	}
}

func runServe(cfg config.Config) error {
	petRepo, wallet, stats, err := buildStorage(cfg.Storage)
	if err != nil {
		return err
	}
	speciesProvider, err := buildSpeciesProvider(cfg)
	if err != nil {
		return err
	}

	pets := lifecycle.NewStore(petRepo, sched.Ticker{}, lifecycle.Config{
		HungerInterval: cfg.Monitor.HungerInterval(),
		HealthInterval: cfg.Monitor.HealthInterval(),
		NeedInterval:   cfg.Monitor.NeedInterval(),
	})
	pets.DefaultAutoCare = lifecycle.AutoCare{
		Enabled:       cfg.AutoCare.Enabled,
		FeedThreshold: cfg.AutoCare.FeedThreshold,
		PlayThreshold: cfg.AutoCare.PlayThreshold,
	}
	defer pets.Dispose()

	kpi := metricsinmem.NewRecorder()
	h := httpadapter.Handler{
		Pets:     pets,
		AdoptUC:  adopt.UseCase{Pets: pets, Species: speciesProvider},
		StatusUC: status.UseCase{Pets: pets, Species: speciesProvider, Stats: stats},
		CareUC:   care.UseCase{Pets: pets, Wallet: wallet, Metrics: kpi},
		EvolveUC: evolution.UseCase{Pets: pets, Species: speciesProvider, Stats: stats},
		AlertsUC: alerts.UseCase{Pets: pets},
		KPI:      kpi,
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	h.RegisterRoutes(s)

	log.Printf("petverse listening on %s (%s storage)", cfg.Server.Addr, cfg.Storage.Driver)
	s.Spin()
	return nil
}

func buildStorage(st config.Storage) (ports.PetRepository, ports.CurrencyService, ports.StudyStatsProvider, error) {
	switch st.Driver {
	case "postgres":
		db, err := gormrepo.OpenPostgres(st.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := gormrepo.Migrate(db); err != nil {
			return nil, nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return gormrepo.NewPetRepo(db), gormrepo.NewWallet(db), gormrepo.NewStatsProvider(db), nil
	case "sqlite":
		db, err := sqliterepo.Open(st.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return sqliterepo.NewPetRepo(db), sqliterepo.NewWallet(db), sqliterepo.NewStatsProvider(db), nil
	case "memory":
		store := memory.NewStore()
		return memory.NewPetRepo(store), memory.NewWallet(store), memory.NewStatsProvider(store), nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", st.Driver)
	}
}

func buildSpeciesProvider(cfg config.Config) (ports.SpeciesProvider, error) {
	if cfg.SpeciesCatalog == "" {
		return speciesadapter.Static{}, nil
	}
	catalog, err := speciesadapter.LoadYAML(cfg.SpeciesCatalog)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}
