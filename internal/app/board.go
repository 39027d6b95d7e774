package app

import (
	"context"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/adanyl0v/go-taskboard/internal/config"
	"github.com/adanyl0v/go-taskboard/internal/seed"
	"github.com/adanyl0v/go-taskboard/internal/services"
)

var (
	globalDirectory services.DirectoryService
	globalTaskStore services.TaskStore
)

// MustBuildBoard fills a fresh in-memory store with the seed workspace.
// Nothing survives a restart.
func MustBuildBoard() {
	cfg := config.Global().Auth

	members, err := seed.Members(cfg.DemoPassword, argon2id.DefaultParams)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to build seed members")
		panic(err)
	}
	projects := seed.Projects()
	globalDirectory = services.NewDirectoryService(componentLogger("directory"), members, projects)

	globalTaskStore = services.NewTaskStore(componentLogger("task_store"))
	err = seed.Load(context.Background(), globalTaskStore, time.Now())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to load seed tasks")
		panic(err)
	}

	globalLogger.Info().
		Int("members", len(members)).
		Int("projects", len(projects)).
		Int("tasks", len(seed.Tasks(time.Now()))).
		Msg("built board from seed")
}
