package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/edukeeper/internal/client/api"
	"github.com/iudanet/edukeeper/internal/client/iocli"
	"github.com/iudanet/edukeeper/internal/client/ordering"
	"github.com/iudanet/edukeeper/internal/client/storage"
	"github.com/iudanet/edukeeper/internal/client/sync"
	"github.com/iudanet/edukeeper/internal/models"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Cli выполняет команды клиента поверх удалённого хранилища и локального кэша
type Cli struct {
	io       iocli.IO
	logger   *slog.Logger
	remote   api.DocumentStore
	cache    storage.LocalCache
	siblings func(collection models.EntityType) ordering.SiblingManager
	syncer   func(kind models.AggregateKind) sync.Service
	newID    func() string
}

// Settings параметры сервисов, которые создает Cli
type Settings struct {
	FanOut               int
	VersionPreconditions bool
}

// New создает Cli. Менеджеры списков и сервисы синхронизации создаются
// на каждую команду, своего состояния между командами у них нет
func New(io iocli.IO, logger *slog.Logger, remote api.DocumentStore, cache storage.LocalCache, settings Settings) *Cli {
	return &Cli{
		io:     io,
		logger: logger,
		remote: remote,
		cache:  cache,
		siblings: func(collection models.EntityType) ordering.SiblingManager {
			return ordering.NewManager(remote, collection, logger,
				ordering.WithVersionPreconditions(settings.VersionPreconditions))
		},
		syncer: func(kind models.AggregateKind) sync.Service {
			return sync.NewService(kind, remote, cache, logger, sync.WithFanOut(settings.FanOut))
		},
		newID: uuid.NewString,
	}
}

// resolveKind возвращает вид агрегата по имени флага --kind
func resolveKind(name string) (models.AggregateKind, error) {
	kind, ok := models.KindByName(name)
	if !ok {
		return models.AggregateKind{}, fmt.Errorf("unknown aggregate kind %q (want test or minigame)", name)
	}
	return kind, nil
}

// encode печатает v в формате yaml или json
func (c *Cli) encode(format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(c.io)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(c.io)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want yaml or json)", format)
	}
}

// decodeObject разворачивает JSON объект для вывода в yaml
func decodeObject(data json.RawMessage) (map[string]any, error) {
	obj := map[string]any{}
	if len(data) == 0 {
		return obj, nil
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return obj, nil
}

func (c *Cli) confirm(prompt string) (bool, error) {
	answer, err := c.io.ReadInput(prompt + " [y/N]: ")
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return answer == "y" || answer == "Y" || answer == "yes", nil
}
