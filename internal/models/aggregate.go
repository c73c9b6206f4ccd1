package models

import "time"

// EntityType names one level of an aggregate. The same name is used as the
// remote collection and as the local cache table.
type EntityType string

const (
	EntityTest             EntityType = "tests"
	EntityTestQuestion     EntityType = "test_questions"
	EntityTestOption       EntityType = "test_options"
	EntityMiniGame         EntityType = "minigames"
	EntityMiniGameQuestion EntityType = "minigame_questions"
	EntityMiniGameOption   EntityType = "minigame_options"
)

// AggregateKind описывает трёхуровневый агрегат: корень, дети, внуки
type AggregateKind struct {
	Name       string
	Root       EntityType
	Child      EntityType
	Grandchild EntityType
}

var (
	// KindTest тест с вопросами и вариантами ответов
	KindTest = AggregateKind{
		Name:       "test",
		Root:       EntityTest,
		Child:      EntityTestQuestion,
		Grandchild: EntityTestOption,
	}

	// KindMiniGame мини-игра с вопросами и вариантами ответов
	KindMiniGame = AggregateKind{
		Name:       "minigame",
		Root:       EntityMiniGame,
		Child:      EntityMiniGameQuestion,
		Grandchild: EntityMiniGameOption,
	}
)

// AggregateKinds lists every aggregate known to the application.
func AggregateKinds() []AggregateKind {
	return []AggregateKind{KindTest, KindMiniGame}
}

// KindByName returns the aggregate kind registered under name.
func KindByName(name string) (AggregateKind, bool) {
	for _, k := range AggregateKinds() {
		if k.Name == name {
			return k, true
		}
	}
	return AggregateKind{}, false
}

// Level reports whether entity belongs to this kind and at which depth
// (0 root, 1 child, 2 grandchild).
func (k AggregateKind) Level(entity EntityType) (int, bool) {
	switch entity {
	case k.Root:
		return 0, true
	case k.Child:
		return 1, true
	case k.Grandchild:
		return 2, true
	default:
		return 0, false
	}
}

// SyncStatus эфемерная информация о синхронизации типа сущности.
// Живёт только в памяти процесса, не сохраняется.
type SyncStatus struct {
	LastSyncTime time.Time  `json:"last_sync_time"`
	LastError    string     `json:"last_error,omitempty"`
	EntityType   EntityType `json:"entity_type"`
	IsSyncing    bool       `json:"is_syncing"`
}

// Test корневой документ теста
type Test struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	ClassID     string    `json:"class_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TimeLimit   int       `json:"time_limit_minutes,omitempty"`
}

// MiniGame корневой документ мини-игры
type MiniGame struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	LessonID  string    `json:"lesson_id"`
	Title     string    `json:"title"`
	GameType  string    `json:"game_type,omitempty"`
}

// Question payload вопроса (sibling под корнем)
type Question struct {
	Text   string `json:"text"`
	Points int    `json:"points,omitempty"`
}

// Option payload варианта ответа (sibling под вопросом)
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}
