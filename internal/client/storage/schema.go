package storage

import (
	"fmt"

	"github.com/iudanet/edukeeper/internal/models"
)

// ForeignKey ссылка колонки Column на id строки таблицы References (ON DELETE CASCADE)
type ForeignKey struct {
	Column     string
	References models.EntityType
}

// Dependent таблица и колонка, ссылающиеся на другую таблицу
type Dependent struct {
	Table  models.EntityType
	Column string
}

// Schema описывает таблицы кэша и их внешние ключи
type Schema map[models.EntityType][]ForeignKey

// DefaultSchema строит схему из зарегистрированных агрегатов:
// дети ссылаются на корень, внуки на детей через parent_key
func DefaultSchema() Schema {
	s := Schema{}
	for _, k := range models.AggregateKinds() {
		s[k.Root] = nil
		s[k.Child] = []ForeignKey{{Column: models.FieldParentKey, References: k.Root}}
		s[k.Grandchild] = []ForeignKey{{Column: models.FieldParentKey, References: k.Child}}
	}
	return s
}

// Tables возвращает все таблицы схемы
func (s Schema) Tables() []models.EntityType {
	tables := make([]models.EntityType, 0, len(s))
	for t := range s {
		tables = append(tables, t)
	}
	return tables
}

// Check возвращает ErrUnknownTable, если таблицы нет в схеме
func (s Schema) Check(table models.EntityType) error {
	if _, ok := s[table]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return nil
}

// ForeignKeys возвращает внешние ключи таблицы
func (s Schema) ForeignKeys(table models.EntityType) []ForeignKey {
	return s[table]
}

// Dependents возвращает таблицы, чьи внешние ключи ссылаются на table
func (s Schema) Dependents(table models.EntityType) []Dependent {
	var deps []Dependent
	for t, fks := range s {
		for _, fk := range fks {
			if fk.References == table {
				deps = append(deps, Dependent{Table: t, Column: fk.Column})
			}
		}
	}
	return deps
}
