package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iudanet/edukeeper/internal/models"
)

// aggregateView агрегат из локального кэша для вывода
type aggregateView struct {
	Root     map[string]any `json:"root" yaml:"root"`
	ID       string         `json:"id" yaml:"id"`
	Kind     string         `json:"kind" yaml:"kind"`
	Children []childView    `json:"children" yaml:"children"`
}

type childView struct {
	Payload       map[string]any `json:"payload" yaml:"payload"`
	ID            string         `json:"id" yaml:"id"`
	Grandchildren []siblingView  `json:"grandchildren" yaml:"grandchildren"`
	Order         int            `json:"order" yaml:"order"`
}

// runShow синхронизирует агрегат (или берет из кэша) и печатает его из кэша
func (c *Cli) runShow(ctx context.Context, kind models.AggregateKind, rootID, format string, force bool) error {
	if _, err := c.syncer(kind).SyncAggregate(ctx, rootID, force); err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	view, err := c.loadAggregate(ctx, kind, rootID)
	if err != nil {
		return err
	}
	return c.encode(format, view)
}

func (c *Cli) loadAggregate(ctx context.Context, kind models.AggregateKind, rootID string) (*aggregateView, error) {
	rootRow, err := c.cache.GetByID(ctx, kind.Root, rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached %s: %w", kind.Name, err)
	}
	root, err := decodeObject(rootRow.Data)
	if err != nil {
		return nil, err
	}

	children, err := c.cachedSiblings(ctx, kind.Child, rootID)
	if err != nil {
		return nil, err
	}

	view := &aggregateView{
		Root:     root,
		ID:       rootID,
		Kind:     kind.Name,
		Children: make([]childView, 0, len(children)),
	}
	for _, child := range children {
		grandchildren, err := c.cachedSiblings(ctx, kind.Grandchild, child.ID)
		if err != nil {
			return nil, err
		}

		payload, err := decodeObject(child.Payload)
		if err != nil {
			return nil, err
		}

		cv := childView{
			Payload:       payload,
			ID:            child.ID,
			Order:         child.Order,
			Grandchildren: make([]siblingView, 0, len(grandchildren)),
		}
		for _, g := range grandchildren {
			gp, err := decodeObject(g.Payload)
			if err != nil {
				return nil, err
			}
			cv.Grandchildren = append(cv.Grandchildren, siblingView{ID: g.ID, Order: g.Order, Payload: gp})
		}
		view.Children = append(view.Children, cv)
	}

	return view, nil
}

// cachedSiblings читает упорядоченный список из кэша
func (c *Cli) cachedSiblings(ctx context.Context, table models.EntityType, parentKey string) ([]*models.SiblingRecord, error) {
	rows, err := c.cache.QueryByForeignKey(ctx, table, models.FieldParentKey, parentKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached %s: %w", table, err)
	}

	records := make([]*models.SiblingRecord, 0, len(rows))
	for _, row := range rows {
		var rec models.SiblingRecord
		if err := json.Unmarshal(row.Data, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode cached %s %s: %w", table, row.ID, err)
		}
		rec.ID = row.ID
		records = append(records, &rec)
	}

	models.SortByOrder(records)
	return records, nil
}
