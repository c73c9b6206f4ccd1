package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iudanet/edukeeper/internal/models"
)

// level уровень упорядоченного списка внутри агрегата
type level int

const (
	levelQuestion level = iota + 1
	levelOption
)

func (l level) String() string {
	if l == levelOption {
		return "option"
	}
	return "question"
}

// collection коллекция уровня для вида агрегата
func (l level) collection(kind models.AggregateKind) models.EntityType {
	if l == levelOption {
		return kind.Grandchild
	}
	return kind.Child
}

// siblingInput поля вопроса или варианта ответа из флагов
type siblingInput struct {
	Text    string
	Points  int
	Order   int
	Correct bool
}

func (l level) payload(in siblingInput) (json.RawMessage, error) {
	if in.Text == "" {
		return nil, fmt.Errorf("text is required")
	}

	var v any = models.Question{Text: in.Text, Points: in.Points}
	if l == levelOption {
		v = models.Option{Text: in.Text, IsCorrect: in.Correct}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", l, err)
	}
	return data, nil
}

func (c *Cli) runSiblingAdd(ctx context.Context, kind models.AggregateKind, l level, parentKey string, in siblingInput) error {
	payload, err := l.payload(in)
	if err != nil {
		return err
	}

	rec, err := c.siblings(l.collection(kind)).Insert(ctx, parentKey, payload, in.Order)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", l, err)
	}

	c.io.Printf("✓ Added %s %s at position %d\n", l, rec.ID, rec.Order)
	return nil
}

func (c *Cli) runSiblingUpdate(ctx context.Context, kind models.AggregateKind, l level, id, parentKey string, in siblingInput) error {
	payload, err := l.payload(in)
	if err != nil {
		return err
	}

	rec, err := c.siblings(l.collection(kind)).Update(ctx, id, parentKey, payload, in.Order)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", l, id, err)
	}

	c.io.Printf("✓ Updated %s %s, position %d\n", l, rec.ID, rec.Order)
	return nil
}

func (c *Cli) runSiblingDelete(ctx context.Context, kind models.AggregateKind, l level, id string) error {
	ok, err := c.siblings(l.collection(kind)).Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", l, id, err)
	}
	if !ok {
		return fmt.Errorf("%s %s was not deleted", l, id)
	}

	c.io.Printf("✓ Deleted %s %s\n", l, id)
	return nil
}

// siblingView запись списка для вывода
type siblingView struct {
	Payload map[string]any `json:"payload" yaml:"payload"`
	ID      string         `json:"id" yaml:"id"`
	Order   int            `json:"order" yaml:"order"`
}

func (c *Cli) runSiblingList(ctx context.Context, kind models.AggregateKind, l level, parentKey, format string) error {
	records, err := c.siblings(l.collection(kind)).List(ctx, parentKey)
	if err != nil {
		return fmt.Errorf("failed to list %ss of %s: %w", l, parentKey, err)
	}

	views := make([]siblingView, 0, len(records))
	for _, r := range records {
		payload, err := decodeObject(r.Payload)
		if err != nil {
			return err
		}
		views = append(views, siblingView{ID: r.ID, Order: r.Order, Payload: payload})
	}

	if format != "" {
		return c.encode(format, views)
	}

	if len(views) == 0 {
		c.io.Printf("No %ss found.\n", l)
		return nil
	}

	for _, v := range views {
		c.io.Printf("%d. %s  [%s]\n", v.Order, v.Payload["text"], v.ID)
	}
	return nil
}
