package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/template"
	"time"

	"github.com/iudanet/edukeeper/internal/models"
)

// rootInput поля корня агрегата из флагов команды
type rootInput struct {
	ID          string
	Title       string
	Ref         string // class_id теста или lesson_id мини-игры
	Description string
	GameType    string
	TimeLimit   int
}

func (c *Cli) runRootCreate(ctx context.Context, kind models.AggregateKind, in rootInput) error {
	if in.Title == "" {
		return fmt.Errorf("title is required")
	}

	id := in.ID
	if id == "" {
		id = c.newID()
	}

	now := time.Now().UTC()
	var root any
	switch kind.Root {
	case models.EntityMiniGame:
		root = models.MiniGame{
			CreatedAt: now,
			UpdatedAt: now,
			ID:        id,
			LessonID:  in.Ref,
			Title:     in.Title,
			GameType:  in.GameType,
		}
	default:
		root = models.Test{
			CreatedAt:   now,
			UpdatedAt:   now,
			ID:          id,
			ClassID:     in.Ref,
			Title:       in.Title,
			Description: in.Description,
			TimeLimit:   in.TimeLimit,
		}
	}

	data, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", kind.Name, err)
	}

	doc, err := c.remote.Set(ctx, string(kind.Root), id, data)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", kind.Name, err)
	}

	c.io.Printf("✓ Created %s %s\n", kind.Name, doc.ID)
	return nil
}

func (c *Cli) runRootGet(ctx context.Context, kind models.AggregateKind, id, format string) error {
	doc, err := c.remote.Get(ctx, string(kind.Root), id)
	if err != nil {
		return fmt.Errorf("failed to get %s %s: %w", kind.Name, id, err)
	}

	data, err := decodeObject(doc.Data)
	if err != nil {
		return err
	}

	if format != "" {
		return c.encode(format, map[string]any{
			"id":      doc.ID,
			"version": doc.Version,
			"data":    data,
		})
	}

	title, _ := data["title"].(string)
	tmpl := template.Must(template.New("root").Parse(rootTemplate))
	return tmpl.Execute(c.io, struct {
		UpdatedAt time.Time
		Kind      string
		ID        string
		Title     string
		Version   int64
	}{
		UpdatedAt: doc.UpdatedAt,
		Kind:      kind.Name,
		ID:        doc.ID,
		Title:     title,
		Version:   doc.Version,
	})
}
