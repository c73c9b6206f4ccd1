package cli

import (
	"context"
	"fmt"
	"text/template"

	"github.com/iudanet/edukeeper/internal/models"
)

func (c *Cli) runSync(ctx context.Context, kind models.AggregateKind, rootID string, force bool) error {
	svc := c.syncer(kind)

	result, err := svc.SyncAggregate(ctx, rootID, force)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	tmpl := template.Must(template.New("sync").Parse(syncTemplate))
	if err := tmpl.Execute(c.io, struct {
		Warnings      []*models.PartialSyncWarning
		Kind          string
		RootID        string
		Children      int
		Grandchildren int
		Skipped       int
		FromCache     bool
	}{
		Warnings:      result.Warnings,
		Kind:          kind.Name,
		RootID:        rootID,
		Children:      result.Children,
		Grandchildren: result.Grandchildren,
		Skipped:       result.Skipped,
		FromCache:     result.FromCache,
	}); err != nil {
		return err
	}
	c.io.Println()

	if !result.FromCache {
		st := svc.Status(kind.Root)
		c.io.Printf("Last sync:            %s\n", st.LastSyncTime.Format("2006-01-02 15:04:05"))
	}
	return nil
}

type branchStatus struct {
	ID            string
	Grandchildren int
}

func (c *Cli) runStatus(ctx context.Context, kind models.AggregateKind, rootID string) error {
	svc := c.syncer(kind)

	rootStale, err := svc.IsCacheStale(ctx, kind.Root, rootID)
	if err != nil {
		return fmt.Errorf("failed to check cache: %w", err)
	}

	var branches []branchStatus
	childrenStale, err := svc.IsCacheStale(ctx, kind.Child, rootID)
	if err != nil {
		return fmt.Errorf("failed to check cache: %w", err)
	}
	if !childrenStale {
		children, err := c.cache.QueryByForeignKey(ctx, kind.Child, models.FieldParentKey, rootID)
		if err != nil {
			return fmt.Errorf("failed to read cached children: %w", err)
		}
		for _, child := range children {
			grandchildren, err := c.cache.QueryByForeignKey(ctx, kind.Grandchild, models.FieldParentKey, child.ID)
			if err != nil {
				return fmt.Errorf("failed to read cached grandchildren: %w", err)
			}
			branches = append(branches, branchStatus{ID: child.ID, Grandchildren: len(grandchildren)})
		}
	}

	tmpl := template.Must(template.New("status").Funcs(template.FuncMap{
		"yesno": func(b bool) string {
			if b {
				return "yes"
			}
			return "no"
		},
	}).Parse(statusTemplate))

	if err := tmpl.Execute(c.io, struct {
		Kind       string
		RootID     string
		Branches   []branchStatus
		Children   int
		RootCached bool
	}{
		Kind:       kind.Name,
		RootID:     rootID,
		Branches:   branches,
		Children:   len(branches),
		RootCached: !rootStale,
	}); err != nil {
		return err
	}
	c.io.Println()

	if rootStale {
		c.io.Printf("Run 'edukeeper sync %s' to fetch it.\n", rootID)
	}
	return nil
}

func (c *Cli) runClear(ctx context.Context, kind models.AggregateKind, rootID string, yes bool) error {
	if !yes {
		ok, err := c.confirm(fmt.Sprintf("Remove cached %s %s?", kind.Name, rootID))
		if err != nil {
			return err
		}
		if !ok {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	if err := c.syncer(kind).ClearCache(ctx, rootID); err != nil {
		return err
	}

	c.io.Printf("✓ Cleared cached %s %s\n", kind.Name, rootID)
	return nil
}
