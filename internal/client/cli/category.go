package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// findCategory resolves a category by case-insensitive name match.
func (a *App) findCategory(ctx context.Context, name string) (string, error) {
	cats, err := a.listSvc.Categories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range cats {
		if strings.EqualFold(c.Name, name) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("no such category: %q", name)
}

// AddCategory creates a new category on the current list.
func (a *App) AddCategory(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter category name", os.Stdout)
	if err != nil {
		return err
	}
	if _, err := a.listSvc.AddCategory(ctx, name); err != nil {
		a.logger.Error(ctx, "adding category failed", "error", err)
		return err
	}
	return nil
}

// RenameCategory changes a category's display name.
func (a *App) RenameCategory(ctx context.Context) error {
	oldName, err := getSimpleText(a.reader, "Enter current category name", os.Stdout)
	if err != nil {
		return err
	}
	id, err := a.findCategory(ctx, oldName)
	if err != nil {
		return err
	}
	newName, err := getSimpleText(a.reader, "Enter new name", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.listSvc.RenameCategory(ctx, id, newName); err != nil {
		a.logger.Error(ctx, "renaming category failed", "error", err)
		return err
	}
	return nil
}

// DeleteCategory removes a category; its items stay on the list uncategorized.
func (a *App) DeleteCategory(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter category name", os.Stdout)
	if err != nil {
		return err
	}
	id, err := a.findCategory(ctx, name)
	if err != nil {
		return err
	}
	if err := a.listSvc.DeleteCategory(ctx, id); err != nil {
		a.logger.Error(ctx, "deleting category failed", "error", err)
		return err
	}
	return nil
}

// Reorder prompts for a comma-separated sequence of category names and
// stores it as the new display order.
func (a *App) Reorder(ctx context.Context) error {
	line, err := getSimpleText(a.reader, "Enter category names in the desired order, comma-separated", os.Stdout)
	if err != nil {
		return err
	}

	var ids []string
	for _, name := range strings.Split(line, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, err := a.findCategory(ctx, name)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if err := a.listSvc.ReorderCategories(ctx, ids); err != nil {
		a.logger.Error(ctx, "reordering categories failed", "error", err)
		return err
	}
	return nil
}
