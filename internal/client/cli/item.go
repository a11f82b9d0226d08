package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/ebalakin/cartsync/internal/client/models"
)

// List prints the current list grouped by category, unassigned items last.
// The printed numbers are remembered so follow-up commands (check, edit,
// delete) can refer to items by number instead of by id.
func (a *App) List(ctx context.Context) error {
	items, err := a.listSvc.Items(ctx)
	if err != nil {
		a.logger.Error(ctx, "loading items failed", "error", err)
		return err
	}
	cats, err := a.listSvc.Categories(ctx)
	if err != nil {
		a.logger.Error(ctx, "loading categories failed", "error", err)
		return err
	}

	byCategory := make(map[string][]models.Item)
	var unassigned []models.Item
	for _, it := range items {
		if it.CategoryID == nil {
			unassigned = append(unassigned, it)
			continue
		}
		byCategory[*it.CategoryID] = append(byCategory[*it.CategoryID], it)
	}

	a.listing = a.listing[:0]
	n := 0
	printItem := func(it models.Item) {
		n++
		a.listing = append(a.listing, it)
		mark := " "
		if it.Completed {
			mark = "x"
		}
		printlnFn(fmt.Sprintf("  %3d. [%s] %s", n, mark, it.Text))
	}

	for _, c := range cats {
		printlnFn(c.Name + ":")
		for _, it := range byCategory[c.ID] {
			printItem(it)
		}
	}
	if len(unassigned) > 0 {
		printlnFn("(no category):")
		for _, it := range unassigned {
			printItem(it)
		}
	}
	if n == 0 {
		printlnFn("List is empty.")
	}
	return nil
}

// pickItem resolves a number from the most recent listing to an item.
func (a *App) pickItem(prompt string) (*models.Item, error) {
	s, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(a.listing) {
		return nil, fmt.Errorf("no such item: %q (run 'list' first)", s)
	}
	return &a.listing[n-1], nil
}

// AddItem prompts for item text and an optional category name and adds the
// item to the list.
func (a *App) AddItem(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "Enter item text", os.Stdout)
	if err != nil {
		return err
	}
	catName, err := getSimpleText(a.reader, "Enter category name (empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	var categoryID *string
	if catName != "" {
		id, err := a.findCategory(ctx, catName)
		if err != nil {
			return err
		}
		categoryID = &id
	}

	if _, err := a.listSvc.AddItem(ctx, text, categoryID); err != nil {
		a.logger.Error(ctx, "adding item failed", "error", err)
		return err
	}
	return nil
}

// EditItem changes an item's text and category.
func (a *App) EditItem(ctx context.Context) error {
	it, err := a.pickItem("Enter item number")
	if err != nil {
		return err
	}
	text, err := getSimpleText(a.reader, "Enter new text", os.Stdout)
	if err != nil {
		return err
	}
	catName, err := getSimpleText(a.reader, "Enter category name (empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	var categoryID *string
	if catName != "" {
		id, err := a.findCategory(ctx, catName)
		if err != nil {
			return err
		}
		categoryID = &id
	}

	if err := a.listSvc.EditItem(ctx, it.ID, text, categoryID); err != nil {
		a.logger.Error(ctx, "editing item failed", "error", err)
		return err
	}
	return nil
}

// Check marks an item from the last listing as completed.
func (a *App) Check(ctx context.Context) error {
	return a.setCompleted(ctx, true)
}

// Uncheck clears the completed flag on an item from the last listing.
func (a *App) Uncheck(ctx context.Context) error {
	return a.setCompleted(ctx, false)
}

func (a *App) setCompleted(ctx context.Context, completed bool) error {
	it, err := a.pickItem("Enter item number")
	if err != nil {
		return err
	}
	if err := a.listSvc.SetCompleted(ctx, it.ID, completed); err != nil {
		a.logger.Error(ctx, "updating item failed", "error", err)
		return err
	}
	return nil
}

// DeleteItem removes an item from the list.
func (a *App) DeleteItem(ctx context.Context) error {
	it, err := a.pickItem("Enter item number")
	if err != nil {
		return err
	}
	if err := a.listSvc.DeleteItem(ctx, it.ID); err != nil {
		a.logger.Error(ctx, "deleting item failed", "error", err)
		return err
	}
	return nil
}
