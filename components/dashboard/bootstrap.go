package dashboard

import (
	"context"
	"errors"
	"fmt"
)

// RegisterPages ensures the built-in dashboard pages exist in the store.
func RegisterPages(ctx context.Context, store WidgetStore) error {
	if store == nil {
		return errMissingWidgetStore
	}
	for _, page := range DefaultPageDefinitions() {
		if _, err := store.EnsurePage(ctx, page); err != nil {
			return fmt.Errorf("register page %s: %w", page.Code, err)
		}
	}
	return nil
}

// RegisterDefinitions registers the built-in widget definitions.
func RegisterDefinitions(ctx context.Context, store WidgetStore, registry ProviderRegistry) error {
	if store == nil {
		return errMissingWidgetStore
	}
	for _, def := range DefaultWidgetDefinitions() {
		if _, err := store.EnsureDefinition(ctx, def); err != nil {
			return fmt.Errorf("register definition %s: %w", def.Code, err)
		}
		if registry != nil {
			if err := registry.RegisterDefinition(def); err != nil {
				return fmt.Errorf("register definition in registry %s: %w", def.Code, err)
			}
		}
	}
	return nil
}

// SeedLayout creates the starter dashboard widget assignments.
func SeedLayout(ctx context.Context, service *Service) error {
	if service == nil {
		return errors.New("dashboard: service is required to seed layout")
	}
	var seedErr error
	for _, req := range DefaultSeedWidgets() {
		if err := service.AddWidget(ctx, req); err != nil {
			seedErr = errors.Join(seedErr, err)
		}
	}
	return seedErr
}
