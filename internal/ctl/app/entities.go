package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
)

var errNotFound = errors.New("not found")

type listOptions struct {
	tree     bool
	page     int
	pageSize int
}

// entityKind adapts one entity family of the SDK to list/get.
type entityKind struct {
	list func(ctx context.Context, opts listOptions) (any, error)
	get  func(ctx context.Context, name string) (any, error)
}

func entity[T any](list func(context.Context) ([]T, error), get func(context.Context, string) (*T, error)) entityKind {
	return entityKind{
		list: func(ctx context.Context, _ listOptions) (any, error) { return list(ctx) },
		get:  getter(get),
	}
}

// getter turns a nil result into errNotFound so it never prints as null.
func getter[T any](get func(context.Context, string) (*T, error)) func(context.Context, string) (any, error) {
	return func(ctx context.Context, name string) (any, error) {
		v, err := get(ctx, name)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("%s: %w", name, errNotFound)
		}
		return v, nil
	}
}

func (app *Application) kinds() map[string]entityKind {
	c := app.client
	return map[string]entityKind{
		"adapter":      entity(c.GetAdapters, c.GetAdapter),
		"application":  entity(c.GetApplications, c.GetApplication),
		"cert":         entity(c.GetCerts, c.GetCert),
		"enforcer":     entity(c.GetEnforcers, c.GetEnforcer),
		"model":        entity(c.GetModels, c.GetModel),
		"organization": entity(c.GetOrganizations, c.GetOrganization),
		"payment":      entity(c.GetPayments, c.GetPayment),
		"permission":   entity(c.GetPermissions, c.GetPermission),
		"plan":         entity(c.GetPlans, c.GetPlan),
		"pricing":      entity(c.GetPricings, c.GetPricing),
		"product":      entity(c.GetProducts, c.GetProduct),
		"provider":     entity(c.GetProviders, c.GetProvider),
		"role":         entity(c.GetRoles, c.GetRole),
		"subscription": entity(c.GetSubscriptions, c.GetSubscription),
		"syncer":       entity(c.GetSyncers, c.GetSyncer),
		"user":         entity(c.GetUsers, c.GetUser),
		"webhook":      entity(c.GetWebhooks, c.GetWebhook),

		"group": {
			list: func(ctx context.Context, opts listOptions) (any, error) { return c.GetGroups(ctx, opts.tree) },
			get:  getter(c.GetGroup),
		},
		"resource": {
			list: func(ctx context.Context, _ listOptions) (any, error) {
				return c.GetResources(ctx, casdoorsdk.ResourceQuery{Owner: app.cfg.Casdoor.OrganizationName})
			},
			get: getter(c.GetResource),
		},
		"session": {
			list: func(ctx context.Context, _ listOptions) (any, error) { return c.GetSessions(ctx) },
			get: getter(func(ctx context.Context, name string) (*casdoorsdk.Session, error) {
				return c.GetSession(ctx, name, app.cfg.Casdoor.ApplicationName)
			}),
		},
		"token": {
			list: func(ctx context.Context, opts listOptions) (any, error) {
				return c.GetTokens(ctx, opts.page, opts.pageSize)
			},
			get: getter(c.GetToken),
		},
	}
}

func (app *Application) lookupKind(name string) (entityKind, error) {
	kind, ok := app.kinds()[name]
	if !ok {
		return entityKind{}, fmt.Errorf("%w: unknown kind %q", ErrUsage, name)
	}
	return kind, nil
}

func (app *Application) runList(ctx context.Context, args []string) error {
	var opts listOptions
	fs := newFlagSet("list")
	fs.BoolVar(&opts.tree, "tree", false, "Nest groups under their parents")
	fs.IntVar(&opts.page, "page", 1, "Page of tokens to list")
	fs.IntVar(&opts.pageSize, "size", 100, "Tokens per page")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return fmt.Errorf("%w: list <kind>", ErrUsage)
	}

	kind, err := app.lookupKind(fs.Arg(0))
	if err != nil {
		return err
	}
	items, err := kind.list(ctx, opts)
	if err != nil {
		return err
	}
	return app.printJSON(items)
}

func (app *Application) runGet(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: get <kind> <name>", ErrUsage)
	}

	kind, err := app.lookupKind(args[0])
	if err != nil {
		return err
	}
	item, err := kind.get(ctx, args[1])
	if err != nil {
		return err
	}
	return app.printJSON(item)
}

// newFlagSet returns a silent flag set; parse errors surface as ErrUsage.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
