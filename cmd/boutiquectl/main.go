// Command boutiquectl reads the dashboard API from the terminal. When the API
// is down it answers from the built-in mock data, the same way the dashboard
// does.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"BoutiqueAdmin/internal/client"
	"BoutiqueAdmin/internal/config"
	"BoutiqueAdmin/internal/customers"
	"BoutiqueAdmin/internal/mockapi"
	"BoutiqueAdmin/pkg/kit"
)

const usage = `usage: boutiquectl [flags] <command> [args]

commands:
  list <orders|customers|inventory|tailors|products>   list records
  get <orders|customers|inventory|tailors|products> <id>
  dashboard                                            stats, activity, urgent, sales
  customers                                            list customers through the direct client

flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "boutiquectl:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("boutiquectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	apiURL := fs.String("api", defaultAPIURL(cfg), "API base URL")
	offline := fs.Bool("offline", false, "use the mock data even when the API is up")
	search := fs.String("search", "", "search filter")
	category := fs.String("category", "", "product category filter")
	page := fs.Int("page", 0, "page (customers)")
	limit := fs.Int("limit", 0, "page size (customers)")
	timeout := fs.Duration("timeout", 10*time.Second, "overall timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	log := kit.NewLogger("boutiquectl", "warn")
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	store := mockapi.NewStore(mockapi.DefaultSeed())
	q := mockapi.ListQuery{Search: *search, Category: *category, Page: *page, Limit: *limit}

	base := *apiURL
	if *offline {
		// Nothing listens on the discard port, so every claimed call lands
		// on the mock.
		base = "http://127.0.0.1:9" + cfg.BasePath
	}
	c, err := client.New(base, client.WithLogger(log), client.WithMockFallback(store, cfg.FallbackOn5xx))
	if err != nil {
		return err
	}

	var out any
	switch cmd := fs.Arg(0); cmd {
	case "list":
		out, err = list(ctx, c, fs.Arg(1), q)
	case "get":
		if fs.NArg() < 3 {
			return errors.New("get needs a resource and an id")
		}
		out, err = get(ctx, c, fs.Arg(1), fs.Arg(2))
	case "dashboard":
		out, err = dashboard(ctx, c)
	case "customers":
		direct := customers.New(store, customers.Delays(cfg.Delays), log)
		items, meta, lerr := direct.List(ctx, q)
		out, err = map[string]any{"data": items, "meta": meta}, lerr
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func defaultAPIURL(cfg config.Config) string {
	if cfg.BackendURL != "" {
		return cfg.BackendURL + cfg.BasePath
	}
	return "http://localhost" + cfg.Addr() + cfg.BasePath
}

func list(ctx context.Context, c *client.Client, resource string, q mockapi.ListQuery) (any, error) {
	switch resource {
	case "orders":
		return listPage(ctx, c.Orders(), q)
	case "customers":
		return listPage(ctx, c.Customers(), q)
	case "inventory":
		return listPage(ctx, c.Inventory(), q)
	case "tailors":
		return listPage(ctx, c.Tailors(), q)
	case "products":
		return listPage(ctx, c.Products(), q)
	}
	return nil, fmt.Errorf("unknown resource %q", resource)
}

func listPage[T any](ctx context.Context, r *client.Resource[T], q mockapi.ListQuery) (any, error) {
	items, meta, err := r.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return items, nil
	}
	return map[string]any{"data": items, "meta": meta}, nil
}

func get(ctx context.Context, c *client.Client, resource, id string) (any, error) {
	switch resource {
	case "orders":
		return c.Orders().Get(ctx, id)
	case "customers":
		return c.Customers().Get(ctx, id)
	case "inventory":
		return c.Inventory().Get(ctx, id)
	case "tailors":
		return c.Tailors().Get(ctx, id)
	case "products":
		return c.Products().Get(ctx, id)
	}
	return nil, fmt.Errorf("unknown resource %q", resource)
}

func dashboard(ctx context.Context, c *client.Client) (any, error) {
	d := c.Dashboard()

	stats, err := d.Stats(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := d.Activity(ctx)
	if err != nil {
		return nil, err
	}
	urgent, err := d.Urgent(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := d.Sales(ctx)
	if err != nil {
		return nil, err
	}

	return mockapi.Dashboard{Stats: stats, Activity: activity, Urgent: urgent, Sales: sales}, nil
}
