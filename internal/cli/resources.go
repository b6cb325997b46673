package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/pkg/listing"
	"github.com/spf13/cobra"
)

// page is what list prints: the page plus its records as rows
type page struct {
	result     any
	records    any
	pagination *listing.Pagination
}

// resource is one resource adminctl can list and show
type resource struct {
	columns []string
	list    func(ctx context.Context, req service.ListRequest) (*page, error)
	get     func(ctx context.Context, id entity.ID) (any, error)
}

func catalogResource[T any](c *service.Catalog[T], columns ...string) resource {
	return resource{
		columns: columns,
		list: func(ctx context.Context, req service.ListRequest) (*page, error) {
			result, err := c.List(ctx, req)
			if err != nil {
				return nil, err
			}
			return &page{result: result, records: result.Items, pagination: result.Pagination}, nil
		},
		get: func(ctx context.Context, id entity.ID) (any, error) {
			return c.Get(ctx, id)
		},
	}
}

func resources(s *service.Services) map[string]resource {
	return map[string]resource{
		"users":          catalogResource(s.Users.Catalog, "id", "name", "email", "phone", "status", "is_vip", "points_balance"),
		"stores":         catalogResource(s.Stores.Catalog, "id", "name", "email", "city", "status", "is_active"),
		"coupons":        catalogResource(s.Coupons.Catalog, "id", "code", "title", "type", "value", "valid_until", "is_active"),
		"settlements":    catalogResource(s.Settlements.Catalog, "id", "store_name", "bill_amount", "net_settlement_amount", "pending_amount", "status"),
		"surveys":        catalogResource(s.Surveys.Catalog, "id", "title", "starts_at", "ends_at", "is_active"),
		"daily-rewards":  catalogResource(s.DailyRewards.Catalog, "id", "name", "start_date", "end_date", "is_active"),
		"faqs":           catalogResource(s.FAQs.Catalog, "id", "question", "category", "is_active"),
		"terms":          catalogResource(s.Terms.Catalog, "id", "title", "type", "version", "is_active"),
		"videos":         catalogResource(s.Videos.Catalog, "id", "title", "video_url", "is_active"),
		"store-sequence": catalogResource(s.StoreSequence.Catalog, "sequence_no", "store_name", "store_id", "is_active"),
	}
}

func resourceNames() []string {
	names := []string{"users", "stores", "coupons", "settlements", "surveys", "daily-rewards", "faqs", "terms", "videos", "store-sequence"}
	slices.Sort(names)
	return names
}

func lookupResource(s *service.Services, name string) (resource, error) {
	r, ok := resources(s)[name]
	if !ok {
		return resource{}, fmt.Errorf("unknown resource %q (one of %s)", name, strings.Join(resourceNames(), ", "))
	}
	return r, nil
}

func newListCommand(opts *options) *cobra.Command {
	var (
		q       listing.Query
		filters []string
	)
	cmd := &cobra.Command{
		Use:       "list RESOURCE",
		Short:     "List the records of a resource",
		Long:      "List the records of a resource with the console's search, filters, sort and paging.\nResources: " + strings.Join(resourceNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: resourceNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			r, err := lookupResource(s.services, args[0])
			if err != nil {
				return err
			}

			q.Filters = map[string]string{}
			for _, f := range filters {
				name, value, ok := strings.Cut(f, "=")
				if !ok || strings.TrimSpace(name) == "" {
					return fmt.Errorf("filter %q must look like name=value", f)
				}
				q.Filters[strings.TrimSpace(name)] = strings.TrimSpace(value)
			}

			p, err := r.list(s.ctx, service.ListRequest{Query: q})
			if err != nil {
				return err
			}
			if s.asJSON {
				return printJSON(s.out, p.result)
			}
			records, err := rows(p.records)
			if err != nil {
				return err
			}
			if err := printTable(s.out, r.columns, records); err != nil {
				return err
			}
			if pg := p.pagination; pg != nil && pg.TotalPages > 1 {
				fmt.Fprintf(s.out, "\npage %d of %d, %d records\n", pg.CurrentPage, pg.TotalPages, pg.Total)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&q.Search, "search", "s", "", "Search text")
	flags.StringVar(&q.SortBy, "sort-by", "", "Field to sort by")
	flags.StringVar((*string)(&q.SortOrder), "sort-order", "", "asc or desc")
	flags.IntVarP(&q.Page, "page", "p", 1, "Page number")
	flags.StringArrayVarP(&filters, "filter", "f", nil, "Filter as name=value, repeatable")
	return cmd
}

func newGetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get RESOURCE ID",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			r, err := lookupResource(s.services, args[0])
			if err != nil {
				return err
			}
			record, err := r.get(s.ctx, entity.ID(args[1]))
			if err != nil {
				return err
			}
			if s.asJSON {
				return printJSON(s.out, record)
			}
			fields, err := rows([]any{record})
			if err != nil {
				return err
			}
			return printRecord(s.out, fields[0], r.columns)
		},
	}
}
