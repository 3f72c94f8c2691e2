package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/salesledger/internal/adapter/http/dto"
	"github.com/iho/salesledger/internal/infrastructure/logger"
	"github.com/iho/salesledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "salesledger-cli",
		Short:         "SalesLedger CLI tool",
		Long:          `A command line interface for interacting with the SalesLedger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the SalesLedger API")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	root.AddCommand(clientsCmd(), salesCmd(), summaryCmd(), totalsCmd(), reportCmd(), migrateCmd())
	return root
}

// apiClient is a thin JSON client over the HTTP API.
type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient() *apiClient {
	return &apiClient{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, http.Header, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		reader = bytes.NewReader(payload)
	}

	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.Message != "" {
				return nil, nil, fmt.Errorf("%s (status %d): %s", apiErr.Error, resp.StatusCode, apiErr.Message)
			}
			return nil, nil, fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return nil, nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(data), 200))
	}
	return data, resp.Header, nil
}

func (c *apiClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, _, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *apiClient) postJSON(ctx context.Context, path string, body, out any) error {
	data, _, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// ledgerFlags are the query parameters shared by summary, totals and report.
type ledgerFlags struct {
	clientID      string
	from          string
	to            string
	days          int
	oldBalance    string
	depositAmount string
	depositAt     string
}

func (f *ledgerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.clientID, "client", "", "Client ID (empty for all clients)")
	cmd.Flags().StringVar(&f.from, "from", "", `Window start, "YYYY-MM-DD HH:MM:SS"`)
	cmd.Flags().StringVar(&f.to, "to", "", `Window end, "YYYY-MM-DD HH:MM:SS"`)
	cmd.Flags().IntVar(&f.days, "days", 0, "Days back when no window is given")
	cmd.Flags().StringVar(&f.oldBalance, "old-balance", "", "Opening balance when --from is absent")
	cmd.Flags().StringVar(&f.depositAmount, "deposit", "", "Deposit amount to subtract")
	cmd.Flags().StringVar(&f.depositAt, "deposit-at", "", `Deposit time, "YYYY-MM-DD HH:MM:SS"`)
}

func (f *ledgerFlags) values() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set(dto.ParamClientID, f.clientID)
	set(dto.ParamFrom, f.from)
	set(dto.ParamTo, f.to)
	set(dto.ParamOldBalance, f.oldBalance)
	set(dto.ParamDepositAmount, f.depositAmount)
	set(dto.ParamDepositDatetime, f.depositAt)
	if f.days > 0 {
		q.Set(dto.ParamDays, strconv.Itoa(f.days))
	}
	return q
}

func clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Client operations",
	}

	var name, phone string
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out dto.ClientResponse
			err := newAPIClient().postJSON(cmd.Context(), "/api/v1/clients/", dto.CreateClientRequest{Name: name, Phone: phone}, &out)
			if err != nil {
				return err
			}
			printJSON(out)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Client name")
	create.Flags().StringVar(&phone, "phone", "", "Client phone")
	_ = create.MarkFlagRequired("name")

	var limit, offset int
	list := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))

			var out dto.ListClientsResponse
			if err := newAPIClient().getJSON(cmd.Context(), "/api/v1/clients/", q, &out); err != nil {
				return err
			}
			for _, c := range out.Clients {
				fmt.Printf("%-28s %-30s %s\n", c.ID, truncate(c.Name, 30), c.Phone)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 50, "Page size")
	list.Flags().IntVar(&offset, "offset", 0, "Page offset")

	cmd.AddCommand(create, list)
	return cmd
}

func salesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Sale operations",
	}

	var (
		clientID, accessory, price, profit, note, soldAt string
		quantity                                         int
		isReturn                                         bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a sale or return",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildSaleRequest(clientID, accessory, price, profit, note, soldAt, quantity, isReturn)
			if err != nil {
				return err
			}
			var out dto.SaleResponse
			if err := newAPIClient().postJSON(cmd.Context(), "/api/v1/sales/", req, &out); err != nil {
				return err
			}
			printJSON(out)
			return nil
		},
	}
	add.Flags().StringVar(&clientID, "client", "", "Client ID")
	add.Flags().StringVar(&accessory, "accessory", "", "Accessory name")
	add.Flags().StringVar(&price, "price", "", "Total price")
	add.Flags().StringVar(&profit, "profit", "", "Profit")
	add.Flags().StringVar(&note, "note", "", "Free-form note")
	add.Flags().StringVar(&soldAt, "sold-at", "", `Sale time, "YYYY-MM-DD HH:MM:SS"`)
	add.Flags().IntVar(&quantity, "qty", 1, "Quantity")
	add.Flags().BoolVar(&isReturn, "return", false, "Record as a return")
	_ = add.MarkFlagRequired("client")

	var lf ledgerFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List sales, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			for _, key := range []string{dto.ParamClientID, dto.ParamFrom, dto.ParamTo} {
				if v := lf.values().Get(key); v != "" {
					q.Set(key, v)
				}
			}
			var out dto.ListSalesResponse
			if err := newAPIClient().getJSON(cmd.Context(), "/api/v1/sales/", q, &out); err != nil {
				return err
			}
			for _, s := range out.Sales {
				fmt.Printf("%s  %-20s %-32s %4d %12s\n", s.SoldAt, truncate(s.ClientName, 20), truncate(s.AccessoryName, 32), s.Quantity, s.TotalPrice.StringFixed(2))
			}
			return nil
		},
	}
	list.Flags().StringVar(&lf.clientID, "client", "", "Client ID (empty for all clients)")
	list.Flags().StringVar(&lf.from, "from", "", `Window start, "YYYY-MM-DD HH:MM:SS"`)
	list.Flags().StringVar(&lf.to, "to", "", `Window end, "YYYY-MM-DD HH:MM:SS"`)

	cmd.AddCommand(add, list)
	return cmd
}

func buildSaleRequest(clientID, accessory, price, profit, note, soldAt string, quantity int, isReturn bool) (dto.CreateSaleRequest, error) {
	req := dto.CreateSaleRequest{
		ClientID:      clientID,
		AccessoryName: accessory,
		SoldAt:        soldAt,
		IsReturn:      isReturn,
		Quantity:      &quantity,
	}
	if price != "" {
		d, err := decimal.NewFromString(price)
		if err != nil {
			return req, fmt.Errorf("invalid price: %w", err)
		}
		req.TotalPrice = &d
	}
	if profit != "" {
		d, err := decimal.NewFromString(profit)
		if err != nil {
			return req, fmt.Errorf("invalid profit: %w", err)
		}
		req.Profit = &d
	}
	if note != "" {
		req.Note = &note
	}
	return req, nil
}

func summaryCmd() *cobra.Command {
	var lf ledgerFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the ledger summary for a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out dto.LedgerSummaryResponse
			if err := newAPIClient().getJSON(cmd.Context(), "/api/v1/ledger/summary", lf.values(), &out); err != nil {
				return err
			}
			printJSON(out)
			return nil
		},
	}
	lf.register(cmd)
	return cmd
}

func totalsCmd() *cobra.Command {
	var lf ledgerFlags
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Show signed sale and profit sums",
		Long:  "Show signed sale and profit sums. --days applies only when neither --from nor --to is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out dto.TotalsResponse
			if err := newAPIClient().getJSON(cmd.Context(), "/api/v1/ledger/totals", lf.values(), &out); err != nil {
				return err
			}
			printJSON(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&lf.clientID, "client", "", "Client ID (empty for all clients)")
	cmd.Flags().StringVar(&lf.from, "from", "", `Window start, "YYYY-MM-DD HH:MM:SS"`)
	cmd.Flags().StringVar(&lf.to, "to", "", `Window end, "YYYY-MM-DD HH:MM:SS"`)
	cmd.Flags().IntVar(&lf.days, "days", 0, "Days back when no window is given")
	return cmd
}

func reportCmd() *cobra.Command {
	var (
		lf     ledgerFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Download the sales report PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, header, err := newAPIClient().do(cmd.Context(), http.MethodGet, "/api/v1/reports/sales", lf.values(), nil)
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = reportFilename(header.Get("Content-Disposition"))
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("Saved %s (%d bytes)\n", path, len(data))
			return nil
		},
	}
	lf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to the server-provided name)")
	return cmd
}

func reportFilename(disposition string) string {
	const fallback = "sales_report.pdf"
	_, name, ok := strings.Cut(disposition, "filename=")
	if !ok {
		return fallback
	}
	name = strings.Trim(strings.TrimSpace(name), `"`)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fallback
	}
	return name
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string
	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New(logger.Config{Level: "info", Format: "console"})
			return runMigrate(args[0], databaseURL, path, log)
		},
	}
	cmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.Flags().StringVar(&path, "path", "migrations", "Migrations directory")
	return cmd
}

func runMigrate(direction, databaseURL, path string, log zerolog.Logger) error {
	if databaseURL == "" {
		return fmt.Errorf("database url is required")
	}
	switch direction {
	case "up":
		return postgres.RunMigrations(databaseURL, path, log)
	case "down":
		return postgres.RunMigrationsDown(databaseURL, path, log)
	default:
		return fmt.Errorf("unknown direction %q", direction)
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to encode: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
