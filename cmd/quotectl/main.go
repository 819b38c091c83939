package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"insurance_quotes/internal/adapter/http/client"

	_ "github.com/joho/godotenv/autoload"
)

type fieldList map[string]any

func (l fieldList) String() string {
	parts := make([]string, 0, len(l))
	for k, v := range l {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ",")
}

func (l fieldList) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	l[k] = strings.TrimSpace(val)
	return nil
}

func main() {
	fields := fieldList{}
	var (
		baseURL     string
		category    string
		payloadJSON string
		listOnly    bool
		interval    time.Duration
		timeout     time.Duration
	)
	flag.StringVar(&baseURL, "api", envOr("QUOTES_API_URL", "http://localhost:8080/v1"), "aggregation API base URL")
	flag.StringVar(&category, "category", "", "insurance category, e.g. traffic")
	flag.StringVar(&payloadJSON, "payload", "", "applicant payload as a JSON object")
	flag.Var(fields, "field", "payload field key=value (repeatable, merged over -payload)")
	flag.BoolVar(&listOnly, "providers", false, "list providers for -category and exit")
	flag.DurationVar(&interval, "interval", client.DefaultPollInterval, "progress poll interval")
	flag.DurationVar(&timeout, "timeout", client.DefaultWaitTimeout, "stop waiting after this long")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := client.New(baseURL, client.WithPollInterval(interval), client.WithWaitTimeout(timeout))
	if err != nil {
		fmt.Printf("init client: %v\n", err)
		os.Exit(1)
	}

	if listOnly {
		providers, err := c.Providers(ctx, category)
		if err != nil {
			fmt.Printf("list providers: %v\n", err)
			os.Exit(1)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tCATEGORIES\tENABLED")
		for _, p := range providers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", p.Code, p.Name, strings.Join(p.Categories, ","), p.Enabled)
		}
		_ = w.Flush()
		return
	}

	if strings.TrimSpace(category) == "" {
		fmt.Println("-category is required")
		os.Exit(2)
	}
	payload, err := buildPayload(payloadJSON, fields)
	if err != nil {
		fmt.Printf("payload: %v\n", err)
		os.Exit(2)
	}

	submitted, err := c.Submit(ctx, category, payload)
	if err != nil {
		fmt.Printf("submit: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("request %s dispatched to %d providers: %s\n",
		submitted.AggregationRequestID, len(submitted.DispatchedProviders), strings.Join(submitted.DispatchedProviders, ", "))

	res, err := c.WaitForQuotes(ctx, submitted.AggregationRequestID, submitted.AccessToken)
	if err != nil {
		fmt.Printf("wait: %v\n", err)
		os.Exit(1)
	}
	if res.TimedOut {
		fmt.Printf("stopped waiting after %s (%d/%d settled); showing quotes received so far\n",
			timeout, res.Progress.Settled, res.Progress.Dispatched)
	}
	if len(res.Quotes) == 0 {
		fmt.Println("no quotes")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tPROVIDER\tPRICE\tSCORE")
	for _, q := range res.Quotes {
		fmt.Fprintf(w, "%d\t%s\t%.2f %s\t%d\n", q.Rank, q.ProviderName, q.Price, q.Currency, q.Scores.Weighted)
	}
	_ = w.Flush()
	fmt.Printf("access token: %s\n", submitted.AccessToken)
}

func buildPayload(raw string, fields fieldList) (map[string]any, error) {
	payload := map[string]any{}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("-payload must be a JSON object: %w", err)
		}
		if payload == nil {
			payload = map[string]any{}
		}
	}
	for k, v := range fields {
		payload[k] = v
	}
	return payload, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
