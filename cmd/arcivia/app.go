package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/arcivia/arcivia-explore/pkg/client"
	"github.com/arcivia/arcivia-explore/pkg/explore"
	"github.com/arcivia/arcivia-explore/pkg/heritage"
	"github.com/arcivia/arcivia-explore/pkg/pagination"
	"github.com/arcivia/arcivia-explore/pkg/resolver"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// app wires the explore stack for one command invocation.
type app struct {
	redis  *redis.Client
	met    *client.Client
	source explore.PageSource
	detail *explore.DetailLoader
	// pool seeds related items; only the offline catalog has one up front.
	pool []heritage.Item
}

// newApp builds the live stack, or the sample catalog when offline is set.
func newApp(ctx context.Context) (*app, error) {
	if viper.GetBool("offline") {
		return newOfflineApp(), nil
	}

	addr := viper.GetString("redis.addr")
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w (use --offline to browse the sample catalog)", addr, err)
	}
	log.Debug().Str("addr", addr).Msg("Connected to Redis")

	cfg := client.DefaultConfig(rdb, viper.GetString("met.user_agent"))
	cfg.BaseURL = viper.GetString("met.base_url")
	met, err := client.New(cfg)
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to create collection client: %w", err)
	}

	fetcher := pagination.NewBatchFetcher(met, pagination.DefaultConfig())

	return &app{
		redis:  rdb,
		met:    met,
		source: explore.NewUpstreamSource(resolver.New(met), fetcher),
		detail: explore.NewDetailLoader(met, fetcher),
	}, nil
}

func newOfflineApp() *app {
	return &app{
		source: explore.SampleSource{},
		detail: explore.NewDetailLoader(nil, nil),
		pool:   heritage.SampleItems(),
	}
}

func (a *app) Close() {
	if a.met != nil {
		a.met.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}

// queryOptions are the listing flags shared by explore and serve.
type queryOptions struct {
	Category string
	Search   string
	Era      []string
	Culture  []string
	AROnly   bool
	Sort     string
}

func (o queryOptions) Query() heritage.Query {
	category := strings.ToLower(strings.TrimSpace(o.Category))
	if category == "" {
		category = "all"
	}
	return heritage.Query{
		Category: category,
		Search:   strings.TrimSpace(o.Search),
		Filters: heritage.Filters{
			Era:     splitList(o.Era),
			Culture: splitList(o.Culture),
			AROnly:  o.AROnly,
			SortBy:  heritage.ParseSortOrder(o.Sort),
		},
	}
}

// splitList flattens repeated and comma-separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
