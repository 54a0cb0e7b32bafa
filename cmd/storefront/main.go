package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"marmita-storefront/internal/config"
	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/payment"
	"marmita-storefront/internal/storefront"

	"go.uber.org/zap"
)

var errUsage = errors.New("usage: storefront [menu [offset] | orders <phone> | cep <cep> | branding]")

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), errUsage.Error())
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	sf, err := storefront.New(cfg)
	if err != nil {
		logger.L().Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	ctx := logger.EnsureRequestID(context.Background())
	err = run(ctx, sf, flag.Args(), os.Stdout)

	stats := sf.BackendStats()
	logger.FromCtx(ctx).Debug("backend calls",
		zap.Uint64("total", stats.Total),
		zap.Uint64("failed", stats.Failed),
		zap.Duration("avg_latency", stats.AvgLatency),
	)

	if err != nil {
		logger.FromCtx(ctx).Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, sf *storefront.Storefront, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "menu":
		offset := 0
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				return fmt.Errorf("invalid offset %q", args[1])
			}
			offset = n
		}
		return printMenu(ctx, sf, offset, out)

	case "orders":
		if len(args) < 2 {
			return errUsage
		}
		return printOrders(ctx, sf, args[1], out)

	case "cep":
		if len(args) < 2 {
			return errUsage
		}
		addr, err := sf.Address.Lookup(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, addr.Format())
		return nil

	case "branding":
		b, err := sf.Settings.Branding(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\nlogo: %s (%ddp)\nbanner: %s\n", b.StoreName, b.LogoURL, b.LogoSize, b.BannerURL)
		return nil

	default:
		return errUsage
	}
}

func printMenu(ctx context.Context, sf *storefront.Storefront, offset int, out io.Writer) error {
	page, err := sf.Feed.Load(ctx, offset, 0)
	if err != nil {
		return err
	}

	for _, p := range page.Items {
		fmt.Fprintf(out, "%-36s %s\n", p.Name, payment.FormatBRL(p.Price))
	}
	if page.HasMore {
		fmt.Fprintf(out, "more: storefront menu %d\n", page.NextOffset)
	}
	return nil
}

func printOrders(ctx context.Context, sf *storefront.Storefront, phone string, out io.Writer) error {
	orders, err := sf.Orders.ListByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(out, "no orders")
		return nil
	}

	for _, o := range orders {
		created := ""
		if o.CreatedAt != nil {
			created = o.CreatedAt.Local().Format("02/01/2006 15:04")
		}
		fmt.Fprintf(out, "%s  %-10s %s  %s\n", o.ID, o.Status, payment.FormatBRL(o.Total), created)
	}
	return nil
}
