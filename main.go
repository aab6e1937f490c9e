package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/kulkarohan/collections/collection"
	"github.com/kulkarohan/collections/logger"
	"github.com/kulkarohan/collections/registry"
	"github.com/kulkarohan/collections/store"
	"github.com/shopspring/decimal"
)

func main() {
	ctx := context.Background()

	bp := flag.String("d", "~/.collections/data", "database directory path")
	cp := flag.String("c", "~/.collections/config.toml", "configuration file path")
	ip := flag.String("i", "", "caller identity, defaults to the configured owner")
	flag.Parse()

	logger.Init()

	if strings.HasPrefix(*cp, "~/") {
		usr, _ := user.Current()
		*cp = filepath.Join(usr.HomeDir, (*cp)[2:])
	}
	conf, err := collection.Setup(*cp)
	if err != nil {
		panic(err)
	}

	if strings.HasPrefix(*bp, "~/") {
		usr, _ := user.Current()
		*bp = filepath.Join(usr.HomeDir, (*bp)[2:])
	}
	db, err := store.OpenBadger(ctx, *bp)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	asset := registry.NewAssetClient(conf.Registry.AssetURL)
	market := registry.NewMarketClient(conf.Registry.MarketURL)
	core, err := collection.BuildCore(db, asset, market, &StubTransferor{}, conf.Owner)
	if err != nil {
		panic(err)
	}
	core.AddWorker(&EventWorker{})

	caller := *ip
	if caller == "" {
		caller = conf.Owner
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return
	}
	switch args[0] {
	case "create":
		err = createCollection(ctx, core, caller, args[1:])
	case "buy":
		err = buyCollection(ctx, core, caller, args[1:])
	case "withdraw":
		err = withdrawFunds(ctx, core, caller, args[1:])
	case "show":
		err = showCollection(core, args[1:])
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: collections [-d dir] [-c config] [-i identity] create|buy|withdraw|show ...")
}

func createCollection(ctx context.Context, core *collection.Core, caller string, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	supply := fs.Uint64("supply", 0, "number of purchasable slots")
	price := fs.String("price", "0", "price per slot")
	creator := fs.String("creator", caller, "address funds are withdrawn to")
	assetId := fs.String("asset", "", "source asset id")
	fs.Parse(args)

	p, err := decimal.NewFromString(*price)
	if err != nil {
		return err
	}
	id, err := core.CreateCollection(ctx, *supply, p, *creator, *assetId, caller)
	if err != nil {
		return err
	}
	fmt.Printf("collection %d\n", id)
	return nil
}

func buyCollection(ctx context.Context, core *collection.Core, caller string, args []string) error {
	fs := flag.NewFlagSet("buy", flag.ExitOnError)
	id := fs.Uint64("collection", 0, "collection id")
	amount := fs.String("amount", "0", "payment amount, must equal the price")
	fs.Parse(args)

	p, err := decimal.NewFromString(*amount)
	if err != nil {
		return err
	}
	tokenId, err := core.BuyCollection(ctx, *id, p, caller)
	if err != nil {
		return err
	}
	fmt.Printf("token %d\n", tokenId)
	return nil
}

func withdrawFunds(ctx context.Context, core *collection.Core, caller string, args []string) error {
	fs := flag.NewFlagSet("withdraw", flag.ExitOnError)
	id := fs.Uint64("collection", 0, "collection id")
	fs.Parse(args)

	amount, err := core.WithdrawFunds(ctx, *id, caller)
	if err != nil {
		return err
	}
	fmt.Printf("withdrew %s\n", amount)
	return nil
}

func showCollection(core *collection.Core, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	id := fs.Uint64("collection", 0, "collection id")
	fs.Parse(args)

	col, err := core.Collection(*id)
	if err != nil {
		return err
	}
	withdrawn, err := core.Withdrawn(*id)
	if err != nil {
		return err
	}
	fmt.Printf("collection %d asset %s creator %s sold %d/%d price %s withdrawn %s\n",
		col.Id, col.AssetId, col.Creator, col.Sold, col.Supply, col.Price, withdrawn)
	return nil
}
