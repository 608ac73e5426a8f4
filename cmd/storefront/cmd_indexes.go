package main

import (
	"fmt"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/inkwell/storefront/internal/infrastructure/db/mongo"
	"github.com/inkwell/storefront/internal/pkg/config"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the MongoDB indexes and exit",
	Long: `Create every index the service relies on, including the unique
indexes on orders.orderNumber, users.email and products.sku.

Reads MONGO_URI and MONGO_DB from the environment.`,
	RunE: runIndexes,
}

func runIndexes(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	mc, err := config.LoadMongo(ctx, envconfig.OsLookuper())
	if err != nil {
		return err
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: mc.URI, Database: mc.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "indexes ensured on %s\n", mc.Database)
	return nil
}
