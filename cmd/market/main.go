package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"unimarket/internal/ai"
	"unimarket/internal/config"
	"unimarket/internal/domain"
	"unimarket/internal/images"
	"unimarket/internal/logger"
	"unimarket/internal/pricing"
	"unimarket/internal/repository"
	"unimarket/internal/service"
	"unimarket/internal/session"
	"unimarket/internal/storage"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: market <command> [args]

Commands:
  seed                       load demo accounts and listings into an empty store
  list [-category C] [-seller ID]
                             print publicly visible listings, newest first
  show <product-id>          print one listing regardless of status
  comments <product-id>      print a listing's comments, oldest first
  reprice <product-id> <condition>
                             change an owned listing's condition and re-derive
                             its price from the implied original
  normalize <in> <out>       run an image file through the normalization pipeline
  analyze <files...>         suggest listing metadata for up to 3 photos`)
}

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	users    service.UserService
	products service.ProductService
	comments service.CommentService
	sessions *session.Manager
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	store, err := storage.New(cfg.Store.Dir, cfg.Store.MaxBytes, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}
	log.Debug("Store opened", zap.Any("health", store.Health()))

	userRepo := repository.NewUserRepository(store)
	productRepo := repository.NewProductRepository(store)
	commentRepo := repository.NewCommentRepository(store)
	sessions := session.NewManager(store)

	a := &app{
		cfg:      cfg,
		logger:   log,
		users:    service.NewUserService(userRepo, sessions, log),
		products: service.NewProductService(productRepo, userRepo, sessions, log),
		comments: service.NewCommentService(commentRepo, userRepo, sessions, log),
		sessions: sessions,
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "seed":
		err = a.runSeed(ctx)
	case "list":
		err = a.runList(ctx, os.Args[2:])
	case "show":
		err = a.runShow(ctx, os.Args[2:])
	case "comments":
		err = a.runComments(ctx, os.Args[2:])
	case "reprice":
		err = a.runReprice(ctx, os.Args[2:])
	case "normalize":
		err = a.runNormalize(os.Args[2:])
	case "analyze":
		err = a.runAnalyze(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("Command failed", zap.Error(err))
	}
}

func (a *app) runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	category := fs.String("category", "", "exact category to filter on")
	seller := fs.String("seller", "", "seller id to filter on")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var filter repository.ProductFilter
	if *category != "" {
		filter.Category = category
	}
	if *seller != "" {
		id, err := uuid.Parse(*seller)
		if err != nil {
			return fmt.Errorf("invalid seller id: %w", err)
		}
		filter.SellerID = &id
	}

	products, err := a.products.List(ctx, filter)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%s  %-10s %8d  [%s] %s\n",
			p.ID, p.Condition, p.Price, p.Category, p.Title)
	}
	fmt.Printf("%d listing(s)\n", len(products))
	return nil
}

func (a *app) runShow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("show expects exactly one product id")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	product, err := a.products.Get(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(product)
}

func (a *app) runComments(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("comments expects exactly one product id")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	comments, err := a.comments.ListForProduct(ctx, id)
	if err != nil {
		return err
	}
	for _, c := range comments {
		fmt.Printf("%s  %s: %s\n", c.CreatedAt.Format(time.RFC3339), c.UserNickname, c.Content)
	}
	return nil
}

// runReprice moves an owned listing to a new condition tier. The stored
// price and tier anchor an implied original price, and the new asking price
// is derived from that anchor at the new tier's ratio.
func (a *app) runReprice(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("reprice expects a product id and a condition")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}
	condition := domain.Condition(args[1])
	if !condition.Valid() {
		return fmt.Errorf("unknown condition %q", args[1])
	}

	product, err := a.products.Get(ctx, id)
	if err != nil {
		return err
	}

	form := pricing.NewReconciler(product.Condition)
	form.LoadListing(product.Price, product.Condition)
	form.SetCondition(condition)

	price := form.Price()
	updated, err := a.products.Update(ctx, id, service.ProductUpdate{
		Condition: &condition,
		Price:     &price,
	})
	if err != nil {
		return err
	}

	a.logger.Info("Listing repriced",
		zap.String("product_id", id.String()),
		zap.String("condition", string(condition)),
		zap.Int("old_price", product.Price),
		zap.Int("new_price", updated.Price),
	)
	return printJSON(updated)
}

func (a *app) runNormalize(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("normalize expects an input and an output path")
	}

	payload, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	normalizer := images.NewNormalizer(
		a.cfg.Image.MaxDimension,
		a.cfg.Image.JPEGQuality,
		a.cfg.Image.MaxPerListing,
	)
	normalized, err := normalizer.Normalize(payload)
	if err != nil {
		return err
	}

	if err := os.WriteFile(args[1], normalized, 0o644); err != nil {
		return err
	}
	a.logger.Info("Image normalized",
		zap.Int("bytes_in", len(payload)),
		zap.Int("bytes_out", len(normalized)),
	)
	return nil
}

func (a *app) runAnalyze(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("analyze expects at least one image file")
	}

	payloads := make([][]byte, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		payloads = append(payloads, data)
	}

	normalizer := images.NewNormalizer(
		a.cfg.Image.MaxDimension,
		a.cfg.Image.JPEGQuality,
		a.cfg.Image.MaxPerListing,
	)
	normalized, err := normalizer.NormalizeAll(payloads)
	if err != nil {
		return err
	}

	analyzer := ai.NewAnalyzer(
		a.cfg.AI.APIKey,
		a.cfg.AI.Model,
		a.cfg.AI.BaseURL,
		time.Duration(a.cfg.AI.Timeout)*time.Second,
		a.logger,
	)
	result, err := analyzer.Analyze(ctx, normalized)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
