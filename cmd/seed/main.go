// Command seed resets the database and fills it with demo users and random
// conversations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/PaulBabatuyi/jobboard-chat/internal/auth"
	"github.com/PaulBabatuyi/jobboard-chat/internal/config"
	"github.com/PaulBabatuyi/jobboard-chat/internal/data"
	"github.com/PaulBabatuyi/jobboard-chat/internal/db"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file (optional)")
	messages := flag.Int("messages", len(lorem)*5, "number of random messages to create")
	concurrency := flag.Int("concurrency", 8, "maximum concurrent writes")
	keep := flag.Bool("keep", false, "keep existing data instead of dropping it first")
	flag.Parse()

	if err := run(*configPath, *messages, *concurrency, !*keep); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, messages, concurrency int, reset bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := setupLogger(cfg.Logging)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := db.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = client.Close(context.Background()) }()

	if reset {
		if err := client.Drop(ctx); err != nil {
			return fmt.Errorf("dropping database: %w", err)
		}
		logger.Info("database dropped", "database", cfg.Mongo.Database)
	}
	if err := client.CreateIndexes(ctx); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	users := data.NewUsersStore(client.UsersCollection())
	msgs := data.NewMessagesStore(client.MessagesCollection())
	convs := data.NewConversationsStore(client.ConversationsCollection(), msgs)

	ids, err := seedAccounts(ctx, users, concurrency)
	if err != nil {
		return err
	}
	logger.Info("dummy users created", "count", len(ids))

	sent, err := seedMessages(ctx, convs, msgs, ids, messages, concurrency)
	if err != nil {
		return err
	}
	logger.Info("random messages created", "count", sent)
	logger.Info("database initialized")
	return nil
}

// seedAccounts registers every seed user and fills in their profile. It
// returns the created user ids.
func seedAccounts(ctx context.Context, users *data.UsersStore, concurrency int) ([]string, error) {
	ids := make([]string, len(seedUsers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, su := range seedUsers {
		g.Go(func() error {
			reg := su.reg
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("seed user %s: %w", su.reg.UserName, err)
			}
			// bcrypt dominates the run time
			hashed, err := auth.HashPassword(reg.Password)
			if err != nil {
				return err
			}
			user, err := users.CreateUser(ctx, reg.UserName, hashed, reg.UserType)
			if err != nil {
				return fmt.Errorf("creating %s: %w", reg.UserName, err)
			}
			if _, err := users.UpdateProfile(ctx, user.ID, su.profile); err != nil {
				return fmt.Errorf("profile for %s: %w", reg.UserName, err)
			}
			ids[i] = user.ID.Hex()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

// seedMessages sends n random lines between random distinct pairs of ids.
func seedMessages(ctx context.Context, convs *data.ConversationsStore, msgs *data.MessagesStore, ids []string, n, concurrency int) (int64, error) {
	if len(ids) < 2 {
		return 0, fmt.Errorf("need at least two users, have %d", len(ids))
	}

	var sent atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := 0; i < n; i++ {
		from, to := randomPair(len(ids))
		text := lorem[rand.IntN(len(lorem))]
		g.Go(func() error {
			conv, err := convs.FindOrCreate(ctx, ids[from], ids[to])
			if err != nil {
				return err
			}
			if _, err := msgs.Append(ctx, conv.ID, ids[from], text); err != nil {
				return err
			}
			sent.Add(1)
			return nil
		})
	}
	err := g.Wait()
	return sent.Load(), err
}

// randomPair picks two distinct indexes below n. n must be at least 2.
func randomPair(n int) (int, int) {
	a := rand.IntN(n)
	b := rand.IntN(n - 1)
	if b >= a {
		b++
	}
	return a, b
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
