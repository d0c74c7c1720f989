package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"club-sync/internal/config"
	"club-sync/internal/database"
	"club-sync/internal/features/event"
	"club-sync/internal/features/group"
	"club-sync/internal/features/member"
	sync_feature "club-sync/internal/features/sync"
	"club-sync/internal/spond"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// One-shot sync runner. Useful for cron-less deployments and for checking
// credentials before starting the API server.
//
//	go run ./cmd/syncnow -kind events
func main() {
	kindFlag := flag.String("kind", "all", "what to sync: events, groups, members or all")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	db := &database.MongodbDB{Client: client, DB: client.Database(cfg.DBName)}

	zlog, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	svc := sync_feature.NewSyncService(
		sync_feature.NewSyncRepository(db),
		event.NewEventRepository(db),
		group.NewGroupRepository(db),
		member.NewMemberRepository(db),
		spond.NewClient(cfg),
		db.InTxn,
		cfg,
		zlog,
	)

	var kinds []sync_feature.Kind
	if *kindFlag == "all" {
		kinds = []sync_feature.Kind{sync_feature.KindGroup, sync_feature.KindMember, sync_feature.KindEvent}
	} else {
		kind, err := sync_feature.ParseKind(*kindFlag)
		if err != nil {
			log.Fatal(err)
		}
		kinds = []sync_feature.Kind{kind}
	}

	failed := false
	for _, kind := range kinds {
		run, err := svc.Sync(ctx, kind)
		if err != nil {
			failed = true
			fmt.Printf("%s: FAILED: %v\n", kind, err)
			continue
		}
		fmt.Printf("%s: fetched=%d created=%d updated=%d errors=%d\n",
			kind, run.Fetched, run.Created, run.Updated, run.Errors)
	}
	if failed {
		os.Exit(1)
	}
}
