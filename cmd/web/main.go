package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"palace"
	"palace/server"
)

func main() {
	cfg, err := palace.ConfigFromEnv()
	if err != nil {
		log.Fatal(err.Error())
	}

	var scoreStore palace.ScoreStore = palace.NewInMemoryScoreStore()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err.Error())
		}
		scoreStore = palace.NewRedisScoreStore(redis.NewClient(opts))
	} else {
		log.Println("REDIS_URL not set, scores will not survive a restart")
	}

	ledger := palace.NewScoreLedger(scoreStore, cfg.PlayerNames())
	if err := ledger.Load(context.Background()); err != nil {
		// gameplay continues on in-memory scores alone
		log.Printf("loading scores: %v", err)
	}

	s := server.NewServer(palace.NewInMemoryGameStore(), ledger)
	log.Printf("Listening on %s...", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, s))
}
