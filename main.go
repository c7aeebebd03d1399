package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SaurabhVishwakarma412/PedoDerma/config"
	"github.com/SaurabhVishwakarma412/PedoDerma/data/database/mongoutil"
	"github.com/SaurabhVishwakarma412/PedoDerma/logger"
	mid "github.com/SaurabhVishwakarma412/PedoDerma/middleware"
	midsec "github.com/SaurabhVishwakarma412/PedoDerma/middleware/security"
	"github.com/SaurabhVishwakarma412/PedoDerma/module/auth"
	"github.com/SaurabhVishwakarma412/PedoDerma/module/directory"
	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging"
	"github.com/SaurabhVishwakarma412/PedoDerma/module/messaging/store"
	"github.com/SaurabhVishwakarma412/PedoDerma/service/chat"
	tsec "github.com/SaurabhVishwakarma412/PedoDerma/tools/security"
)

func main() {
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		logger.Fatalf("jwt.secret is not set (PEDODERMA_JWT_SECRET)")
	}

	jwtOpts := tsec.Options{Secret: []byte(cfg.JWT.Secret), TTL: cfg.JWT.TTL}

	msgStore, docStore, err := buildStores(cfg)
	if err != nil {
		logger.Fatalf("init storage: %v", err)
	}

	svc := messaging.NewService(msgStore)

	registry := chat.NewRegistry()
	gateway := chat.NewServer(registry, svc, jwtOpts)
	svc.AttachPusher(gateway)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mid.CORS(cfg.Server.AllowOrigin))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	r.GET("/ws", gateway.HandleWS)

	authMW := midsec.Middleware(jwtOpts)
	messaging.NewHandler(svc).Register(r, authMW)
	directory.NewHandler(docStore).Register(r)
	auth.NewHandler(jwtOpts).Register(r)

	logger.Infof("pedoderma messaging listening on %s (in-memory store: %v)",
		cfg.Server.Addr, cfg.Mongo.InMemory)
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Fatalf("server: %v", err)
	}
}

func buildStores(cfg *config.Config) (store.Store, directory.Store, error) {
	if cfg.Mongo.InMemory {
		docs := directory.NewMemory()
		_ = docs.Seed(context.Background(), []directory.Doctor{
			{ID: "doc-demo", Name: "Dr. Asha Rao", Specialization: "Pediatric Dermatology"},
		})
		return store.NewMemory(), docs, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := mongoutil.Connect(ctx, mongoutil.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, nil, err
	}
	msgStore, err := store.NewMongo(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	return msgStore, directory.NewMongo(db), nil
}
