// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/auth"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/catalog"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/handlers"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/history"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/middleware"
	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/room"
)

func main() {
	auth.Init()

	logger := logrus.New()
	if os.Getenv("DEBUG") != "" {
		logger.SetLevel(logrus.DebugLevel)
	}

	// History capture is best-effort: rooms run fine without Redis.
	if err := history.Connect(); err != nil {
		logger.Warnf("event history disabled: %v", err)
	}

	var cat catalog.Source = catalog.Static{}
	if dsn := os.Getenv("CATALOG_DB_DSN"); dsn != "" {
		pg, err := catalog.NewPostgres(context.Background(), dsn)
		if err != nil {
			log.Fatalf("failed to connect to athlete catalog: %v", err)
		}
		defer pg.Close()
		cat = pg
		logger.Info("serving athlete catalog from postgres")
	}

	store := room.NewStore(logger, clockwork.NewRealClock())
	srv := handlers.NewAuctionServer(logger, store, cat)

	mux := http.NewServeMux()
	mux.Handle("/auction/ws", middleware.Logging(logger)(http.HandlerFunc(
		handlers.AuctionWSHandler(logger, srv),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
