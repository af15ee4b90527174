package main

import (
	"context"
	"log"

	"board/internal/db"
	"board/internal/platform/config"
	phttp "board/internal/platform/http"
	"board/internal/platform/notify"

	authhttp "board/internal/modules/auth/http"
	boardhttp "board/internal/modules/board/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbpool := db.MustOpen(context.Background(), cfg.PGDSN)
	defer dbpool.Close()

	gateway := notify.NewGateway().
		Register(notify.MethodEmail, notify.NewSMTPChannel(
			cfg.SMTP.Enabled, cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.From)).
		Register(notify.MethodSMS, notify.NewSMSChannel(
			cfg.SMS.Enabled, cfg.SMS.APIURL, cfg.SMS.APIKey, cfg.SMS.Sender))

	authModule := authhttp.NewModulePG(dbpool, gateway, cfg.JWTSecret, cfg.AccessTTL, cfg.Verify)
	boardModule := boardhttp.NewModulePG(dbpool, cfg.JWTSecret)

	app := phttp.NewServer(phttp.Options{AppName: "community-board"}, authModule, boardModule)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
