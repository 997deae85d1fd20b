package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordmine/go-server/internal/httpserver"
	"github.com/wordmine/go-server/internal/level"
	"github.com/wordmine/go-server/internal/store"
	"github.com/wordmine/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(envStr("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionaries")
	}

	db, err := openDB(envStr("SQLITE_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	// Level source: authored level files when LEVELS_DIR is set, otherwise
	// levels synthesized from built-in seeds and the loaded dictionaries.
	var levels level.Source = level.Builder{}
	if dir := os.Getenv("LEVELS_DIR"); dir != "" {
		levels = level.NewLoader(os.DirFS(dir))
		log.Info().Str("dir", dir).Msg("serving authored levels")
	}

	srv := httpserver.New(store.NewMemoryStore(), db, levels, envInt("LEVEL_SECONDS", 90))
	port := envStr("PORT", "5175")
	log.Info().Str("port", port).Msg("starting wordmine go-server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func envStr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
