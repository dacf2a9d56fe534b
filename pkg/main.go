package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	pkg "github.com/pressroomhq/pressroom/pkg/internal"
	"github.com/pressroomhq/pressroom/pkg/internal/cache"
	"github.com/pressroomhq/pressroom/pkg/internal/config"
	"github.com/pressroomhq/pressroom/pkg/internal/database"
	"github.com/pressroomhq/pressroom/pkg/internal/gql"
	"github.com/pressroomhq/pressroom/pkg/internal/http"
	"github.com/pressroomhq/pressroom/pkg/internal/services"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" ____\n|  _ \\ _ __ ___  ___ ___ _ __ ___   ___  _ __ ___\n| |_) | '__/ _ \\/ __/ __| '__/ _ \\ / _ \\| '_ ` _ \\\n|  __/| | |  __/\\__ \\__ \\ | | (_) | (_) | | | | | |\n|_|   |_|  \\___||___/___/_|  \\___/ \\___/|_| |_| |_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("PressroomHQ.Pressroom"), pkg.AppVersion)
	fmt.Printf("The headless publishing backend for newsrooms\n")
	color.HiBlack("=====================================================\n")

	// Load settings
	if err := config.Load(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Connect to database
	db, err := database.NewSource()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connecting to database.")
	}
	if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Derived-aggregate cache
	counts, err := cache.NewMarshaler()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Domain services
	users := services.NewUserService(db)
	categories := services.NewCategoryService(db, counts)
	tags := services.NewTagService(db, counts)
	posts := services.NewPostService(db, counts, users, categories, tags)

	storage, err := services.NewCloudinaryStorage()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing media storage.")
	}

	resolver := &gql.Resolver{
		Users:      users,
		Posts:      posts,
		Categories: categories,
		Tags:       tags,
		Storage:    storage,
	}

	schema, err := resolver.Schema()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when building schema.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", posts.DoAutoTrashCleanup)
	quartz.Start()

	// Server
	go http.NewServer(schema, users).Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
