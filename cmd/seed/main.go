package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/skills4mind/events-api/internal/config"
	"github.com/skills4mind/events-api/internal/connect"
	"github.com/skills4mind/events-api/internal/helpers"
	"github.com/skills4mind/events-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const seedDir = "data"

// Wipes and reloads the events, accounts, incidents and services
// collections. Each collection is loaded from data/<name>.json when the
// file exists, otherwise from generated fixtures.
func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mongoClient, err := connect.MongoDBConnect(cfg.MongoDBURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := connect.MongoDBDisconnect(); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	repo := models.MongodbNewRepo(mongoClient, cfg.MongoDBDatabase)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := repo.EnsureAccountIndexes(ctx); err != nil {
		logger.Error("Failed to ensure account indexes", "error", err)
		os.Exit(1)
	}

	accounts := fakeAccounts(8)
	accountIDs := make([]primitive.ObjectID, len(accounts))
	for i, a := range accounts {
		accountIDs[i] = a.(map[string]interface{})["_id"].(primitive.ObjectID)
	}

	collections := map[string][]interface{}{
		models.AccountsColName:  accounts,
		models.EventsColName:    fakeEvents(40, accountIDs),
		models.IncidentsColName: fakeIncidents(15),
		models.ServicesColName:  fakeServices(10),
	}

	for name, fallback := range collections {
		docs, err := loadSeed(name, fallback)
		if err != nil {
			logger.Error("Failed to load seed data", "collection", name, "error", err)
			os.Exit(1)
		}
		if err := repo.ReplaceCollection(ctx, name, docs); err != nil {
			logger.Error("Failed to seed collection", "collection", name, "error", err)
			os.Exit(1)
		}
		logger.Info("Seeded collection", "collection", name, "count", len(docs))
	}
}

func loadSeed(name string, fallback []interface{}) ([]interface{}, error) {
	fromFile, err := helpers.ReadSeedFile(filepath.Join(seedDir, name+".json"))
	if err != nil {
		return nil, err
	}
	if fromFile == nil {
		return fallback, nil
	}

	docs := make([]interface{}, len(fromFile))
	for i, d := range fromFile {
		docs[i] = d
	}
	return docs, nil
}

func fakeAccounts(n int) []interface{} {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt: %v", err))
	}

	docs := make([]interface{}, n)
	for i := range docs {
		now := time.Now().UTC()
		docs[i] = map[string]interface{}{
			"_id":           primitive.NewObjectID(),
			"username":      fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i),
			"email":         fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			"password_hash": string(hash),
			"event_ids":     []primitive.ObjectID{},
			"created_at":    now,
			"updated_at":    now,
		}
	}
	return docs
}

func fakeEvents(n int, creators []primitive.ObjectID) []interface{} {
	categories := []string{"concert", "conference", "exposition", "festival", "sport"}
	statuses := []string{"scheduled", "ongoing", "finished", "cancelled"}

	docs := make([]interface{}, n)
	for i := range docs {
		now := time.Now().UTC()
		date := gofakeit.DateRange(now.AddDate(0, -6, 0), now.AddDate(0, 6, 0))

		doc := map[string]interface{}{
			"_id":             primitive.NewObjectID(),
			"title":           gofakeit.Sentence(4),
			"url":             gofakeit.URL(),
			"date":            date,
			"location":        gofakeit.City(),
			"category":        categories[i%len(categories)],
			"status":          statuses[i%len(statuses)],
			"popularity":      gofakeit.Number(0, 500),
			"creator_id":      creators[i%len(creators)],
			"participant_ids": []primitive.ObjectID{creators[(i+1)%len(creators)]},
			"created_at":      now,
			"updated_at":      now,
		}

		// Leave some descriptions empty so media and stats queries have
		// both populated and missing cases to chew on.
		if i%4 != 0 {
			doc["description"] = gofakeit.Paragraph(1, 3, 12, " ")
		}
		docs[i] = doc
	}
	return docs
}

func fakeIncidents(n int) []interface{} {
	docs := make([]interface{}, n)
	for i := range docs {
		docs[i] = map[string]interface{}{
			"_id":         primitive.NewObjectID(),
			"type":        gofakeit.RandomString([]string{"accident", "panne", "travaux", "manifestation"}),
			"description": gofakeit.Sentence(8),
			"location":    gofakeit.City(),
			"reported_at": gofakeit.DateRange(time.Now().AddDate(0, -1, 0), time.Now()),
		}
	}
	return docs
}

func fakeServices(n int) []interface{} {
	docs := make([]interface{}, n)
	for i := range docs {
		docs[i] = map[string]interface{}{
			"_id":      primitive.NewObjectID(),
			"name":     gofakeit.Company(),
			"category": gofakeit.RandomString([]string{"transport", "restauration", "securite", "nettoyage"}),
			"contact":  gofakeit.Email(),
			"active":   gofakeit.Bool(),
		}
	}
	return docs
}
