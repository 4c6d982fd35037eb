package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type Application struct {
	Port       int        `koanf:"port"`
	Cors       Cors       `koanf:"cors"`
	Storage    Storage    `koanf:"storage"`
	Sqlite     Sqlite     `koanf:"sqlite"`
	Database   Database   `koanf:"db"`
	Firestore  Firestore  `koanf:"firestore"`
	Suggestion Suggestion `koanf:"suggestion"`
	Amqp       Amqp       `koanf:"amqp"`
}

type Cors struct {
	AllowOrigin  string `koanf:"alloworigin"`
	AllowMethods string `koanf:"allowmethods"`
}

type StorageBackend string

const (
	MemoryBackend    StorageBackend = "memory"
	SqliteBackend    StorageBackend = "sqlite"
	PostgresBackend  StorageBackend = "postgres"
	FirestoreBackend StorageBackend = "firestore"
)

type Storage struct {
	Backend StorageBackend `koanf:"backend"`
}

type Sqlite struct {
	Path string `koanf:"path"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Firestore struct {
	ProjectId       string `koanf:"projectid"`
	DatabaseId      string `koanf:"databaseid"`
	CredentialsFile string `koanf:"credentialsfile"`
	// Endpoint points the client at a Firestore emulator. Requests are sent unauthenticated.
	Endpoint string `koanf:"endpoint"`
}

type SuggestionProvider string

const (
	OpenAIProvider SuggestionProvider = "openai"
	GeminiProvider SuggestionProvider = "gemini"
)

type Suggestion struct {
	Provider  SuggestionProvider `koanf:"provider"`
	ApiKey    string             `koanf:"apikey"`
	Model     string             `koanf:"model"`
	BaseUrl   string             `koanf:"baseurl"`
	MaxTokens int                `koanf:"maxtokens"`
	Timeout   time.Duration      `koanf:"timeout"`
}

type Amqp struct {
	Url        string `koanf:"url"`
	Exchange   string `koanf:"exchange"`
	RoutingKey string `koanf:"routingkey"`
}

func defaults() Application {
	return Application{
		Port: 3232,
		Cors: Cors{
			AllowOrigin:  "*",
			AllowMethods: "*",
		},
		Storage: Storage{
			Backend: MemoryBackend,
		},
		Sqlite: Sqlite{
			Path: "./data/budgetgarden.db",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "budgetgarden",
			Pass:   "",
			Name:   "budgetgarden",
			Schema: "public",
		},
		Firestore: Firestore{
			DatabaseId:      "(default)",
			CredentialsFile: "resources/firebase_config.json",
		},
		Suggestion: Suggestion{
			Provider:  OpenAIProvider,
			BaseUrl:   "https://api.openai.com/v1",
			MaxTokens: 1024,
			Timeout:   60 * time.Second,
		},
		Amqp: Amqp{
			Exchange:   "budgetgarden",
			RoutingKey: "budget.changes",
		},
	}
}

func Load(path string) (Application, error) {
	// .env only seeds the process environment; a missing file is fine
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("unable to load .env file: %v", err)
	}

	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "BUDGETGARDEN_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "BUDGETGARDEN_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if app.Suggestion.ApiKey == "" {
		app.Suggestion.ApiKey = providerApiKey(app.Suggestion.Provider)
	}
	if app.Suggestion.Model == "" {
		app.Suggestion.Model = providerModel(app.Suggestion.Provider)
	}

	return app, nil
}

// providerApiKey falls back to the provider's conventional environment variable.
func providerApiKey(provider SuggestionProvider) string {
	switch provider {
	case GeminiProvider:
		return os.Getenv("GEMINI_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

func providerModel(provider SuggestionProvider) string {
	switch provider {
	case GeminiProvider:
		return "gemini-2.5-flash"
	default:
		return "gpt-4o-mini"
	}
}
