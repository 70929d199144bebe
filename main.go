package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/AlltidSemester1337/chef-web-backend/internal/auth"
	"github.com/AlltidSemester1337/chef-web-backend/internal/chat"
	"github.com/AlltidSemester1337/chef-web-backend/internal/chefdb"
	"github.com/AlltidSemester1337/chef-web-backend/internal/config"
	"github.com/AlltidSemester1337/chef-web-backend/internal/curate"
	"github.com/AlltidSemester1337/chef-web-backend/internal/file"
	"github.com/AlltidSemester1337/chef-web-backend/internal/handler/chathistory"
	"github.com/AlltidSemester1337/chef-web-backend/internal/handler/favoriterecipe"
	"github.com/AlltidSemester1337/chef-web-backend/internal/handler/getrecipe"
	"github.com/AlltidSemester1337/chef-web-backend/internal/handler/listrecipes"
	"github.com/AlltidSemester1337/chef-web-backend/internal/handler/sendchat"
	"github.com/AlltidSemester1337/chef-web-backend/internal/handler/signin"
	"github.com/AlltidSemester1337/chef-web-backend/internal/illustrate"
	"github.com/AlltidSemester1337/chef-web-backend/internal/session"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	databaseURL := conf.Firebase.DatabaseURL
	if databaseURL == "" {
		databaseURL = fmt.Sprintf("https://%s-default-rtdb.firebaseio.com", conf.Google.Project)
	}
	fbApp, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   conf.Google.Project,
		DatabaseURL: databaseURL,
	})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	fbDB, err := fbApp.Database(ctx)
	if err != nil {
		return fmt.Errorf("main: create realtime database client: %w", err)
	}

	storageClient, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storageClient.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()
	publicBucket := conf.Google.Project + "-public"

	genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		Project: conf.Google.Project,
	})
	if err != nil {
		return fmt.Errorf("main: create genai client: %w", err)
	}

	var streamer chat.Streamer
	switch conf.Chat.Provider {
	case "openai":
		oai := openai.NewClient()
		streamer = chat.NewOpenAIStreamer(&oai)
	default:
		streamer = chat.NewGeminiStreamer(genAI)
	}

	identity := auth.NewService(fbAuth, conf.Firebase.WebAPIKey)
	sessions := session.NewManager()
	favorites := chefdb.NewFavorites(fbDB)
	chatLog := chefdb.NewChatLog(fbDB)
	illustrator := illustrate.New(genAI, file.NewIO(storageClient, publicBucket))
	curator := curate.New(favorites, illustrator)
	orchestrator := chat.NewOrchestrator(streamer, chatLog)

	authorizedEmails := strings.Split(conf.Authorization.EmailsCSV, ",")

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	requireAccess := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := firebaseauth.TokenFromContext(r.Context())
			if id, ok := tok.Firebase.Identities["email"]; ok {
				if idAny, ok := id.([]any); ok && len(idAny) > 0 {
					if email, ok := idAny[0].(string); ok {
						if slices.Contains(authorizedEmails, email) {
							next.ServeHTTP(w, r)
							return
						}
					}
				}
			}
			http.Error(w, "permission denied", http.StatusForbidden)
		})
	}

	mux.Use(middleware.Maybe(func(h http.Handler) http.Handler {
		return fbMW(requireAccess(h))
	}, func(r *http.Request) bool {
		switch {
		case strings.HasPrefix(r.URL.Path, "/internal/"):
			return false
		case r.URL.Path == "/api/signin":
			return false
		default:
			return true
		}
	}))

	mux.Post("/api/signin", signin.NewHandler(identity, sessions).SignIn)
	mux.Post("/api/chat", sendchat.NewHandler(orchestrator, sessions, identity).SendChat)
	mux.Get("/api/chat/history", chathistory.NewHandler(chatLog, favorites, sessions, identity).ChatHistory)
	mux.Post("/api/recipes/favorite", favoriterecipe.NewHandler(curator, sessions, identity).FavoriteRecipe)
	mux.Get("/api/recipes", listrecipes.NewHandler(favorites).ListRecipes)
	mux.Get("/api/recipes/{recipeID}", getrecipe.NewHandler(favorites).GetRecipe)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
