package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/symposium-labs/symposium/ai"
	"github.com/symposium-labs/symposium/api"
	"github.com/symposium-labs/symposium/api/handlers"
	"github.com/symposium-labs/symposium/communication"
	"github.com/symposium-labs/symposium/config"
	"github.com/symposium-labs/symposium/router"
	"github.com/symposium-labs/symposium/storage"
	"github.com/symposium-labs/symposium/utils"
)

var (
	servePort int
	serveNATS string
	serveMock bool
)

// ServeCmd starts the HTTP API with NATS eventing and Badger persistence.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the debate API server",
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Load()
		if servePort > 0 {
			settings.APIPort = servePort
		}
		if settings.APIPort <= 0 {
			settings.APIPort = utils.FindAvailableAPIPort()
		}
		if serveNATS != "" {
			settings.NATSUrl = serveNATS
		}

		store, err := storage.Open(storage.DefaultConfig(settings.DataDir))
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		defer store.Close()

		var messenger *communication.Messenger
		if m, err := communication.NewMessenger(settings.NATSUrl); err != nil {
			log.Printf("Warning: NATS unavailable at %s, events limited to WebSocket: %v", settings.NATSUrl, err)
		} else {
			messenger = m
			defer messenger.Close()
		}

		var invoker ai.Invoker
		if serveMock {
			invoker = ai.NewMockInvoker()
		} else {
			invoker = ai.NewOpenAIInvoker(ai.DefaultLLMConfig())
		}

		handlers.Init(handlers.Deps{
			Store:             store,
			Router:            router.New(nil, nil, router.StaticAvailability(settings.AvailableModels)),
			Invoker:           invoker,
			Events:            &communication.EventFanout{Messenger: messenger},
			MaxRounds:         settings.MaxRounds,
			ConflictThreshold: settings.ConflictThreshold,
			VoteWeight:        settings.VoteWeight,
			EvidenceWeight:    settings.EvidenceWeight,
			FairnessThreshold: settings.FairnessThreshold,
		})

		log.Printf("Symposium API listening on :%d", settings.APIPort)
		if err := api.StartServer(settings.APIPort); err != nil {
			log.Fatalf("API server failed: %v", err)
		}
	},
}

func init() {
	ServeCmd.Flags().IntVar(&servePort, "port", 0, "API port (overrides SYMPOSIUM_API_PORT)")
	ServeCmd.Flags().StringVar(&serveNATS, "nats", "", "NATS URL (overrides NATS_URL)")
	ServeCmd.Flags().BoolVar(&serveMock, "mock", false, "Use deterministic mock agents instead of live models")
}
