package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/symposium-labs/symposium/ai"
	"github.com/symposium-labs/symposium/api/handlers"
	"github.com/symposium-labs/symposium/bias"
	"github.com/symposium-labs/symposium/config"
	"github.com/symposium-labs/symposium/consensus"
	"github.com/symposium-labs/symposium/core"
	"github.com/symposium-labs/symposium/debate"
	"github.com/symposium-labs/symposium/router"
	"github.com/symposium-labs/symposium/utils"
)

var (
	runQuestion   string
	runAgents     []string
	runRounds     int
	runComplexity float64
	runBudget     float64
	runMock       bool
	runDataset    string
)

// RunCmd executes one debate end to end and prints the synthesis as JSON.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a one-shot debate",
	Run: func(cmd *cobra.Command, args []string) {
		if runQuestion == "" {
			fmt.Println("Error: --question is required")
			os.Exit(1)
		}

		settings := config.Load()
		if runRounds == 0 {
			runRounds = settings.MaxRounds
		}

		var dataset core.QueryResult
		if runDataset != "" {
			if !utils.FileExists(runDataset) {
				log.Fatalf("Dataset file not found: %s", runDataset)
			}
			data, err := os.ReadFile(runDataset)
			if err != nil {
				log.Fatalf("Failed to read dataset file: %v", err)
			}
			if err := json.Unmarshal(data, &dataset); err != nil {
				log.Fatalf("Failed to parse dataset file: %v", err)
			}
		}

		var invoker ai.Invoker
		if runMock {
			invoker = ai.NewMockInvoker()
		} else {
			invoker = ai.NewOpenAIInvoker(ai.DefaultLLMConfig())
		}

		rt := router.New(nil, nil, router.StaticAvailability(settings.AvailableModels))
		agents := runAgents
		if len(agents) == 0 {
			agents = []string{
				string(router.RoleDataDetective),
				string(router.RoleOptimistAnalyst),
				string(router.RolePessimistCritic),
				string(router.RoleEthicalAuditor),
			}
		}
		roster := handlers.BuildRoster(rt, agents, runComplexity, runBudget)

		detector := bias.NewDetector(settings.FairnessThreshold, nil)
		moderator := debate.NewModerator(invoker, detector, runRounds, settings.ConflictThreshold)

		builder, err := consensus.NewBuilder(settings.VoteWeight, settings.EvidenceWeight)
		if err != nil {
			log.Fatalf("Invalid consensus weights: %v", err)
		}

		dctx, err := moderator.Initiate(runQuestion, roster, dataset)
		if err != nil {
			log.Fatalf("Failed to initiate debate: %v", err)
		}

		synthesis, err := moderator.Run(context.Background(), dctx, builder)
		if err != nil {
			log.Fatalf("Debate failed: %v", err)
		}

		out, err := json.MarshalIndent(synthesis, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode synthesis: %v", err)
		}
		fmt.Println(string(out))
	},
}

func init() {
	RunCmd.Flags().StringVar(&runQuestion, "question", "", "Question to debate")
	RunCmd.Flags().StringSliceVar(&runAgents, "agents", nil, "Agent roles to include")
	RunCmd.Flags().IntVar(&runRounds, "rounds", 0, "Maximum debate rounds")
	RunCmd.Flags().Float64Var(&runComplexity, "complexity", 0.5, "Task complexity in [0,1]")
	RunCmd.Flags().Float64Var(&runBudget, "budget", 0, "Budget limit across roles (0 = unconstrained)")
	RunCmd.Flags().BoolVar(&runMock, "mock", false, "Use deterministic mock agents")
	RunCmd.Flags().StringVar(&runDataset, "dataset", "", "Path to a JSON query-result file")
}
