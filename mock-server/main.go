// mock-server is a fake Solana RPC endpoint for local development. It
// answers the methods the provider fetches on connect, from a YAML config,
// with optional artificial latency and failure injection.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config for the mock server.
type Config struct {
	ListenAddr          string        `yaml:"listen_addr"`
	GenesisHash         string        `yaml:"genesis_hash"`
	FirstAvailableBlock uint64        `yaml:"first_available_block"`
	Epoch               Epoch         `yaml:"epoch"`
	LatencyMS           int           `yaml:"latency_ms"`
	FailMethods         []string      `yaml:"fail_methods"`
}

type Epoch struct {
	Number       uint64 `yaml:"number"`
	AbsoluteSlot uint64 `yaml:"absolute_slot"`
	BlockHeight  uint64 `yaml:"block_height"`
	SlotIndex    uint64 `yaml:"slot_index"`
	SlotsInEpoch uint64 `yaml:"slots_in_epoch"`
}

func main() {
	configPath := flag.String("config", "mock-server/config.yaml", "path to mock server config")
	flag.Parse()

	cfg := Config{
		ListenAddr:          "127.0.0.1:8899",
		GenesisHash:         "MockC1usterGenes1sHash111111111111111111111",
		FirstAvailableBlock: 250000000,
		Epoch: Epoch{
			Number:       665,
			AbsoluteSlot: 287469471,
			BlockHeight:  265809956,
			SlotIndex:    189471,
			SlotsInEpoch: 432000,
		},
	}

	if data, err := os.ReadFile(*configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("parsing config: %v", err)
		}
	} else {
		log.Printf("config not found at %s, using built-in defaults", *configPath)
	}

	failing := map[string]bool{}
	for _, m := range cfg.FailMethods {
		failing[m] = true
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JSONRPC string `json:"jsonrpc"`
			ID      int    `json:"id"`
			Method  string `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if cfg.LatencyMS > 0 {
			time.Sleep(time.Duration(cfg.LatencyMS) * time.Millisecond)
		}

		log.Printf("rpc %s", req.Method)

		if failing[req.Method] {
			writeResponse(w, req.ID, nil, map[string]any{"code": -32000, "message": "injected failure"})
			return
		}

		switch req.Method {
		case "getFirstAvailableBlock":
			writeResponse(w, req.ID, cfg.FirstAvailableBlock, nil)
		case "getEpochSchedule":
			writeResponse(w, req.ID, map[string]any{
				"slotsPerEpoch":            cfg.Epoch.SlotsInEpoch,
				"leaderScheduleSlotOffset": cfg.Epoch.SlotsInEpoch,
				"warmup":                   false,
				"firstNormalEpoch":         0,
				"firstNormalSlot":          0,
			}, nil)
		case "getEpochInfo":
			writeResponse(w, req.ID, map[string]any{
				"epoch":        cfg.Epoch.Number,
				"absoluteSlot": cfg.Epoch.AbsoluteSlot,
				"blockHeight":  cfg.Epoch.BlockHeight,
				"slotIndex":    cfg.Epoch.SlotIndex,
				"slotsInEpoch": cfg.Epoch.SlotsInEpoch,
			}, nil)
		case "getGenesisHash":
			writeResponse(w, req.ID, cfg.GenesisHash, nil)
		default:
			writeResponse(w, req.ID, nil, map[string]any{"code": -32601, "message": "method not found"})
		}
	})

	log.Printf("mock RPC listening on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, nil))
}

func writeResponse(w http.ResponseWriter, id int, result any, rpcErr map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{"jsonrpc": "2.0", "id": id}
	if rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}
	json.NewEncoder(w).Encode(resp)
}
