package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roomledger-cli",
		Short: "RoomLedger CLI tool",
		Long:  `A command line interface for interacting with the RoomLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the RoomLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	balancesCmd := &cobra.Command{
		Use:   "balances <house-id>",
		Short: "Show house balances",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showBalances(args[0])
		},
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency <house-id>",
		Short: "Check that house balances sum to zero",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency(args[0])
		},
	}

	leaderboardCmd := &cobra.Command{
		Use:   "leaderboard <house-id>",
		Short: "Show the house leaderboard",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showLeaderboard(args[0])
		},
	}

	rootCmd.AddCommand(balancesCmd, consistencyCmd, leaderboardCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) ([]byte, int) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode
}

func showBalances(houseID string) {
	body, status := get("/api/v1/houses/" + houseID + "/balances")
	if status != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result struct {
		Balances map[string]string `json:"balances"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for member, balance := range result.Balances {
		fmt.Printf("%s: %s\n", member, balance)
	}
}

func checkConsistency(houseID string) {
	body, status := get("/api/v1/houses/" + houseID + "/balances/consistency")
	if status != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Println("Consistency check PASSED")
	} else {
		fmt.Printf("Consistency check FAILED\nTotal: %v\n", result["total"])
		os.Exit(1)
	}
}

func showLeaderboard(houseID string) {
	body, status := get("/api/v1/houses/" + houseID + "/leaderboard")
	if status != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var entries []struct {
		UserID string `json:"user_id"`
		Points int    `json:"points"`
	}
	if err := json.Unmarshal(body, &entries); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for i, e := range entries {
		fmt.Printf("%d. %s (%d points)\n", i+1, e.UserID, e.Points)
	}
}
