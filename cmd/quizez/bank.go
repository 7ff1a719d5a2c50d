package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"quizez/internal/bank"
	"quizez/internal/config"
	"quizez/pkg/wire"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage the local question bank",
}

var bankAddCmd = &cobra.Command{
	Use:   "add <file.json>",
	Short: "Add a question from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var p wire.Payload
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("%s is not valid JSON: %w", args[0], err)
		}
		q, err := wire.DecodeQuestion(p)
		if err != nil {
			return fmt.Errorf("%s is not a valid question: %w", args[0], err)
		}

		store, err := openBank()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		id, err := store.Save(cmd.Context(), q)
		if err != nil {
			return err
		}
		fmt.Printf("saved question %d\n", id)
		return nil
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored questions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openBank()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		questions, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for i, q := range questions {
			fmt.Printf("%d. [%s] %s (%ds, %d points)\n",
				i, q.Body.Type(), q.Text, q.TimeLimit, q.TotalPoints())
		}
		return nil
	},
}

var bankDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a question by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("id must be a number")
		}
		store, err := openBank()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.Delete(cmd.Context(), id)
	},
}

func openBank() (*bank.Store, error) {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return bank.Open(cfg.Bank)
}

func init() {
	bankCmd.AddCommand(bankAddCmd, bankListCmd, bankDeleteCmd)
}
