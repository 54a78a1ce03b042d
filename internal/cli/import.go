package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/authoring"
	"mcq-practice-service/internal/config"
	"mcq-practice-service/internal/logger"
)

// NewImportCmd submits questions from a JSON file through the authoring flow.
// The file holds one question object or an array of them.
func NewImportCmd(configPath *string) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import MCQs from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := logger.Setup(cfg.Log.Level, cfg.Log.Format)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			docs, err := splitDocuments(data)
			if err != nil {
				return err
			}

			d, err := buildDeps(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer d.Close()

			imported, err := importQuestions(cmd.Context(), d.authoring, docs, category)
			if err != nil {
				return err
			}
			log.Info().Int("imported", imported).Str("file", args[0]).Msg("import finished")
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category for every imported question (overrides the file)")
	return cmd
}

// importQuestions submits each document in order and stops at the first
// failure, reporting its 1-based position. A non-empty category replaces the
// one in every document.
func importQuestions(ctx context.Context, svc *app.AuthoringService, docs [][]byte, category string) (int, error) {
	imported := 0
	for i, doc := range docs {
		form := authoring.NewForm()
		form.Mode = authoring.ModeUploadedFile
		if err := form.Upload(doc); err != nil {
			return imported, fmt.Errorf("question %d: %w", i+1, err)
		}
		if category != "" {
			form.Category = category
		}
		if _, err := svc.Submit(ctx, form); err != nil {
			return imported, fmt.Errorf("question %d: %w", i+1, err)
		}
		imported++
	}
	return imported, nil
}

// splitDocuments returns each question object in data.
func splitDocuments(data []byte) ([][]byte, error) {
	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "[") {
		return [][]byte{[]byte(trimmed)}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, fmt.Errorf("parse question list: %w", err)
	}
	docs := make([][]byte, len(items))
	for i, item := range items {
		docs[i] = item
	}
	return docs, nil
}
