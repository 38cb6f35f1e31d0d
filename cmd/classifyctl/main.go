// Command classifyctl classifies inputs from the command line, either
// against a running API server or locally with the embedded heuristics.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ADPer0705/parsec/internal/domain/service"
	"github.com/ADPer0705/parsec/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "classifyctl",
		Short: "Classify text as a shell command or a natural language prompt",
		Long: `classifyctl sends input to a classification server and prints the result
as JSON. With --local it skips the server and runs the heuristic
classifier in-process, which needs no network access.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newClassifyCmd())
	return rootCmd
}

func newClassifyCmd() *cobra.Command {
	var (
		server    string
		local     bool
		vocabPath string
		timeout   time.Duration
	)

	classifyCmd := &cobra.Command{
		Use:   "classify <input>...",
		Short: "Classify a single input",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")

			var raw []byte
			var err error
			if local {
				raw, err = classifyLocal(cmd, input, vocabPath)
			} else {
				raw, err = classifyRemote(cmd, input, server, timeout)
			}
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := json.Indent(&buf, raw, "", "  "); err != nil {
				return fmt.Errorf("invalid response: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), buf.String())
			return nil
		},
	}

	classifyCmd.Flags().StringVar(&server, "server", "http://localhost:8080", "classification server base URL")
	classifyCmd.Flags().BoolVar(&local, "local", false, "classify with the embedded heuristics instead of a server")
	classifyCmd.Flags().StringVar(&vocabPath, "vocabulary", "", "vocabulary file overriding the embedded defaults (local mode)")
	classifyCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	return classifyCmd
}

func classifyLocal(cmd *cobra.Command, input, vocabPath string) ([]byte, error) {
	vocab, err := service.DefaultVocabulary()
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	if vocabPath != "" {
		vocab, err = service.LoadVocabulary(vocabPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load vocabulary: %w", err)
		}
	}

	heuristic := service.NewHeuristicClassifier(vocab)
	uc := usecase.NewClassifierUsecase(heuristic, nil, nil, 0, zap.NewNop())

	result := uc.Classify(cmd.Context(), &usecase.ClassifyInput{Input: input})
	return json.Marshal(result)
}

func classifyRemote(cmd *cobra.Command, input, server string, timeout time.Duration) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"input": input})
	if err != nil {
		return nil, err
	}

	url := strings.TrimSuffix(server, "/") + "/api/v1/classify"
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
