package service

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabulary []byte

// Vocabulary holds the fixed token sets the heuristic path matches against
// and the candidate labels offered to the zero-shot model. It is immutable
// after loading.
//
// Word and phrase lists are normalized to lower case, deduplicated and kept
// in lexicographic order so that indicator iteration is deterministic.
// Candidate labels keep their declared order.
type Vocabulary struct {
	ShellCommands    []string `yaml:"shell_commands"`
	PromptIndicators []string `yaml:"prompt_indicators"`
	Interrogatives   []string `yaml:"interrogatives"`
	CandidateLabels  []string `yaml:"candidate_labels"`

	shellCommands map[string]struct{}
}

// DefaultVocabulary loads the vocabulary embedded in the binary
func DefaultVocabulary() (*Vocabulary, error) {
	return ParseVocabulary(defaultVocabulary)
}

// LoadVocabulary loads a vocabulary from a YAML file
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return ParseVocabulary(data)
}

// ParseVocabulary parses and normalizes a YAML vocabulary document
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var vocab Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}

	if len(vocab.ShellCommands) == 0 {
		return nil, fmt.Errorf("vocabulary has no shell commands")
	}
	if len(vocab.CandidateLabels) == 0 {
		return nil, fmt.Errorf("vocabulary has no candidate labels")
	}

	vocab.ShellCommands = normalize(vocab.ShellCommands)
	vocab.PromptIndicators = normalize(vocab.PromptIndicators)
	vocab.Interrogatives = normalize(vocab.Interrogatives)

	vocab.shellCommands = make(map[string]struct{}, len(vocab.ShellCommands))
	for _, cmd := range vocab.ShellCommands {
		vocab.shellCommands[cmd] = struct{}{}
	}

	return &vocab, nil
}

// IsShellCommand reports whether word is in the shell-command set
func (v *Vocabulary) IsShellCommand(word string) bool {
	_, ok := v.shellCommands[word]
	return ok
}

func normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
