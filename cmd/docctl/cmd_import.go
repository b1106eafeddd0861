package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
)

// Manifest lists documents to ingest in one run.
type Manifest struct {
	Documents []ManifestEntry `yaml:"documents"`
}

// ManifestEntry is one document. Exactly one of Content or File is set; File
// is resolved relative to the manifest.
type ManifestEntry struct {
	Filename string         `yaml:"filename"`
	Content  string         `yaml:"content,omitempty"`
	File     string         `yaml:"file,omitempty"`
	Metadata map[string]any `yaml:"metadata,omitempty"`
}

func newImportCmd(open serviceFactory) *cobra.Command {
	var continueOnError bool

	cmd := &cobra.Command{
		Use:   "import <manifest.yaml>",
		Short: "Ingest every document listed in a YAML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := loadManifest(args[0])
			if err != nil {
				return err
			}

			svc, cleanup, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			var failed int
			for _, input := range inputs {
				doc, err := svc.Ingest(cmd.Context(), input)
				if err != nil {
					if !continueOnError {
						return fmt.Errorf("ingest %s: %w", input.Filename, err)
					}
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "failed %s: %v\n", input.Filename, err)
					continue
				}
				fmt.Fprintf(out, "created document %d (%s, %d chunks)\n", doc.ID, doc.Filename, len(doc.Chunks))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep importing after a failed document")
	return cmd
}

// loadManifest parses path and resolves every entry into ingest input.
func loadManifest(path string) ([]document.IngestInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(manifest.Documents) == 0 {
		return nil, errors.New("manifest lists no documents")
	}

	baseDir := filepath.Dir(path)
	inputs := make([]document.IngestInput, 0, len(manifest.Documents))
	for i, entry := range manifest.Documents {
		input, err := entry.resolve(baseDir)
		if err != nil {
			return nil, fmt.Errorf("documents[%d]: %w", i, err)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func (e ManifestEntry) resolve(baseDir string) (document.IngestInput, error) {
	if e.Filename == "" {
		return document.IngestInput{}, errors.New("filename is required")
	}
	if (e.Content == "") == (e.File == "") {
		return document.IngestInput{}, errors.New("exactly one of content or file is required")
	}

	input := document.IngestInput{
		Filename: e.Filename,
		Content:  e.Content,
		Metadata: e.Metadata,
	}
	if e.File != "" {
		path := e.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		text, err := readTextFile(path)
		if err != nil {
			return document.IngestInput{}, err
		}
		input.Content = text
		input.FilePath = &e.File
	}
	return input, nil
}
