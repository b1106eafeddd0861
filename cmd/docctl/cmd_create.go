package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/document"
)

func newCreateCmd(open serviceFactory) *cobra.Command {
	var (
		filename string
		content  string
		file     string
		metadata map[string]string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Ingest a single document",
		Long:  `Ingest one document from inline --content or from a text or HTML --file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (content == "") == (file == "") {
				return errors.New("exactly one of --content or --file is required")
			}

			input := document.IngestInput{Filename: filename, Content: content}
			if file != "" {
				text, err := readTextFile(file)
				if err != nil {
					return err
				}
				input.Content = text
				path := file
				input.FilePath = &path
			}
			if len(metadata) > 0 {
				input.Metadata = make(map[string]any, len(metadata))
				for k, v := range metadata {
					input.Metadata[k] = v
				}
			}

			svc, cleanup, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := svc.Ingest(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created document %d (%s, %d chunks)\n", doc.ID, doc.Filename, len(doc.Chunks))
			return nil
		},
	}

	cmd.Flags().StringVar(&filename, "filename", "", "Document name shown to users")
	cmd.Flags().StringVar(&content, "content", "", "Inline document text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a text file to ingest")
	cmd.Flags().StringToStringVar(&metadata, "meta", nil, "Metadata entries (key=value)")
	_ = cmd.MarkFlagRequired("filename")
	return cmd
}

// readTextFile reads path, rejecting content that does not sniff as text.
// HTML pages are reduced to their visible text.
func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	mtype := mimetype.Detect(data)
	if mtype.Is("text/html") {
		return htmlText(data)
	}
	if !isText(mtype) {
		return "", fmt.Errorf("%s is %s, only text files can be ingested", path, mtype.String())
	}
	return string(data), nil
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
