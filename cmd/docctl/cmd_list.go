package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/query"
)

func newListCmd(open serviceFactory) *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			pagination := query.NewPagination(page, pageSize)
			docs, total, err := svc.List(cmd.Context(), pagination)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFILENAME\tCHUNKS\tCREATED")
			for _, doc := range docs {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", doc.ID, doc.Filename, len(doc.Chunks), doc.CreatedAt.Format("2006-01-02 15:04"))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d, %d of %d documents\n", pagination.Page, len(docs), total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", query.DefaultPageSize, "Documents per page (max 100)")
	return cmd
}
