package main

import (
	"github.com/spf13/cobra"
	"github.com/vango-dev/refstore/internal/loginpage"
	"github.com/vango-dev/refstore/pkg/server"
)

func renderCmd() *cobra.Command {
	var (
		page  bool
		title string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the login screen's server-rendered HTML",
		Long: `Mount the login screen in a throwaway session and print its HTML.

With --page the output is the full document including the client script.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := server.NewSession(loginpage.App, nil, nil, nil)
			defer sess.Close()

			if err := sess.Mount(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if page {
				return sess.WritePage(out, title, "")
			}

			html, err := sess.HTML()
			if err != nil {
				return err
			}
			_, err = out.Write([]byte(html + "\n"))
			return err
		},
	}

	cmd.Flags().BoolVarP(&page, "page", "p", false, "Render the full HTML document")
	cmd.Flags().StringVarP(&title, "title", "t", "refstore", "Document title for --page")

	return cmd
}
