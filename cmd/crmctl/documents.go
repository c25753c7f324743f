package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage uploaded PDF documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all uploaded documents",
	RunE:  runDocsList,
}

var docsUploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Upload a PDF without attaching it to a lead",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsUpload,
}

func init() {
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsUploadCmd)
}

func runDocsList(cmd *cobra.Command, args []string) error {
	documents, err := api.ListDocuments()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPATH\tLEAD")
	for _, d := range documents {
		lead := "-"
		if d.LeadID != nil {
			lead = fmt.Sprintf("%d", *d.LeadID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", d.ID, d.Name, d.FilePath, lead)
	}
	w.Flush()
	return nil
}

func runDocsUpload(cmd *cobra.Command, args []string) error {
	resp, err := api.Upload(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s #%d %s -> %s\n", resp.Message, resp.Data.ID, resp.Data.Name, resp.Data.FilePath)
	return nil
}
