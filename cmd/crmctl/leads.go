package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pranavvermapv/real-estate-crm/internal/model"
	"github.com/pranavvermapv/real-estate-crm/pkg/client"
)

var (
	leadFilter string
	leadName   string
	leadPhone  string
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Manage leads",
}

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads",
	Long: `List fetches all leads and displays them. --filter narrows the list
locally by a case-insensitive substring of the name or phone number.

Example:
  crmctl leads list
  crmctl leads list --filter ada`,
	RunE: runLeadsList,
}

var leadsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new lead",
	RunE:  runLeadsAdd,
}

var leadsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a lead",
	Long: `Edit overwrites both fields of the lead. Partial updates are not
supported by the API; supply --name and --phone together.`,
	Args: cobra.ExactArgs(1),
	RunE: runLeadsEdit,
}

var leadsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a lead",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeadsRm,
}

var leadsUploadCmd = &cobra.Command{
	Use:   "upload <id> <file.pdf>",
	Short: "Attach a PDF document to a lead",
	Args:  cobra.ExactArgs(2),
	RunE:  runLeadsUpload,
}

func init() {
	leadsListCmd.Flags().StringVar(&leadFilter, "filter", "", "filter by name or phone number substring")
	leadsAddCmd.Flags().StringVar(&leadName, "name", "", "lead name (required)")
	leadsAddCmd.Flags().StringVar(&leadPhone, "phone", "", "lead phone number (required)")
	_ = leadsAddCmd.MarkFlagRequired("name")
	_ = leadsAddCmd.MarkFlagRequired("phone")
	leadsEditCmd.Flags().StringVar(&leadName, "name", "", "new lead name (required)")
	leadsEditCmd.Flags().StringVar(&leadPhone, "phone", "", "new lead phone number (required)")
	_ = leadsEditCmd.MarkFlagRequired("name")
	_ = leadsEditCmd.MarkFlagRequired("phone")

	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsAddCmd)
	leadsCmd.AddCommand(leadsEditCmd)
	leadsCmd.AddCommand(leadsRmCmd)
	leadsCmd.AddCommand(leadsUploadCmd)
}

func runLeadsList(cmd *cobra.Command, args []string) error {
	leads, err := api.ListLeads()
	if err != nil {
		return err
	}

	view := client.LeadView{Items: leads, SearchTerm: leadFilter}
	printLeadTable(view.Visible())
	return nil
}

func runLeadsAdd(cmd *cobra.Command, args []string) error {
	lead, err := api.CreateLead(client.LeadRequest{Name: leadName, PhoneNumber: leadPhone})
	if err != nil {
		return err
	}

	fmt.Printf("Lead added: #%d %s (%s)\n", lead.ID, lead.Name, lead.PhoneNumber)
	return nil
}

func runLeadsEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	lead, err := api.UpdateLead(id, client.LeadRequest{Name: leadName, PhoneNumber: leadPhone})
	if err != nil {
		return err
	}

	fmt.Printf("Lead updated: #%d %s (%s)\n", lead.ID, lead.Name, lead.PhoneNumber)
	return nil
}

func runLeadsRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := api.DeleteLead(id); err != nil {
		return err
	}

	fmt.Printf("Lead deleted: #%d\n", id)
	return nil
}

func runLeadsUpload(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	doc, err := api.UploadLeadDocument(id, args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Document uploaded: #%d %s -> %s\n", doc.ID, doc.FileName, doc.FilePath)
	return nil
}

func printLeadTable(leads []model.Lead) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE")
	for _, lead := range leads {
		fmt.Fprintf(w, "%d\t%s\t%s\n", lead.ID, lead.Name, lead.PhoneNumber)
	}
	w.Flush()
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}
