package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pranavvermapv/real-estate-crm/internal/model"
	"github.com/pranavvermapv/real-estate-crm/pkg/client"
)

var (
	propertyFilter string
	propertyFields client.PropertyRequest
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Manage property listings",
}

var propertiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List properties",
	Long: `List fetches all properties and displays them. --filter narrows the
list locally by a case-insensitive substring of location, type or
availability.`,
	RunE: runPropertiesList,
}

var propertiesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new property listing",
	Long: fmt.Sprintf(`Add creates a property. The dashboard forms restrict type to
%s/%s/%s and availability to %s/%s/%q, but the API stores the strings as
given.`,
		model.PropertyTypeResidential, model.PropertyTypeCommercial, model.PropertyTypeLand,
		model.AvailabilityAvailable, model.AvailabilitySold, model.AvailabilityUnderContract),
	RunE: runPropertiesAdd,
}

var propertiesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a property listing",
	Long: `Edit overwrites all fields of the property. Partial updates are not
supported by the API; supply every flag together.`,
	Args: cobra.ExactArgs(1),
	RunE: runPropertiesEdit,
}

var propertiesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a property listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runPropertiesRm,
}

func propertyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&propertyFields.Type, "type", "", "property type (required)")
	cmd.Flags().StringVar(&propertyFields.Size, "size", "", "property size (required)")
	cmd.Flags().StringVar(&propertyFields.Location, "location", "", "property location (required)")
	cmd.Flags().StringVar(&propertyFields.Budget, "budget", "", "property budget (required)")
	cmd.Flags().StringVar(&propertyFields.Availability, "availability", "", "property availability (required)")
	for _, name := range []string{"type", "size", "location", "budget", "availability"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func init() {
	propertiesListCmd.Flags().StringVar(&propertyFilter, "filter", "", "filter by location, type or availability substring")
	propertyFlags(propertiesAddCmd)
	propertyFlags(propertiesEditCmd)

	propertiesCmd.AddCommand(propertiesListCmd)
	propertiesCmd.AddCommand(propertiesAddCmd)
	propertiesCmd.AddCommand(propertiesEditCmd)
	propertiesCmd.AddCommand(propertiesRmCmd)
}

func runPropertiesList(cmd *cobra.Command, args []string) error {
	properties, err := api.ListProperties()
	if err != nil {
		return err
	}

	view := client.PropertyView{Items: properties, SearchTerm: propertyFilter}
	printPropertyTable(view.Visible())
	return nil
}

func runPropertiesAdd(cmd *cobra.Command, args []string) error {
	property, err := api.CreateProperty(propertyFields)
	if err != nil {
		return err
	}

	fmt.Printf("Property added: #%d %s in %s\n", property.ID, property.Type, property.Location)
	return nil
}

func runPropertiesEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	property, err := api.UpdateProperty(id, propertyFields)
	if err != nil {
		return err
	}

	fmt.Printf("Property updated: #%d %s in %s\n", property.ID, property.Type, property.Location)
	return nil
}

func runPropertiesRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := api.DeleteProperty(id); err != nil {
		return err
	}

	fmt.Printf("Property deleted: #%d\n", id)
	return nil
}

func printPropertyTable(properties []model.Property) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSIZE\tLOCATION\tBUDGET\tAVAILABILITY")
	for _, p := range properties {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Type, p.Size, p.Location, p.Budget, p.Availability)
	}
	w.Flush()
}
