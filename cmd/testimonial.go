package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/ui"
)

var (
	testimonialClient  string
	testimonialCompany string
)

// testimonialCmd groups the testimonial feed operations.
var testimonialCmd = &cobra.Command{
	Use:   "testimonial",
	Short: "Manage client testimonials",
}

var testimonialAddCmd = &cobra.Command{
	Use:   "add <quote>",
	Short: "Add a client testimonial",
	Long: `Add a client quote to the testimonial feed.

Example:
  athena testimonial add "They unblocked our filing in two days." --client "Ana Ruiz" --company "Ruiz & Co"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTestimonialAdd,
}

var testimonialListCmd = &cobra.Command{
	Use:   "list",
	Short: "List testimonials, newest first",
	RunE:  runTestimonialList,
}

func init() {
	rootCmd.AddCommand(testimonialCmd)
	testimonialCmd.AddCommand(testimonialAddCmd)
	testimonialCmd.AddCommand(testimonialListCmd)

	testimonialAddCmd.Flags().StringVar(&testimonialClient, "client", "", "Client name")
	testimonialAddCmd.Flags().StringVar(&testimonialCompany, "company", "", "Client company")
	_ = testimonialAddCmd.MarkFlagRequired("client")
}

func runTestimonialAdd(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	testimonial, err := taskStore.AddTestimonial(testimonialClient, testimonialCompany, args[0])
	if err != nil {
		return fmt.Errorf("add testimonial failed: %w", err)
	}

	fmt.Printf("%s Added testimonial from %s\n", ui.StyleSuccess.Render("✔"), testimonial.ClientName)
	return nil
}

func runTestimonialList(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return err
	}

	testimonials := taskStore.ListTestimonials()
	if len(testimonials) == 0 {
		fmt.Println(ui.StyleSubtle.Render("No testimonials yet."))
		return nil
	}

	for _, t := range testimonials {
		who := t.ClientName
		if t.Company != "" {
			who = fmt.Sprintf("%s (%s)", t.ClientName, t.Company)
		}
		fmt.Printf("%s %q\n", ui.StylePrimary.Render("“"), t.Quote)
		fmt.Println(ui.StyleSubtle.Render("  — " + who))
	}
	return nil
}
