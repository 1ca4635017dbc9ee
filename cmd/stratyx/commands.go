package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/stratyx-planner/internal/calendar"
	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

var (
	profilePath string
	saveAs      string
	outDir      string
	rawOutput   bool
	wrapWidth   int
	assumeYes   bool
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server and its agent card are up",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		c := newClient()
		ctx := commandContext(cmd)

		printField(out, "Base URL", baseURL)
		if err := c.Health(ctx); err != nil {
			return fmt.Errorf("health check: %w", err)
		}
		printSuccess(out, "Health check passed")

		card, err := c.AgentCard(ctx)
		if err != nil {
			return fmt.Errorf("agent card: %w", err)
		}
		for _, field := range []string{"name", "description", "version", "capabilities", "endpoints"} {
			if _, ok := card[field]; !ok {
				return fmt.Errorf("agent card is missing %q", field)
			}
		}
		printSuccess(out, fmt.Sprintf("Agent card is valid (%v)", card["name"]))
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a plan from a business profile JSON file",
	Long: `Generate a marketing plan from a BusinessProfile JSON document.

Fields left out of the file take the intake form defaults. With --save the
plan is stored as a new project in the --email namespace.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if profilePath == "" {
			return errors.New("--profile is required")
		}
		profile, err := readProfile(profilePath)
		if err != nil {
			return err
		}
		if err := profile.Validate(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		ctx := commandContext(cmd)
		c := newClient()
		printHeader(out, "Gerando plano para "+profile.Name)
		plan, err := c.GeneratePlan(ctx, profile)
		if err != nil {
			return err
		}
		printSuccess(out, fmt.Sprintf("Plano gerado com %d posts", len(plan.Calendar)))
		if plan.Summary != "" {
			fmt.Fprintln(out, mutedStyle.Render(plan.Summary))
		}

		if saveAs == "" {
			return json.NewEncoder(out).Encode(plan)
		}
		if email == "" {
			return errors.New("--email is required with --save")
		}
		saved, err := c.SaveProject(ctx, email, models.Project{Profile: profile, Plan: *plan}, saveAs)
		if err != nil {
			return err
		}
		printSuccess(out, fmt.Sprintf("Projeto salvo: %s (%s)", saved.ProjectName, saved.ID))
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <business idea>",
	Short: "Describe a business in plain text and let the agent plan it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		idea := strings.Join(args, " ")
		printField(out, "Business Idea", idea)

		result, err := newClient().AskAgent(commandContext(cmd), idea)
		if err != nil {
			return err
		}
		if result.Status.Message != nil {
			for _, part := range result.Status.Message.Parts {
				if part.Text != "" {
					fmt.Fprintln(out, part.Text)
				}
			}
		}
		if result.Status.State != "completed" {
			return fmt.Errorf("agent finished in state %q", result.Status.State)
		}
		for _, artifact := range result.Artifacts {
			for _, part := range artifact.Parts {
				if part.Kind == "text" {
					fmt.Fprint(out, render(part.Text))
				}
			}
		}
		return nil
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List and manage saved projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, most recent first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireEmail(); err != nil {
			return err
		}
		projects, err := newClient().ListProjects(commandContext(cmd), email)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(projects) == 0 {
			fmt.Fprintln(out, mutedStyle.Render("Nenhum projeto salvo."))
			return nil
		}
		printHeader(out, fmt.Sprintf("Projetos de %s", email))
		for _, p := range projects {
			writeProjectLine(out, p)
		}
		return nil
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a project as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEmail(); err != nil {
			return err
		}
		p, err := newClient().GetProject(commandContext(cmd), email, args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEmail(); err != nil {
			return err
		}
		if !assumeYes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Excluir o projeto %s?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Exclusão cancelada."))
				return nil
			}
		}
		if err := newClient().DeleteProject(commandContext(cmd), email, args[0]); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Projeto excluído")
		return nil
	},
}

var projectsToggleCmd = &cobra.Command{
	Use:   "toggle <id> <post-id>",
	Short: "Mark a calendar post as posted or pending",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEmail(); err != nil {
			return err
		}
		p, err := newClient().TogglePost(commandContext(cmd), email, args[0], args[1])
		if err != nil {
			return err
		}
		for _, post := range p.Plan.Calendar {
			if post.ID == args[1] {
				printSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s: %s", post.Topic, post.Status))
			}
		}
		return nil
	},
}

var projectsExtendCmd = &cobra.Command{
	Use:   "extend <id>",
	Short: "Ask for more calendar posts after the last planned day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEmail(); err != nil {
			return err
		}
		p, err := newClient().ExtendCalendar(commandContext(cmd), email, args[0])
		if err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Calendário vai até o dia %d (%d posts)",
			calendar.MaxDay(p.Plan.Calendar), len(p.Plan.Calendar)))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Download a project as a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEmail(); err != nil {
			return err
		}
		data, filename, err := newClient().Export(commandContext(cmd), email, args[0])
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, filepath.Base(filename))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		printSuccess(cmd.OutOrStdout(), "Exportado para "+path)
		return nil
	},
}

var printCmd = &cobra.Command{
	Use:   "print <id>",
	Short: "Render the printable plan document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEmail(); err != nil {
			return err
		}
		doc, err := newClient().Print(commandContext(cmd), email, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), render(doc))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "BusinessProfile JSON file")
	generateCmd.Flags().StringVar(&saveAs, "save", "", "Save the plan as a project with this name")
	projectsDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without asking for confirmation")
	exportCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to write the export to")
	for _, cmd := range []*cobra.Command{printCmd, askCmd} {
		cmd.Flags().BoolVar(&rawOutput, "raw", false, "Print Markdown without terminal rendering")
		cmd.Flags().IntVar(&wrapWidth, "width", 100, "Wrap rendered output at this width")
	}
}

func requireEmail() error {
	if strings.TrimSpace(email) == "" {
		return errors.New("--email is required")
	}
	return nil
}

// confirm asks a yes/no question and reads one line of answer from in.
// Anything other than an explicit yes counts as no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s %s ", question, mutedStyle.Render("[s/N]"))
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true, nil
	}
	return false, nil
}

func render(doc string) string {
	if rawOutput {
		return doc
	}
	return renderMarkdown(doc, wrapWidth)
}

// readProfile decodes a profile file over the intake defaults.
func readProfile(path string) (models.BusinessProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.BusinessProfile{}, fmt.Errorf("read profile: %w", err)
	}
	profile := models.NewBusinessProfile()
	if err := json.Unmarshal(data, &profile); err != nil {
		return models.BusinessProfile{}, fmt.Errorf("parse profile: %w", err)
	}
	return profile, nil
}

func writeProjectLine(w io.Writer, p models.Project) {
	posted, total := calendar.Progress(p.Plan.Calendar)
	fmt.Fprintf(w, "%s  %s  %s\n",
		labelStyle.Render(p.ID),
		p.ProjectName,
		mutedStyle.Render(fmt.Sprintf("%s · %d/%d postados", p.CreatedAt.Format("02/01/2006"), posted, total)),
	)
}
