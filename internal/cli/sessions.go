package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/clvm-tools/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage recorded debug sessions",
	Long:  `List and replay debug sessions recorded with cldb --save.`,
	Run:   runSessionsList,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	Run:   runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session>",
	Short: "Replay a recorded session",
	Long: `Print the recorded trace of a session. The session may be named
by its full ID or any unique prefix.`,
	Args: cobra.ExactArgs(1),
	Run:  runSessionsShow,
}

var sessionsLimit int

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsListCmd.Flags().IntVarP(&sessionsLimit, "n", "n", 0, "Limit the number of sessions to show")
}

func runSessionsList(cmd *cobra.Command, args []string) {
	c := initStoreContext()
	defer c.Close()

	sessions, err := c.Store.ListSessions(sessionsLimit)
	if err != nil {
		exitError("failed to list sessions: %v", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet")
		return
	}

	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for _, session := range sessions {
		yellow.Printf("%s ", session.ShortID())
		switch session.Status {
		case models.SessionCompleted:
			green.Printf("%-9s ", session.Status)
		default:
			red.Printf("%-9s ", session.Status)
		}
		fmt.Printf("%s  steps:%d  %s\n",
			session.CreatedAt.Format("Mon Jan 2 15:04:05 2006"),
			session.StepCount,
			truncateProgram(session.Program))
	}
}

func runSessionsShow(cmd *cobra.Command, args []string) {
	c := initStoreContext()
	defer c.Close()

	session, err := c.Store.GetSession(args[0])
	if err != nil {
		exitError("%v", err)
	}

	yellow := color.New(color.FgYellow)
	yellow.Printf("session %s\n", session.ID)
	fmt.Printf("Date:    %s\n", session.CreatedAt.Format("Mon Jan 2 15:04:05 2006"))
	fmt.Printf("Status:  %s\n", session.Status)
	fmt.Printf("Program: %s\n", session.Program)
	if session.Env != "" {
		fmt.Printf("Env:     %s\n", session.Env)
	}
	if session.Final != "" {
		fmt.Printf("Final:   %s\n", session.Final)
	}
	fmt.Println()

	steps, err := c.Store.GetSteps(session.ID)
	if err != nil {
		exitError("failed to load steps: %v", err)
	}

	trace := make([]map[string]string, len(steps))
	for i, step := range steps {
		trace[i] = step.Fields
	}

	out, err := yaml.Marshal(trace)
	if err != nil {
		exitError("failed to render trace: %v", err)
	}
	fmt.Print(string(out))
}

func truncateProgram(program string) string {
	const max = 48
	if len(program) <= max {
		return program
	}
	return program[:max-3] + "..."
}
