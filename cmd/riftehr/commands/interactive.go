package commands

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/cmd/riftehr/internal"
	"github.com/lesfleursdelanuitdev/riftehr-pedigree/internal/reportstore"
	"github.com/spf13/cobra"
)

// interactiveCmd is a REPL over the report store a prior `riftehr run`
// wrote, grounded on cmd/gedcom/commands/interactive.go's
// TTY-detection-then-fallback shape: go-prompt when stdin is a terminal,
// a plain bufio.Scanner loop otherwise.
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive mode",
	Long:  "Start interactive mode to query the resolved relationship graph from a prior `riftehr run`",
	RunE:  runInteractive,
}

type interactiveState struct {
	store *reportstore.Store
}

var istate *interactiveState

func runInteractive(cmd *cobra.Command, args []string) error {
	rs, err := openReportStore()
	if err != nil {
		return err
	}
	defer rs.Close()
	istate = &interactiveState{store: rs}

	internal.PrintSuccess("✓ Interactive mode ready\n")
	internal.PrintInfo("  Type 'help' for available commands\n")
	internal.PrintInfo("  Type 'exit' or 'quit' to exit\n\n")

	startREPL()
	return nil
}

func startREPL() {
	defer func() {
		if r := recover(); r != nil {
			internal.PrintInfo("Note: using simple input mode (no TTY detected)\n")
			startSimpleREPL()
		}
	}()

	fileInfo, err := os.Stdin.Stat()
	if err != nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		startSimpleREPL()
		return
	}

	p := prompt.New(
		executeInteractive,
		completeInteractive,
		prompt.OptionPrefix("riftehr> "),
		prompt.OptionTitle("riftehr interactive mode"),
		prompt.OptionPrefixTextColor(prompt.Cyan),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
	)
	p.Run()
}

func startSimpleREPL() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("riftehr> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		executeInteractive(line)
	}
	if err := scanner.Err(); err != nil {
		internal.PrintError("Error reading input: %v\n", err)
	}
}

func executeInteractive(in string) {
	in = strings.TrimSpace(in)
	if in == "" {
		return
	}
	parts := strings.Fields(in)
	command, args := parts[0], parts[1:]

	switch command {
	case "exit", "quit", "q":
		internal.PrintInfo("Goodbye!\n")
		os.Exit(0)

	case "help", "h":
		printInteractiveHelp()

	case "relationship", "rel":
		if len(args) < 1 {
			internal.PrintError("Usage: relationship <patient-id>\n")
			return
		}
		showPatientRelationships(args[0])

	case "family", "fam":
		if len(args) < 1 {
			internal.PrintError("Usage: family <family-id>\n")
			return
		}
		showFamilyMembers(args[0])

	case "path":
		if len(args) < 2 {
			internal.PrintError("Usage: path <patient-a> <patient-b>\n")
			return
		}
		showPathBetween(args[0], args[1])

	default:
		internal.PrintError("Unknown command: %s\n", command)
		internal.PrintInfo("Type 'help' for available commands\n")
	}
}

func completeInteractive(d prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{
		{Text: "help", Description: "Show help"},
		{Text: "exit", Description: "Exit interactive mode"},
		{Text: "relationship", Description: "Show a patient's relationships"},
		{Text: "family", Description: "List a family's members"},
		{Text: "path", Description: "Find a relationship path between two patients"},
	}
	return prompt.FilterHasPrefix(s, d.GetWordBeforeCursor(), true)
}

func printInteractiveHelp() {
	internal.PrintInfo("\nAvailable commands:\n\n")
	internal.PrintInfo("  help, h                         Show this help\n")
	internal.PrintInfo("  exit, quit, q                   Exit interactive mode\n")
	internal.PrintInfo("  relationship <patient-id>        Show a patient's relationships\n")
	internal.PrintInfo("  family <family-id>               List a family's members\n")
	internal.PrintInfo("  path <patient-a> <patient-b>     Find a relationship path between two patients\n\n")
}

func showPatientRelationships(patientID string) {
	rows, err := istate.store.DB().Query(
		"SELECT src, label, dst FROM canonical_edges WHERE src = ? OR dst = ? ORDER BY label, dst",
		patientID, patientID)
	if err != nil {
		internal.PrintError("Error: %v\n", err)
		return
	}
	defer rows.Close()

	internal.PrintInfo("\nRelationships for %s:\n", patientID)
	found := false
	for rows.Next() {
		var src, label, dst string
		if err := rows.Scan(&src, &label, &dst); err != nil {
			internal.PrintError("Error: %v\n", err)
			return
		}
		found = true
		internal.PrintInfo("  %s %s %s\n", src, label, dst)
	}
	if !found {
		internal.PrintInfo("  none found\n")
	}
	internal.PrintInfo("\n")
}

func showFamilyMembers(familyID string) {
	rows, err := istate.store.DB().Query(
		"SELECT patient_id FROM family_assignments WHERE family_id = ? ORDER BY patient_id", familyID)
	if err != nil {
		internal.PrintError("Error: %v\n", err)
		return
	}
	defer rows.Close()

	internal.PrintInfo("\nFamily %s members:\n", familyID)
	found := false
	for rows.Next() {
		var patient string
		if err := rows.Scan(&patient); err != nil {
			internal.PrintError("Error: %v\n", err)
			return
		}
		found = true
		internal.PrintInfo("  %s\n", patient)
	}
	if !found {
		internal.PrintInfo("  none found\n")
	}
	internal.PrintInfo("\n")
}

// showPathBetween does a breadth-first search over the canonical_edges
// table treated as an undirected graph, printing the shortest chain of
// patient ids connecting a and b.
func showPathBetween(a, b string) {
	adj, err := loadAdjacency(istate.store.DB())
	if err != nil {
		internal.PrintError("Error: %v\n", err)
		return
	}

	path := bfsPath(adj, a, b)
	if path == nil {
		internal.PrintWarning("No path found between %s and %s\n", a, b)
		return
	}
	internal.PrintInfo("\nPath from %s to %s:\n  ", a, b)
	for i, node := range path {
		if i > 0 {
			internal.PrintInfo(" -> ")
		}
		internal.PrintInfo("%s", node)
	}
	internal.PrintInfo("\n\n")
}

func loadAdjacency(db *sql.DB) (map[string]map[string]bool, error) {
	rows, err := db.Query("SELECT src, dst FROM canonical_edges")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	adj := make(map[string]map[string]bool)
	add := func(x, y string) {
		if adj[x] == nil {
			adj[x] = make(map[string]bool)
		}
		adj[x][y] = true
	}
	for rows.Next() {
		var src, dst string
		if err := rows.Scan(&src, &dst); err != nil {
			return nil, err
		}
		add(src, dst)
		add(dst, src)
	}
	return adj, rows.Err()
}

func bfsPath(adj map[string]map[string]bool, start, goal string) []string {
	if start == goal {
		return []string{start}
	}
	prev := map[string]string{start: ""}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range adj[cur] {
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = cur
			if next == goal {
				var path []string
				for n := goal; n != ""; n = prev[n] {
					path = append([]string{n}, path...)
				}
				return path
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// GetInteractiveCommand returns the interactive command.
func GetInteractiveCommand() *cobra.Command {
	return interactiveCmd
}
